package model

import (
	"time"

	inventario "github.com/Americo7/SistemaInfra-2-sub002/internal/inventario/domain/model"
)

// Despliegue registra la instalación de un componente en una máquina.
// estado_despliegue sigue el flujo configurado (SOLICITADO, APROBADO, ...)
// y cada transición queda registrada en despliegues_bitacora.
type Despliegue struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	IDComponente       uint      `gorm:"column:id_componente;not null;index" json:"id_componente"`
	IDMaquina          uint      `gorm:"column:id_maquina;not null;index" json:"id_maquina"`
	EstadoDespliegue   string    `gorm:"column:estado_despliegue;type:varchar(50);not null" json:"estado_despliegue"`
	FechaSolicitud     time.Time `gorm:"column:fecha_solicitud;not null" json:"fecha_solicitud"`
	UnidadSolicitante  string    `gorm:"column:unidad_solicitante;type:varchar(255)" json:"unidad_solicitante"`
	Solicitante        string    `gorm:"type:varchar(255)" json:"solicitante"`
	CodTipoRespaldo    *string   `gorm:"column:cod_tipo_respaldo;type:varchar(100)" json:"cod_tipo_respaldo,omitempty"`
	ReferenciaRespaldo *string   `gorm:"column:referencia_respaldo;type:text" json:"referencia_respaldo,omitempty"`
	inventario.Registro
}

func (Despliegue) TableName() string {
	return "despliegues"
}
