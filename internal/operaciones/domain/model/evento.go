package model

import (
	"time"

	inventario "github.com/Americo7/SistemaInfra-2-sub002/internal/inventario/domain/model"
)

// Evento es un incidente operativo que afecta infraestructura.
// estado_evento es independiente del estado lógico ACTIVO/INACTIVO y solo
// cambia a través del flujo de transiciones; cada cambio queda registrado
// en eventos_bitacora.
type Evento struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	CodTipoEvento string    `gorm:"column:cod_tipo_evento;type:varchar(100);not null" json:"cod_tipo_evento"`
	Descripcion   string    `gorm:"type:text;not null" json:"descripcion"`
	FechaEvento   time.Time `gorm:"column:fecha_evento;not null" json:"fecha_evento"`
	Responsables  string    `gorm:"type:text" json:"responsables"`
	EstadoEvento  string    `gorm:"column:estado_evento;type:varchar(50);not null" json:"estado_evento"`
	Respaldo      *string   `gorm:"type:text" json:"respaldo,omitempty"`
	inventario.Registro
}

func (Evento) TableName() string {
	return "eventos"
}

// InfraAfectada vincula un evento con los activos de infraestructura que
// impactó. Al menos una de las cuatro referencias debe estar presente.
type InfraAfectada struct {
	ID           uint  `gorm:"primaryKey" json:"id"`
	IDEvento     uint  `gorm:"column:id_evento;not null;index" json:"id_evento"`
	IDDataCenter *uint `gorm:"column:id_data_center" json:"id_data_center,omitempty"`
	IDHardware   *uint `gorm:"column:id_hardware" json:"id_hardware,omitempty"`
	IDServidor   *uint `gorm:"column:id_servidor" json:"id_servidor,omitempty"`
	IDMaquina    *uint `gorm:"column:id_maquina" json:"id_maquina,omitempty"`
	inventario.Registro

	Evento *Evento `gorm:"foreignKey:IDEvento" json:"-"`
}

func (InfraAfectada) TableName() string {
	return "infras_afectadas"
}
