package bitacora

import "time"

// EventoBitacora registra una transición de estado_evento. Las filas son
// inmutables: el paquete no expone operaciones de update ni delete.
type EventoBitacora struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	IDEvento        uint      `gorm:"column:id_evento;not null;index" json:"id_evento"`
	EstadoAnterior  string    `gorm:"column:estado_anterior;type:varchar(50);not null" json:"estado_anterior"`
	EstadoActual    string    `gorm:"column:estado_actual;type:varchar(50);not null" json:"estado_actual"`
	UsuarioCreacion uint      `gorm:"column:usuario_creacion;not null" json:"usuario_creacion"`
	FechaCreacion   time.Time `gorm:"column:fecha_creacion;not null;autoCreateTime" json:"fecha_creacion"`
}

func (EventoBitacora) TableName() string {
	return "eventos_bitacora"
}

// DespliegueBitacora registra una transición de estado_despliegue.
type DespliegueBitacora struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	IDDespliegue    uint      `gorm:"column:id_despliegue;not null;index" json:"id_despliegue"`
	EstadoAnterior  string    `gorm:"column:estado_anterior;type:varchar(50);not null" json:"estado_anterior"`
	EstadoActual    string    `gorm:"column:estado_actual;type:varchar(50);not null" json:"estado_actual"`
	UsuarioCreacion uint      `gorm:"column:usuario_creacion;not null" json:"usuario_creacion"`
	FechaCreacion   time.Time `gorm:"column:fecha_creacion;not null;autoCreateTime" json:"fecha_creacion"`
}

func (DespliegueBitacora) TableName() string {
	return "despliegues_bitacora"
}
