package model

import "time"

// Estados del ciclo de vida común a todas las entidades.
const (
	EstadoActivo   = "ACTIVO"
	EstadoInactivo = "INACTIVO"
)

// Registro agrupa las columnas de auditoría presentes en todas las tablas.
// fecha_creacion y usuario_creacion son inmutables después del insert;
// fecha_modificacion/usuario_modificacion quedan en null hasta el primer update.
type Registro struct {
	Estado              string     `gorm:"type:varchar(10);not null;default:'ACTIVO'" json:"estado"`
	FechaCreacion       time.Time  `gorm:"column:fecha_creacion;not null;autoCreateTime" json:"fecha_creacion"`
	UsuarioCreacion     uint       `gorm:"column:usuario_creacion;not null" json:"usuario_creacion"`
	FechaModificacion   *time.Time `gorm:"column:fecha_modificacion" json:"fecha_modificacion,omitempty"`
	UsuarioModificacion *uint      `gorm:"column:usuario_modificacion" json:"usuario_modificacion,omitempty"`
}

// NuevoRegistro arma las columnas de auditoría para un insert.
func NuevoRegistro(actor uint) Registro {
	return Registro{
		Estado:          EstadoActivo,
		FechaCreacion:   time.Now().UTC(),
		UsuarioCreacion: actor,
	}
}

// MarcarModificacion estampa las columnas de modificación para un update.
func (r *Registro) MarcarModificacion(actor uint) {
	ahora := time.Now().UTC()
	r.FechaModificacion = &ahora
	r.UsuarioModificacion = &actor
}
