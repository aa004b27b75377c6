package auditoria_log

import "time"

// AuditLog es la traza de auditoría a nivel de petición del API. Es
// independiente de la bitácora de dominio: la bitácora registra
// transiciones de estado dentro de la transacción del cambio, mientras que
// estas filas son telemetría de mejor esfuerzo sobre cada llamada.
type AuditLog struct {
	ID            uint   `gorm:"primaryKey"`
	IDUsuario     *uint  `gorm:"column:id_usuario"`
	Identificador string `gorm:"type:text"`

	RayTraceCode string `gorm:"size:100;not null"`

	Dominio      string `gorm:"column:dominio;size:100;not null"`
	Accion       string `gorm:"column:accion;size:100;not null"`
	Funcion      string `gorm:"column:funcion;size:150;not null"`
	Exito        bool   `gorm:"column:exito;not null"`
	DatosEntrada string `gorm:"column:datos_entrada;type:text"`
	DatosSalida  string `gorm:"column:datos_salida;type:text"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (AuditLog) TableName() string {
	return "audit_log"
}
