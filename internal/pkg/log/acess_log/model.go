package acess_log

import "time"

type AccessLog struct {
	ID            uint   `gorm:"primaryKey"`
	IDUsuario     *uint  `gorm:"column:id_usuario"`
	Identificador string `gorm:"type:text"`

	RayTraceCode string `gorm:"size:100;not null"`

	Metodo       string `gorm:"column:metodo;size:10;not null"`
	Ruta         string `gorm:"column:ruta;type:text;not null"`
	Host         string `gorm:"type:text;not null"`
	CodigoEstado int    `gorm:"column:codigo_estado;not null"`
	IP           string `gorm:"type:text;not null"`
	UserAgent    string `gorm:"type:text"`
	Referer      string `gorm:"type:text"`
	ContentType  string `gorm:"type:text"`
	Idioma       string `gorm:"column:idioma;type:text"`

	FechaSolicitud time.Time `gorm:"column:fecha_solicitud;not null"`
	LatenciaMs     float64   `gorm:"column:latencia_ms;not null"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
}

func (AccessLog) TableName() string {
	return "access_log"
}
