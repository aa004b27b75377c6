package auth

import "time"

// AccessToken es la sesión emitida en el login. El middleware de acceso lee
// esta misma tabla para resolver el Bearer, así que cualquier cambio de
// columnas debe reflejarse allí.
type AccessToken struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	IDUsuario     uint      `gorm:"column:id_usuario;not null;index" json:"id_usuario"`
	Token         string    `gorm:"type:varchar(512);not null;unique" json:"token"`
	Expiracion    time.Time `gorm:"not null" json:"expiracion"`
	Revocado      bool      `gorm:"not null;default:false" json:"revocado"`
	FechaCreacion time.Time `gorm:"column:fecha_creacion;not null" json:"fecha_creacion"`
}

func (AccessToken) TableName() string {
	return "access_tokens"
}
