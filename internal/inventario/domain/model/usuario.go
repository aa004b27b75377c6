package model

type Usuario struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	Nombre        string `gorm:"type:varchar(255);not null" json:"nombre"`
	NombreUsuario string `gorm:"column:nombre_usuario;type:varchar(100);not null;unique" json:"nombre_usuario"`
	Correo        string `gorm:"type:varchar(255);not null;unique" json:"correo"`
	Contrasena    string `gorm:"column:contrasena_hash;type:varchar(255);not null" json:"-"`
	Registro
}

func (Usuario) TableName() string {
	return "usuarios"
}

type Rol struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Nombre      string `gorm:"type:varchar(100);not null;unique" json:"nombre"`
	Descripcion string `gorm:"type:text" json:"descripcion"`
	Registro
}

func (Rol) TableName() string {
	return "roles"
}

// UsuarioRol asigna un rol a un usuario con alcance a un par máquina+sistema.
// La tupla (id_usuario, id_rol, id_maquina, id_sistema) es única mientras
// la fila esté en estado ACTIVO.
type UsuarioRol struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	IDUsuario uint `gorm:"column:id_usuario;not null;index" json:"id_usuario"`
	IDRol     uint `gorm:"column:id_rol;not null;index" json:"id_rol"`
	IDMaquina uint `gorm:"column:id_maquina;not null;index" json:"id_maquina"`
	IDSistema uint `gorm:"column:id_sistema;not null;index" json:"id_sistema"`
	Registro

	Usuario *Usuario `gorm:"foreignKey:IDUsuario" json:"-"`
	Rol     *Rol     `gorm:"foreignKey:IDRol" json:"-"`
}

func (UsuarioRol) TableName() string {
	return "usuarios_roles"
}
