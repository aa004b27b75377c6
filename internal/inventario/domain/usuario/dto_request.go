package usuario

type CrearUsuarioRequestDto struct {
	Nombre        string `json:"nombre" binding:"required"`
	NombreUsuario string `json:"nombre_usuario" binding:"required"`
	Correo        string `json:"correo" binding:"required,email"`
	Contrasena    string `json:"contrasena" binding:"required,min=8"`
}

type ActualizarUsuarioRequestDto struct {
	Nombre *string `json:"nombre"`
	Correo *string `json:"correo"`
}

type AsignarRolRequestDto struct {
	IDRol     uint `json:"id_rol" binding:"required"`
	IDMaquina uint `json:"id_maquina" binding:"required"`
	IDSistema uint `json:"id_sistema" binding:"required"`
}

type ListarUsuarioRequestDto struct {
	Page     int `form:"page"`
	PageSize int `form:"size"`
}
