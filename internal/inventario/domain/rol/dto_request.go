package rol

type CrearRolRequestDto struct {
	Nombre      string `json:"nombre" binding:"required"`
	Descripcion string `json:"descripcion"`
}

type ActualizarRolRequestDto struct {
	Nombre      *string `json:"nombre"`
	Descripcion *string `json:"descripcion"`
}

type ListarRolRequestDto struct {
	Page     int `form:"page"`
	PageSize int `form:"size"`
}
