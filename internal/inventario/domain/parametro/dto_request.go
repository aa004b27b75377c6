package parametro

type CrearParametroRequestDto struct {
	Grupo       string `json:"grupo" binding:"required"`
	Codigo      string `json:"codigo" binding:"required"`
	Nombre      string `json:"nombre" binding:"required"`
	Descripcion string `json:"descripcion"`
}

type ActualizarParametroRequestDto struct {
	Nombre      *string `json:"nombre"`
	Descripcion *string `json:"descripcion"`
}

type ListarParametroRequestDto struct {
	Grupo string `form:"grupo"`
}
