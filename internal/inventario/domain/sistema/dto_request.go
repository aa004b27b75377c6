package sistema

type CrearSistemaRequestDto struct {
	Codigo      string `json:"codigo" binding:"required"`
	Nombre      string `json:"nombre" binding:"required"`
	Descripcion string `json:"descripcion"`
}

type ActualizarSistemaRequestDto struct {
	Nombre      *string `json:"nombre"`
	Descripcion *string `json:"descripcion"`
}

type CrearEntidadRequestDto struct {
	IDSistema uint   `json:"id_sistema" binding:"required"`
	Nombre    string `json:"nombre" binding:"required"`
	Sigla     string `json:"sigla"`
}

type ActualizarEntidadRequestDto struct {
	Nombre *string `json:"nombre"`
	Sigla  *string `json:"sigla"`
}

type CrearComponenteRequestDto struct {
	IDSistema   uint   `json:"id_sistema" binding:"required"`
	Nombre      string `json:"nombre" binding:"required"`
	Tecnologia  string `json:"tecnologia"`
	Descripcion string `json:"descripcion"`
}

type ActualizarComponenteRequestDto struct {
	Nombre      *string `json:"nombre"`
	Tecnologia  *string `json:"tecnologia"`
	Descripcion *string `json:"descripcion"`
}

type ListarRequestDto struct {
	Page     int `form:"page"`
	PageSize int `form:"size"`
}
