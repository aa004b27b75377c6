package infraestructura

type CrearDataCenterRequestDto struct {
	Nombre    string `json:"nombre" binding:"required"`
	Ubicacion string `json:"ubicacion"`
}

type ActualizarDataCenterRequestDto struct {
	Nombre    *string `json:"nombre"`
	Ubicacion *string `json:"ubicacion"`
}

type CrearHardwareRequestDto struct {
	IDDataCenter uint   `json:"id_data_center" binding:"required"`
	Marca        string `json:"marca"`
	Modelo       string `json:"modelo"`
	Serie        string `json:"serie" binding:"required"`
}

type ActualizarHardwareRequestDto struct {
	Marca  *string `json:"marca"`
	Modelo *string `json:"modelo"`
}

type CrearServidorRequestDto struct {
	IDHardware uint   `json:"id_hardware" binding:"required"`
	Nombre     string `json:"nombre" binding:"required"`
}

type ActualizarServidorRequestDto struct {
	Nombre *string `json:"nombre"`
}

type CrearMaquinaRequestDto struct {
	Nombre           string `json:"nombre" binding:"required"`
	IP               string `json:"ip"`
	SistemaOperativo string `json:"sistema_operativo"`
}

type ActualizarMaquinaRequestDto struct {
	Nombre           *string `json:"nombre"`
	IP               *string `json:"ip"`
	SistemaOperativo *string `json:"sistema_operativo"`
}

type CrearClusterRequestDto struct {
	Nombre      string `json:"nombre" binding:"required"`
	Descripcion string `json:"descripcion"`
}

type ActualizarClusterRequestDto struct {
	Nombre      *string `json:"nombre"`
	Descripcion *string `json:"descripcion"`
}

type VincularServidorMaquinaRequestDto struct {
	IDServidor uint `json:"id_servidor" binding:"required"`
	IDMaquina  uint `json:"id_maquina" binding:"required"`
}

type AsignarClusterRequestDto struct {
	IDCluster  uint `json:"id_cluster" binding:"required"`
	IDServidor uint `json:"id_servidor" binding:"required"`
	IDMaquina  uint `json:"id_maquina" binding:"required"`
}

type ListarRequestDto struct {
	Page     int `form:"page"`
	PageSize int `form:"size"`
}
