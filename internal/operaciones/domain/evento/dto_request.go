package evento

import "time"

type CrearEventoRequestDto struct {
	CodTipoEvento string    `json:"cod_tipo_evento" binding:"required"`
	Descripcion   string    `json:"descripcion" binding:"required"`
	FechaEvento   time.Time `json:"fecha_evento" binding:"required"`
	// Responsables es una lista de correos que reciben la notificación de
	// apertura; se persiste separada por comas.
	Responsables []string `json:"responsables"`
	Respaldo     *string  `json:"respaldo"`
}

type ActualizarEventoRequestDto struct {
	Descripcion  *string   `json:"descripcion"`
	Responsables *[]string `json:"responsables"`
	Respaldo     *string   `json:"respaldo"`
}

type CambiarEstadoRequestDto struct {
	Estado string `json:"estado" binding:"required"`
}

type VincularInfraRequestDto struct {
	IDDataCenter *uint `json:"id_data_center"`
	IDHardware   *uint `json:"id_hardware"`
	IDServidor   *uint `json:"id_servidor"`
	IDMaquina    *uint `json:"id_maquina"`
}

type ListarEventoRequestDto struct {
	Page     int    `form:"page"`
	PageSize int    `form:"size"`
	Estado   string `form:"estado"`
	Tipo     string `form:"tipo"`
}
