package despliegue

import "time"

type CrearDespliegueRequestDto struct {
	IDComponente       uint      `json:"id_componente" binding:"required"`
	IDMaquina          uint      `json:"id_maquina" binding:"required"`
	FechaSolicitud     time.Time `json:"fecha_solicitud" binding:"required"`
	UnidadSolicitante  string    `json:"unidad_solicitante"`
	Solicitante        string    `json:"solicitante"`
	CodTipoRespaldo    *string   `json:"cod_tipo_respaldo"`
	ReferenciaRespaldo *string   `json:"referencia_respaldo"`
}

type ActualizarDespliegueRequestDto struct {
	UnidadSolicitante  *string `json:"unidad_solicitante"`
	Solicitante        *string `json:"solicitante"`
	CodTipoRespaldo    *string `json:"cod_tipo_respaldo"`
	ReferenciaRespaldo *string `json:"referencia_respaldo"`
}

type CambiarEstadoRequestDto struct {
	Estado string `json:"estado" binding:"required"`
}

type ListarDespliegueRequestDto struct {
	Page         int    `form:"page"`
	PageSize     int    `form:"size"`
	Estado       string `form:"estado"`
	IDComponente uint   `form:"id_componente"`
	IDMaquina    uint   `form:"id_maquina"`
}
