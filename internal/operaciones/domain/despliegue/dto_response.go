package despliegue

import "time"

type DespliegueResponseDto struct {
	ID                 uint      `json:"id"`
	IDComponente       uint      `json:"id_componente"`
	IDMaquina          uint      `json:"id_maquina"`
	EstadoDespliegue   string    `json:"estado_despliegue"`
	FechaSolicitud     time.Time `json:"fecha_solicitud"`
	UnidadSolicitante  string    `json:"unidad_solicitante"`
	Solicitante        string    `json:"solicitante"`
	CodTipoRespaldo    *string   `json:"cod_tipo_respaldo,omitempty"`
	ReferenciaRespaldo *string   `json:"referencia_respaldo,omitempty"`
	Estado             string    `json:"estado"`
	FechaCreacion      time.Time `json:"fecha_creacion"`
}

type BitacoraResponseDto struct {
	ID              uint      `json:"id"`
	IDDespliegue    uint      `json:"id_despliegue"`
	EstadoAnterior  string    `json:"estado_anterior"`
	EstadoActual    string    `json:"estado_actual"`
	UsuarioCreacion uint      `json:"usuario_creacion"`
	FechaCreacion   time.Time `json:"fecha_creacion"`
}

func ToResponse(d Despliegue) DespliegueResponseDto {
	return DespliegueResponseDto{
		ID:                 d.ID,
		IDComponente:       d.IDComponente,
		IDMaquina:          d.IDMaquina,
		EstadoDespliegue:   d.EstadoDespliegue,
		FechaSolicitud:     d.FechaSolicitud,
		UnidadSolicitante:  d.UnidadSolicitante,
		Solicitante:        d.Solicitante,
		CodTipoRespaldo:    d.CodTipoRespaldo,
		ReferenciaRespaldo: d.ReferenciaRespaldo,
		Estado:             d.Estado,
		FechaCreacion:      d.FechaCreacion,
	}
}

func ToBitacoraResponse(b DespliegueBitacora) BitacoraResponseDto {
	return BitacoraResponseDto{
		ID:              b.ID,
		IDDespliegue:    b.IDDespliegue,
		EstadoAnterior:  b.EstadoAnterior,
		EstadoActual:    b.EstadoActual,
		UsuarioCreacion: b.UsuarioCreacion,
		FechaCreacion:   b.FechaCreacion,
	}
}
