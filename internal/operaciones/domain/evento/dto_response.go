package evento

import (
	"strings"
	"time"
)

type EventoResponseDto struct {
	ID            uint      `json:"id"`
	CodTipoEvento string    `json:"cod_tipo_evento"`
	Descripcion   string    `json:"descripcion"`
	FechaEvento   time.Time `json:"fecha_evento"`
	Responsables  []string  `json:"responsables"`
	EstadoEvento  string    `json:"estado_evento"`
	Respaldo      *string   `json:"respaldo,omitempty"`
	Estado        string    `json:"estado"`
	FechaCreacion time.Time `json:"fecha_creacion"`
}

type BitacoraResponseDto struct {
	ID              uint      `json:"id"`
	IDEvento        uint      `json:"id_evento"`
	EstadoAnterior  string    `json:"estado_anterior"`
	EstadoActual    string    `json:"estado_actual"`
	UsuarioCreacion uint      `json:"usuario_creacion"`
	FechaCreacion   time.Time `json:"fecha_creacion"`
}

type InfraAfectadaResponseDto struct {
	ID           uint  `json:"id"`
	IDEvento     uint  `json:"id_evento"`
	IDDataCenter *uint `json:"id_data_center,omitempty"`
	IDHardware   *uint `json:"id_hardware,omitempty"`
	IDServidor   *uint `json:"id_servidor,omitempty"`
	IDMaquina    *uint `json:"id_maquina,omitempty"`
	Estado       string `json:"estado"`
}

func ToResponse(e Evento) EventoResponseDto {
	var responsables []string
	if e.Responsables != "" {
		responsables = strings.Split(e.Responsables, ",")
	}
	return EventoResponseDto{
		ID:            e.ID,
		CodTipoEvento: e.CodTipoEvento,
		Descripcion:   e.Descripcion,
		FechaEvento:   e.FechaEvento,
		Responsables:  responsables,
		EstadoEvento:  e.EstadoEvento,
		Respaldo:      e.Respaldo,
		Estado:        e.Estado,
		FechaCreacion: e.FechaCreacion,
	}
}

func ToBitacoraResponse(b EventoBitacora) BitacoraResponseDto {
	return BitacoraResponseDto{
		ID:              b.ID,
		IDEvento:        b.IDEvento,
		EstadoAnterior:  b.EstadoAnterior,
		EstadoActual:    b.EstadoActual,
		UsuarioCreacion: b.UsuarioCreacion,
		FechaCreacion:   b.FechaCreacion,
	}
}

func ToInfraResponse(i InfraAfectada) InfraAfectadaResponseDto {
	return InfraAfectadaResponseDto{
		ID:           i.ID,
		IDEvento:     i.IDEvento,
		IDDataCenter: i.IDDataCenter,
		IDHardware:   i.IDHardware,
		IDServidor:   i.IDServidor,
		IDMaquina:    i.IDMaquina,
		Estado:       i.Estado,
	}
}
