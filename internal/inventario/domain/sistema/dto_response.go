package sistema

import "time"

type SistemaResponseDto struct {
	ID            uint      `json:"id"`
	Codigo        string    `json:"codigo"`
	Nombre        string    `json:"nombre"`
	Descripcion   string    `json:"descripcion"`
	Estado        string    `json:"estado"`
	FechaCreacion time.Time `json:"fecha_creacion"`
}

type EntidadResponseDto struct {
	ID            uint      `json:"id"`
	IDSistema     uint      `json:"id_sistema"`
	Nombre        string    `json:"nombre"`
	Sigla         string    `json:"sigla"`
	Estado        string    `json:"estado"`
	FechaCreacion time.Time `json:"fecha_creacion"`
}

type ComponenteResponseDto struct {
	ID            uint      `json:"id"`
	IDSistema     uint      `json:"id_sistema"`
	Nombre        string    `json:"nombre"`
	Tecnologia    string    `json:"tecnologia"`
	Descripcion   string    `json:"descripcion"`
	Estado        string    `json:"estado"`
	FechaCreacion time.Time `json:"fecha_creacion"`
}

func ToSistemaResponse(s Sistema) SistemaResponseDto {
	return SistemaResponseDto{
		ID:            s.ID,
		Codigo:        s.Codigo,
		Nombre:        s.Nombre,
		Descripcion:   s.Descripcion,
		Estado:        s.Estado,
		FechaCreacion: s.FechaCreacion,
	}
}

func ToEntidadResponse(e Entidad) EntidadResponseDto {
	return EntidadResponseDto{
		ID:            e.ID,
		IDSistema:     e.IDSistema,
		Nombre:        e.Nombre,
		Sigla:         e.Sigla,
		Estado:        e.Estado,
		FechaCreacion: e.FechaCreacion,
	}
}

func ToComponenteResponse(c Componente) ComponenteResponseDto {
	return ComponenteResponseDto{
		ID:            c.ID,
		IDSistema:     c.IDSistema,
		Nombre:        c.Nombre,
		Tecnologia:    c.Tecnologia,
		Descripcion:   c.Descripcion,
		Estado:        c.Estado,
		FechaCreacion: c.FechaCreacion,
	}
}
