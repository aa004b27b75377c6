package parametro

import "time"

type ParametroResponseDto struct {
	ID            uint      `json:"id"`
	Grupo         string    `json:"grupo"`
	Codigo        string    `json:"codigo"`
	Nombre        string    `json:"nombre"`
	Descripcion   string    `json:"descripcion"`
	Estado        string    `json:"estado"`
	FechaCreacion time.Time `json:"fecha_creacion"`
}

type ParametrosResponseDto struct {
	Parametros []ParametroResponseDto `json:"parametros"`
}

func ToResponse(p Parametro) ParametroResponseDto {
	return ParametroResponseDto{
		ID:            p.ID,
		Grupo:         p.Grupo,
		Codigo:        p.Codigo,
		Nombre:        p.Nombre,
		Descripcion:   p.Descripcion,
		Estado:        p.Estado,
		FechaCreacion: p.FechaCreacion,
	}
}
