package rol

import "time"

type RolResponseDto struct {
	ID                uint       `json:"id"`
	Nombre            string     `json:"nombre"`
	Descripcion       string     `json:"descripcion"`
	Estado            string     `json:"estado"`
	FechaCreacion     time.Time  `json:"fecha_creacion"`
	FechaModificacion *time.Time `json:"fecha_modificacion,omitempty"`
}

type RolesResponseDto struct {
	Roles []RolResponseDto `json:"roles"`
	Page  int              `json:"page"`
	Size  int              `json:"size"`
}

func ToResponse(r Rol) RolResponseDto {
	return RolResponseDto{
		ID:                r.ID,
		Nombre:            r.Nombre,
		Descripcion:       r.Descripcion,
		Estado:            r.Estado,
		FechaCreacion:     r.FechaCreacion,
		FechaModificacion: r.FechaModificacion,
	}
}
