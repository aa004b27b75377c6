package usuario

import "time"

type UsuarioResponseDto struct {
	ID            uint      `json:"id"`
	Nombre        string    `json:"nombre"`
	NombreUsuario string    `json:"nombre_usuario"`
	Correo        string    `json:"correo"`
	Estado        string    `json:"estado"`
	FechaCreacion time.Time `json:"fecha_creacion"`
}

type UsuariosResponseDto struct {
	Usuarios []UsuarioResponseDto `json:"usuarios"`
	Page     int                  `json:"page"`
	Size     int                  `json:"size"`
}

type AsignacionRolResponseDto struct {
	ID            uint      `json:"id"`
	IDUsuario     uint      `json:"id_usuario"`
	IDRol         uint      `json:"id_rol"`
	IDMaquina     uint      `json:"id_maquina"`
	IDSistema     uint      `json:"id_sistema"`
	Estado        string    `json:"estado"`
	FechaCreacion time.Time `json:"fecha_creacion"`
}

func ToResponse(u Usuario) UsuarioResponseDto {
	return UsuarioResponseDto{
		ID:            u.ID,
		Nombre:        u.Nombre,
		NombreUsuario: u.NombreUsuario,
		Correo:        u.Correo,
		Estado:        u.Estado,
		FechaCreacion: u.FechaCreacion,
	}
}

func ToAsignacionResponse(a UsuarioRol) AsignacionRolResponseDto {
	return AsignacionRolResponseDto{
		ID:            a.ID,
		IDUsuario:     a.IDUsuario,
		IDRol:         a.IDRol,
		IDMaquina:     a.IDMaquina,
		IDSistema:     a.IDSistema,
		Estado:        a.Estado,
		FechaCreacion: a.FechaCreacion,
	}
}
