package auth

import (
	"time"

	"github.com/Americo7/SistemaInfra-2-sub002/internal/inventario/domain/usuario"
)

type LoginResponse struct {
	Usuario        usuario.UsuarioResponseDto `json:"usuario"`
	Roles          []string                   `json:"roles,omitempty"`
	Token          string                     `json:"token"`
	Expiracion     time.Time                  `json:"expiracion"`
	SistemaHoraUTC time.Time                  `json:"sistema_hora_utc,omitempty"`
}
