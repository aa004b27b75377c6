package middleware

import (
	model "github.com/Americo7/SistemaInfra-2-sub002/internal/inventario/domain/model"
)

// Metadata acompaña a cada petición autenticada.
type Metadata struct {
	RayTraceCode string
}

// Login es la identidad resuelta del actor que ejecuta la petición. El
// núcleo nunca la lee del HTTP: los controllers la traducen a un id de
// actor plano antes de llamar a los services.
type Login struct {
	Usuario  model.Usuario
	Roles    []string
	Metadata Metadata
}

// TieneRol indica si el actor posee alguno de los roles requeridos.
func (l *Login) TieneRol(requeridos ...string) bool {
	for _, requerido := range requeridos {
		for _, rol := range l.Roles {
			if rol == requerido {
				return true
			}
		}
	}
	return false
}
