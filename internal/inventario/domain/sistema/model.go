package sistema

import (
	model "github.com/Americo7/SistemaInfra-2-sub002/internal/inventario/domain/model"
)

type (
	Sistema    = model.Sistema
	Entidad    = model.Entidad
	Componente = model.Componente
)
