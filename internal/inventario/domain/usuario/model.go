package usuario

import (
	model "github.com/Americo7/SistemaInfra-2-sub002/internal/inventario/domain/model"
)

type (
	Usuario    = model.Usuario
	UsuarioRol = model.UsuarioRol
)
