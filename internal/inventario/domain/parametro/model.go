package parametro

import (
	model "github.com/Americo7/SistemaInfra-2-sub002/internal/inventario/domain/model"
)

type Parametro = model.Parametro

const (
	GrupoTipoEvento   = model.GrupoTipoEvento
	GrupoTipoRespaldo = model.GrupoTipoRespaldo
)
