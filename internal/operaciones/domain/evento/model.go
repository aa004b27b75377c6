package evento

import (
	model "github.com/Americo7/SistemaInfra-2-sub002/internal/operaciones/domain/model"
	"github.com/Americo7/SistemaInfra-2-sub002/internal/pkg/bitacora"
)

type (
	Evento         = model.Evento
	InfraAfectada  = model.InfraAfectada
	EventoBitacora = bitacora.EventoBitacora
)
