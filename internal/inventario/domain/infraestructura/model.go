package infraestructura

import (
	model "github.com/Americo7/SistemaInfra-2-sub002/internal/inventario/domain/model"
)

type (
	DataCenter                = model.DataCenter
	Hardware                  = model.Hardware
	Servidor                  = model.Servidor
	Maquina                   = model.Maquina
	ServidorMaquina           = model.ServidorMaquina
	Cluster                   = model.Cluster
	AsignacionServidorMaquina = model.AsignacionServidorMaquina
)
