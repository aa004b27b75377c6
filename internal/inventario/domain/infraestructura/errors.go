package infraestructura

import "errors"

var (
	ErrNoEncontrado          = errors.New("registro no encontrado")
	ErrDuplicado             = errors.New("ya existe un registro con ese identificador único")
	ErrEntradaInvalida       = errors.New("datos de entrada inválidos")
	ErrReferenciaInactiva    = errors.New("alguna de las referencias no existe o no está activa")
	ErrVinculoActivo         = errors.New("ya existe un vínculo activo con esa combinación")
	ErrVinculosActivos       = errors.New("existen vínculos activos que dependen de este recurso")
	ErrIntegridadReferencial = errors.New("existen registros que referencian este recurso")
)
