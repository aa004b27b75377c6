package sistema

import "errors"

var (
	ErrNoEncontrado          = errors.New("registro no encontrado")
	ErrCodigoDuplicado       = errors.New("ya existe un sistema con ese código")
	ErrEntradaInvalida       = errors.New("datos de entrada inválidos")
	ErrSistemaInactivo       = errors.New("el sistema referenciado no está activo")
	ErrIntegridadReferencial = errors.New("existen registros que referencian este recurso")
	ErrDependientesActivos   = errors.New("existen registros activos que dependen de este recurso")
)
