package rol

import "errors"

var (
	ErrNoEncontrado          = errors.New("rol no encontrado")
	ErrNombreDuplicado       = errors.New("ya existe un rol con ese nombre")
	ErrEntradaInvalida       = errors.New("datos de entrada inválidos")
	ErrAsignacionesActivas   = errors.New("el rol tiene asignaciones activas")
	ErrIntegridadReferencial = errors.New("el rol tiene asignaciones que lo referencian")
)
