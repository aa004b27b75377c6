package parametro

import "errors"

var (
	ErrNoEncontrado    = errors.New("parámetro no encontrado")
	ErrDuplicado       = errors.New("ya existe un parámetro con ese grupo y código")
	ErrEntradaInvalida = errors.New("datos de entrada inválidos")
	ErrCodigoNoValido  = errors.New("el código no pertenece al catálogo activo del grupo")
)
