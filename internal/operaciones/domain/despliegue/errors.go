package despliegue

import "errors"

var (
	ErrNoEncontrado         = errors.New("despliegue no encontrado")
	ErrEntradaInvalida      = errors.New("datos de entrada inválidos")
	ErrTipoRespaldoNoValido = errors.New("el tipo de respaldo no pertenece al catálogo activo")
	ErrConflictoTransicion  = errors.New("el despliegue cambió de estado de forma concurrente, reintente")
	ErrReferenciaInactiva   = errors.New("el componente o la máquina no existen o no están activos")
)
