package evento

import "errors"

var (
	ErrNoEncontrado        = errors.New("evento no encontrado")
	ErrEntradaInvalida     = errors.New("datos de entrada inválidos")
	ErrTipoEventoNoValido  = errors.New("el tipo de evento no pertenece al catálogo activo")
	ErrEstadoNoPermitido   = errors.New("el estado no pertenece al flujo configurado de eventos")
	ErrConflictoTransicion = errors.New("el evento cambió de estado de forma concurrente, reintente")
	ErrInfraSinReferencia  = errors.New("la infraestructura afectada debe referenciar al menos un activo")
	ErrReferenciaInactiva  = errors.New("alguna de las referencias no existe o no está activa")
)
