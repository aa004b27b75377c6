package usuario

import "errors"

var (
	ErrNoEncontrado          = errors.New("usuario no encontrado")
	ErrAsignacionNoExiste    = errors.New("asignación de rol no encontrada")
	ErrDuplicado             = errors.New("ya existe un usuario con ese nombre de usuario o correo")
	ErrEntradaInvalida       = errors.New("datos de entrada inválidos")
	ErrRolActivoDuplicado    = errors.New("el usuario ya tiene esa asignación de rol activa")
	ErrRolesActivos          = errors.New("el usuario tiene asignaciones de rol activas")
	ErrReferenciaInactiva    = errors.New("alguna de las referencias no existe o no está activa")
	ErrIntegridadReferencial = errors.New("existen registros que referencian este usuario")
)
