package auth

import "errors"

var (
	// ErrCredenciales cubre usuario inexistente, inactivo o contraseña
	// equivocada; el mensaje no distingue el caso a propósito.
	ErrCredenciales   = errors.New("usuario o contraseña incorrectos")
	ErrTokenDuplicado = errors.New("falla al emitir el token de acceso")
	ErrOTPExiste      = errors.New("ya existe un código OTP vigente para ese correo")
	ErrOTPInvalido    = errors.New("código OTP incorrecto o vencido")
	ErrTokenNoExiste  = errors.New("token de acceso no encontrado")
)
