package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrValidation        = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrAlreadyCheckedIn  = errors.New("ya registró entrada hoy")
	ErrAlreadyCheckedOut = errors.New("ya registró salida hoy")
	ErrNotCheckedIn      = errors.New("no ha registrado entrada hoy")
	ErrInvalidTransition = errors.New("la solicitud ya fue decidida")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
)
