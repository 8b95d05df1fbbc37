package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// La capa HTTP los traduce a códigos de estado con errors.Is.
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrConflict            = errors.New("conflicto con el estado actual")
	ErrForbidden           = errors.New("acceso denegado")
	ErrInvalidCredentials  = errors.New("credenciales inválidas")
	ErrAccessDenied        = errors.New("token inválido, expirado o revocado")
	ErrConstraintViolation = errors.New("violación de una regla de consistencia multi-tienda")
	ErrFieldNotAllowed     = errors.New("campo no permitido para este rol")
	ErrMissingStore        = errors.New("la tienda es obligatoria")
)
