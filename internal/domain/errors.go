package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrStockUnavailable  = errors.New("producto sin stock disponible")
	ErrCartNotActive     = errors.New("el carrito no está activo")
	ErrEmptyCart         = errors.New("el carrito no tiene líneas")
	ErrInvalidTransition = errors.New("transición de estado no permitida")
	ErrAlreadyApplied    = errors.New("el documento ya fue aplicado")
)
