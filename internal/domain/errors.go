package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrAlreadyPaid       = errors.New("la venta ya está pagada")
	ErrMalformedSnapshot = errors.New("snapshot malformado")
	ErrSaveFailed        = errors.New("no se pudo guardar el estado")
)
