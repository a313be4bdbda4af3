package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("artículo no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrInvalidQuantity   = errors.New("la cantidad debe ser un entero positivo")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrNotInitialized    = errors.New("el motor de inventario aún no está inicializado")
)
