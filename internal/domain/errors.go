package domain

import "errors"

// Errores de dominio (sin dependencias externas). El motor los devuelve tal
// cual o envueltos con %w; los callers los distinguen con errors.Is.
var (
	ErrInsufficientStock          = errors.New("stock insuficiente")
	ErrUnsupportedSupplierProduct = errors.New("el proveedor no vende ese producto")
	ErrInvalidProduct             = errors.New("producto desconocido o de tipo incorrecto")
	ErrUnknownOrder               = errors.New("pedido de fabricación desconocido")
	ErrConcurrentAdvance          = errors.New("ya hay un avance de día en curso")
	ErrInvalidInput               = errors.New("entrada inválida")
	ErrInvalidConfig              = errors.New("configuración de escenario inválida")
)
