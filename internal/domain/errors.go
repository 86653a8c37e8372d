package domain

import "errors"

// Errores de dominio (sin dependencias externas).
//
// "Sin receta activa" NO es un error: es un resultado válido de capacidad cero
// (estado transitorio normal mientras se redacta la receta). Confundirlo con
// ErrNotFound es el bug clásico que este motor evita a propósito.
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrInvalidProductType = errors.New("el producto no es de tipo BOM")
	// ErrNoActiveRecipe aplica a proyecciones de lote: sin receta no hay nada
	// que proyectar. La consulta de disponibilidad, en cambio, lo modela como
	// resultado válido de capacidad cero.
	ErrNoActiveRecipe     = errors.New("el producto no tiene receta activa")
	ErrDuplicateComponent = errors.New("el material ya existe en la receta")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrConflict           = errors.New("conflicto con el estado actual")
)
