package entity

import "time"

// Tipos de gestión de inventario de un producto.
// Solo los productos "bom" son elegibles para explosión de receta.
const (
	InventorySimple = "simple"
	InventoryBOM    = "bom"
)

// Product representa un producto vendible. Los de tipo "bom" se fabrican a
// partir de una receta de materiales; los "simple" llevan stock directo.
type Product struct {
	ID                      string
	CompanyID               string
	SKU                     string
	Name                    string
	InventoryManagementType string // simple | bom
	CreatedAt               time.Time
	UpdatedAt               time.Time
}

// IsBOM indica si el producto se fabrica por explosión de receta.
func (p *Product) IsBOM() bool {
	return p.InventoryManagementType == InventoryBOM
}
