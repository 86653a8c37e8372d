package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MaterialUnit unidad de medida de un material (catálogo cerrado).
type MaterialUnit string

const (
	UnitKg     MaterialUnit = "kg"
	UnitG      MaterialUnit = "g"
	UnitL      MaterialUnit = "L"
	UnitMl     MaterialUnit = "ml"
	UnitPcs    MaterialUnit = "pcs"
	UnitBox    MaterialUnit = "box"
	UnitBottle MaterialUnit = "bottle"
	UnitCan    MaterialUnit = "can"
	UnitBag    MaterialUnit = "bag"
)

// ValidUnit indica si la unidad pertenece al catálogo soportado.
func ValidUnit(u MaterialUnit) bool {
	switch u {
	case UnitKg, UnitG, UnitL, UnitMl, UnitPcs, UnitBox, UnitBottle, UnitCan, UnitBag:
		return true
	}
	return false
}

// Material representa una materia prima del inventario.
// StockQuantity es el stock confirmado (>= 0 en reposo); este motor lo lee,
// nunca lo muta — los movimientos de inventario son responsabilidad externa.
type Material struct {
	ID            string
	CompanyID     string
	SKU           string
	Name          string
	Unit          MaterialUnit
	StockQuantity decimal.Decimal // nunca negativo en reposo
	ReorderLevel  decimal.Decimal
	UnitCost      decimal.Decimal
	Category      string // opcional
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
