// Package production contiene los servicios de dominio puros del motor BOM:
// aritmética de capacidad, consumo y faltantes sobre decimal.Decimal.
package production

import "github.com/shopspring/decimal"

// UnitsProducible unidades enteras producibles con el stock disponible:
// floor(stock / effective). Precondición: effective > 0 (el caso degenerado
// effective == 0 lo maneja el caso de uso como componente no limitante).
func UnitsProducible(stock, effective decimal.Decimal) int64 {
	if stock.LessThanOrEqual(decimal.Zero) {
		return 0
	}
	return stock.Div(effective).IntPart()
}

// BatchRequirement consumo total de un componente para un lote:
// effective * quantity.
func BatchRequirement(effective decimal.Decimal, quantity int64) decimal.Decimal {
	return effective.Mul(decimal.NewFromInt(quantity))
}

// Shortage faltante no negativo: max(0, required - available).
// El remanente con signo (que sí puede ser negativo) lo reporta la simulación,
// no esta función.
func Shortage(required, available decimal.Decimal) decimal.Decimal {
	s := required.Sub(available)
	if s.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	return s
}

// ComponentCost costo de un consumo: required * unitCost.
func ComponentCost(required, unitCost decimal.Decimal) decimal.Decimal {
	return required.Mul(unitCost)
}
