package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/bom-engine/internal/domain"
)

// RecipeComponent línea de una receta: un material con su cantidad requerida
// por unidad producida y su porcentaje de merma (0–100).
// Material viene precargado (eager) por el repositorio; el motor nunca hace
// cargas perezosas a mitad de cálculo.
type RecipeComponent struct {
	ID               string
	RecipeID         string
	MaterialID       string
	QuantityRequired decimal.Decimal // > 0
	WastePercentage  decimal.Decimal // 0–100
	Material         *Material
}

// EffectiveQuantity cantidad real consumida por unidad producida:
// QuantityRequired * (1 + WastePercentage/100).
func (c *RecipeComponent) EffectiveQuantity() decimal.Decimal {
	factor := decimal.NewFromInt(1).Add(c.WastePercentage.Div(decimal.NewFromInt(100)))
	return c.QuantityRequired.Mul(factor)
}

// Recipe receta activa/inactiva de un producto BOM. Los componentes conservan
// el orden de definición: ese orden decide el desempate del cuello de botella.
type Recipe struct {
	ID            string
	CompanyID     string
	ProductID     string
	Name          string
	YieldQuantity decimal.Decimal // > 0, unidades por ejecución
	YieldUnit     string
	IsActive      bool
	Components    []*RecipeComponent
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// AddComponent agrega un componente a la receta. Un mismo material puede
// aparecer a lo sumo una vez por receta; el duplicado se rechaza.
func (r *Recipe) AddComponent(c *RecipeComponent) error {
	if c == nil || c.MaterialID == "" {
		return domain.ErrInvalidInput
	}
	if !c.QuantityRequired.GreaterThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	if c.WastePercentage.LessThan(decimal.Zero) || c.WastePercentage.GreaterThan(decimal.NewFromInt(100)) {
		return domain.ErrInvalidInput
	}
	for _, existing := range r.Components {
		if existing.MaterialID == c.MaterialID {
			return domain.ErrDuplicateComponent
		}
	}
	c.RecipeID = r.ID
	r.Components = append(r.Components, c)
	return nil
}
