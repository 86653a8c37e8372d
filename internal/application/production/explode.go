// Package production contiene los casos de uso del motor BOM: explosión de
// recetas, proyección de lotes, agregación multi-producto, planificación y
// programación greedy. Todos los cálculos son funciones puras sobre datos ya
// cargados (cargar primero, calcular después); ninguno muta stock.
package production

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/bom-engine/internal/application/dto"
	"github.com/jhoicas/bom-engine/internal/domain/entity"
	"github.com/jhoicas/bom-engine/internal/domain/production"
)

// explosion resultado interno de recorrer una receta componente a componente.
type explosion struct {
	maxQuantity int64
	unbounded   bool // sin componentes limitantes (receta vacía o toda degenerada)
	bottleneck  *dto.BottleneckDTO
	components  []dto.ComponentAvailabilityDTO
	warnings    []string
}

// explodeRecipe recorre los componentes en orden de definición y calcula el
// máximo producible por componente y el mínimo global.
//
// Desempate del cuello de botella: si varios materiales empatan en el mínimo,
// gana el primero en el orden de la receta (determinista entre llamadas).
//
// Un componente con cantidad efectiva 0 dividiría por cero: se recupera como
// componente no limitante y se anota un warning para que el operador corrija
// el dato; nunca se ignora en silencio.
func explodeRecipe(recipe *entity.Recipe) explosion {
	ex := explosion{unbounded: true}

	if len(recipe.Components) == 0 {
		ex.warnings = append(ex.warnings,
			fmt.Sprintf("la receta %q no tiene componentes: producible sin límite (dato degenerado)", recipe.Name))
		return ex
	}

	for _, c := range recipe.Components {
		line := dto.ComponentAvailabilityDTO{
			MaterialID:   c.MaterialID,
			MaterialName: c.Material.Name,
			Unit:         string(c.Material.Unit),
		}
		eff := c.EffectiveQuantity()
		line.RequiredQuantity = eff
		line.AvailableStock = c.Material.StockQuantity

		if !eff.GreaterThan(decimal.Zero) {
			line.Unbounded = true
			line.Sufficient = true
			ex.warnings = append(ex.warnings,
				fmt.Sprintf("componente %q con cantidad efectiva 0: tratado como no limitante (dato degenerado)", c.Material.Name))
			ex.components = append(ex.components, line)
			continue
		}

		line.MaxProducible = production.UnitsProducible(c.Material.StockQuantity, eff)
		line.Sufficient = line.MaxProducible >= 1

		if ex.unbounded || line.MaxProducible < ex.maxQuantity {
			ex.unbounded = false
			ex.maxQuantity = line.MaxProducible
			ex.bottleneck = &dto.BottleneckDTO{MaterialID: c.MaterialID, MaterialName: c.Material.Name}
		}
		ex.components = append(ex.components, line)
	}

	// Marcar las líneas que alcanzan el mínimo global.
	if !ex.unbounded {
		for i := range ex.components {
			if !ex.components[i].Unbounded && ex.components[i].MaxProducible == ex.maxQuantity {
				ex.components[i].Limiting = true
			}
		}
	}
	return ex
}
