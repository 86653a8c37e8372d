package production_test

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/bom-engine/internal/application/production"
	"github.com/jhoicas/bom-engine/internal/domain/entity"
	"github.com/jhoicas/bom-engine/internal/infrastructure/memory"
	"github.com/jhoicas/bom-engine/pkg/logger"
)

const testCompanyID = "11111111-1111-1111-1111-111111111111"

// testNow reloj fijo del scheduler en tests.
var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// fixture arma el motor completo sobre repositorios en memoria.
type fixture struct {
	materials *memory.MaterialRepo
	products  *memory.ProductRepo
	recipes   *memory.RecipeRepo

	availability *production.AvailabilityUseCase
	batch        *production.BatchUseCase
	multi        *production.MultiProductUseCase
	planner      *production.PlannerUseCase
	schedule     *production.ScheduleUseCase
	restock      *production.RestockUseCase

	seq int
}

func newFixture() *fixture {
	f := &fixture{
		materials: memory.NewMaterialRepository(),
		products:  memory.NewProductRepository(),
		recipes:   memory.NewRecipeRepository(),
	}
	log := logger.Nop()
	f.availability = production.NewAvailabilityUseCase(f.products, f.recipes, log, 2)
	f.batch = production.NewBatchUseCase(f.products, f.recipes, log)
	f.multi = production.NewMultiProductUseCase(f.batch, log)
	f.planner = production.NewPlannerUseCase(f.multi, f.products, f.recipes, log)
	f.schedule = production.NewScheduleUseCase(f.products, f.recipes, log, func() time.Time { return testNow })
	f.restock = production.NewRestockUseCase(f.materials, log)
	return f
}

func (f *fixture) nextID(prefix string) string {
	f.seq++
	return fmt.Sprintf("%s-%03d", prefix, f.seq)
}

// addMaterial siembra un material en pcs con reorden 0 (ajustar en el test si aplica).
func (f *fixture) addMaterial(name string, stock, unitCost float64) *entity.Material {
	m := &entity.Material{
		ID:            f.nextID("mat"),
		CompanyID:     testCompanyID,
		SKU:           f.nextID("sku"),
		Name:          name,
		Unit:          entity.UnitPcs,
		StockQuantity: decimal.NewFromFloat(stock),
		UnitCost:      decimal.NewFromFloat(unitCost),
	}
	f.materials.Save(m)
	return m
}

func (f *fixture) addProduct(name, invType string) *entity.Product {
	p := &entity.Product{
		ID:                      f.nextID("prod"),
		CompanyID:               testCompanyID,
		SKU:                     f.nextID("psku"),
		Name:                    name,
		InventoryManagementType: invType,
	}
	f.products.Save(p)
	return p
}

// comp componente de receta para los helpers de siembra.
type comp struct {
	material *entity.Material
	qty      float64
	waste    float64
}

// addRecipe siembra la receta activa del producto con los componentes dados,
// en el orden recibido (el orden importa para el desempate del cuello de botella).
func (f *fixture) addRecipe(product *entity.Product, comps ...comp) *entity.Recipe {
	r := &entity.Recipe{
		ID:            f.nextID("rec"),
		CompanyID:     testCompanyID,
		ProductID:     product.ID,
		Name:          "receta " + product.Name,
		YieldQuantity: decimal.NewFromInt(1),
		YieldUnit:     "pcs",
		IsActive:      true,
	}
	for _, c := range comps {
		err := r.AddComponent(&entity.RecipeComponent{
			ID:               f.nextID("cmp"),
			MaterialID:       c.material.ID,
			Material:         c.material,
			QuantityRequired: decimal.NewFromFloat(c.qty),
			WastePercentage:  decimal.NewFromFloat(c.waste),
		})
		if err != nil {
			panic(err)
		}
	}
	f.recipes.Save(r)
	return r
}
