package production_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bom-engine/internal/domain"
	"github.com/jhoicas/bom-engine/internal/domain/entity"
)

// TestCalculateAvailableQuantity_DivisionEntera con 10 en stock y 3 por unidad
// el máximo es 3: división entera hacia abajo, nunca redondeo hacia arriba.
func TestCalculateAvailableQuantity_DivisionEntera(t *testing.T) {
	f := newFixture()
	harina := f.addMaterial("Harina", 10, 0.2)
	p := f.addProduct("Arepa", entity.InventoryBOM)
	f.addRecipe(p, comp{material: harina, qty: 3})

	res, err := f.availability.CalculateAvailableQuantity(context.Background(), testCompanyID, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), res.MaxQuantity)
	assert.True(t, res.CanProduce)
}

// TestCalculateAvailableQuantity_EjemploHamburguesa flujo de referencia:
// pan (qty 1, 0% merma, stock 50) y carne (qty 1, 10% merma → 1.1, stock 22).
// Limita la carne: floor(22/1.1) = 20.
func TestCalculateAvailableQuantity_EjemploHamburguesa(t *testing.T) {
	f := newFixture()
	bun := f.addMaterial("Pan", 50, 0.5)
	patty := f.addMaterial("Carne", 22, 1.2)
	p := f.addProduct("Hamburguesa", entity.InventoryBOM)
	f.addRecipe(p, comp{material: bun, qty: 1}, comp{material: patty, qty: 1, waste: 10})

	res, err := f.availability.CalculateAvailableQuantity(context.Background(), testCompanyID, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(20), res.MaxQuantity)
	require.NotNil(t, res.Bottleneck)
	assert.Equal(t, patty.ID, res.Bottleneck.MaterialID)
	assert.Equal(t, "Carne", res.Bottleneck.MaterialName)
	require.Len(t, res.Components, 2)
	assert.Equal(t, int64(50), res.Components[0].MaxProducible)
	assert.Equal(t, int64(20), res.Components[1].MaxProducible)
	assert.True(t, res.Components[1].Limiting)
	assert.False(t, res.Components[0].Limiting)
}

// TestCalculateAvailableQuantity_DesempateDeterminista dos materiales empatados
// en el mínimo: el cuello de botella es siempre el primero en el orden de la
// receta, en llamadas repetidas.
func TestCalculateAvailableQuantity_DesempateDeterminista(t *testing.T) {
	f := newFixture()
	a := f.addMaterial("Material A", 12, 1)
	b := f.addMaterial("Material B", 12, 1)
	p := f.addProduct("Empate", entity.InventoryBOM)
	f.addRecipe(p, comp{material: a, qty: 2}, comp{material: b, qty: 2})

	for i := 0; i < 10; i++ {
		res, err := f.availability.CalculateAvailableQuantity(context.Background(), testCompanyID, p.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(6), res.MaxQuantity)
		require.NotNil(t, res.Bottleneck)
		assert.Equal(t, a.ID, res.Bottleneck.MaterialID, "iteración %d", i)
	}
}

// TestCalculateAvailableQuantity_MermaReduceCapacidad subir la merma jamás
// aumenta el máximo producible (monótono no creciente).
func TestCalculateAvailableQuantity_MermaReduceCapacidad(t *testing.T) {
	capacityWithWaste := func(waste float64) int64 {
		f := newFixture()
		m := f.addMaterial("Insumo", 30, 1)
		p := f.addProduct("Producto", entity.InventoryBOM)
		f.addRecipe(p, comp{material: m, qty: 1, waste: waste})
		res, err := f.availability.CalculateAvailableQuantity(context.Background(), testCompanyID, p.ID)
		require.NoError(t, err)
		return res.MaxQuantity
	}

	assert.Equal(t, int64(30), capacityWithWaste(0))
	assert.Equal(t, int64(20), capacityWithWaste(50))  // efectivo 1.5
	assert.Equal(t, int64(15), capacityWithWaste(100)) // efectivo 2.0
}

// TestCalculateAvailableQuantity_SinRecetaActiva no es error: capacidad cero
// bien formada con razón explicativa (estado transitorio normal).
func TestCalculateAvailableQuantity_SinRecetaActiva(t *testing.T) {
	f := newFixture()
	p := f.addProduct("Sin receta", entity.InventoryBOM)

	res, err := f.availability.CalculateAvailableQuantity(context.Background(), testCompanyID, p.ID)
	require.NoError(t, err)
	assert.False(t, res.CanProduce)
	assert.Equal(t, int64(0), res.MaxQuantity)
	assert.NotEmpty(t, res.Reason)
	assert.Nil(t, res.Bottleneck)
}

// TestCalculateAvailableQuantity_ProductoSimple explosión sobre un producto no
// BOM es error de uso, no un cero silencioso.
func TestCalculateAvailableQuantity_ProductoSimple(t *testing.T) {
	f := newFixture()
	p := f.addProduct("Gaseosa", entity.InventorySimple)

	_, err := f.availability.CalculateAvailableQuantity(context.Background(), testCompanyID, p.ID)
	require.ErrorIs(t, err, domain.ErrInvalidProductType)
}

func TestCalculateAvailableQuantity_ProductoInexistente(t *testing.T) {
	f := newFixture()
	_, err := f.availability.CalculateAvailableQuantity(context.Background(), testCompanyID, "prod-inexistente")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

// TestCalculateAvailableQuantity_RecetaSinComponentes receta vacía: producible
// sin límite con warning de dato degenerado; ni error ni crash.
func TestCalculateAvailableQuantity_RecetaSinComponentes(t *testing.T) {
	f := newFixture()
	p := f.addProduct("Vacío", entity.InventoryBOM)
	f.addRecipe(p)

	res, err := f.availability.CalculateAvailableQuantity(context.Background(), testCompanyID, p.ID)
	require.NoError(t, err)
	assert.True(t, res.CanProduce)
	assert.True(t, res.Unbounded)
	assert.NotEmpty(t, res.Warnings)
}

// TestCalculateAvailableQuantity_ComponenteDegenerado cantidad efectiva 0 no
// divide por cero: el componente no limita y queda anotado en Warnings.
func TestCalculateAvailableQuantity_ComponenteDegenerado(t *testing.T) {
	f := newFixture()
	agua := f.addMaterial("Agua", 100, 0)
	malta := f.addMaterial("Malta", 8, 2)
	p := f.addProduct("Cerveza", entity.InventoryBOM)

	// El dato degenerado solo puede venir de persistencia corrupta: se arma la
	// receta a mano porque AddComponent lo rechazaría.
	r := &entity.Recipe{
		ID: "rec-degen", CompanyID: testCompanyID, ProductID: p.ID,
		Name: "degenerada", YieldQuantity: decimal.NewFromInt(1), IsActive: true,
	}
	r.Components = []*entity.RecipeComponent{
		{ID: "c1", MaterialID: agua.ID, Material: agua, QuantityRequired: decimal.Zero},
		{ID: "c2", MaterialID: malta.ID, Material: malta, QuantityRequired: decimal.NewFromInt(2)},
	}
	f.recipes.Save(r)

	res, err := f.availability.CalculateAvailableQuantity(context.Background(), testCompanyID, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(4), res.MaxQuantity)
	require.NotNil(t, res.Bottleneck)
	assert.Equal(t, malta.ID, res.Bottleneck.MaterialID)
	assert.NotEmpty(t, res.Warnings)
	assert.True(t, res.Components[0].Unbounded)
}

// TestCalculateAvailableQuantity_Idempotente dos llamadas sin mutación de
// stock intermedia devuelven resultados idénticos.
func TestCalculateAvailableQuantity_Idempotente(t *testing.T) {
	f := newFixture()
	m := f.addMaterial("Azúcar", 47, 0.3)
	p := f.addProduct("Postre", entity.InventoryBOM)
	f.addRecipe(p, comp{material: m, qty: 3, waste: 5})

	first, err := f.availability.CalculateAvailableQuantity(context.Background(), testCompanyID, p.ID)
	require.NoError(t, err)
	second, err := f.availability.CalculateAvailableQuantity(context.Background(), testCompanyID, p.ID)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

// TestBulkCalculateAvailability_AislaFallos un producto malo no aborta el
// lote: cada fallo queda en su propio slot del mapa.
func TestBulkCalculateAvailability_AislaFallos(t *testing.T) {
	f := newFixture()
	m := f.addMaterial("Queso", 9, 1)
	ok := f.addProduct("Quesadilla", entity.InventoryBOM)
	f.addRecipe(ok, comp{material: m, qty: 3})
	simple := f.addProduct("Refresco", entity.InventorySimple)

	results, err := f.availability.BulkCalculateAvailability(
		context.Background(), testCompanyID, []string{ok.ID, simple.ID, "prod-fantasma"})
	require.NoError(t, err)
	require.Len(t, results, 3)

	require.NotNil(t, results[ok.ID].Result)
	assert.Equal(t, int64(3), results[ok.ID].Result.MaxQuantity)
	assert.Empty(t, results[ok.ID].Error)

	assert.Nil(t, results[simple.ID].Result)
	assert.Contains(t, results[simple.ID].Error, domain.ErrInvalidProductType.Error())

	assert.Contains(t, results["prod-fantasma"].Error, domain.ErrNotFound.Error())
}

func TestBulkCalculateAvailability_ListaVacia(t *testing.T) {
	f := newFixture()
	_, err := f.availability.BulkCalculateAvailability(context.Background(), testCompanyID, nil)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

// TestBulkCalculateAvailability_ContextoCancelado con el contexto ya cancelado
// ningún producto se calcula: todos los slots reportan la cancelación.
func TestBulkCalculateAvailability_ContextoCancelado(t *testing.T) {
	f := newFixture()
	m := f.addMaterial("Tomate", 10, 0.1)
	p := f.addProduct("Salsa", entity.InventoryBOM)
	f.addRecipe(p, comp{material: m, qty: 1})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := f.availability.BulkCalculateAvailability(ctx, testCompanyID, []string{p.ID})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Contains(t, results[p.ID].Error, context.Canceled.Error())
}
