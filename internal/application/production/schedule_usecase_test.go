package production_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bom-engine/internal/application/dto"
	"github.com/jhoicas/bom-engine/internal/domain"
	"github.com/jhoicas/bom-engine/internal/domain/entity"
)

func due(days int) time.Time { return testNow.AddDate(0, 0, days) }

// TestGenerateProductionSchedule_UrgenciaManda dos órdenes compiten por un
// material que solo alcanza para una: gana la de entrega más próxima sin
// importar el orden de llegada.
func TestGenerateProductionSchedule_UrgenciaManda(t *testing.T) {
	f := newFixture()
	m := f.addMaterial("Carne", 10, 2)
	p := f.addProduct("Hamburguesa", entity.InventoryBOM)
	f.addRecipe(p, comp{material: m, qty: 1})

	orders := []entity.ProductionOrder{
		{ID: "ord-tarde", ProductID: p.ID, Quantity: 10, DueDate: due(9)},
		{ID: "ord-urgente", ProductID: p.ID, Quantity: 10, DueDate: due(3)},
	}
	res, err := f.schedule.GenerateProductionSchedule(context.Background(), testCompanyID, orders, 30)
	require.NoError(t, err)
	require.Len(t, res.Orders, 2)

	// El resultado sale ordenado por fecha: la urgente primero.
	assert.Equal(t, "ord-urgente", res.Orders[0].OrderID)
	assert.Equal(t, dto.OrderScheduled, res.Orders[0].Status)
	assert.Equal(t, "ord-tarde", res.Orders[1].OrderID)
	assert.Equal(t, dto.OrderMaterialShortage, res.Orders[1].Status)
	assert.Contains(t, res.Orders[1].MissingMaterials, "Carne")
}

// TestGenerateProductionSchedule_IntercambioDeFechas intercambiar las fechas de
// entrega intercambia qué orden se programa: el cronograma depende de la
// urgencia, no de la identidad de la orden.
func TestGenerateProductionSchedule_IntercambioDeFechas(t *testing.T) {
	f := newFixture()
	m := f.addMaterial("Carne", 10, 2)
	p := f.addProduct("Hamburguesa", entity.InventoryBOM)
	f.addRecipe(p, comp{material: m, qty: 1})

	orders := []entity.ProductionOrder{
		{ID: "ord-a", ProductID: p.ID, Quantity: 10, DueDate: due(3)},
		{ID: "ord-b", ProductID: p.ID, Quantity: 10, DueDate: due(9)},
	}
	res, err := f.schedule.GenerateProductionSchedule(context.Background(), testCompanyID, orders, 30)
	require.NoError(t, err)
	assert.Equal(t, dto.OrderScheduled, res.Orders[0].Status)
	assert.Equal(t, "ord-a", res.Orders[0].OrderID)

	// Mismo escenario con las fechas cambiadas: ahora gana ord-b.
	swapped := []entity.ProductionOrder{
		{ID: "ord-a", ProductID: p.ID, Quantity: 10, DueDate: due(9)},
		{ID: "ord-b", ProductID: p.ID, Quantity: 10, DueDate: due(3)},
	}
	res2, err := f.schedule.GenerateProductionSchedule(context.Background(), testCompanyID, swapped, 30)
	require.NoError(t, err)
	assert.Equal(t, "ord-b", res2.Orders[0].OrderID)
	assert.Equal(t, dto.OrderScheduled, res2.Orders[0].Status)
	assert.Equal(t, "ord-a", res2.Orders[1].OrderID)
	assert.Equal(t, dto.OrderMaterialShortage, res2.Orders[1].Status)
}

// TestGenerateProductionSchedule_SinConsumoParcial una orden rechazada no
// consume nada: el material sigue íntegro para las siguientes.
func TestGenerateProductionSchedule_SinConsumoParcial(t *testing.T) {
	f := newFixture()
	pan := f.addMaterial("Pan", 100, 0.5)
	carne := f.addMaterial("Carne", 5, 2)
	burger := f.addProduct("Hamburguesa", entity.InventoryBOM)
	f.addRecipe(burger, comp{material: pan, qty: 1}, comp{material: carne, qty: 1})
	hotdog := f.addProduct("Perro caliente", entity.InventoryBOM)
	f.addRecipe(hotdog, comp{material: pan, qty: 1})

	orders := []entity.ProductionOrder{
		// La primera pide 20 hamburguesas: el pan alcanza pero la carne no,
		// y el rechazo es completo (ni el pan se consume).
		{ID: "ord-1", ProductID: burger.ID, Quantity: 20, DueDate: due(2)},
		{ID: "ord-2", ProductID: hotdog.ID, Quantity: 100, DueDate: due(5)},
	}
	res, err := f.schedule.GenerateProductionSchedule(context.Background(), testCompanyID, orders, 30)
	require.NoError(t, err)

	assert.Equal(t, dto.OrderMaterialShortage, res.Orders[0].Status)
	assert.Contains(t, res.Orders[0].MissingMaterials, "Carne")
	// Los 100 panes siguen disponibles para la segunda orden.
	assert.Equal(t, dto.OrderScheduled, res.Orders[1].Status)
	assert.True(t, res.EndingLedger[pan.ID].IsZero(), "pan restante %s", res.EndingLedger[pan.ID])
}

// TestGenerateProductionSchedule_FechaProgramada la producción se programa para
// la víspera de la entrega.
func TestGenerateProductionSchedule_FechaProgramada(t *testing.T) {
	f := newFixture()
	m := f.addMaterial("Leche", 50, 1)
	p := f.addProduct("Yogur", entity.InventoryBOM)
	f.addRecipe(p, comp{material: m, qty: 1})

	orders := []entity.ProductionOrder{
		{ID: "ord-1", ProductID: p.ID, Quantity: 10, DueDate: due(7)},
	}
	res, err := f.schedule.GenerateProductionSchedule(context.Background(), testCompanyID, orders, 30)
	require.NoError(t, err)
	assert.Equal(t, dto.OrderScheduled, res.Orders[0].Status)
	assert.Equal(t, due(6), res.Orders[0].ScheduledDate)
}

// TestGenerateProductionSchedule_FueraDeHorizonte entregas más allá del
// horizonte no se evalúan ni consumen del libro mayor.
func TestGenerateProductionSchedule_FueraDeHorizonte(t *testing.T) {
	f := newFixture()
	m := f.addMaterial("Café", 30, 3)
	p := f.addProduct("Café molido", entity.InventoryBOM)
	f.addRecipe(p, comp{material: m, qty: 1})

	orders := []entity.ProductionOrder{
		{ID: "ord-lejana", ProductID: p.ID, Quantity: 30, DueDate: due(45)},
		{ID: "ord-cercana", ProductID: p.ID, Quantity: 10, DueDate: due(5)},
	}
	res, err := f.schedule.GenerateProductionSchedule(context.Background(), testCompanyID, orders, 30)
	require.NoError(t, err)
	require.Len(t, res.Orders, 2)

	assert.Equal(t, "ord-cercana", res.Orders[0].OrderID)
	assert.Equal(t, dto.OrderScheduled, res.Orders[0].Status)
	assert.Equal(t, "ord-lejana", res.Orders[1].OrderID)
	assert.Equal(t, dto.OrderBeyondHorizon, res.Orders[1].Status)
	// La orden fuera de horizonte no tocó el libro: 30 - 10 = 20.
	assert.True(t, res.EndingLedger[m.ID].Equal(decimal.NewFromInt(20)))
}

// TestGenerateProductionSchedule_OrdenConError producto sin receta activa: el
// slot reporta el error y el resto del cronograma sigue.
func TestGenerateProductionSchedule_OrdenConError(t *testing.T) {
	f := newFixture()
	m := f.addMaterial("Arroz", 20, 0.3)
	ok := f.addProduct("Arroz blanco", entity.InventoryBOM)
	f.addRecipe(ok, comp{material: m, qty: 1})
	broken := f.addProduct("Sin receta", entity.InventoryBOM)

	orders := []entity.ProductionOrder{
		{ID: "ord-rota", ProductID: broken.ID, Quantity: 5, DueDate: due(2)},
		{ID: "ord-sana", ProductID: ok.ID, Quantity: 5, DueDate: due(4)},
	}
	res, err := f.schedule.GenerateProductionSchedule(context.Background(), testCompanyID, orders, 30)
	require.NoError(t, err)

	assert.Equal(t, dto.OrderError, res.Orders[0].Status)
	assert.Contains(t, res.Orders[0].Error, domain.ErrNoActiveRecipe.Error())
	assert.Equal(t, dto.OrderScheduled, res.Orders[1].Status)
}

func TestGenerateProductionSchedule_EntradaInvalida(t *testing.T) {
	f := newFixture()
	p := f.addProduct("Cualquiera", entity.InventoryBOM)

	_, err := f.schedule.GenerateProductionSchedule(context.Background(), testCompanyID, nil, 0)
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	bad := []entity.ProductionOrder{{ID: "ord-x", ProductID: p.ID, Quantity: 0, DueDate: due(1)}}
	_, err = f.schedule.GenerateProductionSchedule(context.Background(), testCompanyID, bad, 30)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}
