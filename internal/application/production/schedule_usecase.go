package production

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/bom-engine/internal/application/dto"
	"github.com/jhoicas/bom-engine/internal/domain"
	"github.com/jhoicas/bom-engine/internal/domain/entity"
	"github.com/jhoicas/bom-engine/internal/domain/production"
	"github.com/jhoicas/bom-engine/internal/domain/repository"
	"github.com/jhoicas/bom-engine/pkg/logger"
)

// ScheduleUseCase genera un cronograma de producción greedy de una sola pasada:
// órdenes ordenadas por fecha de entrega (la urgencia manda, no la cantidad ni
// el valor) consumiendo un libro mayor mutable de disponibilidad.
//
// El libro mayor exige un pliegue estrictamente secuencial: cada orden debe
// observar los decrementos de las anteriores antes de evaluarse. No
// paralelizar este recorrido.
//
// Simplificación conocida: greedy de una pasada, no un empaquetador óptimo
// global. Una orden tardía y pequeña puede quedar rechazada aunque reordenando
// cabría.
type ScheduleUseCase struct {
	productRepo repository.ProductRepository
	recipeRepo  repository.RecipeRepository
	log         *logger.Logger
	now         func() time.Time
}

// NewScheduleUseCase construye el scheduler. nowFn permite fijar el reloj en
// tests; nil usa time.Now.
func NewScheduleUseCase(
	productRepo repository.ProductRepository,
	recipeRepo repository.RecipeRepository,
	log *logger.Logger,
	nowFn func() time.Time,
) *ScheduleUseCase {
	if nowFn == nil {
		nowFn = time.Now
	}
	return &ScheduleUseCase{productRepo: productRepo, recipeRepo: recipeRepo, log: log, now: nowFn}
}

// GenerateProductionSchedule programa cada orden para la víspera de su entrega
// (DueDate - 1 día) si el libro mayor cubre el lote completo; en ese caso
// decrementa el libro antes de evaluar la siguiente. Si algún componente no
// alcanza, la orden se rechaza entera (material_shortage) sin consumir nada.
// Órdenes con entrega más allá del horizonte no se evalúan (beyond_horizon).
func (uc *ScheduleUseCase) GenerateProductionSchedule(
	ctx context.Context,
	companyID string,
	orders []entity.ProductionOrder,
	horizonDays int,
) (*dto.ProductionScheduleDTO, error) {
	if horizonDays <= 0 {
		return nil, fmt.Errorf("%w: el horizonte debe ser positivo, llegó %d", domain.ErrInvalidInput, horizonDays)
	}
	for _, o := range orders {
		if o.ProductID == "" || o.Quantity < 1 {
			return nil, fmt.Errorf("%w: orden %q malformada", domain.ErrInvalidInput, o.ID)
		}
	}

	// Una sola carga de recetas para todos los productos del cronograma.
	productIDs := uniqueProductIDs(orders)
	recipes, err := uc.recipeRepo.GetActiveForProducts(ctx, companyID, productIDs)
	if err != nil {
		return nil, fmt.Errorf("carga batch de recetas: %w", err)
	}
	products := make(map[string]*entity.Product, len(productIDs))
	for _, id := range productIDs {
		p, err := uc.productRepo.GetByID(ctx, companyID, id)
		if err != nil {
			return nil, fmt.Errorf("cargar producto %s: %w", id, err)
		}
		products[id] = p
	}

	// Orden ascendente por fecha de entrega: la más urgente reclama materiales
	// primero. Empate de fechas: se conserva el orden de llegada (estable).
	sorted := make([]entity.ProductionOrder, len(orders))
	copy(sorted, orders)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].DueDate.Before(sorted[j].DueDate) })

	horizon := uc.now().AddDate(0, 0, horizonDays)
	ledger := make(map[string]decimal.Decimal)

	res := &dto.ProductionScheduleDTO{
		ScheduleID:  uuid.New().String(),
		HorizonDays: horizonDays,
	}

	for _, order := range sorted {
		slot := dto.ScheduledOrderDTO{
			OrderID:   order.ID,
			ProductID: order.ProductID,
			Quantity:  order.Quantity,
			DueDate:   order.DueDate,
		}

		if order.DueDate.After(horizon) {
			slot.Status = dto.OrderBeyondHorizon
			res.Orders = append(res.Orders, slot)
			continue
		}

		recipe, err := uc.orderRecipe(products[order.ProductID], recipes[order.ProductID], order.ProductID)
		if err != nil {
			slot.Status = dto.OrderError
			slot.Error = err.Error()
			res.Orders = append(res.Orders, slot)
			continue
		}

		// Evaluación contra el estado ACTUAL del libro mayor, no contra el
		// stock original: aquí es donde el orden por fecha se vuelve decisivo.
		consumption, missing := evaluateAgainstLedger(recipe, order.Quantity, ledger)
		if len(missing) > 0 {
			// Rechazo completo: no se consume parcialmente.
			slot.Status = dto.OrderMaterialShortage
			slot.MissingMaterials = missing
			res.Orders = append(res.Orders, slot)
			continue
		}
		for materialID, required := range consumption {
			ledger[materialID] = ledger[materialID].Sub(required)
		}
		slot.Status = dto.OrderScheduled
		slot.ScheduledDate = order.DueDate.AddDate(0, 0, -1)
		res.Orders = append(res.Orders, slot)
	}

	res.EndingLedger = ledger
	return res, nil
}

// orderRecipe valida las precondiciones de una orden individual.
func (uc *ScheduleUseCase) orderRecipe(product *entity.Product, recipe *entity.Recipe, productID string) (*entity.Recipe, error) {
	if product == nil {
		return nil, fmt.Errorf("producto %s: %w", productID, domain.ErrNotFound)
	}
	if !product.IsBOM() {
		return nil, fmt.Errorf("producto %s: %w", productID, domain.ErrInvalidProductType)
	}
	if recipe == nil {
		return nil, fmt.Errorf("producto %s: %w", productID, domain.ErrNoActiveRecipe)
	}
	return recipe, nil
}

// evaluateAgainstLedger calcula el consumo de la orden y los materiales que no
// alcanzan contra el libro mayor. Materiales aún no vistos entran al libro con
// su stock actual (snapshot perezoso).
func evaluateAgainstLedger(
	recipe *entity.Recipe,
	quantity int64,
	ledger map[string]decimal.Decimal,
) (consumption map[string]decimal.Decimal, missing []string) {
	consumption = make(map[string]decimal.Decimal, len(recipe.Components))
	for _, c := range recipe.Components {
		eff := c.EffectiveQuantity()
		if !eff.GreaterThan(decimal.Zero) {
			continue // componente degenerado: no consume ni limita
		}
		if _, ok := ledger[c.MaterialID]; !ok {
			ledger[c.MaterialID] = c.Material.StockQuantity
		}
		required := production.BatchRequirement(eff, quantity)
		if ledger[c.MaterialID].LessThan(required) {
			missing = append(missing, c.Material.Name)
			continue
		}
		consumption[c.MaterialID] = required
	}
	return consumption, missing
}

// uniqueProductIDs IDs de producto sin repetir, en orden determinista.
func uniqueProductIDs(orders []entity.ProductionOrder) []string {
	ids := make([]string, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ProductID)
	}
	return dedupe(ids)
}
