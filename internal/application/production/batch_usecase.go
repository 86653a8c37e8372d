package production

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/bom-engine/internal/application/dto"
	"github.com/jhoicas/bom-engine/internal/domain"
	"github.com/jhoicas/bom-engine/internal/domain/entity"
	"github.com/jhoicas/bom-engine/internal/domain/production"
	"github.com/jhoicas/bom-engine/internal/domain/repository"
	"github.com/jhoicas/bom-engine/pkg/logger"
)

// batchSizeLadder escalera fija de tamaños candidatos para la recomendación
// de lote óptimo.
var batchSizeLadder = []int64{10, 25, 50, 100, 200, 500}

// BatchUseCase proyecta el consumo de materiales para un lote concreto:
// requisitos exactos, faltantes, costo, simulación de remanente, tamaño óptimo
// y pronóstico de agotamiento. Proyección pura: el stock nunca se muta.
type BatchUseCase struct {
	productRepo repository.ProductRepository
	recipeRepo  repository.RecipeRepository
	log         *logger.Logger
}

// NewBatchUseCase construye el caso de uso de lotes.
func NewBatchUseCase(
	productRepo repository.ProductRepository,
	recipeRepo repository.RecipeRepository,
	log *logger.Logger,
) *BatchUseCase {
	return &BatchUseCase{productRepo: productRepo, recipeRepo: recipeRepo, log: log}
}

// CalculateBatchRequirements calcula el consumo por componente para producir
// quantity unidades. A diferencia de la consulta de disponibilidad, aquí la
// receta es obligatoria: sin receta no hay nada que proyectar (ErrNoActiveRecipe).
func (uc *BatchUseCase) CalculateBatchRequirements(
	ctx context.Context,
	companyID, productID string,
	quantity int64,
) (*dto.BatchRequirementsDTO, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: la cantidad debe ser positiva, llegó %d", domain.ErrInvalidInput, quantity)
	}
	recipe, err := uc.fetchActiveRecipe(ctx, companyID, productID)
	if err != nil {
		return nil, err
	}
	return uc.computeBatch(recipe, productID, quantity), nil
}

// SimulateProduction responde "qué pasaría si produzco quantity": los mismos
// requisitos del lote más el remanente con signo por material. Un remanente
// negativo señala infactibilidad de forma explícita (nunca se persiste).
func (uc *BatchUseCase) SimulateProduction(
	ctx context.Context,
	companyID, productID string,
	quantity int64,
) (*dto.ProductionSimulationDTO, error) {
	batch, err := uc.CalculateBatchRequirements(ctx, companyID, productID, quantity)
	if err != nil {
		return nil, err
	}
	sim := &dto.ProductionSimulationDTO{Batch: batch, Feasible: batch.CanProduce}
	for _, c := range batch.Components {
		remaining := c.AvailableStock.Sub(c.RequiredQuantity)
		sim.Remaining = append(sim.Remaining, dto.MaterialRemainingDTO{
			MaterialID:   c.MaterialID,
			MaterialName: c.MaterialName,
			Remaining:    remaining,
			Negative:     remaining.LessThan(decimal.Zero),
		})
	}
	return sim, nil
}

// CalculateOptimalBatchSize evalúa la escalera fija de tamaños de lote hasta la
// capacidad actual y recomienda el de menor costo unitario. Candidatos que
// exceden la capacidad se excluyen, no se recortan.
func (uc *BatchUseCase) CalculateOptimalBatchSize(
	ctx context.Context,
	companyID, productID string,
) (*dto.OptimalBatchDTO, error) {
	recipe, err := uc.fetchActiveRecipe(ctx, companyID, productID)
	if err != nil {
		return nil, err
	}
	ex := explodeRecipe(recipe)

	res := &dto.OptimalBatchDTO{ProductID: productID, MaxCapacity: ex.maxQuantity}
	if !ex.unbounded && ex.maxQuantity == 0 {
		res.Recommendation = "sin capacidad de producción: reabastecer materiales antes de planear lotes"
		return res, nil
	}

	for _, q := range batchSizeLadder {
		if !ex.unbounded && q > ex.maxQuantity {
			continue
		}
		batch := uc.computeBatch(recipe, productID, q)
		opt := dto.BatchOptionDTO{
			Quantity:    q,
			TotalCost:   batch.Cost.TotalMaterialCost,
			CostPerUnit: batch.Cost.CostPerUnit,
		}
		res.Options = append(res.Options, opt)
		if res.Recommended == nil || opt.CostPerUnit.LessThan(res.Recommended.CostPerUnit) {
			recommended := opt
			res.Recommended = &recommended
		}
	}

	switch {
	case res.Recommended != nil:
		res.Recommendation = fmt.Sprintf(
			"producir lotes de %d unidades (costo unitario %s)",
			res.Recommended.Quantity, res.Recommended.CostPerUnit.StringFixed(4))
	default:
		// Capacidad positiva pero menor que el primer peldaño de la escalera.
		res.Recommendation = fmt.Sprintf(
			"ningún tamaño estándar de lote es alcanzable; capacidad actual: %d unidades", ex.maxQuantity)
	}
	return res, nil
}

// GetProductionCapacityForecast proyecta la capacidad con un modelo de
// agotamiento lineal: capacity(d) = max(0, actual - uso*d), cortando en cuanto
// llega a 0. days_until_depletion es nil si el uso diario es 0 (horizonte
// indefinido: jamás se divide por cero).
func (uc *BatchUseCase) GetProductionCapacityForecast(
	ctx context.Context,
	companyID, productID string,
	days int,
	avgDailyUsage decimal.Decimal,
) (*dto.CapacityForecastDTO, error) {
	if days <= 0 {
		return nil, fmt.Errorf("%w: el horizonte debe ser positivo, llegó %d", domain.ErrInvalidInput, days)
	}
	if avgDailyUsage.LessThan(decimal.Zero) {
		return nil, fmt.Errorf("%w: el uso diario no puede ser negativo", domain.ErrInvalidInput)
	}
	recipe, err := uc.fetchActiveRecipe(ctx, companyID, productID)
	if err != nil {
		return nil, err
	}
	ex := explodeRecipe(recipe)

	res := &dto.CapacityForecastDTO{
		ProductID:       productID,
		CurrentCapacity: ex.maxQuantity,
		AvgDailyUsage:   avgDailyUsage,
	}
	current := decimal.NewFromInt(ex.maxQuantity)
	for d := 0; d <= days; d++ {
		remaining := current.Sub(avgDailyUsage.Mul(decimal.NewFromInt(int64(d))))
		capacity := remaining.Floor().IntPart()
		if capacity < 0 {
			capacity = 0
		}
		res.Days = append(res.Days, dto.DailyCapacityDTO{Day: d, Capacity: capacity})
		if capacity == 0 {
			break
		}
	}
	if avgDailyUsage.GreaterThan(decimal.Zero) {
		depletion := current.Div(avgDailyUsage).Ceil().IntPart()
		res.DaysUntilDepletion = &depletion
	}
	return res, nil
}

// computeBatch núcleo puro de la proyección de lote sobre una receta ya cargada.
func (uc *BatchUseCase) computeBatch(recipe *entity.Recipe, productID string, quantity int64) *dto.BatchRequirementsDTO {
	res := &dto.BatchRequirementsDTO{
		ProductID:  productID,
		Quantity:   quantity,
		CanProduce: true,
	}
	total := decimal.Zero
	for _, c := range recipe.Components {
		eff := c.EffectiveQuantity()
		line := dto.ComponentRequirementDTO{
			MaterialID:     c.MaterialID,
			MaterialName:   c.Material.Name,
			Unit:           string(c.Material.Unit),
			AvailableStock: c.Material.StockQuantity,
		}
		if !eff.GreaterThan(decimal.Zero) {
			line.Sufficient = true
			res.Warnings = append(res.Warnings,
				fmt.Sprintf("componente %q con cantidad efectiva 0: consumo nulo (dato degenerado)", c.Material.Name))
			res.Components = append(res.Components, line)
			continue
		}
		line.RequiredQuantity = production.BatchRequirement(eff, quantity)
		line.Shortage = production.Shortage(line.RequiredQuantity, c.Material.StockQuantity)
		line.Sufficient = line.Shortage.IsZero()
		line.Cost = production.ComponentCost(line.RequiredQuantity, c.Material.UnitCost)
		total = total.Add(line.Cost)

		if !line.Sufficient {
			res.CanProduce = false
			res.Shortages = append(res.Shortages, line)
		}
		res.Components = append(res.Components, line)
	}
	if len(recipe.Components) == 0 {
		res.Warnings = append(res.Warnings,
			fmt.Sprintf("la receta %q no tiene componentes: lote sin consumo (dato degenerado)", recipe.Name))
	}
	res.Cost = dto.CostAnalysisDTO{
		TotalMaterialCost: total,
		CostPerUnit:       total.DivRound(decimal.NewFromInt(quantity), 4),
	}
	for _, w := range res.Warnings {
		uc.log.Warn().Str("product_id", productID).Str("recipe_id", recipe.ID).Msg(w)
	}
	return res
}

// fetchActiveRecipe valida producto BOM y exige receta activa.
func (uc *BatchUseCase) fetchActiveRecipe(ctx context.Context, companyID, productID string) (*entity.Recipe, error) {
	product, err := uc.productRepo.GetByID(ctx, companyID, productID)
	if err != nil {
		return nil, fmt.Errorf("cargar producto %s: %w", productID, err)
	}
	if product == nil {
		return nil, fmt.Errorf("producto %s: %w", productID, domain.ErrNotFound)
	}
	if !product.IsBOM() {
		return nil, fmt.Errorf("producto %s: %w", productID, domain.ErrInvalidProductType)
	}
	recipe, err := uc.recipeRepo.GetActiveForProduct(ctx, companyID, productID)
	if err != nil {
		return nil, fmt.Errorf("cargar receta activa: %w", err)
	}
	if recipe == nil {
		return nil, fmt.Errorf("producto %s: %w", productID, domain.ErrNoActiveRecipe)
	}
	return recipe, nil
}
