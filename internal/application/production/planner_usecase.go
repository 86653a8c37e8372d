package production

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/bom-engine/internal/application/dto"
	"github.com/jhoicas/bom-engine/internal/domain"
	"github.com/jhoicas/bom-engine/internal/domain/repository"
	"github.com/jhoicas/bom-engine/pkg/logger"
)

// PlannerUseCase decide cómo ejecutar un plan multi-producto: tal cual si es
// factible, con recomendaciones de reabastecimiento si no lo es, o con un plan
// parcial por producto cuando el caller lo permite.
//
// Limitación documentada: el optimizador evalúa cada producto por separado y
// NO redistribuye materiales compartidos según priority_mode; el modo se acepta
// y se registra pero hoy no cambia el orden de asignación.
type PlannerUseCase struct {
	multi       *MultiProductUseCase
	productRepo repository.ProductRepository
	recipeRepo  repository.RecipeRepository
	log         *logger.Logger
}

// NewPlannerUseCase construye el planificador.
func NewPlannerUseCase(
	multi *MultiProductUseCase,
	productRepo repository.ProductRepository,
	recipeRepo repository.RecipeRepository,
	log *logger.Logger,
) *PlannerUseCase {
	return &PlannerUseCase{multi: multi, productRepo: productRepo, recipeRepo: recipeRepo, log: log}
}

// CreateProductionPlan evalúa el plan agregado y clasifica el resultado:
//
//   - factible → ejecutar según lo planeado, sin degradación;
//   - infactible y allow_partial=false → estado infeasible con la lista de
//     faltantes y una recomendación de restock por material (sin degradar en
//     silencio);
//   - infactible y allow_partial=true → optimizador por producto:
//     fully_feasible / partially_feasible (con % de reducción) / infeasible.
func (uc *PlannerUseCase) CreateProductionPlan(
	ctx context.Context,
	companyID string,
	plan map[string]int64,
	opts dto.PlanOptionsDTO,
) (*dto.ProductionPlanDTO, error) {
	switch opts.PriorityMode {
	case "", dto.PriorityBalanced, dto.PriorityMaxQuantity, dto.PriorityMinCost:
	default:
		return nil, fmt.Errorf("%w: priority_mode desconocido %q", domain.ErrInvalidInput, opts.PriorityMode)
	}

	batch, err := uc.multi.CalculateMultiProductBatch(ctx, companyID, plan)
	if err != nil {
		return nil, err
	}

	res := &dto.ProductionPlanDTO{
		PlanID: uuid.New().String(),
		Batch:  batch,
	}

	if batch.OverallFeasible {
		res.Status = dto.PlanFeasible
		res.Recommendations = []string{"ejecutar el plan según lo solicitado: todos los materiales alcanzan"}
		return res, nil
	}

	if !opts.AllowPartial {
		res.Status = dto.PlanInfeasible
		res.Recommendations = restockRecommendations(batch)
		return res, nil
	}

	entries, err := uc.optimizePartial(ctx, companyID, plan)
	if err != nil {
		return nil, err
	}
	res.Products = entries

	allInfeasible := true
	for _, e := range entries {
		if e.Status != dto.ProductInfeasible {
			allInfeasible = false
			break
		}
	}
	if allInfeasible {
		res.Status = dto.PlanInfeasible
	} else {
		res.Status = dto.PlanPartial
	}
	res.Recommendations = append(partialRecommendations(entries), restockRecommendations(batch)...)
	return res, nil
}

// optimizePartial calcula el máximo producible de cada producto de forma
// independiente (política actual: sin optimización cruzada entre productos).
func (uc *PlannerUseCase) optimizePartial(
	ctx context.Context,
	companyID string,
	plan map[string]int64,
) ([]dto.ProductPlanEntryDTO, error) {
	productIDs := make([]string, 0, len(plan))
	for id := range plan {
		productIDs = append(productIDs, id)
	}
	sort.Strings(productIDs)

	recipes, err := uc.recipeRepo.GetActiveForProducts(ctx, companyID, productIDs)
	if err != nil {
		return nil, fmt.Errorf("carga batch de recetas: %w", err)
	}

	hundred := decimal.NewFromInt(100)
	entries := make([]dto.ProductPlanEntryDTO, 0, len(productIDs))
	for _, id := range productIDs {
		requested := plan[id]
		entry := dto.ProductPlanEntryDTO{ProductID: id, RequestedQuantity: requested}

		product, err := uc.productRepo.GetByID(ctx, companyID, id)
		switch {
		case err != nil:
			return nil, fmt.Errorf("cargar producto %s: %w", id, err)
		case product == nil:
			entry.Status = dto.ProductInfeasible
			entry.Reason = "producto no encontrado"
		case !product.IsBOM():
			entry.Status = dto.ProductInfeasible
			entry.Reason = "el producto no es de tipo BOM"
		case recipes[id] == nil:
			entry.Status = dto.ProductInfeasible
			entry.Reason = "el producto no tiene receta activa"
		default:
			ex := explodeRecipe(recipes[id])
			maxProducible := ex.maxQuantity
			if ex.unbounded {
				maxProducible = requested
			}
			switch {
			case maxProducible >= requested:
				entry.Status = dto.ProductFullyFeasible
				entry.SuggestedQuantity = requested
			case maxProducible > 0:
				entry.Status = dto.ProductPartiallyFeasible
				entry.SuggestedQuantity = maxProducible
				entry.ReductionPct = decimal.NewFromInt(requested - maxProducible).
					Div(decimal.NewFromInt(requested)).Mul(hundred).Round(2)
			default:
				entry.Status = dto.ProductInfeasible
				if ex.bottleneck != nil {
					entry.Reason = fmt.Sprintf("stock insuficiente de %s", ex.bottleneck.MaterialName)
				}
			}
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// restockRecommendations una línea por material con faltante, ordenadas por
// nombre para salida determinista. Las cifras van con formato regional.
func restockRecommendations(batch *dto.MultiProductBatchDTO) []string {
	p := message.NewPrinter(language.Spanish)

	shortages := make([]*dto.MergedMaterialDemandDTO, 0)
	for _, m := range batch.Materials {
		if !m.Sufficient {
			shortages = append(shortages, m)
		}
	}
	sort.Slice(shortages, func(i, j int) bool { return shortages[i].MaterialName < shortages[j].MaterialName })

	recs := make([]string, 0, len(shortages))
	for _, m := range shortages {
		shortage, _ := m.Shortage.Float64()
		recs = append(recs, p.Sprintf("reabastecer %s: faltan %.2f %s para cubrir el plan",
			m.MaterialName, shortage, m.Unit))
	}
	for id, e := range batch.Products {
		if e.Error != "" {
			recs = append(recs, fmt.Sprintf("revisar el producto %s: %s", id, e.Error))
		}
	}
	sort.Strings(recs[len(shortages):])
	return recs
}

// partialRecommendations resume el veredicto del optimizador por producto.
func partialRecommendations(entries []dto.ProductPlanEntryDTO) []string {
	recs := make([]string, 0, len(entries))
	for _, e := range entries {
		switch e.Status {
		case dto.ProductPartiallyFeasible:
			recs = append(recs, fmt.Sprintf(
				"producir %d de %d unidades de %s (reducción del %s%%)",
				e.SuggestedQuantity, e.RequestedQuantity, e.ProductID, e.ReductionPct.StringFixed(2)))
		case dto.ProductInfeasible:
			recs = append(recs, fmt.Sprintf("no producir %s: %s", e.ProductID, e.Reason))
		}
	}
	return recs
}
