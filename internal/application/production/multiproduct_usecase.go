package production

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/bom-engine/internal/application/dto"
	"github.com/jhoicas/bom-engine/internal/domain"
	"github.com/jhoicas/bom-engine/internal/domain/production"
	"github.com/jhoicas/bom-engine/pkg/logger"
)

// MultiProductUseCase combina los requisitos de lote de varios productos en una
// sola vista de demanda por material compartido.
//
// Propiedad clave de corrección: la suficiencia se re-evalúa contra el total
// FUSIONADO por material. Un material "suficiente" para cada producto por
// separado puede ser globalmente insuficiente una vez sumadas las demandas.
type MultiProductUseCase struct {
	batch *BatchUseCase
	log   *logger.Logger
}

// NewMultiProductUseCase construye el agregador multi-producto.
func NewMultiProductUseCase(batch *BatchUseCase, log *logger.Logger) *MultiProductUseCase {
	return &MultiProductUseCase{batch: batch, log: log}
}

// CalculateMultiProductBatch ejecuta el cálculo de lote de cada producto y
// fusiona los requisitos por ID de material. El fallo de un producto (sin
// receta, tipo inválido) queda en su slot y no aborta a los demás.
// Validación previa del plan: cantidades >= 1 o falla rápido todo el plan.
func (uc *MultiProductUseCase) CalculateMultiProductBatch(
	ctx context.Context,
	companyID string,
	plan map[string]int64,
) (*dto.MultiProductBatchDTO, error) {
	if len(plan) == 0 {
		return nil, fmt.Errorf("%w: plan de producción vacío", domain.ErrInvalidInput)
	}
	productIDs := make([]string, 0, len(plan))
	for id, qty := range plan {
		if id == "" || qty < 1 {
			return nil, fmt.Errorf("%w: cantidad inválida para el producto %q", domain.ErrInvalidInput, id)
		}
		productIDs = append(productIDs, id)
	}
	// Orden determinista para la fusión y la trazabilidad de contribuciones.
	sort.Strings(productIDs)

	res := &dto.MultiProductBatchDTO{
		Products:        make(map[string]*dto.ProductBatchEntryDTO, len(plan)),
		Materials:       make(map[string]*dto.MergedMaterialDemandDTO),
		OverallFeasible: true,
		TotalCost:       decimal.Zero,
	}

	for _, productID := range productIDs {
		qty := plan[productID]
		entry := &dto.ProductBatchEntryDTO{Quantity: qty}
		res.Products[productID] = entry

		batch, err := uc.batch.CalculateBatchRequirements(ctx, companyID, productID, qty)
		if err != nil {
			// Fallo aislado por producto; el agregado global deja de ser factible.
			entry.Error = err.Error()
			res.OverallFeasible = false
			uc.log.Warn().Str("product_id", productID).Err(err).Msg("producto excluido del agregado")
			continue
		}
		entry.Batch = batch
		res.TotalCost = res.TotalCost.Add(batch.Cost.TotalMaterialCost)
		if !batch.CanProduce {
			res.OverallFeasible = false
		}

		for _, c := range batch.Components {
			merged, ok := res.Materials[c.MaterialID]
			if !ok {
				merged = &dto.MergedMaterialDemandDTO{
					MaterialID:     c.MaterialID,
					MaterialName:   c.MaterialName,
					Unit:           c.Unit,
					TotalRequired:  decimal.Zero,
					AvailableStock: c.AvailableStock,
				}
				res.Materials[c.MaterialID] = merged
			}
			merged.TotalRequired = merged.TotalRequired.Add(c.RequiredQuantity)
			merged.Contributions = append(merged.Contributions, dto.MaterialContributionDTO{
				ProductID: productID,
				Quantity:  qty,
				Required:  c.RequiredQuantity,
			})
		}
	}

	// Re-evaluación contra el total fusionado, no contra cada vista aislada.
	for _, merged := range res.Materials {
		merged.Shortage = production.Shortage(merged.TotalRequired, merged.AvailableStock)
		merged.Sufficient = merged.Shortage.IsZero()
		if !merged.Sufficient {
			res.OverallFeasible = false
		}
	}
	return res, nil
}
