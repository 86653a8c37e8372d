package production

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/bom-engine/internal/application/dto"
	"github.com/jhoicas/bom-engine/internal/domain/repository"
	"github.com/jhoicas/bom-engine/pkg/logger"
)

// RestockUseCase genera la lista de reabastecimiento de materias primas:
// materiales bajo su punto de reorden con cantidad sugerida de pedido y costo
// estimado, priorizados por déficit.
type RestockUseCase struct {
	materialRepo repository.MaterialRepository
	log          *logger.Logger
}

// NewRestockUseCase construye el caso de uso de reabastecimiento.
func NewRestockUseCase(materialRepo repository.MaterialRepository, log *logger.Logger) *RestockUseCase {
	return &RestockUseCase{materialRepo: materialRepo, log: log}
}

// GenerateRestockSuggestions devuelve los materiales por debajo de su punto de
// reorden con la cantidad sugerida para volver al stock ideal (reorden * 1.5).
// Prioridad 1 = mayor déficit absoluto.
func (uc *RestockUseCase) GenerateRestockSuggestions(
	ctx context.Context,
	companyID string,
) ([]dto.RestockSuggestionDTO, error) {
	materials, err := uc.materialRepo.ListBelowReorderLevel(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("materiales bajo reorden: %w", err)
	}
	if len(materials) == 0 {
		return []dto.RestockSuggestionDTO{}, nil
	}

	idealFactor := decimal.NewFromFloat(1.5)
	suggestions := make([]dto.RestockSuggestionDTO, 0, len(materials))
	for _, m := range materials {
		ideal := m.ReorderLevel.Mul(idealFactor)
		suggested := ideal.Sub(m.StockQuantity)
		if suggested.LessThanOrEqual(decimal.Zero) {
			suggested = decimal.Zero
		}
		suggestions = append(suggestions, dto.RestockSuggestionDTO{
			MaterialID:         m.ID,
			SKU:                m.SKU,
			MaterialName:       m.Name,
			Unit:               string(m.Unit),
			CurrentStock:       m.StockQuantity,
			ReorderLevel:       m.ReorderLevel,
			IdealStock:         ideal,
			SuggestedOrderQty:  suggested,
			UnitCost:           m.UnitCost,
			EstimatedOrderCost: suggested.Mul(m.UnitCost),
		})
	}

	// Mayor déficit absoluto primero; empate por nombre para salida estable.
	sort.SliceStable(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		defA := a.ReorderLevel.Sub(a.CurrentStock)
		defB := b.ReorderLevel.Sub(b.CurrentStock)
		if !defA.Equal(defB) {
			return defA.GreaterThan(defB)
		}
		return a.MaterialName < b.MaterialName
	})
	for i := range suggestions {
		suggestions[i].Priority = i + 1
	}
	return suggestions, nil
}
