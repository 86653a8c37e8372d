package production

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/jhoicas/bom-engine/internal/application/dto"
	"github.com/jhoicas/bom-engine/internal/domain"
	"github.com/jhoicas/bom-engine/internal/domain/entity"
	"github.com/jhoicas/bom-engine/internal/domain/repository"
	"github.com/jhoicas/bom-engine/pkg/logger"
)

const defaultBulkWorkers = 4

// AvailabilityUseCase responde "¿cuántas unidades puedo producir ahora?":
// explosión BOM de la receta activa, material cuello de botella y detalle por
// componente. Lectura pura: seguro para llamadas concurrentes.
type AvailabilityUseCase struct {
	productRepo repository.ProductRepository
	recipeRepo  repository.RecipeRepository
	log         *logger.Logger
	workers     int
}

// NewAvailabilityUseCase construye el caso de uso. workers acota el fan-out de
// BulkCalculateAvailability (<= 0 usa el valor por defecto).
func NewAvailabilityUseCase(
	productRepo repository.ProductRepository,
	recipeRepo repository.RecipeRepository,
	log *logger.Logger,
	workers int,
) *AvailabilityUseCase {
	if workers <= 0 {
		workers = defaultBulkWorkers
	}
	return &AvailabilityUseCase{
		productRepo: productRepo,
		recipeRepo:  recipeRepo,
		log:         log,
		workers:     workers,
	}
}

// CalculateAvailableQuantity calcula el máximo producible del producto con el
// stock actual. Sin receta activa NO es error: devuelve capacidad cero con
// Reason explicativo (distinto del "cero real" por stock insuficiente).
func (uc *AvailabilityUseCase) CalculateAvailableQuantity(
	ctx context.Context,
	companyID, productID string,
) (*dto.AvailabilityResultDTO, error) {
	product, err := uc.fetchBOMProduct(ctx, companyID, productID)
	if err != nil {
		return nil, err
	}

	recipe, err := uc.recipeRepo.GetActiveForProduct(ctx, companyID, productID)
	if err != nil {
		return nil, fmt.Errorf("cargar receta activa: %w", err)
	}
	return uc.buildResult(product, recipe), nil
}

// BulkCalculateAvailability calcula disponibilidad para varios productos con
// una sola carga de recetas (contrato anti N+1) y un pool de workers acotado.
// Los fallos por producto quedan en su slot; uno malo no aborta el lote.
// Devuelve un mapa por ID de producto: el orden no es contrato.
func (uc *AvailabilityUseCase) BulkCalculateAvailability(
	ctx context.Context,
	companyID string,
	productIDs []string,
) (map[string]*dto.BulkAvailabilityEntryDTO, error) {
	if len(productIDs) == 0 {
		return nil, fmt.Errorf("%w: lista de productos vacía", domain.ErrInvalidInput)
	}
	ids := dedupe(productIDs)

	recipes, err := uc.recipeRepo.GetActiveForProducts(ctx, companyID, ids)
	if err != nil {
		return nil, fmt.Errorf("carga batch de recetas: %w", err)
	}

	type slot struct {
		id    string
		entry *dto.BulkAvailabilityEntryDTO
	}
	jobs := make(chan string)
	out := make(chan slot, len(ids))

	var wg sync.WaitGroup
	for w := 0; w < uc.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for id := range jobs {
				// Cancelación cooperativa: los productos restantes quedan
				// marcados con el error del contexto, sin trabajo perdido.
				if err := ctx.Err(); err != nil {
					out <- slot{id, &dto.BulkAvailabilityEntryDTO{Error: err.Error()}}
					continue
				}
				product, err := uc.fetchBOMProduct(ctx, companyID, id)
				if err != nil {
					out <- slot{id, &dto.BulkAvailabilityEntryDTO{Error: err.Error()}}
					continue
				}
				out <- slot{id, &dto.BulkAvailabilityEntryDTO{Result: uc.buildResult(product, recipes[id])}}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, id := range ids {
			select {
			case jobs <- id:
			case <-ctx.Done():
				// Los IDs no enviados se reportan abajo con el error del contexto.
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(out)
	}()

	results := make(map[string]*dto.BulkAvailabilityEntryDTO, len(ids))
	for s := range out {
		results[s.id] = s.entry
	}
	if err := ctx.Err(); err != nil {
		for _, id := range ids {
			if _, ok := results[id]; !ok {
				results[id] = &dto.BulkAvailabilityEntryDTO{Error: err.Error()}
			}
		}
	}
	return results, nil
}

// fetchBOMProduct carga el producto y valida las precondiciones de explosión.
func (uc *AvailabilityUseCase) fetchBOMProduct(ctx context.Context, companyID, id string) (*entity.Product, error) {
	product, err := uc.productRepo.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, fmt.Errorf("cargar producto %s: %w", id, err)
	}
	if product == nil {
		return nil, fmt.Errorf("producto %s: %w", id, domain.ErrNotFound)
	}
	if !product.IsBOM() {
		return nil, fmt.Errorf("producto %s: %w", id, domain.ErrInvalidProductType)
	}
	return product, nil
}

func (uc *AvailabilityUseCase) buildResult(product *entity.Product, recipe *entity.Recipe) *dto.AvailabilityResultDTO {
	res := &dto.AvailabilityResultDTO{
		ProductID:   product.ID,
		ProductName: product.Name,
	}
	if recipe == nil {
		res.Reason = "el producto no tiene receta activa"
		return res
	}

	ex := explodeRecipe(recipe)
	res.MaxQuantity = ex.maxQuantity
	res.Unbounded = ex.unbounded
	res.CanProduce = ex.unbounded || ex.maxQuantity > 0
	res.Bottleneck = ex.bottleneck
	res.Components = ex.components
	res.Warnings = ex.warnings
	if !res.CanProduce && ex.bottleneck != nil {
		res.Reason = fmt.Sprintf("stock insuficiente de %s", ex.bottleneck.MaterialName)
	}
	for _, w := range ex.warnings {
		uc.log.Warn().
			Str("product_id", product.ID).
			Str("recipe_id", recipe.ID).
			Msg(w)
	}
	return res
}

// dedupe elimina IDs repetidos y deja un orden determinista.
func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
