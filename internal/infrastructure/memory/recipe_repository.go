package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/bom-engine/internal/domain"
	"github.com/jhoicas/bom-engine/internal/domain/entity"
	"github.com/jhoicas/bom-engine/internal/domain/repository"
)

var _ repository.RecipeRepository = (*RecipeRepo)(nil)

// RecipeRepo repositorio de recetas en memoria. Mantiene la invariante de a lo
// sumo una receta activa por producto, igual que el adaptador PostgreSQL.
type RecipeRepo struct {
	mu      sync.RWMutex
	recipes map[string]*entity.Recipe // por ID de receta
}

// NewRecipeRepository construye el repositorio vacío.
func NewRecipeRepository() *RecipeRepo {
	return &RecipeRepo{recipes: make(map[string]*entity.Recipe)}
}

// Save inserta o reemplaza una receta (siembra de datos). Si llega activa,
// desactiva cualquier otra receta activa del mismo producto.
func (r *RecipeRepo) Save(recipe *entity.Recipe) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if recipe.IsActive {
		r.deactivateOthers(recipe.ProductID, recipe.ID)
	}
	r.recipes[recipe.ID] = recipe
}

// Activate activa la receta desactivando las demás del mismo producto.
func (r *RecipeRepo) Activate(_ context.Context, companyID, recipeID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	recipe, ok := r.recipes[recipeID]
	if !ok || recipe.CompanyID != companyID {
		return domain.ErrNotFound
	}
	r.deactivateOthers(recipe.ProductID, recipeID)
	recipe.IsActive = true
	return nil
}

// GetActiveForProduct devuelve la receta activa del producto o nil (estado
// válido, no error).
func (r *RecipeRepo) GetActiveForProduct(_ context.Context, companyID, productID string) (*entity.Recipe, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, recipe := range r.recipes {
		if recipe.CompanyID == companyID && recipe.ProductID == productID && recipe.IsActive {
			return recipe, nil
		}
	}
	return nil, nil
}

// GetActiveForProducts carga en lote las recetas activas. Productos sin receta
// no aparecen en el mapa.
func (r *RecipeRepo) GetActiveForProducts(_ context.Context, companyID string, productIDs []string) (map[string]*entity.Recipe, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	wanted := make(map[string]struct{}, len(productIDs))
	for _, id := range productIDs {
		wanted[id] = struct{}{}
	}
	out := make(map[string]*entity.Recipe, len(productIDs))
	for _, recipe := range r.recipes {
		if recipe.CompanyID != companyID || !recipe.IsActive {
			continue
		}
		if _, ok := wanted[recipe.ProductID]; ok {
			out[recipe.ProductID] = recipe
		}
	}
	return out, nil
}

// deactivateOthers requiere r.mu tomado en escritura.
func (r *RecipeRepo) deactivateOthers(productID, exceptID string) {
	for _, other := range r.recipes {
		if other.ProductID == productID && other.ID != exceptID {
			other.IsActive = false
		}
	}
}
