package repository

import (
	"context"

	"github.com/jhoicas/bom-engine/internal/domain/entity"
)

// RecipeRepository define el puerto de recetas. Toda receta devuelta viene con
// sus componentes en orden de definición y cada componente con su Material
// precargado (contrato anti N+1: una consulta, no una por componente).
type RecipeRepository interface {
	// GetActiveForProduct devuelve la receta activa del producto, o nil si no
	// existe (estado válido, no error).
	GetActiveForProduct(ctx context.Context, companyID, productID string) (*entity.Recipe, error)
	// GetActiveForProducts carga en lote las recetas activas de varios
	// productos en una sola consulta. Productos sin receta no aparecen en el mapa.
	GetActiveForProducts(ctx context.Context, companyID string, productIDs []string) (map[string]*entity.Recipe, error)
	// Activate marca la receta como activa desactivando atómicamente cualquier
	// otra receta activa del mismo producto.
	Activate(ctx context.Context, companyID, recipeID string) error
}
