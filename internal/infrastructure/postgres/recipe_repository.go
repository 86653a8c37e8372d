package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/bom-engine/internal/domain"
	"github.com/jhoicas/bom-engine/internal/domain/entity"
	"github.com/jhoicas/bom-engine/internal/domain/repository"
)

var _ repository.RecipeRepository = (*RecipeRepo)(nil)

// RecipeRepo implementación del puerto RecipeRepository sobre PostgreSQL.
//
// Contrato anti N+1: toda receta sale con sus componentes (en orden de
// definición, columna position) y cada componente con su material, cargados en
// dos consultas fijas sin importar cuántos productos se pidan.
type RecipeRepo struct {
	q Querier
}

// NewRecipeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRecipeRepository(q Querier) *RecipeRepo {
	return &RecipeRepo{q: q}
}

// GetActiveForProduct devuelve la receta activa del producto con componentes y
// materiales precargados, o nil si no hay receta activa (estado válido).
func (r *RecipeRepo) GetActiveForProduct(ctx context.Context, companyID, productID string) (*entity.Recipe, error) {
	recipes, err := r.GetActiveForProducts(ctx, companyID, []string{productID})
	if err != nil {
		return nil, err
	}
	return recipes[productID], nil
}

// GetActiveForProducts carga en lote las recetas activas de varios productos:
// una consulta para las recetas y una para todos los componentes con su
// material (JOIN). Productos sin receta activa no aparecen en el mapa.
func (r *RecipeRepo) GetActiveForProducts(ctx context.Context, companyID string, productIDs []string) (map[string]*entity.Recipe, error) {
	query := `
		SELECT id, company_id, product_id, name, yield_quantity, yield_unit, is_active, created_at, updated_at
		FROM recipes
		WHERE company_id = $1 AND product_id = ANY($2) AND is_active`
	rows, err := r.q.Query(ctx, query, companyID, productIDs)
	if err != nil {
		return nil, fmt.Errorf("get active recipes: %w", err)
	}
	defer rows.Close()

	byProduct := make(map[string]*entity.Recipe)
	byRecipeID := make(map[string]*entity.Recipe)
	var recipeIDs []string
	for rows.Next() {
		var rec entity.Recipe
		if err := rows.Scan(
			&rec.ID, &rec.CompanyID, &rec.ProductID, &rec.Name, &rec.YieldQuantity,
			&rec.YieldUnit, &rec.IsActive, &rec.CreatedAt, &rec.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan recipe: %w", err)
		}
		byProduct[rec.ProductID] = &rec
		byRecipeID[rec.ID] = &rec
		recipeIDs = append(recipeIDs, rec.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(recipeIDs) == 0 {
		return byProduct, nil
	}

	if err := r.loadComponents(ctx, recipeIDs, byRecipeID); err != nil {
		return nil, err
	}
	return byProduct, nil
}

// loadComponents carga los componentes de todas las recetas en una consulta,
// con el material embebido, respetando el orden de definición.
func (r *RecipeRepo) loadComponents(ctx context.Context, recipeIDs []string, byRecipeID map[string]*entity.Recipe) error {
	query := `
		SELECT c.id, c.recipe_id, c.material_id, c.quantity_required, c.waste_percentage,
		       m.id, m.company_id, m.sku, m.name, m.unit, m.stock_quantity,
		       m.reorder_level, m.unit_cost, m.category, m.created_at, m.updated_at
		FROM recipe_components c
		JOIN materials m ON m.id = c.material_id
		WHERE c.recipe_id = ANY($1)
		ORDER BY c.recipe_id, c.position`
	rows, err := r.q.Query(ctx, query, recipeIDs)
	if err != nil {
		return fmt.Errorf("get recipe components: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var c entity.RecipeComponent
		var m entity.Material
		var unit string
		if err := rows.Scan(
			&c.ID, &c.RecipeID, &c.MaterialID, &c.QuantityRequired, &c.WastePercentage,
			&m.ID, &m.CompanyID, &m.SKU, &m.Name, &unit, &m.StockQuantity,
			&m.ReorderLevel, &m.UnitCost, &m.Category, &m.CreatedAt, &m.UpdatedAt,
		); err != nil {
			return fmt.Errorf("scan recipe component: %w", err)
		}
		m.Unit = entity.MaterialUnit(unit)
		c.Material = &m
		if rec, ok := byRecipeID[c.RecipeID]; ok {
			rec.Components = append(rec.Components, &c)
		}
	}
	return rows.Err()
}

// Activate activa la receta y desactiva atómicamente cualquier otra del mismo
// producto, en una sola sentencia (sin ventana de dos recetas activas).
func (r *RecipeRepo) Activate(ctx context.Context, companyID, recipeID string) error {
	query := `
		WITH target AS (
			SELECT id, product_id FROM recipes WHERE company_id = $1 AND id = $2
		)
		UPDATE recipes r
		SET is_active = (r.id = t.id), updated_at = now()
		FROM target t
		WHERE r.product_id = t.product_id AND r.company_id = $1`
	cmd, err := r.q.Exec(ctx, query, companyID, recipeID)
	if err != nil {
		return fmt.Errorf("activate recipe: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
