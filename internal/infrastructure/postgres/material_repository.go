package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/bom-engine/internal/domain"
	"github.com/jhoicas/bom-engine/internal/domain/entity"
	"github.com/jhoicas/bom-engine/internal/domain/repository"
)

var _ repository.MaterialRepository = (*MaterialRepo)(nil)

// MaterialRepo implementación del puerto MaterialRepository sobre PostgreSQL
// (usable con pool o tx). Solo lectura desde el motor; Create existe para
// siembra y herramientas.
type MaterialRepo struct {
	q Querier
}

// NewMaterialRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMaterialRepository(q Querier) *MaterialRepo {
	return &MaterialRepo{q: q}
}

const materialColumns = `id, company_id, sku, name, unit, stock_quantity, reorder_level, unit_cost, category, created_at, updated_at`

// Create persiste un material nuevo.
func (r *MaterialRepo) Create(ctx context.Context, m *entity.Material) error {
	query := `
		INSERT INTO materials (` + materialColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.CompanyID, m.SKU, m.Name, string(m.Unit), m.StockQuantity,
		m.ReorderLevel, m.UnitCost, m.Category, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert material: %w", err)
	}
	return nil
}

// GetByID obtiene un material por ID (nil si no existe).
func (r *MaterialRepo) GetByID(ctx context.Context, companyID, id string) (*entity.Material, error) {
	query := `SELECT ` + materialColumns + ` FROM materials WHERE company_id = $1 AND id = $2`
	m, err := scanMaterial(r.q.QueryRow(ctx, query, companyID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get material: %w", err)
	}
	return m, nil
}

// ListBelowReorderLevel materiales con stock bajo su punto de reorden.
func (r *MaterialRepo) ListBelowReorderLevel(ctx context.Context, companyID string) ([]*entity.Material, error) {
	query := `
		SELECT ` + materialColumns + `
		FROM materials
		WHERE company_id = $1 AND stock_quantity < reorder_level
		ORDER BY name`
	rows, err := r.q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list materials below reorder: %w", err)
	}
	defer rows.Close()

	var list []*entity.Material
	for rows.Next() {
		m, err := scanMaterial(rows)
		if err != nil {
			return nil, fmt.Errorf("scan material: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

func scanMaterial(row pgx.Row) (*entity.Material, error) {
	var m entity.Material
	var unit string
	err := row.Scan(
		&m.ID, &m.CompanyID, &m.SKU, &m.Name, &unit, &m.StockQuantity,
		&m.ReorderLevel, &m.UnitCost, &m.Category, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	m.Unit = entity.MaterialUnit(unit)
	return &m, nil
}
