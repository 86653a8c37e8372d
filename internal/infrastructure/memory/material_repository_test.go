package memory_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bom-engine/internal/domain/entity"
	"github.com/jhoicas/bom-engine/internal/infrastructure/memory"
)

func newMaterial(id string, stock, reorder int64) *entity.Material {
	return &entity.Material{
		ID:            id,
		CompanyID:     companyID,
		SKU:           "sku-" + id,
		Name:          "material " + id,
		Unit:          entity.UnitPcs,
		StockQuantity: decimal.NewFromInt(stock),
		ReorderLevel:  decimal.NewFromInt(reorder),
	}
}

// TestMaterialRepo_GetByID_FiltraPorEmpresa un material de otra empresa se
// comporta como inexistente (nil sin error, convención del puerto).
func TestMaterialRepo_GetByID_FiltraPorEmpresa(t *testing.T) {
	repo := memory.NewMaterialRepository()
	repo.Save(newMaterial("mat-1", 10, 5))

	m, err := repo.GetByID(context.Background(), companyID, "mat-1")
	require.NoError(t, err)
	require.NotNil(t, m)

	m, err = repo.GetByID(context.Background(), "33333333-3333-3333-3333-333333333333", "mat-1")
	require.NoError(t, err)
	assert.Nil(t, m)

	m, err = repo.GetByID(context.Background(), companyID, "mat-fantasma")
	require.NoError(t, err)
	assert.Nil(t, m)
}

// TestMaterialRepo_ListBelowReorderLevel el umbral es estricto: stock igual al
// punto de reorden no cuenta como faltante.
func TestMaterialRepo_ListBelowReorderLevel(t *testing.T) {
	repo := memory.NewMaterialRepository()
	repo.Save(newMaterial("mat-bajo", 3, 10))
	repo.Save(newMaterial("mat-justo", 10, 10))
	repo.Save(newMaterial("mat-sobrado", 30, 10))

	foreign := newMaterial("mat-ajeno", 1, 10)
	foreign.CompanyID = "33333333-3333-3333-3333-333333333333"
	repo.Save(foreign)

	below, err := repo.ListBelowReorderLevel(context.Background(), companyID)
	require.NoError(t, err)
	require.Len(t, below, 1)
	assert.Equal(t, "mat-bajo", below[0].ID)
}
