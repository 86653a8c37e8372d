// Package memory implementa los puertos de repositorio sobre estructuras en
// memoria: datos de demostración del CLI y fixtures de tests. No persiste.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/bom-engine/internal/domain/entity"
	"github.com/jhoicas/bom-engine/internal/domain/repository"
)

var _ repository.MaterialRepository = (*MaterialRepo)(nil)

// MaterialRepo repositorio de materiales en memoria (seguro para lectura
// concurrente; el motor solo lee).
type MaterialRepo struct {
	mu        sync.RWMutex
	materials map[string]*entity.Material // por ID
}

// NewMaterialRepository construye el repositorio vacío.
func NewMaterialRepository() *MaterialRepo {
	return &MaterialRepo{materials: make(map[string]*entity.Material)}
}

// Save inserta o reemplaza un material (siembra de datos).
func (r *MaterialRepo) Save(m *entity.Material) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.materials[m.ID] = m
}

// GetByID devuelve el material o nil si no existe (convención del puerto).
func (r *MaterialRepo) GetByID(_ context.Context, companyID, id string) (*entity.Material, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.materials[id]
	if !ok || m.CompanyID != companyID {
		return nil, nil
	}
	return m, nil
}

// ListBelowReorderLevel materiales con stock bajo su punto de reorden.
func (r *MaterialRepo) ListBelowReorderLevel(_ context.Context, companyID string) ([]*entity.Material, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*entity.Material
	for _, m := range r.materials {
		if m.CompanyID == companyID && m.StockQuantity.LessThan(m.ReorderLevel) {
			out = append(out, m)
		}
	}
	return out, nil
}
