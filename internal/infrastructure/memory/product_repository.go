package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/bom-engine/internal/domain/entity"
	"github.com/jhoicas/bom-engine/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo repositorio de productos en memoria.
type ProductRepo struct {
	mu       sync.RWMutex
	products map[string]*entity.Product // por ID
}

// NewProductRepository construye el repositorio vacío.
func NewProductRepository() *ProductRepo {
	return &ProductRepo{products: make(map[string]*entity.Product)}
}

// Save inserta o reemplaza un producto (siembra de datos).
func (r *ProductRepo) Save(p *entity.Product) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[p.ID] = p
}

// GetByID devuelve el producto o nil si no existe.
func (r *ProductRepo) GetByID(_ context.Context, companyID, id string) (*entity.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.products[id]
	if !ok || p.CompanyID != companyID {
		return nil, nil
	}
	return p, nil
}
