package repository

import (
	"context"

	"github.com/jhoicas/bom-engine/internal/domain/entity"
)

// ProductRepository define el puerto de lectura de productos (DIP).
type ProductRepository interface {
	GetByID(ctx context.Context, companyID, id string) (*entity.Product, error)
}
