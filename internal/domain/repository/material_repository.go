package repository

import (
	"context"

	"github.com/jhoicas/bom-engine/internal/domain/entity"
)

// MaterialRepository define el puerto de lectura de materiales (DIP).
// El stock reflejado debe ser el confirmado, nunca valores a mitad de
// transacción. El motor jamás escribe stock a través de este puerto.
type MaterialRepository interface {
	GetByID(ctx context.Context, companyID, id string) (*entity.Material, error)
	// ListBelowReorderLevel lista materiales con stock bajo su punto de reorden.
	ListBelowReorderLevel(ctx context.Context, companyID string) ([]*entity.Material, error)
}
