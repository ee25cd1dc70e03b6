package repository

import (
	"context"

	"github.com/jhoicas/Tienda-api/internal/domain/entity"
)

// SupplierRepository persistencia de proveedores (persona o empresa).
type SupplierRepository interface {
	Create(ctx context.Context, supplier entity.Supplier) error
	GetByID(ctx context.Context, id string) (entity.Supplier, error)
}
