package memory

import (
	"context"
	"slices"
	"strings"

	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

var (
	_ repository.StockRepository             = (*StockRepo)(nil)
	_ repository.InventoryMovementRepository = (*InventoryMovementRepo)(nil)
)

// StockRepo stock por producto+bodega en memoria.
type StockRepo struct{ v view }

func (r *StockRepo) Get(_ context.Context, productID, warehouseID string) (*entity.Stock, error) {
	defer r.v.lock()()
	return r.get(productID, warehouseID), nil
}

// GetForUpdate igual que Get: el bloqueo lo da la transacción que retiene el mutex del store.
func (r *StockRepo) GetForUpdate(_ context.Context, productID, warehouseID string) (*entity.Stock, error) {
	defer r.v.lock()()
	return r.get(productID, warehouseID), nil
}

func (r *StockRepo) get(productID, warehouseID string) *entity.Stock {
	s, ok := r.v.s.data.stock[stockKey{productID, warehouseID}]
	if !ok {
		return &entity.Stock{ProductID: productID, WarehouseID: warehouseID}
	}
	return &s
}

func (r *StockRepo) Upsert(_ context.Context, s *entity.Stock) error {
	if s.Quantity < 0 {
		return domain.ErrInsufficientStock
	}
	defer r.v.lock()()
	r.v.s.data.stock[stockKey{s.ProductID, s.WarehouseID}] = *s
	return nil
}

func (r *StockRepo) ListByProduct(_ context.Context, productID string) ([]*entity.Stock, error) {
	defer r.v.lock()()
	var list []*entity.Stock
	for k, s := range r.v.s.data.stock {
		if k.productID == productID {
			list = append(list, &s)
		}
	}
	slices.SortFunc(list, func(a, b *entity.Stock) int { return strings.Compare(a.WarehouseID, b.WarehouseID) })
	return list, nil
}

// InventoryMovementRepo kardex en memoria, en orden de inserción.
type InventoryMovementRepo struct{ v view }

func (r *InventoryMovementRepo) Create(_ context.Context, m *entity.InventoryMovement) error {
	defer r.v.lock()()
	r.v.s.data.movements = append(r.v.s.data.movements, *m)
	return nil
}

// ListByProduct retorna los movimientos del producto, el más reciente primero.
func (r *InventoryMovementRepo) ListByProduct(_ context.Context, productID string, limit, offset int) ([]*entity.InventoryMovement, error) {
	defer r.v.lock()()
	var list []*entity.InventoryMovement
	movements := r.v.s.data.movements
	for i := len(movements) - 1; i >= 0; i-- {
		if movements[i].ProductID == productID {
			m := movements[i]
			list = append(list, &m)
		}
	}
	return page(list, limit, offset), nil
}
