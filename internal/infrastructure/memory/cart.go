package memory

import (
	"context"
	"slices"
	"time"

	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

var (
	_ repository.CartRepository     = (*CartRepo)(nil)
	_ repository.CartLineRepository = (*CartLineRepo)(nil)
)

// CartRepo carritos en memoria. Mantiene un único carrito activo por cliente y empresa.
type CartRepo struct{ v view }

func (r *CartRepo) GetActiveByCustomer(_ context.Context, companyID, customerID string) (*entity.Cart, error) {
	defer r.v.lock()()
	if c, ok := r.active(companyID, customerID); ok {
		return &c, nil
	}
	return nil, nil
}

func (r *CartRepo) active(companyID, customerID string) (entity.Cart, bool) {
	for _, c := range r.v.s.data.carts {
		if c.CompanyID == companyID && c.CustomerID == customerID && c.Status == entity.CartStatusActive {
			return c, true
		}
	}
	return entity.Cart{}, false
}

func (r *CartRepo) CreateActive(_ context.Context, c *entity.Cart) error {
	defer r.v.lock()()
	if _, ok := r.active(c.CompanyID, c.CustomerID); ok {
		return domain.ErrDuplicate
	}
	if _, ok := r.v.s.data.carts[c.ID]; ok {
		return domain.ErrDuplicate
	}
	c.Status = entity.CartStatusActive
	r.v.s.data.carts[c.ID] = *c
	return nil
}

func (r *CartRepo) GetByID(_ context.Context, id string) (*entity.Cart, error) {
	defer r.v.lock()()
	c, ok := r.v.s.data.carts[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *CartRepo) GetForUpdate(ctx context.Context, id string) (*entity.Cart, error) {
	return r.GetByID(ctx, id)
}

func (r *CartRepo) UpdateTotal(_ context.Context, c *entity.Cart) error {
	defer r.v.lock()()
	current, ok := r.v.s.data.carts[c.ID]
	if !ok {
		return nil
	}
	current.Total = c.Total
	current.UpdatedAt = c.UpdatedAt
	r.v.s.data.carts[c.ID] = current
	return nil
}

func (r *CartRepo) TransitionStatus(_ context.Context, id, from, to string, orderID *string) error {
	defer r.v.lock()()
	c, ok := r.v.s.data.carts[id]
	if !ok || c.Status != from {
		return domain.ErrConflict
	}
	c.Status = to
	if orderID != nil {
		linked := *orderID
		c.OrderID = &linked
	}
	c.UpdatedAt = time.Now()
	r.v.s.data.carts[id] = c
	return nil
}

// CartLineRepo líneas de carrito en memoria, en orden de inserción.
type CartLineRepo struct{ v view }

func (r *CartLineRepo) GetByID(_ context.Context, id string) (*entity.CartLine, error) {
	defer r.v.lock()()
	if i := r.index(func(l entity.CartLine) bool { return l.ID == id }); i >= 0 {
		l := r.v.s.data.cartLines[i]
		return &l, nil
	}
	return nil, nil
}

func (r *CartLineRepo) Find(_ context.Context, cartID, productID, warehouseID string) (*entity.CartLine, error) {
	defer r.v.lock()()
	if i := r.index(sameSlot(cartID, productID, warehouseID)); i >= 0 {
		l := r.v.s.data.cartLines[i]
		return &l, nil
	}
	return nil, nil
}

func (r *CartLineRepo) ListByCart(_ context.Context, cartID string) ([]*entity.CartLine, error) {
	defer r.v.lock()()
	var list []*entity.CartLine
	for _, l := range r.v.s.data.cartLines {
		if l.CartID == cartID {
			list = append(list, &l)
		}
	}
	return list, nil
}

func (r *CartLineRepo) Create(_ context.Context, l *entity.CartLine) error {
	defer r.v.lock()()
	if r.index(sameSlot(l.CartID, l.ProductID, l.WarehouseID)) >= 0 {
		return domain.ErrDuplicate
	}
	r.v.s.data.cartLines = append(r.v.s.data.cartLines, *l)
	return nil
}

func (r *CartLineRepo) Update(_ context.Context, l *entity.CartLine) error {
	defer r.v.lock()()
	if i := r.index(func(x entity.CartLine) bool { return x.ID == l.ID }); i >= 0 {
		current := &r.v.s.data.cartLines[i]
		current.Quantity = l.Quantity
		current.Subtotal = l.Subtotal
	}
	return nil
}

func (r *CartLineRepo) Delete(_ context.Context, id string) error {
	defer r.v.lock()()
	r.v.s.data.cartLines = slices.DeleteFunc(r.v.s.data.cartLines, func(l entity.CartLine) bool { return l.ID == id })
	return nil
}

func (r *CartLineRepo) index(match func(entity.CartLine) bool) int {
	return slices.IndexFunc(r.v.s.data.cartLines, match)
}

func sameSlot(cartID, productID, warehouseID string) func(entity.CartLine) bool {
	return func(l entity.CartLine) bool {
		return l.CartID == cartID && l.ProductID == productID && l.WarehouseID == warehouseID
	}
}
