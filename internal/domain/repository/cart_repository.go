package repository

import (
	"context"

	"github.com/jhoicas/Tienda-api/internal/domain/entity"
)

// CartRepository persistencia de carritos.
// La base garantiza un único carrito activo por cliente: CreateActive retorna
// domain.ErrDuplicate si ya existe uno.
type CartRepository interface {
	GetActiveByCustomer(ctx context.Context, companyID, customerID string) (*entity.Cart, error)
	CreateActive(ctx context.Context, cart *entity.Cart) error
	GetByID(ctx context.Context, id string) (*entity.Cart, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Cart, error)
	UpdateTotal(ctx context.Context, cart *entity.Cart) error
	// TransitionStatus cambia el estado solo si el actual es from; si no, domain.ErrConflict.
	TransitionStatus(ctx context.Context, id, from, to string, orderID *string) error
}

// CartLineRepository persistencia de líneas de carrito. Única por (cart, product, warehouse).
type CartLineRepository interface {
	GetByID(ctx context.Context, id string) (*entity.CartLine, error)
	Find(ctx context.Context, cartID, productID, warehouseID string) (*entity.CartLine, error)
	ListByCart(ctx context.Context, cartID string) ([]*entity.CartLine, error)
	Create(ctx context.Context, line *entity.CartLine) error
	Update(ctx context.Context, line *entity.CartLine) error
	Delete(ctx context.Context, id string) error
}
