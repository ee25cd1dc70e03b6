package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación de OrderRepository sobre PostgreSQL.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

const orderColumns = `id, company_id, customer_id, address_id, date, total, status, stock_reserved, dispatched_at, delivered_at, updated_at`

// Create persiste un pedido.
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	_, err := r.q.Exec(ctx, `INSERT INTO orders (`+orderColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		o.ID, o.CompanyID, o.CustomerID, o.AddressID, o.Date, o.Total, o.Status, o.StockReserved,
		o.DispatchedAt, o.DeliveredAt, o.UpdatedAt)
	return wrapErr("insert order", err)
}

// GetByID obtiene un pedido. (nil, nil) si no existe.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	return r.getOne(ctx, "get order", `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
}

// GetForUpdate obtiene el pedido y bloquea la fila (SELECT FOR UPDATE).
func (r *OrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.Order, error) {
	return r.getOne(ctx, "get order for update", `SELECT `+orderColumns+` FROM orders WHERE id = $1 FOR UPDATE`, id)
}

// Update persiste estado y fechas del ciclo de envío.
func (r *OrderRepo) Update(ctx context.Context, o *entity.Order) error {
	_, err := r.q.Exec(ctx, `
		UPDATE orders SET status = $2, stock_reserved = $3, dispatched_at = $4, delivered_at = $5, updated_at = $6
		WHERE id = $1`, o.ID, o.Status, o.StockReserved, o.DispatchedAt, o.DeliveredAt, o.UpdatedAt)
	return wrapErr("update order", err)
}

func (r *OrderRepo) getOne(ctx context.Context, op, query string, args ...any) (*entity.Order, error) {
	var o entity.Order
	err := r.q.QueryRow(ctx, query, args...).Scan(
		&o.ID, &o.CompanyID, &o.CustomerID, &o.AddressID, &o.Date, &o.Total, &o.Status, &o.StockReserved,
		&o.DispatchedAt, &o.DeliveredAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &o, nil
}
