package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

var (
	_ repository.CartRepository     = (*CartRepo)(nil)
	_ repository.CartLineRepository = (*CartLineRepo)(nil)
)

// CartRepo implementación de CartRepository sobre PostgreSQL.
// El índice único parcial uq_carts_active_customer garantiza un carrito activo por cliente.
type CartRepo struct {
	q Querier
}

// NewCartRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCartRepository(q Querier) *CartRepo {
	return &CartRepo{q: q}
}

const cartColumns = `id, company_id, customer_id, order_id, date, total, status, updated_at`

// GetActiveByCustomer carrito activo del cliente. (nil, nil) si no tiene.
func (r *CartRepo) GetActiveByCustomer(ctx context.Context, companyID, customerID string) (*entity.Cart, error) {
	query := `SELECT ` + cartColumns + ` FROM carts
		WHERE company_id = $1 AND customer_id = $2 AND status = 'active'`
	return r.getOne(ctx, "get active cart", query, companyID, customerID)
}

// CreateActive inserta un carrito activo. Si el cliente ya tiene uno retorna domain.ErrDuplicate.
func (r *CartRepo) CreateActive(ctx context.Context, c *entity.Cart) error {
	query := `INSERT INTO carts (` + cartColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.CompanyID, c.CustomerID, c.OrderID, c.Date, c.Total, entity.CartStatusActive, c.UpdatedAt,
	)
	return wrapErr("insert cart", err)
}

// GetByID obtiene un carrito por ID. (nil, nil) si no existe.
func (r *CartRepo) GetByID(ctx context.Context, id string) (*entity.Cart, error) {
	return r.getOne(ctx, "get cart", `SELECT `+cartColumns+` FROM carts WHERE id = $1`, id)
}

// GetForUpdate obtiene el carrito y bloquea la fila (SELECT FOR UPDATE).
func (r *CartRepo) GetForUpdate(ctx context.Context, id string) (*entity.Cart, error) {
	return r.getOne(ctx, "get cart for update", `SELECT `+cartColumns+` FROM carts WHERE id = $1 FOR UPDATE`, id)
}

// UpdateTotal persiste el total recalculado.
func (r *CartRepo) UpdateTotal(ctx context.Context, c *entity.Cart) error {
	_, err := r.q.Exec(ctx, `UPDATE carts SET total = $2, updated_at = $3 WHERE id = $1`, c.ID, c.Total, c.UpdatedAt)
	return wrapErr("update cart total", err)
}

// TransitionStatus update condicional sobre el estado actual: 0 filas significa que otra
// transacción cambió el carrito primero (domain.ErrConflict).
func (r *CartRepo) TransitionStatus(ctx context.Context, id, from, to string, orderID *string) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE carts SET status = $3, order_id = COALESCE($4, order_id), updated_at = now()
		WHERE id = $1 AND status = $2`, id, from, to, orderID)
	if err != nil {
		return wrapErr("transition cart", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrConflict
	}
	return nil
}

func (r *CartRepo) getOne(ctx context.Context, op, query string, args ...any) (*entity.Cart, error) {
	var c entity.Cart
	err := r.q.QueryRow(ctx, query, args...).Scan(
		&c.ID, &c.CompanyID, &c.CustomerID, &c.OrderID, &c.Date, &c.Total, &c.Status, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &c, nil
}

// CartLineRepo implementación de CartLineRepository sobre PostgreSQL.
type CartLineRepo struct {
	q Querier
}

// NewCartLineRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCartLineRepository(q Querier) *CartLineRepo {
	return &CartLineRepo{q: q}
}

const cartLineColumns = `id, cart_id, product_id, warehouse_id, quantity, unit_price, subtotal`

// GetByID obtiene una línea. (nil, nil) si no existe.
func (r *CartLineRepo) GetByID(ctx context.Context, id string) (*entity.CartLine, error) {
	return r.getOne(ctx, "get cart line", `SELECT `+cartLineColumns+` FROM cart_lines WHERE id = $1`, id)
}

// Find línea del carrito para un producto-en-bodega. (nil, nil) si no existe.
func (r *CartLineRepo) Find(ctx context.Context, cartID, productID, warehouseID string) (*entity.CartLine, error) {
	return r.getOne(ctx, "find cart line", `SELECT `+cartLineColumns+` FROM cart_lines
		WHERE cart_id = $1 AND product_id = $2 AND warehouse_id = $3`, cartID, productID, warehouseID)
}

// ListByCart líneas del carrito en orden estable.
func (r *CartLineRepo) ListByCart(ctx context.Context, cartID string) ([]*entity.CartLine, error) {
	rows, err := r.q.Query(ctx, `SELECT `+cartLineColumns+` FROM cart_lines WHERE cart_id = $1 ORDER BY id`, cartID)
	if err != nil {
		return nil, fmt.Errorf("list cart lines: %w", err)
	}
	defer rows.Close()
	var list []*entity.CartLine
	for rows.Next() {
		var l entity.CartLine
		if err := rows.Scan(&l.ID, &l.CartID, &l.ProductID, &l.WarehouseID, &l.Quantity, &l.UnitPrice, &l.Subtotal); err != nil {
			return nil, fmt.Errorf("scan cart line: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// Create inserta una línea. Duplicar (cart, product, warehouse) retorna domain.ErrDuplicate.
func (r *CartLineRepo) Create(ctx context.Context, l *entity.CartLine) error {
	_, err := r.q.Exec(ctx, `INSERT INTO cart_lines (`+cartLineColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		l.ID, l.CartID, l.ProductID, l.WarehouseID, l.Quantity, l.UnitPrice, l.Subtotal)
	return wrapErr("insert cart line", err)
}

// Update persiste cantidad y subtotal. El precio unitario no cambia después del alta.
func (r *CartLineRepo) Update(ctx context.Context, l *entity.CartLine) error {
	_, err := r.q.Exec(ctx, `UPDATE cart_lines SET quantity = $2, subtotal = $3 WHERE id = $1`,
		l.ID, l.Quantity, l.Subtotal)
	return wrapErr("update cart line", err)
}

// Delete elimina una línea.
func (r *CartLineRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM cart_lines WHERE id = $1`, id)
	return wrapErr("delete cart line", err)
}

func (r *CartLineRepo) getOne(ctx context.Context, op, query string, args ...any) (*entity.CartLine, error) {
	var l entity.CartLine
	err := r.q.QueryRow(ctx, query, args...).Scan(&l.ID, &l.CartID, &l.ProductID, &l.WarehouseID, &l.Quantity, &l.UnitPrice, &l.Subtotal)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &l, nil
}
