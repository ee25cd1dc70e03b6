package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

var (
	_ repository.SalesNoteRepository    = (*SalesNoteRepo)(nil)
	_ repository.PurchaseNoteRepository = (*PurchaseNoteRepo)(nil)
)

// SalesNoteRepo notas de venta sobre PostgreSQL.
type SalesNoteRepo struct {
	q Querier
}

// NewSalesNoteRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSalesNoteRepository(q Querier) *SalesNoteRepo {
	return &SalesNoteRepo{q: q}
}

const salesNoteColumns = `id, company_id, order_id, customer_id, date, total, status, updated_at`

// Create persiste la cabecera.
func (r *SalesNoteRepo) Create(ctx context.Context, n *entity.SalesNote) error {
	_, err := r.q.Exec(ctx, `INSERT INTO sales_notes (`+salesNoteColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		n.ID, n.CompanyID, n.OrderID, n.CustomerID, n.Date, n.Total, n.Status, n.UpdatedAt)
	return wrapErr("insert sales note", err)
}

// GetByID obtiene una nota. (nil, nil) si no existe.
func (r *SalesNoteRepo) GetByID(ctx context.Context, id string) (*entity.SalesNote, error) {
	return r.getOne(ctx, "get sales note", `SELECT `+salesNoteColumns+` FROM sales_notes WHERE id = $1`, id)
}

// GetForUpdate obtiene la nota y bloquea la fila.
func (r *SalesNoteRepo) GetForUpdate(ctx context.Context, id string) (*entity.SalesNote, error) {
	return r.getOne(ctx, "get sales note for update", `SELECT `+salesNoteColumns+` FROM sales_notes WHERE id = $1 FOR UPDATE`, id)
}

// GetByOrderID nota generada por el checkout del pedido. (nil, nil) si no existe.
func (r *SalesNoteRepo) GetByOrderID(ctx context.Context, orderID string) (*entity.SalesNote, error) {
	return r.getOne(ctx, "get sales note by order", `SELECT `+salesNoteColumns+` FROM sales_notes WHERE order_id = $1`, orderID)
}

// Update persiste total y estado.
func (r *SalesNoteRepo) Update(ctx context.Context, n *entity.SalesNote) error {
	_, err := r.q.Exec(ctx, `UPDATE sales_notes SET total = $2, status = $3, updated_at = $4 WHERE id = $1`,
		n.ID, n.Total, n.Status, n.UpdatedAt)
	return wrapErr("update sales note", err)
}

// CreateDetail persiste una línea con su total ya calculado.
func (r *SalesNoteRepo) CreateDetail(ctx context.Context, d *entity.SalesNoteDetail) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO sales_note_details (id, note_id, product_id, warehouse_id, quantity, unit_price, total)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		d.ID, d.NoteID, d.ProductID, d.WarehouseID, d.Quantity, d.UnitPrice, d.Total)
	return wrapErr("insert sales note detail", err)
}

// ListDetails líneas de la nota.
func (r *SalesNoteRepo) ListDetails(ctx context.Context, noteID string) ([]*entity.SalesNoteDetail, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, note_id, product_id, warehouse_id, quantity, unit_price, total
		FROM sales_note_details WHERE note_id = $1 ORDER BY id`, noteID)
	if err != nil {
		return nil, fmt.Errorf("list sales note details: %w", err)
	}
	defer rows.Close()
	var list []*entity.SalesNoteDetail
	for rows.Next() {
		var d entity.SalesNoteDetail
		if err := rows.Scan(&d.ID, &d.NoteID, &d.ProductID, &d.WarehouseID, &d.Quantity, &d.UnitPrice, &d.Total); err != nil {
			return nil, fmt.Errorf("scan sales note detail: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

func (r *SalesNoteRepo) getOne(ctx context.Context, op, query string, args ...any) (*entity.SalesNote, error) {
	var n entity.SalesNote
	err := r.q.QueryRow(ctx, query, args...).Scan(
		&n.ID, &n.CompanyID, &n.OrderID, &n.CustomerID, &n.Date, &n.Total, &n.Status, &n.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &n, nil
}

// PurchaseNoteRepo notas de compra sobre PostgreSQL.
type PurchaseNoteRepo struct {
	q Querier
}

// NewPurchaseNoteRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseNoteRepository(q Querier) *PurchaseNoteRepo {
	return &PurchaseNoteRepo{q: q}
}

const purchaseNoteColumns = `id, company_id, supplier_id, warehouse_id, date, total, status, received_at, updated_at`

// Create persiste la cabecera.
func (r *PurchaseNoteRepo) Create(ctx context.Context, n *entity.PurchaseNote) error {
	_, err := r.q.Exec(ctx, `INSERT INTO purchase_notes (`+purchaseNoteColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		n.ID, n.CompanyID, n.SupplierID, n.WarehouseID, n.Date, n.Total, n.Status, n.ReceivedAt, n.UpdatedAt)
	return wrapErr("insert purchase note", err)
}

// GetByID obtiene una nota. (nil, nil) si no existe.
func (r *PurchaseNoteRepo) GetByID(ctx context.Context, id string) (*entity.PurchaseNote, error) {
	return r.getOne(ctx, "get purchase note", `SELECT `+purchaseNoteColumns+` FROM purchase_notes WHERE id = $1`, id)
}

// GetForUpdate obtiene la nota y bloquea la fila.
func (r *PurchaseNoteRepo) GetForUpdate(ctx context.Context, id string) (*entity.PurchaseNote, error) {
	return r.getOne(ctx, "get purchase note for update", `SELECT `+purchaseNoteColumns+` FROM purchase_notes WHERE id = $1 FOR UPDATE`, id)
}

// Update persiste total, estado y fecha de recepción.
func (r *PurchaseNoteRepo) Update(ctx context.Context, n *entity.PurchaseNote) error {
	_, err := r.q.Exec(ctx, `UPDATE purchase_notes SET total = $2, status = $3, received_at = $4, updated_at = $5 WHERE id = $1`,
		n.ID, n.Total, n.Status, n.ReceivedAt, n.UpdatedAt)
	return wrapErr("update purchase note", err)
}

// CreateDetail persiste una línea con su total ya calculado.
func (r *PurchaseNoteRepo) CreateDetail(ctx context.Context, d *entity.PurchaseNoteDetail) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO purchase_note_details (id, note_id, product_id, quantity, unit_price, total)
		VALUES ($1, $2, $3, $4, $5, $6)`, d.ID, d.NoteID, d.ProductID, d.Quantity, d.UnitPrice, d.Total)
	return wrapErr("insert purchase note detail", err)
}

// GetDetail obtiene una línea. (nil, nil) si no existe.
func (r *PurchaseNoteRepo) GetDetail(ctx context.Context, id string) (*entity.PurchaseNoteDetail, error) {
	var d entity.PurchaseNoteDetail
	err := r.q.QueryRow(ctx, `
		SELECT id, note_id, product_id, quantity, unit_price, total
		FROM purchase_note_details WHERE id = $1`, id).Scan(&d.ID, &d.NoteID, &d.ProductID, &d.Quantity, &d.UnitPrice, &d.Total)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase note detail: %w", err)
	}
	return &d, nil
}

// UpdateDetail persiste cantidad, precio y total de una línea.
func (r *PurchaseNoteRepo) UpdateDetail(ctx context.Context, d *entity.PurchaseNoteDetail) error {
	_, err := r.q.Exec(ctx, `UPDATE purchase_note_details SET quantity = $2, unit_price = $3, total = $4 WHERE id = $1`,
		d.ID, d.Quantity, d.UnitPrice, d.Total)
	return wrapErr("update purchase note detail", err)
}

// ListDetails líneas de la nota.
func (r *PurchaseNoteRepo) ListDetails(ctx context.Context, noteID string) ([]*entity.PurchaseNoteDetail, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, note_id, product_id, quantity, unit_price, total
		FROM purchase_note_details WHERE note_id = $1 ORDER BY id`, noteID)
	if err != nil {
		return nil, fmt.Errorf("list purchase note details: %w", err)
	}
	defer rows.Close()
	var list []*entity.PurchaseNoteDetail
	for rows.Next() {
		var d entity.PurchaseNoteDetail
		if err := rows.Scan(&d.ID, &d.NoteID, &d.ProductID, &d.Quantity, &d.UnitPrice, &d.Total); err != nil {
			return nil, fmt.Errorf("scan purchase note detail: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

func (r *PurchaseNoteRepo) getOne(ctx context.Context, op, query string, args ...any) (*entity.PurchaseNote, error) {
	var n entity.PurchaseNote
	err := r.q.QueryRow(ctx, query, args...).Scan(
		&n.ID, &n.CompanyID, &n.SupplierID, &n.WarehouseID, &n.Date, &n.Total, &n.Status, &n.ReceivedAt, &n.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &n, nil
}
