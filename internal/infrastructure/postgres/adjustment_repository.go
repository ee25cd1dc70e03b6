package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

var _ repository.AdjustmentRepository = (*AdjustmentRepo)(nil)

// AdjustmentRepo ajustes de inventario sobre PostgreSQL.
type AdjustmentRepo struct {
	q Querier
}

// NewAdjustmentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAdjustmentRepository(q Querier) *AdjustmentRepo {
	return &AdjustmentRepo{q: q}
}

const adjustmentColumns = `id, company_id, warehouse_id, date, reason, total, status, updated_at`

// Create persiste la cabecera.
func (r *AdjustmentRepo) Create(ctx context.Context, a *entity.Adjustment) error {
	_, err := r.q.Exec(ctx, `INSERT INTO adjustments (`+adjustmentColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		a.ID, a.CompanyID, a.WarehouseID, a.Date, a.Reason, a.Total, a.Status, a.UpdatedAt)
	return wrapErr("insert adjustment", err)
}

// GetByID obtiene un ajuste. (nil, nil) si no existe.
func (r *AdjustmentRepo) GetByID(ctx context.Context, id string) (*entity.Adjustment, error) {
	return r.getOne(ctx, "get adjustment", `SELECT `+adjustmentColumns+` FROM adjustments WHERE id = $1`, id)
}

// GetForUpdate obtiene el ajuste y bloquea la fila: dos Apply concurrentes no aplican dos veces.
func (r *AdjustmentRepo) GetForUpdate(ctx context.Context, id string) (*entity.Adjustment, error) {
	return r.getOne(ctx, "get adjustment for update", `SELECT `+adjustmentColumns+` FROM adjustments WHERE id = $1 FOR UPDATE`, id)
}

// Update persiste total y estado.
func (r *AdjustmentRepo) Update(ctx context.Context, a *entity.Adjustment) error {
	_, err := r.q.Exec(ctx, `UPDATE adjustments SET total = $2, status = $3, updated_at = $4 WHERE id = $1`,
		a.ID, a.Total, a.Status, a.UpdatedAt)
	return wrapErr("update adjustment", err)
}

// CreateDetail persiste una línea con su total ya calculado.
func (r *AdjustmentRepo) CreateDetail(ctx context.Context, d *entity.AdjustmentDetail) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO adjustment_details (id, adjustment_id, product_id, type, quantity, unit_cost, total)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		d.ID, d.AdjustmentID, d.ProductID, d.Type, d.Quantity, d.UnitCost, d.Total)
	return wrapErr("insert adjustment detail", err)
}

// ListDetails líneas del ajuste en orden de inserción.
func (r *AdjustmentRepo) ListDetails(ctx context.Context, adjustmentID string) ([]*entity.AdjustmentDetail, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, adjustment_id, product_id, type, quantity, unit_cost, total
		FROM adjustment_details WHERE adjustment_id = $1 ORDER BY seq`, adjustmentID)
	if err != nil {
		return nil, fmt.Errorf("list adjustment details: %w", err)
	}
	defer rows.Close()
	var list []*entity.AdjustmentDetail
	for rows.Next() {
		var d entity.AdjustmentDetail
		if err := rows.Scan(&d.ID, &d.AdjustmentID, &d.ProductID, &d.Type, &d.Quantity, &d.UnitCost, &d.Total); err != nil {
			return nil, fmt.Errorf("scan adjustment detail: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

func (r *AdjustmentRepo) getOne(ctx context.Context, op, query string, args ...any) (*entity.Adjustment, error) {
	var a entity.Adjustment
	err := r.q.QueryRow(ctx, query, args...).Scan(
		&a.ID, &a.CompanyID, &a.WarehouseID, &a.Date, &a.Reason, &a.Total, &a.Status, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &a, nil
}
