package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

var _ repository.PromotionRepository = (*PromotionRepo)(nil)

// PromotionRepo promociones sobre PostgreSQL.
type PromotionRepo struct {
	q Querier
}

// NewPromotionRepository construye el adaptador.
func NewPromotionRepository(q Querier) *PromotionRepo {
	return &PromotionRepo{q: q}
}

const promotionColumns = `id, company_id, product_id, name, discount, start_date, end_date, created_at`

// Create persiste una promoción.
func (r *PromotionRepo) Create(ctx context.Context, p *entity.Promotion) error {
	_, err := r.q.Exec(ctx, `INSERT INTO promotions (`+promotionColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		p.ID, p.CompanyID, p.ProductID, p.Name, p.Discount, p.StartDate, p.EndDate, p.CreatedAt)
	return wrapErr("insert promotion", err)
}

// GetByID obtiene una promoción. (nil, nil) si no existe.
func (r *PromotionRepo) GetByID(ctx context.Context, id string) (*entity.Promotion, error) {
	var p entity.Promotion
	err := r.q.QueryRow(ctx, `SELECT `+promotionColumns+` FROM promotions WHERE id = $1`, id).Scan(
		&p.ID, &p.CompanyID, &p.ProductID, &p.Name, &p.Discount, &p.StartDate, &p.EndDate, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get promotion: %w", err)
	}
	return &p, nil
}

// ListByProduct promociones del producto, la más reciente primero.
func (r *PromotionRepo) ListByProduct(ctx context.Context, companyID, productID string) ([]*entity.Promotion, error) {
	rows, err := r.q.Query(ctx, `SELECT `+promotionColumns+` FROM promotions
		WHERE company_id = $1 AND product_id = $2 ORDER BY start_date DESC`, companyID, productID)
	if err != nil {
		return nil, fmt.Errorf("list promotions: %w", err)
	}
	defer rows.Close()
	var list []*entity.Promotion
	for rows.Next() {
		var p entity.Promotion
		if err := rows.Scan(&p.ID, &p.CompanyID, &p.ProductID, &p.Name, &p.Discount, &p.StartDate, &p.EndDate, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan promotion: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
