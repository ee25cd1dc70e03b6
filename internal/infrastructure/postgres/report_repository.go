package postgres

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo agregados de solo lectura sobre las mismas tablas de detalle que usa la operación.
type ReportRepo struct {
	q       Querier
	builder sq.StatementBuilderType
}

// NewReportRepository construye el repositorio de reportes.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{
		q:       q,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// SalesByCategory suma detalles de notas de venta completadas por categoría. from y to se toman
// como días completos; productos sin categoría se agrupan con categoría vacía.
func (r *ReportRepo) SalesByCategory(ctx context.Context, companyID string, from, to time.Time) ([]repository.CategorySales, error) {
	query, args, err := r.salesByCategoryQuery(companyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("build sales by category: %w", err)
	}
	var rows []repository.CategorySales
	if err := pgxscan.Select(ctx, r.q, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("sales by category: %w", err)
	}
	return rows, nil
}

func (r *ReportRepo) salesByCategoryQuery(companyID string, from, to time.Time) (string, []interface{}, error) {
	return r.builder.
		Select(
			"COALESCE(c.id::text, '') AS category_id",
			"COALESCE(c.name, '"+entity.UncategorizedName+"') AS category_name",
			"SUM(d.quantity)::int AS units",
			"SUM(d.total) AS total",
		).
		From("sales_note_details d").
		Join("sales_notes n ON n.id = d.note_id").
		Join("products p ON p.id = d.product_id").
		LeftJoin("categories c ON c.id = p.category_id").
		Where(sq.Eq{"n.company_id": companyID, "n.status": entity.NoteStatusCompleted}).
		Where(sq.GtOrEq{"n.date": dayStart(from)}).
		Where(sq.Lt{"n.date": dayStart(to).AddDate(0, 0, 1)}).
		GroupBy("c.id", "c.name").
		OrderBy("total DESC").
		ToSql()
}

// LowStock filas de stock en o por debajo del punto de reorden del producto
// (defaultReorderPoint cuando el producto no tiene uno).
func (r *ReportRepo) LowStock(ctx context.Context, companyID, warehouseID string, defaultReorderPoint int) ([]repository.LowStockItem, error) {
	query, args, err := r.lowStockQuery(companyID, warehouseID, defaultReorderPoint)
	if err != nil {
		return nil, fmt.Errorf("build low stock: %w", err)
	}
	var rows []repository.LowStockItem
	if err := pgxscan.Select(ctx, r.q, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("low stock: %w", err)
	}
	return rows, nil
}

func (r *ReportRepo) lowStockQuery(companyID, warehouseID string, defaultReorderPoint int) (string, []interface{}, error) {
	b := r.builder.
		Select(
			"p.id AS product_id",
			"p.sku",
			"p.name AS product_name",
			"w.id AS warehouse_id",
			"w.name AS warehouse_name",
			"s.quantity",
		).
		Column(sq.Expr("COALESCE(NULLIF(p.reorder_point, 0), ?) AS reorder_point", defaultReorderPoint)).
		From("stock s").
		Join("products p ON p.id = s.product_id").
		Join("warehouses w ON w.id = s.warehouse_id").
		Where(sq.Eq{"p.company_id": companyID}).
		Where("s.quantity <= COALESCE(NULLIF(p.reorder_point, 0), ?)", defaultReorderPoint).
		OrderBy("w.name", "p.sku")
	if warehouseID != "" {
		b = b.Where(sq.Eq{"s.warehouse_id": warehouseID})
	}
	return b.ToSql()
}

func dayStart(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
