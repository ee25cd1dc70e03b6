package memory

import (
	"cmp"
	"context"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo agregados calculados recorriendo el estado en memoria.
type ReportRepo struct{ v view }

func (r *ReportRepo) SalesByCategory(_ context.Context, companyID string, from, to time.Time) ([]repository.CategorySales, error) {
	defer r.v.lock()()
	d := r.v.s.data
	start, end := dayStart(from), dayStart(to).AddDate(0, 0, 1)

	byCategory := map[string]*repository.CategorySales{}
	for _, det := range d.salesDetails {
		note, ok := d.salesNotes[det.NoteID]
		if !ok || note.CompanyID != companyID || note.Status != entity.NoteStatusCompleted {
			continue
		}
		if note.Date.Before(start) || !note.Date.Before(end) {
			continue
		}
		product, ok := d.products[det.ProductID]
		if !ok {
			continue
		}
		row, ok := byCategory[product.CategoryID]
		if !ok {
			var category *entity.Category
			if c, found := d.categories[product.CategoryID]; found {
				category = &c
			}
			row = &repository.CategorySales{CategoryID: product.CategoryID, CategoryName: entity.CategoryLabel(category), Total: decimal.Zero}
			byCategory[product.CategoryID] = row
		}
		row.Units += det.Quantity
		row.Total = row.Total.Add(det.Total)
	}

	rows := make([]repository.CategorySales, 0, len(byCategory))
	for _, row := range byCategory {
		rows = append(rows, *row)
	}
	slices.SortFunc(rows, func(a, b repository.CategorySales) int {
		if c := b.Total.Cmp(a.Total); c != 0 {
			return c
		}
		return cmp.Compare(a.CategoryName, b.CategoryName)
	})
	return rows, nil
}

func (r *ReportRepo) LowStock(_ context.Context, companyID, warehouseID string, defaultReorderPoint int) ([]repository.LowStockItem, error) {
	defer r.v.lock()()
	d := r.v.s.data
	var rows []repository.LowStockItem
	for key, s := range d.stock {
		if warehouseID != "" && key.warehouseID != warehouseID {
			continue
		}
		product, ok := d.products[key.productID]
		if !ok || product.CompanyID != companyID {
			continue
		}
		warehouse, ok := d.warehouses[key.warehouseID]
		if !ok {
			continue
		}
		reorder := product.ReorderPoint
		if reorder == 0 {
			reorder = defaultReorderPoint
		}
		if s.Quantity > reorder {
			continue
		}
		rows = append(rows, repository.LowStockItem{
			ProductID:     product.ID,
			SKU:           product.SKU,
			ProductName:   product.Name,
			WarehouseID:   warehouse.ID,
			WarehouseName: warehouse.Name,
			Quantity:      s.Quantity,
			ReorderPoint:  reorder,
		})
	}
	slices.SortFunc(rows, func(a, b repository.LowStockItem) int {
		if c := cmp.Compare(a.WarehouseName, b.WarehouseName); c != 0 {
			return c
		}
		return cmp.Compare(a.SKU, b.SKU)
	})
	return rows, nil
}

func dayStart(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
