package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// CategorySales total vendido por categoría en un periodo.
type CategorySales struct {
	CategoryID   string          `db:"category_id"`
	CategoryName string          `db:"category_name"`
	Units        int             `db:"units"`
	Total        decimal.Decimal `db:"total"`
}

// LowStockItem producto cuyo stock está en o por debajo de su punto de reorden.
type LowStockItem struct {
	ProductID     string `db:"product_id"`
	SKU           string `db:"sku"`
	ProductName   string `db:"product_name"`
	WarehouseID   string `db:"warehouse_id"`
	WarehouseName string `db:"warehouse_name"`
	Quantity      int    `db:"quantity"`
	ReorderPoint  int    `db:"reorder_point"`
}

// ReportRepository agregados de solo lectura para reportes.
// warehouseID vacío considera todas las bodegas de la empresa. defaultReorderPoint aplica a los
// productos sin punto de reorden configurado (0).
type ReportRepository interface {
	SalesByCategory(ctx context.Context, companyID string, from, to time.Time) ([]CategorySales, error)
	LowStock(ctx context.Context, companyID, warehouseID string, defaultReorderPoint int) ([]LowStockItem, error)
}
