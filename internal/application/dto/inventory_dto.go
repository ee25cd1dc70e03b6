package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockResponse stock de un producto (total o por bodega).
type StockResponse struct {
	ProductID   string `json:"product_id"`
	WarehouseID string `json:"warehouse_id,omitempty"`
	Quantity    int    `json:"quantity"`
}

// CreateAdjustmentRequest body para POST /api/inventory/adjustments.
type CreateAdjustmentRequest struct {
	WarehouseID string `json:"warehouse_id"`
	Reason      string `json:"reason"`
}

// AdjustmentDetailRequest body para agregar una línea entrada/salida a un ajuste.
type AdjustmentDetailRequest struct {
	ProductID string          `json:"product_id"`
	Type      string          `json:"type"` // entrada | salida
	Quantity  int             `json:"quantity"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
}

// AdjustmentDetailResponse línea de un ajuste.
type AdjustmentDetailResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Type      string          `json:"type"`
	Quantity  int             `json:"quantity"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
	Total     decimal.Decimal `json:"total"`
}

// AdjustmentResponse salida de un ajuste de inventario.
type AdjustmentResponse struct {
	ID          string                     `json:"id"`
	WarehouseID string                     `json:"warehouse_id"`
	Date        time.Time                  `json:"date"`
	Reason      string                     `json:"reason"`
	Total       decimal.Decimal            `json:"total"`
	Status      string                     `json:"status"`
	Details     []AdjustmentDetailResponse `json:"details"`
}

// LowStockItemDTO producto en o por debajo de su punto de reorden.
type LowStockItemDTO struct {
	ProductID         string `json:"product_id"`
	SKU               string `json:"sku"`
	ProductName       string `json:"product_name"`
	WarehouseID       string `json:"warehouse_id"`
	WarehouseName     string `json:"warehouse_name"`
	Quantity          int    `json:"quantity"`
	ReorderPoint      int    `json:"reorder_point"`
	SuggestedOrderQty int    `json:"suggested_order_qty"`
	Priority          int    `json:"priority"`
}

// MovementResponse fila del kardex.
type MovementResponse struct {
	ID          string          `json:"id"`
	SourceType  string          `json:"source_type"`
	SourceID    string          `json:"source_id"`
	WarehouseID string          `json:"warehouse_id"`
	Type        string          `json:"type"`
	Quantity    int             `json:"quantity"`
	StockBefore int             `json:"stock_before"`
	StockAfter  int             `json:"stock_after"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	Date        time.Time       `json:"date"`
}
