package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// NoteDetailResponse línea de una nota de venta o compra.
type NoteDetailResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	WarehouseID string          `json:"warehouse_id,omitempty"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Total       decimal.Decimal `json:"total"`
}

// SalesNoteResponse salida de una nota de venta.
type SalesNoteResponse struct {
	ID         string               `json:"id"`
	CompanyID  string               `json:"company_id"`
	OrderID    *string              `json:"order_id,omitempty"`
	CustomerID string               `json:"customer_id"`
	Date       time.Time            `json:"date"`
	Total      decimal.Decimal      `json:"total"`
	Status     string               `json:"status"`
	Details    []NoteDetailResponse `json:"details"`
}

// CreatePurchaseNoteRequest body para POST /api/purchases.
type CreatePurchaseNoteRequest struct {
	SupplierID  string `json:"supplier_id"`
	WarehouseID string `json:"warehouse_id"`
}

// PurchaseDetailRequest body para agregar o modificar una línea de compra.
type PurchaseDetailRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// PurchaseNoteResponse salida de una nota de compra.
type PurchaseNoteResponse struct {
	ID           string               `json:"id"`
	SupplierID   string               `json:"supplier_id"`
	SupplierName string               `json:"supplier_name,omitempty"`
	WarehouseID  string               `json:"warehouse_id"`
	Date         time.Time            `json:"date"`
	Total        decimal.Decimal      `json:"total"`
	Status       string               `json:"status"`
	ReceivedAt   *time.Time           `json:"received_at,omitempty"`
	Details      []NoteDetailResponse `json:"details"`
}
