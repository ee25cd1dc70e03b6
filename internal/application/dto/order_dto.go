package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CheckoutRequest body para POST /api/cart/checkout.
type CheckoutRequest struct {
	AddressID string `json:"address_id"`
}

// OrderResponse salida de un pedido.
type OrderResponse struct {
	ID           string          `json:"id"`
	CustomerID   string          `json:"customer_id"`
	AddressID    string          `json:"address_id"`
	Date         time.Time       `json:"date"`
	Total        decimal.Decimal `json:"total"`
	Status       string          `json:"status"`
	DispatchedAt *time.Time      `json:"dispatched_at,omitempty"`
	DeliveredAt  *time.Time      `json:"delivered_at,omitempty"`
	SalesNoteID  string          `json:"sales_note_id,omitempty"`
}
