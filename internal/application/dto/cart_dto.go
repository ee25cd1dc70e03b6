package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AddCartLineRequest body para POST /api/cart/lines.
type AddCartLineRequest struct {
	ProductID   string `json:"product_id"`
	WarehouseID string `json:"warehouse_id"`
	Quantity    int    `json:"quantity"`
}

// UpdateCartLineRequest body para PUT /api/cart/lines/:id.
type UpdateCartLineRequest struct {
	Quantity int `json:"quantity"`
}

// CartLineResponse salida de una línea de carrito.
type CartLineResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	WarehouseID string          `json:"warehouse_id"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// CartResponse salida de un carrito con sus líneas.
type CartResponse struct {
	ID         string             `json:"id"`
	CustomerID string             `json:"customer_id"`
	OrderID    *string            `json:"order_id,omitempty"`
	Date       time.Time          `json:"date"`
	Total      decimal.Decimal    `json:"total"`
	Status     string             `json:"status"`
	Lines      []CartLineResponse `json:"lines"`
}
