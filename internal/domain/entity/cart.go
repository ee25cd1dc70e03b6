package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del carrito. Un cliente tiene como máximo un carrito en CartStatusActive.
const (
	CartStatusActive    = "active"
	CartStatusProcessed = "processed"
	CartStatusAbandoned = "abandoned"
)

// Cart es la selección en curso de un cliente. Total siempre se deriva de las líneas.
type Cart struct {
	ID         string
	CompanyID  string
	CustomerID string
	OrderID    *string // se asigna en el checkout
	Date       time.Time
	Total      decimal.Decimal
	Status     string
	UpdatedAt  time.Time
}

// IsActive indica si el carrito acepta cambios en sus líneas.
func (c *Cart) IsActive() bool { return c.Status == CartStatusActive }

// RecomputeTotal recalcula Total como la suma de los subtotales de lines.
func (c *Cart) RecomputeTotal(lines []*CartLine) {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Subtotal)
	}
	c.Total = total
}

// CartLine es un producto-en-bodega dentro de un carrito. Única por (carrito, producto, bodega).
type CartLine struct {
	ID          string
	CartID      string
	ProductID   string
	WarehouseID string
	Quantity    int
	UnitPrice   decimal.Decimal // precio de venta al momento de agregar
	Subtotal    decimal.Decimal
}

// RecomputeSubtotal fija Subtotal = Quantity × UnitPrice. Llamar antes de cada persistencia.
func (l *CartLine) RecomputeSubtotal() {
	l.Subtotal = l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}
