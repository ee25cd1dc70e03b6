package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del pedido.
//
//	pending ──► dispatched ──► completed
//	   │
//	   └──► cancelled
const (
	OrderStatusPending    = "pending"
	OrderStatusDispatched = "dispatched"
	OrderStatusCompleted  = "completed"
	OrderStatusCancelled  = "cancelled"
)

var orderTransitions = map[string][]string{
	OrderStatusPending:    {OrderStatusDispatched, OrderStatusCancelled},
	OrderStatusDispatched: {OrderStatusCompleted},
}

// Order agrupa un carrito procesado y su nota de venta bajo un ciclo de envío.
type Order struct {
	ID            string
	CompanyID     string
	CustomerID    string
	AddressID     string
	Date          time.Time
	Total         decimal.Decimal
	Status        string
	StockReserved bool // true si el checkout descontó stock
	DispatchedAt  *time.Time
	DeliveredAt   *time.Time
	UpdatedAt     time.Time
}

// CanTransition indica si el pedido puede pasar al estado to.
func (o *Order) CanTransition(to string) bool {
	for _, s := range orderTransitions[o.Status] {
		if s == to {
			return true
		}
	}
	return false
}
