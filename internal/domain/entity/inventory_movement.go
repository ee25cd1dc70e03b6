package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario (kardex).
const (
	MovementTypeIN  = "IN"  // entrada
	MovementTypeOUT = "OUT" // salida
)

// Orígenes del movimiento; SourceID apunta al documento que lo generó.
const (
	MovementSourceAdjustment = "ADJUSTMENT"
	MovementSourcePurchase   = "PURCHASE"
	MovementSourceOrder      = "ORDER"
	MovementSourceCancel     = "ORDER_CANCEL"
)

// InventoryMovement registra un cambio aplicado al stock de una bodega.
type InventoryMovement struct {
	ID          string
	SourceType  string
	SourceID    string
	ProductID   string
	WarehouseID string
	Type        string
	Quantity    int // positivo entrada, negativo salida
	StockBefore int
	StockAfter  int
	UnitCost    decimal.Decimal
	TotalCost   decimal.Decimal
	Date        time.Time
	CreatedBy   string
}
