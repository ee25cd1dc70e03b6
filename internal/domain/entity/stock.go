package entity

import "time"

// Stock representa el inventario de un producto en una bodega (único por producto+bodega).
// Quantity nunca es negativo.
type Stock struct {
	ProductID   string
	WarehouseID string
	Quantity    int
	UpdatedAt   time.Time
}
