package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo (multi-bodega).
// Cost es promedio ponderado calculado desde las compras recibidas; el stock se maneja por bodega en Stock.
type Product struct {
	ID           string
	CompanyID    string
	CategoryID   string // vacío si no está categorizado
	SKU          string // código único por empresa
	Name         string
	Description  string
	Price        decimal.Decimal // precio de venta vigente
	Cost         decimal.Decimal // costo promedio ponderado (inicia en 0)
	ReorderPoint int             // por debajo o igual se considera stock bajo
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
