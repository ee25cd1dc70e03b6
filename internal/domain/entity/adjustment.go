package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de detalle de un ajuste.
const (
	AdjustmentEntrada = "entrada"
	AdjustmentSalida  = "salida"
)

// Estados del ajuste.
const (
	AdjustmentStatusPending   = "pending"
	AdjustmentStatusCompleted = "completed"
)

// Adjustment corrección manual del stock de una bodega.
type Adjustment struct {
	ID          string
	CompanyID   string
	WarehouseID string
	Date        time.Time
	Reason      string
	Total       decimal.Decimal
	Status      string
	UpdatedAt   time.Time
}

// AdjustmentDetail línea de entrada o salida de un ajuste.
type AdjustmentDetail struct {
	ID           string
	AdjustmentID string
	ProductID    string
	Type         string
	Quantity     int
	UnitCost     decimal.Decimal
	Total        decimal.Decimal
}

// RecomputeTotal fija Total = Quantity × UnitCost.
func (d *AdjustmentDetail) RecomputeTotal() {
	d.Total = d.UnitCost.Mul(decimal.NewFromInt(int64(d.Quantity)))
}

// RecomputeTotal recalcula la cabecera como suma de los totales de detalle.
func (a *Adjustment) RecomputeTotal(details []*AdjustmentDetail) {
	total := decimal.Zero
	for _, d := range details {
		total = total.Add(d.Total)
	}
	a.Total = total
}
