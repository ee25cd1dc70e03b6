package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de notas de venta y de compra.
const (
	NoteStatusPending   = "pending"
	NoteStatusCompleted = "completed"
)

// SalesNote es el registro contable de una venta. Total se recalcula solo al completar o recalcular.
type SalesNote struct {
	ID         string
	CompanyID  string
	OrderID    *string
	CustomerID string
	Date       time.Time
	Total      decimal.Decimal
	Status     string
	UpdatedAt  time.Time
}

// SalesNoteDetail línea de una nota de venta.
type SalesNoteDetail struct {
	ID          string
	NoteID      string
	ProductID   string
	WarehouseID string
	Quantity    int
	UnitPrice   decimal.Decimal
	Total       decimal.Decimal
}

// RecomputeTotal fija Total = Quantity × UnitPrice.
func (d *SalesNoteDetail) RecomputeTotal() {
	d.Total = d.UnitPrice.Mul(decimal.NewFromInt(int64(d.Quantity)))
}

// RecomputeTotal recalcula la cabecera desde sus detalles.
func (n *SalesNote) RecomputeTotal(details []*SalesNoteDetail) {
	total := decimal.Zero
	for _, d := range details {
		total = total.Add(d.Total)
	}
	n.Total = total
}

// PurchaseNote es el registro contable de una compra a proveedor.
type PurchaseNote struct {
	ID          string
	CompanyID   string
	SupplierID  string
	WarehouseID string // bodega que recibe la mercancía
	Date        time.Time
	Total       decimal.Decimal
	Status      string
	ReceivedAt  *time.Time
	UpdatedAt   time.Time
}

// PurchaseNoteDetail línea de una nota de compra.
type PurchaseNoteDetail struct {
	ID        string
	NoteID    string
	ProductID string
	Quantity  int
	UnitPrice decimal.Decimal
	Total     decimal.Decimal
}

// RecomputeTotal fija Total = Quantity × UnitPrice.
func (d *PurchaseNoteDetail) RecomputeTotal() {
	d.Total = d.UnitPrice.Mul(decimal.NewFromInt(int64(d.Quantity)))
}

// RecomputeTotal recalcula la cabecera desde sus detalles.
func (n *PurchaseNote) RecomputeTotal(details []*PurchaseNoteDetail) {
	total := decimal.Zero
	for _, d := range details {
		total = total.Add(d.Total)
	}
	n.Total = total
}
