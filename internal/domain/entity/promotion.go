package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Promotion descuento sobre un producto vigente entre StartDate y EndDate (ambos inclusive).
type Promotion struct {
	ID        string
	CompanyID string
	ProductID string
	Name      string
	Discount  decimal.Decimal // porcentaje 0–100
	StartDate time.Time
	EndDate   time.Time
	CreatedAt time.Time
}

// IsActive indica si la promoción está vigente el día today. Compara por fecha de calendario.
func (p *Promotion) IsActive(today time.Time) bool {
	d := dateOnly(today)
	return !d.Before(dateOnly(p.StartDate)) && !d.After(dateOnly(p.EndDate))
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
