package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePromotionRequest body para POST /api/promotions. Fechas en formato 2006-01-02.
type CreatePromotionRequest struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Discount  decimal.Decimal `json:"discount"`
	StartDate string          `json:"start_date"`
	EndDate   string          `json:"end_date"`
}

// PromotionResponse salida de una promoción.
type PromotionResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Discount  decimal.Decimal `json:"discount"`
	StartDate time.Time       `json:"start_date"`
	EndDate   time.Time       `json:"end_date"`
	Active    bool            `json:"active"`
}
