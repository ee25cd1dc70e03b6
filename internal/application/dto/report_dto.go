package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CategorySalesDTO total vendido de una categoría.
type CategorySalesDTO struct {
	CategoryID   string          `json:"category_id"`
	CategoryName string          `json:"category_name"`
	Units        int             `json:"units"`
	Total        decimal.Decimal `json:"total"`
}

// SalesByCategoryResponse reporte de ventas por categoría en un periodo.
type SalesByCategoryResponse struct {
	CompanyID  string             `json:"company_id"`
	From       time.Time          `json:"from"`
	To         time.Time          `json:"to"`
	Categories []CategorySalesDTO `json:"categories"`
	GrandTotal decimal.Decimal    `json:"grand_total"`
}
