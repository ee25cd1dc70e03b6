package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Tienda-api/internal/application/report"
)

// ReportHandler expone los reportes de ventas y stock en JSON y PDF.
type ReportHandler struct {
	uc *report.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *report.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// SalesByCategory godoc
// @Summary      Ventas por categoría
// @Description  Suma los detalles de notas de venta completadas en el rango (inclusive). Por defecto los últimos 30 días.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  false  "Desde YYYY-MM-DD"
// @Param        to    query  string  false  "Hasta YYYY-MM-DD"
// @Success      200   {object}  dto.SalesByCategoryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/reports/sales-by-category [get]
func (h *ReportHandler) SalesByCategory(c *fiber.Ctx) error {
	from, to, err := rangeQuery(c)
	if err != nil {
		return validationError(c, "from y to deben tener formato YYYY-MM-DD")
	}
	out, err := h.uc.SalesByCategory(c.UserContext(), GetCompanyID(c), from, to)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// SalesByCategoryPDF godoc
// @Summary      Ventas por categoría (PDF)
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        from  query  string  false  "Desde YYYY-MM-DD"
// @Param        to    query  string  false  "Hasta YYYY-MM-DD"
// @Success      200   {file}  binary
// @Router       /api/reports/sales-by-category/pdf [get]
func (h *ReportHandler) SalesByCategoryPDF(c *fiber.Ctx) error {
	from, to, err := rangeQuery(c)
	if err != nil {
		return validationError(c, "from y to deben tener formato YYYY-MM-DD")
	}
	data, err := h.uc.SalesByCategoryPDF(c.UserContext(), GetCompanyID(c), from, to)
	if err != nil {
		return writeError(c, err)
	}
	return sendPDF(c, "ventas-por-categoria.pdf", data)
}

// LowStockPDF godoc
// @Summary      Stock bajo (PDF)
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        warehouse_id  query  string  false  "Filtrar por bodega"
// @Success      200           {file}  binary
// @Router       /api/reports/low-stock/pdf [get]
func (h *ReportHandler) LowStockPDF(c *fiber.Ctx) error {
	data, err := h.uc.LowStockPDF(c.UserContext(), GetCompanyID(c), c.Query("warehouse_id"))
	if err != nil {
		return writeError(c, err)
	}
	return sendPDF(c, "stock-bajo.pdf", data)
}

func rangeQuery(c *fiber.Ctx) (time.Time, time.Time, error) {
	today := time.Now()
	to, err := dateQuery(c, "to", today)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	from, err := dateQuery(c, "from", to.AddDate(0, 0, -30))
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return from, to, nil
}
