package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/application/promotion"
)

// PromotionHandler maneja las promociones por producto.
type PromotionHandler struct {
	uc *promotion.PromotionUseCase
}

// NewPromotionHandler construye el handler.
func NewPromotionHandler(uc *promotion.PromotionUseCase) *PromotionHandler {
	return &PromotionHandler{uc: uc}
}

// Create godoc
// @Summary      Crear promoción
// @Tags         promotions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePromotionRequest  true  "Producto, descuento y vigencia (YYYY-MM-DD)"
// @Success      201   {object}  dto.PromotionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/promotions [post]
func (h *PromotionHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePromotionRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), GetCompanyID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListByProduct godoc
// @Summary      Promociones de un producto
// @Tags         promotions
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {array}  dto.PromotionResponse
// @Router       /api/products/{id}/promotions [get]
func (h *PromotionHandler) ListByProduct(c *fiber.Ctx) error {
	out, err := h.uc.ListByProduct(c.UserContext(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Active godoc
// @Summary      Promociones vigentes de un producto
// @Description  Vigente si start_date ≤ date ≤ end_date comparando por día calendario.
// @Tags         promotions
// @Security     Bearer
// @Produce      json
// @Param        id    path   string  true   "ID del producto"
// @Param        date  query  string  false  "Fecha YYYY-MM-DD (hoy por defecto)"
// @Success      200   {array}  dto.PromotionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/products/{id}/promotions/active [get]
func (h *PromotionHandler) Active(c *fiber.Ctx) error {
	today, err := dateQuery(c, "date", time.Now())
	if err != nil {
		return validationError(c, "date debe tener formato YYYY-MM-DD")
	}
	out, err := h.uc.ActiveForProduct(c.UserContext(), GetCompanyID(c), c.Params("id"), today)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
