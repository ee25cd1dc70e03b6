package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Tienda-api/internal/application/cart"
	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/application/order"
	"github.com/jhoicas/Tienda-api/internal/domain"
)

// CartHandler maneja el carrito activo del cliente del token.
type CartHandler struct {
	carts  *cart.CartUseCase
	orders *order.OrderUseCase
}

// NewCartHandler construye el handler.
func NewCartHandler(carts *cart.CartUseCase, orders *order.OrderUseCase) *CartHandler {
	return &CartHandler{carts: carts, orders: orders}
}

// Get godoc
// @Summary      Obtener carrito activo
// @Description  Devuelve el carrito activo del cliente; lo crea vacío si no existe.
// @Tags         cart
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CartResponse
// @Router       /api/cart [get]
func (h *CartHandler) Get(c *fiber.Ctx) error {
	out, err := h.carts.GetActiveCart(c.UserContext(), GetCompanyID(c), GetCustomerID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// AddLine godoc
// @Summary      Agregar producto al carrito
// @Description  Si la línea producto/bodega ya existe incrementa la cantidad.
// @Tags         cart
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AddCartLineRequest  true  "Producto, bodega y cantidad"
// @Success      200   {object}  dto.CartResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/cart/lines [post]
func (h *CartHandler) AddLine(c *fiber.Ctx) error {
	var in dto.AddCartLineRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.ProductID == "" || in.WarehouseID == "" {
		return validationError(c, "product_id y warehouse_id son requeridos")
	}
	out, err := h.carts.AddLine(c.UserContext(), GetCompanyID(c), GetCustomerID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateLine godoc
// @Summary      Cambiar cantidad de una línea
// @Tags         cart
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la línea"
// @Param        body  body  dto.UpdateCartLineRequest  true  "Nueva cantidad"
// @Success      200   {object}  dto.CartResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/cart/lines/{id} [put]
func (h *CartHandler) UpdateLine(c *fiber.Ctx) error {
	lineID := c.Params("id")
	var in dto.UpdateCartLineRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := h.ownLine(c, lineID); err != nil {
		return writeError(c, err)
	}
	out, err := h.carts.UpdateLineQuantity(c.UserContext(), GetCompanyID(c), lineID, in.Quantity)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// RemoveLine godoc
// @Summary      Quitar una línea del carrito
// @Tags         cart
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la línea"
// @Success      200  {object}  dto.CartResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/cart/lines/{id} [delete]
func (h *CartHandler) RemoveLine(c *fiber.Ctx) error {
	lineID := c.Params("id")
	if err := h.ownLine(c, lineID); err != nil {
		return writeError(c, err)
	}
	out, err := h.carts.RemoveLine(c.UserContext(), GetCompanyID(c), lineID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Abandon godoc
// @Summary      Abandonar el carrito activo
// @Tags         cart
// @Security     Bearer
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/cart/abandon [post]
func (h *CartHandler) Abandon(c *fiber.Ctx) error {
	active, err := h.carts.GetActiveCart(c.UserContext(), GetCompanyID(c), GetCustomerID(c))
	if err != nil {
		return writeError(c, err)
	}
	if err := h.carts.AbandonCart(c.UserContext(), GetCompanyID(c), active.ID); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Checkout godoc
// @Summary      Confirmar el carrito como pedido
// @Description  Crea el pedido y su nota de venta y marca el carrito como procesado, en una sola transacción.
// @Tags         cart
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CheckoutRequest  true  "Dirección de entrega"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/cart/checkout [post]
func (h *CartHandler) Checkout(c *fiber.Ctx) error {
	var in dto.CheckoutRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.AddressID == "" {
		return validationError(c, "address_id es requerido")
	}
	active, err := h.carts.GetActiveCart(c.UserContext(), GetCompanyID(c), GetCustomerID(c))
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.orders.Checkout(c.UserContext(), GetCompanyID(c), GetUserID(c), active.ID, in.AddressID)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ownLine verifica que la línea pertenezca al carrito activo del cliente del token.
func (h *CartHandler) ownLine(c *fiber.Ctx, lineID string) error {
	active, err := h.carts.GetActiveCart(c.UserContext(), GetCompanyID(c), GetCustomerID(c))
	if err != nil {
		return err
	}
	for _, l := range active.Lines {
		if l.ID == lineID {
			return nil
		}
	}
	return domain.ErrNotFound
}
