package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/application/notes"
	"github.com/jhoicas/Tienda-api/internal/application/report"
)

// NoteHandler maneja notas de venta y notas de compra.
type NoteHandler struct {
	uc      *notes.NotesUseCase
	reports *report.ReportUseCase
}

// NewNoteHandler construye el handler.
func NewNoteHandler(uc *notes.NotesUseCase, reports *report.ReportUseCase) *NoteHandler {
	return &NoteHandler{uc: uc, reports: reports}
}

// GetSale godoc
// @Summary      Obtener nota de venta
// @Tags         sales-notes
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la nota"
// @Success      200  {object}  dto.SalesNoteResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales-notes/{id} [get]
func (h *NoteHandler) GetSale(c *fiber.Ctx) error {
	out, err := h.uc.GetSalesNote(c.UserContext(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CompleteSale godoc
// @Summary      Completar nota de venta
// @Description  Recalcula el total desde los detalles y marca la nota como completada. Repetir la llamada vuelve a derivar el mismo total.
// @Tags         sales-notes
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la nota"
// @Success      200  {object}  dto.SalesNoteResponse
// @Router       /api/sales-notes/{id}/complete [post]
func (h *NoteHandler) CompleteSale(c *fiber.Ctx) error {
	out, err := h.uc.CompleteSale(c.UserContext(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// RecomputeSale godoc
// @Summary      Recalcular total de nota de venta
// @Tags         sales-notes
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la nota"
// @Success      200  {object}  dto.SalesNoteResponse
// @Router       /api/sales-notes/{id}/recompute [post]
func (h *NoteHandler) RecomputeSale(c *fiber.Ctx) error {
	out, err := h.uc.RecomputeSale(c.UserContext(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// SalePDF godoc
// @Summary      PDF de nota de venta
// @Tags         sales-notes
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la nota"
// @Success      200  {file}  binary
// @Router       /api/sales-notes/{id}/pdf [get]
func (h *NoteHandler) SalePDF(c *fiber.Ctx) error {
	id := c.Params("id")
	data, err := h.reports.SalesNotePDF(c.UserContext(), GetCompanyID(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return sendPDF(c, "nota-venta-"+id+".pdf", data)
}

// CreatePurchase godoc
// @Summary      Crear nota de compra
// @Tags         purchases
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePurchaseNoteRequest  true  "Proveedor y bodega de recepción"
// @Success      201   {object}  dto.PurchaseNoteResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/purchases [post]
func (h *NoteHandler) CreatePurchase(c *fiber.Ctx) error {
	var in dto.CreatePurchaseNoteRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.SupplierID == "" || in.WarehouseID == "" {
		return validationError(c, "supplier_id y warehouse_id son requeridos")
	}
	out, err := h.uc.CreatePurchaseNote(c.UserContext(), GetCompanyID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetPurchase godoc
// @Summary      Obtener nota de compra
// @Tags         purchases
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la nota"
// @Success      200  {object}  dto.PurchaseNoteResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchases/{id} [get]
func (h *NoteHandler) GetPurchase(c *fiber.Ctx) error {
	out, err := h.uc.GetPurchaseNote(c.UserContext(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// AddPurchaseDetail godoc
// @Summary      Agregar línea a nota de compra
// @Description  El total de la línea se calcula al guardar; el total de la nota se mantiene hasta completar o recalcular.
// @Tags         purchases
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la nota"
// @Param        body  body  dto.PurchaseDetailRequest  true  "Producto, cantidad y precio unitario"
// @Success      200   {object}  dto.PurchaseNoteResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/purchases/{id}/details [post]
func (h *NoteHandler) AddPurchaseDetail(c *fiber.Ctx) error {
	var in dto.PurchaseDetailRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.AddPurchaseDetail(c.UserContext(), GetCompanyID(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdatePurchaseDetail godoc
// @Summary      Modificar línea de nota de compra
// @Tags         purchases
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id        path  string  true  "ID de la nota"
// @Param        detailId  path  string  true  "ID de la línea"
// @Param        body      body  dto.PurchaseDetailRequest  true  "Cantidad y precio unitario"
// @Success      200       {object}  dto.PurchaseNoteResponse
// @Router       /api/purchases/{id}/details/{detailId} [put]
func (h *NoteHandler) UpdatePurchaseDetail(c *fiber.Ctx) error {
	var in dto.PurchaseDetailRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.UpdatePurchaseDetail(c.UserContext(), GetCompanyID(c), c.Params("id"), c.Params("detailId"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CompletePurchase godoc
// @Summary      Completar nota de compra
// @Tags         purchases
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la nota"
// @Success      200  {object}  dto.PurchaseNoteResponse
// @Router       /api/purchases/{id}/complete [post]
func (h *NoteHandler) CompletePurchase(c *fiber.Ctx) error {
	out, err := h.uc.CompletePurchase(c.UserContext(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// RecomputePurchase godoc
// @Summary      Recalcular total de nota de compra
// @Tags         purchases
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la nota"
// @Success      200  {object}  dto.PurchaseNoteResponse
// @Router       /api/purchases/{id}/recompute [post]
func (h *NoteHandler) RecomputePurchase(c *fiber.Ctx) error {
	out, err := h.uc.RecomputePurchase(c.UserContext(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ReceivePurchase godoc
// @Summary      Recibir mercancía de una compra completada
// @Description  Suma las cantidades al stock de la bodega y actualiza el costo promedio. Solo una vez por nota.
// @Tags         purchases
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la nota"
// @Success      200  {object}  dto.PurchaseNoteResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/purchases/{id}/receive [post]
func (h *NoteHandler) ReceivePurchase(c *fiber.Ctx) error {
	out, err := h.uc.ReceivePurchase(c.UserContext(), GetCompanyID(c), GetUserID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
