package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Tienda-api/internal/application/cart"
	"github.com/jhoicas/Tienda-api/internal/application/inventory"
	"github.com/jhoicas/Tienda-api/internal/application/notes"
	"github.com/jhoicas/Tienda-api/internal/application/order"
	"github.com/jhoicas/Tienda-api/internal/application/promotion"
	"github.com/jhoicas/Tienda-api/internal/application/report"
	"github.com/jhoicas/Tienda-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ServiceName   string
	ProductUC     *usecase.ProductUseCase
	WarehouseUC   *usecase.WarehouseUseCase
	SupplierUC    *usecase.SupplierUseCase
	CartUC        *cart.CartUseCase
	OrderUC       *order.OrderUseCase
	NotesUC       *notes.NotesUseCase
	InventoryUC   *inventory.InventoryUseCase
	Replenishment *inventory.ReplenishmentUseCase
	PromotionUC   *promotion.PromotionUseCase
	ReportUC      *report.ReportUseCase
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.ServiceName})
	})

	api := app.Group("/api")

	// Todas las rutas de /api requieren Bearer Token
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	staff := RequireRole(RoleAdmin, RoleBodeguero, RoleVendedor)
	anyone := RequireRole(RoleAdmin, RoleBodeguero, RoleVendedor, RoleCliente)
	admin := RequireRole(RoleAdmin)
	warehouseStaff := RequireRole(RoleAdmin, RoleBodeguero)
	salesStaff := RequireRole(RoleAdmin, RoleVendedor)

	// Catálogo
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	promotionHandler := NewPromotionHandler(deps.PromotionUC)
	products.Get("/", anyone, productHandler.List)
	products.Get("/:id", anyone, productHandler.GetByID)
	products.Post("/", admin, productHandler.Create)
	products.Put("/:id", admin, productHandler.Update)
	products.Get("/:id/promotions", anyone, promotionHandler.ListByProduct)
	products.Get("/:id/promotions/active", anyone, promotionHandler.Active)

	promotions := protected.Group("/promotions")
	promotions.Post("/", salesStaff, promotionHandler.Create)

	warehouses := protected.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Get("/", staff, warehouseHandler.List)
	warehouses.Get("/:id", staff, warehouseHandler.GetByID)
	warehouses.Post("/", admin, warehouseHandler.Create)
	warehouses.Put("/:id", admin, warehouseHandler.Update)

	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", warehouseStaff, supplierHandler.Create)
	suppliers.Get("/:id", warehouseStaff, supplierHandler.GetByID)

	// Carrito del cliente del token
	cartGroup := protected.Group("/cart", RequireRole(RoleCliente), RequireCustomer())
	cartHandler := NewCartHandler(deps.CartUC, deps.OrderUC)
	cartGroup.Get("/", cartHandler.Get)
	cartGroup.Post("/lines", cartHandler.AddLine)
	cartGroup.Put("/lines/:id", cartHandler.UpdateLine)
	cartGroup.Delete("/lines/:id", cartHandler.RemoveLine)
	cartGroup.Post("/abandon", cartHandler.Abandon)
	cartGroup.Post("/checkout", cartHandler.Checkout)

	// Pedidos
	orders := protected.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrderUC)
	orders.Get("/:id", anyone, orderHandler.GetByID)
	orders.Post("/:id/dispatch", staff, orderHandler.Dispatch)
	orders.Post("/:id/deliver", staff, orderHandler.Deliver)
	orders.Post("/:id/cancel", salesStaff, orderHandler.Cancel)

	// Notas de venta y compra
	noteHandler := NewNoteHandler(deps.NotesUC, deps.ReportUC)
	sales := protected.Group("/sales-notes", salesStaff)
	sales.Get("/:id", noteHandler.GetSale)
	sales.Get("/:id/pdf", noteHandler.SalePDF)
	sales.Post("/:id/complete", noteHandler.CompleteSale)
	sales.Post("/:id/recompute", noteHandler.RecomputeSale)

	purchases := protected.Group("/purchases", warehouseStaff)
	purchases.Post("/", noteHandler.CreatePurchase)
	purchases.Get("/:id", noteHandler.GetPurchase)
	purchases.Post("/:id/details", noteHandler.AddPurchaseDetail)
	purchases.Put("/:id/details/:detailId", noteHandler.UpdatePurchaseDetail)
	purchases.Post("/:id/complete", noteHandler.CompletePurchase)
	purchases.Post("/:id/recompute", noteHandler.RecomputePurchase)
	purchases.Post("/:id/receive", noteHandler.ReceivePurchase)

	// Inventario
	invGroup := protected.Group("/inventory", warehouseStaff)
	inventoryHandler := NewInventoryHandler(deps.InventoryUC, deps.Replenishment)
	invGroup.Get("/stock/:productId", inventoryHandler.StockTotal)
	invGroup.Get("/stock/:productId/:warehouseId", inventoryHandler.StockInWarehouse)
	invGroup.Get("/movements/:productId", inventoryHandler.Movements)
	invGroup.Get("/low-stock", inventoryHandler.LowStock)
	invGroup.Post("/adjustments", inventoryHandler.CreateAdjustment)
	invGroup.Get("/adjustments/:id", inventoryHandler.GetAdjustment)
	invGroup.Post("/adjustments/:id/details", inventoryHandler.AddAdjustmentDetail)
	invGroup.Post("/adjustments/:id/apply", inventoryHandler.ApplyAdjustment)

	// Reportes
	reports := protected.Group("/reports", admin)
	reportHandler := NewReportHandler(deps.ReportUC)
	reports.Get("/sales-by-category", reportHandler.SalesByCategory)
	reports.Get("/sales-by-category/pdf", reportHandler.SalesByCategoryPDF)
	reports.Get("/low-stock/pdf", reportHandler.LowStockPDF)
}
