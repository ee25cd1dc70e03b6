package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/Tienda-api/internal/application/cart"
	"github.com/jhoicas/Tienda-api/internal/application/inventory"
	"github.com/jhoicas/Tienda-api/internal/application/notes"
	"github.com/jhoicas/Tienda-api/internal/application/order"
	"github.com/jhoicas/Tienda-api/internal/application/ports"
	"github.com/jhoicas/Tienda-api/internal/application/promotion"
	"github.com/jhoicas/Tienda-api/internal/application/report"
	"github.com/jhoicas/Tienda-api/internal/application/usecase"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
	"github.com/jhoicas/Tienda-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/Tienda-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Tienda-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Tienda-api/internal/interfaces/http"
	"github.com/jhoicas/Tienda-api/pkg/config"
	"github.com/jhoicas/Tienda-api/pkg/logger"
)

// storage agrupa los repositorios del backend elegido con STORAGE.
type storage struct {
	txRunner      ports.TxRunner
	products      repository.ProductRepository
	warehouses    repository.WarehouseRepository
	suppliers     repository.SupplierRepository
	promotions    repository.PromotionRepository
	stock         repository.StockRepository
	movements     repository.InventoryMovementRepository
	carts         repository.CartRepository
	cartLines     repository.CartLineRepository
	orders        repository.OrderRepository
	salesNotes    repository.SalesNoteRepository
	purchaseNotes repository.PurchaseNoteRepository
	adjustments   repository.AdjustmentRepository
	reports       repository.ReportRepository
	close         func()
}

func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) storage {
	if cfg.Store.Storage == config.StorageMemory {
		log.Warn().Msg("STORAGE=memory: los datos se pierden al reiniciar")
		s := memory.New()
		return storage{
			txRunner:      s,
			products:      s.Products(),
			warehouses:    s.Warehouses(),
			suppliers:     s.Suppliers(),
			promotions:    s.Promotions(),
			stock:         s.Stock(),
			movements:     s.Movements(),
			carts:         s.Carts(),
			cartLines:     s.CartLines(),
			orders:        s.Orders(),
			salesNotes:    s.SalesNotes(),
			purchaseNotes: s.PurchaseNotes(),
			adjustments:   s.Adjustments(),
			reports:       s.Reports(),
			close:         func() {},
		}
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	return storage{
		txRunner:      postgres.NewTxRunner(pool),
		products:      postgres.NewProductRepository(pool),
		warehouses:    postgres.NewWarehouseRepository(pool),
		suppliers:     postgres.NewSupplierRepository(pool),
		promotions:    postgres.NewPromotionRepository(pool),
		stock:         postgres.NewStockRepository(pool),
		movements:     postgres.NewInventoryMovementRepository(pool),
		carts:         postgres.NewCartRepository(pool),
		cartLines:     postgres.NewCartLineRepository(pool),
		orders:        postgres.NewOrderRepository(pool),
		salesNotes:    postgres.NewSalesNoteRepository(pool),
		purchaseNotes: postgres.NewPurchaseNoteRepository(pool),
		adjustments:   postgres.NewAdjustmentRepository(pool),
		reports:       postgres.NewReportRepository(pool),
		close:         pool.Close,
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Store.Storage).
		Bool("checkout_decrement_stock", cfg.Store.CheckoutDecrementStock).
		Msg("iniciando aplicación")

	ctx := context.Background()
	st := openStorage(ctx, cfg, log)
	defer st.close()

	productUC := usecase.NewProductUseCase(st.products)
	warehouseUC := usecase.NewWarehouseUseCase(st.warehouses)
	supplierUC := usecase.NewSupplierUseCase(st.suppliers)
	cartUC := cart.NewCartUseCase(st.txRunner, st.carts, st.cartLines, st.products, st.warehouses, log.Component("cart"))
	orderUC := order.NewOrderUseCase(st.txRunner, st.orders, st.salesNotes, order.Config{
		DecrementStock: cfg.Store.CheckoutDecrementStock,
	}, log.Component("order"))
	notesUC := notes.NewNotesUseCase(st.txRunner, st.salesNotes, st.purchaseNotes, st.suppliers, st.warehouses, log.Component("notes"))
	inventoryUC := inventory.NewInventoryUseCase(st.txRunner, st.stock, st.movements, st.adjustments, st.products, st.warehouses, log.Component("inventory"))
	replenishmentUC := inventory.NewReplenishmentUseCase(st.reports, cfg.Store.LowStockDefault)
	promotionUC := promotion.NewPromotionUseCase(st.promotions, st.products)

	// PDF: notas de venta y reportes
	pdfGenerator := infrapdf.NewMarotoPDFGenerator(cfg.App.Name)
	reportUC := report.NewReportUseCase(st.reports, replenishmentUC, notesUC, pdfGenerator)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler(log.Component("http")),
	})
	app.Use(httpRouter.RequestLogger(log.Component("http")))
	app.Use(recover.New())

	// Swagger UI: http://localhost:<port>/docs
	if cfg.HTTP.SwaggerFile != "" {
		if _, err := os.Stat(cfg.HTTP.SwaggerFile); err == nil {
			app.Use(swagger.New(swagger.Config{
				BasePath: "/",
				FilePath: cfg.HTTP.SwaggerFile,
				Path:     "docs",
				Title:    "Tienda API",
			}))
		} else {
			log.Warn().Str("file", cfg.HTTP.SwaggerFile).Msg("swagger deshabilitado: archivo no encontrado")
		}
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		ServiceName:   cfg.App.Name,
		ProductUC:     productUC,
		WarehouseUC:   warehouseUC,
		SupplierUC:    supplierUC,
		CartUC:        cartUC,
		OrderUC:       orderUC,
		NotesUC:       notesUC,
		InventoryUC:   inventoryUC,
		Replenishment: replenishmentUC,
		PromotionUC:   promotionUC,
		ReportUC:      reportUC,
		JWTSecret:     cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
