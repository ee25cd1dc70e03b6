package cart

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/application/ports"
	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
	"github.com/jhoicas/Tienda-api/pkg/logger"
)

// CartUseCase administra el carrito activo del cliente y sus líneas.
// Cada mutación de líneas recalcula el subtotal de la línea y el total del carrito
// en la misma transacción, con la fila del carrito bloqueada.
type CartUseCase struct {
	txRunner      ports.TxRunner
	carts         repository.CartRepository
	lines         repository.CartLineRepository
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	log           *logger.Logger
}

// NewCartUseCase construye el caso de uso.
func NewCartUseCase(
	txRunner ports.TxRunner,
	carts repository.CartRepository,
	lines repository.CartLineRepository,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	log *logger.Logger,
) *CartUseCase {
	return &CartUseCase{
		txRunner:      txRunner,
		carts:         carts,
		lines:         lines,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		log:           log,
	}
}

// GetOrCreateActiveCart devuelve el carrito activo del cliente, creándolo si no existe.
// Si otra petición lo crea en paralelo, la inserción falla por la restricción única
// y se vuelve a leer el carrito ganador (un reintento).
func (uc *CartUseCase) GetOrCreateActiveCart(ctx context.Context, companyID, customerID string) (*entity.Cart, error) {
	if companyID == "" || customerID == "" {
		return nil, domain.ErrInvalidInput
	}
	for attempt := 0; attempt < 2; attempt++ {
		current, err := uc.carts.GetActiveByCustomer(ctx, companyID, customerID)
		if err != nil {
			return nil, err
		}
		if current != nil {
			return current, nil
		}
		now := time.Now()
		c := &entity.Cart{
			ID:         uuid.New().String(),
			CompanyID:  companyID,
			CustomerID: customerID,
			Date:       now,
			Total:      decimal.Zero,
			Status:     entity.CartStatusActive,
			UpdatedAt:  now,
		}
		err = uc.carts.CreateActive(ctx, c)
		if err == nil {
			uc.log.Debug().Str("cart_id", c.ID).Str("customer_id", customerID).Msg("carrito creado")
			return c, nil
		}
		if !errors.Is(err, domain.ErrDuplicate) {
			return nil, err
		}
	}
	return nil, domain.ErrConflict
}

// GetCart devuelve el carrito con sus líneas.
func (uc *CartUseCase) GetCart(ctx context.Context, companyID, cartID string) (*dto.CartResponse, error) {
	c, err := uc.carts.GetByID(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	if c.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	lines, err := uc.lines.ListByCart(ctx, cartID)
	if err != nil {
		return nil, err
	}
	return ToCartResponse(c, lines), nil
}

// GetActiveCart devuelve el carrito activo del cliente (lo crea vacío si no existe).
func (uc *CartUseCase) GetActiveCart(ctx context.Context, companyID, customerID string) (*dto.CartResponse, error) {
	c, err := uc.GetOrCreateActiveCart(ctx, companyID, customerID)
	if err != nil {
		return nil, err
	}
	lines, err := uc.lines.ListByCart(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	return ToCartResponse(c, lines), nil
}

// AddLine agrega quantity unidades de un producto-en-bodega al carrito activo del cliente.
// Si la línea ya existe incrementa la cantidad; si no, la crea con el precio de venta vigente.
// Rechaza con domain.ErrStockUnavailable si el stock de la bodega no cubre la cantidad resultante
// o si la bodega está deshabilitada. El carrito activo se crea en la misma transacción que la línea:
// un agregado rechazado no deja carrito.
func (uc *CartUseCase) AddLine(ctx context.Context, companyID, customerID string, in dto.AddCartLineRequest) (*dto.CartResponse, error) {
	if companyID == "" || customerID == "" || in.ProductID == "" || in.WarehouseID == "" || in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if product.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	wh, err := uc.warehouseRepo.GetByID(ctx, in.WarehouseID)
	if err != nil {
		return nil, err
	}
	if wh == nil || wh.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	if !wh.Enabled() {
		return nil, domain.ErrStockUnavailable
	}

	var (
		resp    *dto.CartResponse
		created bool
	)
	err = ports.RunWithRetry(ctx, uc.txRunner, func(ctx context.Context, repos repository.TxRepositories) error {
		locked, isNew, err := activeCartInTx(ctx, repos, companyID, customerID)
		if err != nil {
			return err
		}
		created = isNew
		line, err := repos.CartLines.Find(ctx, locked.ID, in.ProductID, in.WarehouseID)
		if err != nil {
			return err
		}
		newQty := in.Quantity
		if line != nil {
			newQty += line.Quantity
		}
		stock, err := repos.Stock.Get(ctx, in.ProductID, in.WarehouseID)
		if err != nil {
			return err
		}
		if stock.Quantity <= 0 || stock.Quantity < newQty {
			return domain.ErrStockUnavailable
		}

		if line == nil {
			line = &entity.CartLine{
				ID:          uuid.New().String(),
				CartID:      locked.ID,
				ProductID:   in.ProductID,
				WarehouseID: in.WarehouseID,
				Quantity:    newQty,
				UnitPrice:   product.Price,
			}
			line.RecomputeSubtotal()
			if err := repos.CartLines.Create(ctx, line); err != nil {
				return err
			}
		} else {
			line.Quantity = newQty
			line.RecomputeSubtotal()
			if err := repos.CartLines.Update(ctx, line); err != nil {
				return err
			}
		}
		resp, err = recomputeCart(ctx, repos, locked)
		return err
	})
	if err != nil {
		return nil, err
	}
	if created {
		uc.log.Debug().Str("cart_id", resp.ID).Str("customer_id", customerID).Msg("carrito creado")
	}
	return resp, nil
}

// UpdateLineQuantity fija la cantidad de una línea. Cero o negativo es un error de validación.
func (uc *CartUseCase) UpdateLineQuantity(ctx context.Context, companyID, lineID string, quantity int) (*dto.CartResponse, error) {
	if lineID == "" || quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	var resp *dto.CartResponse
	err := ports.RunWithRetry(ctx, uc.txRunner, func(ctx context.Context, repos repository.TxRepositories) error {
		line, locked, err := lockLine(ctx, repos, companyID, lineID)
		if err != nil {
			return err
		}
		stock, err := repos.Stock.Get(ctx, line.ProductID, line.WarehouseID)
		if err != nil {
			return err
		}
		if quantity > line.Quantity && stock.Quantity < quantity {
			return domain.ErrStockUnavailable
		}
		line.Quantity = quantity
		line.RecomputeSubtotal()
		if err := repos.CartLines.Update(ctx, line); err != nil {
			return err
		}
		resp, err = recomputeCart(ctx, repos, locked)
		return err
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// RemoveLine elimina una línea y recalcula el total del carrito.
func (uc *CartUseCase) RemoveLine(ctx context.Context, companyID, lineID string) (*dto.CartResponse, error) {
	if lineID == "" {
		return nil, domain.ErrInvalidInput
	}
	var resp *dto.CartResponse
	err := ports.RunWithRetry(ctx, uc.txRunner, func(ctx context.Context, repos repository.TxRepositories) error {
		_, locked, err := lockLine(ctx, repos, companyID, lineID)
		if err != nil {
			return err
		}
		if err := repos.CartLines.Delete(ctx, lineID); err != nil {
			return err
		}
		resp, err = recomputeCart(ctx, repos, locked)
		return err
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// AbandonCart marca un carrito activo como abandonado. El cliente obtiene uno nuevo en el próximo AddLine.
func (uc *CartUseCase) AbandonCart(ctx context.Context, companyID, cartID string) error {
	return ports.RunWithRetry(ctx, uc.txRunner, func(ctx context.Context, repos repository.TxRepositories) error {
		c, err := repos.Carts.GetForUpdate(ctx, cartID)
		if err != nil {
			return err
		}
		if c == nil {
			return domain.ErrNotFound
		}
		if c.CompanyID != companyID {
			return domain.ErrForbidden
		}
		if !c.IsActive() {
			return domain.ErrCartNotActive
		}
		if err := repos.Carts.TransitionStatus(ctx, cartID, entity.CartStatusActive, entity.CartStatusAbandoned, nil); err != nil {
			return err
		}
		uc.log.Info().Str("cart_id", cartID).Msg("carrito abandonado")
		return nil
	})
}

// lockActiveCart bloquea el carrito (SELECT FOR UPDATE) y verifica que siga activo.
// activeCartInTx bloquea el carrito activo del cliente o lo crea dentro de la transacción.
// Si otra transacción lo crea primero, la restricción única responde ErrDuplicate y se
// devuelve domain.ErrConflict para que RunWithRetry relea el carrito ganador.
func activeCartInTx(ctx context.Context, repos repository.TxRepositories, companyID, customerID string) (*entity.Cart, bool, error) {
	current, err := repos.Carts.GetActiveByCustomer(ctx, companyID, customerID)
	if err != nil {
		return nil, false, err
	}
	if current != nil {
		locked, err := lockActiveCart(ctx, repos, current.ID)
		return locked, false, err
	}
	now := time.Now()
	c := &entity.Cart{
		ID:         uuid.New().String(),
		CompanyID:  companyID,
		CustomerID: customerID,
		Date:       now,
		Total:      decimal.Zero,
		Status:     entity.CartStatusActive,
		UpdatedAt:  now,
	}
	if err := repos.Carts.CreateActive(ctx, c); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, false, domain.ErrConflict
		}
		return nil, false, err
	}
	return c, true, nil
}

func lockActiveCart(ctx context.Context, repos repository.TxRepositories, cartID string) (*entity.Cart, error) {
	c, err := repos.Carts.GetForUpdate(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	if !c.IsActive() {
		return nil, domain.ErrCartNotActive
	}
	return c, nil
}

// lockLine carga la línea y bloquea su carrito, validando empresa y estado.
func lockLine(ctx context.Context, repos repository.TxRepositories, companyID, lineID string) (*entity.CartLine, *entity.Cart, error) {
	line, err := repos.CartLines.GetByID(ctx, lineID)
	if err != nil {
		return nil, nil, err
	}
	if line == nil {
		return nil, nil, domain.ErrNotFound
	}
	c, err := lockActiveCart(ctx, repos, line.CartID)
	if err != nil {
		return nil, nil, err
	}
	if c.CompanyID != companyID {
		return nil, nil, domain.ErrForbidden
	}
	return line, c, nil
}

// recomputeCart recalcula el total desde las líneas actuales y lo persiste.
func recomputeCart(ctx context.Context, repos repository.TxRepositories, c *entity.Cart) (*dto.CartResponse, error) {
	lines, err := repos.CartLines.ListByCart(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	c.RecomputeTotal(lines)
	c.UpdatedAt = time.Now()
	if err := repos.Carts.UpdateTotal(ctx, c); err != nil {
		return nil, err
	}
	return ToCartResponse(c, lines), nil
}

// ToCartResponse convierte el carrito y sus líneas al DTO de salida.
func ToCartResponse(c *entity.Cart, lines []*entity.CartLine) *dto.CartResponse {
	resp := &dto.CartResponse{
		ID:         c.ID,
		CustomerID: c.CustomerID,
		OrderID:    c.OrderID,
		Date:       c.Date,
		Total:      c.Total,
		Status:     c.Status,
		Lines:      make([]dto.CartLineResponse, 0, len(lines)),
	}
	for _, l := range lines {
		resp.Lines = append(resp.Lines, dto.CartLineResponse{
			ID:          l.ID,
			ProductID:   l.ProductID,
			WarehouseID: l.WarehouseID,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			Subtotal:    l.Subtotal,
		})
	}
	return resp
}
