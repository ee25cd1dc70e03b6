package order

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Tienda-api/internal/application/dto"
	appinventory "github.com/jhoicas/Tienda-api/internal/application/inventory"
	"github.com/jhoicas/Tienda-api/internal/application/ports"
	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
	"github.com/jhoicas/Tienda-api/pkg/logger"
)

// Config comportamiento del checkout.
type Config struct {
	// DecrementStock descuenta el stock de cada línea dentro de la transacción del checkout.
	// En false se conserva el comportamiento histórico: el pedido no mueve inventario.
	DecrementStock bool
}

// OrderUseCase convierte carritos en pedidos y gestiona el ciclo de envío del pedido.
type OrderUseCase struct {
	txRunner   ports.TxRunner
	orders     repository.OrderRepository
	salesNotes repository.SalesNoteRepository
	cfg        Config
	log        *logger.Logger
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(
	txRunner ports.TxRunner,
	orders repository.OrderRepository,
	salesNotes repository.SalesNoteRepository,
	cfg Config,
	log *logger.Logger,
) *OrderUseCase {
	return &OrderUseCase{
		txRunner:   txRunner,
		orders:     orders,
		salesNotes: salesNotes,
		cfg:        cfg,
		log:        log,
	}
}

// Checkout crea el pedido (pending) y la nota de venta espejo de las líneas del carrito, y marca
// el carrito como processed enlazándolo al pedido. Todo ocurre en una sola transacción con la
// fila del carrito bloqueada: o se persisten pedido, nota y cambio de estado, o nada.
func (uc *OrderUseCase) Checkout(ctx context.Context, companyID, userID, cartID, addressID string) (*dto.OrderResponse, error) {
	if cartID == "" || addressID == "" {
		return nil, domain.ErrInvalidInput
	}
	var resp *dto.OrderResponse
	err := ports.RunWithRetry(ctx, uc.txRunner, func(ctx context.Context, repos repository.TxRepositories) error {
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
		lines, err := repos.CartLines.ListByCart(ctx, c.ID)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return domain.ErrEmptyCart
		}
		c.RecomputeTotal(lines)

		now := time.Now()
		o := &entity.Order{
			ID:            uuid.New().String(),
			CompanyID:     companyID,
			CustomerID:    c.CustomerID,
			AddressID:     addressID,
			Date:          now,
			Total:         c.Total,
			Status:        entity.OrderStatusPending,
			StockReserved: uc.cfg.DecrementStock,
			UpdatedAt:     now,
		}
		if err := repos.Orders.Create(ctx, o); err != nil {
			return err
		}

		orderID := o.ID
		note := &entity.SalesNote{
			ID:         uuid.New().String(),
			CompanyID:  companyID,
			OrderID:    &orderID,
			CustomerID: c.CustomerID,
			Date:       now,
			Status:     entity.NoteStatusPending,
			UpdatedAt:  now,
		}
		details := make([]*entity.SalesNoteDetail, 0, len(lines))
		for _, l := range lines {
			d := &entity.SalesNoteDetail{
				ID:          uuid.New().String(),
				NoteID:      note.ID,
				ProductID:   l.ProductID,
				WarehouseID: l.WarehouseID,
				Quantity:    l.Quantity,
				UnitPrice:   l.UnitPrice,
			}
			d.RecomputeTotal()
			details = append(details, d)
		}
		note.RecomputeTotal(details)
		if err := repos.SalesNotes.Create(ctx, note); err != nil {
			return err
		}
		for _, d := range details {
			if err := repos.SalesNotes.CreateDetail(ctx, d); err != nil {
				return err
			}
		}

		if uc.cfg.DecrementStock {
			for _, l := range lines {
				if err := appinventory.RegisterOUTInTx(ctx, repos, appinventory.MovementInput{
					SourceType:  entity.MovementSourceOrder,
					SourceID:    o.ID,
					UserID:      userID,
					ProductID:   l.ProductID,
					WarehouseID: l.WarehouseID,
					Quantity:    l.Quantity,
					Now:         now,
				}); err != nil {
					return err
				}
			}
		}

		if err := repos.Carts.TransitionStatus(ctx, c.ID, entity.CartStatusActive, entity.CartStatusProcessed, &orderID); err != nil {
			return err
		}
		resp = toOrderResponse(o, note.ID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("cart_id", cartID).Str("order_id", resp.ID).Str("total", resp.Total.String()).Msg("checkout completado")
	return resp, nil
}

// GetOrder obtiene un pedido con la referencia a su nota de venta.
func (uc *OrderUseCase) GetOrder(ctx context.Context, companyID, orderID string) (*dto.OrderResponse, error) {
	o, err := uc.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrNotFound
	}
	if o.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	note, err := uc.salesNotes.GetByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	noteID := ""
	if note != nil {
		noteID = note.ID
	}
	return toOrderResponse(o, noteID), nil
}

// Dispatch pasa el pedido de pending a dispatched y registra la fecha de despacho.
func (uc *OrderUseCase) Dispatch(ctx context.Context, companyID, userID, orderID string) (*dto.OrderResponse, error) {
	return uc.transition(ctx, companyID, userID, orderID, entity.OrderStatusDispatched)
}

// Deliver pasa el pedido de dispatched a completed y registra la fecha de entrega.
func (uc *OrderUseCase) Deliver(ctx context.Context, companyID, userID, orderID string) (*dto.OrderResponse, error) {
	return uc.transition(ctx, companyID, userID, orderID, entity.OrderStatusCompleted)
}

// Cancel anula un pedido pending. Si el checkout descontó stock, se devuelve a las bodegas.
// Un pedido cuya nota de venta ya se completó no se cancela.
func (uc *OrderUseCase) Cancel(ctx context.Context, companyID, userID, orderID string) (*dto.OrderResponse, error) {
	return uc.transition(ctx, companyID, userID, orderID, entity.OrderStatusCancelled)
}

func (uc *OrderUseCase) transition(ctx context.Context, companyID, userID, orderID, to string) (*dto.OrderResponse, error) {
	if orderID == "" {
		return nil, domain.ErrInvalidInput
	}
	var resp *dto.OrderResponse
	var from string
	err := ports.RunWithRetry(ctx, uc.txRunner, func(ctx context.Context, repos repository.TxRepositories) error {
		o, err := repos.Orders.GetForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if o == nil {
			return domain.ErrNotFound
		}
		if o.CompanyID != companyID {
			return domain.ErrForbidden
		}
		if !o.CanTransition(to) {
			return domain.ErrInvalidTransition
		}
		from = o.Status
		now := time.Now()
		switch to {
		case entity.OrderStatusDispatched:
			o.DispatchedAt = &now
		case entity.OrderStatusCompleted:
			o.DeliveredAt = &now
		}

		note, err := repos.SalesNotes.GetByOrderID(ctx, o.ID)
		if err != nil {
			return err
		}
		if to == entity.OrderStatusCancelled && note != nil && note.Status == entity.NoteStatusCompleted {
			return domain.ErrInvalidTransition
		}
		if to == entity.OrderStatusCancelled && o.StockReserved && note != nil {
			details, err := repos.SalesNotes.ListDetails(ctx, note.ID)
			if err != nil {
				return err
			}
			for _, d := range details {
				if err := appinventory.RegisterINInTx(ctx, repos, appinventory.MovementInput{
					SourceType:  entity.MovementSourceCancel,
					SourceID:    o.ID,
					UserID:      userID,
					ProductID:   d.ProductID,
					WarehouseID: d.WarehouseID,
					Quantity:    d.Quantity,
					Now:         now,
				}); err != nil {
					return err
				}
			}
			o.StockReserved = false
		}

		o.Status = to
		o.UpdatedAt = now
		if err := repos.Orders.Update(ctx, o); err != nil {
			return err
		}
		noteID := ""
		if note != nil {
			noteID = note.ID
		}
		resp = toOrderResponse(o, noteID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("order_id", orderID).Str("from", from).Str("to", to).Msg("pedido actualizado")
	return resp, nil
}

func toOrderResponse(o *entity.Order, noteID string) *dto.OrderResponse {
	return &dto.OrderResponse{
		ID:           o.ID,
		CustomerID:   o.CustomerID,
		AddressID:    o.AddressID,
		Date:         o.Date,
		Total:        o.Total,
		Status:       o.Status,
		DispatchedAt: o.DispatchedAt,
		DeliveredAt:  o.DeliveredAt,
		SalesNoteID:  noteID,
	}
}
