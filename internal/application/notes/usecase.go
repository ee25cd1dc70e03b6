package notes

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Tienda-api/internal/application/dto"
	appinventory "github.com/jhoicas/Tienda-api/internal/application/inventory"
	"github.com/jhoicas/Tienda-api/internal/application/ports"
	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
	"github.com/jhoicas/Tienda-api/pkg/logger"
)

// NotesUseCase notas de venta y de compra.
//
// Los detalles calculan su total al guardarse; la cabecera solo se recalcula en Complete* y Recompute*.
// Entre una edición de detalle y el siguiente recálculo ambos totales pueden diferir.
type NotesUseCase struct {
	txRunner      ports.TxRunner
	salesNotes    repository.SalesNoteRepository
	purchaseNotes repository.PurchaseNoteRepository
	suppliers     repository.SupplierRepository
	warehouseRepo repository.WarehouseRepository
	log           *logger.Logger
}

// NewNotesUseCase construye el caso de uso.
func NewNotesUseCase(
	txRunner ports.TxRunner,
	salesNotes repository.SalesNoteRepository,
	purchaseNotes repository.PurchaseNoteRepository,
	suppliers repository.SupplierRepository,
	warehouseRepo repository.WarehouseRepository,
	log *logger.Logger,
) *NotesUseCase {
	return &NotesUseCase{
		txRunner:      txRunner,
		salesNotes:    salesNotes,
		purchaseNotes: purchaseNotes,
		suppliers:     suppliers,
		warehouseRepo: warehouseRepo,
		log:           log,
	}
}

// ── Ventas ──────────────────────────────────────────────────────────────────

// GetSalesNote obtiene una nota de venta con sus detalles.
func (uc *NotesUseCase) GetSalesNote(ctx context.Context, companyID, noteID string) (*dto.SalesNoteResponse, error) {
	n, err := uc.salesNotes.GetByID(ctx, noteID)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, domain.ErrNotFound
	}
	if n.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	details, err := uc.salesNotes.ListDetails(ctx, n.ID)
	if err != nil {
		return nil, err
	}
	return ToSalesNoteResponse(n, details), nil
}

// CompleteSale recalcula el total desde los detalles y marca la nota como completed.
// Puede invocarse de nuevo sobre una nota completada para reparar el total.
// La nota de un pedido cancelado no se completa (domain.ErrInvalidTransition).
func (uc *NotesUseCase) CompleteSale(ctx context.Context, companyID, noteID string) (*dto.SalesNoteResponse, error) {
	return uc.recomputeSale(ctx, companyID, noteID, true)
}

// RecomputeSale recalcula el total desde los detalles sin cambiar el estado.
func (uc *NotesUseCase) RecomputeSale(ctx context.Context, companyID, noteID string) (*dto.SalesNoteResponse, error) {
	return uc.recomputeSale(ctx, companyID, noteID, false)
}

func (uc *NotesUseCase) recomputeSale(ctx context.Context, companyID, noteID string, complete bool) (*dto.SalesNoteResponse, error) {
	var resp *dto.SalesNoteResponse
	err := ports.RunWithRetry(ctx, uc.txRunner, func(ctx context.Context, repos repository.TxRepositories) error {
		n, err := repos.SalesNotes.GetForUpdate(ctx, noteID)
		if err != nil {
			return err
		}
		if n == nil {
			return domain.ErrNotFound
		}
		if n.CompanyID != companyID {
			return domain.ErrForbidden
		}
		if complete && n.OrderID != nil {
			o, err := repos.Orders.GetForUpdate(ctx, *n.OrderID)
			if err != nil {
				return err
			}
			if o != nil && o.Status == entity.OrderStatusCancelled {
				return domain.ErrInvalidTransition
			}
		}
		details, err := repos.SalesNotes.ListDetails(ctx, n.ID)
		if err != nil {
			return err
		}
		n.RecomputeTotal(details)
		if complete {
			n.Status = entity.NoteStatusCompleted
		}
		n.UpdatedAt = time.Now()
		if err := repos.SalesNotes.Update(ctx, n); err != nil {
			return err
		}
		resp = ToSalesNoteResponse(n, details)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if complete {
		uc.log.Info().Str("note_id", noteID).Str("total", resp.Total.String()).Msg("nota de venta completada")
	}
	return resp, nil
}

// ── Compras ─────────────────────────────────────────────────────────────────

// CreatePurchaseNote crea una nota de compra pending para un proveedor y bodega habilitada de la empresa.
func (uc *NotesUseCase) CreatePurchaseNote(ctx context.Context, companyID string, in dto.CreatePurchaseNoteRequest) (*dto.PurchaseNoteResponse, error) {
	if in.SupplierID == "" || in.WarehouseID == "" {
		return nil, domain.ErrInvalidInput
	}
	supplier, err := uc.suppliers.GetByID(ctx, in.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil || supplier.SupplierCompanyID() != companyID {
		return nil, domain.ErrNotFound
	}
	wh, err := uc.warehouseRepo.GetByID(ctx, in.WarehouseID)
	if err != nil {
		return nil, err
	}
	if wh == nil || wh.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	if !wh.Enabled() {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	n := &entity.PurchaseNote{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		SupplierID:  in.SupplierID,
		WarehouseID: in.WarehouseID,
		Date:        now,
		Total:       decimal.Zero,
		Status:      entity.NoteStatusPending,
		UpdatedAt:   now,
	}
	if err := uc.purchaseNotes.Create(ctx, n); err != nil {
		return nil, err
	}
	return toPurchaseNoteResponse(n, supplier.DisplayName(), nil), nil
}

// AddPurchaseDetail agrega una línea a la nota. La cabecera no se toca.
// La nota queda bloqueada mientras se inserta para no cruzarse con ReceivePurchase.
func (uc *NotesUseCase) AddPurchaseDetail(ctx context.Context, companyID, noteID string, in dto.PurchaseDetailRequest) (*dto.PurchaseNoteResponse, error) {
	if err := validatePurchaseDetail(in); err != nil {
		return nil, err
	}
	err := ports.RunWithRetry(ctx, uc.txRunner, func(ctx context.Context, repos repository.TxRepositories) error {
		n, err := lockEditablePurchase(ctx, repos, companyID, noteID)
		if err != nil {
			return err
		}
		product, err := repos.Products.GetByID(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if product == nil || product.CompanyID != companyID {
			return domain.ErrNotFound
		}
		d := &entity.PurchaseNoteDetail{
			ID:        uuid.New().String(),
			NoteID:    n.ID,
			ProductID: in.ProductID,
			Quantity:  in.Quantity,
			UnitPrice: in.UnitPrice,
		}
		d.RecomputeTotal()
		return repos.PurchaseNotes.CreateDetail(ctx, d)
	})
	if err != nil {
		return nil, err
	}
	return uc.GetPurchaseNote(ctx, companyID, noteID)
}

// UpdatePurchaseDetail cambia cantidad y precio de una línea y recalcula su total.
func (uc *NotesUseCase) UpdatePurchaseDetail(ctx context.Context, companyID, noteID, detailID string, in dto.PurchaseDetailRequest) (*dto.PurchaseNoteResponse, error) {
	if in.Quantity <= 0 || in.UnitPrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	err := ports.RunWithRetry(ctx, uc.txRunner, func(ctx context.Context, repos repository.TxRepositories) error {
		n, err := lockEditablePurchase(ctx, repos, companyID, noteID)
		if err != nil {
			return err
		}
		d, err := repos.PurchaseNotes.GetDetail(ctx, detailID)
		if err != nil {
			return err
		}
		if d == nil || d.NoteID != n.ID {
			return domain.ErrNotFound
		}
		d.Quantity = in.Quantity
		d.UnitPrice = in.UnitPrice
		d.RecomputeTotal()
		return repos.PurchaseNotes.UpdateDetail(ctx, d)
	})
	if err != nil {
		return nil, err
	}
	return uc.GetPurchaseNote(ctx, companyID, noteID)
}

// CompletePurchase recalcula el total desde los detalles y marca la nota como completed. Re-invocable.
func (uc *NotesUseCase) CompletePurchase(ctx context.Context, companyID, noteID string) (*dto.PurchaseNoteResponse, error) {
	return uc.recomputePurchase(ctx, companyID, noteID, true)
}

// RecomputePurchase recalcula el total desde los detalles sin cambiar el estado.
func (uc *NotesUseCase) RecomputePurchase(ctx context.Context, companyID, noteID string) (*dto.PurchaseNoteResponse, error) {
	return uc.recomputePurchase(ctx, companyID, noteID, false)
}

func (uc *NotesUseCase) recomputePurchase(ctx context.Context, companyID, noteID string, complete bool) (*dto.PurchaseNoteResponse, error) {
	var (
		n       *entity.PurchaseNote
		details []*entity.PurchaseNoteDetail
	)
	err := ports.RunWithRetry(ctx, uc.txRunner, func(ctx context.Context, repos repository.TxRepositories) error {
		var err error
		n, err = lockPurchase(ctx, repos, companyID, noteID)
		if err != nil {
			return err
		}
		details, err = repos.PurchaseNotes.ListDetails(ctx, n.ID)
		if err != nil {
			return err
		}
		n.RecomputeTotal(details)
		if complete {
			n.Status = entity.NoteStatusCompleted
		}
		n.UpdatedAt = time.Now()
		return repos.PurchaseNotes.Update(ctx, n)
	})
	if err != nil {
		return nil, err
	}
	if complete {
		uc.log.Info().Str("note_id", noteID).Str("total", n.Total.String()).Msg("nota de compra completada")
	}
	return toPurchaseNoteResponse(n, uc.supplierName(ctx, n.SupplierID), details), nil
}

// ReceivePurchase ingresa la mercancía de una compra completada a su bodega: suma el stock de cada
// línea, recalcula el costo promedio ponderado con el precio de compra y registra el kardex.
// Solo se recibe una vez.
func (uc *NotesUseCase) ReceivePurchase(ctx context.Context, companyID, userID, noteID string) (*dto.PurchaseNoteResponse, error) {
	var (
		n       *entity.PurchaseNote
		details []*entity.PurchaseNoteDetail
	)
	err := ports.RunWithRetry(ctx, uc.txRunner, func(ctx context.Context, repos repository.TxRepositories) error {
		var err error
		n, err = lockPurchase(ctx, repos, companyID, noteID)
		if err != nil {
			return err
		}
		if n.ReceivedAt != nil {
			return domain.ErrAlreadyApplied
		}
		if n.Status != entity.NoteStatusCompleted {
			return domain.ErrInvalidTransition
		}
		details, err = repos.PurchaseNotes.ListDetails(ctx, n.ID)
		if err != nil {
			return err
		}
		now := time.Now()
		for _, d := range details {
			cost := d.UnitPrice
			if err := appinventory.RegisterINInTx(ctx, repos, appinventory.MovementInput{
				SourceType:  entity.MovementSourcePurchase,
				SourceID:    n.ID,
				UserID:      userID,
				ProductID:   d.ProductID,
				WarehouseID: n.WarehouseID,
				Quantity:    d.Quantity,
				UnitCost:    &cost,
				Now:         now,
			}); err != nil {
				return err
			}
		}
		n.ReceivedAt = &now
		n.UpdatedAt = now
		return repos.PurchaseNotes.Update(ctx, n)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("note_id", noteID).Str("warehouse_id", n.WarehouseID).Msg("compra recibida")
	return toPurchaseNoteResponse(n, uc.supplierName(ctx, n.SupplierID), details), nil
}

// GetPurchaseNote obtiene una nota de compra con sus detalles y el nombre del proveedor.
func (uc *NotesUseCase) GetPurchaseNote(ctx context.Context, companyID, noteID string) (*dto.PurchaseNoteResponse, error) {
	n, err := uc.getPurchase(ctx, companyID, noteID)
	if err != nil {
		return nil, err
	}
	details, err := uc.purchaseNotes.ListDetails(ctx, n.ID)
	if err != nil {
		return nil, err
	}
	return toPurchaseNoteResponse(n, uc.supplierName(ctx, n.SupplierID), details), nil
}

func (uc *NotesUseCase) getPurchase(ctx context.Context, companyID, noteID string) (*entity.PurchaseNote, error) {
	n, err := uc.purchaseNotes.GetByID(ctx, noteID)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, domain.ErrNotFound
	}
	if n.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return n, nil
}

func (uc *NotesUseCase) supplierName(ctx context.Context, supplierID string) string {
	s, err := uc.suppliers.GetByID(ctx, supplierID)
	if err != nil || s == nil {
		return ""
	}
	return s.DisplayName()
}

func lockPurchase(ctx context.Context, repos repository.TxRepositories, companyID, noteID string) (*entity.PurchaseNote, error) {
	n, err := repos.PurchaseNotes.GetForUpdate(ctx, noteID)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, domain.ErrNotFound
	}
	if n.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return n, nil
}

// lockEditablePurchase bloquea la nota; las líneas se pueden editar hasta que la mercancía se recibe.
func lockEditablePurchase(ctx context.Context, repos repository.TxRepositories, companyID, noteID string) (*entity.PurchaseNote, error) {
	n, err := lockPurchase(ctx, repos, companyID, noteID)
	if err != nil {
		return nil, err
	}
	if n.ReceivedAt != nil {
		return nil, domain.ErrAlreadyApplied
	}
	return n, nil
}

func validatePurchaseDetail(in dto.PurchaseDetailRequest) error {
	if in.ProductID == "" || in.Quantity <= 0 || in.UnitPrice.IsNegative() {
		return domain.ErrInvalidInput
	}
	return nil
}

// ToSalesNoteResponse convierte la nota de venta y sus detalles al DTO de salida.
func ToSalesNoteResponse(n *entity.SalesNote, details []*entity.SalesNoteDetail) *dto.SalesNoteResponse {
	resp := &dto.SalesNoteResponse{
		ID:         n.ID,
		CompanyID:  n.CompanyID,
		OrderID:    n.OrderID,
		CustomerID: n.CustomerID,
		Date:       n.Date,
		Total:      n.Total,
		Status:     n.Status,
		Details:    make([]dto.NoteDetailResponse, 0, len(details)),
	}
	for _, d := range details {
		resp.Details = append(resp.Details, dto.NoteDetailResponse{
			ID:          d.ID,
			ProductID:   d.ProductID,
			WarehouseID: d.WarehouseID,
			Quantity:    d.Quantity,
			UnitPrice:   d.UnitPrice,
			Total:       d.Total,
		})
	}
	return resp
}

func toPurchaseNoteResponse(n *entity.PurchaseNote, supplierName string, details []*entity.PurchaseNoteDetail) *dto.PurchaseNoteResponse {
	resp := &dto.PurchaseNoteResponse{
		ID:           n.ID,
		SupplierID:   n.SupplierID,
		SupplierName: supplierName,
		WarehouseID:  n.WarehouseID,
		Date:         n.Date,
		Total:        n.Total,
		Status:       n.Status,
		ReceivedAt:   n.ReceivedAt,
		Details:      make([]dto.NoteDetailResponse, 0, len(details)),
	}
	for _, d := range details {
		resp.Details = append(resp.Details, dto.NoteDetailResponse{
			ID:        d.ID,
			ProductID: d.ProductID,
			Quantity:  d.Quantity,
			UnitPrice: d.UnitPrice,
			Total:     d.Total,
		})
	}
	return resp
}
