package inventory

import (
	"context"
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

// InventoryUseCase consultas de stock y ajustes manuales de inventario.
type InventoryUseCase struct {
	txRunner      ports.TxRunner
	stockRepo     repository.StockRepository
	movRepo       repository.InventoryMovementRepository
	adjRepo       repository.AdjustmentRepository
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	log           *logger.Logger
}

// NewInventoryUseCase construye el caso de uso.
func NewInventoryUseCase(
	txRunner ports.TxRunner,
	stockRepo repository.StockRepository,
	movRepo repository.InventoryMovementRepository,
	adjRepo repository.AdjustmentRepository,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	log *logger.Logger,
) *InventoryUseCase {
	return &InventoryUseCase{
		txRunner:      txRunner,
		stockRepo:     stockRepo,
		movRepo:       movRepo,
		adjRepo:       adjRepo,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		log:           log,
	}
}

// StockTotal suma el stock del producto en todas las bodegas. Sin registros es 0.
func (uc *InventoryUseCase) StockTotal(ctx context.Context, companyID, productID string) (*dto.StockResponse, error) {
	if err := uc.checkProduct(ctx, companyID, productID); err != nil {
		return nil, err
	}
	rows, err := uc.stockRepo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	total := 0
	for _, s := range rows {
		total += s.Quantity
	}
	return &dto.StockResponse{ProductID: productID, Quantity: total}, nil
}

// StockInWarehouse stock del producto en una bodega. Sin registro es 0.
func (uc *InventoryUseCase) StockInWarehouse(ctx context.Context, companyID, productID, warehouseID string) (*dto.StockResponse, error) {
	if err := uc.checkProduct(ctx, companyID, productID); err != nil {
		return nil, err
	}
	s, err := uc.stockRepo.Get(ctx, productID, warehouseID)
	if err != nil {
		return nil, err
	}
	return &dto.StockResponse{ProductID: productID, WarehouseID: warehouseID, Quantity: s.Quantity}, nil
}

// Movements lista el kardex del producto, más recientes primero.
func (uc *InventoryUseCase) Movements(ctx context.Context, companyID, productID string, limit, offset int) ([]dto.MovementResponse, error) {
	if err := uc.checkProduct(ctx, companyID, productID); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 50
	}
	list, err := uc.movRepo.ListByProduct(ctx, productID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, dto.MovementResponse{
			ID:          m.ID,
			SourceType:  m.SourceType,
			SourceID:    m.SourceID,
			WarehouseID: m.WarehouseID,
			Type:        m.Type,
			Quantity:    m.Quantity,
			StockBefore: m.StockBefore,
			StockAfter:  m.StockAfter,
			UnitCost:    m.UnitCost,
			Date:        m.Date,
		})
	}
	return out, nil
}

// CreateAdjustment crea un ajuste pending sin detalles.
func (uc *InventoryUseCase) CreateAdjustment(ctx context.Context, companyID string, in dto.CreateAdjustmentRequest) (*dto.AdjustmentResponse, error) {
	if in.WarehouseID == "" {
		return nil, domain.ErrInvalidInput
	}
	wh, err := uc.warehouseRepo.GetByID(ctx, in.WarehouseID)
	if err != nil {
		return nil, err
	}
	if wh == nil || wh.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	now := time.Now()
	adj := &entity.Adjustment{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		WarehouseID: in.WarehouseID,
		Date:        now,
		Reason:      in.Reason,
		Total:       decimal.Zero,
		Status:      entity.AdjustmentStatusPending,
		UpdatedAt:   now,
	}
	if err := uc.adjRepo.Create(ctx, adj); err != nil {
		return nil, err
	}
	return toAdjustmentResponse(adj, nil), nil
}

// AddAdjustmentDetail agrega una línea entrada/salida. El total de la línea se calcula al guardar;
// la cabecera se recalcula al aplicar.
func (uc *InventoryUseCase) AddAdjustmentDetail(ctx context.Context, companyID, adjustmentID string, in dto.AdjustmentDetailRequest) (*dto.AdjustmentResponse, error) {
	if in.ProductID == "" || in.Quantity <= 0 || in.UnitCost.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if in.Type != entity.AdjustmentEntrada && in.Type != entity.AdjustmentSalida {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.checkProduct(ctx, companyID, in.ProductID); err != nil {
		return nil, err
	}
	var resp *dto.AdjustmentResponse
	err := ports.RunWithRetry(ctx, uc.txRunner, func(ctx context.Context, repos repository.TxRepositories) error {
		adj, err := lockAdjustment(ctx, repos, companyID, adjustmentID)
		if err != nil {
			return err
		}
		if adj.Status != entity.AdjustmentStatusPending {
			return domain.ErrAlreadyApplied
		}
		d := &entity.AdjustmentDetail{
			ID:           uuid.New().String(),
			AdjustmentID: adj.ID,
			ProductID:    in.ProductID,
			Type:         in.Type,
			Quantity:     in.Quantity,
			UnitCost:     in.UnitCost,
		}
		d.RecomputeTotal()
		if err := repos.Adjustments.CreateDetail(ctx, d); err != nil {
			return err
		}
		details, err := repos.Adjustments.ListDetails(ctx, adj.ID)
		if err != nil {
			return err
		}
		resp = toAdjustmentResponse(adj, details)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// ApplyAdjustment aplica todas las líneas al stock de la bodega del ajuste en una sola transacción.
// Una salida sin stock suficiente revierte el ajuste completo con domain.ErrInsufficientStock.
func (uc *InventoryUseCase) ApplyAdjustment(ctx context.Context, companyID, userID, adjustmentID string) (*dto.AdjustmentResponse, error) {
	var resp *dto.AdjustmentResponse
	err := ports.RunWithRetry(ctx, uc.txRunner, func(ctx context.Context, repos repository.TxRepositories) error {
		adj, err := lockAdjustment(ctx, repos, companyID, adjustmentID)
		if err != nil {
			return err
		}
		if adj.Status != entity.AdjustmentStatusPending {
			return domain.ErrAlreadyApplied
		}
		details, err := repos.Adjustments.ListDetails(ctx, adj.ID)
		if err != nil {
			return err
		}
		now := time.Now()
		for _, d := range details {
			in := MovementInput{
				SourceType:  entity.MovementSourceAdjustment,
				SourceID:    adj.ID,
				UserID:      userID,
				ProductID:   d.ProductID,
				WarehouseID: adj.WarehouseID,
				Quantity:    d.Quantity,
				Now:         now,
			}
			if d.Type == entity.AdjustmentEntrada {
				err = RegisterINInTx(ctx, repos, in)
			} else {
				err = RegisterOUTInTx(ctx, repos, in)
			}
			if err != nil {
				return err
			}
		}
		adj.RecomputeTotal(details)
		adj.Status = entity.AdjustmentStatusCompleted
		adj.UpdatedAt = now
		if err := repos.Adjustments.Update(ctx, adj); err != nil {
			return err
		}
		resp = toAdjustmentResponse(adj, details)
		return nil
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("adjustment_id", adjustmentID).Msg("ajuste no aplicado")
		return nil, err
	}
	uc.log.Info().Str("adjustment_id", adjustmentID).Str("total", resp.Total.String()).Msg("ajuste aplicado")
	return resp, nil
}

// GetAdjustment obtiene un ajuste con sus líneas.
func (uc *InventoryUseCase) GetAdjustment(ctx context.Context, companyID, adjustmentID string) (*dto.AdjustmentResponse, error) {
	adj, err := uc.getAdjustment(ctx, companyID, adjustmentID)
	if err != nil {
		return nil, err
	}
	details, err := uc.adjRepo.ListDetails(ctx, adj.ID)
	if err != nil {
		return nil, err
	}
	return toAdjustmentResponse(adj, details), nil
}

func (uc *InventoryUseCase) getAdjustment(ctx context.Context, companyID, adjustmentID string) (*entity.Adjustment, error) {
	adj, err := uc.adjRepo.GetByID(ctx, adjustmentID)
	if err != nil {
		return nil, err
	}
	if adj == nil {
		return nil, domain.ErrNotFound
	}
	if adj.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return adj, nil
}

// lockAdjustment bloquea la cabecera del ajuste; agregar líneas y aplicar quedan serializados.
func lockAdjustment(ctx context.Context, repos repository.TxRepositories, companyID, adjustmentID string) (*entity.Adjustment, error) {
	adj, err := repos.Adjustments.GetForUpdate(ctx, adjustmentID)
	if err != nil {
		return nil, err
	}
	if adj == nil {
		return nil, domain.ErrNotFound
	}
	if adj.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return adj, nil
}

func (uc *InventoryUseCase) checkProduct(ctx context.Context, companyID, productID string) error {
	if productID == "" {
		return domain.ErrInvalidInput
	}
	p, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.ErrNotFound
	}
	if p.CompanyID != companyID {
		return domain.ErrForbidden
	}
	return nil
}

func toAdjustmentResponse(a *entity.Adjustment, details []*entity.AdjustmentDetail) *dto.AdjustmentResponse {
	resp := &dto.AdjustmentResponse{
		ID:          a.ID,
		WarehouseID: a.WarehouseID,
		Date:        a.Date,
		Reason:      a.Reason,
		Total:       a.Total,
		Status:      a.Status,
		Details:     make([]dto.AdjustmentDetailResponse, 0, len(details)),
	}
	for _, d := range details {
		resp.Details = append(resp.Details, dto.AdjustmentDetailResponse{
			ID:        d.ID,
			ProductID: d.ProductID,
			Type:      d.Type,
			Quantity:  d.Quantity,
			UnitCost:  d.UnitCost,
			Total:     d.Total,
		})
	}
	return resp
}
