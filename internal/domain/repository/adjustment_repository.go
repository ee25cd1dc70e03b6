package repository

import (
	"context"

	"github.com/jhoicas/Tienda-api/internal/domain/entity"
)

// AdjustmentRepository persistencia de ajustes de inventario y sus detalles.
type AdjustmentRepository interface {
	Create(ctx context.Context, adj *entity.Adjustment) error
	GetByID(ctx context.Context, id string) (*entity.Adjustment, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Adjustment, error)
	Update(ctx context.Context, adj *entity.Adjustment) error
	CreateDetail(ctx context.Context, detail *entity.AdjustmentDetail) error
	ListDetails(ctx context.Context, adjustmentID string) ([]*entity.AdjustmentDetail, error)
}
