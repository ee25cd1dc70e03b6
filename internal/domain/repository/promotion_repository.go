package repository

import (
	"context"

	"github.com/jhoicas/Tienda-api/internal/domain/entity"
)

// PromotionRepository persistencia de promociones.
type PromotionRepository interface {
	Create(ctx context.Context, promo *entity.Promotion) error
	GetByID(ctx context.Context, id string) (*entity.Promotion, error)
	ListByProduct(ctx context.Context, companyID, productID string) ([]*entity.Promotion, error)
}
