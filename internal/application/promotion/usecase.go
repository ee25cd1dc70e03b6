package promotion

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

const dateLayout = "2006-01-02"

var hundred = decimal.NewFromInt(100)

// PromotionUseCase alta y consulta de promociones por producto.
type PromotionUseCase struct {
	repo        repository.PromotionRepository
	productRepo repository.ProductRepository
	now         func() time.Time
}

// NewPromotionUseCase construye el caso de uso.
func NewPromotionUseCase(repo repository.PromotionRepository, productRepo repository.ProductRepository) *PromotionUseCase {
	return &PromotionUseCase{repo: repo, productRepo: productRepo, now: time.Now}
}

// IsActive indica si promo está vigente el día today (inicio y fin inclusive).
func IsActive(promo *entity.Promotion, today time.Time) bool {
	return promo != nil && promo.IsActive(today)
}

// Create registra una promoción. Discount es porcentaje entre 0 y 100; el fin no puede ser anterior al inicio.
func (uc *PromotionUseCase) Create(ctx context.Context, companyID string, in dto.CreatePromotionRequest) (*dto.PromotionResponse, error) {
	if in.ProductID == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Discount.IsNegative() || in.Discount.GreaterThan(hundred) {
		return nil, domain.ErrInvalidInput
	}
	start, err := time.Parse(dateLayout, in.StartDate)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	end, err := time.Parse(dateLayout, in.EndDate)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	if end.Before(start) {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil || product.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	p := &entity.Promotion{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		ProductID: in.ProductID,
		Name:      in.Name,
		Discount:  in.Discount,
		StartDate: start,
		EndDate:   end,
		CreatedAt: uc.now(),
	}
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return toPromotionResponse(p, uc.now()), nil
}

// ActiveForProduct promociones del producto vigentes el día today.
func (uc *PromotionUseCase) ActiveForProduct(ctx context.Context, companyID, productID string, today time.Time) ([]dto.PromotionResponse, error) {
	list, err := uc.repo.ListByProduct(ctx, companyID, productID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PromotionResponse, 0, len(list))
	for _, p := range list {
		if IsActive(p, today) {
			out = append(out, *toPromotionResponse(p, today))
		}
	}
	return out, nil
}

// ListByProduct todas las promociones del producto, con su vigencia a la fecha actual.
func (uc *PromotionUseCase) ListByProduct(ctx context.Context, companyID, productID string) ([]dto.PromotionResponse, error) {
	list, err := uc.repo.ListByProduct(ctx, companyID, productID)
	if err != nil {
		return nil, err
	}
	today := uc.now()
	out := make([]dto.PromotionResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *toPromotionResponse(p, today))
	}
	return out, nil
}

func toPromotionResponse(p *entity.Promotion, today time.Time) *dto.PromotionResponse {
	return &dto.PromotionResponse{
		ID:        p.ID,
		ProductID: p.ProductID,
		Name:      p.Name,
		Discount:  p.Discount,
		StartDate: p.StartDate,
		EndDate:   p.EndDate,
		Active:    p.IsActive(today),
	}
}
