package promotion_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/application/promotion"
	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/infrastructure/memory"
)

const company = "co-1"

func newPromotions(t *testing.T) *promotion.PromotionUseCase {
	t.Helper()
	s := memory.New()
	require.NoError(t, s.Products().Create(context.Background(), &entity.Product{ID: "p-1", CompanyID: company, SKU: "P1"}))
	return promotion.NewPromotionUseCase(s.Promotions(), s.Products())
}

func TestIsActive_Nil(t *testing.T) {
	assert.False(t, promotion.IsActive(nil, time.Now()))
}

func TestActiveForProduct_FiltraPorDia(t *testing.T) {
	uc := newPromotions(t)
	ctx := context.Background()

	_, err := uc.Create(ctx, company, dto.CreatePromotionRequest{
		ProductID: "p-1", Name: "Marzo", Discount: decimal.NewFromInt(15), StartDate: "2024-03-01", EndDate: "2024-03-31",
	})
	require.NoError(t, err)
	_, err = uc.Create(ctx, company, dto.CreatePromotionRequest{
		ProductID: "p-1", Name: "Un día", Discount: decimal.NewFromInt(50), StartDate: "2024-04-01", EndDate: "2024-04-01",
	})
	require.NoError(t, err)

	active, err := uc.ActiveForProduct(ctx, company, "p-1", time.Date(2024, 3, 31, 18, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Marzo", active[0].Name)
	assert.True(t, active[0].Active)

	active, err = uc.ActiveForProduct(ctx, company, "p-1", time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, active, 1, "inicio y fin el mismo día es válido")
	assert.Equal(t, "Un día", active[0].Name)

	all, err := uc.ListByProduct(ctx, company, "p-1")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	other, err := uc.ActiveForProduct(ctx, "otra", "p-1", time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestCreate_Validaciones(t *testing.T) {
	uc := newPromotions(t)
	ctx := context.Background()
	base := dto.CreatePromotionRequest{ProductID: "p-1", Name: "X", Discount: decimal.NewFromInt(10), StartDate: "2024-01-10", EndDate: "2024-01-20"}

	invalid := map[string]func(r *dto.CreatePromotionRequest){
		"descuento negativo":   func(r *dto.CreatePromotionRequest) { r.Discount = decimal.NewFromInt(-1) },
		"descuento sobre 100":  func(r *dto.CreatePromotionRequest) { r.Discount = decimal.NewFromInt(101) },
		"fin antes del inicio": func(r *dto.CreatePromotionRequest) { r.EndDate = "2024-01-09" },
		"fecha mal formada":    func(r *dto.CreatePromotionRequest) { r.StartDate = "10/01/2024" },
		"sin nombre":           func(r *dto.CreatePromotionRequest) { r.Name = "" },
	}
	for name, mutate := range invalid {
		req := base
		mutate(&req)
		_, err := uc.Create(ctx, company, req)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, name)
	}

	req := base
	req.ProductID = "no-existe"
	_, err := uc.Create(ctx, company, req)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
