package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/application/usecase"
	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/infrastructure/memory"
)

const company = "co-1"

// ──────────────────────────────────────────────────────────────────────────────
// Productos
// ──────────────────────────────────────────────────────────────────────────────

func TestProduct_CreateYUpdate(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	uc := usecase.NewProductUseCase(s.Products())

	p, err := uc.Create(ctx, company, dto.CreateProductRequest{SKU: "ARZ-1", Name: "Arroz", Price: decimal.RequireFromString("4.20"), ReorderPoint: 3})
	require.NoError(t, err)
	assert.True(t, p.Cost.IsZero(), "el costo inicia en 0 y solo cambia con recepciones")

	price := decimal.RequireFromString("4.50")
	name := "Arroz blanco"
	up, err := uc.Update(ctx, company, p.ID, dto.UpdateProductRequest{Price: &price, Name: &name})
	require.NoError(t, err)
	assert.True(t, up.Price.Equal(price))
	assert.Equal(t, "Arroz blanco", up.Name)
	assert.Equal(t, "ARZ-1", up.SKU, "el SKU no cambia con Update")

	_, err = uc.Create(ctx, company, dto.CreateProductRequest{SKU: "arz-1", Name: "Otro"})
	assert.ErrorIs(t, err, domain.ErrDuplicate, "el SKU es único por empresa sin distinguir mayúsculas")

	_, err = uc.Create(ctx, "co-2", dto.CreateProductRequest{SKU: "ARZ-1", Name: "Arroz"})
	assert.NoError(t, err, "otra empresa puede usar el mismo SKU")
}

func TestProduct_Validaciones(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewProductUseCase(memory.New().Products())

	_, err := uc.Create(ctx, company, dto.CreateProductRequest{Name: "Sin SKU"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Create(ctx, company, dto.CreateProductRequest{SKU: "X", Name: "Negativo", Price: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	p, err := uc.Create(ctx, company, dto.CreateProductRequest{SKU: "X", Name: "X"})
	require.NoError(t, err)
	negative := -2
	_, err = uc.Update(ctx, company, p.ID, dto.UpdateProductRequest{ReorderPoint: &negative})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.GetByID(ctx, "co-2", p.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = uc.GetByID(ctx, company, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProduct_List(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewProductUseCase(memory.New().Products())
	for _, sku := range []string{"A", "B", "C"} {
		_, err := uc.Create(ctx, company, dto.CreateProductRequest{SKU: sku, Name: sku})
		require.NoError(t, err)
	}
	page, err := uc.List(ctx, company, 2, 0)
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, 2, page.Page.Limit)

	page, err = uc.List(ctx, company, 2, 2)
	require.NoError(t, err)
	assert.Len(t, page.Items, 1)
}

// ──────────────────────────────────────────────────────────────────────────────
// Bodegas
// ──────────────────────────────────────────────────────────────────────────────

func TestWarehouse_CRUD(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewWarehouseUseCase(memory.New().Warehouses())

	_, err := uc.Create(ctx, company, dto.CreateWarehouseRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	w, err := uc.Create(ctx, company, dto.CreateWarehouseRequest{Name: "Principal", Address: "Cra 1"})
	require.NoError(t, err)

	addr := "Calle 10"
	up, err := uc.Update(ctx, company, w.ID, dto.UpdateWarehouseRequest{Address: &addr})
	require.NoError(t, err)
	assert.Equal(t, "Principal", up.Name)
	assert.Equal(t, "Calle 10", up.Address)

	_, err = uc.Update(ctx, "co-2", w.ID, dto.UpdateWarehouseRequest{Address: &addr})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	assert.True(t, up.Enabled, "una bodega nueva nace habilitada")
	off := false
	up, err = uc.Update(ctx, company, w.ID, dto.UpdateWarehouseRequest{Enabled: &off})
	require.NoError(t, err)
	assert.False(t, up.Enabled)
	require.NotNil(t, up.DisabledAt)
	disabledAt := *up.DisabledAt

	up, err = uc.Update(ctx, company, w.ID, dto.UpdateWarehouseRequest{Enabled: &off})
	require.NoError(t, err)
	assert.Equal(t, disabledAt, *up.DisabledAt, "deshabilitar de nuevo conserva la fecha original")

	on := true
	up, err = uc.Update(ctx, company, w.ID, dto.UpdateWarehouseRequest{Enabled: &on})
	require.NoError(t, err)
	assert.True(t, up.Enabled)
	assert.Nil(t, up.DisabledAt)

	empty := ""
	_, err = uc.Update(ctx, company, w.ID, dto.UpdateWarehouseRequest{Name: &empty})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	list, err := uc.List(ctx, company, 20, 0)
	require.NoError(t, err)
	assert.Len(t, list.Items, 1)
}

// ──────────────────────────────────────────────────────────────────────────────
// Proveedores
// ──────────────────────────────────────────────────────────────────────────────

func TestSupplier_Variantes(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewSupplierUseCase(memory.New().Suppliers())

	person, err := uc.Create(ctx, company, dto.CreateSupplierRequest{Kind: entity.SupplierKindPerson, FirstName: "Ana", LastName: "Ríos", Document: "1020"})
	require.NoError(t, err)
	assert.Equal(t, entity.SupplierKindPerson, person.Kind)
	assert.Equal(t, "Ana Ríos", person.DisplayName)

	comp, err := uc.Create(ctx, company, dto.CreateSupplierRequest{Kind: entity.SupplierKindCompany, LegalName: "Distribuidora Andina S.A.S.", TradeName: "DisAndina", NIT: "900.123.456-8"})
	require.NoError(t, err)
	assert.Equal(t, "DisAndina", comp.DisplayName)

	got, err := uc.GetByID(ctx, company, comp.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.SupplierKindCompany, got.Kind)

	_, err = uc.GetByID(ctx, "co-2", comp.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestSupplier_Validaciones(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewSupplierUseCase(memory.New().Suppliers())

	tests := []struct {
		name string
		in   dto.CreateSupplierRequest
	}{
		{"kind desconocido", dto.CreateSupplierRequest{Kind: "otro"}},
		{"persona sin documento", dto.CreateSupplierRequest{Kind: entity.SupplierKindPerson, FirstName: "Ana"}},
		{"empresa sin razón social", dto.CreateSupplierRequest{Kind: entity.SupplierKindCompany, NIT: "900123456-8"}},
		{"empresa con NIT inválido", dto.CreateSupplierRequest{Kind: entity.SupplierKindCompany, LegalName: "X S.A.S.", NIT: "900123456-1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Create(ctx, company, tt.in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}
