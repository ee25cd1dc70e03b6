package inventory_test

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/application/inventory"
	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/infrastructure/memory"
	"github.com/jhoicas/Tienda-api/pkg/logger"
)

const (
	company = "co-1"
	user    = "u-1"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newInventory(t *testing.T) (*inventory.InventoryUseCase, *memory.Store) {
	t.Helper()
	ctx := context.Background()
	s := memory.New()
	require.NoError(t, s.Warehouses().Create(ctx, &entity.Warehouse{ID: "w-1", CompanyID: company, Name: "Principal"}))
	require.NoError(t, s.Warehouses().Create(ctx, &entity.Warehouse{ID: "w-2", CompanyID: company, Name: "Norte"}))
	require.NoError(t, s.Products().Create(ctx, &entity.Product{ID: "p-1", CompanyID: company, SKU: "P1", Name: "Arroz", Cost: dec("2")}))
	uc := inventory.NewInventoryUseCase(s, s.Stock(), s.Movements(), s.Adjustments(), s.Products(), s.Warehouses(), logger.Nop())
	return uc, s
}

// applyLine crea un ajuste en w-1 con una sola línea y lo aplica.
func applyLine(t *testing.T, uc *inventory.InventoryUseCase, typ string, qty int) (*dto.AdjustmentResponse, error) {
	t.Helper()
	ctx := context.Background()
	adj, err := uc.CreateAdjustment(ctx, company, dto.CreateAdjustmentRequest{WarehouseID: "w-1", Reason: "conteo"})
	require.NoError(t, err)
	_, err = uc.AddAdjustmentDetail(ctx, company, adj.ID, dto.AdjustmentDetailRequest{ProductID: "p-1", Type: typ, Quantity: qty, UnitCost: dec("2")})
	require.NoError(t, err)
	return uc.ApplyAdjustment(ctx, company, user, adj.ID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Consultas de stock
// ──────────────────────────────────────────────────────────────────────────────

func TestStockTotal_SinRegistrosEsCero(t *testing.T) {
	uc, _ := newInventory(t)
	resp, err := uc.StockTotal(context.Background(), company, "p-1")
	require.NoError(t, err)
	assert.Equal(t, 0, resp.Quantity)
}

func TestStockTotal_SumaBodegas(t *testing.T) {
	uc, s := newInventory(t)
	ctx := context.Background()
	require.NoError(t, s.Stock().Upsert(ctx, &entity.Stock{ProductID: "p-1", WarehouseID: "w-1", Quantity: 7}))
	require.NoError(t, s.Stock().Upsert(ctx, &entity.Stock{ProductID: "p-1", WarehouseID: "w-2", Quantity: 5}))

	total, err := uc.StockTotal(ctx, company, "p-1")
	require.NoError(t, err)
	assert.Equal(t, 12, total.Quantity)

	one, err := uc.StockInWarehouse(ctx, company, "p-1", "w-2")
	require.NoError(t, err)
	assert.Equal(t, 5, one.Quantity)

	_, err = uc.StockTotal(ctx, "otra", "p-1")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// ──────────────────────────────────────────────────────────────────────────────
// Ajustes
// ──────────────────────────────────────────────────────────────────────────────

func TestApplyAdjustment_EntradasYSalidaRechazada(t *testing.T) {
	uc, s := newInventory(t)
	ctx := context.Background()

	_, err := applyLine(t, uc, entity.AdjustmentEntrada, 10)
	require.NoError(t, err)
	_, err = applyLine(t, uc, entity.AdjustmentEntrada, 5)
	require.NoError(t, err)

	st, err := uc.StockInWarehouse(ctx, company, "p-1", "w-1")
	require.NoError(t, err)
	assert.Equal(t, 15, st.Quantity)

	_, err = applyLine(t, uc, entity.AdjustmentSalida, 20)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	st, err = uc.StockInWarehouse(ctx, company, "p-1", "w-1")
	require.NoError(t, err)
	assert.Equal(t, 15, st.Quantity, "la salida rechazada no modifica el stock")

	movs, err := s.Movements().ListByProduct(ctx, "p-1", 10, 0)
	require.NoError(t, err)
	assert.Len(t, movs, 2, "solo las entradas aplicadas quedan en el kardex")
}

func TestApplyAdjustment_VariasLineasTodoONada(t *testing.T) {
	uc, _ := newInventory(t)
	ctx := context.Background()

	adj, err := uc.CreateAdjustment(ctx, company, dto.CreateAdjustmentRequest{WarehouseID: "w-1"})
	require.NoError(t, err)
	_, err = uc.AddAdjustmentDetail(ctx, company, adj.ID, dto.AdjustmentDetailRequest{ProductID: "p-1", Type: entity.AdjustmentEntrada, Quantity: 4, UnitCost: dec("2")})
	require.NoError(t, err)
	_, err = uc.AddAdjustmentDetail(ctx, company, adj.ID, dto.AdjustmentDetailRequest{ProductID: "p-1", Type: entity.AdjustmentSalida, Quantity: 5, UnitCost: dec("2")})
	require.NoError(t, err)

	_, err = uc.ApplyAdjustment(ctx, company, user, adj.ID)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	st, err := uc.StockInWarehouse(ctx, company, "p-1", "w-1")
	require.NoError(t, err)
	assert.Equal(t, 0, st.Quantity, "la entrada previa en el mismo ajuste también se revierte")

	got, err := uc.GetAdjustment(ctx, company, adj.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.AdjustmentStatusPending, got.Status)
}

func TestApplyAdjustment_TotalDiferidoYUnaSolaVez(t *testing.T) {
	uc, _ := newInventory(t)
	ctx := context.Background()

	adj, err := uc.CreateAdjustment(ctx, company, dto.CreateAdjustmentRequest{WarehouseID: "w-1"})
	require.NoError(t, err)
	pending, err := uc.AddAdjustmentDetail(ctx, company, adj.ID, dto.AdjustmentDetailRequest{ProductID: "p-1", Type: entity.AdjustmentEntrada, Quantity: 3, UnitCost: dec("4.50")})
	require.NoError(t, err)
	require.Len(t, pending.Details, 1)
	assert.True(t, pending.Details[0].Total.Equal(dec("13.50")), "el total de línea se calcula al guardar")
	assert.True(t, pending.Total.IsZero(), "la cabecera no se recalcula hasta aplicar")

	applied, err := uc.ApplyAdjustment(ctx, company, user, adj.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.AdjustmentStatusCompleted, applied.Status)
	assert.True(t, applied.Total.Equal(dec("13.50")))

	_, err = uc.ApplyAdjustment(ctx, company, user, adj.ID)
	assert.ErrorIs(t, err, domain.ErrAlreadyApplied)
	_, err = uc.AddAdjustmentDetail(ctx, company, adj.ID, dto.AdjustmentDetailRequest{ProductID: "p-1", Type: entity.AdjustmentEntrada, Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrAlreadyApplied)

	st, err := uc.StockInWarehouse(ctx, company, "p-1", "w-1")
	require.NoError(t, err)
	assert.Equal(t, 3, st.Quantity)
}

func TestAddAdjustmentDetail_ConcurrenteConAplicar(t *testing.T) {
	uc, _ := newInventory(t)
	ctx := context.Background()

	adj, err := uc.CreateAdjustment(ctx, company, dto.CreateAdjustmentRequest{WarehouseID: "w-1"})
	require.NoError(t, err)
	_, err = uc.AddAdjustmentDetail(ctx, company, adj.ID, dto.AdjustmentDetailRequest{ProductID: "p-1", Type: entity.AdjustmentEntrada, Quantity: 1, UnitCost: dec("2")})
	require.NoError(t, err)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		accepted = 1
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.AddAdjustmentDetail(ctx, company, adj.ID, dto.AdjustmentDetailRequest{ProductID: "p-1", Type: entity.AdjustmentEntrada, Quantity: 1, UnitCost: dec("2")})
			if err != nil {
				assert.ErrorIs(t, err, domain.ErrAlreadyApplied)
				return
			}
			mu.Lock()
			accepted++
			mu.Unlock()
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := uc.ApplyAdjustment(ctx, company, user, adj.ID)
		assert.NoError(t, err)
	}()
	wg.Wait()

	got, err := uc.GetAdjustment(ctx, company, adj.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.AdjustmentStatusCompleted, got.Status)
	assert.Len(t, got.Details, accepted, "toda línea aceptada pertenece al ajuste")
	assert.True(t, got.Total.Equal(dec("2").Mul(decimal.NewFromInt(int64(accepted)))), "la cabecera suma todas sus líneas, obtenido %s", got.Total)

	st, err := uc.StockInWarehouse(ctx, company, "p-1", "w-1")
	require.NoError(t, err)
	assert.Equal(t, accepted, st.Quantity, "ninguna línea aceptada queda sin aplicar")
}

func TestAddAdjustmentDetail_Validaciones(t *testing.T) {
	uc, _ := newInventory(t)
	ctx := context.Background()
	adj, err := uc.CreateAdjustment(ctx, company, dto.CreateAdjustmentRequest{WarehouseID: "w-1"})
	require.NoError(t, err)

	cases := []dto.AdjustmentDetailRequest{
		{ProductID: "p-1", Type: "merma", Quantity: 1},
		{ProductID: "p-1", Type: entity.AdjustmentEntrada, Quantity: 0},
		{ProductID: "p-1", Type: entity.AdjustmentEntrada, Quantity: 1, UnitCost: dec("-1")},
		{Type: entity.AdjustmentEntrada, Quantity: 1},
	}
	for _, in := range cases {
		_, err := uc.AddAdjustmentDetail(ctx, company, adj.ID, in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "%+v", in)
	}

	_, err = uc.CreateAdjustment(ctx, company, dto.CreateAdjustmentRequest{WarehouseID: "no-existe"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Reposición
// ──────────────────────────────────────────────────────────────────────────────

func TestLowStock_PrioridadYSugerido(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	require.NoError(t, s.Warehouses().Create(ctx, &entity.Warehouse{ID: "w-1", CompanyID: company, Name: "Principal"}))
	require.NoError(t, s.Products().Create(ctx, &entity.Product{ID: "p-1", CompanyID: company, SKU: "A", ReorderPoint: 10}))
	require.NoError(t, s.Products().Create(ctx, &entity.Product{ID: "p-2", CompanyID: company, SKU: "B", ReorderPoint: 4}))
	require.NoError(t, s.Products().Create(ctx, &entity.Product{ID: "p-3", CompanyID: company, SKU: "C"}))
	require.NoError(t, s.Products().Create(ctx, &entity.Product{ID: "p-4", CompanyID: company, SKU: "D", ReorderPoint: 2}))
	for id, qty := range map[string]int{"p-1": 2, "p-2": 4, "p-3": 1, "p-4": 9} {
		require.NoError(t, s.Stock().Upsert(ctx, &entity.Stock{ProductID: id, WarehouseID: "w-1", Quantity: qty}))
	}

	items, err := inventory.NewReplenishmentUseCase(s.Reports(), 5).LowStock(ctx, company, "")
	require.NoError(t, err)
	require.Len(t, items, 3, "D está por encima de su punto de reorden")

	assert.Equal(t, "A", items[0].SKU)
	assert.Equal(t, 1, items[0].Priority)
	assert.Equal(t, 13, items[0].SuggestedOrderQty, "ideal 15 - stock 2")

	assert.Equal(t, "C", items[1].SKU, "sin punto de reorden usa el valor por defecto")
	assert.Equal(t, 5, items[1].ReorderPoint)
	assert.Equal(t, 7, items[1].SuggestedOrderQty)

	assert.Equal(t, "B", items[2].SKU)
	assert.Equal(t, 3, items[2].Priority)
	assert.Equal(t, 2, items[2].SuggestedOrderQty)
}
