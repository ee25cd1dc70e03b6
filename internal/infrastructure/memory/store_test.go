package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
	"github.com/jhoicas/Tienda-api/internal/infrastructure/memory"
)

var errBoom = errors.New("boom")

// ──────────────────────────────────────────────────────────────────────────────
// Transacciones
// ──────────────────────────────────────────────────────────────────────────────

func TestRun_ErrorRestauraEstado(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	require.NoError(t, s.Stock().Upsert(ctx, &entity.Stock{ProductID: "p-1", WarehouseID: "w-1", Quantity: 10}))

	err := s.Run(ctx, func(ctx context.Context, repos repository.TxRepositories) error {
		if err := repos.Stock.Upsert(ctx, &entity.Stock{ProductID: "p-1", WarehouseID: "w-1", Quantity: 3}); err != nil {
			return err
		}
		if err := repos.Orders.Create(ctx, &entity.Order{ID: "o-1", Status: entity.OrderStatusPending}); err != nil {
			return err
		}
		return errBoom
	})
	require.ErrorIs(t, err, errBoom)

	st, err := s.Stock().Get(ctx, "p-1", "w-1")
	require.NoError(t, err)
	assert.Equal(t, 10, st.Quantity, "el stock debe volver al valor previo a la transacción")
	assert.Zero(t, s.CountOrders(), "el pedido creado dentro de la transacción fallida no debe persistir")
}

func TestRun_CommitVisibleFuera(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	err := s.Run(ctx, func(ctx context.Context, repos repository.TxRepositories) error {
		return repos.Orders.Create(ctx, &entity.Order{ID: "o-1", Status: entity.OrderStatusPending})
	})
	require.NoError(t, err)

	o, err := s.Orders().GetByID(ctx, "o-1")
	require.NoError(t, err)
	require.NotNil(t, o)
	assert.Equal(t, entity.OrderStatusPending, o.Status)
}

func TestRun_ContextoCancelado(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	called := false
	err := memory.New().Run(ctx, func(context.Context, repository.TxRepositories) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

// ──────────────────────────────────────────────────────────────────────────────
// Repositorios
// ──────────────────────────────────────────────────────────────────────────────

func TestStock_SinRegistroEsCero(t *testing.T) {
	st, err := memory.New().Stock().Get(context.Background(), "p-x", "w-x")
	require.NoError(t, err)
	require.NotNil(t, st)
	assert.Equal(t, 0, st.Quantity)
}

func TestStock_NoAceptaNegativo(t *testing.T) {
	err := memory.New().Stock().Upsert(context.Background(), &entity.Stock{ProductID: "p", WarehouseID: "w", Quantity: -1})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestCart_UnicoActivoPorCliente(t *testing.T) {
	ctx := context.Background()
	carts := memory.New().Carts()
	require.NoError(t, carts.CreateActive(ctx, &entity.Cart{ID: "c-1", CompanyID: "co", CustomerID: "cu"}))
	err := carts.CreateActive(ctx, &entity.Cart{ID: "c-2", CompanyID: "co", CustomerID: "cu"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	require.NoError(t, carts.CreateActive(ctx, &entity.Cart{ID: "c-3", CompanyID: "otra", CustomerID: "cu"}),
		"el mismo cliente puede tener carrito activo en otra empresa")

	require.NoError(t, carts.TransitionStatus(ctx, "c-1", entity.CartStatusActive, entity.CartStatusProcessed, nil))
	assert.ErrorIs(t, carts.TransitionStatus(ctx, "c-1", entity.CartStatusActive, entity.CartStatusProcessed, nil), domain.ErrConflict,
		"la transición condicional falla si el estado ya cambió")
	require.NoError(t, carts.CreateActive(ctx, &entity.Cart{ID: "c-4", CompanyID: "co", CustomerID: "cu"}),
		"procesado el anterior, se permite un nuevo carrito activo")
}

func TestCartLine_UnicaPorProductoBodega(t *testing.T) {
	ctx := context.Background()
	lines := memory.New().CartLines()
	require.NoError(t, lines.Create(ctx, &entity.CartLine{ID: "l-1", CartID: "c", ProductID: "p", WarehouseID: "w", Quantity: 1}))
	assert.ErrorIs(t, lines.Create(ctx, &entity.CartLine{ID: "l-2", CartID: "c", ProductID: "p", WarehouseID: "w", Quantity: 1}), domain.ErrDuplicate)
	require.NoError(t, lines.Create(ctx, &entity.CartLine{ID: "l-3", CartID: "c", ProductID: "p", WarehouseID: "w2", Quantity: 1}))

	require.NoError(t, lines.Delete(ctx, "l-1"))
	list, err := lines.ListByCart(ctx, "c")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "l-3", list[0].ID)
}

func TestProduct_SKUUnicoPorEmpresa(t *testing.T) {
	ctx := context.Background()
	products := memory.New().Products()
	require.NoError(t, products.Create(ctx, &entity.Product{ID: "p-1", CompanyID: "co", SKU: "A-1"}))
	assert.ErrorIs(t, products.Create(ctx, &entity.Product{ID: "p-2", CompanyID: "co", SKU: "A-1"}), domain.ErrDuplicate)
	assert.NoError(t, products.Create(ctx, &entity.Product{ID: "p-3", CompanyID: "otra", SKU: "A-1"}))
}

func TestMovements_MasRecientePrimero(t *testing.T) {
	ctx := context.Background()
	movs := memory.New().Movements()
	for _, id := range []string{"m-1", "m-2", "m-3"} {
		require.NoError(t, movs.Create(ctx, &entity.InventoryMovement{ID: id, ProductID: "p"}))
	}
	list, err := movs.ListByProduct(ctx, "p", 2, 0)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "m-3", list[0].ID)
	assert.Equal(t, "m-2", list[1].ID)
}

func TestReport_SalesByCategory(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	s.PutCategory(entity.Category{ID: "cat-1", CompanyID: "co", Name: "Bebidas"})
	require.NoError(t, s.Products().Create(ctx, &entity.Product{ID: "p-1", CompanyID: "co", CategoryID: "cat-1", SKU: "B-1"}))
	require.NoError(t, s.Products().Create(ctx, &entity.Product{ID: "p-2", CompanyID: "co", SKU: "X-1"}))

	day := time.Date(2024, 5, 10, 15, 0, 0, 0, time.UTC)
	notes := s.SalesNotes()
	require.NoError(t, notes.Create(ctx, &entity.SalesNote{ID: "n-1", CompanyID: "co", Date: day, Status: entity.NoteStatusCompleted}))
	require.NoError(t, notes.Create(ctx, &entity.SalesNote{ID: "n-2", CompanyID: "co", Date: day, Status: entity.NoteStatusPending}))
	require.NoError(t, notes.CreateDetail(ctx, &entity.SalesNoteDetail{ID: "d-1", NoteID: "n-1", ProductID: "p-1", Quantity: 2, Total: decimal.NewFromInt(20)}))
	require.NoError(t, notes.CreateDetail(ctx, &entity.SalesNoteDetail{ID: "d-2", NoteID: "n-1", ProductID: "p-2", Quantity: 1, Total: decimal.NewFromInt(5)}))
	require.NoError(t, notes.CreateDetail(ctx, &entity.SalesNoteDetail{ID: "d-3", NoteID: "n-2", ProductID: "p-1", Quantity: 9, Total: decimal.NewFromInt(90)}))

	rows, err := s.Reports().SalesByCategory(ctx, "co", day, day)
	require.NoError(t, err)
	require.Len(t, rows, 2, "las notas pendientes no cuentan")
	assert.Equal(t, "Bebidas", rows[0].CategoryName)
	assert.True(t, rows[0].Total.Equal(decimal.NewFromInt(20)))
	assert.Equal(t, 2, rows[0].Units)
	assert.Equal(t, "Sin categoría", rows[1].CategoryName)

	rows, err = s.Reports().SalesByCategory(ctx, "co", day.AddDate(0, 0, 1), day.AddDate(0, 0, 2))
	require.NoError(t, err)
	assert.Empty(t, rows)
}
