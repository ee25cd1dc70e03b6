package notes_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/application/notes"
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

func newNotes(t *testing.T) (*notes.NotesUseCase, *memory.Store) {
	t.Helper()
	ctx := context.Background()
	s := memory.New()
	require.NoError(t, s.Warehouses().Create(ctx, &entity.Warehouse{ID: "w-1", CompanyID: company, Name: "Principal"}))
	require.NoError(t, s.Products().Create(ctx, &entity.Product{ID: "p-1", CompanyID: company, SKU: "P1", Name: "Café"}))
	require.NoError(t, s.Suppliers().Create(ctx, entity.CompanySupplier{
		SupplierBase: entity.SupplierBase{ID: "s-1", CompanyID: company},
		LegalName:    "Tostadores del Sur S.A.S.",
		TradeName:    "Tostasur",
	}))
	uc := notes.NewNotesUseCase(s, s.SalesNotes(), s.PurchaseNotes(), s.Suppliers(), s.Warehouses(), logger.Nop())
	return uc, s
}

// ──────────────────────────────────────────────────────────────────────────────
// Venta
// ──────────────────────────────────────────────────────────────────────────────

func TestCompleteSale_RecalculaCabecera(t *testing.T) {
	uc, s := newNotes(t)
	ctx := context.Background()

	require.NoError(t, s.SalesNotes().Create(ctx, &entity.SalesNote{ID: "n-1", CompanyID: company, Date: time.Now(), Status: entity.NoteStatusPending}))
	d := &entity.SalesNoteDetail{ID: "d-1", NoteID: "n-1", ProductID: "p-1", WarehouseID: "w-1", Quantity: 4, UnitPrice: dec("2.50")}
	d.RecomputeTotal()
	require.NoError(t, s.SalesNotes().CreateDetail(ctx, d))

	pending, err := uc.GetSalesNote(ctx, company, "n-1")
	require.NoError(t, err)
	assert.True(t, pending.Total.IsZero(), "la cabecera se mantiene hasta completar")
	assert.True(t, pending.Details[0].Total.Equal(dec("10")))

	done, err := uc.CompleteSale(ctx, company, "n-1")
	require.NoError(t, err)
	assert.Equal(t, entity.NoteStatusCompleted, done.Status)
	assert.True(t, done.Total.Equal(dec("10")))

	again, err := uc.CompleteSale(ctx, company, "n-1")
	require.NoError(t, err, "completar de nuevo es válido")
	assert.True(t, again.Total.Equal(dec("10")), "y deriva el mismo total")

	_, err = uc.CompleteSale(ctx, "otra", "n-1")
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = uc.RecomputeSale(ctx, company, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Compra
// ──────────────────────────────────────────────────────────────────────────────

func TestPurchase_TotalDiferidoHastaCompletar(t *testing.T) {
	uc, _ := newNotes(t)
	ctx := context.Background()

	n, err := uc.CreatePurchaseNote(ctx, company, dto.CreatePurchaseNoteRequest{SupplierID: "s-1", WarehouseID: "w-1"})
	require.NoError(t, err)
	assert.Equal(t, "Tostasur", n.SupplierName)

	n, err = uc.AddPurchaseDetail(ctx, company, n.ID, dto.PurchaseDetailRequest{ProductID: "p-1", Quantity: 10, UnitPrice: dec("1.25")})
	require.NoError(t, err)
	require.Len(t, n.Details, 1)
	assert.True(t, n.Details[0].Total.Equal(dec("12.50")))
	assert.True(t, n.Total.IsZero(), "agregar detalle no toca la cabecera")

	n, err = uc.UpdatePurchaseDetail(ctx, company, n.ID, n.Details[0].ID, dto.PurchaseDetailRequest{Quantity: 8, UnitPrice: dec("1.50")})
	require.NoError(t, err)
	assert.True(t, n.Details[0].Total.Equal(dec("12")))
	assert.True(t, n.Total.IsZero())

	n, err = uc.RecomputePurchase(ctx, company, n.ID)
	require.NoError(t, err)
	assert.True(t, n.Total.Equal(dec("12")))
	assert.Equal(t, entity.NoteStatusPending, n.Status, "recalcular no cambia el estado")

	n, err = uc.CompletePurchase(ctx, company, n.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.NoteStatusCompleted, n.Status)
}

func TestReceivePurchase_StockYCostoPromedio(t *testing.T) {
	uc, s := newNotes(t)
	ctx := context.Background()

	receive := func(qty int, price string) *dto.PurchaseNoteResponse {
		n, err := uc.CreatePurchaseNote(ctx, company, dto.CreatePurchaseNoteRequest{SupplierID: "s-1", WarehouseID: "w-1"})
		require.NoError(t, err)
		_, err = uc.AddPurchaseDetail(ctx, company, n.ID, dto.PurchaseDetailRequest{ProductID: "p-1", Quantity: qty, UnitPrice: dec(price)})
		require.NoError(t, err)

		_, err = uc.ReceivePurchase(ctx, company, user, n.ID)
		require.ErrorIs(t, err, domain.ErrInvalidTransition, "no se recibe una compra sin completar")

		_, err = uc.CompletePurchase(ctx, company, n.ID)
		require.NoError(t, err)
		got, err := uc.ReceivePurchase(ctx, company, user, n.ID)
		require.NoError(t, err)
		return got
	}

	first := receive(10, "4")
	require.NotNil(t, first.ReceivedAt)
	p, err := s.Products().GetByID(ctx, "p-1")
	require.NoError(t, err)
	assert.True(t, p.Cost.Equal(dec("4")), "primer ingreso fija el costo, obtenido %s", p.Cost)

	receive(10, "6")
	p, err = s.Products().GetByID(ctx, "p-1")
	require.NoError(t, err)
	assert.True(t, p.Cost.Equal(dec("5")), "(10×4 + 10×6) / 20 = 5, obtenido %s", p.Cost)

	st, err := s.Stock().Get(ctx, "p-1", "w-1")
	require.NoError(t, err)
	assert.Equal(t, 20, st.Quantity)

	_, err = uc.ReceivePurchase(ctx, company, user, first.ID)
	assert.ErrorIs(t, err, domain.ErrAlreadyApplied, "una compra se recibe una sola vez")
	_, err = uc.AddPurchaseDetail(ctx, company, first.ID, dto.PurchaseDetailRequest{ProductID: "p-1", Quantity: 1, UnitPrice: dec("1")})
	assert.ErrorIs(t, err, domain.ErrAlreadyApplied, "recibida la mercancía las líneas no se editan")

	movs, err := s.Movements().ListByProduct(ctx, "p-1", 10, 0)
	require.NoError(t, err)
	require.Len(t, movs, 2)
	assert.Equal(t, entity.MovementSourcePurchase, movs[0].SourceType)
	assert.True(t, movs[0].UnitCost.Equal(dec("6")))
}

func TestPurchaseDetail_SerializadoConRecepcion(t *testing.T) {
	uc, s := newNotes(t)
	ctx := context.Background()

	n, err := uc.CreatePurchaseNote(ctx, company, dto.CreatePurchaseNoteRequest{SupplierID: "s-1", WarehouseID: "w-1"})
	require.NoError(t, err)
	first, err := uc.AddPurchaseDetail(ctx, company, n.ID, dto.PurchaseDetailRequest{ProductID: "p-1", Quantity: 1, UnitPrice: dec("3")})
	require.NoError(t, err)
	_, err = uc.CompletePurchase(ctx, company, n.ID)
	require.NoError(t, err)

	edited, err := uc.UpdatePurchaseDetail(ctx, company, n.ID, first.Details[0].ID, dto.PurchaseDetailRequest{ProductID: "p-1", Quantity: 2, UnitPrice: dec("3")})
	require.NoError(t, err, "completada pero sin recibir aún se edita")
	require.Len(t, edited.Details, 1)
	assert.Equal(t, 2, edited.Details[0].Quantity)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		accepted = 2
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.AddPurchaseDetail(ctx, company, n.ID, dto.PurchaseDetailRequest{ProductID: "p-1", Quantity: 1, UnitPrice: dec("3")})
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
		_, err := uc.ReceivePurchase(ctx, company, user, n.ID)
		assert.NoError(t, err)
	}()
	wg.Wait()

	got, err := uc.GetPurchaseNote(ctx, company, n.ID)
	require.NoError(t, err)
	require.NotNil(t, got.ReceivedAt)
	units := 0
	for _, d := range got.Details {
		units += d.Quantity
	}
	assert.Equal(t, accepted, units, "toda línea aceptada pertenece a la compra")

	st, err := s.Stock().Get(ctx, "p-1", "w-1")
	require.NoError(t, err)
	require.NotNil(t, st)
	assert.Equal(t, accepted, st.Quantity, "la recepción ingresa todas las líneas aceptadas")

	_, err = uc.UpdatePurchaseDetail(ctx, company, n.ID, first.Details[0].ID, dto.PurchaseDetailRequest{ProductID: "p-1", Quantity: 9, UnitPrice: dec("3")})
	assert.ErrorIs(t, err, domain.ErrAlreadyApplied, "recibida la mercancía las líneas no se editan")
	after, err := uc.GetPurchaseNote(ctx, company, n.ID)
	require.NoError(t, err)
	assert.Len(t, after.Details, len(got.Details))
}

func TestCreatePurchaseNote_Validaciones(t *testing.T) {
	uc, _ := newNotes(t)
	ctx := context.Background()

	_, err := uc.CreatePurchaseNote(ctx, company, dto.CreatePurchaseNoteRequest{WarehouseID: "w-1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.CreatePurchaseNote(ctx, company, dto.CreatePurchaseNoteRequest{SupplierID: "no-existe", WarehouseID: "w-1"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = uc.CreatePurchaseNote(ctx, "otra", dto.CreatePurchaseNoteRequest{SupplierID: "s-1", WarehouseID: "w-1"})
	assert.ErrorIs(t, err, domain.ErrNotFound, "el proveedor de otra empresa no es visible")
}

func TestCreatePurchaseNote_BodegaDeshabilitada(t *testing.T) {
	uc, s := newNotes(t)
	ctx := context.Background()

	disabled := time.Now()
	require.NoError(t, s.Warehouses().Create(ctx, &entity.Warehouse{ID: "w-2", CompanyID: company, Name: "Cerrada", DisabledAt: &disabled}))
	_, err := uc.CreatePurchaseNote(ctx, company, dto.CreatePurchaseNoteRequest{SupplierID: "s-1", WarehouseID: "w-2"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
