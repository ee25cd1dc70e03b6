package entity_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Tienda-api/internal/domain/entity"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// ──────────────────────────────────────────────────────────────────────────────
// Carrito
// ──────────────────────────────────────────────────────────────────────────────

func TestCart_TotalEsSumaDeSubtotales(t *testing.T) {
	a := &entity.CartLine{Quantity: 2, UnitPrice: dec("10.50")}
	b := &entity.CartLine{Quantity: 1, UnitPrice: dec("15.75")}
	a.RecomputeSubtotal()
	b.RecomputeSubtotal()

	cart := &entity.Cart{Status: entity.CartStatusActive}
	cart.RecomputeTotal([]*entity.CartLine{a, b})
	assert.True(t, cart.Total.Equal(dec("36.75")), "total esperado 36.75, obtenido %s", cart.Total)

	cart.RecomputeTotal([]*entity.CartLine{b})
	assert.True(t, cart.Total.Equal(dec("15.75")), "al quitar la línea A el total debe ser 15.75")

	cart.RecomputeTotal(nil)
	assert.True(t, cart.Total.IsZero())
}

func TestCartLine_SubtotalIgnoraValorPrevio(t *testing.T) {
	l := &entity.CartLine{Quantity: 3, UnitPrice: dec("2.10"), Subtotal: dec("999")}
	l.RecomputeSubtotal()
	assert.True(t, l.Subtotal.Equal(dec("6.30")))
}

// ──────────────────────────────────────────────────────────────────────────────
// Pedido
// ──────────────────────────────────────────────────────────────────────────────

func TestOrder_Transiciones(t *testing.T) {
	o := &entity.Order{Status: entity.OrderStatusPending}
	assert.True(t, o.CanTransition(entity.OrderStatusDispatched))
	assert.True(t, o.CanTransition(entity.OrderStatusCancelled))
	assert.False(t, o.CanTransition(entity.OrderStatusCompleted), "no se puede entregar sin despachar")

	o.Status = entity.OrderStatusDispatched
	assert.True(t, o.CanTransition(entity.OrderStatusCompleted))
	assert.False(t, o.CanTransition(entity.OrderStatusCancelled))
	assert.False(t, o.CanTransition(entity.OrderStatusPending), "no hay transición hacia atrás")

	for _, final := range []string{entity.OrderStatusCompleted, entity.OrderStatusCancelled} {
		o.Status = final
		for _, to := range []string{entity.OrderStatusPending, entity.OrderStatusDispatched, entity.OrderStatusCompleted, entity.OrderStatusCancelled} {
			assert.False(t, o.CanTransition(to), "%s es estado final", final)
		}
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Notas y ajustes: total de línea inmediato, total de cabecera diferido
// ──────────────────────────────────────────────────────────────────────────────

func TestSalesNote_CabeceraSoloCambiaAlRecalcular(t *testing.T) {
	d := &entity.SalesNoteDetail{Quantity: 4, UnitPrice: dec("2.50")}
	d.RecomputeTotal()
	note := &entity.SalesNote{}
	note.RecomputeTotal([]*entity.SalesNoteDetail{d})
	assert.True(t, note.Total.Equal(dec("10")))

	d.Quantity = 5
	d.RecomputeTotal()
	assert.True(t, d.Total.Equal(dec("12.50")))
	assert.True(t, note.Total.Equal(dec("10")), "la cabecera no se recalcula sola")

	note.RecomputeTotal([]*entity.SalesNoteDetail{d})
	assert.True(t, note.Total.Equal(dec("12.50")))
}

func TestPurchaseNote_RecomputeTotal(t *testing.T) {
	d1 := &entity.PurchaseNoteDetail{Quantity: 10, UnitPrice: dec("1.25")}
	d2 := &entity.PurchaseNoteDetail{Quantity: 2, UnitPrice: dec("7")}
	d1.RecomputeTotal()
	d2.RecomputeTotal()
	n := &entity.PurchaseNote{}
	n.RecomputeTotal([]*entity.PurchaseNoteDetail{d1, d2})
	assert.True(t, n.Total.Equal(dec("26.50")))
}

func TestAdjustment_RecomputeTotal(t *testing.T) {
	in := &entity.AdjustmentDetail{Type: entity.AdjustmentEntrada, Quantity: 5, UnitCost: dec("3")}
	out := &entity.AdjustmentDetail{Type: entity.AdjustmentSalida, Quantity: 2, UnitCost: dec("3")}
	in.RecomputeTotal()
	out.RecomputeTotal()
	a := &entity.Adjustment{}
	a.RecomputeTotal([]*entity.AdjustmentDetail{in, out})
	assert.True(t, a.Total.Equal(dec("21")), "la cabecera suma los totales de detalle")
}

// ──────────────────────────────────────────────────────────────────────────────
// Promociones
// ──────────────────────────────────────────────────────────────────────────────

func TestPromotion_IsActiveBordes(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
	p := &entity.Promotion{StartDate: start, EndDate: end}

	assert.True(t, p.IsActive(start), "vigente el día de inicio")
	assert.True(t, p.IsActive(end), "vigente el día de fin")
	assert.True(t, p.IsActive(end.Add(23*time.Hour)), "vigente durante todo el día de fin")
	assert.False(t, p.IsActive(start.AddDate(0, 0, -1)), "no vigente un día antes")
	assert.False(t, p.IsActive(end.AddDate(0, 0, 1)), "no vigente un día después")
}

// ──────────────────────────────────────────────────────────────────────────────
// Proveedores
// ──────────────────────────────────────────────────────────────────────────────

func TestSupplier_DisplayNamePorVariante(t *testing.T) {
	var s entity.Supplier = entity.PersonSupplier{FirstName: "Ana", LastName: "Gómez"}
	assert.Equal(t, "Ana Gómez", s.DisplayName())
	assert.Equal(t, entity.SupplierKindPerson, s.Kind())

	s = entity.CompanySupplier{LegalName: "Distribuidora Andina S.A.S."}
	assert.Equal(t, "Distribuidora Andina S.A.S.", s.DisplayName())
	assert.Equal(t, entity.SupplierKindCompany, s.Kind())

	s = entity.CompanySupplier{LegalName: "Distribuidora Andina S.A.S.", TradeName: "DisAndina"}
	assert.Equal(t, "DisAndina", s.DisplayName())
}

// ──────────────────────────────────────────────────────────────────────────────
// Catálogo
// ──────────────────────────────────────────────────────────────────────────────

func TestCategoryLabel(t *testing.T) {
	assert.Equal(t, entity.UncategorizedName, entity.CategoryLabel(nil))
	assert.Equal(t, entity.UncategorizedName, entity.CategoryLabel(&entity.Category{ID: "cat-1"}))
	assert.Equal(t, "Granos", entity.CategoryLabel(&entity.Category{ID: "cat-1", Name: "Granos"}))
}

func TestWarehouse_SetEnabled(t *testing.T) {
	w := &entity.Warehouse{}
	assert.True(t, w.Enabled())

	first := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	w.SetEnabled(false, first)
	w.SetEnabled(false, first.Add(time.Hour))
	require.NotNil(t, w.DisabledAt)
	assert.Equal(t, first, *w.DisabledAt)

	w.SetEnabled(true, first)
	assert.True(t, w.Enabled())
}
