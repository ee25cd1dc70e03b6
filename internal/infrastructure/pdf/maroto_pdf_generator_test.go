package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Tienda-api/internal/application/dto"
)

func TestFormatMoney(t *testing.T) {
	cases := map[string]string{
		"0":          "0,00",
		"36.75":      "36,75",
		"1000":       "1.000,00",
		"1234567.5":  "1.234.567,50",
		"-25000.129": "-25.000,13",
	}
	for in, want := range cases {
		assert.Equal(t, want, formatMoney(decimal.RequireFromString(in)), in)
	}
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "3f2a9c1e", shortID("3f2a9c1e-0000-4000-8000-000000000000"))
	assert.Equal(t, "abc", shortID("abc"))
}

func TestGenerator_DocumentosValidos(t *testing.T) {
	g := NewMarotoPDFGenerator("Tienda Demo")
	ctx := context.Background()
	orderID := "ord-12345678"

	note, err := g.SalesNotePDF(ctx, &dto.SalesNoteResponse{
		ID: "note-12345678", OrderID: &orderID, CustomerID: "cu-1", Date: time.Now(),
		Total: decimal.RequireFromString("36.75"), Status: "pending",
		Details: []dto.NoteDetailResponse{
			{ProductID: "p-a", WarehouseID: "w-1", Quantity: 2, UnitPrice: decimal.RequireFromString("10.50"), Total: decimal.RequireFromString("21")},
		},
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(note, []byte("%PDF")), "la nota debe ser un PDF")

	low, err := g.LowStockPDF(ctx, "co-1", nil)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(low, []byte("%PDF")), "un reporte vacío también es un PDF válido")

	sales, err := g.SalesByCategoryPDF(ctx, &dto.SalesByCategoryResponse{
		From: time.Now(), To: time.Now(), GrandTotal: decimal.NewFromInt(27),
		Categories: []dto.CategorySalesDTO{{CategoryName: "Granos", Units: 5, Total: decimal.NewFromInt(20)}},
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(sales, []byte("%PDF")))
}
