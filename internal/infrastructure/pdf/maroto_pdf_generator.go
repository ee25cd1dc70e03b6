// Package pdf genera los documentos PDF de la tienda con Maroto v2.
//
// Todos los documentos comparten el mismo layout A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + empresa     │  Referencia + Fecha          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: columnas del reporte                                 │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES (si aplica)                                         │
//	│  FOOTER: QR de la referencia + leyenda                       │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/application/ports"
)

var _ ports.PDFGenerator = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 170, Green: 30, Blue: 30}
)

// column define una columna de tabla: título, ancho en la grilla de 12 y alineación.
type column struct {
	label string
	size  int
	align align.Type
}

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa ports.PDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	storeName string
	now       func() time.Time
}

// NewMarotoPDFGenerator construye el generador. storeName aparece en el encabezado de cada documento.
func NewMarotoPDFGenerator(storeName string) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{storeName: storeName, now: time.Now}
}

// SalesNotePDF nota de venta con sus líneas y el total de cabecera.
func (g *MarotoPDFGenerator) SalesNotePDF(_ context.Context, note *dto.SalesNoteResponse) ([]byte, error) {
	m := g.newDocument("Nota de venta")
	ref := "Nota " + shortID(note.ID)
	if note.OrderID != nil {
		ref += " · Pedido " + shortID(*note.OrderID)
	}
	m.AddRows(g.headerRow("NOTA DE VENTA", ref, note.Date))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(infoRow("CLIENTE", note.CustomerID+"   |   Estado: "+note.Status))

	cols := []column{
		{"Cant.", 1, align.Center},
		{"Producto", 5, align.Left},
		{"Bodega", 2, align.Left},
		{"Precio Unit.", 2, align.Right},
		{"Total", 2, align.Right},
	}
	m.AddRows(tableHeaderRow(cols))
	for _, d := range note.Details {
		m.AddRows(tableRow(cols,
			strconv.Itoa(d.Quantity),
			shortID(d.ProductID),
			shortID(d.WarehouseID),
			"$"+formatMoney(d.UnitPrice),
			"$"+formatMoney(d.Total),
		))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow("TOTAL:", "$"+formatMoney(note.Total)))
	m.AddRows(line.NewRow(3))
	m.AddRows(qrFooterRow(note.ID, "Escanea el código para consultar\nesta nota de venta."))
	return generate(m)
}

// LowStockPDF lista de reposición ordenada por prioridad.
func (g *MarotoPDFGenerator) LowStockPDF(_ context.Context, companyID string, items []dto.LowStockItemDTO) ([]byte, error) {
	now := g.now()
	m := g.newDocument("Stock bajo")
	m.AddRows(g.headerRow("REPOSICIÓN DE STOCK", "Empresa "+shortID(companyID), now))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	cols := []column{
		{"#", 1, align.Center},
		{"SKU", 2, align.Left},
		{"Producto", 3, align.Left},
		{"Bodega", 2, align.Left},
		{"Stock", 1, align.Right},
		{"Reorden", 1, align.Right},
		{"Sugerido", 2, align.Right},
	}
	m.AddRows(tableHeaderRow(cols))
	if len(items) == 0 {
		m.AddRows(infoRow("", "No hay productos en o por debajo de su punto de reorden."))
	}
	for _, it := range items {
		m.AddRows(tableRow(cols,
			strconv.Itoa(it.Priority),
			it.SKU,
			it.ProductName,
			it.WarehouseName,
			strconv.Itoa(it.Quantity),
			strconv.Itoa(it.ReorderPoint),
			strconv.Itoa(it.SuggestedOrderQty),
		))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow("PRODUCTOS:", strconv.Itoa(len(items))))
	return generate(m)
}

// SalesByCategoryPDF ventas completadas por categoría en el periodo.
func (g *MarotoPDFGenerator) SalesByCategoryPDF(_ context.Context, report *dto.SalesByCategoryResponse) ([]byte, error) {
	m := g.newDocument("Ventas por categoría")
	period := report.From.Format("02/01/2006") + " – " + report.To.Format("02/01/2006")
	m.AddRows(g.headerRow("VENTAS POR CATEGORÍA", period, g.now()))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	cols := []column{
		{"Categoría", 6, align.Left},
		{"Unidades", 2, align.Right},
		{"Total", 4, align.Right},
	}
	m.AddRows(tableHeaderRow(cols))
	for _, c := range report.Categories {
		m.AddRows(tableRow(cols, c.CategoryName, strconv.Itoa(c.Units), "$"+formatMoney(c.Total)))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow("TOTAL VENDIDO:", "$"+formatMoney(report.GrandTotal)))
	return generate(m)
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (g *MarotoPDFGenerator) newDocument(title string) core.Maroto {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		WithAuthor(g.storeName, true).
		Build()
	return maroto.New(cfg)
}

// headerRow: tienda + título (izq) y referencia + fecha (der).
func (g *MarotoPDFGenerator) headerRow(title, reference string, date time.Time) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(g.storeName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(reference, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 3,
			}),
			text.New("Fecha: "+date.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 11, Color: colorGray,
			}),
		),
	)
}

func infoRow(label, value string) core.Row {
	c := col.New(12)
	top := 1.0
	if label != "" {
		c.Add(text.New(label, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}))
		top = 6
	}
	c.Add(text.New(value, props.Text{Size: 8, Top: top, Color: colorGray}))
	return row.New(12).Add(c)
}

func tableHeaderRow(cols []column) core.Row {
	r := row.New(8)
	for _, c := range cols {
		r.Add(col.New(c.size).Add(text.New(c.label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: c.align,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		})))
	}
	return r
}

func tableRow(cols []column, values ...string) core.Row {
	r := row.New(7)
	for i, c := range cols {
		v := ""
		if i < len(values) {
			v = values[i]
		}
		r.Add(col.New(c.size).Add(text.New(v, props.Text{
			Size: 8, Align: c.align, Top: 1, Left: 1, Right: 1,
		})))
	}
	return r
}

func totalRow(label, value string) core.Row {
	return row.New(10).Add(
		col.New(6),
		col.New(3).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 2, Right: 2,
		})),
		col.New(3).Add(text.New(value, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 2, Right: 1,
		})),
	)
}

func qrFooterRow(data, legend string) core.Row {
	return row.New(40).Add(
		col.New(3).Add(code.NewQr(data, props.Rect{Percent: 90, Center: true})),
		col.New(9).Add(text.New(legend, props.Text{Size: 8, Top: 4, Left: 3, Color: colorAlert})),
	)
}

func generate(m core.Maroto) ([]byte, error) {
	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── helpers ───────────────────────────────────────────────────────────────────

// formatMoney formato colombiano con dos decimales: puntos de miles y coma decimal.
// Ej: 1234567.5 → "1.234.567,50"
func formatMoney(d decimal.Decimal) string {
	s := d.StringFixed(2)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")
	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return sign + string(buf) + "," + frac
}

// shortID primeros 8 caracteres de un UUID para mostrarlo en el documento.
func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}
