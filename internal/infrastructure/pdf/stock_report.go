// Package pdf genera el informe de stock de una tienda con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Tienda + SIRET      │  INFORME DE STOCK + Fecha     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  DIRECCIÓN                                                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Código | Producto | Precio | Stock | Umbral | Estado │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: productos activos / bajo el umbral                 │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
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

	"github.com/lequanos/projet-09-gestion-de-magasin-back-sub000/internal/application/ports"
	"github.com/lequanos/projet-09-gestion-de-magasin-back-sub000/internal/domain/entity"
)

var _ ports.StockReportGenerator = (*StockReportGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorAlert   = &props.Color{Red: 190, Green: 30, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// StockReportGenerator implementa ports.StockReportGenerator usando Maroto v2.
type StockReportGenerator struct {
	Now func() time.Time
}

// NewStockReportGenerator construye el generador.
func NewStockReportGenerator() *StockReportGenerator {
	return &StockReportGenerator{Now: time.Now}
}

// GenerateStockReport genera el PDF y devuelve sus bytes. Las filas bajo el umbral se marcan "REPONER".
func (g *StockReportGenerator) GenerateStockReport(_ context.Context, store *entity.Store, products []*entity.Product) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Informe de stock", true).
		WithAuthor(store.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(store, g.now()))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(addressRow(store))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	below := 0
	for _, p := range products {
		if p.BelowThreshold() {
			below++
		}
		m.AddRows(productRow(p))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(summaryRows(len(products), below)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func (g *StockReportGenerator) now() time.Time {
	if g.Now == nil {
		return time.Now()
	}
	return g.Now()
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: tienda + SIRET (izq) y título + fecha (der).
func headerRow(store *entity.Store, at time.Time) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(store.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("SIRET: "+nonEmpty(store.Siret, "—"), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("INFORME DE STOCK", props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New("Fecha: "+at.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

func addressRow(store *entity.Store) core.Row {
	return row.New(10).Add(
		col.New(12).Add(
			text.New(fmt.Sprintf("Dirección: %s   |   %s %s",
				nonEmpty(store.Address, "—"), store.Postcode, store.City,
			), props.Text{Size: 8, Top: 2, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de productos.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).WithStyle(&props.Cell{BackgroundColor: colorPrimary}).Add(
		h("Código", 2, align.Left),
		h("Producto", 4, align.Left),
		h("Precio", 2, align.Right),
		h("Stock", 1, align.Right),
		h("Umbral", 1, align.Right),
		h("Estado", 2, align.Center),
	)
}

// productRow: una fila por producto; bajo el umbral en rojo.
func productRow(p *entity.Product) core.Row {
	style := props.Text{Size: 8, Top: 1, Left: 1, Right: 1}
	status := "OK"
	if p.BelowThreshold() {
		style.Color = colorAlert
		status = "REPONER"
	}
	cell := func(s string, size int, a align.Type) core.Col {
		st := style
		st.Align = a
		return col.New(size).Add(text.New(s, st))
	}
	return row.New(7).Add(
		cell(p.Code, 2, align.Left),
		cell(p.Name, 4, align.Left),
		cell(p.Price.StringFixed(2)+" €", 2, align.Right),
		cell(fmt.Sprint(p.InStock), 1, align.Right),
		cell(fmt.Sprint(p.Threshold), 1, align.Right),
		cell(status, 2, align.Center),
	)
}

// summaryRows: totales del informe.
func summaryRows(total, below int) []core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: 1})
	}
	value := func(s string, c *props.Color) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 1, Top: 1, Color: c})
	}
	alert := colorPrimary
	if below > 0 {
		alert = colorAlert
	}
	return []core.Row{
		row.New(7).Add(
			col.New(6),
			col.New(4).Add(label("Productos activos:")),
			col.New(2).Add(value(fmt.Sprint(total), colorPrimary)),
		),
		row.New(7).Add(
			col.New(6),
			col.New(4).Add(label("Bajo el umbral:")),
			col.New(2).Add(value(fmt.Sprint(below), alert)),
		),
	}
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
