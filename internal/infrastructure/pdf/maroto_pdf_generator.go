// Package pdf implementa la generación de la ficha imprimible de una
// receta usando Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + fuente  │  Porciones + fechas             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA INGREDIENTES: Nº | Ingrediente | US | Métrico        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PREPARACIÓN: pasos numerados en orden de ordinal           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  NOTAS + URL de origen                                      │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

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
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	apprecipe "github.com/jhoicas/recetario-api/internal/application/recipe"
	"github.com/jhoicas/recetario-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 140, Green: 60, Blue: 20}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var titleCaser = cases.Title(language.English)

// ── Generator ─────────────────────────────────────────────────────────────────

// Verificar en tiempo de compilación que MarotoPDFGenerator implementa el puerto.
var _ apprecipe.PDFGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa recipe.PDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateRecipePDF genera la ficha de la receta y devuelve sus bytes.
// Los ingredientes e instrucciones deben venir en orden de ordinal.
func (g *MarotoPDFGenerator) GenerateRecipePDF(
	_ context.Context,
	recipe *entity.Recipe,
	ingredients []*entity.Ingredient,
	instructions []*entity.Instruction,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(recipe.Title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(recipe))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	if len(ingredients) > 0 {
		m.AddRows(sectionRow("INGREDIENTES"))
		m.AddRows(ingredientHeaderRow())
		for _, r := range ingredientRows(ingredients) {
			m.AddRows(r)
		}
		m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	}

	if len(instructions) > 0 {
		m.AddRows(sectionRow("PREPARACIÓN"))
		for _, r := range instructionRows(instructions) {
			m.AddRows(r)
		}
		m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	}

	for _, r := range footerRows(recipe) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título + fuente (izq) y porciones + fechas (der).
func headerRow(recipe *entity.Recipe) core.Row {
	source := recipe.SourceName
	if source == "" {
		source = "—"
	}
	return row.New(18).Add(
		col.New(8).Add(
			text.New(titleCaser.String(recipe.Title), props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1,
			}),
			text.New("Fuente: "+source, props.Text{
				Size: 8, Top: 10, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New(fmt.Sprintf("Porciones: %d", recipe.Servings), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 1,
			}),
			text.New("Creada: "+recipe.CreatedAt.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
			text.New("Editada: "+recipe.EditedAt.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGray,
			}),
		),
	)
}

// sectionRow: título de sección.
func sectionRow(label string) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 10, Color: colorPrimary, Top: 2,
		}),
	))
}

// ingredientHeaderRow: cabecera de la tabla de ingredientes.
func ingredientHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorGray, Top: 1, Left: 1, Right: 1,
		}))
	}
	return row.New(6).Add(
		h("Nº", 1, align.Center),
		h("Ingrediente", 5, align.Left),
		h("Medida US", 3, align.Right),
		h("Medida métrica", 3, align.Right),
	)
}

// ingredientRows: una fila por ingrediente con sus dos medidas.
func ingredientRows(ingredients []*entity.Ingredient) []core.Row {
	result := make([]core.Row, 0, len(ingredients))
	for _, ing := range ingredients {
		result = append(result, row.New(6).Add(
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", ing.Ordinal),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(5).Add(text.New(
				ing.Label,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(3).Add(text.New(
				formatMeasure(ing.MeasureFor(entity.SystemUS)),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(3).Add(text.New(
				formatMeasure(ing.MeasureFor(entity.SystemMetric)),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// instructionRows: pasos numerados por ordinal.
func instructionRows(instructions []*entity.Instruction) []core.Row {
	result := make([]core.Row, 0, len(instructions))
	for _, ins := range instructions {
		result = append(result, row.New(8).Add(
			col.New(1).Add(text.New(
				fmt.Sprintf("%d.", ins.Ordinal),
				props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(11).Add(text.New(
				ins.Step,
				props.Text{Size: 9, Align: align.Left, Top: 1, Left: 1},
			)),
		))
	}
	return result
}

// footerRows: notas + URL de origen.
func footerRows(recipe *entity.Recipe) []core.Row {
	var rows []core.Row
	if recipe.Notes != "" {
		rows = append(rows, sectionRow("NOTAS"))
		rows = append(rows, row.New(10).Add(col.New(12).Add(
			text.New(recipe.Notes, props.Text{Size: 8, Color: colorGray, Top: 1, Left: 1}),
		)))
	}
	if recipe.URL != "" {
		rows = append(rows, row.New(6).Add(col.New(12).Add(
			text.New("Origen: "+recipe.URL, props.Text{Size: 7, Color: colorGray, Top: 1}),
		)))
	}
	return rows
}

func formatMeasure(m *entity.Measure) string {
	if m == nil {
		return "—"
	}
	return m.Amount.String() + " " + m.Unit
}
