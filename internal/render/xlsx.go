package render

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/kevinbrinsly07/VehicleRentalSystem-admin/internal/document"
)

// XLSX writes the tree as a single worksheet for bookkeeping imports. Item
// columns keep the same order as the printed table.
type XLSX struct{}

func NewXLSX() *XLSX {
	return &XLSX{}
}

// xlsxColumnScale converts table width shares into spreadsheet column widths.
const xlsxColumnScale = 1.2

func (x *XLSX) Render(tree *document.Tree) (*Artifact, error) {
	if tree == nil {
		return nil, fmt.Errorf("%w: no document", ErrRender)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := sheetName(tree.Kind)
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("%w: naming sheet: %v", ErrRender, err)
	}

	w := &sheetWriter{f: f, sheet: sheet, row: 1}
	if err := w.styles(tree.Style); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}

	w.write(tree)

	if w.err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, w.err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("%w: writing workbook: %v", ErrRender, err)
	}

	return &Artifact{
		Format:      FormatXLSX,
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Data:        buf.Bytes(),
	}, nil
}

func sheetName(k document.Kind) string {
	s := string(k)
	if s == "" {
		return "Document"
	}

	return strings.ToUpper(s[:1]) + s[1:]
}

// sheetWriter appends rows top to bottom and keeps the first error.
type sheetWriter struct {
	f     *excelize.File
	sheet string
	row   int
	err   error

	bold    int
	title   int
	head    int
	stripe  int
	strong  int
	wrapped int
}

func (w *sheetWriter) styles(st document.Style) error {
	c := parseHex(st.AccentColor)
	accent := fmt.Sprintf("%02X%02X%02X", c.r, c.g, c.b)

	defs := []struct {
		dst   *int
		style *excelize.Style
	}{
		{&w.bold, &excelize.Style{Font: &excelize.Font{Bold: true}}},
		{&w.title, &excelize.Style{Font: &excelize.Font{Bold: true, Size: 16}}},
		{&w.head, &excelize.Style{
			Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
			Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{accent}},
		}},
		{&w.stripe, &excelize.Style{
			Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"F9FAFB"}},
			Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
		}},
		{&w.strong, &excelize.Style{Font: &excelize.Font{Bold: true, Size: 12}}},
		{&w.wrapped, &excelize.Style{Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"}}},
	}

	for _, d := range defs {
		id, err := w.f.NewStyle(d.style)
		if err != nil {
			return fmt.Errorf("creating style: %w", err)
		}

		*d.dst = id
	}

	return nil
}

func (w *sheetWriter) write(tree *document.Tree) {
	h := tree.Header

	w.line(w.title, h.BrandName)

	for _, l := range h.BrandLines {
		w.line(0, l)
	}

	w.line(w.bold, h.Badge)

	for _, m := range h.MetaLines {
		w.line(0, m)
	}

	w.row++

	w.set(1, w.row, tree.Parties.From.Title, w.bold)
	w.set(2, w.row, tree.Parties.To.Title, w.bold)
	w.row++

	for i := range max(len(tree.Parties.From.Lines), len(tree.Parties.To.Lines)) {
		if i < len(tree.Parties.From.Lines) {
			w.set(1, w.row, tree.Parties.From.Lines[i], 0)
		}

		if i < len(tree.Parties.To.Lines) {
			w.set(2, w.row, tree.Parties.To.Lines[i], 0)
		}

		w.row++
	}

	w.row++
	w.table(tree)
	w.row++

	for _, tl := range tree.Totals.Lines {
		style := 0
		if tl.Strong {
			style = w.strong
		}

		w.set(3, w.row, tl.Label, style)
		w.set(4, w.row, tl.Display, style)
		w.row++
	}

	if tree.Notes != "" {
		w.row++
		w.line(w.wrapped, tree.Notes)
	}

	w.row++
	w.line(0, tree.Footer.Site)
	w.line(0, tree.Footer.Note)
}

func (w *sheetWriter) table(tree *document.Tree) {
	for i, col := range tree.Table.Columns {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			w.fail(err)
			return
		}

		if err := w.f.SetColWidth(w.sheet, name, name, col.Width*xlsxColumnScale); err != nil {
			w.fail(err)
		}

		w.set(i+1, w.row, col.Header, w.head)
	}

	w.row++

	for i, r := range tree.Table.Rows {
		style := w.wrapped
		if striped(i, tree.Style.ZebraRows) {
			style = w.stripe
		}

		for j := range tree.Table.Columns {
			var cell string
			if j < len(r.Cells) {
				cell = r.Cells[j]
			}

			w.set(j+1, w.row, cell, style)
		}

		w.row++
	}
}

func (w *sheetWriter) line(style int, s string) {
	if s == "" {
		return
	}

	w.set(1, w.row, s, style)
	w.row++
}

func (w *sheetWriter) set(col, row int, value string, style int) {
	if w.err != nil {
		return
	}

	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		w.fail(err)
		return
	}

	if err := w.f.SetCellStr(w.sheet, cell, value); err != nil {
		w.fail(err)
		return
	}

	if style != 0 {
		if err := w.f.SetCellStyle(w.sheet, cell, cell, style); err != nil {
			w.fail(err)
		}
	}
}

func (w *sheetWriter) fail(err error) {
	if w.err == nil {
		w.err = err
	}
}
