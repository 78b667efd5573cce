package render

import "github.com/kevinbrinsly07/VehicleRentalSystem-admin/internal/document"

type RowPlacement = rowPlacement

var (
	FitWords     = fitWords
	ColumnWidths = columnWidths
	Striped      = striped
)

func ParseHex(s string) (r, g, b int) {
	c := parseHex(s)
	return c.r, c.g, c.b
}

// Layout renders tree and reports where each table row landed and the lowest
// y a row may reach.
func (p *PDF) Layout(tree *document.Tree) ([]RowPlacement, int, float64, error) {
	_, l, err := p.draw(tree)
	return l.rows, l.pages, l.bottom, err
}

// FooterNote renders tree and returns the footer note lines drawn on every
// page together with the lowest y a row may reach.
func (p *PDF) FooterNote(tree *document.Tree) ([]string, float64, error) {
	_, l, err := p.draw(tree)
	return l.footer, l.bottom, err
}

// Uncompressed returns a copy of p that writes plain content streams.
func (p *PDF) Uncompressed() *PDF {
	q := *p
	q.uncompressed = true
	return &q
}
