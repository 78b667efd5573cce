package render

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/kevinbrinsly07/VehicleRentalSystem-admin/internal/document"
)

// Page geometry in points on A4 portrait.
const (
	marginX      = 32.0
	marginTop    = 28.0
	footerBottom = 24.0
	footerMin    = 28.0
	logoSize     = 64.0
	cardGap      = 12.0
	cellPadX     = 10.0
	cellPadY     = 7.0
	lineHeight   = 12.0
	noteLine     = 11.0
	totalsRow    = 18.0
	totalsShare  = 0.58

	// footerMaxLines bounds the footer note; a note needing more lines than
	// this at the small size is cut with an ellipsis.
	footerMaxLines = 8
)

// pdfEpoch stamps documents that carry no usable date so output stays
// reproducible.
var pdfEpoch = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

// PDF lays a tree out on A4 pages. Table rows are never split across a page
// boundary unless a single row is taller than a page, in which case it
// continues on the next page under a repeated header.
type PDF struct {
	fallbackLogo []byte
	uncompressed bool
}

// NewPDF returns a PDF renderer that draws fallbackLogo whenever the tree's
// logo is missing or cannot be decoded.
func NewPDF(fallbackLogo []byte) *PDF {
	return &PDF{fallbackLogo: fallbackLogo}
}

func (p *PDF) Render(tree *document.Tree) (*Artifact, error) {
	data, l, err := p.draw(tree)
	if err != nil {
		return nil, err
	}

	return &Artifact{
		Format:      FormatPDF,
		ContentType: "application/pdf",
		Data:        data,
		Pages:       l.pages,
	}, nil
}

type rowPlacement struct {
	Index   int
	Page    int
	Top     float64
	Bottom  float64
	Striped bool
}

type layout struct {
	pages  int
	bottom float64
	rows   []rowPlacement
	footer []string
}

func (p *PDF) draw(tree *document.Tree) (data []byte, l layout, err error) {
	if tree == nil {
		return nil, layout{}, fmt.Errorf("%w: no document", ErrRender)
	}

	defer func() {
		if r := recover(); r != nil {
			data, l, err = nil, layout{}, fmt.Errorf("%w: %v", ErrRender, r)
		}
	}()

	c := newCanvas(tree, p.fallbackLogo)
	if p.uncompressed {
		c.pdf.SetCompression(false)
	}

	c.header()
	c.parties()
	c.table()
	c.totals()
	c.notes()

	if c.pdf.Err() {
		return nil, layout{}, fmt.Errorf("%w: %v", ErrRender, c.pdf.Error())
	}

	c.layout.pages = c.pdf.PageNo()

	var buf bytes.Buffer
	if err := c.pdf.Output(&buf); err != nil {
		return nil, layout{}, fmt.Errorf("%w: %v", ErrRender, err)
	}

	return buf.Bytes(), c.layout, nil
}

// canvas is the drawing state of one render.
type canvas struct {
	pdf      *fpdf.Fpdf
	tr       func(string) string
	tree     *document.Tree
	fallback []byte
	accent   rgb

	width    float64
	height   float64
	contentW float64
	bottom   float64
	y        float64

	footerNote []string
	footerSize float64
	footerH    float64

	layout layout
}

func newCanvas(tree *document.Tree, fallback []byte) *canvas {
	pdf := fpdf.New("P", "pt", "A4", "")
	w, h := pdf.GetPageSize()

	c := &canvas{
		pdf:      pdf,
		tr:       pdf.UnicodeTranslatorFromDescriptor(""),
		tree:     tree,
		fallback: fallback,
		accent:   parseHex(tree.Style.AccentColor),
		width:    w,
		height:   h,
		contentW: w - 2*marginX,
	}

	c.fitFooter()
	c.bottom = h - footerBottom - c.footerH - 10
	c.layout.bottom = c.bottom
	c.layout.footer = c.footerNote

	created := tree.Meta.Created
	if created.IsZero() {
		created = pdfEpoch
	}

	pdf.SetMargins(marginX, marginTop, marginX)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCompression(true)
	pdf.SetCatalogSort(true)
	pdf.SetCreationDate(created)
	pdf.SetModificationDate(created)
	pdf.SetTitle(tree.Meta.Title, true)
	pdf.SetAuthor(tree.Meta.Author, true)
	pdf.SetSubject(tree.Meta.Subject, true)
	pdf.SetCreator("Rental Docs", true)
	pdf.AliasNbPages(pageCountAlias)
	pdf.SetFooterFunc(c.footer)
	pdf.AddPage()

	c.y = marginTop

	return c
}

func (c *canvas) font(style string, size float64, col rgb) {
	c.pdf.SetFont("Helvetica", style, size)
	c.pdf.SetTextColor(col.r, col.g, col.b)
}

func (c *canvas) fill(col rgb) {
	c.pdf.SetFillColor(col.r, col.g, col.b)
}

func (c *canvas) stroke(col rgb) {
	c.pdf.SetDrawColor(col.r, col.g, col.b)
	c.pdf.SetLineWidth(1)
}

// text draws an already translated string.
func (c *canvas) text(x, y, w, h float64, s, align string) {
	c.pdf.SetXY(x, y)
	c.pdf.CellFormat(w, h, s, "", 0, align, false, 0, "")
}

// wrap translates s and breaks it to width using the current font.
func (c *canvas) wrap(s string, width float64) []string {
	return fitWords(c.tr(s), width, c.pdf.GetStringWidth)
}

func (c *canvas) newPage() {
	c.pdf.AddPage()
	c.y = marginTop
}

const pageCountAlias = "{nb}"

// fitFooter wraps the footer note, dropping to a smaller size when it runs
// past three lines, and sizes the footer band to hold every line.
func (c *canvas) fitFooter() {
	for _, size := range []float64{9, 7} {
		c.pdf.SetFont("Helvetica", "", size)
		c.footerSize = size
		c.footerNote = c.wrap(c.tree.Footer.Note, c.contentW)

		if len(c.footerNote) <= 3 {
			break
		}
	}

	if len(c.footerNote) > footerMaxLines {
		c.footerNote = c.footerNote[:footerMaxLines]
		c.footerNote[footerMaxLines-1] += "..."
	}

	c.footerH = max(footerMin, 6+noteLine*float64(1+len(c.footerNote)))
}

func (c *canvas) footer() {
	top := c.height - footerBottom - c.footerH
	half := c.contentW / 2

	c.stroke(colorBorder)
	c.pdf.Line(marginX, top, c.width-marginX, top)

	c.font("", 9, colorSubtext)
	c.text(marginX, top+6, half, noteLine, c.tr(c.tree.Footer.Site), "L")
	c.text(marginX+half, top+6, half, noteLine, fmt.Sprintf("Page %d of %s", c.pdf.PageNo(), pageCountAlias), "R")

	c.font("", c.footerSize, colorSubtext)

	for i, line := range c.footerNote {
		c.text(marginX, top+6+noteLine*float64(i+1), c.contentW, noteLine, line, "L")
	}
}

func (c *canvas) header() {
	h := c.tree.Header
	top := c.y

	brandX := marginX + logoSize + 10
	brandW := c.contentW*0.6 - logoSize - 10
	rightW := c.contentW * 0.4
	rightX := c.width - marginX - rightW

	c.logo(marginX, top)

	c.font("B", 16, colorPrimary)
	names := c.wrap(h.BrandName, brandW)

	c.font("", 9, colorSubtext)

	var sub []string
	for _, l := range h.BrandLines {
		sub = append(sub, c.wrap(l, brandW)...)
	}

	blockH := float64(len(names))*19 + float64(len(sub))*11
	by := top + max(0, (logoSize-blockH)/2)

	c.font("B", 16, colorPrimary)

	for _, l := range names {
		c.text(brandX, by, brandW, 19, l, "L")
		by += 19
	}

	c.font("", 9, colorSubtext)

	for _, l := range sub {
		c.text(brandX, by, brandW, 11, l, "L")
		by += 11
	}

	ry := top

	if badge := strings.TrimSpace(h.Badge); badge != "" {
		c.font("B", 9, colorWhite)

		label := c.tr(badge)
		bw := min(c.pdf.GetStringWidth(label)+16, rightW)
		bx := c.width - marginX - bw

		c.fill(c.accent)
		c.pdf.RoundedRect(bx, ry, bw, 15, 7.5, "1234", "F")
		c.text(bx, ry, bw, 15, label, "C")

		ry += 21
	}

	c.font("", 10, colorSubtext)

	for _, m := range h.MetaLines {
		for _, l := range c.wrap(m, rightW) {
			c.text(rightX, ry, rightW, lineHeight, l, "R")
			ry += lineHeight
		}
	}

	rule := max(top+logoSize, by, ry) + 12

	c.stroke(colorBorder)
	c.pdf.Line(marginX, rule, c.width-marginX, rule)

	c.y = rule + 14
}

// logo draws the tree's logo scaled into the logo box, or the fallback when
// the tree has none or it fails to decode.
func (c *canvas) logo(x, y float64) {
	name, info := c.registerLogo()
	if info == nil {
		return
	}

	w, h := logoSize, logoSize
	if iw, ih := info.Width(), info.Height(); iw > 0 && ih > 0 {
		scale := min(logoSize/iw, logoSize/ih)
		w, h = iw*scale, ih*scale
	}

	c.pdf.ImageOptions(name, x+(logoSize-w)/2, y+(logoSize-h)/2, w, h, false,
		fpdf.ImageOptions{ImageType: "PNG"}, 0, "")
}

func (c *canvas) registerLogo() (string, *fpdf.ImageInfoType) {
	if c.pdf.Err() {
		return "", nil
	}

	opts := fpdf.ImageOptions{ImageType: "PNG"}

	if data := c.tree.Header.Logo.Data; len(data) > 0 {
		info := c.pdf.RegisterImageOptionsReader("logo", opts, bytes.NewReader(data))
		if !c.pdf.Err() && info != nil {
			return "logo", info
		}

		c.pdf.ClearError()
	}

	if len(c.fallback) == 0 {
		return "", nil
	}

	info := c.pdf.RegisterImageOptionsReader("logo-placeholder", opts, bytes.NewReader(c.fallback))
	if c.pdf.Err() || info == nil {
		c.pdf.ClearError()
		return "", nil
	}

	return "logo-placeholder", info
}

func (c *canvas) parties() {
	p := c.tree.Parties
	cardW := (c.contentW - cardGap) / 2

	c.font("", 10, colorText)

	var from, to []string
	for _, l := range p.From.Lines {
		from = append(from, c.wrap(l, cardW-20)...)
	}

	for _, l := range p.To.Lines {
		to = append(to, c.wrap(l, cardW-20)...)
	}

	h := 10 + 17 + float64(max(len(from), len(to)))*14 + 10
	if c.y+h > c.bottom {
		c.newPage()
	}

	c.card(marginX, cardW, h, p.From.Title, from)
	c.card(marginX+cardW+cardGap, cardW, h, p.To.Title, to)

	c.y += h + 16
}

func (c *canvas) card(x, w, h float64, title string, lines []string) {
	c.fill(colorSoftBg)
	c.stroke(colorBorder)
	c.pdf.RoundedRect(x, c.y, w, h, 8, "1234", "DF")

	c.font("B", 11, colorPrimary)
	c.text(x+10, c.y+10, w-20, 11, c.tr(title), "L")

	c.font("", 10, colorText)

	ly := c.y + 27
	for _, l := range lines {
		c.text(x+10, ly, w-20, 14, l, "L")
		ly += 14
	}
}

func (c *canvas) columnWidths() []float64 {
	shares := make([]float64, len(c.tree.Table.Columns))
	for i, col := range c.tree.Table.Columns {
		shares[i] = col.Width
	}

	return columnWidths(shares, c.contentW)
}

func (c *canvas) table() {
	cols := c.tree.Table.Columns
	if len(cols) == 0 {
		return
	}

	widths := c.columnWidths()
	headH := lineHeight + 2*cellPadY
	maxLines := max(1, int((c.bottom-marginTop-headH-2*cellPadY)/lineHeight))

	if c.y+headH+lineHeight+2*cellPadY > c.bottom {
		c.newPage()
	}

	c.tableHeader(widths)

	for i, row := range c.tree.Table.Rows {
		stripe := striped(i, c.tree.Style.ZebraRows)

		for _, seg := range segments(c.cellLines(row, widths), maxLines) {
			h := segmentHeight(seg)
			if c.y+h > c.bottom {
				c.newPage()
				c.tableHeader(widths)
			}

			c.row(seg, widths, stripe)
			c.layout.rows = append(c.layout.rows, rowPlacement{
				Index:   i,
				Page:    c.pdf.PageNo(),
				Top:     c.y,
				Bottom:  c.y + h,
				Striped: stripe,
			})
			c.y += h
		}
	}

	c.y += 12
}

func (c *canvas) tableHeader(widths []float64) {
	h := lineHeight + 2*cellPadY

	c.fill(colorTableHead)
	c.stroke(colorBorder)
	c.pdf.Rect(marginX, c.y, c.contentW, h, "DF")

	c.font("B", 10, colorPrimary)

	x := marginX
	for i, col := range c.tree.Table.Columns {
		c.text(x+cellPadX, c.y+cellPadY, widths[i]-2*cellPadX, lineHeight, c.tr(col.Header), string(col.Align))
		x += widths[i]

		if i < len(widths)-1 {
			c.pdf.Line(x, c.y, x, c.y+h)
		}
	}

	c.y += h
}

func (c *canvas) cellLines(row document.Row, widths []float64) [][]string {
	c.font("", 10, colorText)

	out := make([][]string, len(widths))
	for i := range widths {
		var cell string
		if i < len(row.Cells) {
			cell = row.Cells[i]
		}

		out[i] = c.wrap(cell, widths[i]-2*cellPadX)
	}

	return out
}

// segments cuts a row into page-sized pieces. Almost every row is a single
// segment.
func segments(cells [][]string, maxLines int) [][][]string {
	n := 0
	for _, lines := range cells {
		n = max(n, len(lines))
	}

	if n <= maxLines {
		return [][][]string{cells}
	}

	var out [][][]string

	for start := 0; start < n; start += maxLines {
		seg := make([][]string, len(cells))
		for i, lines := range cells {
			if start < len(lines) {
				seg[i] = lines[start:min(start+maxLines, len(lines))]
			}
		}

		out = append(out, seg)
	}

	return out
}

func segmentHeight(seg [][]string) float64 {
	n := 1
	for _, lines := range seg {
		n = max(n, len(lines))
	}

	return float64(n)*lineHeight + 2*cellPadY
}

func (c *canvas) row(seg [][]string, widths []float64, stripe bool) {
	h := segmentHeight(seg)

	if stripe {
		c.fill(colorSoftBg)
	} else {
		c.fill(colorWhite)
	}

	c.stroke(colorBorder)
	c.pdf.Rect(marginX, c.y, c.contentW, h, "DF")
	c.font("", 10, colorText)

	x := marginX
	for i, lines := range seg {
		align := string(c.tree.Table.Columns[i].Align)

		for k, l := range lines {
			c.text(x+cellPadX, c.y+cellPadY+float64(k)*lineHeight, widths[i]-2*cellPadX, lineHeight, l, align)
		}

		x += widths[i]

		if i < len(widths)-1 {
			c.pdf.Line(x, c.y, x, c.y+h)
		}
	}
}

func (c *canvas) totals() {
	lines := c.tree.Totals.Lines
	if len(lines) == 0 {
		return
	}

	const pad = 10.0

	cardW := c.contentW * totalsShare
	h := float64(len(lines))*totalsRow + 2*pad

	if c.y+h > c.bottom {
		c.newPage()
	}

	x := c.width - marginX - cardW

	if c.tree.Style.TotalsCard {
		c.fill(colorWhite)
		c.stroke(colorBorder)
		c.pdf.RoundedRect(x, c.y, cardW, h, 10, "1234", "DF")
	}

	half := cardW/2 - pad
	ly := c.y + pad

	for _, tl := range lines {
		if tl.Strong {
			c.font("B", 12, colorPrimary)
		} else {
			c.font("", 10, colorSubtext)
		}

		c.text(x+pad, ly, half, totalsRow, c.tr(tl.Label), "L")

		if !tl.Strong {
			c.font("", 10, colorText)
		}

		c.text(x+cardW/2, ly, half, totalsRow, c.tr(tl.Display), "R")
		ly += totalsRow
	}

	c.y += h + 8
}

func (c *canvas) notes() {
	if strings.TrimSpace(c.tree.Notes) == "" {
		return
	}

	const pad = 8.0

	c.font("", 9, colorSubtext)
	lines := c.wrap(c.tree.Notes, c.contentW-2*pad)

	for len(lines) > 0 {
		n := int((c.bottom - c.y - 2*pad) / noteLine)
		if n < 1 {
			c.newPage()
			continue
		}

		n = min(n, len(lines))
		h := float64(n)*noteLine + 2*pad

		c.fill(colorSoftBg)
		c.stroke(colorBorder)
		c.pdf.RoundedRect(marginX, c.y, c.contentW, h, 8, "1234", "DF")
		c.font("", 9, colorSubtext)

		for k := range n {
			c.text(marginX+pad, c.y+pad+float64(k)*noteLine, c.contentW-2*pad, noteLine, lines[k], "L")
		}

		lines = lines[n:]
		c.y += h + 8
	}
}
