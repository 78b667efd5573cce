package render

import (
	"strconv"
	"strings"
)

type rgb struct {
	r, g, b int
}

var (
	colorPrimary   = rgb{0x11, 0x18, 0x27}
	colorText      = rgb{0x1F, 0x29, 0x37}
	colorSubtext   = rgb{0x6B, 0x72, 0x80}
	colorBorder    = rgb{0xE5, 0xE7, 0xEB}
	colorSoftBg    = rgb{0xF9, 0xFA, 0xFB}
	colorTableHead = rgb{0xF3, 0xF4, 0xF6}
	colorWhite     = rgb{0xFF, 0xFF, 0xFF}
	colorAccent    = rgb{0x25, 0x63, 0xEB}
)

// parseHex reads #rgb or #rrggbb, falling back to the default accent.
func parseHex(s string) rgb {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}

	if len(s) != 6 {
		return colorAccent
	}

	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return colorAccent
	}

	return rgb{int(v >> 16 & 0xFF), int(v >> 8 & 0xFF), int(v & 0xFF)}
}

// columnWidths splits total between columns by their percentage shares.
func columnWidths(shares []float64, total float64) []float64 {
	sum := 0.0
	for _, s := range shares {
		sum += s
	}

	widths := make([]float64, len(shares))
	if sum <= 0 {
		return widths
	}

	for i, s := range shares {
		widths[i] = total * s / sum
	}

	return widths
}

// striped reports whether a table row gets the zebra background.
func striped(index int, zebra bool) bool {
	return zebra && index%2 == 1
}

// fitWords breaks text into lines no wider than width as measured by
// measure. Newlines always break. A word wider than a whole line is split
// between characters. text must already be in the single-byte page encoding.
func fitWords(text string, width float64, measure func(string) float64) []string {
	var lines []string

	for _, para := range strings.Split(text, "\n") {
		lines = append(lines, fitParagraph(para, width, measure)...)
	}

	return lines
}

func fitParagraph(para string, width float64, measure func(string) float64) []string {
	words := strings.Fields(para)
	if len(words) == 0 {
		return []string{""}
	}

	var (
		lines []string
		cur   string
	)

	for _, w := range words {
		candidate := w
		if cur != "" {
			candidate = cur + " " + w
		}

		if measure(candidate) <= width {
			cur = candidate
			continue
		}

		if cur != "" {
			lines = append(lines, cur)
			cur = ""
		}

		for measure(w) > width && len(w) > 1 {
			n := 1
			for n < len(w) && measure(w[:n+1]) <= width {
				n++
			}

			lines = append(lines, w[:n])
			w = w[n:]
		}

		cur = w
	}

	return append(lines, cur)
}
