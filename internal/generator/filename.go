package generator

import (
	"strings"

	"github.com/kevinbrinsly07/VehicleRentalSystem-admin/internal/document"
)

// FileName returns "<Company>_<Kind>_<Number>_<Date>.<ext>" with anything
// outside letters, digits, '-' and '_' replaced. Empty parts are dropped.
func FileName(company string, tree *document.Tree, ext string) string {
	kind := string(tree.Kind)
	if kind != "" {
		kind = strings.ToUpper(kind[:1]) + kind[1:]
	}

	var parts []string

	for _, p := range []string{company, kind, tree.Meta.Number, tree.Meta.Date} {
		if p = sanitize(p); p != "" {
			parts = append(parts, p)
		}
	}

	if len(parts) == 0 {
		parts = []string{"document"}
	}

	return strings.Join(parts, "_") + "." + ext
}

func sanitize(s string) string {
	s = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			return r
		}

		return '_'
	}, strings.TrimSpace(s))

	for strings.Contains(s, "__") {
		s = strings.ReplaceAll(s, "__", "_")
	}

	return strings.Trim(s, "_")
}
