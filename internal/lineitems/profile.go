package lineitems

import "strings"

// Profile describes the header layout of a line-item export. Columns are
// matched case-insensitively against each alias in order.
type Profile struct {
	Name      string
	QtyCols   []string
	DescCols  []string
	RateCols  []string
	AmountCol []string
}

// profiles is tried in order. More specific layouts come first.
var profiles = []Profile{
	{
		Name:      "quotation",
		QtyCols:   []string{"qty"},
		DescCols:  []string{"description", "desc"},
		RateCols:  []string{"rate"},
		AmountCol: []string{"amount"},
	},
	{
		Name:      "spreadsheet",
		QtyCols:   []string{"quantity", "units"},
		DescCols:  []string{"item", "service", "description"},
		RateCols:  []string{"unit price", "price", "unit rate"},
		AmountCol: []string{"total", "line total"},
	},
}

// columns maps a profile onto a header row. A description column and at
// least one of rate or amount are required; quantity is optional.
type columns struct {
	qty, desc, rate, amount int
}

func (p Profile) match(header []string) (columns, bool) {
	idx := make(map[string]int, len(header))

	for i, cell := range header {
		name := strings.ToLower(strings.TrimSpace(cell))
		if _, dup := idx[name]; name != "" && !dup {
			idx[name] = i
		}
	}

	find := func(aliases []string) int {
		for _, a := range aliases {
			if i, ok := idx[a]; ok {
				return i
			}
		}

		return -1
	}

	c := columns{
		qty:    find(p.QtyCols),
		desc:   find(p.DescCols),
		rate:   find(p.RateCols),
		amount: find(p.AmountCol),
	}

	if c.desc < 0 || (c.rate < 0 && c.amount < 0) {
		return columns{}, false
	}

	return c, true
}
