package lineitems

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/kevinbrinsly07/VehicleRentalSystem-admin/internal/document"
	"github.com/kevinbrinsly07/VehicleRentalSystem-admin/internal/money"
)

// ParseText reads one item per line as "qty; description; rate[; amount]".
// A line holding only a description is one unit at no charge. Blank lines
// and lines starting with # are ignored.
func ParseText(s string) ([]document.LineItem, error) {
	var items []document.LineItem

	sc := bufio.NewScanner(strings.NewReader(s))
	lineNum := 0

	for sc.Scan() {
		lineNum++

		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Split(line, ";")
		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}

		var item document.LineItem

		switch len(fields) {
		case 1:
			item = document.LineItem{Quantity: money.ParseQuantity(""), Description: fields[0]}
		case 2, 3, 4:
			item = document.LineItem{Quantity: money.ParseQuantity(fields[0]), Description: fields[1]}
			if len(fields) > 2 {
				item.Rate = money.ParseAmount(fields[2])
			}

			if len(fields) > 3 {
				item.Amount = money.ParseAmount(fields[3])
			}
		default:
			return nil, fmt.Errorf("line %d: expected at most 4 fields, got %d", lineNum, len(fields))
		}

		if item.Description == "" {
			return nil, fmt.Errorf("line %d: missing description", lineNum)
		}

		items = append(items, item)
	}

	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read items: %w", err)
	}

	return items, nil
}
