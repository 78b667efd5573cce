// Package lineitems reads quotation line items from spreadsheet exports and
// from the one-item-per-line text used by the terminal client.
package lineitems

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/kevinbrinsly07/VehicleRentalSystem-admin/internal/document"
	enc "github.com/kevinbrinsly07/VehicleRentalSystem-admin/internal/encoding"
	"github.com/kevinbrinsly07/VehicleRentalSystem-admin/internal/money"
)

var ErrNoHeader = errors.New("no line item header found")

const maxUpload = 2 << 20

// ParseCSV auto-detects the encoding, delimiter and column layout of r and
// returns its line items. Rows without a description are skipped.
func ParseCSV(r io.Reader) ([]document.LineItem, error) {
	utf8r, charset, err := enc.Detect(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	data, err := io.ReadAll(io.LimitReader(utf8r, maxUpload+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}

	if len(data) > maxUpload {
		return nil, fmt.Errorf("upload larger than %d bytes", maxUpload)
	}

	for _, comma := range []rune{';', ',', '\t'} {
		rows, err := readRows(data, comma)
		if err != nil {
			continue
		}

		profile, cols, headerIdx, ok := detectProfile(rows)
		if !ok {
			continue
		}

		slog.Debug("parsing line items",
			"profile", profile.Name, "charset", charset, "delimiter", string(comma))

		return parseRows(cols, rows[headerIdx+1:]), nil
	}

	return nil, fmt.Errorf("%w: expected Qty/Description/Rate/Amount or Quantity/Item/Unit Price/Total", ErrNoHeader)
}

func readRows(data []byte, comma rune) ([][]string, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	return rows, nil
}

// detectProfile scans rows for a header that matches a known profile. Title
// rows above the header are ignored.
func detectProfile(rows [][]string) (*Profile, columns, int, bool) {
	for rowIdx, row := range rows {
		for i := range profiles {
			if cols, ok := profiles[i].match(row); ok {
				return &profiles[i], cols, rowIdx, true
			}
		}
	}

	return nil, columns{}, 0, false
}

func parseRows(cols columns, rows [][]string) []document.LineItem {
	items := make([]document.LineItem, 0, len(rows))

	for _, row := range rows {
		desc := cellValue(row, cols.desc)
		if desc == "" {
			continue
		}

		items = append(items, document.LineItem{
			Quantity:    money.ParseQuantity(cellValue(row, cols.qty)),
			Description: desc,
			Rate:        money.ParseAmount(cellValue(row, cols.rate)),
			Amount:      money.ParseAmount(cellValue(row, cols.amount)),
		})
	}

	return items
}

// cellValue safely gets a trimmed cell value from a row.
func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
