package view

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/kevinbrinsly07/VehicleRentalSystem-admin/internal/render"
	"github.com/kevinbrinsly07/VehicleRentalSystem-admin/internal/settings"
)

const opTimeout = 2 * time.Minute

// OpCtx returns a context with the timeout used for backend calls and
// rendering.
func OpCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), opTimeout)
}

// FormatDate formats a time.Time into YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

func validateDate(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	if _, err := time.Parse("2006-01-02", strings.TrimSpace(s)); err != nil {
		return errors.New("use YYYY-MM-DD")
	}

	return nil
}

func validatePositiveInt(s string) error {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || n <= 0 {
		return errors.New("enter a positive number")
	}

	return nil
}

func validateValidityDays(s string) error {
	if _, ok := settings.ParseValidityDays(s); !ok {
		return fmt.Errorf("enter a whole number of days, at most 3650")
	}

	return nil
}

func formatOptions() []render.Format {
	return []render.Format{render.FormatPDF, render.FormatXLSX}
}
