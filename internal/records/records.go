// Package records supplies the invoice records owned by the rental backend.
package records

import (
	"context"
	"errors"

	"github.com/kevinbrinsly07/VehicleRentalSystem-admin/internal/document"
)

var (
	ErrNotFound     = errors.New("rental not found")
	ErrNotCompleted = errors.New("rental not completed")
)

//go:generate mockgen -source=records.go -destination=source_mock.go -package=records
type Source interface {
	// Invoice returns the invoice of a completed rental.
	Invoice(ctx context.Context, rentalID int64) (*document.Invoice, error)
}
