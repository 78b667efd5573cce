package remote_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kevinbrinsly07/VehicleRentalSystem-admin/internal/records"
	"github.com/kevinbrinsly07/VehicleRentalSystem-admin/internal/records/remote"
)

const invoiceJSON = `{
	"rental_id": 7, "sale_id": 42,
	"customer_name": "Nimal Perera", "customer_email": "nimal@example.com",
	"car_make": "Toyota", "car_model": "Axio", "car_year": 2019,
	"start_date": "2024-03-01", "end_date": "2024-03-05",
	"total_cost": 1000.0, "deposit_amount": 300.0,
	"is_paid": true, "payment_method": "Cash", "sale_date": "2024-03-05"
}`

func TestClient_Invoice(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantErr    error
		wantErrMsg string
	}{
		{name: "Success", status: http.StatusOK, body: invoiceJSON},
		{
			name:       "NotFound",
			status:     http.StatusNotFound,
			body:       `{"detail":"Rental with ID 7 not found."}`,
			wantErr:    records.ErrNotFound,
			wantErrMsg: "rental not found: Rental with ID 7 not found.",
		},
		{
			name:    "NotCompleted",
			status:  http.StatusBadRequest,
			body:    `{"detail":"Rental with ID 7 is not completed. Invoice cannot be generated."}`,
			wantErr: records.ErrNotCompleted,
		},
		{
			name:       "ServerError",
			status:     http.StatusInternalServerError,
			body:       `{"detail":"boom"}`,
			wantErrMsg: "fetching invoice for rental 7: status 500: boom",
		},
		{
			name:       "BadPayload",
			status:     http.StatusOK,
			body:       `{"sale_id":"forty-two"}`,
			wantErrMsg: "decoding invoice for rental 7",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/rentals/7/invoice", r.URL.Path)
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			inv, err := remote.New(srv.URL+"/", srv.Client()).Invoice(context.Background(), 7)

			if tt.wantErr == nil && tt.wantErrMsg == "" {
				require.NoError(t, err)
				assert.Equal(t, int64(42), inv.SaleID)
				assert.Equal(t, "Axio", inv.Model)
				assert.Equal(t, "300", inv.DepositAmount.Decimal.String())
				return
			}

			require.Error(t, err)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}

			if tt.wantErrMsg != "" {
				assert.ErrorContains(t, err, tt.wantErrMsg)
			}
		})
	}
}
