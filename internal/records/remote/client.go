// Package remote reads records from the rental backend's REST API.
package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/kevinbrinsly07/VehicleRentalSystem-admin/internal/document"
	"github.com/kevinbrinsly07/VehicleRentalSystem-admin/internal/records"
)

const maxBody = 1 << 20

type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string, client *http.Client) *Client {
	if client == nil {
		client = http.DefaultClient
	}

	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: client}
}

// apiError is the backend's error envelope.
type apiError struct {
	Detail string `json:"detail"`
}

func (c *Client) Invoice(ctx context.Context, rentalID int64) (*document.Invoice, error) {
	url := fmt.Sprintf("%s/rentals/%d/invoice", c.baseURL, rentalID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building invoice request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching invoice for rental %d: %w", rentalID, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("reading invoice for rental %d: %w", rentalID, err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", records.ErrNotFound, detail(body, rentalID))
	case http.StatusBadRequest:
		return nil, fmt.Errorf("%w: %s", records.ErrNotCompleted, detail(body, rentalID))
	default:
		return nil, fmt.Errorf("fetching invoice for rental %d: status %d: %s",
			rentalID, resp.StatusCode, detail(body, rentalID))
	}

	var inv document.Invoice
	if err := json.Unmarshal(body, &inv); err != nil {
		return nil, fmt.Errorf("decoding invoice for rental %d: %w", rentalID, err)
	}

	return &inv, nil
}

func detail(body []byte, rentalID int64) string {
	var e apiError
	if err := json.Unmarshal(body, &e); err == nil && e.Detail != "" {
		return e.Detail
	}

	return fmt.Sprintf("rental %d", rentalID)
}
