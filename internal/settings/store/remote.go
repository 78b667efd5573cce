package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/kevinbrinsly07/VehicleRentalSystem-admin/internal/settings"
)

const maxSettingsBody = 1 << 20

// Remote reads and writes the settings through the rental backend's
// /settings endpoint.
type Remote struct {
	baseURL string
	client  *http.Client
}

func NewRemote(baseURL string, client *http.Client) *Remote {
	if client == nil {
		client = http.DefaultClient
	}

	return &Remote{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

func (s *Remote) Get(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/settings", nil)
	if err != nil {
		return nil, fmt.Errorf("building settings request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching settings: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching settings: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxSettingsBody))
	if err != nil {
		return nil, fmt.Errorf("reading settings: %w", err)
	}

	return body, nil
}

func (s *Remote) Set(ctx context.Context, cfg settings.Configuration) error {
	payload, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/settings", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("building settings request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("saving settings: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("saving settings: unexpected status %d", resp.StatusCode)
	}

	return nil
}
