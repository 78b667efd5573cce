// Package store holds the persistence backends for document settings.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/kevinbrinsly07/VehicleRentalSystem-admin/internal/settings"
)

// Postgres keeps the settings in the single-row app_settings table.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (s *Postgres) Get(ctx context.Context) ([]byte, error) {
	var payload []byte

	err := s.db.QueryRowContext(ctx, `SELECT payload FROM app_settings WHERE id = 1`).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}

		return nil, fmt.Errorf("getting settings: %w", err)
	}

	return payload, nil
}

func (s *Postgres) Set(ctx context.Context, cfg settings.Configuration) error {
	payload, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}

	query := `
		INSERT INTO app_settings (id, payload, updated_at)
		VALUES (1, $1, NOW())
		ON CONFLICT (id) DO UPDATE SET payload = EXCLUDED.payload, updated_at = NOW()
	`

	if _, err := s.db.ExecContext(ctx, query, payload); err != nil {
		return fmt.Errorf("saving settings: %w", err)
	}

	return nil
}
