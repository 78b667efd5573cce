package store

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/redis/go-redis/v9"

	"github.com/kevinbrinsly07/VehicleRentalSystem-admin/internal/config"
	"github.com/kevinbrinsly07/VehicleRentalSystem-admin/internal/database"
	"github.com/kevinbrinsly07/VehicleRentalSystem-admin/internal/settings"
)

// Open builds the settings store selected by cfg: Postgres or the backend's
// settings endpoint, mirrored to Redis when an address is configured. The
// returned func releases the connections.
func Open(ctx context.Context, cfg *config.Config, backend *http.Client) (settings.Store, func(), error) {
	var (
		primary settings.Store
		closers []func()
	)

	switch cfg.Settings.Source {
	case config.SettingsSourceRemote:
		primary = NewRemote(cfg.Backend.BaseURL, backend)
	default:
		db, err := database.New(cfg.ConnectionString())
		if err != nil {
			return nil, nil, fmt.Errorf("connecting to database: %w", err)
		}

		if err := database.Migrate(ctx, db); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("migrating database: %w", err)
		}

		closers = append(closers, func() { db.Close() })
		primary = NewPostgres(db)
	}

	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
		closers = append(closers, func() { client.Close() })

		primary = settings.NewMirrored(primary, NewRedis(client, cfg.Redis.TTL))
		slog.Info("mirroring settings to redis", "addr", cfg.Redis.Addr)
	}

	return primary, func() {
		for _, c := range closers {
			c()
		}
	}, nil
}
