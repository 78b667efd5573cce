package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"Rental Docs"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"rentals"`
	}

	Server struct {
		Timeout time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
	}

	// Backend is the rental REST API that owns vehicles, rentals and sales.
	// Its origin also qualifies root-relative logo references.
	Backend struct {
		BaseURL string        `envconfig:"BACKEND_URL" default:"http://localhost:8000"`
		Timeout time.Duration `envconfig:"BACKEND_TIMEOUT" default:"10s"`
	}

	Settings struct {
		Source string `envconfig:"SETTINGS_SOURCE" default:"postgres"`
	}

	Redis struct {
		Addr string        `envconfig:"REDIS_ADDRESS"`
		TTL  time.Duration `envconfig:"REDIS_SETTINGS_TTL" default:"0s"`
	}

	Archive struct {
		Bucket string `envconfig:"ARCHIVE_BUCKET"`
	}

	Auth struct {
		JWTSecret string `envconfig:"JWT_SECRET"`
	}

	CORS struct {
		Origins []string `envconfig:"CORS_ORIGINS" default:"http://localhost:5173"`
	}

	Render struct {
		Concurrency int `envconfig:"RENDER_CONCURRENCY" default:"4"`
	}

	Assets struct {
		CacheSize int           `envconfig:"ASSET_CACHE_SIZE" default:"32"`
		CacheTTL  time.Duration `envconfig:"ASSET_CACHE_TTL" default:"10m"`
	}
}

const (
	SettingsSourcePostgres = "postgres"
	SettingsSourceRemote   = "remote"
)

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	switch cfg.Settings.Source {
	case SettingsSourcePostgres, SettingsSourceRemote:
	default:
		return nil, fmt.Errorf("unknown settings source %q", cfg.Settings.Source)
	}

	if cfg.Render.Concurrency < 1 {
		cfg.Render.Concurrency = 1
	}

	return &cfg, nil
}
