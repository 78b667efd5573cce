package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cloud.google.com/go/storage"
	"github.com/joho/godotenv"

	"github.com/kevinbrinsly07/VehicleRentalSystem-admin/internal/archive"
	"github.com/kevinbrinsly07/VehicleRentalSystem-admin/internal/assets"
	"github.com/kevinbrinsly07/VehicleRentalSystem-admin/internal/config"
	"github.com/kevinbrinsly07/VehicleRentalSystem-admin/internal/document"
	"github.com/kevinbrinsly07/VehicleRentalSystem-admin/internal/generator"
	apiHttp "github.com/kevinbrinsly07/VehicleRentalSystem-admin/internal/http"
	"github.com/kevinbrinsly07/VehicleRentalSystem-admin/internal/http/auth"
	documentsHandler "github.com/kevinbrinsly07/VehicleRentalSystem-admin/internal/http/documents"
	settingsHandler "github.com/kevinbrinsly07/VehicleRentalSystem-admin/internal/http/settings"
	"github.com/kevinbrinsly07/VehicleRentalSystem-admin/internal/records/remote"
	"github.com/kevinbrinsly07/VehicleRentalSystem-admin/internal/settings"
	settingsStore "github.com/kevinbrinsly07/VehicleRentalSystem-admin/internal/settings/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	backend := &http.Client{Timeout: cfg.Backend.Timeout}

	store, closeStore, err := settingsStore.Open(ctx, cfg, backend)
	if err != nil {
		slog.Error("failed to set up settings store", "error", err)
		os.Exit(1)
	}
	defer closeStore()

	opts := []generator.Option{generator.WithConcurrency(cfg.Render.Concurrency)}

	if cfg.Archive.Bucket != "" {
		client, err := storage.NewClient(ctx)
		if err != nil {
			slog.Error("failed to create storage client", "error", err)
			os.Exit(1)
		}
		defer client.Close()

		opts = append(opts, generator.WithArchive(archive.NewGCS(client, cfg.Archive.Bucket)))
		slog.Info("archiving documents", "bucket", cfg.Archive.Bucket)
	}

	var (
		settingsService = settings.NewService(store)
		logoLoader      = assets.NewLoader(backend, cfg.Assets.CacheSize, cfg.Assets.CacheTTL)
		builder         = document.NewBuilder(cfg.Backend.BaseURL)
		generatorSvc    = generator.NewService(settingsService, builder, logoLoader, opts...)
		recordsClient   = remote.New(cfg.Backend.BaseURL, backend)
	)

	var (
		documentsH = documentsHandler.NewHandler(generatorSvc, recordsClient)
		settingsH  = settingsHandler.NewHandler(settingsService, auth.RequireRole(cfg.Auth.JWTSecret, "admin", "manager"))
	)

	if cfg.Auth.JWTSecret == "" {
		slog.Warn("JWT_SECRET not set, settings writes are unauthenticated")
	}

	router := apiHttp.New(cfg.CORS.Origins, documentsH, settingsH)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Server.Timeout,
	}

	go func() {
		slog.Info("starting server", "port", srv.Addr)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown failed", "error", err)
	}
}
