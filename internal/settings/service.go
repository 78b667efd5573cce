package settings

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
)

//go:generate mockgen -source=service.go -destination=store_mock.go -package=settings
type Store interface {
	// Get returns the persisted settings blob, or nil when nothing was saved.
	Get(ctx context.Context) ([]byte, error)
	Set(ctx context.Context, cfg Configuration) error
}

var ErrInvalid = errors.New("invalid settings")

// ValidationError lists the offending fields of a rejected Save.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for f, tag := range e.Fields {
		parts = append(parts, f+":"+tag)
	}

	return fmt.Sprintf("%s: %s", ErrInvalid, strings.Join(parts, ", "))
}

func (e *ValidationError) Unwrap() error { return ErrInvalid }

type Service struct {
	store    Store
	validate *validator.Validate
}

func NewService(store Store) *Service {
	return &Service{
		store:    store,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Load reads the persisted settings and resolves them. A store failure is
// logged and answered with defaults so documents can still be produced.
func (s *Service) Load(ctx context.Context) Configuration {
	raw, err := s.store.Get(ctx)
	if err != nil {
		slog.Warn("loading settings failed, using defaults", "error", err)
		return Defaults()
	}

	return Resolve(raw)
}

// Save validates cfg and persists it. Last write wins.
func (s *Service) Save(ctx context.Context, cfg Configuration) error {
	if err := s.validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make(map[string]string, len(verrs))
			for _, fe := range verrs {
				fields[fe.Namespace()] = fe.Tag()
			}

			return &ValidationError{Fields: fields}
		}

		return fmt.Errorf("validating settings: %w", err)
	}

	if err := s.store.Set(ctx, cfg); err != nil {
		return fmt.Errorf("saving settings: %w", err)
	}

	return nil
}
