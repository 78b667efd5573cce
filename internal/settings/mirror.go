package settings

import (
	"context"
	"log/slog"
)

// Mirrored reads from a primary store and keeps a secondary copy for when the
// primary is unreachable. Reads prefer the primary and refresh the mirror;
// writes go to the primary first and are then copied best-effort.
type Mirrored struct {
	primary Store
	mirror  Store
}

func NewMirrored(primary, mirror Store) *Mirrored {
	return &Mirrored{primary: primary, mirror: mirror}
}

func (m *Mirrored) Get(ctx context.Context) ([]byte, error) {
	raw, err := m.primary.Get(ctx)
	if err == nil && raw != nil {
		m.refresh(ctx, raw)
		return raw, nil
	}

	if err != nil {
		slog.Warn("primary settings store failed, reading mirror", "error", err)
	}

	mirrored, mErr := m.mirror.Get(ctx)
	if mErr != nil {
		if err != nil {
			return nil, err
		}

		return nil, mErr
	}

	return mirrored, nil
}

func (m *Mirrored) Set(ctx context.Context, cfg Configuration) error {
	if err := m.primary.Set(ctx, cfg); err != nil {
		return err
	}

	if err := m.mirror.Set(ctx, cfg); err != nil {
		slog.Warn("mirroring settings failed", "error", err)
	}

	return nil
}

// refresh copies what the primary returned into the mirror. The blob may be a
// partial or legacy document, so it is resolved before being stored.
func (m *Mirrored) refresh(ctx context.Context, raw []byte) {
	if err := m.mirror.Set(ctx, Resolve(raw)); err != nil {
		slog.Warn("refreshing settings mirror failed", "error", err)
	}
}
