// Package generator runs the document pipeline: resolve settings, build the
// tree, load the logo, render and optionally archive.
package generator

import (
	"archive/zip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/kevinbrinsly07/VehicleRentalSystem-admin/internal/assets"
	"github.com/kevinbrinsly07/VehicleRentalSystem-admin/internal/document"
	"github.com/kevinbrinsly07/VehicleRentalSystem-admin/internal/render"
	"github.com/kevinbrinsly07/VehicleRentalSystem-admin/internal/settings"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported document format")
	ErrEmptyBatch        = errors.New("batch has no documents")
)

// SettingsLoader supplies the stored configuration. Implementations fall back
// to defaults rather than fail.
type SettingsLoader interface {
	Load(ctx context.Context) settings.Configuration
}

type Archiver interface {
	Archive(ctx context.Context, kind document.Kind, number string, art *render.Artifact) (string, error)
}

type Request struct {
	Record document.Record
	// Settings, when set, is resolved and used instead of the stored
	// configuration.
	Settings json.RawMessage
	Format   render.Format
}

type Result struct {
	Artifact *render.Artifact
	FileName string
	Tree     *document.Tree
}

type Service struct {
	settings    SettingsLoader
	builder     *document.Builder
	assets      assets.Source
	renderers   map[render.Format]render.Renderer
	archive     Archiver
	now         func() time.Time
	concurrency int
}

type Option func(*Service)

func WithArchive(a Archiver) Option {
	return func(s *Service) { s.archive = a }
}

// WithClock sets the clock used to date quotations that carry no date.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithConcurrency(n int) Option {
	return func(s *Service) { s.concurrency = max(n, 1) }
}

func WithRenderer(f render.Format, r render.Renderer) Option {
	return func(s *Service) { s.renderers[f] = r }
}

func NewService(loader SettingsLoader, builder *document.Builder, src assets.Source, opts ...Option) *Service {
	s := &Service{
		settings: loader,
		builder:  builder,
		assets:   src,
		renderers: map[render.Format]render.Renderer{
			render.FormatPDF:  render.NewPDF(assets.Placeholder()),
			render.FormatXLSX: render.NewXLSX(),
		},
		now:         time.Now,
		concurrency: 4,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Generate produces one document. Only build and render failures are
// returned; settings, logo and archive problems are logged and worked around.
func (s *Service) Generate(ctx context.Context, req Request) (*Result, error) {
	return s.generate(ctx, req, s.configuration(ctx, req.Settings, nil))
}

// Batch renders reqs concurrently and writes them to w as a zip archive in
// request order. Any failed document fails the whole batch before anything
// is written.
func (s *Service) Batch(ctx context.Context, reqs []Request, w io.Writer) error {
	if len(reqs) == 0 {
		return ErrEmptyBatch
	}

	stored := s.settings.Load(ctx)

	results := make([]*Result, len(reqs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i, req := range reqs {
		g.Go(func() error {
			res, err := s.generate(gctx, req, s.configuration(gctx, req.Settings, &stored))
			if err != nil {
				return fmt.Errorf("document %d: %w", i+1, err)
			}

			results[i] = res

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	return writeZip(w, results)
}

func (s *Service) generate(ctx context.Context, req Request, cfg settings.Configuration) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	format := req.Format
	if format == "" {
		format = render.FormatPDF
	}

	renderer, ok := s.renderers[format]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	tree, err := s.builder.Build(s.dated(req.Record), cfg)
	if err != nil {
		return nil, fmt.Errorf("building document: %w", err)
	}

	tree.Header.Logo.Data = s.logo(ctx, tree.Header.Logo.Ref)

	art, err := renderer.Render(tree)
	if err != nil {
		return nil, err
	}

	if art.Format == render.FormatPDF {
		pages, err := render.Verify(art.Data)
		if err != nil {
			return nil, err
		}

		art.Pages = pages
	}

	if s.archive != nil {
		name, err := s.archive.Archive(ctx, tree.Kind, tree.Meta.Number, art)
		if err != nil {
			slog.Warn("archiving document failed", "kind", tree.Kind, "number", tree.Meta.Number, "error", err)
		} else {
			slog.Info("document archived", "object", name)
		}
	}

	return &Result{
		Artifact: art,
		FileName: FileName(cfg.General.CompanyName, tree, art.Ext()),
		Tree:     tree,
	}, nil
}

// configuration resolves an inline override, or falls back to the stored
// settings (loaded now unless the caller already has them). An inline
// override may only keep the stored logo reference or one that needs no
// fetch (placeholder, data URI); anything else is replaced by the stored one
// so callers cannot make the service request arbitrary URLs.
func (s *Service) configuration(ctx context.Context, raw json.RawMessage, stored *settings.Configuration) settings.Configuration {
	if stored == nil {
		cfg := s.settings.Load(ctx)
		stored = &cfg
	}

	if len(raw) == 0 {
		return *stored
	}

	cfg := settings.Resolve(raw)

	if ref := cfg.Branding.LogoReference; ref != stored.Branding.LogoReference && !assets.Embedded(ref) {
		slog.Warn("ignoring inline logo reference", "ref", ref)
		cfg.Branding.LogoReference = stored.Branding.LogoReference
	}

	return cfg
}

// dated fills in today's date on an undated quotation without touching the
// caller's record.
func (s *Service) dated(rec document.Record) document.Record {
	q, ok := rec.(*document.Quotation)
	if !ok || q == nil || strings.TrimSpace(q.Date) != "" {
		return rec
	}

	dated := *q
	dated.Date = s.now().Format("2006-01-02")

	return &dated
}

func (s *Service) logo(ctx context.Context, ref string) []byte {
	data, err := s.assets.Load(ctx, ref)
	if err != nil || len(data) == 0 {
		slog.Warn("logo unavailable, using placeholder", "ref", ref, "error", err)
		return assets.Placeholder()
	}

	return data
}

var zipEpoch = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

func writeZip(w io.Writer, results []*Result) error {
	zw := zip.NewWriter(w)
	seen := make(map[string]bool, len(results))

	for _, res := range results {
		modified := res.Tree.Meta.Created
		if modified.IsZero() {
			modified = zipEpoch
		}

		hdr := &zip.FileHeader{
			Name:     uniqueName(res.FileName, seen),
			Method:   zip.Deflate,
			Modified: modified,
		}

		fw, err := zw.CreateHeader(hdr)
		if err != nil {
			return fmt.Errorf("adding %s to archive: %w", hdr.Name, err)
		}

		if _, err := fw.Write(res.Artifact.Data); err != nil {
			return fmt.Errorf("writing %s to archive: %w", hdr.Name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("closing archive: %w", err)
	}

	return nil
}

// uniqueName suffixes names already taken with _2, _3 and so on, skipping
// suffixed names that are themselves taken.
func uniqueName(name string, seen map[string]bool) string {
	candidate := name

	if seen[candidate] {
		stem, ext := name, ""
		if i := strings.LastIndex(name, "."); i > 0 {
			stem, ext = name[:i], name[i:]
		}

		for n := 2; seen[candidate]; n++ {
			candidate = fmt.Sprintf("%s_%d%s", stem, n, ext)
		}
	}

	seen[candidate] = true

	return candidate
}
