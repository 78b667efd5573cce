package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kevinbrinsly07/VehicleRentalSystem-admin/internal/generator"
)

type Generator interface {
	Generate(ctx context.Context, req generator.Request) (*generator.Result, error)
}

// Item represents a single generated document with its local file path.
type Item struct {
	Result   *generator.Result
	FilePath string
}

// Service writes generated documents to disk.
type Service struct {
	generator Generator
}

// NewService creates a new export Service.
func NewService(gen Generator) *Service {
	return &Service{generator: gen}
}

// Export generates every request and saves it to outputDir. Existing files
// are never overwritten; a numeric suffix is added instead.
func (s *Service) Export(ctx context.Context, reqs []generator.Request, outputDir string) ([]Item, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	items := make([]Item, 0, len(reqs))

	for i, req := range reqs {
		res, err := s.generator.Generate(ctx, req)
		if err != nil {
			return nil, fmt.Errorf("generating document %d: %w", i+1, err)
		}

		path, err := save(outputDir, res)
		if err != nil {
			return nil, err
		}

		items = append(items, Item{Result: res, FilePath: path})
	}

	return items, nil
}

func save(dir string, res *generator.Result) (string, error) {
	name := filepath.Base(res.FileName)
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)

	for n := 1; ; n++ {
		path := filepath.Join(dir, name)

		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if os.IsExist(err) {
			name = fmt.Sprintf("%s_%d%s", stem, n+1, ext)
			continue
		}

		if err != nil {
			return "", fmt.Errorf("creating file: %w", err)
		}

		if _, err := f.Write(res.Artifact.Data); err != nil {
			f.Close()
			return "", fmt.Errorf("writing file: %w", err)
		}

		if err := f.Close(); err != nil {
			return "", fmt.Errorf("closing file: %w", err)
		}

		return path, nil
	}
}

// Summary lists the exported items, one line each, for pasting into an email
// or a chat.
func (s *Service) Summary(items []Item) string {
	var sb strings.Builder

	for _, item := range items {
		tree := item.Result.Tree

		number := tree.Meta.Number
		if number == "" {
			number = "N/A"
		}

		total := ""

		for _, line := range tree.Totals.Lines {
			if line.Strong {
				total = line.Display
			}
		}

		pages := ""
		if item.Result.Artifact.Pages > 0 {
			pages = fmt.Sprintf(" (%d p.)", item.Result.Artifact.Pages)
		}

		fmt.Fprintf(&sb, "* %s | %s #%s | %s | %s%s\n",
			tree.Meta.Date, tree.Kind, number, total, filepath.Base(item.FilePath), pages)
	}

	return sb.String()
}
