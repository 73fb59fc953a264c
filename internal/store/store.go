// Package store serves the dashboard record collections. The seed data is
// embedded in the binary and any collection can be replaced by a JSON file
// of the same name in a data directory.
package store

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/huangsam/agrilens/internal/contract"
	"github.com/huangsam/agrilens/schema"
	"go.uber.org/zap"
)

//go:embed data/*.json
var dataFS embed.FS

// Collection file names, without the .json extension.
const (
	BrandsFile     = "brands"
	PromotionsFile = "promotions"
	SwitchingFile  = "switching"
	IssuesFile     = "issues"
	FarmsFile      = "farms"
	FeedFile       = "feed"
)

// FileSource reads collections from Dir and falls back to the embedded copy
// for every file that is missing there. An empty Dir only uses embedded data.
type FileSource struct {
	Dir string
}

var _ contract.RecordSource = &FileSource{} // Compile-time check

// NewSource returns a record source rooted at dir.
func NewSource(dir string) *FileSource {
	return &FileSource{Dir: dir}
}

// Load implements the RecordSource interface.
func (s *FileSource) Load(ctx context.Context) (*schema.Dataset, error) {
	ds := &schema.Dataset{}
	steps := []struct {
		name string
		dst  any
	}{
		{BrandsFile, &ds.Brands},
		{PromotionsFile, &ds.Promotions},
		{SwitchingFile, &ds.Switching},
		{IssuesFile, &ds.Issues},
		{FarmsFile, &ds.Farms},
		{FeedFile, &ds.Feed},
	}
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := s.read(step.name)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(data, step.dst); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", step.name, err)
		}
	}
	normalize(ds)
	return ds, nil
}

// read returns the override file when present and the embedded file otherwise.
func (s *FileSource) read(name string) ([]byte, error) {
	file := name + ".json"
	if s.Dir != "" {
		path := filepath.Join(s.Dir, file)
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			contract.LogDebug("loaded collection", zap.String("collection", name), zap.String("path", path))
			return data, nil
		case !errors.Is(err, fs.ErrNotExist):
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
	}
	data, err := dataFS.ReadFile("data/" + file)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded %s: %w", file, err)
	}
	return data, nil
}

// normalize replaces absent collections with empty ones so callers never see nil.
func normalize(ds *schema.Dataset) {
	if ds.Brands == nil {
		ds.Brands = []schema.CompetitorBrand{}
	}
	if ds.Promotions == nil {
		ds.Promotions = []schema.Promotion{}
	}
	if ds.Switching == nil {
		ds.Switching = []schema.SwitchingRisk{}
	}
	if ds.Issues == nil {
		ds.Issues = []schema.DealerIssue{}
	}
	if ds.Farms == nil {
		ds.Farms = []schema.FarmRegistration{}
	}
	if ds.Feed == nil {
		ds.Feed = []schema.FeedPerformance{}
	}
}

// Embedded returns the built-in seed dataset.
func Embedded() (*schema.Dataset, error) {
	return NewSource("").Load(context.Background())
}

// WriteDataset writes every collection of ds as a JSON file in dir, in the
// layout FileSource reads. The directory is created when missing.
func WriteDataset(dir string, ds *schema.Dataset) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}
	collections := []struct {
		name string
		data any
	}{
		{BrandsFile, ds.Brands},
		{PromotionsFile, ds.Promotions},
		{SwitchingFile, ds.Switching},
		{IssuesFile, ds.Issues},
		{FarmsFile, ds.Farms},
		{FeedFile, ds.Feed},
	}
	for _, c := range collections {
		data, err := json.MarshalIndent(c.data, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode %s: %w", c.name, err)
		}
		path := filepath.Join(dir, c.name+".json")
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
	}
	return nil
}
