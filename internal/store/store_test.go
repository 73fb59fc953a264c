package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/huangsam/agrilens/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbedded(t *testing.T) {
	ds, err := Embedded()
	require.NoError(t, err)

	assert.Len(t, ds.Brands, 6)
	assert.Len(t, ds.Promotions, 5)
	assert.Len(t, ds.Switching, 6)
	assert.Len(t, ds.Issues, 6)
	assert.Len(t, ds.Farms, 6)
	assert.Len(t, ds.Feed, 12)

	for _, f := range ds.Feed {
		assert.NotEmpty(t, f.ID)
		assert.NotEmpty(t, f.FeedBrand)
	}
}

func TestEmbeddedMissingMetrics(t *testing.T) {
	ds, err := Embedded()
	require.NoError(t, err)

	missing := 0
	for _, f := range ds.Feed {
		if f.FCR == nil || f.WeightGain == nil || f.Mortality == nil {
			missing++
		}
	}
	assert.Positive(t, missing, "seed data should exercise incomplete observations")
}

func TestFileSourceOverride(t *testing.T) {
	dir := t.TempDir()
	brands := `[{"id":"x-1","name":"Test Feeds","category":"swine","marketShare":12.5,"regions":["Luzon"]}]`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "brands.json"), []byte(brands), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "issues.json"), []byte(`null`), 0o600))

	ds, err := NewSource(dir).Load(context.Background())
	require.NoError(t, err)

	require.Len(t, ds.Brands, 1)
	assert.Equal(t, "Test Feeds", ds.Brands[0].Name)
	assert.Equal(t, []string{"Luzon"}, ds.Brands[0].Regions)
	assert.NotNil(t, ds.Issues)
	assert.Empty(t, ds.Issues)
	assert.Len(t, ds.Farms, 6, "missing files fall back to embedded data")
}

func TestFileSourceMalformed(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "feed.json"), []byte(`{not json`), 0o600))

	_, err := NewSource(dir).Load(context.Background())
	assert.ErrorContains(t, err, "feed")
}

func TestFileSourceCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewSource("").Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMockRecordSource(t *testing.T) {
	ctx := context.Background()
	m := &MockRecordSource{}
	m.On("Load", ctx).Return(&schema.Dataset{Brands: []schema.CompetitorBrand{{ID: "b"}}}, nil)

	ds, err := m.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, ds.Brands, 1)
	m.AssertExpectations(t)
}

func TestWriteDataset(t *testing.T) {
	ds, err := Embedded()
	require.NoError(t, err)
	ds.Issues = ds.Issues[:2]

	dir := filepath.Join(t.TempDir(), "nested", "data")
	require.NoError(t, WriteDataset(dir, ds))

	loaded, err := NewSource(dir).Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, loaded.Issues, 2)
	assert.Equal(t, ds.Farms, loaded.Farms)
	assert.Equal(t, ds.Feed, loaded.Feed)
}

func TestWriteDatasetInvalidDir(t *testing.T) {
	file := filepath.Join(t.TempDir(), "plain")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))
	assert.Error(t, WriteDataset(filepath.Join(file, "data"), &schema.Dataset{}))
}
