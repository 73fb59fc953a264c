package core

import (
	"testing"

	"github.com/huangsam/agrilens/internal/contract"
	"github.com/huangsam/agrilens/internal/store"
	"github.com/huangsam/agrilens/schema"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

// seedDataset returns the embedded dataset.
func seedDataset(t *testing.T) *schema.Dataset {
	t.Helper()
	ds, err := store.Embedded()
	require.NoError(t, err)
	return ds
}

// defaultConfig mirrors the config produced by the root command defaults.
func defaultConfig() *contract.Config {
	return &contract.Config{
		ResultLimit:   contract.DefaultResultLimit,
		Precision:     contract.DefaultPrecision,
		Output:        schema.TextOut,
		RankBy:        schema.BreakdownScore,
		Direction:     schema.Desc,
		SeriesTracker: schema.FeedTracker,
		SeriesField:   schema.FCRField,
		Scoring:       schema.DefaultScoringConfig(),
	}
}

func sumCounts[K comparable](m map[K]int) int {
	total := 0
	for _, v := range m {
		total += v
	}
	return total
}
