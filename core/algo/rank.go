package algo

import (
	"sort"

	"github.com/huangsam/agrilens/schema"
)

// Rank orders a copy of records by key and numbers them from 1. The sort is
// stable, so equal keys keep their input order and still get consecutive
// ranks. The input slice is left untouched.
func Rank[T any](records []T, key func(T) float64, dir schema.SortDirection) []schema.Ranked[T] {
	sorted := make([]T, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		if dir == schema.Asc {
			return key(sorted[i]) < key(sorted[j])
		}
		return key(sorted[i]) > key(sorted[j])
	})

	ranked := make([]schema.Ranked[T], len(sorted))
	for i, r := range sorted {
		ranked[i] = schema.Ranked[T]{Rank: i + 1, Record: r}
	}
	return ranked
}

// Top returns at most limit ranked entries. A non-positive limit keeps all.
func Top[T any](ranked []schema.Ranked[T], limit int) []schema.Ranked[T] {
	if limit > 0 && len(ranked) > limit {
		return ranked[:limit]
	}
	return ranked
}
