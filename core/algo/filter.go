// Package algo is the generic filtering, aggregation, scoring, trend, ranking
// and chart series engine. Every function is pure: inputs are never mutated
// and every call returns freshly allocated results.
package algo

import "github.com/huangsam/agrilens/schema"

// Predicate reports whether a record passes one filter constraint.
type Predicate[T any] func(T) bool

// Filter returns the records that satisfy every predicate. The result is
// always a new non-nil slice, even when no record passes.
func Filter[T any](records []T, preds ...Predicate[T]) []T {
	out := make([]T, 0, len(records))
	for _, r := range records {
		if passesAll(r, preds) {
			out = append(out, r)
		}
	}
	return out
}

// Count returns how many records satisfy every predicate.
func Count[T any](records []T, preds ...Predicate[T]) int {
	n := 0
	for _, r := range records {
		if passesAll(r, preds) {
			n++
		}
	}
	return n
}

func passesAll[T any](r T, preds []Predicate[T]) bool {
	for _, p := range preds {
		if p != nil && !p(r) {
			return false
		}
	}
	return true
}

// MatchField builds an exact-match predicate over a categorical field.
// An inactive constraint yields a nil predicate, which Filter skips.
func MatchField[T any, V comparable](c schema.Constraint[V], get func(T) V) Predicate[T] {
	if !c.Active() {
		return nil
	}
	return func(r T) bool { return c.Matches(get(r)) }
}

// MatchAny builds a set-membership predicate over a slice field.
func MatchAny[T any, V comparable](c schema.Constraint[V], get func(T) []V) Predicate[T] {
	if !c.Active() {
		return nil
	}
	return func(r T) bool { return c.MatchesAny(get(r)) }
}

// MatchBool builds a tri-state boolean predicate.
func MatchBool[T any](c schema.Constraint[bool], get func(T) bool) Predicate[T] {
	return MatchField(c, get)
}

// WithinRange builds an inclusive point-in-range predicate over a date field.
func WithinRange[T any](dr schema.DateRange, get func(T) string) Predicate[T] {
	if !dr.Active() {
		return nil
	}
	return func(r T) bool { return dr.Contains(get(r)) }
}

// OverlapRange builds an interval-overlap predicate for records that carry
// their own start and end dates.
func OverlapRange[T any](dr schema.DateRange, start, end func(T) string) Predicate[T] {
	if !dr.Active() {
		return nil
	}
	return func(r T) bool { return dr.Overlaps(start(r), end(r)) }
}
