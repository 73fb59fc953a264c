package algo

import (
	"sort"

	"github.com/huangsam/agrilens/schema"
)

// LabelLayout is the short date format used for chart labels.
const LabelLayout = "Jan 2, 2006"

// ToSeries groups records by the exact date string, averages the value of
// each bucket and orders buckets by parsed date. Dates that cannot be parsed
// sort after every valid date and keep their first-seen order. A bucket
// whose members all lack a value is still emitted with a value of 0.
func ToSeries[T any](records []T, date func(T) string, value func(T) (float64, bool)) []schema.ChartPoint {
	groups, order := GroupBy(records, date)

	series := make([]schema.ChartPoint, 0, len(order))
	for _, key := range order {
		mean, _ := MeanOf(groups[key], value)
		series = append(series, schema.ChartPoint{
			Date:           key,
			Value:          mean,
			FormattedLabel: FormatLabel(key),
			Count:          len(groups[key]),
		})
	}

	sort.SliceStable(series, func(i, j int) bool {
		ti, okI := schema.ParseDate(series[i].Date)
		tj, okJ := schema.ParseDate(series[j].Date)
		switch {
		case okI && okJ:
			return ti.Before(tj)
		default:
			return okI && !okJ
		}
	})
	return series
}

// FormatLabel renders a bucket key as a short date, or returns it unchanged
// when it is not a date.
func FormatLabel(key string) string {
	t, ok := schema.ParseDate(key)
	if !ok {
		return key
	}
	return t.Format(LabelLayout)
}
