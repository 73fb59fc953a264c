package algo

import (
	"sort"
	"time"

	"github.com/huangsam/agrilens/schema"
)

// Metric describes how to read and judge one numeric field for trends.
type Metric[T any] struct {
	Value    func(T) (float64, bool)
	Polarity schema.Polarity
	Epsilon  float64
}

type datedValue struct {
	at    time.Time
	value float64
}

// Trend classifies how a metric moved across a time-ordered record set.
// Records are stably sorted by date and split into an older half of
// ceil(n/2) records and a recent half with the rest. Records with an
// unparseable date or a missing value are dropped first. When either half is
// empty the direction is stable.
func Trend[T any](records []T, date func(T) string, m Metric[T]) schema.TrendDirection {
	points := make([]datedValue, 0, len(records))
	for _, r := range records {
		at, ok := schema.ParseDate(date(r))
		if !ok {
			continue
		}
		v, ok := m.Value(r)
		if !ok {
			continue
		}
		points = append(points, datedValue{at: at, value: v})
	}
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].at.Before(points[j].at)
	})

	split := (len(points) + 1) / 2
	older, recent := points[:split], points[split:]
	if len(older) == 0 || len(recent) == 0 {
		return schema.Stable
	}
	return Direction(meanValue(older), meanValue(recent), m.Polarity, m.Epsilon)
}

// Direction compares a recent mean against an older one. Changes no larger
// than epsilon are stable.
func Direction(older, recent float64, polarity schema.Polarity, epsilon float64) schema.TrendDirection {
	delta := recent - older
	if polarity == schema.LowerIsBetter {
		delta = -delta
	}
	switch {
	case delta > epsilon:
		return schema.Improving
	case delta < -epsilon:
		return schema.Declining
	default:
		return schema.Stable
	}
}

func meanValue(points []datedValue) float64 {
	var total float64
	for _, p := range points {
		total += p.value
	}
	return total / float64(len(points))
}
