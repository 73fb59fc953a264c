package algo

import "github.com/huangsam/agrilens/schema"

// SubScore is one normalized component of a composite score. Applicable is
// false when the source data is missing.
type SubScore struct {
	Key        schema.BreakdownKey
	Value      float64
	Applicable bool
}

// Present builds a SubScore from a value that may be missing.
func Present(key schema.BreakdownKey, v *float64, normalize func(float64) float64) SubScore {
	if v == nil {
		return SubScore{Key: key}
	}
	return SubScore{Key: key, Value: normalize(*v), Applicable: true}
}

// NormalizeFCR maps feed conversion ratio onto [0,100]; lower is better.
func NormalizeFCR(fcr float64) float64 {
	return clamp(100-(fcr-1)*50, 0, 100)
}

// NormalizeWeightGain maps weight gain onto [0,100]; higher is better.
func NormalizeWeightGain(wg float64) float64 {
	return clamp(wg*25, 0, 100)
}

// NormalizeMortality maps mortality percent onto [0,100]; lower is better.
func NormalizeMortality(m float64) float64 {
	return clamp(100-m*10, 0, 100)
}

// Composite combines applicable sub-scores into a weighted mean in [0,100].
// Keys missing from weights count with weight 1. Sub-scores that are not
// applicable, or whose weight is zero, stay out of the denominator. With
// nothing left the composite is 0.
func Composite(subs []SubScore, weights map[schema.BreakdownKey]float64) (float64, map[schema.BreakdownKey]float64) {
	breakdown := make(map[schema.BreakdownKey]float64, len(subs))
	var weighted, totalWeight float64
	for _, s := range subs {
		if !s.Applicable {
			continue
		}
		w := 1.0
		if custom, ok := weights[s.Key]; ok {
			w = custom
		}
		breakdown[s.Key] = s.Value
		if w <= 0 {
			continue
		}
		weighted += w * s.Value
		totalWeight += w
	}
	if totalWeight == 0 {
		return 0, breakdown
	}
	return clamp(weighted/totalWeight, 0, 100), breakdown
}

// Classify maps a score onto the first band whose minimum it reaches. Bands
// must be ordered by descending minimum. Scores below every band take the
// last one.
func Classify(score float64, bands []schema.Band) schema.Rating {
	if len(bands) == 0 {
		return ""
	}
	for _, b := range bands {
		if score >= b.Min {
			return b.Rating
		}
	}
	return bands[len(bands)-1].Rating
}

// Score builds the full breakdown for a set of sub-scores.
func Score(subs []SubScore, weights map[schema.BreakdownKey]float64, bands []schema.Band) schema.ScoreBreakdown {
	score, breakdown := Composite(subs, weights)
	return schema.ScoreBreakdown{
		Scores: breakdown,
		Score:  score,
		Rating: Classify(score, bands),
	}
}

// Points returns the points of the first bucket whose minimum v reaches.
func Points(v float64, buckets []schema.PointBucket) int {
	for _, b := range buckets {
		if v >= b.Min {
			return b.Points
		}
	}
	return 0
}

// ThreatLevel maps a point total onto low, medium or high.
func ThreatLevel(total int, cut schema.ThreatCutoffs) schema.Level {
	switch {
	case total >= cut.High:
		return schema.HighLevel
	case total >= cut.Medium:
		return schema.MediumLevel
	default:
		return schema.LowLevel
	}
}
