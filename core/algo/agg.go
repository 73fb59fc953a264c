package algo

// Rate returns matching/total as a percentage in [0, 100]. An empty
// denominator yields 0.
func Rate(matching, total int) float64 {
	if total <= 0 {
		return 0
	}
	return clamp(float64(matching)/float64(total)*100, 0, 100)
}

// Sum adds up a numeric field.
func Sum[T any](records []T, get func(T) float64) float64 {
	var total float64
	for _, r := range records {
		total += get(r)
	}
	return total
}

// Mean averages a numeric field. An empty input yields 0.
func Mean[T any](records []T, get func(T) float64) float64 {
	if len(records) == 0 {
		return 0
	}
	return Sum(records, get) / float64(len(records))
}

// MeanOf averages an optional numeric field over the records where it is
// present. Records without a value are left out of the denominator.
func MeanOf[T any](records []T, get func(T) (float64, bool)) (float64, bool) {
	var total float64
	n := 0
	for _, r := range records {
		if v, ok := get(r); ok {
			total += v
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return total / float64(n), true
}

// CountBy groups records by key and counts each group.
func CountBy[T any, K comparable](records []T, key func(T) K) map[K]int {
	counts := make(map[K]int)
	for _, r := range records {
		counts[key(r)]++
	}
	return counts
}

// SumBy groups records by key and sums a numeric field per group.
func SumBy[T any, K comparable](records []T, key func(T) K, get func(T) float64) map[K]float64 {
	sums := make(map[K]float64)
	for _, r := range records {
		sums[key(r)] += get(r)
	}
	return sums
}

// GroupBy splits records into groups keyed by key, keeping input order inside
// each group. The second result lists the keys in order of first appearance.
func GroupBy[T any, K comparable](records []T, key func(T) K) (map[K][]T, []K) {
	groups := make(map[K][]T)
	var order []K
	for _, r := range records {
		k := key(r)
		if _, ok := groups[k]; !ok {
			order = append(order, k)
		}
		groups[k] = append(groups[k], r)
	}
	return groups, order
}

// MaxBy returns the record with the largest value. Ties keep the first
// occurrence. ok is false for empty input.
func MaxBy[T any](records []T, get func(T) float64) (best T, ok bool) {
	for i, r := range records {
		if i == 0 || get(r) > get(best) {
			best = r
			ok = true
		}
	}
	return best, ok
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
