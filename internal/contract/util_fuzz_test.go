package contract

import (
	"testing"
)

// FuzzParseBound fuzzes the date bound parser with random strings.
func FuzzParseBound(f *testing.F) {
	seeds := []string{"2024-01-01", "2024-01-01T10:00:00Z", "2024-13-45", "", "not a date", "2024-01-01 10:00:00"}
	for _, seed := range seeds {
		f.Add(seed, true)
		f.Add(seed, false)
	}

	f.Fuzz(func(t *testing.T, s string, endOfDay bool) {
		start, err := ParseBound(s, false)
		if err != nil {
			return
		}
		end, err := ParseBound(s, endOfDay)
		if err != nil {
			t.Fatalf("bound %q parsed once but not twice: %v", s, err)
		}
		if end.Before(start) {
			t.Fatalf("end of day %v before start %v", end, start)
		}
	})
}

// FuzzParseConstraint fuzzes the filter flag parser.
func FuzzParseConstraint(f *testing.F) {
	for _, seed := range []string{"all", "=all", "", "swine", "="} {
		f.Add(seed)
	}

	f.Fuzz(func(_ *testing.T, s string) {
		_ = ParseConstraint(s)
		_, _ = ParseLevelConstraint(s)
		_, _ = ParseBoolConstraint(s)
	})
}
