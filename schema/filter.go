package schema

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"time"
)

// Constraint is a filter on a single field. The zero value places no
// constraint on the field; Eq builds one that requires an exact value.
type Constraint[T comparable] struct {
	set   bool
	value T
}

// Eq returns a constraint that only admits v.
func Eq[T comparable](v T) Constraint[T] {
	return Constraint[T]{set: true, value: v}
}

// Active reports whether the constraint restricts its field.
func (c Constraint[T]) Active() bool {
	return c.set
}

// Value returns the required value and whether one is set.
func (c Constraint[T]) Value() (T, bool) {
	return c.value, c.set
}

// Matches reports whether v satisfies the constraint.
func (c Constraint[T]) Matches(v T) bool {
	return !c.set || v == c.value
}

// MatchesAny reports whether any of vs satisfies the constraint.
// An inactive constraint matches even an empty slice.
func (c Constraint[T]) MatchesAny(vs []T) bool {
	return !c.set || slices.Contains(vs, c.value)
}

// String renders the constraint the way the command line accepts it.
func (c Constraint[T]) String() string {
	if !c.set {
		return AllOption
	}
	return fmt.Sprint(c.value)
}

// MarshalJSON encodes an inactive constraint as null.
func (c Constraint[T]) MarshalJSON() ([]byte, error) {
	if !c.set {
		return []byte("null"), nil
	}
	return json.Marshal(c.value)
}

// UnmarshalJSON decodes null into an inactive constraint.
func (c *Constraint[T]) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*c = Constraint[T]{}
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*c = Eq(v)
	return nil
}

// dateLayouts are tried in order by ParseDate.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ParseDate parses an ISO 8601 date or timestamp. It never panics; the
// boolean is false for empty or malformed input.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// DateRange is an inclusive [Start, End] window. A nil bound is open and the
// zero value places no constraint at all.
type DateRange struct {
	Start *time.Time `json:"start"`
	End   *time.Time `json:"end"`
}

// Active reports whether either bound is set.
func (r DateRange) Active() bool {
	return r.Start != nil || r.End != nil
}

// Contains reports whether the date falls inside the range. Unparseable
// dates never match an active range.
func (r DateRange) Contains(date string) bool {
	if !r.Active() {
		return true
	}
	t, ok := ParseDate(date)
	if !ok {
		return false
	}
	if r.Start != nil && t.Before(*r.Start) {
		return false
	}
	if r.End != nil && t.After(*r.End) {
		return false
	}
	return true
}

// Overlaps reports whether the interval [start, end] intersects the range.
func (r DateRange) Overlaps(start, end string) bool {
	if !r.Active() {
		return true
	}
	s, okStart := ParseDate(start)
	e, okEnd := ParseDate(end)
	if !okStart || !okEnd {
		return false
	}
	if r.Start != nil && e.Before(*r.Start) {
		return false
	}
	if r.End != nil && s.After(*r.End) {
		return false
	}
	return true
}

// String renders the range for headers and logs.
func (r DateRange) String() string {
	if !r.Active() {
		return AllOption
	}
	bound := func(t *time.Time) string {
		if t == nil {
			return "..."
		}
		return t.Format("2006-01-02")
	}
	return bound(r.Start) + " -> " + bound(r.End)
}

// BrandFilter selects competitor brands.
type BrandFilter struct {
	Category   Constraint[string] `json:"category"`
	Sentiment  Constraint[string] `json:"sentiment"`
	PricePoint Constraint[string] `json:"pricePoint"`
	Region     Constraint[string] `json:"region"`
}

// PromoFilter selects competitor promotions.
type PromoFilter struct {
	PromoType Constraint[string] `json:"promoType"`
	Status    Constraint[string] `json:"promoStatus"`
	Region    Constraint[string] `json:"region"`
	Dates     DateRange          `json:"dateRange"`
}

// SwitchingFilter selects switching-risk records.
type SwitchingFilter struct {
	RiskLevel Constraint[Level]  `json:"riskLevel"`
	Region    Constraint[string] `json:"region"`
	Province  Constraint[string] `json:"province"`
	Dates     DateRange          `json:"dateRange"`
}

// IssueFilter selects dealer issues.
type IssueFilter struct {
	IssueType      Constraint[string] `json:"issueType"`
	Severity       Constraint[Level]  `json:"severity"`
	Status         Constraint[string] `json:"status"`
	Region         Constraint[string] `json:"region"`
	Province       Constraint[string] `json:"province"`
	ActionRequired Constraint[bool]   `json:"actionRequired"`
	Dates          DateRange          `json:"dateRange"`
}

// FarmFilter selects farm registrations.
type FarmFilter struct {
	FarmType Constraint[string] `json:"farmType"`
	Status   Constraint[string] `json:"status"`
	Region   Constraint[string] `json:"region"`
	Province Constraint[string] `json:"province"`
	Verified Constraint[bool]   `json:"verified"`
	Dates    DateRange          `json:"dateRange"`
}

// FeedFilter selects feed performance observations.
type FeedFilter struct {
	FeedBrand Constraint[string] `json:"feedBrand"`
	FeedType  Constraint[string] `json:"feedType"`
	Region    Constraint[string] `json:"region"`
	Province  Constraint[string] `json:"province"`
	Dates     DateRange          `json:"dateRange"`
}

// Filters bundles the per-tracker options resolved from configuration.
type Filters struct {
	Brand     BrandFilter     `json:"brand"`
	Promo     PromoFilter     `json:"promo"`
	Switching SwitchingFilter `json:"switching"`
	Issue     IssueFilter     `json:"issue"`
	Farm      FarmFilter      `json:"farm"`
	Feed      FeedFilter      `json:"feed"`
}
