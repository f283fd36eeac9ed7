package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Bracket is one tier of a marginal schedule. Width is the size of the tier, not its upper
// boundary; the last tier of a schedule must be Unbounded.
type Bracket struct {
	Width     decimal.Decimal `yaml:"width,omitempty" json:"width,omitempty"`
	Rate      decimal.Decimal `yaml:"rate" json:"rate"`
	Unbounded bool            `yaml:"unbounded,omitempty" json:"unbounded,omitempty"`
}

// Schedule is an ordered marginal bracket list
type Schedule struct {
	Name     string    `yaml:"name" json:"name"`
	Brackets []Bracket `yaml:"brackets" json:"brackets"`
}

// Validate checks the configuration invariants of a schedule: at least one tier, positive
// widths, rates within 0..1 and non-decreasing, and an unbounded final tier only.
// Allocation never calls this; a schedule that fails it is a configuration defect.
func (s Schedule) Validate() error {
	if len(s.Brackets) == 0 {
		return fmt.Errorf("schedule %q has no brackets", s.Name)
	}
	prev := decimal.Zero
	for i, b := range s.Brackets {
		last := i == len(s.Brackets)-1
		if b.Unbounded && !last {
			return fmt.Errorf("schedule %q: bracket %d is unbounded but not last", s.Name, i)
		}
		if last && !b.Unbounded {
			return fmt.Errorf("schedule %q: final bracket must be unbounded", s.Name)
		}
		if !b.Unbounded && !b.Width.IsPositive() {
			return fmt.Errorf("schedule %q: bracket %d width must be positive", s.Name, i)
		}
		if b.Rate.IsNegative() || b.Rate.GreaterThan(One) {
			return fmt.Errorf("schedule %q: bracket %d rate %s outside 0..1", s.Name, i, b.Rate)
		}
		if b.Rate.LessThan(prev) {
			return fmt.Errorf("schedule %q: bracket %d rate decreases", s.Name, i)
		}
		prev = b.Rate
	}
	return nil
}

// Boundaries returns the cumulative upper boundary of every bounded tier
func (s Schedule) Boundaries() []decimal.Decimal {
	var out []decimal.Decimal
	cum := decimal.Zero
	for _, b := range s.Brackets {
		if b.Unbounded {
			break
		}
		cum = cum.Add(b.Width)
		out = append(out, cum)
	}
	return out
}
