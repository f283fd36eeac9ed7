package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/ulwant/HitungPajakku-sub001/internal/domain"
)

// Allocation is the result of spreading a base across a marginal schedule
type Allocation struct {
	Base   decimal.Decimal
	Total  decimal.Decimal
	Slices []domain.BracketSlice
}

// AllocateBrackets spreads base across the schedule tier by tier. Each tier takes
// min(remaining, width), so a base sitting exactly on a boundary stays in the lower tier.
// The final tier must be unbounded; a schedule without one under-allocates.
func AllocateBrackets(base decimal.Decimal, schedule domain.Schedule) Allocation {
	base = domain.ClampAmount(base)
	out := Allocation{Base: base, Total: decimal.Zero}

	remaining := base
	lower := decimal.Zero
	for _, b := range schedule.Brackets {
		if !remaining.IsPositive() {
			break
		}
		slice := remaining
		var upper decimal.Decimal
		if !b.Unbounded {
			slice = decimal.Min(remaining, b.Width)
			upper = lower.Add(b.Width)
		}
		tax := slice.Mul(b.Rate)
		out.Total = out.Total.Add(tax)
		out.Slices = append(out.Slices, domain.BracketSlice{
			Lower: lower,
			Upper: upper,
			Taxed: slice,
			Rate:  b.Rate,
			Tax:   tax,
		})
		remaining = remaining.Sub(slice)
		lower = upper
	}
	return out
}

// Taxed returns the sum of every slice; it equals Base for a well-formed schedule
func (a Allocation) Taxed() decimal.Decimal {
	total := decimal.Zero
	for _, s := range a.Slices {
		total = total.Add(s.Taxed)
	}
	return total
}
