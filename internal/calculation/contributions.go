package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/ulwant/HitungPajakku-sub001/internal/domain"
)

// ContributionLine is one component's contribution for a base
type ContributionLine struct {
	Label         string
	Base          decimal.Decimal // base after the component cap
	Rate          decimal.Decimal
	Amount        decimal.Decimal
	Capped        bool
	TaxDeductible bool
}

// ContributionResult itemizes parallel capped contributions
type ContributionResult struct {
	Lines           []ContributionLine
	Total           decimal.Decimal
	DeductibleTotal decimal.Decimal
}

// CalculateContributions computes min(base, cap) * rate per component. Once base passes a
// component's cap that component stays at cap * rate however far base grows.
func CalculateContributions(base decimal.Decimal, components []domain.ContributionComponent) ContributionResult {
	base = domain.ClampAmount(base)
	out := ContributionResult{Total: decimal.Zero, DeductibleTotal: decimal.Zero}
	for _, c := range components {
		capped := base
		isCapped := false
		if c.Cap.IsPositive() && base.GreaterThan(c.Cap) {
			capped = c.Cap
			isCapped = true
		}
		amount := domain.WholeRupiah(capped.Mul(domain.ClampRate(c.Rate)))
		out.Lines = append(out.Lines, ContributionLine{
			Label:         c.Label,
			Base:          capped,
			Rate:          c.Rate,
			Amount:        amount,
			Capped:        isCapped,
			TaxDeductible: c.TaxDeductible,
		})
		out.Total = out.Total.Add(amount)
		if c.TaxDeductible {
			out.DeductibleTotal = out.DeductibleTotal.Add(amount)
		}
	}
	return out
}

// Scale multiplies every line by n, used to annualize a monthly contribution run
func (r ContributionResult) Scale(n int) ContributionResult {
	k := decimal.NewFromInt(int64(n))
	out := ContributionResult{Total: r.Total.Mul(k), DeductibleTotal: r.DeductibleTotal.Mul(k)}
	for _, l := range r.Lines {
		l.Amount = l.Amount.Mul(k)
		out.Lines = append(out.Lines, l)
	}
	return out
}
