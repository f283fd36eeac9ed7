package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/ulwant/HitungPajakku-sub001/internal/domain"
)

// YearEvaluator runs a complete pipeline with every nominal income component multiplied
// by growth. It must build its inputs fresh on every call.
type YearEvaluator func(growth decimal.Decimal) domain.ComputationResult

// CompoundFactor returns (1 + rate)^years by repeated multiplication. A rate at or below
// -100% collapses the factor to zero.
func CompoundFactor(rate decimal.Decimal, years int) decimal.Decimal {
	step := domain.One.Add(rate)
	if step.IsNegative() {
		step = decimal.Zero
	}
	factor := domain.One
	for i := 0; i < years; i++ {
		factor = factor.Mul(step)
	}
	return factor
}

// ScaleAmount grows an amount by factor and floors it to whole rupiah. A factor of exactly
// one returns the amount untouched so the base year reproduces the unscaled run.
func ScaleAmount(amount, factor decimal.Decimal) decimal.Decimal {
	if factor.Equal(domain.One) {
		return amount
	}
	return domain.WholeRupiah(amount.Mul(factor))
}

// Deflate converts a nominal amount into base-year money. A discount factor at or below
// zero (inflation at or below -100%) has no base-year value, so the nominal amount is
// returned unchanged. Callers reject such inflation rates before projecting.
func Deflate(nominal, discount decimal.Decimal) decimal.Decimal {
	if !discount.IsPositive() || discount.Equal(domain.One) {
		return nominal
	}
	return domain.WholeRupiah(nominal.Div(discount))
}

// Project evaluates the pipeline once per year offset in [0, horizon). Years share nothing:
// each evaluation starts from the baseline scaled by that year's growth factor.
func Project(name string, params domain.ProjectionParameters, eval YearEvaluator) domain.ProjectionResult {
	if params.HorizonYears < 1 {
		params.HorizonYears = 1
	}
	out := domain.ProjectionResult{
		Name:         name,
		Parameters:   params,
		TotalTax:     decimal.Zero,
		TotalNet:     decimal.Zero,
		TotalRealNet: decimal.Zero,
	}

	for y := 0; y < params.HorizonYears; y++ {
		growth := CompoundFactor(params.GrowthRate, y)
		discount := CompoundFactor(params.InflationRate, y)
		res := eval(growth)

		year := domain.ProjectionYear{
			Offset:         y,
			GrowthFactor:   growth,
			DiscountFactor: discount,
			Result:         res,
			RealTax:        Deflate(res.Tax, discount),
			RealNet:        Deflate(res.Net, discount),
		}
		out.Years = append(out.Years, year)
		out.TotalTax = out.TotalTax.Add(res.Tax)
		out.TotalNet = out.TotalNet.Add(res.Net)
		out.TotalRealNet = out.TotalRealNet.Add(year.RealNet)
	}
	return out
}
