package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/ulwant/HitungPajakku-sub001/internal/domain"
)

// FinalInput is a payment taxed under PPh final 4(2)
type FinalInput struct {
	Amount   decimal.Decimal
	Category domain.FinalCategory
}

// SmallBusinessInput is a period's turnover under the flat-final UMKM regime.
// PriorTurnover is the year-to-date turnover before this period; only the part of the
// cumulative turnover above the threshold is taxed.
type SmallBusinessInput struct {
	Turnover      decimal.Decimal
	PriorTurnover decimal.Decimal
}

// InvestmentInput is an investment gain or transaction value taxed at a final rate
type InvestmentInput struct {
	Amount decimal.Decimal
	Asset  domain.InvestmentAsset
}

// Final computes PPh final 4(2) on a gross amount
func (e *Engine) Final(in FinalInput) domain.ComputationResult {
	gross := domain.ClampAmount(in.Amount)
	res := domain.ComputationResult{Kind: domain.KindFinal, Gross: gross, TaxableBase: gross}
	rate := e.lookup("final", e.FinalRate(in.Category), &res)
	res.Tax = domain.WholeRupiah(gross.Mul(rate))
	res.TaxLines = []domain.TaxLine{{Label: "PPh final " + string(in.Category), Base: gross, Rate: rate, Amount: res.Tax}}
	return finishIncome(res)
}

// SmallBusinessTaxable is the part of turnover that falls above the threshold once
// prior turnover is counted
func (e *Engine) SmallBusinessTaxable(turnover, prior decimal.Decimal) decimal.Decimal {
	turnover = domain.ClampAmount(turnover)
	prior = domain.ClampAmount(prior)
	threshold := e.Regulation.SmallBusiness.Threshold
	cumulative := prior.Add(turnover)
	if !cumulative.GreaterThan(threshold) {
		return decimal.Zero
	}
	return decimal.Min(turnover, cumulative.Sub(threshold))
}

// SmallBusiness computes the flat-final UMKM tax: zero up to the threshold, the flat
// rate on everything above it
func (e *Engine) SmallBusiness(in SmallBusinessInput) domain.ComputationResult {
	gross := domain.ClampAmount(in.Turnover)
	rules := e.Regulation.SmallBusiness
	res := domain.ComputationResult{Kind: domain.KindSmallBusiness, Gross: gross}
	res.TaxableBase = e.SmallBusinessTaxable(gross, in.PriorTurnover)
	res.Tax = domain.WholeRupiah(res.TaxableBase.Mul(rules.Rate))
	res.TaxLines = []domain.TaxLine{{Label: "PPh final UMKM", Base: res.TaxableBase, Rate: rules.Rate, Amount: res.Tax}}
	if res.TaxableBase.IsZero() {
		res.Notes = append(res.Notes, "cumulative turnover within the tax-free threshold")
	}
	return finishIncome(res)
}

// Investment computes the final tax on an investment amount
func (e *Engine) Investment(in InvestmentInput) domain.ComputationResult {
	gross := domain.ClampAmount(in.Amount)
	res := domain.ComputationResult{Kind: domain.KindInvestment, Gross: gross, TaxableBase: gross}
	rate := e.lookup("investment", e.InvestmentRate(in.Asset), &res)
	res.Tax = domain.WholeRupiah(gross.Mul(rate))
	res.TaxLines = []domain.TaxLine{{Label: "PPh final " + string(in.Asset), Base: gross, Rate: rate, Amount: res.Tax}}
	return finishIncome(res)
}
