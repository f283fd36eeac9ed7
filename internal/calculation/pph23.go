package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/ulwant/HitungPajakku-sub001/internal/domain"
)

// WithholdingInput is a PPh 23 payment
type WithholdingInput struct {
	Amount   decimal.Decimal
	Category domain.WithholdingCategory
	HasNPWP  bool
}

// Withholding computes PPh 23 on a gross payment. Without an NPWP the rate doubles.
func (e *Engine) Withholding(in WithholdingInput) domain.ComputationResult {
	gross := domain.ClampAmount(in.Amount)
	res := domain.ComputationResult{Kind: domain.KindWithholding, Gross: gross, TaxableBase: gross}

	rate := e.lookup("pph23", e.WithholdingRate(in.Category, in.HasNPWP), &res)
	res.Tax = domain.WholeRupiah(gross.Mul(rate))
	res.TaxLines = []domain.TaxLine{{Label: "PPh 23 " + string(in.Category), Base: gross, Rate: rate, Amount: res.Tax}}
	if !in.HasNPWP && rate.IsPositive() {
		res.Surcharged = true
		res.Notes = append(res.Notes, "no NPWP: rate doubled")
	}
	return finishIncome(res)
}
