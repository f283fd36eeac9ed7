package calculation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ulwant/HitungPajakku-sub001/internal/domain"
)

// NormInput is a professional's annual gross receipts under the deemed-profit norm (NPPN)
type NormInput struct {
	Gross      decimal.Decimal
	Profession domain.ProfessionCategory
	Region     domain.RegionTier
	Status     domain.PTKPStatus
}

// ProfessionalNorm deems a percentage of gross as net income, subtracts PTKP and applies
// the progressive schedule. No contributions are deducted.
func (e *Engine) ProfessionalNorm(in NormInput) domain.ComputationResult {
	gross := domain.ClampAmount(in.Gross)
	res := domain.ComputationResult{Kind: domain.KindProfessionalNorm, Gross: gross}

	norm := e.lookup("norm", e.NormRate(in.Profession, in.Region), &res)
	deemed := domain.WholeRupiah(gross.Mul(norm))
	res.Deductions = append(res.Deductions, domain.DeductionLine{
		Label:       fmt.Sprintf("Norma %s%% (%s, %s)", norm.Mul(domain.Hundred).String(), in.Profession, in.Region),
		Amount:      gross.Sub(deemed),
		ReducesBase: true,
	})

	ptkp := e.PTKP(in.Status, &res)
	res.Deductions = append(res.Deductions, domain.DeductionLine{
		Label: fmt.Sprintf("PTKP %s", in.Status), Amount: ptkp, ReducesBase: true,
	})

	res.TaxableBase = e.TaxableIncome(deemed, ptkp)
	res.Tax = e.progressive(res.TaxableBase, &res)
	e.Logger.Debugf("pph norma: gross=%s deemed=%s pkp=%s tax=%s", gross, deemed, res.TaxableBase, res.Tax)
	return finishIncome(res)
}
