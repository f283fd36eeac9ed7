package calculation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ulwant/HitungPajakku-sub001/internal/domain"
)

// WageInput is an employee's annual PPh 21 situation
type WageInput struct {
	MonthlySalary    decimal.Decimal
	MonthlyAllowance decimal.Decimal
	AnnualBonus      decimal.Decimal
	MonthsWorked     int // 1..12, zero means a full year
	Status           domain.PTKPStatus
	HasNPWP          bool
}

// LumpSumInput is a one-off payment taxed on its own schedule
type LumpSumInput struct {
	Amount decimal.Decimal
}

// PTKP resolves the non-taxable threshold, recording an unknown status as defaulted
func (e *Engine) PTKP(status domain.PTKPStatus, res *domain.ComputationResult) decimal.Decimal {
	parsed, ok := domain.ParsePTKPStatus(string(status))
	if !ok {
		e.Logger.Warnf("unknown PTKP status %q, using %s", status, domain.PTKPSingle0)
		res.Defaulted = append(res.Defaulted, "ptkp:"+string(status))
		parsed = domain.PTKPSingle0
	}
	return e.Regulation.Income.PTKP.Threshold(parsed)
}

// TaxableIncome floors net income after PTKP to the configured rounding unit (thousands)
func (e *Engine) TaxableIncome(netIncome, ptkp decimal.Decimal) decimal.Decimal {
	pkp := domain.ClampAmount(netIncome.Sub(ptkp))
	unit := e.Regulation.Income.TaxableRounding
	if !unit.IsPositive() {
		return domain.WholeRupiah(pkp)
	}
	return pkp.Div(unit).Floor().Mul(unit)
}

// OccupationalCost is the biaya jabatan: a rate of gross capped per month worked
func (e *Engine) OccupationalCost(gross decimal.Decimal, months int) decimal.Decimal {
	oc := e.Regulation.Income.OccupationalCost
	limit := oc.MonthlyCap.Mul(decimal.NewFromInt(int64(months)))
	return domain.WholeRupiah(decimal.Min(gross.Mul(oc.Rate), limit))
}

// progressive applies the personal schedule to a PKP and records the breakdown
func (e *Engine) progressive(pkp decimal.Decimal, res *domain.ComputationResult) decimal.Decimal {
	alloc := AllocateBrackets(pkp, e.Regulation.Income.Progressive)
	res.Brackets = alloc.Slices
	return domain.WholeRupiah(alloc.Total)
}

// AnnualWage runs the annual PPh 21 pipeline: gross, occupational cost, deductible
// contributions, PTKP, PKP rounding, progressive schedule and the amount-level surcharge
// for employees without an NPWP.
func (e *Engine) AnnualWage(in WageInput) domain.ComputationResult {
	months := in.MonthsWorked
	if months <= 0 || months > 12 {
		months = 12
	}
	k := decimal.NewFromInt(int64(months))
	monthly := domain.ClampAmount(in.MonthlySalary).Add(domain.ClampAmount(in.MonthlyAllowance))
	gross := monthly.Mul(k).Add(domain.ClampAmount(in.AnnualBonus))

	res := domain.ComputationResult{Kind: domain.KindWageAnnual, Gross: gross}

	occupational := e.OccupationalCost(gross, months)
	res.Deductions = append(res.Deductions, domain.DeductionLine{
		Label: "Biaya jabatan", Amount: occupational, ReducesBase: true,
	})

	contrib := CalculateContributions(monthly, e.Regulation.Contributions).Scale(months)
	for _, l := range contrib.Lines {
		res.Deductions = append(res.Deductions, domain.DeductionLine{
			Label:       l.Label,
			Amount:      l.Amount,
			ReducesBase: l.TaxDeductible,
			Withheld:    true,
		})
	}

	netIncome := domain.ClampAmount(gross.Sub(occupational).Sub(contrib.DeductibleTotal))
	ptkp := e.PTKP(in.Status, &res)
	res.Deductions = append(res.Deductions, domain.DeductionLine{
		Label: fmt.Sprintf("PTKP %s", in.Status), Amount: ptkp, ReducesBase: true,
	})

	res.TaxableBase = e.TaxableIncome(netIncome, ptkp)
	tax := e.progressive(res.TaxableBase, &res)
	res.Tax = ApplyWageSurchargeWithoutNPWP(tax, e.Regulation.Income.NoNPWPMultiplier, in.HasNPWP)
	if !in.HasNPWP && res.Tax.GreaterThan(tax) {
		res.Surcharged = true
		res.Notes = append(res.Notes, "no NPWP: tax x"+e.Regulation.Income.NoNPWPMultiplier.String())
	}
	if months < 12 {
		res.Notes = append(res.Notes, fmt.Sprintf("%d months worked", months))
	}

	e.Logger.Debugf("pph21 annual: gross=%s pkp=%s tax=%s", gross, res.TaxableBase, res.Tax)
	return finishIncome(res)
}

// Severance taxes a one-off severance payment (pesangon) on the severance schedule
func (e *Engine) Severance(in LumpSumInput) domain.ComputationResult {
	return e.lumpSum(domain.KindSeverance, in, e.Regulation.Income.Severance)
}

// RetirementPayout taxes a lump-sum pension or old-age benefit payout
func (e *Engine) RetirementPayout(in LumpSumInput) domain.ComputationResult {
	return e.lumpSum(domain.KindRetirementPayout, in, e.Regulation.Income.RetirementPayout)
}

func (e *Engine) lumpSum(kind domain.ResultKind, in LumpSumInput, schedule domain.Schedule) domain.ComputationResult {
	gross := domain.ClampAmount(in.Amount)
	res := domain.ComputationResult{Kind: kind, Gross: gross, TaxableBase: gross}
	alloc := AllocateBrackets(gross, schedule)
	res.Brackets = alloc.Slices
	res.Tax = domain.WholeRupiah(alloc.Total)
	e.Logger.Debugf("%s: gross=%s tax=%s", kind, gross, res.Tax)
	return finishIncome(res)
}
