package calculation

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ulwant/HitungPajakku-sub001/internal/domain"
)

// PenaltyInput is a late payment to price
type PenaltyInput struct {
	Principal  decimal.Decimal
	Range      domain.DateRange
	Parameters *domain.PenaltyParameters // nil uses the regulation defaults
	AdminFine  domain.AdminFineKind
}

// MonthsLate counts accrual periods between due and paid using calendar dates only:
// whole months (year and month difference), plus one when the payment day of month is
// past the due day of month, clamped at zero. Any positive day gap that still counts
// zero months is one period.
func MonthsLate(due, paid time.Time) int {
	dy, dm, dd := due.Date()
	py, pm, pd := paid.Date()

	months := (py-dy)*12 + int(pm-dm)
	if pd > dd {
		months++
	}
	if months < 0 {
		months = 0
	}

	dueDay := time.Date(dy, dm, dd, 0, 0, 0, 0, time.UTC)
	paidDay := time.Date(py, pm, pd, 0, 0, 0, 0, time.UTC)
	if paidDay.After(dueDay) && months == 0 {
		months = 1
	}
	return months
}

// MonthlyRate is (reference + uplift) / 12, kept at full precision for display only.
// The fine itself multiplies before dividing.
func MonthlyRate(p domain.PenaltyParameters) decimal.Decimal {
	p = p.Clamped()
	return p.ReferenceRate.Add(p.UpliftFactor).DivRound(domain.Twelve, 10)
}

// InterestFine is floor(principal * (reference + uplift) * months / 12)
func InterestFine(principal decimal.Decimal, p domain.PenaltyParameters, months int) decimal.Decimal {
	if months <= 0 {
		return decimal.Zero
	}
	p = p.Clamped()
	annual := p.ReferenceRate.Add(p.UpliftFactor)
	fine := domain.ClampAmount(principal).Mul(annual).Mul(decimal.NewFromInt(int64(months)))
	return domain.WholeRupiah(fine.Div(domain.Twelve))
}

// CalculatePenalty prices a late payment. The administrative fine is added regardless of
// how many months have elapsed.
func (e *Engine) CalculatePenalty(in PenaltyInput) domain.PenaltyResult {
	params := e.Regulation.Penalty.Parameters()
	if in.Parameters != nil {
		params = *in.Parameters
	}
	params = params.Clamped()
	principal := domain.ClampAmount(in.Principal)
	months := MonthsLate(in.Range.DueDate, in.Range.PaymentDate)
	interest := InterestFine(principal, params, months)

	out := domain.PenaltyResult{
		Principal:    principal,
		MonthsLate:   months,
		MonthlyRate:  MonthlyRate(params),
		InterestFine: interest,
		AdminFine:    decimal.Zero,
		Parameters:   params,
		Range:        in.Range,
	}

	kind := in.AdminFine
	if kind == "" {
		kind = domain.AdminFineNone
	}
	if fine, ok := e.Regulation.Penalty.AdminFines[kind]; ok {
		out.AdminFine = fine
	} else {
		e.Logger.Warnf("unknown administrative fine %q, using zero", kind)
		out.Defaulted = append(out.Defaulted, "admin_fine:"+string(kind))
	}

	out.TotalPenalty = interest.Add(out.AdminFine)
	out.TotalPayable = principal.Add(out.TotalPenalty)
	out.Result = domain.ComputationResult{
		Kind:          domain.KindPenalty,
		Gross:         principal,
		TaxableBase:   principal,
		Tax:           out.TotalPenalty,
		Net:           out.TotalPayable,
		EffectiveRate: effectiveRate(out.TotalPenalty, principal),
		Defaulted:     out.Defaulted,
	}
	e.Logger.Debugf("penalty: principal=%s months=%d interest=%s admin=%s", principal, months, interest, out.AdminFine)
	return out
}
