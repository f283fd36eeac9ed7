package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ResultKind names the pipeline that produced a ComputationResult
type ResultKind string

const (
	KindWageAnnual       ResultKind = "pph21_annual"
	KindSeverance        ResultKind = "pph21_severance"
	KindRetirementPayout ResultKind = "pph21_retirement_payout"
	KindWithholding      ResultKind = "pph23"
	KindFinal            ResultKind = "pph_final"
	KindSmallBusiness    ResultKind = "pph_final_umkm"
	KindInvestment       ResultKind = "pph_final_investment"
	KindVAT              ResultKind = "ppn"
	KindLuxury           ResultKind = "ppnbm"
	KindImport           ResultKind = "import"
	KindProfessionalNorm ResultKind = "pph_norma"
	KindPenalty          ResultKind = "penalty"
)

// DeductionLine is one labelled amount between gross and net.
// ReducesBase marks amounts subtracted before the taxable base; Withheld marks amounts that
// actually leave the taxpayer's pocket and therefore reduce net. A notional deduction such as
// the occupational cost reduces the base without being withheld.
type DeductionLine struct {
	Label       string          `json:"label" yaml:"label"`
	Amount      decimal.Decimal `json:"amount" yaml:"amount"`
	ReducesBase bool            `json:"reducesBase" yaml:"reduces_base"`
	Withheld    bool            `json:"withheld" yaml:"withheld"`
}

// BracketSlice is the part of a base taxed within one bracket
type BracketSlice struct {
	Lower decimal.Decimal `json:"lower" yaml:"lower"`
	Upper decimal.Decimal `json:"upper,omitempty" yaml:"upper,omitempty"`
	Taxed decimal.Decimal `json:"taxed" yaml:"taxed"`
	Rate  decimal.Decimal `json:"rate" yaml:"rate"`
	Tax   decimal.Decimal `json:"tax" yaml:"tax"`
}

// TaxLine is one tax component of a multi-tax result (import duty, VAT on imports, ...)
type TaxLine struct {
	Label  string          `json:"label" yaml:"label"`
	Base   decimal.Decimal `json:"base" yaml:"base"`
	Rate   decimal.Decimal `json:"rate" yaml:"rate"`
	Amount decimal.Decimal `json:"amount" yaml:"amount"`
}

// ComputationResult is the immutable record handed to presentation and persistence.
// For income taxes Net = Gross - Tax - sum(withheld deductions). For consumption taxes
// (VAT, luxury, import) and penalties Gross is the price, customs value or principal, Tax the
// total levied and Net the total payable, i.e. Gross + Tax.
type ComputationResult struct {
	Kind          ResultKind      `json:"kind" yaml:"kind"`
	Gross         decimal.Decimal `json:"gross" yaml:"gross"`
	Deductions    []DeductionLine `json:"deductions,omitempty" yaml:"deductions,omitempty"`
	TaxableBase   decimal.Decimal `json:"taxableBase" yaml:"taxable_base"`
	Tax           decimal.Decimal `json:"tax" yaml:"tax"`
	Net           decimal.Decimal `json:"net" yaml:"net"`
	EffectiveRate decimal.Decimal `json:"effectiveRate" yaml:"effective_rate"`
	Brackets      []BracketSlice  `json:"brackets,omitempty" yaml:"brackets,omitempty"`
	TaxLines      []TaxLine       `json:"taxLines,omitempty" yaml:"tax_lines,omitempty"`
	Surcharged    bool            `json:"surcharged,omitempty" yaml:"surcharged,omitempty"`
	Defaulted     []string        `json:"defaulted,omitempty" yaml:"defaulted,omitempty"`
	Notes         []string        `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// WithheldTotal sums the deductions that left the taxpayer's pocket
func (r ComputationResult) WithheldTotal() decimal.Decimal {
	total := decimal.Zero
	for _, d := range r.Deductions {
		if d.Withheld {
			total = total.Add(d.Amount)
		}
	}
	return total
}

// BaseReductionTotal sums the deductions subtracted before the taxable base
func (r ComputationResult) BaseReductionTotal() decimal.Decimal {
	total := decimal.Zero
	for _, d := range r.Deductions {
		if d.ReducesBase {
			total = total.Add(d.Amount)
		}
	}
	return total
}

// AddsToGross reports whether Net is gross plus tax (consumption taxes and penalties)
func (r ComputationResult) AddsToGross() bool {
	switch r.Kind {
	case KindVAT, KindLuxury, KindImport, KindPenalty:
		return true
	default:
		return false
	}
}

// ReconstructNet recomputes Net from the other fields of the record
func (r ComputationResult) ReconstructNet() decimal.Decimal {
	if r.AddsToGross() {
		return r.Gross.Add(r.Tax)
	}
	return r.Gross.Sub(r.Tax).Sub(r.WithheldTotal())
}

// PenaltyParameters are annual rates; the monthly rate is (reference + uplift) / 12
type PenaltyParameters struct {
	ReferenceRate decimal.Decimal `json:"referenceRate" yaml:"reference_rate"`
	UpliftFactor  decimal.Decimal `json:"upliftFactor" yaml:"uplift_factor"`
}

// Clamped returns the parameters with negative rates raised to zero
func (p PenaltyParameters) Clamped() PenaltyParameters {
	return PenaltyParameters{ReferenceRate: ClampRate(p.ReferenceRate), UpliftFactor: ClampRate(p.UpliftFactor)}
}

// DateRange is a due date and a payment date. Only the calendar date of each is used.
type DateRange struct {
	DueDate     time.Time `json:"dueDate" yaml:"due_date"`
	PaymentDate time.Time `json:"paymentDate" yaml:"payment_date"`
}

// PenaltyResult is the outcome of an interest penalty computation
type PenaltyResult struct {
	Principal    decimal.Decimal   `json:"principal"`
	MonthsLate   int               `json:"monthsLate"`
	MonthlyRate  decimal.Decimal   `json:"monthlyRate"`
	InterestFine decimal.Decimal   `json:"interestFine"`
	AdminFine    decimal.Decimal   `json:"adminFine"`
	TotalPenalty decimal.Decimal   `json:"totalPenalty"`
	TotalPayable decimal.Decimal   `json:"totalPayable"`
	Parameters   PenaltyParameters `json:"parameters"`
	Range        DateRange         `json:"range"`
	Defaulted    []string          `json:"defaulted,omitempty"`
	Result       ComputationResult `json:"result"`
}

// ProjectionParameters drive the multi-year compounder
type ProjectionParameters struct {
	GrowthRate    decimal.Decimal `json:"growthRate" yaml:"growth_rate"`
	InflationRate decimal.Decimal `json:"inflationRate" yaml:"inflation_rate"`
	HorizonYears  int             `json:"horizonYears" yaml:"horizon_years"`
}

// ProjectionYear is one year offset of a projection
type ProjectionYear struct {
	Offset         int               `json:"offset"`
	GrowthFactor   decimal.Decimal   `json:"growthFactor"`
	DiscountFactor decimal.Decimal   `json:"discountFactor"`
	Result         ComputationResult `json:"result"`
	RealTax        decimal.Decimal   `json:"realTax"`
	RealNet        decimal.Decimal   `json:"realNet"`
}

// ProjectionResult is a full multi-year series
type ProjectionResult struct {
	Name         string               `json:"name"`
	Parameters   ProjectionParameters `json:"parameters"`
	Years        []ProjectionYear     `json:"years"`
	TotalTax     decimal.Decimal      `json:"totalTax"`
	TotalNet     decimal.Decimal      `json:"totalNet"`
	TotalRealNet decimal.Decimal      `json:"totalRealNet"`
}
