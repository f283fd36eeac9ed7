package api

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ulwant/HitungPajakku-sub001/internal/calculation"
	"github.com/ulwant/HitungPajakku-sub001/internal/compare"
	"github.com/ulwant/HitungPajakku-sub001/internal/domain"
)

const dateLayout = "2006-01-02"

// Amounts arrive as JSON numbers or strings; validation reads them as float64 through the
// custom type func registered in newValidator.

type WageRequest struct {
	MonthlySalary    decimal.Decimal `json:"monthly_salary" validate:"gte=0"`
	MonthlyAllowance decimal.Decimal `json:"monthly_allowance" validate:"gte=0"`
	AnnualBonus      decimal.Decimal `json:"annual_bonus" validate:"gte=0"`
	MonthsWorked     int             `json:"months_worked" validate:"gte=0,lte=12"`
	Status           string          `json:"status"`
	HasNPWP          bool            `json:"has_npwp"`
}

func (r WageRequest) input() calculation.WageInput {
	return calculation.WageInput{
		MonthlySalary:    r.MonthlySalary,
		MonthlyAllowance: r.MonthlyAllowance,
		AnnualBonus:      r.AnnualBonus,
		MonthsWorked:     r.MonthsWorked,
		Status:           status(r.Status),
		HasNPWP:          r.HasNPWP,
	}
}

type LumpSumRequest struct {
	Amount decimal.Decimal `json:"amount" validate:"gte=0"`
}

type WithholdingRequest struct {
	Amount   decimal.Decimal `json:"amount" validate:"gte=0"`
	Category string          `json:"category" validate:"required"`
	HasNPWP  bool            `json:"has_npwp"`
}

func (r WithholdingRequest) input() calculation.WithholdingInput {
	c, _ := domain.ParseWithholdingCategory(r.Category)
	return calculation.WithholdingInput{Amount: r.Amount, Category: c, HasNPWP: r.HasNPWP}
}

type FinalRequest struct {
	Amount   decimal.Decimal `json:"amount" validate:"gte=0"`
	Category string          `json:"category" validate:"required"`
}

func (r FinalRequest) input() calculation.FinalInput {
	c, _ := domain.ParseFinalCategory(r.Category)
	return calculation.FinalInput{Amount: r.Amount, Category: c}
}

type SmallBusinessRequest struct {
	Turnover      decimal.Decimal `json:"turnover" validate:"gte=0"`
	PriorTurnover decimal.Decimal `json:"prior_turnover" validate:"gte=0"`
}

type InvestmentRequest struct {
	Amount decimal.Decimal `json:"amount" validate:"gte=0"`
	Asset  string          `json:"asset" validate:"required"`
}

func (r InvestmentRequest) input() calculation.InvestmentInput {
	a, _ := domain.ParseInvestmentAsset(r.Asset)
	return calculation.InvestmentInput{Amount: r.Amount, Asset: a}
}

type VATRequest struct {
	Price      decimal.Decimal `json:"price" validate:"gte=0"`
	Inclusive  bool            `json:"inclusive"`
	OtherValue bool            `json:"other_value"`
}

type LuxuryRequest struct {
	Price     decimal.Decimal `json:"price" validate:"gte=0"`
	Category  string          `json:"category" validate:"required"`
	Inclusive bool            `json:"inclusive"`
}

func (r LuxuryRequest) input() calculation.LuxuryInput {
	c, _ := domain.ParseLuxuryCategory(r.Category)
	return calculation.LuxuryInput{Price: r.Price, Category: c, Inclusive: r.Inclusive}
}

type ImportRequest struct {
	CIF      decimal.Decimal `json:"cif" validate:"gte=0"`
	Category string          `json:"category" validate:"required"`
	HasAPI   bool            `json:"has_api"`
	HasNPWP  bool            `json:"has_npwp"`
}

func (r ImportRequest) input() calculation.ImportInput {
	c, _ := domain.ParseImportCategory(r.Category)
	return calculation.ImportInput{CIF: r.CIF, Category: c, HasAPI: r.HasAPI, HasNPWP: r.HasNPWP}
}

type NormRequest struct {
	Gross      decimal.Decimal `json:"gross" validate:"gte=0"`
	Profession string          `json:"profession" validate:"required"`
	Region     string          `json:"region" validate:"required"`
	Status     string          `json:"status"`
}

func (r NormRequest) input() calculation.NormInput {
	p, _ := domain.ParseProfessionCategory(r.Profession)
	reg, _ := domain.ParseRegionTier(r.Region)
	return calculation.NormInput{Gross: r.Gross, Profession: p, Region: reg, Status: status(r.Status)}
}

// PenaltyRequest leaves the interest parameters optional; both must be set to override the
// regulation defaults.
type PenaltyRequest struct {
	Principal     decimal.Decimal  `json:"principal" validate:"gte=0"`
	DueDate       string           `json:"due_date" validate:"required,datetime=2006-01-02"`
	PaymentDate   string           `json:"payment_date" validate:"required,datetime=2006-01-02"`
	ReferenceRate *decimal.Decimal `json:"reference_rate,omitempty" validate:"omitempty,gte=0,lte=1"`
	UpliftFactor  *decimal.Decimal `json:"uplift_factor,omitempty" validate:"omitempty,gte=0,lte=1"`
	AdminFine     string           `json:"admin_fine"`
}

func (r PenaltyRequest) input() calculation.PenaltyInput {
	due, _ := time.Parse(dateLayout, r.DueDate)
	paid, _ := time.Parse(dateLayout, r.PaymentDate)
	fine, _ := domain.ParseAdminFineKind(r.AdminFine)

	in := calculation.PenaltyInput{
		Principal: r.Principal,
		Range:     domain.DateRange{DueDate: due, PaymentDate: paid},
		AdminFine: fine,
	}
	if r.ReferenceRate != nil && r.UpliftFactor != nil {
		in.Parameters = &domain.PenaltyParameters{ReferenceRate: *r.ReferenceRate, UpliftFactor: *r.UpliftFactor}
	}
	return in
}

// ProfileRequest is a flattened profile; Kind selects which fields apply
type ProfileRequest struct {
	Kind             string          `json:"kind" validate:"required,oneof=employee freelancer small_business"`
	Name             string          `json:"name" validate:"required"`
	MonthlySalary    decimal.Decimal `json:"monthly_salary" validate:"gte=0"`
	MonthlyAllowance decimal.Decimal `json:"monthly_allowance" validate:"gte=0"`
	AnnualBonus      decimal.Decimal `json:"annual_bonus" validate:"gte=0"`
	MonthsWorked     int             `json:"months_worked" validate:"gte=0,lte=12"`
	HasNPWP          bool            `json:"has_npwp"`
	Gross            decimal.Decimal `json:"gross" validate:"gte=0"`
	Profession       string          `json:"profession"`
	Region           string          `json:"region"`
	Turnover         decimal.Decimal `json:"turnover" validate:"gte=0"`
	Status           string          `json:"status"`
}

func (r ProfileRequest) profile() compare.Profile {
	switch compare.Kind(r.Kind) {
	case compare.KindEmployee:
		return compare.EmployeeProfile{
			Name:             r.Name,
			MonthlySalary:    r.MonthlySalary,
			MonthlyAllowance: r.MonthlyAllowance,
			AnnualBonus:      r.AnnualBonus,
			MonthsWorked:     r.MonthsWorked,
			Status:           status(r.Status),
			HasNPWP:          r.HasNPWP,
		}
	case compare.KindFreelancer:
		p, _ := domain.ParseProfessionCategory(r.Profession)
		reg, _ := domain.ParseRegionTier(r.Region)
		return compare.FreelancerProfile{Name: r.Name, Gross: r.Gross, Profession: p, Region: reg, Status: status(r.Status)}
	case compare.KindSmallBusiness:
		return compare.SmallBusinessProfile{Name: r.Name, Turnover: r.Turnover}
	}
	return nil
}

// CompareRequest compares profiles side by side. With names what-if templates; when set,
// the Base profile (default the first) is compared against its variants instead.
type CompareRequest struct {
	Profiles []ProfileRequest `json:"profiles" validate:"required,min=1,dive"`
	Base     string           `json:"base"`
	With     []string         `json:"with" validate:"omitempty,dive,required"`
}

// GrossUpRequest asks for the income every profile needs to reach Target
type GrossUpRequest struct {
	Profiles []ProfileRequest `json:"profiles" validate:"required,min=1,dive"`
	Metric   string           `json:"metric" validate:"omitempty,oneof=net tax"`
	Target   decimal.Decimal  `json:"target" validate:"gte=0"`
}

type ProjectRequest struct {
	Profile       ProfileRequest  `json:"profile"`
	GrowthRate    decimal.Decimal `json:"growth_rate" validate:"gt=-1"`
	InflationRate decimal.Decimal `json:"inflation_rate" validate:"gt=-1"`
	HorizonYears  int             `json:"horizon_years" validate:"gte=1,lte=50"`
}

func (r ProjectRequest) parameters() domain.ProjectionParameters {
	return domain.ProjectionParameters{GrowthRate: r.GrowthRate, InflationRate: r.InflationRate, HorizonYears: r.HorizonYears}
}

// status defaults an empty PTKP status to TK/0 and normalizes known spellings
func status(s string) domain.PTKPStatus {
	if s == "" {
		return domain.PTKPSingle0
	}
	if st, ok := domain.ParsePTKPStatus(s); ok {
		return st
	}
	return domain.PTKPStatus(s)
}
