package compare

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ulwant/HitungPajakku-sub001/internal/domain"
)

// Kind tags the three profile variants
type Kind string

const (
	KindEmployee      Kind = "employee"
	KindFreelancer    Kind = "freelancer"
	KindSmallBusiness Kind = "small_business"
)

// AllKinds lists every profile kind
func AllKinds() []Kind {
	return []Kind{KindEmployee, KindFreelancer, KindSmallBusiness}
}

// Profile is one independently configured taxpayer situation. The set of variants is
// closed: only the types in this package implement it.
type Profile interface {
	ProfileName() string
	Kind() Kind
	sealed()
}

// EmployeeProfile is a salaried employee under annual PPh 21 withholding
type EmployeeProfile struct {
	Name             string            `yaml:"name" json:"name"`
	MonthlySalary    decimal.Decimal   `yaml:"monthly_salary" json:"monthlySalary"`
	MonthlyAllowance decimal.Decimal   `yaml:"monthly_allowance" json:"monthlyAllowance"`
	AnnualBonus      decimal.Decimal   `yaml:"annual_bonus" json:"annualBonus"`
	MonthsWorked     int               `yaml:"months_worked" json:"monthsWorked"`
	Status           domain.PTKPStatus `yaml:"status" json:"status"`
	HasNPWP          bool              `yaml:"has_npwp" json:"hasNPWP"`
}

// FreelancerProfile is a professional taxed on deemed (norm-based) net income
type FreelancerProfile struct {
	Name       string                    `yaml:"name" json:"name"`
	Gross      decimal.Decimal           `yaml:"gross" json:"gross"`
	Profession domain.ProfessionCategory `yaml:"profession" json:"profession"`
	Region     domain.RegionTier         `yaml:"region" json:"region"`
	Status     domain.PTKPStatus         `yaml:"status" json:"status"`
}

// SmallBusinessProfile is a business under the flat-final turnover regime
type SmallBusinessProfile struct {
	Name     string          `yaml:"name" json:"name"`
	Turnover decimal.Decimal `yaml:"turnover" json:"turnover"`
}

func (p EmployeeProfile) ProfileName() string      { return p.Name }
func (p FreelancerProfile) ProfileName() string    { return p.Name }
func (p SmallBusinessProfile) ProfileName() string { return p.Name }

func (EmployeeProfile) Kind() Kind      { return KindEmployee }
func (FreelancerProfile) Kind() Kind    { return KindFreelancer }
func (SmallBusinessProfile) Kind() Kind { return KindSmallBusiness }

func (EmployeeProfile) sealed()      {}
func (FreelancerProfile) sealed()    {}
func (SmallBusinessProfile) sealed() {}

// ScenarioResult is the commensurable outcome of one profile
type ScenarioResult struct {
	Name               string                   `json:"name"`
	Kind               Kind                     `json:"kind"`
	Gross              decimal.Decimal          `json:"gross"`
	Tax                decimal.Decimal          `json:"tax"`
	MandatoryDeduction decimal.Decimal          `json:"mandatoryDeduction"`
	Net                decimal.Decimal          `json:"net"`
	Result             domain.ComputationResult `json:"result"`
}

// ComparisonSet is the outcome of evaluating several profiles side by side
type ComparisonSet struct {
	Results         []ScenarioResult `json:"results"`
	MinTax          decimal.Decimal  `json:"minTax"`
	MaxTax          decimal.Decimal  `json:"maxTax"`
	MinNet          decimal.Decimal  `json:"minNet"`
	MaxNet          decimal.Decimal  `json:"maxNet"`
	LowestTax       string           `json:"lowestTax"`
	HighestNet      string           `json:"highestNet"`
	Recommendations []string         `json:"recommendations"`
	ConfigPath      string           `json:"configPath,omitempty"`
}

// EvaluationError reports a profile that could not be evaluated
type EvaluationError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *EvaluationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Operation, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Operation, e.Message)
}

func (e *EvaluationError) Unwrap() error {
	return e.Cause
}

// NewEvaluationError creates a new evaluation error
func NewEvaluationError(operation, message string, cause error) *EvaluationError {
	return &EvaluationError{Operation: operation, Message: message, Cause: cause}
}
