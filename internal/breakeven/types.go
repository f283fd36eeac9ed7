package breakeven

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ulwant/HitungPajakku-sub001/internal/compare"
)

// Metric is the outcome a gross-up search has to reach
type Metric string

const (
	MetricNet Metric = "net" // take-home income after tax and mandatory deductions
	MetricTax Metric = "tax" // tax due
)

// ParseMetric accepts "net" or "tax", case-insensitively
func ParseMetric(s string) (Metric, bool) {
	switch Metric(strings.ToLower(strings.TrimSpace(s))) {
	case MetricNet:
		return MetricNet, true
	case MetricTax:
		return MetricTax, true
	}
	return "", false
}

// Request asks for the smallest income input of Base whose Metric reaches Target.
// The input is the monthly salary of an employee, the annual gross of a freelancer
// and the annual turnover of a small business.
type Request struct {
	Base          compare.Profile `json:"-"`
	Metric        Metric          `json:"metric"`
	Target        decimal.Decimal `json:"target"`
	MaxIterations int             `json:"maxIterations"`
	Tolerance     decimal.Decimal `json:"tolerance"`
}

// Result contains the outcome of one gross-up search
type Result struct {
	Request         Request `json:"request"`
	Success         bool    `json:"success"`
	Iterations      int     `json:"iterations"`
	ConvergenceInfo string  `json:"convergenceInfo"`

	// Solved input and the profile that carries it
	InputField    string          `json:"inputField"`
	Input         decimal.Decimal `json:"input"`
	RequiredGross decimal.Decimal `json:"requiredGross"`
	Profile       compare.Profile `json:"profile"`

	// Outcome at the solved input
	Scenario   compare.ScenarioResult `json:"scenario"`
	Achieved   decimal.Decimal        `json:"achieved"`
	Difference decimal.Decimal        `json:"difference"`
}

// MultiResult contains the gross-up of several profiles to the same target
type MultiResult struct {
	Metric          Metric          `json:"metric"`
	Target          decimal.Decimal `json:"target"`
	Results         []Result        `json:"results"`
	Cheapest        *Result         `json:"cheapest,omitempty"`
	Failed          []string        `json:"failed,omitempty"`
	Recommendations []string        `json:"recommendations"`
}

// SolverOptions configures the bisection
type SolverOptions struct {
	Tolerance     decimal.Decimal // width of the final bracket, in rupiah
	MaxIterations int             // bisection steps
	MaxDoublings  int             // upper-bound expansion steps
}

// DefaultSolverOptions returns default solver configuration
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		Tolerance:     decimal.NewFromInt(1),
		MaxIterations: 100,
		MaxDoublings:  64,
	}
}

// Validate checks that the request can be solved
func (r *Request) Validate() error {
	if r.Base == nil {
		return &BreakEvenError{
			Operation: "validate_request",
			Message:   "base profile is required",
		}
	}
	if _, ok := ParseMetric(string(r.Metric)); !ok {
		return &BreakEvenError{
			Operation: "validate_request",
			Message:   "unknown metric " + string(r.Metric) + " (valid: net, tax)",
		}
	}
	if r.Target.IsNegative() {
		return &BreakEvenError{
			Operation: "validate_request",
			Message:   "target cannot be negative",
		}
	}
	if r.Tolerance.IsNegative() {
		return &BreakEvenError{
			Operation: "validate_request",
			Message:   "tolerance cannot be negative",
		}
	}
	return nil
}

// BreakEvenError represents errors from the gross-up solver
type BreakEvenError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *BreakEvenError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *BreakEvenError) Unwrap() error {
	return e.Cause
}
