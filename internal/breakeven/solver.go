package breakeven

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ulwant/HitungPajakku-sub001/internal/calculation"
	"github.com/ulwant/HitungPajakku-sub001/internal/compare"
	"github.com/ulwant/HitungPajakku-sub001/internal/transform"
)

// Solver finds the income a profile needs to reach a net or tax target
type Solver struct {
	Compare *compare.CompareEngine
	Options SolverOptions
}

// NewSolver creates a new gross-up solver
func NewSolver(calcEngine *calculation.Engine, options SolverOptions) *Solver {
	return &Solver{
		Compare: compare.NewCompareEngine(calcEngine),
		Options: options,
	}
}

// NewDefaultSolver creates a solver with default options
func NewDefaultSolver(calcEngine *calculation.Engine) *Solver {
	return NewSolver(calcEngine, DefaultSolverOptions())
}

// Solve bisects on the profile's income input for the smallest value whose metric
// reaches the target. The metric is monotone only up to rounding, so the result
// always satisfies the target but may overshoot it by a few rupiah.
func (s *Solver) Solve(ctx context.Context, req Request) (*Result, error) {
	if req.Metric == "" {
		req.Metric = MetricNet
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	req.Metric, _ = ParseMetric(string(req.Metric))
	if req.MaxIterations == 0 {
		req.MaxIterations = s.Options.MaxIterations
	}
	if req.Tolerance.IsZero() {
		req.Tolerance = s.Options.Tolerance
	}
	if req.Tolerance.LessThan(decimal.NewFromInt(1)) {
		req.Tolerance = decimal.NewFromInt(1)
	}

	field, _ := inputOf(req.Base)
	if field == "" {
		return nil, &BreakEvenError{
			Operation: "solve",
			Message:   fmt.Sprintf("unsupported profile type %T", req.Base),
		}
	}

	lo := decimal.Zero
	reached, sr, err := s.reaches(req, lo)
	if err != nil {
		return nil, err
	}
	if reached {
		res := s.newResult(req, field, lo, sr, 0)
		res.Success = true
		res.ConvergenceInfo = "Target reached without income"
		return res, nil
	}

	hi, err := s.upperBound(ctx, req)
	if err != nil {
		return nil, err
	}

	two := decimal.NewFromInt(2)
	iterations := 0
	for hi.Sub(lo).GreaterThan(req.Tolerance) && iterations < req.MaxIterations {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		iterations++

		mid := lo.Add(hi.Sub(lo).Div(two)).Floor()
		ok, _, err := s.reaches(req, mid)
		if err != nil {
			return nil, err
		}
		if ok {
			hi = mid
		} else {
			lo = mid
		}
	}

	_, sr, err = s.reaches(req, hi)
	if err != nil {
		return nil, err
	}
	res := s.newResult(req, field, hi, sr, iterations)
	if hi.Sub(lo).LessThanOrEqual(req.Tolerance) {
		res.Success = true
		res.ConvergenceInfo = fmt.Sprintf("Converged within Rp%s after %d iterations", req.Tolerance.StringFixed(0), iterations)
	} else {
		res.ConvergenceInfo = fmt.Sprintf("Max iterations (%d) reached", req.MaxIterations)
	}
	return res, nil
}

// upperBound doubles the input until the target is reached
func (s *Solver) upperBound(ctx context.Context, req Request) (decimal.Decimal, error) {
	hi := req.Target
	if hi.LessThan(decimal.NewFromInt(1)) {
		hi = decimal.NewFromInt(1)
	}
	for i := 0; i < s.Options.MaxDoublings; i++ {
		select {
		case <-ctx.Done():
			return decimal.Zero, ctx.Err()
		default:
		}

		ok, _, err := s.reaches(req, hi)
		if err != nil {
			return decimal.Zero, err
		}
		if ok {
			return hi, nil
		}
		hi = hi.Mul(decimal.NewFromInt(2))
	}
	return decimal.Zero, &BreakEvenError{
		Operation: "solve",
		Message:   fmt.Sprintf("target %s of %s is unreachable", req.Target.StringFixed(0), req.Metric),
	}
}

func (s *Solver) reaches(req Request, input decimal.Decimal) (bool, compare.ScenarioResult, error) {
	sr, err := s.Compare.Evaluate(withInput(req.Base, input))
	if err != nil {
		return false, sr, &BreakEvenError{
			Operation: "solve",
			Message:   "failed to evaluate profile",
			Cause:     err,
		}
	}
	return metricOf(sr, req.Metric).GreaterThanOrEqual(req.Target), sr, nil
}

func (s *Solver) newResult(req Request, field string, input decimal.Decimal, sr compare.ScenarioResult, iterations int) *Result {
	p := withInput(req.Base, input)
	achieved := metricOf(sr, req.Metric)
	return &Result{
		Request:       req,
		Iterations:    iterations,
		InputField:    field,
		Input:         input,
		RequiredGross: transform.AnnualGross(p),
		Profile:       p,
		Scenario:      sr,
		Achieved:      achieved,
		Difference:    achieved.Sub(req.Target),
	}
}

func metricOf(sr compare.ScenarioResult, m Metric) decimal.Decimal {
	if m == MetricTax {
		return sr.Tax
	}
	return sr.Net
}

// inputOf names the income field the solver varies and returns its current value
func inputOf(p compare.Profile) (string, decimal.Decimal) {
	switch v := p.(type) {
	case compare.EmployeeProfile:
		return "monthly_salary", v.MonthlySalary
	case compare.FreelancerProfile:
		return "gross", v.Gross
	case compare.SmallBusinessProfile:
		return "turnover", v.Turnover
	default:
		return "", decimal.Zero
	}
}

func withInput(p compare.Profile, input decimal.Decimal) compare.Profile {
	switch v := p.(type) {
	case compare.EmployeeProfile:
		v.MonthlySalary = input
		return v
	case compare.FreelancerProfile:
		v.Gross = input
		return v
	case compare.SmallBusinessProfile:
		v.Turnover = input
		return v
	default:
		return p
	}
}
