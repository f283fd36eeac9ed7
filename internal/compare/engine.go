package compare

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/ulwant/HitungPajakku-sub001/internal/calculation"
	"github.com/ulwant/HitungPajakku-sub001/internal/domain"
)

// CompareEngine evaluates profiles against one calculation engine
type CompareEngine struct {
	CalcEngine *calculation.Engine
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(calcEngine *calculation.Engine) *CompareEngine {
	return &CompareEngine{CalcEngine: calcEngine}
}

// Evaluate runs the pipeline of a single profile. Each variant has its own formula.
func (ce *CompareEngine) Evaluate(p Profile) (ScenarioResult, error) {
	switch v := p.(type) {
	case EmployeeProfile:
		return ce.evaluateEmployee(v), nil
	case FreelancerProfile:
		return ce.evaluateFreelancer(v), nil
	case SmallBusinessProfile:
		return ce.evaluateSmallBusiness(v), nil
	case nil:
		return ScenarioResult{}, NewEvaluationError("evaluate", "nil profile", nil)
	default:
		return ScenarioResult{}, NewEvaluationError("evaluate", fmt.Sprintf("unsupported profile type %T", p), nil)
	}
}

func (ce *CompareEngine) evaluateEmployee(p EmployeeProfile) ScenarioResult {
	res := ce.CalcEngine.AnnualWage(calculation.WageInput{
		MonthlySalary:    p.MonthlySalary,
		MonthlyAllowance: p.MonthlyAllowance,
		AnnualBonus:      p.AnnualBonus,
		MonthsWorked:     p.MonthsWorked,
		Status:           p.Status,
		HasNPWP:          p.HasNPWP,
	})
	return newScenarioResult(p, res, res.WithheldTotal())
}

func (ce *CompareEngine) evaluateFreelancer(p FreelancerProfile) ScenarioResult {
	res := ce.CalcEngine.ProfessionalNorm(calculation.NormInput{
		Gross:      p.Gross,
		Profession: p.Profession,
		Region:     p.Region,
		Status:     p.Status,
	})
	return newScenarioResult(p, res, decimal.Zero)
}

func (ce *CompareEngine) evaluateSmallBusiness(p SmallBusinessProfile) ScenarioResult {
	res := ce.CalcEngine.SmallBusiness(calculation.SmallBusinessInput{Turnover: p.Turnover})
	return newScenarioResult(p, res, decimal.Zero)
}

func newScenarioResult(p Profile, res domain.ComputationResult, mandatory decimal.Decimal) ScenarioResult {
	return ScenarioResult{
		Name:               p.ProfileName(),
		Kind:               p.Kind(),
		Gross:              res.Gross,
		Tax:                res.Tax,
		MandatoryDeduction: mandatory,
		Net:                res.Net,
		Result:             res,
	}
}

// Compare evaluates every profile independently and aggregates the extremes
func (ce *CompareEngine) Compare(profiles []Profile) (*ComparisonSet, error) {
	if len(profiles) == 0 {
		return nil, NewEvaluationError("compare", "no profiles to compare", nil)
	}

	results := make([]ScenarioResult, 0, len(profiles))
	for i, p := range profiles {
		r, err := ce.Evaluate(p)
		if err != nil {
			return nil, fmt.Errorf("profile %d: %w", i, err)
		}
		results = append(results, r)
	}

	lowTax := lo.MinBy(results, func(a, b ScenarioResult) bool { return a.Tax.LessThan(b.Tax) })
	highTax := lo.MaxBy(results, func(a, b ScenarioResult) bool { return a.Tax.GreaterThan(b.Tax) })
	lowNet := lo.MinBy(results, func(a, b ScenarioResult) bool { return a.Net.LessThan(b.Net) })
	highNet := lo.MaxBy(results, func(a, b ScenarioResult) bool { return a.Net.GreaterThan(b.Net) })

	compSet := &ComparisonSet{
		Results:    results,
		MinTax:     lowTax.Tax,
		MaxTax:     highTax.Tax,
		MinNet:     lowNet.Net,
		MaxNet:     highNet.Net,
		LowestTax:  lowTax.Name,
		HighestNet: highNet.Name,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)
	return compSet, nil
}

// Project runs a profile through the multi-year compounder, scaling its income each year
func (ce *CompareEngine) Project(p Profile, params domain.ProjectionParameters) (domain.ProjectionResult, error) {
	if _, err := ce.Evaluate(p); err != nil {
		return domain.ProjectionResult{}, err
	}
	eval := func(growth decimal.Decimal) domain.ComputationResult {
		r, _ := ce.Evaluate(ScaleProfile(p, growth))
		return r.Result
	}
	return calculation.Project(p.ProfileName(), params, eval), nil
}

// ScaleProfile returns a copy of p with every nominal income component grown by factor
func ScaleProfile(p Profile, factor decimal.Decimal) Profile {
	switch v := p.(type) {
	case EmployeeProfile:
		v.MonthlySalary = calculation.ScaleAmount(v.MonthlySalary, factor)
		v.MonthlyAllowance = calculation.ScaleAmount(v.MonthlyAllowance, factor)
		v.AnnualBonus = calculation.ScaleAmount(v.AnnualBonus, factor)
		return v
	case FreelancerProfile:
		v.Gross = calculation.ScaleAmount(v.Gross, factor)
		return v
	case SmallBusinessProfile:
		v.Turnover = calculation.ScaleAmount(v.Turnover, factor)
		return v
	default:
		return p
	}
}

// GenerateRecommendations describes the spread between the profiles
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}
	if len(compSet.Results) < 2 {
		return recommendations
	}

	spread := compSet.MaxTax.Sub(compSet.MinTax)
	if spread.IsPositive() {
		recommendations = append(recommendations,
			fmt.Sprintf("Lowest Tax: %s pays Rp%s less than the highest-tax profile", compSet.LowestTax, spread.StringFixed(0)))
	} else {
		recommendations = append(recommendations, "All profiles carry the same tax")
	}

	netSpread := compSet.MaxNet.Sub(compSet.MinNet)
	if netSpread.IsPositive() {
		recommendations = append(recommendations,
			fmt.Sprintf("Highest Net: %s keeps Rp%s more than the lowest-net profile", compSet.HighestNet, netSpread.StringFixed(0)))
	}

	surcharged := lo.FilterMap(compSet.Results, func(r ScenarioResult, _ int) (string, bool) {
		return r.Name, r.Result.Surcharged
	})
	for _, name := range surcharged {
		recommendations = append(recommendations,
			fmt.Sprintf("NPWP: %s pays a surcharge for having no NPWP; registering removes it", name))
	}

	defaulted := lo.FilterMap(compSet.Results, func(r ScenarioResult, _ int) (string, bool) {
		return r.Name, len(r.Result.Defaulted) > 0
	})
	for _, name := range defaulted {
		recommendations = append(recommendations,
			fmt.Sprintf("Check Input: %s uses an unknown category; its rate defaulted to zero", name))
	}

	return recommendations
}

// TotalTax sums the tax of every result
func (cs *ComparisonSet) TotalTax() decimal.Decimal {
	return lo.Reduce(cs.Results, func(acc decimal.Decimal, r ScenarioResult, _ int) decimal.Decimal {
		return acc.Add(r.Tax)
	}, decimal.Zero)
}

// Names lists the profile names in evaluation order
func (cs *ComparisonSet) Names() []string {
	return lo.Map(cs.Results, func(r ScenarioResult, _ int) string { return r.Name })
}
