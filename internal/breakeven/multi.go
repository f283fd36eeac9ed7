package breakeven

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ulwant/HitungPajakku-sub001/internal/compare"
	"github.com/ulwant/HitungPajakku-sub001/internal/output"
)

// SolveAll grosses up every profile to the same target and compares the annual
// gross each one needs
func (s *Solver) SolveAll(
	ctx context.Context,
	profiles []compare.Profile,
	metric Metric,
	target decimal.Decimal,
) (*MultiResult, error) {
	if len(profiles) == 0 {
		return nil, &BreakEvenError{
			Operation: "solve_all",
			Message:   "no profiles to solve",
		}
	}

	if metric == "" {
		metric = MetricNet
	}
	mr := &MultiResult{Metric: metric, Target: target}
	for _, p := range profiles {
		res, err := s.Solve(ctx, Request{Base: p, Metric: metric, Target: target})
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			// unreachable profiles are reported, not fatal
			mr.Failed = append(mr.Failed, fmt.Sprintf("%s: %v", p.ProfileName(), err))
			continue
		}
		mr.Metric = res.Request.Metric
		mr.Results = append(mr.Results, *res)
	}

	if len(mr.Results) == 0 {
		return nil, &BreakEvenError{
			Operation: "solve_all",
			Message:   "no profile could reach the target",
		}
	}

	for i := range mr.Results {
		if mr.Cheapest == nil || mr.Results[i].RequiredGross.LessThan(mr.Cheapest.RequiredGross) {
			mr.Cheapest = &mr.Results[i]
		}
	}

	mr.Recommendations = s.generateRecommendations(mr)
	return mr, nil
}

func (s *Solver) generateRecommendations(mr *MultiResult) []string {
	var recommendations []string
	if mr.Cheapest == nil {
		return recommendations
	}

	recommendations = append(recommendations, fmt.Sprintf(
		"Lowest gross needed for %s of %s: %s as %s (%s a year)",
		mr.Metric,
		output.FormatRupiah(mr.Target),
		mr.Cheapest.Request.Base.ProfileName(),
		mr.Cheapest.Scenario.Kind,
		output.FormatRupiah(mr.Cheapest.RequiredGross)))

	for _, r := range mr.Results {
		if r.Request.Base.ProfileName() == mr.Cheapest.Request.Base.ProfileName() {
			continue
		}
		extra := r.RequiredGross.Sub(mr.Cheapest.RequiredGross)
		if extra.IsPositive() {
			recommendations = append(recommendations, fmt.Sprintf(
				"%s needs %s more gross a year to reach the same %s",
				r.Request.Base.ProfileName(), output.FormatRupiah(extra), mr.Metric))
		}
	}

	for _, r := range mr.Results {
		if !r.Success {
			recommendations = append(recommendations, fmt.Sprintf(
				"%s did not converge: %s", r.Request.Base.ProfileName(), r.ConvergenceInfo))
		}
	}

	return recommendations
}
