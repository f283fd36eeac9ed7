package breakeven

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/ulwant/HitungPajakku-sub001/internal/calculation"
	"github.com/ulwant/HitungPajakku-sub001/internal/compare"
	"github.com/ulwant/HitungPajakku-sub001/internal/domain"
)

func rp(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func employee() compare.EmployeeProfile {
	return compare.EmployeeProfile{Name: "Karyawan", MonthlySalary: rp(1), Status: domain.PTKPSingle0, HasNPWP: true}
}

func freelancer() compare.FreelancerProfile {
	return compare.FreelancerProfile{Name: "Dokter", Profession: domain.ProfessionDoctor, Region: domain.RegionMajorCity, Status: domain.PTKPSingle0}
}

func smallBusiness() compare.SmallBusinessProfile {
	return compare.SmallBusinessProfile{Name: "Warung"}
}

func TestNewSolver(t *testing.T) {
	calcEngine := calculation.NewEngine()
	options := DefaultSolverOptions()

	solver := NewSolver(calcEngine, options)

	if solver == nil {
		t.Fatal("Expected solver to be created, got nil")
	}
	if solver.Compare == nil || solver.Compare.CalcEngine != calcEngine {
		t.Error("Expected compare engine to wrap the calculation engine")
	}
	if solver.Options.MaxIterations != options.MaxIterations {
		t.Error("Expected Options to match input")
	}
}

func TestNewDefaultSolver(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewEngine())

	expected := DefaultSolverOptions()
	if !solver.Options.Tolerance.Equal(expected.Tolerance) {
		t.Error("Expected default tolerance to be applied")
	}
	if solver.Options.MaxDoublings != expected.MaxDoublings {
		t.Error("Expected default doublings to be applied")
	}
}

func TestSolve_InvalidRequest(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewEngine())

	requests := map[string]Request{
		"nil base":        {Metric: MetricNet, Target: rp(100)},
		"unknown metric":  {Base: employee(), Metric: "gross", Target: rp(100)},
		"negative target": {Base: employee(), Metric: MetricNet, Target: rp(-1)},
	}

	for name, req := range requests {
		t.Run(name, func(t *testing.T) {
			_, err := solver.Solve(context.Background(), req)
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			var beErr *BreakEvenError
			if !errors.As(err, &beErr) {
				t.Errorf("Expected BreakEvenError, got %T", err)
			}
		})
	}
}

func TestSolve_SmallBusiness(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewEngine())

	tests := []struct {
		name   string
		metric Metric
		target int64
		want   int64
	}{
		{"net below threshold", MetricNet, 400_000_000, 400_000_000},
		{"tax above threshold", MetricTax, 500_000, 600_000_000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := solver.Solve(context.Background(), Request{Base: smallBusiness(), Metric: tt.metric, Target: rp(tt.target)})
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if !res.Success {
				t.Errorf("Expected convergence, got %s", res.ConvergenceInfo)
			}
			if res.InputField != "turnover" {
				t.Errorf("Expected input field turnover, got %s", res.InputField)
			}
			if !res.Input.Equal(rp(tt.want)) {
				t.Errorf("Expected turnover %d, got %s", tt.want, res.Input)
			}
			if !res.RequiredGross.Equal(res.Input) {
				t.Errorf("Expected required gross to equal turnover, got %s", res.RequiredGross)
			}
		})
	}
}

func TestSolve_EmployeeNet(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewEngine())

	res, err := solver.Solve(context.Background(), Request{Base: employee(), Metric: MetricNet, Target: rp(112_380_000)})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if !res.Success {
		t.Errorf("Expected convergence, got %s", res.ConvergenceInfo)
	}
	if res.Scenario.Net.LessThan(rp(112_380_000)) {
		t.Errorf("Expected net to reach the target, got %s", res.Scenario.Net)
	}
	if res.Difference.IsNegative() || res.Difference.GreaterThan(rp(1_000)) {
		t.Errorf("Expected small non-negative difference, got %s", res.Difference)
	}
	if res.Input.Sub(rp(10_000_000)).Abs().GreaterThan(rp(1_000)) {
		t.Errorf("Expected monthly salary near 10000000, got %s", res.Input)
	}
	if !res.RequiredGross.Equal(res.Input.Mul(rp(12))) {
		t.Errorf("Expected required gross of twelve salaries, got %s", res.RequiredGross)
	}
	if p, ok := res.Profile.(compare.EmployeeProfile); !ok || !p.MonthlySalary.Equal(res.Input) {
		t.Errorf("Expected solved employee profile, got %+v", res.Profile)
	}
}

func TestSolve_EmployeeTax(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewEngine())

	res, err := solver.Solve(context.Background(), Request{Base: employee(), Metric: MetricTax, Target: rp(2_820_000)})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if res.Scenario.Tax.LessThan(rp(2_820_000)) {
		t.Errorf("Expected tax to reach the target, got %s", res.Scenario.Tax)
	}
	if res.Input.Sub(rp(10_000_000)).Abs().GreaterThan(rp(1_000)) {
		t.Errorf("Expected monthly salary near 10000000, got %s", res.Input)
	}
}

func TestSolve_ZeroTarget(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewEngine())

	res, err := solver.Solve(context.Background(), Request{Base: freelancer(), Metric: MetricTax, Target: decimal.Zero})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !res.Input.IsZero() || !res.Success {
		t.Errorf("Expected zero input, got %s (%s)", res.Input, res.ConvergenceInfo)
	}
}

func TestSolve_DefaultsToNet(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewEngine())

	res, err := solver.Solve(context.Background(), Request{Base: smallBusiness(), Target: rp(1_000_000)})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if res.Request.Metric != MetricNet {
		t.Errorf("Expected metric net, got %s", res.Request.Metric)
	}
}

func TestSolve_Unreachable(t *testing.T) {
	options := DefaultSolverOptions()
	options.MaxDoublings = 1
	solver := NewSolver(calculation.NewEngine(), options)

	_, err := solver.Solve(context.Background(), Request{Base: smallBusiness(), Metric: MetricNet, Target: rp(1_000_000_000_000)})
	if err == nil {
		t.Fatal("Expected unreachable target error")
	}
	if !strings.Contains(err.Error(), "unreachable") {
		t.Errorf("Unexpected error: %v", err)
	}
}

func TestSolve_MaxIterations(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewEngine())

	res, err := solver.Solve(context.Background(), Request{Base: freelancer(), Metric: MetricNet, Target: rp(300_000_000), MaxIterations: 3})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if res.Success {
		t.Error("Expected no convergence after 3 iterations")
	}
	if res.Iterations != 3 || !strings.Contains(res.ConvergenceInfo, "Max iterations") {
		t.Errorf("Unexpected convergence info %q after %d iterations", res.ConvergenceInfo, res.Iterations)
	}
	if res.Scenario.Net.LessThan(rp(300_000_000)) {
		t.Errorf("Expected bracket end to reach the target, got %s", res.Scenario.Net)
	}
}

func TestSolve_ContextCancelled(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewEngine())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := solver.Solve(ctx, Request{Base: smallBusiness(), Metric: MetricNet, Target: rp(400_000_000)})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestSolveAll(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewEngine())
	profiles := []compare.Profile{employee(), freelancer(), smallBusiness()}

	mr, err := solver.SolveAll(context.Background(), profiles, MetricNet, rp(400_000_000))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(mr.Results) != 3 {
		t.Fatalf("Expected 3 results, got %d", len(mr.Results))
	}
	if mr.Cheapest == nil || mr.Cheapest.Request.Base.ProfileName() != "Warung" {
		t.Fatalf("Expected Warung to need the lowest gross, got %+v", mr.Cheapest)
	}
	if !mr.Cheapest.RequiredGross.Equal(rp(400_000_000)) {
		t.Errorf("Expected 400000000 turnover, got %s", mr.Cheapest.RequiredGross)
	}
	for _, r := range mr.Results {
		if r.RequiredGross.LessThan(mr.Cheapest.RequiredGross) {
			t.Errorf("%s needs less gross than the cheapest", r.Request.Base.ProfileName())
		}
	}
	if len(mr.Recommendations) != 3 || !strings.Contains(mr.Recommendations[0], "Warung") {
		t.Errorf("Unexpected recommendations %v", mr.Recommendations)
	}
}

func TestSolveAll_PartialFailure(t *testing.T) {
	options := DefaultSolverOptions()
	options.MaxDoublings = 1
	solver := NewSolver(calculation.NewEngine(), options)
	profiles := []compare.Profile{employee(), freelancer(), smallBusiness()}

	mr, err := solver.SolveAll(context.Background(), profiles, MetricNet, rp(1_000_000_000_000))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(mr.Results) != 1 || len(mr.Failed) != 2 {
		t.Errorf("Expected 1 result and 2 failures, got %d and %d", len(mr.Results), len(mr.Failed))
	}

	if _, err := solver.SolveAll(context.Background(), nil, MetricNet, rp(1)); err == nil {
		t.Error("Expected error for empty profile list")
	}
}

func TestFormatters(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewEngine())
	res, err := solver.Solve(context.Background(), Request{Base: employee(), Metric: MetricNet, Target: rp(112_380_000)})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	table := (&TableFormatter{}).Format(res)
	for _, want := range []string{"GROSS-UP RESULT", "Karyawan (employee)", "Monthly Salary:", "Annual Gross:", "✓ Converged"} {
		if !strings.Contains(table, want) {
			t.Errorf("Expected table to contain %q", want)
		}
	}

	mr, err := solver.SolveAll(context.Background(), []compare.Profile{employee(), smallBusiness()}, MetricNet, rp(400_000_000))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	multi := (&TableFormatter{}).FormatMulti(mr)
	for _, want := range []string{"GROSS-UP COMPARISON", "Rp400.000.000", "RECOMMENDATIONS"} {
		if !strings.Contains(multi, want) {
			t.Errorf("Expected multi table to contain %q", want)
		}
	}
	for _, line := range strings.Split(multi, "\n") {
		if strings.HasPrefix(line, "Warung") && !strings.HasSuffix(line, " *") {
			t.Errorf("Expected Warung to be marked cheapest: %q", line)
		}
		if strings.HasPrefix(line, "Karyawan") && strings.HasSuffix(line, " *") {
			t.Errorf("Expected Karyawan not to be marked: %q", line)
		}
	}

	s, err := (&JSONFormatter{Pretty: true}).Format(res)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	var decoded map[string]interface{}
	if err := json.Unmarshal([]byte(s), &decoded); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if decoded["inputField"] != "monthly_salary" {
		t.Errorf("Expected inputField monthly_salary, got %v", decoded["inputField"])
	}
}
