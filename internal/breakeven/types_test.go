package breakeven

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestDefaultSolverOptions(t *testing.T) {
	o := DefaultSolverOptions()

	if !o.Tolerance.Equal(decimal.NewFromInt(1)) {
		t.Errorf("Expected tolerance of 1 rupiah, got %s", o.Tolerance)
	}
	if o.MaxIterations != 100 {
		t.Errorf("Expected 100 iterations, got %d", o.MaxIterations)
	}
	if o.MaxDoublings != 64 {
		t.Errorf("Expected 64 doublings, got %d", o.MaxDoublings)
	}
}

func TestParseMetric(t *testing.T) {
	tests := []struct {
		in   string
		want Metric
		ok   bool
	}{
		{"net", MetricNet, true},
		{" TAX ", MetricTax, true},
		{"gross", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := ParseMetric(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseMetric(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestRequest_Validate(t *testing.T) {
	valid := Request{Base: employee(), Metric: MetricNet, Target: decimal.NewFromInt(1)}
	if err := valid.Validate(); err != nil {
		t.Errorf("Expected valid request, got %v", err)
	}

	tests := []struct {
		name   string
		mutate func(r *Request)
	}{
		{"nil base", func(r *Request) { r.Base = nil }},
		{"empty metric", func(r *Request) { r.Metric = "" }},
		{"negative target", func(r *Request) { r.Target = decimal.NewFromInt(-5) }},
		{"negative tolerance", func(r *Request) { r.Tolerance = decimal.NewFromInt(-1) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := valid
			tt.mutate(&r)
			if err := r.Validate(); err == nil {
				t.Error("Expected validation error, got nil")
			}
		})
	}
}

func TestBreakEvenError(t *testing.T) {
	cause := errors.New("boom")
	err := &BreakEvenError{Operation: "solve", Message: "failed", Cause: cause}

	if err.Error() != "solve: failed: boom" {
		t.Errorf("Unexpected message %q", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("Expected Unwrap to expose the cause")
	}

	plain := &BreakEvenError{Operation: "validate_request", Message: "bad"}
	if plain.Error() != "validate_request: bad" {
		t.Errorf("Unexpected message %q", plain.Error())
	}
}
