package transform

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/ulwant/HitungPajakku-sub001/internal/compare"
	"github.com/ulwant/HitungPajakku-sub001/internal/domain"
)

// Helper function to create a basic employee profile
func createTestProfile() compare.EmployeeProfile {
	return compare.EmployeeProfile{
		Name:          "Karyawan",
		MonthlySalary: decimal.NewFromInt(10_000_000),
		Status:        domain.PTKPSingle0,
		HasNPWP:       true,
	}
}

func TestApplyTransforms_NilProfile(t *testing.T) {
	_, err := ApplyTransforms(nil, []ProfileTransform{&AdjustIncome{Rate: decimal.NewFromFloat(0.1)}})
	if err == nil {
		t.Error("Expected error for nil profile, got nil")
	}
}

func TestApplyTransforms_EmptyTransforms(t *testing.T) {
	base := createTestProfile()

	result, err := ApplyTransforms(base, nil)
	if err != nil {
		t.Fatalf("Expected no error for empty transforms, got: %v", err)
	}
	if result != compare.Profile(base) {
		t.Errorf("Expected unchanged profile, got %+v", result)
	}
}

func TestApplyTransforms_NilTransform(t *testing.T) {
	transforms := []ProfileTransform{
		&AdjustIncome{Rate: decimal.NewFromFloat(0.1)},
		nil,
	}

	_, err := ApplyTransforms(createTestProfile(), transforms)
	if err == nil {
		t.Error("Expected error for nil transform, got nil")
	}
}

func TestApplyTransforms_Chain(t *testing.T) {
	base := createTestProfile()
	transforms := []ProfileTransform{
		&AdjustIncome{Rate: decimal.NewFromFloat(0.1)},
		&SetNPWP{HasNPWP: false},
		&SetPTKPStatus{Status: "k2"},
	}

	result, err := ApplyTransforms(base, transforms)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	emp, ok := result.(compare.EmployeeProfile)
	if !ok {
		t.Fatalf("Expected employee profile, got %T", result)
	}
	if !emp.MonthlySalary.Equal(decimal.NewFromInt(11_000_000)) {
		t.Errorf("Expected salary 11000000, got %s", emp.MonthlySalary)
	}
	if emp.HasNPWP {
		t.Error("Expected NPWP to be removed")
	}
	if emp.Status != domain.PTKPMarried2 {
		t.Errorf("Expected status K/2, got %s", emp.Status)
	}

	// Base must be unchanged
	if !base.MonthlySalary.Equal(decimal.NewFromInt(10_000_000)) || !base.HasNPWP {
		t.Error("Base profile was modified")
	}
}

func TestTransforms_Validation(t *testing.T) {
	small := compare.SmallBusinessProfile{Name: "Warung", Turnover: decimal.NewFromInt(100)}

	tests := []struct {
		name      string
		transform ProfileTransform
		base      compare.Profile
	}{
		{"income cut of 100%", &AdjustIncome{Rate: decimal.NewFromInt(-1)}, createTestProfile()},
		{"npwp on small business", &SetNPWP{HasNPWP: false}, small},
		{"unknown status", &SetPTKPStatus{Status: "K/9"}, createTestProfile()},
		{"status on small business", &SetPTKPStatus{Status: "K/0"}, small},
		{"thirteen months", &SetMonthsWorked{Months: 13}, createTestProfile()},
		{"months on small business", &SetMonthsWorked{Months: 6}, small},
		{"unknown profession", &ConvertToFreelancer{Profession: "astronaut", Region: domain.RegionOther}, createTestProfile()},
		{"unknown region", &ConvertToFreelancer{Profession: domain.ProfessionDoctor, Region: "moon"}, createTestProfile()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.transform.Validate(tt.base)
			if err == nil {
				t.Fatal("Expected validation error, got nil")
			}
			var te *TransformError
			if !errors.As(err, &te) {
				t.Errorf("Expected TransformError, got %T", err)
			}
			if _, err := ApplyTransforms(tt.base, []ProfileTransform{tt.transform}); err == nil {
				t.Error("Expected ApplyTransforms to fail validation")
			}
		})
	}
}

func TestConvertToFreelancer(t *testing.T) {
	base := createTestProfile()
	base.Status = domain.PTKPMarried1
	base.AnnualBonus = decimal.NewFromInt(10_000_000)
	base.MonthsWorked = 6

	result, err := ApplyTransforms(base, []ProfileTransform{
		&ConvertToFreelancer{Profession: "Doctor", Region: "provincial-capital"},
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	free, ok := result.(compare.FreelancerProfile)
	if !ok {
		t.Fatalf("Expected freelancer profile, got %T", result)
	}
	if !free.Gross.Equal(decimal.NewFromInt(70_000_000)) {
		t.Errorf("Expected gross 70000000 (6 months plus bonus), got %s", free.Gross)
	}
	if free.Profession != domain.ProfessionDoctor || free.Region != domain.RegionProvincialCapital {
		t.Errorf("Expected normalized profession and region, got %s / %s", free.Profession, free.Region)
	}
	if free.Status != domain.PTKPMarried1 || free.Name != "Karyawan" {
		t.Errorf("Expected status and name carried over, got %s / %s", free.Status, free.Name)
	}
}

func TestConvertToSmallBusiness(t *testing.T) {
	free := compare.FreelancerProfile{Name: "Dokter", Gross: decimal.NewFromInt(300_000_000)}

	result, err := ApplyTransforms(free, []ProfileTransform{&ConvertToSmallBusiness{}})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	biz, ok := result.(compare.SmallBusinessProfile)
	if !ok {
		t.Fatalf("Expected small business profile, got %T", result)
	}
	if !biz.Turnover.Equal(decimal.NewFromInt(300_000_000)) {
		t.Errorf("Expected turnover 300000000, got %s", biz.Turnover)
	}
}

func TestAnnualGross(t *testing.T) {
	emp := createTestProfile()
	emp.MonthlyAllowance = decimal.NewFromInt(1_000_000)
	emp.AnnualBonus = decimal.NewFromInt(5_000_000)

	if got := AnnualGross(emp); !got.Equal(decimal.NewFromInt(137_000_000)) {
		t.Errorf("Expected 137000000, got %s", got)
	}
	if got := AnnualGross(nil); !got.IsZero() {
		t.Errorf("Expected zero for nil profile, got %s", got)
	}
}

func TestTransformRegistry(t *testing.T) {
	registry := NewTransformRegistry()

	names := registry.List()
	if len(names) != 6 {
		t.Errorf("Expected 6 transforms, got %d: %v", len(names), names)
	}

	tr, err := registry.ParseTransformSpec("adjust_income:rate=0.2")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	ai, ok := tr.(*AdjustIncome)
	if !ok || !ai.Rate.Equal(decimal.NewFromFloat(0.2)) {
		t.Errorf("Expected AdjustIncome with rate 0.2, got %+v", tr)
	}

	tr, err = registry.ParseTransformSpec("to_small_business")
	if err != nil {
		t.Fatalf("Unexpected error for parameterless spec: %v", err)
	}
	if tr.Name() != "to_small_business" {
		t.Errorf("Expected to_small_business, got %s", tr.Name())
	}

	tr, err = registry.ParseTransformSpec("to_freelancer:profession=notary")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cf := tr.(*ConvertToFreelancer); cf.Region != domain.RegionMajorCity {
		t.Errorf("Expected default region major_city, got %s", cf.Region)
	}

	for _, spec := range []string{
		"unknown:x=1",
		"adjust_income:",
		"adjust_income:rate=abc",
		"set_npwp:has=maybe",
		"set_months:months=six",
		"set_status:bad",
	} {
		if _, err := registry.ParseTransformSpec(spec); err == nil {
			t.Errorf("Expected error for spec %q", spec)
		}
	}
}
