package transform

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ulwant/HitungPajakku-sub001/internal/compare"
	"github.com/ulwant/HitungPajakku-sub001/internal/domain"
	"github.com/ulwant/HitungPajakku-sub001/internal/output"
)

// AdjustIncome scales every nominal income component of a profile by (1 + Rate).
// A negative rate models a pay cut.
type AdjustIncome struct {
	Rate decimal.Decimal // e.g. 0.10 for a 10% raise
}

func (ai *AdjustIncome) Name() string {
	return "adjust_income"
}

func (ai *AdjustIncome) Description() string {
	return fmt.Sprintf("Adjust income by %s", output.FormatPercentage(ai.Rate))
}

func (ai *AdjustIncome) Validate(base compare.Profile) error {
	if base == nil {
		return NewTransformError(ai.Name(), "validate", "base profile cannot be nil", nil)
	}
	if ai.Rate.LessThanOrEqual(decimal.NewFromInt(-1)) {
		return NewTransformError(ai.Name(), "validate", fmt.Sprintf("rate must be greater than -1, got %s", ai.Rate), nil)
	}
	return nil
}

func (ai *AdjustIncome) Apply(base compare.Profile) (compare.Profile, error) {
	return compare.ScaleProfile(base, decimal.NewFromInt(1).Add(ai.Rate)), nil
}

// SetNPWP registers or removes an employee's NPWP. Without one the wage tax carries
// the surcharge.
type SetNPWP struct {
	HasNPWP bool
}

func (sn *SetNPWP) Name() string {
	return "set_npwp"
}

func (sn *SetNPWP) Description() string {
	if sn.HasNPWP {
		return "Register an NPWP"
	}
	return "Work without an NPWP"
}

func (sn *SetNPWP) Validate(base compare.Profile) error {
	if _, ok := base.(compare.EmployeeProfile); !ok {
		return NewTransformError(sn.Name(), "validate", fmt.Sprintf("only employee profiles carry an NPWP flag, got %s", kindOf(base)), nil)
	}
	return nil
}

func (sn *SetNPWP) Apply(base compare.Profile) (compare.Profile, error) {
	p := base.(compare.EmployeeProfile)
	p.HasNPWP = sn.HasNPWP
	return p, nil
}

// SetPTKPStatus changes the marital and dependant status of an employee or freelancer
type SetPTKPStatus struct {
	Status domain.PTKPStatus
}

func (ss *SetPTKPStatus) Name() string {
	return "set_status"
}

func (ss *SetPTKPStatus) Description() string {
	return fmt.Sprintf("Set PTKP status to %s", ss.Status)
}

func (ss *SetPTKPStatus) Validate(base compare.Profile) error {
	if _, ok := domain.ParsePTKPStatus(string(ss.Status)); !ok {
		return NewTransformError(ss.Name(), "validate", fmt.Sprintf("unknown PTKP status %q", ss.Status), nil)
	}
	switch base.(type) {
	case compare.EmployeeProfile, compare.FreelancerProfile:
		return nil
	}
	return NewTransformError(ss.Name(), "validate", fmt.Sprintf("%s profiles have no PTKP status", kindOf(base)), nil)
}

func (ss *SetPTKPStatus) Apply(base compare.Profile) (compare.Profile, error) {
	status, _ := domain.ParsePTKPStatus(string(ss.Status))
	switch v := base.(type) {
	case compare.EmployeeProfile:
		v.Status = status
		return v, nil
	case compare.FreelancerProfile:
		v.Status = status
		return v, nil
	}
	return nil, NewTransformError(ss.Name(), "apply", "unsupported profile", nil)
}

// SetMonthsWorked shortens an employee's year, e.g. for a mid-year start
type SetMonthsWorked struct {
	Months int
}

func (sm *SetMonthsWorked) Name() string {
	return "set_months"
}

func (sm *SetMonthsWorked) Description() string {
	return fmt.Sprintf("Work %d month(s) of the year", sm.Months)
}

func (sm *SetMonthsWorked) Validate(base compare.Profile) error {
	if sm.Months < 1 || sm.Months > 12 {
		return NewTransformError(sm.Name(), "validate", fmt.Sprintf("months must be between 1 and 12, got %d", sm.Months), nil)
	}
	if _, ok := base.(compare.EmployeeProfile); !ok {
		return NewTransformError(sm.Name(), "validate", fmt.Sprintf("only employee profiles have months worked, got %s", kindOf(base)), nil)
	}
	return nil
}

func (sm *SetMonthsWorked) Apply(base compare.Profile) (compare.Profile, error) {
	p := base.(compare.EmployeeProfile)
	p.MonthsWorked = sm.Months
	return p, nil
}

func kindOf(p compare.Profile) string {
	if p == nil {
		return "nil"
	}
	return string(p.Kind())
}
