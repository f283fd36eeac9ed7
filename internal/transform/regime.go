package transform

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ulwant/HitungPajakku-sub001/internal/compare"
	"github.com/ulwant/HitungPajakku-sub001/internal/domain"
)

// AnnualGross is the yearly income a profile earns before any tax or deduction
func AnnualGross(p compare.Profile) decimal.Decimal {
	switch v := p.(type) {
	case compare.EmployeeProfile:
		months := v.MonthsWorked
		if months <= 0 || months > 12 {
			months = 12
		}
		return v.MonthlySalary.Add(v.MonthlyAllowance).Mul(decimal.NewFromInt(int64(months))).Add(v.AnnualBonus)
	case compare.FreelancerProfile:
		return v.Gross
	case compare.SmallBusinessProfile:
		return v.Turnover
	default:
		return decimal.Zero
	}
}

func statusOf(p compare.Profile) domain.PTKPStatus {
	switch v := p.(type) {
	case compare.EmployeeProfile:
		return v.Status
	case compare.FreelancerProfile:
		return v.Status
	default:
		return domain.PTKPSingle0
	}
}

// ConvertToFreelancer earns the same annual gross as an independent professional
// taxed under the norm, keeping the PTKP status
type ConvertToFreelancer struct {
	Profession domain.ProfessionCategory
	Region     domain.RegionTier
}

func (cf *ConvertToFreelancer) Name() string {
	return "to_freelancer"
}

func (cf *ConvertToFreelancer) Description() string {
	return fmt.Sprintf("Earn the same gross as a %s freelancer (%s)", cf.Profession, cf.Region)
}

func (cf *ConvertToFreelancer) Validate(base compare.Profile) error {
	if base == nil {
		return NewTransformError(cf.Name(), "validate", "base profile cannot be nil", nil)
	}
	if _, ok := domain.ParseProfessionCategory(string(cf.Profession)); !ok {
		return NewTransformError(cf.Name(), "validate", fmt.Sprintf("unknown profession %q", cf.Profession), nil)
	}
	if _, ok := domain.ParseRegionTier(string(cf.Region)); !ok {
		return NewTransformError(cf.Name(), "validate", fmt.Sprintf("unknown region %q", cf.Region), nil)
	}
	return nil
}

func (cf *ConvertToFreelancer) Apply(base compare.Profile) (compare.Profile, error) {
	profession, _ := domain.ParseProfessionCategory(string(cf.Profession))
	region, _ := domain.ParseRegionTier(string(cf.Region))
	return compare.FreelancerProfile{
		Name:       base.ProfileName(),
		Gross:      AnnualGross(base),
		Profession: profession,
		Region:     region,
		Status:     statusOf(base),
	}, nil
}

// ConvertToSmallBusiness books the same annual gross as small-business turnover
type ConvertToSmallBusiness struct{}

func (cs *ConvertToSmallBusiness) Name() string {
	return "to_small_business"
}

func (cs *ConvertToSmallBusiness) Description() string {
	return "Book the same gross as small-business turnover"
}

func (cs *ConvertToSmallBusiness) Validate(base compare.Profile) error {
	if base == nil {
		return NewTransformError(cs.Name(), "validate", "base profile cannot be nil", nil)
	}
	return nil
}

func (cs *ConvertToSmallBusiness) Apply(base compare.Profile) (compare.Profile, error) {
	return compare.SmallBusinessProfile{Name: base.ProfileName(), Turnover: AnnualGross(base)}, nil
}
