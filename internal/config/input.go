package config

import (
	"bytes"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/ulwant/HitungPajakku-sub001/internal/compare"
	"github.com/ulwant/HitungPajakku-sub001/internal/domain"
)

// ConfigError describes a configuration file that could not be loaded or validated
type ConfigError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *ConfigError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Operation, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Operation, e.Message)
}

func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// NewConfigError creates a new configuration error
func NewConfigError(operation, message string, cause error) *ConfigError {
	return &ConfigError{Operation: operation, Message: message, Cause: cause}
}

// ScenarioFile is a set of profiles to compare or project
type ScenarioFile struct {
	Name       string
	Regulation string
	Projection domain.ProjectionParameters
	Profiles   []compare.Profile
}

// scenarioDocument is the on-disk shape; profiles stay raw until their kind is known
type scenarioDocument struct {
	Name       string                      `yaml:"name"`
	Regulation string                      `yaml:"regulation"`
	Projection domain.ProjectionParameters `yaml:"projection"`
	Profiles   []yaml.Node                 `yaml:"profiles"`
}

// InputParser handles parsing of regulation overrides and scenario files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadRegulation reads a YAML override and lays it over the built-in regulation. Keys the
// file omits keep their default values; rate table entries are merged and lists replaced.
// An empty path returns the defaults.
func (ip *InputParser) LoadRegulation(filename string) (domain.Regulation, error) {
	if filename == "" {
		return domain.DefaultRegulation(), nil
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return domain.Regulation{}, NewConfigError("load regulation", fmt.Sprintf("failed to read file %s", filename), err)
	}
	return ip.ParseRegulation(data)
}

// ParseRegulation overlays YAML data onto the built-in regulation and validates the result
func (ip *InputParser) ParseRegulation(data []byte) (domain.Regulation, error) {
	reg := domain.DefaultRegulation()
	if len(bytes.TrimSpace(data)) > 0 {
		if err := yaml.Unmarshal(data, &reg); err != nil {
			return domain.Regulation{}, NewConfigError("parse regulation", "failed to parse YAML", err)
		}
	}
	if err := ip.ValidateRegulation(&reg); err != nil {
		return domain.Regulation{}, err
	}
	return reg, nil
}

// DumpRegulation renders a regulation as YAML suitable for use as an override file
func (ip *InputParser) DumpRegulation(reg domain.Regulation) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(reg); err != nil {
		return nil, NewConfigError("dump regulation", "failed to encode YAML", err)
	}
	if err := enc.Close(); err != nil {
		return nil, NewConfigError("dump regulation", "failed to encode YAML", err)
	}
	return buf.Bytes(), nil
}

// ValidateRegulation checks the invariants the engine relies on but never checks itself
func (ip *InputParser) ValidateRegulation(reg *domain.Regulation) error {
	for _, s := range []domain.Schedule{reg.Income.Progressive, reg.Income.Severance, reg.Income.RetirementPayout} {
		if err := s.Validate(); err != nil {
			return NewConfigError("validate regulation", "invalid schedule", err)
		}
	}

	if err := ip.validateIncome(&reg.Income); err != nil {
		return NewConfigError("validate regulation", "income rules", err)
	}

	for i, c := range reg.Contributions {
		if c.Label == "" {
			return NewConfigError("validate regulation", fmt.Sprintf("contribution %d has no label", i), nil)
		}
		if err := validateRate(c.Label, c.Rate); err != nil {
			return NewConfigError("validate regulation", "contributions", err)
		}
		if c.Cap.IsNegative() {
			return NewConfigError("validate regulation", fmt.Sprintf("contribution %s cap cannot be negative", c.Label), nil)
		}
	}

	if err := validateTable("withholding", reg.Withholding, domain.AllWithholdingCategories()); err != nil {
		return NewConfigError("validate regulation", "withholding rates", err)
	}
	if err := validateTable("final", reg.Final, domain.AllFinalCategories()); err != nil {
		return NewConfigError("validate regulation", "final rates", err)
	}
	if err := validateTable("investment", reg.Investment, domain.AllInvestmentAssets()); err != nil {
		return NewConfigError("validate regulation", "investment rates", err)
	}
	if err := validateTable("luxury", reg.Luxury, domain.AllLuxuryCategories()); err != nil {
		return NewConfigError("validate regulation", "luxury rates", err)
	}
	if err := validateTable("duty", reg.Import.Duty, domain.AllImportCategories()); err != nil {
		return NewConfigError("validate regulation", "import duty rates", err)
	}

	for label, r := range map[string]decimal.Decimal{
		"small business rate":        reg.SmallBusiness.Rate,
		"vat rate":                   reg.VAT.Rate,
		"import vat rate":            reg.Import.VATRate,
		"import income tax with api": reg.Import.IncomeTaxWithAPI,
		"import income tax no api":   reg.Import.IncomeTaxWithoutAPI,
		"penalty reference rate":     reg.Penalty.ReferenceRate,
		"penalty uplift":             reg.Penalty.UpliftFactor,
	} {
		if err := validateRate(label, r); err != nil {
			return NewConfigError("validate regulation", "rates", err)
		}
	}

	if reg.SmallBusiness.Threshold.IsNegative() {
		return NewConfigError("validate regulation", "small business threshold cannot be negative", nil)
	}
	if reg.VAT.OtherValueNumerator <= 0 || reg.VAT.OtherValueDenominator <= 0 {
		return NewConfigError("validate regulation", "vat other value fraction must be positive", nil)
	}

	for _, p := range domain.AllProfessionCategories() {
		rates, ok := reg.Norm[p]
		if !ok {
			return NewConfigError("validate regulation", fmt.Sprintf("norm table is missing profession %s", p), nil)
		}
		for _, r := range []decimal.Decimal{rates.MajorCity, rates.ProvincialCapital, rates.Other} {
			if err := validateRate(string(p), r); err != nil {
				return NewConfigError("validate regulation", "norm rates", err)
			}
		}
	}

	for kind, fine := range reg.Penalty.AdminFines {
		if fine.IsNegative() {
			return NewConfigError("validate regulation", fmt.Sprintf("admin fine %s cannot be negative", kind), nil)
		}
	}

	return nil
}

func (ip *InputParser) validateIncome(in *domain.IncomeRules) error {
	if in.PTKP.Base.IsNegative() || in.PTKP.Married.IsNegative() || in.PTKP.PerDependent.IsNegative() {
		return fmt.Errorf("PTKP amounts cannot be negative")
	}
	if in.PTKP.MaxDependents < 0 {
		return fmt.Errorf("PTKP max dependents cannot be negative")
	}
	if err := validateRate("occupational cost", in.OccupationalCost.Rate); err != nil {
		return err
	}
	if in.OccupationalCost.MonthlyCap.IsNegative() {
		return fmt.Errorf("occupational cost monthly cap cannot be negative")
	}
	if in.NoNPWPMultiplier.LessThan(domain.One) {
		return fmt.Errorf("no-NPWP multiplier must be at least 1")
	}
	if !in.TaxableRounding.IsPositive() {
		return fmt.Errorf("taxable rounding must be positive")
	}
	return nil
}

func validateRate(label string, r decimal.Decimal) error {
	if r.IsNegative() || r.GreaterThan(domain.One) {
		return fmt.Errorf("%s rate %s outside 0..1", label, r)
	}
	return nil
}

func validateTable[K ~string](family string, table domain.RateTable[K], all []K) error {
	if missing := table.Missing(all); len(missing) > 0 {
		return fmt.Errorf("%s table is missing %v", family, missing)
	}
	for k, r := range table {
		if err := validateRate(family+":"+string(k), r); err != nil {
			return err
		}
	}
	return nil
}

// LoadScenarios loads a scenario file
func (ip *InputParser) LoadScenarios(filename string) (*ScenarioFile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, NewConfigError("load scenarios", fmt.Sprintf("failed to read file %s", filename), err)
	}
	return ip.ParseScenarios(data)
}

// ParseScenarios decodes and validates scenario YAML. Each profile carries a kind that
// selects its variant.
func (ip *InputParser) ParseScenarios(data []byte) (*ScenarioFile, error) {
	var doc scenarioDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, NewConfigError("parse scenarios", "failed to parse YAML", err)
	}
	if len(doc.Profiles) == 0 {
		return nil, NewConfigError("parse scenarios", "no profiles provided", nil)
	}

	sf := &ScenarioFile{Name: doc.Name, Regulation: doc.Regulation, Projection: doc.Projection}
	for i := range doc.Profiles {
		p, err := decodeProfile(&doc.Profiles[i])
		if err != nil {
			return nil, NewConfigError("parse scenarios", fmt.Sprintf("profile %d", i), err)
		}
		sf.Profiles = append(sf.Profiles, p)
	}

	if err := ip.ValidateScenarios(sf); err != nil {
		return nil, err
	}
	return sf, nil
}

func decodeProfile(node *yaml.Node) (compare.Profile, error) {
	var head struct {
		Kind compare.Kind `yaml:"kind"`
	}
	if err := node.Decode(&head); err != nil {
		return nil, err
	}

	switch head.Kind {
	case compare.KindEmployee:
		var p compare.EmployeeProfile
		if err := node.Decode(&p); err != nil {
			return nil, err
		}
		p.Status = normalizeStatus(p.Status)
		return p, nil
	case compare.KindFreelancer:
		var p compare.FreelancerProfile
		if err := node.Decode(&p); err != nil {
			return nil, err
		}
		p.Status = normalizeStatus(p.Status)
		if c, ok := domain.ParseProfessionCategory(string(p.Profession)); ok {
			p.Profession = c
		}
		if r, ok := domain.ParseRegionTier(string(p.Region)); ok {
			p.Region = r
		}
		return p, nil
	case compare.KindSmallBusiness:
		var p compare.SmallBusinessProfile
		if err := node.Decode(&p); err != nil {
			return nil, err
		}
		return p, nil
	case "":
		return nil, fmt.Errorf("kind is required")
	default:
		return nil, fmt.Errorf("unknown kind %q", head.Kind)
	}
}

// normalizeStatus accepts spellings like "k1"; an empty status means TK/0
func normalizeStatus(s domain.PTKPStatus) domain.PTKPStatus {
	if s == "" {
		return domain.PTKPSingle0
	}
	if parsed, ok := domain.ParsePTKPStatus(string(s)); ok {
		return parsed
	}
	return s
}

// ValidateScenarios validates a decoded scenario file
func (ip *InputParser) ValidateScenarios(sf *ScenarioFile) error {
	seen := make(map[string]bool, len(sf.Profiles))
	for i, p := range sf.Profiles {
		name := p.ProfileName()
		if name == "" {
			return NewConfigError("validate scenarios", fmt.Sprintf("profile %d: name is required", i), nil)
		}
		if seen[name] {
			return NewConfigError("validate scenarios", fmt.Sprintf("duplicate profile name %q", name), nil)
		}
		seen[name] = true

		if err := ip.validateProfile(p); err != nil {
			return NewConfigError("validate scenarios", fmt.Sprintf("profile %s", name), err)
		}
	}

	if sf.Projection.HorizonYears < 0 {
		return NewConfigError("validate scenarios", "projection horizon cannot be negative", nil)
	}
	if sf.Projection.GrowthRate.LessThanOrEqual(domain.One.Neg()) || sf.Projection.InflationRate.LessThanOrEqual(domain.One.Neg()) {
		return NewConfigError("validate scenarios", "projection rates must be above -100%", nil)
	}
	return nil
}

func (ip *InputParser) validateProfile(p compare.Profile) error {
	switch v := p.(type) {
	case compare.EmployeeProfile:
		if v.MonthlySalary.IsNegative() || v.MonthlyAllowance.IsNegative() || v.AnnualBonus.IsNegative() {
			return fmt.Errorf("income amounts cannot be negative")
		}
		if v.MonthsWorked < 0 || v.MonthsWorked > 12 {
			return fmt.Errorf("months worked must be between 0 and 12")
		}
		if _, ok := domain.ParsePTKPStatus(string(v.Status)); !ok {
			return fmt.Errorf("unknown PTKP status %q", v.Status)
		}
	case compare.FreelancerProfile:
		if v.Gross.IsNegative() {
			return fmt.Errorf("gross cannot be negative")
		}
		if _, ok := domain.ParseProfessionCategory(string(v.Profession)); !ok {
			return fmt.Errorf("unknown profession %q", v.Profession)
		}
		if _, ok := domain.ParseRegionTier(string(v.Region)); !ok {
			return fmt.Errorf("unknown region %q", v.Region)
		}
		if _, ok := domain.ParsePTKPStatus(string(v.Status)); !ok {
			return fmt.Errorf("unknown PTKP status %q", v.Status)
		}
	case compare.SmallBusinessProfile:
		if v.Turnover.IsNegative() {
			return fmt.Errorf("turnover cannot be negative")
		}
	}
	return nil
}
