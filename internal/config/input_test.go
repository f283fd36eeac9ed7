package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ulwant/HitungPajakku-sub001/internal/compare"
	"github.com/ulwant/HitungPajakku-sub001/internal/domain"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadRegulation_Defaults(t *testing.T) {
	parser := NewInputParser()

	reg, err := parser.LoadRegulation("")
	require.NoError(t, err)
	assert.Equal(t, "2025.1", reg.Version)

	reg, err = parser.ParseRegulation([]byte("   \n"))
	require.NoError(t, err)
	assert.True(t, reg.VAT.Rate.Equal(domain.Percent("12")))
}

func TestLoadRegulation_Overlay(t *testing.T) {
	path := writeFile(t, "override.yaml", `
version: "2026.0"
vat:
  rate: 0.11
withholding:
  service: 0.03
`)

	reg, err := NewInputParser().LoadRegulation(path)
	require.NoError(t, err)

	assert.Equal(t, "2026.0", reg.Version)
	assert.True(t, reg.VAT.Rate.Equal(domain.Percent("11")))
	assert.Equal(t, int64(11), reg.VAT.OtherValueNumerator, "untouched fields keep defaults")
	assert.True(t, reg.Withholding[domain.WithholdingService].Equal(domain.Percent("3")))
	assert.True(t, reg.Withholding[domain.WithholdingRoyalty].Equal(domain.Percent("15")), "table entries are merged")
	assert.Len(t, reg.Income.Progressive.Brackets, 5)
}

func TestParseRegulation_NormOverlayKeepsOtherTiers(t *testing.T) {
	reg, err := NewInputParser().ParseRegulation([]byte("norm:\n  doctor:\n    other: 0.3\n"))
	require.NoError(t, err)

	doctor := reg.Norm[domain.ProfessionDoctor]
	assert.True(t, doctor.Other.Equal(domain.Percent("30")), "got %s", doctor.Other)
	assert.True(t, doctor.MajorCity.Equal(domain.Percent("50")), "got %s", doctor.MajorCity)
	assert.True(t, doctor.ProvincialCapital.Equal(domain.Percent("45")), "got %s", doctor.ProvincialCapital)
	assert.True(t, reg.Norm[domain.ProfessionNotary].MajorCity.Equal(domain.Percent("30")), "untouched professions keep defaults")

	lookup := reg.Norm.Lookup(domain.ProfessionDoctor, domain.RegionMajorCity)
	assert.False(t, lookup.Defaulted)
	assert.True(t, lookup.Rate.Equal(domain.Percent("50")))
}

func TestLoadRegulation_Errors(t *testing.T) {
	parser := NewInputParser()

	tests := []struct {
		name string
		yaml string
	}{
		{"bounded final bracket", "income:\n  progressive:\n    name: p\n    brackets:\n      - width: 1000\n        rate: 0.05\n"},
		{"rate above one", "vat:\n  rate: 1.5\n"},
		{"negative threshold", "small_business:\n  threshold: -1\n"},
		{"multiplier below one", "income:\n  no_npwp_multiplier: 0.5\n"},
		{"malformed yaml", "vat: [unclosed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parser.ParseRegulation([]byte(tt.yaml))
			require.Error(t, err)
			var cfgErr *ConfigError
			assert.True(t, errors.As(err, &cfgErr))
		})
	}

	_, err := parser.LoadRegulation(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestDumpRegulation_Reloads(t *testing.T) {
	parser := NewInputParser()
	reg := domain.DefaultRegulation()
	reg.Version = "dumped"

	data, err := parser.DumpRegulation(reg)
	require.NoError(t, err)
	assert.Contains(t, string(data), "small_business:")

	reloaded, err := parser.ParseRegulation(data)
	require.NoError(t, err)
	assert.Equal(t, "dumped", reloaded.Version)
	assert.True(t, reloaded.Penalty.ReferenceRate.Equal(reg.Penalty.ReferenceRate))
	assert.True(t, reloaded.Norm[domain.ProfessionNotary].Other.Equal(domain.Percent("20")))
}

const scenarioYAML = `
name: career options
projection:
  growth_rate: 0.05
  inflation_rate: 0.03
  horizon_years: 5
profiles:
  - kind: employee
    name: Karyawan
    monthly_salary: 10000000
    status: k1
    has_npwp: true
  - kind: freelancer
    name: Dokter
    gross: 120000000
    profession: Doctor
    region: major-city
    status: TK/0
  - kind: small_business
    name: Warung
    turnover: 600000000
`

func TestParseScenarios(t *testing.T) {
	sf, err := NewInputParser().ParseScenarios([]byte(scenarioYAML))
	require.NoError(t, err)

	assert.Equal(t, "career options", sf.Name)
	assert.Equal(t, 5, sf.Projection.HorizonYears)
	assert.True(t, sf.Projection.GrowthRate.Equal(domain.Percent("5")))
	require.Len(t, sf.Profiles, 3)

	emp, ok := sf.Profiles[0].(compare.EmployeeProfile)
	require.True(t, ok)
	assert.Equal(t, domain.PTKPMarried1, emp.Status)
	assert.True(t, emp.HasNPWP)
	assert.True(t, emp.MonthlySalary.Equal(domain.Rupiah(10_000_000)))

	free, ok := sf.Profiles[1].(compare.FreelancerProfile)
	require.True(t, ok)
	assert.Equal(t, domain.ProfessionDoctor, free.Profession)
	assert.Equal(t, domain.RegionMajorCity, free.Region)

	biz, ok := sf.Profiles[2].(compare.SmallBusinessProfile)
	require.True(t, ok)
	assert.True(t, biz.Turnover.Equal(domain.Rupiah(600_000_000)))
}

func TestLoadScenarios_File(t *testing.T) {
	path := writeFile(t, "scenarios.yaml", scenarioYAML)
	sf, err := NewInputParser().LoadScenarios(path)
	require.NoError(t, err)
	assert.Len(t, sf.Profiles, 3)
}

func TestParseScenarios_Errors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		message string
	}{
		{"no profiles", "name: empty\n", "no profiles"},
		{"missing kind", "profiles:\n  - name: a\n", "kind is required"},
		{"unknown kind", "profiles:\n  - kind: pensioner\n    name: a\n", "unknown kind"},
		{"missing name", "profiles:\n  - kind: small_business\n    turnover: 1\n", "name is required"},
		{"duplicate name", "profiles:\n  - kind: small_business\n    name: a\n  - kind: small_business\n    name: a\n", "duplicate profile name"},
		{"bad months", "profiles:\n  - kind: employee\n    name: a\n    months_worked: 13\n", "months worked"},
		{"unknown profession", "profiles:\n  - kind: freelancer\n    name: a\n    profession: astronaut\n    region: other\n", "unknown profession"},
		{"negative turnover", "profiles:\n  - kind: small_business\n    name: a\n    turnover: -5\n", "turnover cannot be negative"},
		{"negative horizon", "projection:\n  horizon_years: -1\nprofiles:\n  - kind: small_business\n    name: a\n", "horizon"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewInputParser().ParseScenarios([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}
