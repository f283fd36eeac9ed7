package compare

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func buildTestComparisonSet() *ComparisonSet {
	return &ComparisonSet{
		ConfigPath: "/path/to/scenarios.yaml",
		Results: []ScenarioResult{
			{
				Name:               "Karyawan",
				Kind:               KindEmployee,
				Gross:              decimal.NewFromInt(120_000_000),
				Tax:                decimal.NewFromInt(2_820_000),
				MandatoryDeduction: decimal.NewFromInt(4_800_000),
				Net:                decimal.NewFromInt(112_380_000),
			},
			{
				Name:  "Warung",
				Kind:  KindSmallBusiness,
				Gross: decimal.NewFromInt(120_000_000),
				Tax:   decimal.Zero,
				Net:   decimal.NewFromInt(120_000_000),
			},
		},
		MinTax:          decimal.Zero,
		MaxTax:          decimal.NewFromInt(2_820_000),
		MinNet:          decimal.NewFromInt(112_380_000),
		MaxNet:          decimal.NewFromInt(120_000_000),
		LowestTax:       "Warung",
		HighestNet:      "Warung",
		Recommendations: []string{"Lowest Tax: Warung pays Rp2820000 less than the highest-tax profile"},
	}
}

func TestTableFormatter_Format(t *testing.T) {
	formatter := &TableFormatter{}
	result := formatter.Format(buildTestComparisonSet())

	if result == "" {
		t.Fatal("Expected formatted output, got empty string")
	}
	if !contains(result, "TAX PROFILE COMPARISON") {
		t.Error("Expected header in output")
	}
	if !contains(result, "Configuration: /path/to/scenarios.yaml") {
		t.Error("Expected config path in output")
	}
	if !contains(result, "Karyawan") || !contains(result, "Warung") {
		t.Error("Expected every profile in output")
	}
	if !contains(result, "Rp2.820.000") {
		t.Error("Expected grouped rupiah amounts")
	}
	if !contains(result, "RECOMMENDATIONS") {
		t.Error("Expected recommendations section")
	}
}

func TestTableFormatter_NoRecommendations(t *testing.T) {
	set := buildTestComparisonSet()
	set.Recommendations = nil
	set.ConfigPath = ""

	result := (&TableFormatter{}).Format(set)
	if contains(result, "RECOMMENDATIONS") {
		t.Error("Did not expect recommendations section")
	}
	if contains(result, "Configuration:") {
		t.Error("Did not expect configuration line")
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("Expected 'short', got %s", got)
	}
	if got := truncate("a very long profile name", 10); got != "a very ..." {
		t.Errorf("Expected truncated name, got %s", got)
	}
}

func TestCSVFormatter_Format(t *testing.T) {
	formatter := &CSVFormatter{}
	result, err := formatter.Format(buildTestComparisonSet())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(result), "\n")
	if len(lines) != 3 {
		t.Fatalf("Expected 3 lines (header + 2 rows), got %d", len(lines))
	}
	if !contains(lines[0], "Mandatory Deduction") {
		t.Error("Expected header columns")
	}
	if lines[1] != "Karyawan,employee,120000000,2820000,4800000,112380000,0.0000,no,no" {
		t.Errorf("Unexpected employee row: %s", lines[1])
	}
	if !strings.HasSuffix(lines[2], ",yes,yes") {
		t.Errorf("Expected lowest tax and highest net flags on Warung row: %s", lines[2])
	}
}

func TestJSONFormatter_Format(t *testing.T) {
	for _, pretty := range []bool{false, true} {
		formatter := &JSONFormatter{Pretty: pretty}
		result, err := formatter.Format(buildTestComparisonSet())
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}

		var decoded map[string]interface{}
		if err := json.Unmarshal([]byte(result), &decoded); err != nil {
			t.Fatalf("Output is not valid JSON: %v", err)
		}
		if decoded["lowestTax"] != "Warung" {
			t.Errorf("Expected lowestTax Warung, got %v", decoded["lowestTax"])
		}
		if _, ok := decoded["totalTax"].(string); !ok {
			t.Errorf("Expected totalTax as a decimal string, got %v", decoded["totalTax"])
		}
		if profiles, ok := decoded["profiles"].([]interface{}); !ok || len(profiles) != len(buildTestComparisonSet().Results) {
			t.Errorf("Expected one profile name per result, got %v", decoded["profiles"])
		}
		if pretty != strings.Contains(result, "\n  ") {
			t.Errorf("Pretty=%v mismatch in indentation", pretty)
		}
	}
}

func contains(s, substr string) bool {
	return strings.Contains(s, substr)
}
