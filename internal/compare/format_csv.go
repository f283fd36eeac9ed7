package compare

import (
	"encoding/csv"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Profile",
		"Kind",
		"Gross",
		"Tax",
		"Mandatory Deduction",
		"Net",
		"Effective Rate",
		"Lowest Tax",
		"Highest Net",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	for _, r := range compSet.Results {
		if err := writer.Write(cf.formatRow(r, compSet)); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// formatRow formats a scenario result as a CSV row
func (cf *CSVFormatter) formatRow(r ScenarioResult, compSet *ComparisonSet) []string {
	return []string{
		r.Name,
		string(r.Kind),
		r.Gross.StringFixed(0),
		r.Tax.StringFixed(0),
		r.MandatoryDeduction.StringFixed(0),
		r.Net.StringFixed(0),
		r.Result.EffectiveRate.StringFixed(4),
		formatBool(r.Name == compSet.LowestTax),
		formatBool(r.Name == compSet.HighestNet),
	}
}

func formatBool(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
