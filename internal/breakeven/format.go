package breakeven

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ulwant/HitungPajakku-sub001/internal/output"
)

// TableFormatter formats gross-up results as a console table
type TableFormatter struct{}

// Format generates a formatted table for one gross-up result
func (tf *TableFormatter) Format(result *Result) string {
	var sb strings.Builder

	sb.WriteString("GROSS-UP RESULT\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")

	sb.WriteString(fmt.Sprintf("Profile:             %s (%s)\n", result.Request.Base.ProfileName(), result.Scenario.Kind))
	sb.WriteString(fmt.Sprintf("Target:              %s %s\n", result.Request.Metric, output.FormatRupiah(result.Request.Target)))
	sb.WriteString(fmt.Sprintf("Status:              %s\n", tf.formatStatus(result.Success)))
	sb.WriteString(fmt.Sprintf("Iterations:          %d\n", result.Iterations))
	if result.ConvergenceInfo != "" {
		sb.WriteString(fmt.Sprintf("Convergence:         %s\n", result.ConvergenceInfo))
	}
	sb.WriteString("\n")

	sb.WriteString("REQUIRED INCOME\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	sb.WriteString(fmt.Sprintf("%-20s %s\n", tf.inputLabel(result.InputField)+":", output.FormatRupiah(result.Input)))
	sb.WriteString(fmt.Sprintf("Annual Gross:        %s\n", output.FormatRupiah(result.RequiredGross)))
	sb.WriteString("\n")

	sb.WriteString("OUTCOME\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Tax:                 %s\n", output.FormatRupiah(result.Scenario.Tax)))
	sb.WriteString(fmt.Sprintf("Mandatory Deduction: %s\n", output.FormatRupiah(result.Scenario.MandatoryDeduction)))
	sb.WriteString(fmt.Sprintf("Net:                 %s\n", output.FormatRupiah(result.Scenario.Net)))
	sb.WriteString(fmt.Sprintf("Effective Rate:      %s\n", output.FormatPercentage(result.Scenario.Result.EffectiveRate)))
	sb.WriteString(fmt.Sprintf("Difference:          %s%s\n", tf.deltaSymbol(result.Difference), output.FormatRupiah(result.Difference.Abs())))
	sb.WriteString("\n")

	return sb.String()
}

// FormatMulti formats the gross-up of several profiles
func (tf *TableFormatter) FormatMulti(result *MultiResult) string {
	var sb strings.Builder

	sb.WriteString("GROSS-UP COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Target: %s %s\n\n", result.Metric, output.FormatRupiah(result.Target)))

	sb.WriteString(fmt.Sprintf("%-20s %-15s %20s %20s\n", "Profile", "Kind", "Required Gross", "Tax"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	for _, r := range result.Results {
		marker := ""
		if result.Cheapest != nil && r.Request.Base.ProfileName() == result.Cheapest.Request.Base.ProfileName() {
			marker = " *"
		}
		sb.WriteString(fmt.Sprintf("%-20s %-15s %20s %20s%s\n",
			tf.truncate(r.Request.Base.ProfileName(), 20),
			r.Scenario.Kind,
			output.FormatRupiah(r.RequiredGross),
			output.FormatRupiah(r.Scenario.Tax),
			marker))
	}
	sb.WriteString("\n")

	if len(result.Failed) > 0 {
		sb.WriteString("UNREACHABLE\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, f := range result.Failed {
			sb.WriteString(fmt.Sprintf("• %s\n", f))
		}
		sb.WriteString("\n")
	}

	if len(result.Recommendations) > 0 {
		sb.WriteString("RECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, rec := range result.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// JSONFormatter formats results as JSON
type JSONFormatter struct {
	Pretty bool
}

// Format generates JSON output for a single result or a MultiResult
func (jf *JSONFormatter) Format(result interface{}) (string, error) {
	var data []byte
	var err error

	if jf.Pretty {
		data, err = json.MarshalIndent(result, "", "  ")
	} else {
		data, err = json.Marshal(result)
	}

	if err != nil {
		return "", err
	}

	return string(data), nil
}

func (tf *TableFormatter) formatStatus(success bool) string {
	if success {
		return "✓ Converged"
	}
	return "⚠ Did not converge"
}

func (tf *TableFormatter) inputLabel(field string) string {
	switch field {
	case "monthly_salary":
		return "Monthly Salary"
	case "gross":
		return "Gross"
	case "turnover":
		return "Turnover"
	default:
		return field
	}
}

func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	} else if delta.IsNegative() {
		return "-"
	}
	return " "
}

func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
