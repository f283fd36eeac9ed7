package compare

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ulwant/HitungPajakku-sub001/internal/output"
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Format generates a formatted table comparing profiles
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString("TAX PROFILE COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 96) + "\n")
	if compSet.ConfigPath != "" {
		sb.WriteString(fmt.Sprintf("Configuration: %s\n", compSet.ConfigPath))
	}
	sb.WriteString("\n")

	nameWidth := 22
	kindWidth := 14
	numWidth := 18

	sb.WriteString(fmt.Sprintf("%-*s %-*s %*s %*s %*s\n",
		nameWidth, "Profile",
		kindWidth, "Kind",
		numWidth, "Tax",
		numWidth, "Mandatory Ded.",
		numWidth, "Net"))
	sb.WriteString(strings.Repeat("-", 96) + "\n")

	for _, r := range compSet.Results {
		marker := ""
		if r.Name == compSet.LowestTax {
			marker = " *"
		}
		sb.WriteString(fmt.Sprintf("%-*s %-*s %*s %*s %*s%s\n",
			nameWidth, truncate(r.Name, nameWidth),
			kindWidth, string(r.Kind),
			numWidth, output.FormatRupiah(r.Tax),
			numWidth, output.FormatRupiah(r.MandatoryDeduction),
			numWidth, output.FormatRupiah(r.Net),
			marker))
	}
	sb.WriteString(strings.Repeat("=", 96) + "\n")

	sb.WriteString(fmt.Sprintf("Tax range: %s to %s (spread %s)\n",
		output.FormatRupiah(compSet.MinTax), output.FormatRupiah(compSet.MaxTax), tf.formatSpread(compSet.MaxTax, compSet.MinTax)))
	sb.WriteString(fmt.Sprintf("Net range: %s to %s (spread %s)\n",
		output.FormatRupiah(compSet.MinNet), output.FormatRupiah(compSet.MaxNet), tf.formatSpread(compSet.MaxNet, compSet.MinNet)))

	if len(compSet.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 96) + "\n")
		for i, rec := range compSet.Recommendations {
			sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, rec))
		}
	}

	return sb.String()
}

func (tf *TableFormatter) formatSpread(high, low decimal.Decimal) string {
	return output.FormatRupiah(high.Sub(low))
}

func truncate(s string, width int) string {
	if len(s) <= width {
		return s
	}
	return s[:width-3] + "..."
}
