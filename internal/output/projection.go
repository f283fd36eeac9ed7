package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/ulwant/HitungPajakku-sub001/internal/domain"
)

// FormatProjectionTable renders a projection as a console table
func FormatProjectionTable(p domain.ProjectionResult) string {
	var sb strings.Builder
	title := fmt.Sprintf("PROJECTION: %s", p.Name)
	sb.WriteString(title + "\n")
	sb.WriteString(strings.Repeat("=", 90) + "\n")
	sb.WriteString(fmt.Sprintf("Growth %s, inflation %s, %d year(s)\n\n",
		FormatPercentage(p.Parameters.GrowthRate), FormatPercentage(p.Parameters.InflationRate), p.Parameters.HorizonYears))

	sb.WriteString(fmt.Sprintf("%-5s %20s %18s %20s %20s\n", "Year", "Gross", "Tax", "Net", "Real Net"))
	sb.WriteString(strings.Repeat("-", 90) + "\n")
	for _, y := range p.Years {
		sb.WriteString(fmt.Sprintf("%-5d %20s %18s %20s %20s\n",
			y.Offset, FormatRupiah(y.Result.Gross), FormatRupiah(y.Result.Tax), FormatRupiah(y.Result.Net), FormatRupiah(y.RealNet)))
	}
	sb.WriteString(strings.Repeat("-", 90) + "\n")
	sb.WriteString(fmt.Sprintf("%-5s %20s %18s %20s %20s\n", "Total", "", FormatRupiah(p.TotalTax), FormatRupiah(p.TotalNet), FormatRupiah(p.TotalRealNet)))
	return sb.String()
}

// FormatProjectionCSV renders one row per projection year
func FormatProjectionCSV(p domain.ProjectionResult) (string, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write([]string{"Year", "GrowthFactor", "DiscountFactor", "Gross", "Tax", "Net", "RealTax", "RealNet"}); err != nil {
		return "", err
	}
	for _, y := range p.Years {
		row := []string{
			fmt.Sprintf("%d", y.Offset),
			y.GrowthFactor.String(),
			y.DiscountFactor.String(),
			y.Result.Gross.StringFixed(0),
			y.Result.Tax.StringFixed(0),
			y.Result.Net.StringFixed(0),
			y.RealTax.StringFixed(0),
			y.RealNet.StringFixed(0),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	return buf.String(), w.Error()
}
