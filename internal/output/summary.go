package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ulwant/HitungPajakku-sub001/internal/domain"
)

var kindTitles = map[domain.ResultKind]string{
	domain.KindWageAnnual:       "PPh 21 Annual Wage",
	domain.KindSeverance:        "PPh 21 Severance (Pesangon)",
	domain.KindRetirementPayout: "PPh 21 Retirement Payout",
	domain.KindWithholding:      "PPh 23 Withholding",
	domain.KindFinal:            "PPh Final Article 4(2)",
	domain.KindSmallBusiness:    "PPh Final UMKM",
	domain.KindInvestment:       "PPh Final Investment",
	domain.KindVAT:              "PPN",
	domain.KindLuxury:           "PPN + PPnBM",
	domain.KindImport:           "Import Duty and Taxes",
	domain.KindProfessionalNorm: "PPh Professional Norm (NPPN)",
	domain.KindPenalty:          "Late Payment Penalty",
}

// Title returns the display name of a result kind
func Title(kind domain.ResultKind) string {
	if t, ok := kindTitles[kind]; ok {
		return t
	}
	return string(kind)
}

// Summary is the one-paragraph human-readable description handed to the output sink
func Summary(res domain.ComputationResult) string {
	if res.AddsToGross() {
		return fmt.Sprintf("%s: base %s, tax %s, total payable %s (effective %s).",
			Title(res.Kind), FormatRupiah(res.Gross), FormatRupiah(res.Tax), FormatRupiah(res.Net), FormatPercentage(res.EffectiveRate))
	}
	return fmt.Sprintf("%s: gross %s, taxable %s, tax %s, net %s (effective %s).",
		Title(res.Kind), FormatRupiah(res.Gross), FormatRupiah(res.TaxableBase), FormatRupiah(res.Tax),
		FormatRupiah(res.Net), FormatPercentage(res.EffectiveRate))
}

// PenaltySummary describes a penalty computation
func PenaltySummary(p domain.PenaltyResult) string {
	return fmt.Sprintf("Late payment of %s: %d month(s) at %s per month, interest %s, admin fine %s, total payable %s.",
		FormatRupiah(p.Principal), p.MonthsLate, FormatPercentage(p.MonthlyRate), FormatRupiah(p.InterestFine),
		FormatRupiah(p.AdminFine), FormatRupiah(p.TotalPayable))
}

// WriteBreakdown renders the full gross-to-net breakdown of a result
func WriteBreakdown(buf *bytes.Buffer, res domain.ComputationResult) {
	title := strings.ToUpper(Title(res.Kind))
	fmt.Fprintln(buf, title)
	fmt.Fprintln(buf, strings.Repeat("=", len(title)))

	line := func(label, value string) { fmt.Fprintf(buf, "%-34s %20s\n", label, value) }

	grossLabel := "Gross"
	if res.AddsToGross() {
		grossLabel = "Base price / value"
	}
	line(grossLabel, FormatRupiah(res.Gross))

	for _, d := range res.Deductions {
		flags := ""
		switch {
		case d.ReducesBase && d.Withheld:
			flags = " (deducted, withheld)"
		case d.ReducesBase:
			flags = " (deducted)"
		case d.Withheld:
			flags = " (withheld)"
		}
		line("  - "+d.Label+flags, FormatRupiah(d.Amount))
	}
	line("Taxable base", FormatRupiah(res.TaxableBase))

	if len(res.Brackets) > 0 {
		fmt.Fprintln(buf)
		fmt.Fprintln(buf, "Bracket allocation")
		for _, b := range res.Brackets {
			fmt.Fprintf(buf, "  %s x %-6s %20s\n", FormatRupiah(b.Taxed), FormatPercentage(b.Rate), FormatRupiah(b.Tax))
		}
	}
	if len(res.TaxLines) > 0 {
		fmt.Fprintln(buf)
		for _, tl := range res.TaxLines {
			line(fmt.Sprintf("%s (%s)", tl.Label, FormatPercentage(tl.Rate)), FormatRupiah(tl.Amount))
		}
	}

	fmt.Fprintln(buf, strings.Repeat("-", 55))
	line("Tax", FormatRupiah(res.Tax))
	if res.AddsToGross() {
		line("Total payable", FormatRupiah(res.Net))
	} else {
		line("Net", FormatRupiah(res.Net))
	}
	line("Effective rate", FormatPercentage(res.EffectiveRate))

	for _, n := range res.Notes {
		fmt.Fprintf(buf, "note: %s\n", n)
	}
	for _, d := range res.Defaulted {
		fmt.Fprintf(buf, "warning: unknown key %s, zero rate used\n", d)
	}
}
