package output

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var idPrinter = message.NewPrinter(language.Indonesian)

// FormatRupiah formats a whole-rupiah amount with Indonesian digit grouping, e.g. Rp1.250.000
func FormatRupiah(amount decimal.Decimal) string {
	return "Rp" + FormatNumber(amount)
}

// FormatNumber groups the integer part of amount with dots
func FormatNumber(amount decimal.Decimal) string {
	return idPrinter.Sprintf("%d", amount.Floor().IntPart())
}

// FormatPercentage formats a rate as a percentage, trimming trailing zeros: 0.0175 -> 1,75%
func FormatPercentage(rate decimal.Decimal) string {
	s := rate.Mul(decimal.NewFromInt(100)).StringFixed(4)
	s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	return strings.Replace(s, ".", ",", 1) + "%"
}

// ParseRupiah reads an amount written with Indonesian grouping ("Rp1.250.000") or plain
// digits. A comma marks the decimal part; an empty string is zero.
func ParseRupiah(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(strings.TrimPrefix(s, "Rp"), "rp")
	s = strings.NewReplacer(".", "", "_", "", " ", "").Replace(s)
	s = strings.Replace(s, ",", ".", 1)
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q", s)
	}
	return d, nil
}
