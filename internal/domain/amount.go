package domain

import (
	"math"

	"github.com/shopspring/decimal"
)

// Common decimal constants used across the engine
var (
	Hundred  = decimal.NewFromInt(100)
	Twelve   = decimal.NewFromInt(12)
	Thousand = decimal.NewFromInt(1000)
	One      = decimal.NewFromInt(1)
)

// Rupiah builds a whole-rupiah amount
func Rupiah(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

// Percent builds a rate from a percentage expressed as a string, e.g. Percent("0.5") == 0.005.
// It panics on malformed input and is meant for static configuration only.
func Percent(p string) decimal.Decimal {
	return decimal.RequireFromString(p).Div(Hundred)
}

// ClampAmount maps negative amounts to zero. Inputs below zero are clamped, never rejected.
func ClampAmount(a decimal.Decimal) decimal.Decimal {
	if a.IsNegative() {
		return decimal.Zero
	}
	return a
}

// WholeRupiah truncates an amount to whole currency units
func WholeRupiah(a decimal.Decimal) decimal.Decimal {
	return a.Floor()
}

// ClampRate maps a negative rate to zero
func ClampRate(r decimal.Decimal) decimal.Decimal {
	if r.IsNegative() {
		return decimal.Zero
	}
	return r
}

// RateFromFloat converts a caller supplied float rate. NaN, infinities and negatives become zero.
func RateFromFloat(f float64) decimal.Decimal {
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return decimal.Zero
	}
	return decimal.NewFromFloat(f)
}

// SumAmounts adds a list of amounts
func SumAmounts(amounts ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}
