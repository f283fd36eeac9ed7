package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/ulwant/HitungPajakku-sub001/internal/domain"
)

var two = decimal.NewFromInt(2)

// DoubleRateWithoutNPWP is the rate-level surcharge of withholding regimes (PPh 23, PPh 22
// import): a taxpayer without an NPWP is withheld at twice the base rate.
func DoubleRateWithoutNPWP(rate decimal.Decimal, hasNPWP bool) decimal.Decimal {
	if hasNPWP {
		return rate
	}
	return rate.Mul(two)
}

// ApplyWageSurchargeWithoutNPWP is the amount-level surcharge of the annual PPh 21 pipeline:
// the computed tax, not the rate, is multiplied by the configured factor (1.2).
func ApplyWageSurchargeWithoutNPWP(tax, multiplier decimal.Decimal, hasNPWP bool) decimal.Decimal {
	if hasNPWP {
		return tax
	}
	return domain.WholeRupiah(tax.Mul(multiplier))
}

// WithholdingRate resolves a PPh 23 category and applies the rate-level surcharge
func (e *Engine) WithholdingRate(c domain.WithholdingCategory, hasNPWP bool) domain.RateLookup {
	l := e.Regulation.Withholding.Lookup(c)
	l.Rate = DoubleRateWithoutNPWP(l.Rate, hasNPWP)
	return l
}

// FinalRate resolves a PPh final 4(2) category
func (e *Engine) FinalRate(c domain.FinalCategory) domain.RateLookup {
	return e.Regulation.Final.Lookup(c)
}

// InvestmentRate resolves an investment asset
func (e *Engine) InvestmentRate(a domain.InvestmentAsset) domain.RateLookup {
	return e.Regulation.Investment.Lookup(a)
}

// LuxuryRate resolves a PPnBM goods group
func (e *Engine) LuxuryRate(c domain.LuxuryCategory) domain.RateLookup {
	return e.Regulation.Luxury.Lookup(c)
}

// DutyRate resolves an import goods group
func (e *Engine) DutyRate(c domain.ImportCategory) domain.RateLookup {
	return e.Regulation.Import.Duty.Lookup(c)
}

// ImportIncomeTaxRate is the PPh 22 import rate: the API/non-API base rate with the
// rate-level surcharge for importers without an NPWP
func (e *Engine) ImportIncomeTaxRate(hasAPI, hasNPWP bool) decimal.Decimal {
	rate := e.Regulation.Import.IncomeTaxWithoutAPI
	if hasAPI {
		rate = e.Regulation.Import.IncomeTaxWithAPI
	}
	return DoubleRateWithoutNPWP(rate, hasNPWP)
}

// NormRate resolves a profession and region tier
func (e *Engine) NormRate(p domain.ProfessionCategory, r domain.RegionTier) domain.RateLookup {
	return e.Regulation.Norm.Lookup(p, r)
}
