package calculation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ulwant/HitungPajakku-sub001/internal/domain"
)

// VATInput is a sale subject to PPN. Inclusive marks a price that already contains the
// tax; OtherValue applies the "DPP nilai lain" fraction used for ordinary goods.
type VATInput struct {
	Price      decimal.Decimal
	Inclusive  bool
	OtherValue bool
}

// LuxuryInput is a sale of luxury goods subject to PPN and PPnBM on the same base
type LuxuryInput struct {
	Price     decimal.Decimal
	Category  domain.LuxuryCategory
	Inclusive bool
}

// otherValue applies the DPP nilai lain fraction to v, multiplying before dividing
func (e *Engine) otherValue(v decimal.Decimal, apply bool) decimal.Decimal {
	rules := e.Regulation.VAT
	if !apply || rules.OtherValueDenominator <= 0 {
		return v
	}
	return v.Mul(decimal.NewFromInt(rules.OtherValueNumerator)).Div(decimal.NewFromInt(rules.OtherValueDenominator))
}

// splitInclusive extracts the pre-tax price from an inclusive price given the combined
// tax per unit of price
func splitInclusive(price, combinedRate decimal.Decimal) decimal.Decimal {
	divisor := domain.One.Add(combinedRate)
	return domain.WholeRupiah(price.DivRound(divisor, 8))
}

// VAT computes PPN. With an exclusive price the tax is added on top; with an inclusive
// price the pre-tax price is extracted first.
func (e *Engine) VAT(in VATInput) domain.ComputationResult {
	price := domain.ClampAmount(in.Price)
	rate := e.Regulation.VAT.Rate
	res := domain.ComputationResult{Kind: domain.KindVAT}

	if in.Inclusive {
		res.Gross = splitInclusive(price, e.otherValue(rate, in.OtherValue))
		res.Tax = price.Sub(res.Gross)
		res.Notes = append(res.Notes, "price includes PPN")
	} else {
		res.Gross = price
		res.Tax = domain.WholeRupiah(e.otherValue(price.Mul(rate), in.OtherValue))
	}
	res.TaxableBase = domain.WholeRupiah(e.otherValue(res.Gross, in.OtherValue))
	if in.OtherValue {
		res.Notes = append(res.Notes, fmt.Sprintf("DPP other value %d/%d", e.Regulation.VAT.OtherValueNumerator, e.Regulation.VAT.OtherValueDenominator))
	}
	res.TaxLines = []domain.TaxLine{{Label: "PPN", Base: res.TaxableBase, Rate: rate, Amount: res.Tax}}
	return finishConsumption(res)
}

// Luxury computes PPN and PPnBM, both on the full price as base
func (e *Engine) Luxury(in LuxuryInput) domain.ComputationResult {
	price := domain.ClampAmount(in.Price)
	res := domain.ComputationResult{Kind: domain.KindLuxury}
	vatRate := e.Regulation.VAT.Rate
	luxRate := e.lookup("ppnbm", e.LuxuryRate(in.Category), &res)

	if in.Inclusive {
		res.Gross = splitInclusive(price, vatRate.Add(luxRate))
		res.Notes = append(res.Notes, "price includes PPN and PPnBM")
	} else {
		res.Gross = price
	}
	res.TaxableBase = res.Gross

	vat := domain.WholeRupiah(res.TaxableBase.Mul(vatRate))
	lux := domain.WholeRupiah(res.TaxableBase.Mul(luxRate))
	if in.Inclusive {
		// rounding remainder goes to PPnBM so the parts still add up to the price,
		// or to PPN when there is no PPnBM to carry it
		if luxRate.IsPositive() {
			lux = price.Sub(res.Gross).Sub(vat)
			if lux.IsNegative() {
				vat = vat.Add(lux)
				lux = decimal.Zero
			}
		} else {
			vat = price.Sub(res.Gross)
			lux = decimal.Zero
		}
	}
	res.Tax = vat.Add(lux)
	res.TaxLines = []domain.TaxLine{
		{Label: "PPN", Base: res.TaxableBase, Rate: vatRate, Amount: vat},
		{Label: "PPnBM " + string(in.Category), Base: res.TaxableBase, Rate: luxRate, Amount: lux},
	}
	return finishConsumption(res)
}
