package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/ulwant/HitungPajakku-sub001/internal/domain"
)

// ImportInput is a customs declaration. CIF is cost, insurance and freight already in rupiah.
type ImportInput struct {
	CIF      decimal.Decimal
	Category domain.ImportCategory
	HasAPI   bool // importer identification number (Angka Pengenal Importir)
	HasNPWP  bool
}

// Import computes import duty (bea masuk), then import VAT and PPh 22 on the import value
// (CIF plus duty)
func (e *Engine) Import(in ImportInput) domain.ComputationResult {
	cif := domain.ClampAmount(in.CIF)
	res := domain.ComputationResult{Kind: domain.KindImport, Gross: cif}
	rules := e.Regulation.Import

	dutyRate := e.lookup("import", e.DutyRate(in.Category), &res)
	duty := domain.WholeRupiah(cif.Mul(dutyRate))
	importValue := cif.Add(duty)
	res.TaxableBase = importValue

	vat := domain.WholeRupiah(importValue.Mul(rules.VATRate))
	pphRate := e.ImportIncomeTaxRate(in.HasAPI, in.HasNPWP)
	pph := domain.WholeRupiah(importValue.Mul(pphRate))

	res.TaxLines = []domain.TaxLine{
		{Label: "Bea masuk " + string(in.Category), Base: cif, Rate: dutyRate, Amount: duty},
		{Label: "PPN impor", Base: importValue, Rate: rules.VATRate, Amount: vat},
		{Label: "PPh 22 impor", Base: importValue, Rate: pphRate, Amount: pph},
	}
	res.Tax = domain.SumAmounts(duty, vat, pph)
	if !in.HasAPI {
		res.Notes = append(res.Notes, "no API: non-API PPh 22 rate")
	}
	if !in.HasNPWP {
		res.Surcharged = true
		res.Notes = append(res.Notes, "no NPWP: PPh 22 rate doubled")
	}
	return finishConsumption(res)
}
