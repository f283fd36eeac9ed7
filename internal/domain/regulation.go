package domain

import (
	"github.com/shopspring/decimal"
)

// Regulation contains every rate table and schedule the engine reads. It is static,
// versioned configuration: built once (from DefaultRegulation or a YAML override) and
// never mutated afterwards.
type Regulation struct {
	Version       string `yaml:"version" json:"version"`
	EffectiveFrom string `yaml:"effective_from" json:"effective_from"`

	Income        IncomeRules                    `yaml:"income" json:"income"`
	Contributions []ContributionComponent        `yaml:"contributions" json:"contributions"`
	Withholding   RateTable[WithholdingCategory] `yaml:"withholding" json:"withholding"`
	Final         RateTable[FinalCategory]       `yaml:"final" json:"final"`
	SmallBusiness SmallBusinessRules             `yaml:"small_business" json:"small_business"`
	Investment    RateTable[InvestmentAsset]     `yaml:"investment" json:"investment"`
	VAT           VATRules                       `yaml:"vat" json:"vat"`
	Luxury        RateTable[LuxuryCategory]      `yaml:"luxury" json:"luxury"`
	Import        ImportRules                    `yaml:"import" json:"import"`
	Norm          NormTable                      `yaml:"norm" json:"norm"`
	Penalty       PenaltyRules                   `yaml:"penalty" json:"penalty"`
}

// IncomeRules holds the wage (PPh 21) pipeline configuration
type IncomeRules struct {
	Progressive      Schedule         `yaml:"progressive" json:"progressive"`
	Severance        Schedule         `yaml:"severance" json:"severance"`
	RetirementPayout Schedule         `yaml:"retirement_payout" json:"retirement_payout"`
	PTKP             PTKPRules        `yaml:"ptkp" json:"ptkp"`
	OccupationalCost OccupationalCost `yaml:"occupational_cost" json:"occupational_cost"`
	NoNPWPMultiplier decimal.Decimal  `yaml:"no_npwp_multiplier" json:"no_npwp_multiplier"`
	TaxableRounding  decimal.Decimal  `yaml:"taxable_rounding" json:"taxable_rounding"`
}

// PTKPRules builds the non-taxable threshold from a status
type PTKPRules struct {
	Base          decimal.Decimal `yaml:"base" json:"base"`
	Married       decimal.Decimal `yaml:"married" json:"married"`
	PerDependent  decimal.Decimal `yaml:"per_dependent" json:"per_dependent"`
	MaxDependents int             `yaml:"max_dependents" json:"max_dependents"`
}

// Threshold returns the annual PTKP for a status
func (p PTKPRules) Threshold(s PTKPStatus) decimal.Decimal {
	total := p.Base
	if s.Married() {
		total = total.Add(p.Married)
	}
	deps := s.Dependents()
	if deps > p.MaxDependents {
		deps = p.MaxDependents
	}
	return total.Add(p.PerDependent.Mul(decimal.NewFromInt(int64(deps))))
}

// OccupationalCost is the biaya jabatan deduction: a rate of gross capped per month worked
type OccupationalCost struct {
	Rate       decimal.Decimal `yaml:"rate" json:"rate"`
	MonthlyCap decimal.Decimal `yaml:"monthly_cap" json:"monthly_cap"`
}

// ContributionComponent is one parallel capped deduction. A zero Cap means uncapped.
type ContributionComponent struct {
	Label         string          `yaml:"label" json:"label"`
	Rate          decimal.Decimal `yaml:"rate" json:"rate"`
	Cap           decimal.Decimal `yaml:"cap" json:"cap"`
	TaxDeductible bool            `yaml:"tax_deductible" json:"tax_deductible"`
}

// SmallBusinessRules is the flat-final turnover regime
type SmallBusinessRules struct {
	Rate      decimal.Decimal `yaml:"rate" json:"rate"`
	Threshold decimal.Decimal `yaml:"threshold" json:"threshold"`
}

// VATRules holds PPN configuration. OtherValue is the "DPP nilai lain" fraction applied to
// the price of ordinary goods before the rate.
type VATRules struct {
	Rate                  decimal.Decimal `yaml:"rate" json:"rate"`
	OtherValueNumerator   int64           `yaml:"other_value_numerator" json:"other_value_numerator"`
	OtherValueDenominator int64           `yaml:"other_value_denominator" json:"other_value_denominator"`
}

// ImportRules holds customs configuration
type ImportRules struct {
	Duty                RateTable[ImportCategory] `yaml:"duty" json:"duty"`
	VATRate             decimal.Decimal           `yaml:"vat_rate" json:"vat_rate"`
	IncomeTaxWithAPI    decimal.Decimal           `yaml:"income_tax_with_api" json:"income_tax_with_api"`
	IncomeTaxWithoutAPI decimal.Decimal           `yaml:"income_tax_without_api" json:"income_tax_without_api"`
}

// PenaltyRules holds the default interest parameters and administrative fine presets
type PenaltyRules struct {
	ReferenceRate decimal.Decimal                   `yaml:"reference_rate" json:"reference_rate"`
	UpliftFactor  decimal.Decimal                   `yaml:"uplift_factor" json:"uplift_factor"`
	AdminFines    map[AdminFineKind]decimal.Decimal `yaml:"admin_fines" json:"admin_fines"`
}

// Parameters returns the default penalty parameters
func (p PenaltyRules) Parameters() PenaltyParameters {
	return PenaltyParameters{ReferenceRate: p.ReferenceRate, UpliftFactor: p.UpliftFactor}
}

// DefaultRegulation returns the built-in 2025 configuration
func DefaultRegulation() Regulation {
	return Regulation{
		Version:       "2025.1",
		EffectiveFrom: "2025-01-01",
		Income: IncomeRules{
			Progressive: Schedule{
				Name: "progressive",
				Brackets: []Bracket{
					{Width: Rupiah(60_000_000), Rate: Percent("5")},
					{Width: Rupiah(190_000_000), Rate: Percent("15")},
					{Width: Rupiah(250_000_000), Rate: Percent("25")},
					{Width: Rupiah(4_500_000_000), Rate: Percent("30")},
					{Rate: Percent("35"), Unbounded: true},
				},
			},
			Severance: Schedule{
				Name: "severance",
				Brackets: []Bracket{
					{Width: Rupiah(50_000_000), Rate: decimal.Zero},
					{Width: Rupiah(50_000_000), Rate: Percent("5")},
					{Width: Rupiah(400_000_000), Rate: Percent("15")},
					{Rate: Percent("25"), Unbounded: true},
				},
			},
			RetirementPayout: Schedule{
				Name: "retirement_payout",
				Brackets: []Bracket{
					{Width: Rupiah(50_000_000), Rate: decimal.Zero},
					{Rate: Percent("5"), Unbounded: true},
				},
			},
			PTKP: PTKPRules{
				Base:          Rupiah(54_000_000),
				Married:       Rupiah(4_500_000),
				PerDependent:  Rupiah(4_500_000),
				MaxDependents: 3,
			},
			OccupationalCost: OccupationalCost{
				Rate:       Percent("5"),
				MonthlyCap: Rupiah(500_000),
			},
			NoNPWPMultiplier: decimal.RequireFromString("1.2"),
			TaxableRounding:  Thousand,
		},
		Contributions: []ContributionComponent{
			{Label: "JHT", Rate: Percent("2"), Cap: decimal.Zero, TaxDeductible: true},
			{Label: "JP", Rate: Percent("1"), Cap: Rupiah(10_042_300), TaxDeductible: true},
			{Label: "BPJS Kesehatan", Rate: Percent("1"), Cap: Rupiah(12_000_000), TaxDeductible: false},
		},
		Withholding: RateTable[WithholdingCategory]{
			WithholdingService:  Percent("2"),
			WithholdingRoyalty:  Percent("15"),
			WithholdingDividend: Percent("15"),
			WithholdingInterest: Percent("15"),
			WithholdingPrize:    Percent("15"),
			WithholdingRent:     Percent("2"),
		},
		Final: RateTable[FinalCategory]{
			FinalLandBuildingRent:        Percent("10"),
			FinalLandBuildingTransfer:    Percent("2.5"),
			FinalConstructionSmall:       Percent("1.75"),
			FinalConstructionQualified:   Percent("2.65"),
			FinalConstructionUnqualified: Percent("4"),
			FinalConstructionConsulting:  Percent("3.5"),
			FinalDepositInterest:         Percent("20"),
			FinalLotteryPrize:            Percent("25"),
			FinalIndividualDividend:      Percent("10"),
		},
		SmallBusiness: SmallBusinessRules{
			Rate:      Percent("0.5"),
			Threshold: Rupiah(500_000_000),
		},
		Investment: RateTable[InvestmentAsset]{
			AssetListedShares:       Percent("0.1"),
			AssetGovernmentBonds:    Percent("10"),
			AssetTimeDeposit:        Percent("20"),
			AssetMutualFund:         decimal.Zero,
			AssetCryptoRegistered:   Percent("0.1"),
			AssetCryptoUnregistered: Percent("0.2"),
		},
		VAT: VATRules{
			Rate:                  Percent("12"),
			OtherValueNumerator:   11,
			OtherValueDenominator: 12,
		},
		Luxury: RateTable[LuxuryCategory]{
			LuxuryResidence:   Percent("20"),
			LuxuryAircraft:    Percent("50"),
			LuxuryYacht:       Percent("75"),
			LuxuryFirearms:    Percent("40"),
			LuxuryVehicleLow:  Percent("15"),
			LuxuryVehicleMid:  Percent("40"),
			LuxuryVehicleHigh: Percent("70"),
		},
		Import: ImportRules{
			Duty: RateTable[ImportCategory]{
				ImportGeneral:      Percent("7.5"),
				ImportTextiles:     Percent("25"),
				ImportFootwear:     Percent("30"),
				ImportElectronics:  Percent("10"),
				ImportVehicleParts: Percent("15"),
				ImportBooks:        decimal.Zero,
				ImportFood:         Percent("5"),
			},
			VATRate:             Percent("11"),
			IncomeTaxWithAPI:    Percent("2.5"),
			IncomeTaxWithoutAPI: Percent("7.5"),
		},
		Norm: NormTable{
			ProfessionDoctor:     {MajorCity: Percent("50"), ProvincialCapital: Percent("45"), Other: Percent("40")},
			ProfessionLawyer:     {MajorCity: Percent("50"), ProvincialCapital: Percent("45"), Other: Percent("40")},
			ProfessionNotary:     {MajorCity: Percent("30"), ProvincialCapital: Percent("25"), Other: Percent("20")},
			ProfessionConsultant: {MajorCity: Percent("50"), ProvincialCapital: Percent("45"), Other: Percent("40")},
			ProfessionArchitect:  {MajorCity: Percent("50"), ProvincialCapital: Percent("45"), Other: Percent("40")},
			ProfessionArtist:     {MajorCity: Percent("50"), ProvincialCapital: Percent("45"), Other: Percent("40")},
			ProfessionWriter:     {MajorCity: Percent("50"), ProvincialCapital: Percent("45"), Other: Percent("40")},
			ProfessionAthlete:    {MajorCity: Percent("50"), ProvincialCapital: Percent("45"), Other: Percent("40")},
			ProfessionFreelance:  {MajorCity: Percent("50"), ProvincialCapital: Percent("45"), Other: Percent("40")},
		},
		Penalty: PenaltyRules{
			ReferenceRate: Percent("5.83"),
			UpliftFactor:  Percent("5"),
			AdminFines: map[AdminFineKind]decimal.Decimal{
				AdminFineNone:             decimal.Zero,
				AdminFineAnnualIndividual: Rupiah(100_000),
				AdminFineAnnualCorporate:  Rupiah(1_000_000),
				AdminFineMonthlyVAT:       Rupiah(500_000),
				AdminFineMonthlyOther:     Rupiah(100_000),
			},
		},
	}
}
