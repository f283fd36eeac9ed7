package domain

import "strings"

// Category families are closed sets. Every family lists its members in an All… function;
// switch statements over a family are expected to cover each member, and tests assert that
// the default regulation carries a rate for every one of them.

// WithholdingCategory identifies a PPh 23 object of tax
type WithholdingCategory string

const (
	WithholdingService  WithholdingCategory = "service"
	WithholdingRoyalty  WithholdingCategory = "royalty"
	WithholdingDividend WithholdingCategory = "dividend"
	WithholdingInterest WithholdingCategory = "interest"
	WithholdingPrize    WithholdingCategory = "prize"
	WithholdingRent     WithholdingCategory = "rent"
)

// AllWithholdingCategories lists every PPh 23 category
func AllWithholdingCategories() []WithholdingCategory {
	return []WithholdingCategory{
		WithholdingService, WithholdingRoyalty, WithholdingDividend,
		WithholdingInterest, WithholdingPrize, WithholdingRent,
	}
}

// ParseWithholdingCategory normalizes a key. The second result reports whether the key is known;
// an unknown key is still returned so a rate lookup can record the default.
func ParseWithholdingCategory(s string) (WithholdingCategory, bool) {
	c := WithholdingCategory(normalizeKey(s))
	return c, containsKey(AllWithholdingCategories(), c)
}

// FinalCategory identifies a PPh final (article 4 paragraph 2) object of tax
type FinalCategory string

const (
	FinalLandBuildingRent        FinalCategory = "land_building_rent"
	FinalLandBuildingTransfer    FinalCategory = "land_building_transfer"
	FinalConstructionSmall       FinalCategory = "construction_small"
	FinalConstructionQualified   FinalCategory = "construction_qualified"
	FinalConstructionUnqualified FinalCategory = "construction_unqualified"
	FinalConstructionConsulting  FinalCategory = "construction_consulting"
	FinalDepositInterest         FinalCategory = "deposit_interest"
	FinalLotteryPrize            FinalCategory = "lottery_prize"
	FinalIndividualDividend      FinalCategory = "individual_dividend"
)

// AllFinalCategories lists every PPh final category
func AllFinalCategories() []FinalCategory {
	return []FinalCategory{
		FinalLandBuildingRent, FinalLandBuildingTransfer, FinalConstructionSmall,
		FinalConstructionQualified, FinalConstructionUnqualified, FinalConstructionConsulting,
		FinalDepositInterest, FinalLotteryPrize, FinalIndividualDividend,
	}
}

// ParseFinalCategory normalizes a final-tax key
func ParseFinalCategory(s string) (FinalCategory, bool) {
	c := FinalCategory(normalizeKey(s))
	return c, containsKey(AllFinalCategories(), c)
}

// InvestmentAsset identifies an investment instrument taxed at a final rate
type InvestmentAsset string

const (
	AssetListedShares       InvestmentAsset = "listed_shares"
	AssetGovernmentBonds    InvestmentAsset = "government_bonds"
	AssetTimeDeposit        InvestmentAsset = "time_deposit"
	AssetMutualFund         InvestmentAsset = "mutual_fund"
	AssetCryptoRegistered   InvestmentAsset = "crypto_registered"
	AssetCryptoUnregistered InvestmentAsset = "crypto_unregistered"
)

// AllInvestmentAssets lists every investment asset
func AllInvestmentAssets() []InvestmentAsset {
	return []InvestmentAsset{
		AssetListedShares, AssetGovernmentBonds, AssetTimeDeposit,
		AssetMutualFund, AssetCryptoRegistered, AssetCryptoUnregistered,
	}
}

// ParseInvestmentAsset normalizes an investment key
func ParseInvestmentAsset(s string) (InvestmentAsset, bool) {
	c := InvestmentAsset(normalizeKey(s))
	return c, containsKey(AllInvestmentAssets(), c)
}

// ImportCategory identifies a goods group for import duty (bea masuk)
type ImportCategory string

const (
	ImportGeneral      ImportCategory = "general"
	ImportTextiles     ImportCategory = "textiles"
	ImportFootwear     ImportCategory = "footwear"
	ImportElectronics  ImportCategory = "electronics"
	ImportVehicleParts ImportCategory = "vehicle_parts"
	ImportBooks        ImportCategory = "books"
	ImportFood         ImportCategory = "food"
)

// AllImportCategories lists every import goods group
func AllImportCategories() []ImportCategory {
	return []ImportCategory{
		ImportGeneral, ImportTextiles, ImportFootwear, ImportElectronics,
		ImportVehicleParts, ImportBooks, ImportFood,
	}
}

// ParseImportCategory normalizes an import goods key
func ParseImportCategory(s string) (ImportCategory, bool) {
	c := ImportCategory(normalizeKey(s))
	return c, containsKey(AllImportCategories(), c)
}

// LuxuryCategory identifies a PPnBM goods group
type LuxuryCategory string

const (
	LuxuryResidence   LuxuryCategory = "residence"
	LuxuryAircraft    LuxuryCategory = "aircraft"
	LuxuryYacht       LuxuryCategory = "yacht"
	LuxuryFirearms    LuxuryCategory = "firearms"
	LuxuryVehicleLow  LuxuryCategory = "vehicle_low"
	LuxuryVehicleMid  LuxuryCategory = "vehicle_mid"
	LuxuryVehicleHigh LuxuryCategory = "vehicle_high"
)

// AllLuxuryCategories lists every PPnBM group
func AllLuxuryCategories() []LuxuryCategory {
	return []LuxuryCategory{
		LuxuryResidence, LuxuryAircraft, LuxuryYacht, LuxuryFirearms,
		LuxuryVehicleLow, LuxuryVehicleMid, LuxuryVehicleHigh,
	}
}

// ParseLuxuryCategory normalizes a luxury goods key
func ParseLuxuryCategory(s string) (LuxuryCategory, bool) {
	c := LuxuryCategory(normalizeKey(s))
	return c, containsKey(AllLuxuryCategories(), c)
}

// ProfessionCategory identifies a profession for the deemed-profit norm (NPPN)
type ProfessionCategory string

const (
	ProfessionDoctor     ProfessionCategory = "doctor"
	ProfessionLawyer     ProfessionCategory = "lawyer"
	ProfessionNotary     ProfessionCategory = "notary"
	ProfessionConsultant ProfessionCategory = "consultant"
	ProfessionArchitect  ProfessionCategory = "architect"
	ProfessionArtist     ProfessionCategory = "artist"
	ProfessionWriter     ProfessionCategory = "writer"
	ProfessionAthlete    ProfessionCategory = "athlete"
	ProfessionFreelance  ProfessionCategory = "freelance"
)

// AllProfessionCategories lists every profession
func AllProfessionCategories() []ProfessionCategory {
	return []ProfessionCategory{
		ProfessionDoctor, ProfessionLawyer, ProfessionNotary, ProfessionConsultant,
		ProfessionArchitect, ProfessionArtist, ProfessionWriter, ProfessionAthlete,
		ProfessionFreelance,
	}
}

// ParseProfessionCategory normalizes a profession key
func ParseProfessionCategory(s string) (ProfessionCategory, bool) {
	c := ProfessionCategory(normalizeKey(s))
	return c, containsKey(AllProfessionCategories(), c)
}

// RegionTier selects the norm column: the ten largest cities, other provincial capitals, elsewhere
type RegionTier string

const (
	RegionMajorCity         RegionTier = "major_city"
	RegionProvincialCapital RegionTier = "provincial_capital"
	RegionOther             RegionTier = "other"
)

// AllRegionTiers lists every region tier
func AllRegionTiers() []RegionTier {
	return []RegionTier{RegionMajorCity, RegionProvincialCapital, RegionOther}
}

// ParseRegionTier normalizes a region key
func ParseRegionTier(s string) (RegionTier, bool) {
	c := RegionTier(normalizeKey(s))
	return c, containsKey(AllRegionTiers(), c)
}

// PTKPStatus is the marital/dependent status that selects the non-taxable threshold
type PTKPStatus string

const (
	PTKPSingle0  PTKPStatus = "TK/0"
	PTKPSingle1  PTKPStatus = "TK/1"
	PTKPSingle2  PTKPStatus = "TK/2"
	PTKPSingle3  PTKPStatus = "TK/3"
	PTKPMarried0 PTKPStatus = "K/0"
	PTKPMarried1 PTKPStatus = "K/1"
	PTKPMarried2 PTKPStatus = "K/2"
	PTKPMarried3 PTKPStatus = "K/3"
)

// AllPTKPStatuses lists every PTKP status
func AllPTKPStatuses() []PTKPStatus {
	return []PTKPStatus{
		PTKPSingle0, PTKPSingle1, PTKPSingle2, PTKPSingle3,
		PTKPMarried0, PTKPMarried1, PTKPMarried2, PTKPMarried3,
	}
}

// ParsePTKPStatus accepts "TK/0", "tk0", "K-2" and similar spellings
func ParsePTKPStatus(s string) (PTKPStatus, bool) {
	k := strings.ToUpper(strings.TrimSpace(s))
	k = strings.NewReplacer("/", "", "-", "", "_", "", " ", "").Replace(k)
	if len(k) >= 2 {
		k = k[:len(k)-1] + "/" + k[len(k)-1:]
	}
	c := PTKPStatus(k)
	return c, containsKey(AllPTKPStatuses(), c)
}

// Married reports whether the status carries the marriage addition
func (s PTKPStatus) Married() bool {
	return strings.HasPrefix(string(s), "K/")
}

// Dependents returns the number of dependents encoded in the status
func (s PTKPStatus) Dependents() int {
	if len(s) == 0 {
		return 0
	}
	d := int(s[len(s)-1] - '0')
	if d < 0 || d > 3 {
		return 0
	}
	return d
}

// AdminFineKind selects a flat administrative fine for late filing
type AdminFineKind string

const (
	AdminFineNone             AdminFineKind = "none"
	AdminFineAnnualIndividual AdminFineKind = "annual_individual"
	AdminFineAnnualCorporate  AdminFineKind = "annual_corporate"
	AdminFineMonthlyVAT       AdminFineKind = "monthly_vat"
	AdminFineMonthlyOther     AdminFineKind = "monthly_other"
)

// AllAdminFineKinds lists every administrative fine preset
func AllAdminFineKinds() []AdminFineKind {
	return []AdminFineKind{
		AdminFineNone, AdminFineAnnualIndividual, AdminFineAnnualCorporate,
		AdminFineMonthlyVAT, AdminFineMonthlyOther,
	}
}

// ParseAdminFineKind normalizes a fine key; an empty key means no fine
func ParseAdminFineKind(s string) (AdminFineKind, bool) {
	if strings.TrimSpace(s) == "" {
		return AdminFineNone, true
	}
	c := AdminFineKind(normalizeKey(s))
	return c, containsKey(AllAdminFineKinds(), c)
}

func normalizeKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer("-", "_", " ", "_").Replace(s)
}

func containsKey[K comparable](all []K, k K) bool {
	for _, c := range all {
		if c == k {
			return true
		}
	}
	return false
}
