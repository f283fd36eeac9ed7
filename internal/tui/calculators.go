package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ulwant/HitungPajakku-sub001/internal/calculation"
	"github.com/ulwant/HitungPajakku-sub001/internal/domain"
	"github.com/ulwant/HitungPajakku-sub001/internal/output"
)

// field describes one text input of a calculator form
type field struct {
	Label       string
	Placeholder string
	Default     string
}

// values gives the runner access to the submitted form, parsed on demand
type values []string

// calculator is one entry of the menu
type calculator struct {
	ID     string
	Title  string
	Fields []field
	Run    func(e *calculation.Engine, v values) (domain.ComputationResult, error)
}

func calculators() []calculator {
	return []calculator{
		{
			ID:    "pph21",
			Title: "PPh 21 annual wage",
			Fields: []field{
				{Label: "Monthly salary", Placeholder: "10.000.000"},
				{Label: "Monthly allowance", Default: "0"},
				{Label: "Annual bonus", Default: "0"},
				{Label: "Months worked", Default: "12"},
				{Label: "PTKP status", Default: "TK/0"},
				{Label: "Has NPWP (y/n)", Default: "y"},
			},
			Run: func(e *calculation.Engine, v values) (domain.ComputationResult, error) {
				salary, err := v.amount(0)
				if err != nil {
					return domain.ComputationResult{}, err
				}
				allowance, err := v.amount(1)
				if err != nil {
					return domain.ComputationResult{}, err
				}
				bonus, err := v.amount(2)
				if err != nil {
					return domain.ComputationResult{}, err
				}
				months, err := v.number(3)
				if err != nil {
					return domain.ComputationResult{}, err
				}
				return e.AnnualWage(calculation.WageInput{
					MonthlySalary:    salary,
					MonthlyAllowance: allowance,
					AnnualBonus:      bonus,
					MonthsWorked:     months,
					Status:           domain.PTKPStatus(v[4]),
					HasNPWP:          v.flag(5),
				}), nil
			},
		},
		{
			ID:     "pesangon",
			Title:  "PPh 21 severance (pesangon)",
			Fields: []field{{Label: "Severance amount", Placeholder: "600.000.000"}},
			Run: func(e *calculation.Engine, v values) (domain.ComputationResult, error) {
				amount, err := v.amount(0)
				if err != nil {
					return domain.ComputationResult{}, err
				}
				return e.Severance(calculation.LumpSumInput{Amount: amount}), nil
			},
		},
		{
			ID:    "pph23",
			Title: "PPh 23 withholding",
			Fields: []field{
				{Label: "Amount", Placeholder: "5.000.000"},
				{Label: "Category", Default: string(domain.WithholdingService)},
				{Label: "Has NPWP (y/n)", Default: "y"},
			},
			Run: func(e *calculation.Engine, v values) (domain.ComputationResult, error) {
				amount, err := v.amount(0)
				if err != nil {
					return domain.ComputationResult{}, err
				}
				cat, _ := domain.ParseWithholdingCategory(v[1])
				return e.Withholding(calculation.WithholdingInput{Amount: amount, Category: cat, HasNPWP: v.flag(2)}), nil
			},
		},
		{
			ID:    "umkm",
			Title: "Small business final (UMKM)",
			Fields: []field{
				{Label: "Turnover", Placeholder: "600.000.000"},
				{Label: "Prior turnover this year", Default: "0"},
			},
			Run: func(e *calculation.Engine, v values) (domain.ComputationResult, error) {
				turnover, err := v.amount(0)
				if err != nil {
					return domain.ComputationResult{}, err
				}
				prior, err := v.amount(1)
				if err != nil {
					return domain.ComputationResult{}, err
				}
				return e.SmallBusiness(calculation.SmallBusinessInput{Turnover: turnover, PriorTurnover: prior}), nil
			},
		},
		{
			ID:    "ppn",
			Title: "PPN (VAT)",
			Fields: []field{
				{Label: "Price", Placeholder: "1.000.000"},
				{Label: "Price includes PPN (y/n)", Default: "n"},
				{Label: "DPP nilai lain (y/n)", Default: "y"},
			},
			Run: func(e *calculation.Engine, v values) (domain.ComputationResult, error) {
				price, err := v.amount(0)
				if err != nil {
					return domain.ComputationResult{}, err
				}
				return e.VAT(calculation.VATInput{Price: price, Inclusive: v.flag(1), OtherValue: v.flag(2)}), nil
			},
		},
		{
			ID:    "impor",
			Title: "Import duty and taxes",
			Fields: []field{
				{Label: "CIF value", Placeholder: "10.000.000"},
				{Label: "Goods category", Default: string(domain.ImportGeneral)},
				{Label: "Has API (y/n)", Default: "y"},
				{Label: "Has NPWP (y/n)", Default: "y"},
			},
			Run: func(e *calculation.Engine, v values) (domain.ComputationResult, error) {
				cif, err := v.amount(0)
				if err != nil {
					return domain.ComputationResult{}, err
				}
				cat, _ := domain.ParseImportCategory(v[1])
				return e.Import(calculation.ImportInput{CIF: cif, Category: cat, HasAPI: v.flag(2), HasNPWP: v.flag(3)}), nil
			},
		},
		{
			ID:    "norma",
			Title: "Professional norm (NPPN)",
			Fields: []field{
				{Label: "Annual gross", Placeholder: "500.000.000"},
				{Label: "Profession", Default: string(domain.ProfessionFreelance)},
				{Label: "Region tier", Default: string(domain.RegionMajorCity)},
				{Label: "PTKP status", Default: "TK/0"},
			},
			Run: func(e *calculation.Engine, v values) (domain.ComputationResult, error) {
				gross, err := v.amount(0)
				if err != nil {
					return domain.ComputationResult{}, err
				}
				prof, _ := domain.ParseProfessionCategory(v[1])
				region, _ := domain.ParseRegionTier(v[2])
				return e.ProfessionalNorm(calculation.NormInput{Gross: gross, Profession: prof, Region: region, Status: domain.PTKPStatus(v[3])}), nil
			},
		},
		{
			ID:    "denda",
			Title: "Late payment penalty",
			Fields: []field{
				{Label: "Unpaid tax", Placeholder: "1.000.000"},
				{Label: "Due date", Placeholder: "2025-03-31"},
				{Label: "Payment date", Placeholder: "2025-06-30"},
				{Label: "Admin fine", Default: string(domain.AdminFineNone)},
			},
			Run: func(e *calculation.Engine, v values) (domain.ComputationResult, error) {
				principal, err := v.amount(0)
				if err != nil {
					return domain.ComputationResult{}, err
				}
				due, err := v.date(1)
				if err != nil {
					return domain.ComputationResult{}, err
				}
				paid, err := v.date(2)
				if err != nil {
					return domain.ComputationResult{}, err
				}
				fine, _ := domain.ParseAdminFineKind(v[3])
				pr := e.CalculatePenalty(calculation.PenaltyInput{
					Principal: principal,
					Range:     domain.DateRange{DueDate: due, PaymentDate: paid},
					AdminFine: fine,
				})
				return pr.Result, nil
			},
		},
	}
}

func (v values) amount(i int) (decimal.Decimal, error) {
	return output.ParseRupiah(v[i])
}

func (v values) number(i int) (int, error) {
	s := strings.TrimSpace(v[i])
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	return n, nil
}

func (v values) flag(i int) bool {
	switch strings.ToLower(strings.TrimSpace(v[i])) {
	case "y", "yes", "ya", "true", "1":
		return true
	}
	return false
}

func (v values) date(i int) (time.Time, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(v[i]))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", v[i])
	}
	return t, nil
}
