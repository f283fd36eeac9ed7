package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/ulwant/HitungPajakku-sub001/internal/calculation"
	"github.com/ulwant/HitungPajakku-sub001/internal/domain"
	"github.com/ulwant/HitungPajakku-sub001/internal/output"
)

const dateLayout = "2006-01-02"

// amountFlag reads a rupiah amount flag; "10.000.000", "Rp 10.000.000" and "10000000" are equivalent
func amountFlag(cmd *cobra.Command, name string) (decimal.Decimal, error) {
	s, _ := cmd.Flags().GetString(name)
	v, err := output.ParseRupiah(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("--%s: %w", name, err)
	}
	if v.IsNegative() {
		return decimal.Zero, fmt.Errorf("--%s: amount cannot be negative", name)
	}
	return v, nil
}

func dateFlag(cmd *cobra.Command, name string) (time.Time, error) {
	s, _ := cmd.Flags().GetString(name)
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("--%s: invalid date %q, expected YYYY-MM-DD", name, s)
	}
	return t, nil
}

func (a *app) formatName() string {
	return strings.ToLower(a.settings.GetString("format"))
}

// emit writes a computation result in the selected format
func (a *app) emit(cmd *cobra.Command, res domain.ComputationResult) error {
	name := a.formatName()
	f := output.GetFormatterByName(name)
	if f == nil {
		return fmt.Errorf("unknown output format %q (valid: %s)", name, strings.Join(output.AvailableFormatterNames(), ", "))
	}
	data, err := f.Format(&res)
	if err != nil {
		return err
	}
	if _, err := cmd.OutOrStdout().Write(data); err != nil {
		return err
	}
	if f.Name() == "json" {
		fmt.Fprintln(cmd.OutOrStdout())
	}

	if a.settings.GetBool("save") {
		ext := f.Name()
		if ext == "console" || ext == "summary" {
			ext = "txt"
		}
		filename, err := output.WriteFormatted(f, &res, ext)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Saved to %s\n", filename)
	}
	return nil
}

func (a *app) calculatorCommands() []*cobra.Command {
	return []*cobra.Command{
		a.wageCmd(),
		a.lumpSumCmd("pesangon", "PPh 21 on severance pay", (*calculation.Engine).Severance),
		a.lumpSumCmd("pensiun", "PPh 21 on a lump-sum pension or old-age benefit payout", (*calculation.Engine).RetirementPayout),
		a.withholdingCmd(),
		a.finalCmd(),
		a.smallBusinessCmd(),
		a.investmentCmd(),
		a.vatCmd(),
		a.luxuryCmd(),
		a.importCmd(),
		a.normCmd(),
		a.penaltyCmd(),
	}
}

func (a *app) wageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pph21",
		Short: "Annual PPh 21 on employment income",
		Example: `  hitungpajak pph21 --salary 10.000.000 --status K/1
  hitungpajak pph21 --salary 15000000 --bonus 15000000 --months 6 --no-npwp`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			salary, err := amountFlag(cmd, "salary")
			if err != nil {
				return err
			}
			allowance, err := amountFlag(cmd, "allowance")
			if err != nil {
				return err
			}
			bonus, err := amountFlag(cmd, "bonus")
			if err != nil {
				return err
			}
			months, _ := cmd.Flags().GetInt("months")
			if months < 0 || months > 12 {
				return fmt.Errorf("--months must be between 0 and 12, got %d", months)
			}
			status, _ := cmd.Flags().GetString("status")
			noNPWP, _ := cmd.Flags().GetBool("no-npwp")

			return a.emit(cmd, a.engine.AnnualWage(calculation.WageInput{
				MonthlySalary:    salary,
				MonthlyAllowance: allowance,
				AnnualBonus:      bonus,
				MonthsWorked:     months,
				Status:           domain.PTKPStatus(status),
				HasNPWP:          !noNPWP,
			}))
		},
	}
	cmd.Flags().String("salary", "0", "Monthly salary")
	cmd.Flags().String("allowance", "0", "Monthly fixed allowance")
	cmd.Flags().String("bonus", "0", "Annual bonus and THR")
	cmd.Flags().Int("months", 12, "Months worked in the year")
	cmd.Flags().String("status", string(domain.PTKPSingle0), "PTKP status (TK/0..TK/3, K/0..K/3)")
	cmd.Flags().Bool("no-npwp", false, "Employee has no NPWP (surcharge applies)")
	return cmd
}

func (a *app) lumpSumCmd(use, short string, calc func(*calculation.Engine, calculation.LumpSumInput) domain.ComputationResult) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := amountFlag(cmd, "amount")
			if err != nil {
				return err
			}
			return a.emit(cmd, calc(a.engine, calculation.LumpSumInput{Amount: amount}))
		},
	}
	cmd.Flags().String("amount", "0", "Gross lump-sum amount")
	return cmd
}

func (a *app) withholdingCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pph23",
		Short: "PPh 23 withholding on services, royalties, dividends and interest",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := amountFlag(cmd, "amount")
			if err != nil {
				return err
			}
			category, _ := cmd.Flags().GetString("category")
			noNPWP, _ := cmd.Flags().GetBool("no-npwp")
			c, _ := domain.ParseWithholdingCategory(category)
			return a.emit(cmd, a.engine.Withholding(calculation.WithholdingInput{Amount: amount, Category: c, HasNPWP: !noNPWP}))
		},
	}
	cmd.Flags().String("amount", "0", "Gross payment")
	cmd.Flags().String("category", string(domain.WithholdingService), "Income category")
	cmd.Flags().Bool("no-npwp", false, "Recipient has no NPWP (rate doubles)")
	return cmd
}

func (a *app) finalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "final",
		Short: "PPh final 4(2) on rent, construction and similar income",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := amountFlag(cmd, "amount")
			if err != nil {
				return err
			}
			category, _ := cmd.Flags().GetString("category")
			c, _ := domain.ParseFinalCategory(category)
			return a.emit(cmd, a.engine.Final(calculation.FinalInput{Amount: amount, Category: c}))
		},
	}
	cmd.Flags().String("amount", "0", "Gross amount")
	cmd.Flags().String("category", string(domain.FinalLandBuildingRent), "Income category")
	return cmd
}

func (a *app) smallBusinessCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "umkm",
		Short: "Flat final tax on small-business turnover",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			turnover, err := amountFlag(cmd, "turnover")
			if err != nil {
				return err
			}
			prior, err := amountFlag(cmd, "prior")
			if err != nil {
				return err
			}
			return a.emit(cmd, a.engine.SmallBusiness(calculation.SmallBusinessInput{Turnover: turnover, PriorTurnover: prior}))
		},
	}
	cmd.Flags().String("turnover", "0", "Turnover of the period")
	cmd.Flags().String("prior", "0", "Turnover earlier in the same year")
	return cmd
}

func (a *app) investmentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "investasi",
		Short: "Final tax on investment income and transactions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := amountFlag(cmd, "amount")
			if err != nil {
				return err
			}
			asset, _ := cmd.Flags().GetString("asset")
			as, _ := domain.ParseInvestmentAsset(asset)
			return a.emit(cmd, a.engine.Investment(calculation.InvestmentInput{Amount: amount, Asset: as}))
		},
	}
	cmd.Flags().String("amount", "0", "Gain or transaction value")
	cmd.Flags().String("asset", string(domain.AssetTimeDeposit), "Asset type")
	return cmd
}

func (a *app) vatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ppn",
		Short: "PPN (value added tax)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			price, err := amountFlag(cmd, "price")
			if err != nil {
				return err
			}
			inclusive, _ := cmd.Flags().GetBool("inclusive")
			otherValue, _ := cmd.Flags().GetBool("other-value")
			return a.emit(cmd, a.engine.VAT(calculation.VATInput{Price: price, Inclusive: inclusive, OtherValue: otherValue}))
		},
	}
	cmd.Flags().String("price", "0", "Selling price")
	cmd.Flags().Bool("inclusive", false, "Price already includes PPN")
	cmd.Flags().Bool("other-value", true, "Use the DPP nilai lain base")
	return cmd
}

func (a *app) luxuryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ppnbm",
		Short: "PPN and PPnBM on luxury goods",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			price, err := amountFlag(cmd, "price")
			if err != nil {
				return err
			}
			category, _ := cmd.Flags().GetString("category")
			inclusive, _ := cmd.Flags().GetBool("inclusive")
			c, _ := domain.ParseLuxuryCategory(category)
			return a.emit(cmd, a.engine.Luxury(calculation.LuxuryInput{Price: price, Category: c, Inclusive: inclusive}))
		},
	}
	cmd.Flags().String("price", "0", "Selling price")
	cmd.Flags().String("category", string(domain.LuxuryVehicleLow), "Luxury goods category")
	cmd.Flags().Bool("inclusive", false, "Price already includes PPN and PPnBM")
	return cmd
}

func (a *app) importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "impor",
		Short: "Import duty, import PPN and PPh 22",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cif, err := amountFlag(cmd, "cif")
			if err != nil {
				return err
			}
			category, _ := cmd.Flags().GetString("category")
			noAPI, _ := cmd.Flags().GetBool("no-api")
			noNPWP, _ := cmd.Flags().GetBool("no-npwp")
			c, _ := domain.ParseImportCategory(category)
			return a.emit(cmd, a.engine.Import(calculation.ImportInput{CIF: cif, Category: c, HasAPI: !noAPI, HasNPWP: !noNPWP}))
		},
	}
	cmd.Flags().String("cif", "0", "CIF value in rupiah")
	cmd.Flags().String("category", string(domain.ImportGeneral), "Goods category")
	cmd.Flags().Bool("no-api", false, "Importer has no API (importer identification number)")
	cmd.Flags().Bool("no-npwp", false, "Importer has no NPWP")
	return cmd
}

func (a *app) normCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "norma",
		Short: "PPh on professional income using the deemed-profit norm (NPPN)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			gross, err := amountFlag(cmd, "gross")
			if err != nil {
				return err
			}
			profession, _ := cmd.Flags().GetString("profession")
			region, _ := cmd.Flags().GetString("region")
			status, _ := cmd.Flags().GetString("status")
			p, _ := domain.ParseProfessionCategory(profession)
			r, _ := domain.ParseRegionTier(region)
			return a.emit(cmd, a.engine.ProfessionalNorm(calculation.NormInput{
				Gross:      gross,
				Profession: p,
				Region:     r,
				Status:     domain.PTKPStatus(status),
			}))
		},
	}
	cmd.Flags().String("gross", "0", "Annual gross professional income")
	cmd.Flags().String("profession", string(domain.ProfessionFreelance), "Profession category")
	cmd.Flags().String("region", string(domain.RegionMajorCity), "Region tier (major_city, provincial_capital, other)")
	cmd.Flags().String("status", string(domain.PTKPSingle0), "PTKP status")
	return cmd
}

func (a *app) penaltyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "denda",
		Short:   "Interest and administrative fine on late payment",
		Example: "  hitungpajak denda --principal 1.000.000 --due 2024-01-01 --paid 2024-03-15",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			principal, err := amountFlag(cmd, "principal")
			if err != nil {
				return err
			}
			due, err := dateFlag(cmd, "due")
			if err != nil {
				return err
			}
			paid, err := dateFlag(cmd, "paid")
			if err != nil {
				return err
			}
			fine, _ := cmd.Flags().GetString("admin-fine")
			kind, ok := domain.ParseAdminFineKind(fine)
			if !ok {
				return fmt.Errorf("--admin-fine: unknown kind %q", fine)
			}

			in := calculation.PenaltyInput{
				Principal: principal,
				Range:     domain.DateRange{DueDate: due, PaymentDate: paid},
				AdminFine: kind,
			}
			if cmd.Flags().Changed("reference-rate") || cmd.Flags().Changed("uplift") {
				params := a.engine.Regulation.Penalty.Parameters()
				if s, _ := cmd.Flags().GetString("reference-rate"); cmd.Flags().Changed("reference-rate") {
					if params.ReferenceRate, err = decimal.NewFromString(s); err != nil {
						return fmt.Errorf("--reference-rate: %w", err)
					}
				}
				if s, _ := cmd.Flags().GetString("uplift"); cmd.Flags().Changed("uplift") {
					if params.UpliftFactor, err = decimal.NewFromString(s); err != nil {
						return fmt.Errorf("--uplift: %w", err)
					}
				}
				in.Parameters = &params
			}

			pr := a.engine.CalculatePenalty(in)
			switch a.formatName() {
			case "json":
				data, err := json.MarshalIndent(pr, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			case "console", "text", "table", "summary", "brief":
				fmt.Fprintln(cmd.OutOrStdout(), output.PenaltySummary(pr))
				return nil
			default:
				return a.emit(cmd, pr.Result)
			}
		},
	}
	cmd.Flags().String("principal", "0", "Unpaid tax")
	cmd.Flags().String("due", "", "Due date (YYYY-MM-DD)")
	cmd.Flags().String("paid", "", "Payment date (YYYY-MM-DD)")
	cmd.Flags().String("admin-fine", string(domain.AdminFineNone), "Administrative fine for a late return")
	cmd.Flags().String("reference-rate", "", "Annual reference rate as a fraction, overrides the regulation")
	cmd.Flags().String("uplift", "", "Uplift added to the reference rate, overrides the regulation")
	return cmd
}
