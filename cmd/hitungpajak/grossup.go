package main

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/ulwant/HitungPajakku-sub001/internal/breakeven"
	"github.com/ulwant/HitungPajakku-sub001/internal/compare"
)

func (a *app) grossupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grossup [scenario-file]",
		Short: "Find the income each profile needs to reach a net or tax target",
		Long: `Search for the smallest income input of each profile whose net income (or tax)
reaches the target. The input is the monthly salary of an employee, the annual
gross of a freelancer and the annual turnover of a small business.

Examples:
  hitungpajak grossup scenarios.yaml --net 120000000
  hitungpajak grossup scenarios.yaml --net 120.000.000 --profile Karyawan
  hitungpajak grossup scenarios.yaml --tax 5000000 --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			metric := breakeven.MetricNet
			flag := "net"
			if cmd.Flags().Changed("tax") {
				metric, flag = breakeven.MetricTax, "tax"
			} else if !cmd.Flags().Changed("net") {
				return fmt.Errorf("one of --net or --tax is required")
			}
			target, err := amountFlag(cmd, flag)
			if err != nil {
				return err
			}

			sf, err := a.loadScenarios(args[0])
			if err != nil {
				return err
			}
			profiles := sf.Profiles
			if name, _ := cmd.Flags().GetString("profile"); name != "" {
				profiles = lo.Filter(profiles, func(p compare.Profile, _ int) bool { return p.ProfileName() == name })
				if len(profiles) == 0 {
					return fmt.Errorf("profile %q not found in %s", name, args[0])
				}
			}

			solver := breakeven.NewDefaultSolver(a.engine)
			var result interface{}
			var table string
			if len(profiles) == 1 {
				res, err := solver.Solve(cmd.Context(), breakeven.Request{Base: profiles[0], Metric: metric, Target: target})
				if err != nil {
					return fmt.Errorf("gross-up of %s failed: %w", profiles[0].ProfileName(), err)
				}
				result, table = res, (&breakeven.TableFormatter{}).Format(res)
			} else {
				mr, err := solver.SolveAll(cmd.Context(), profiles, metric, target)
				if err != nil {
					return fmt.Errorf("gross-up failed: %w", err)
				}
				result, table = mr, (&breakeven.TableFormatter{}).FormatMulti(mr)
			}

			out := cmd.OutOrStdout()
			switch a.formatName() {
			case "json":
				s, err := (&breakeven.JSONFormatter{Pretty: true}).Format(result)
				if err != nil {
					return fmt.Errorf("failed to format JSON: %w", err)
				}
				fmt.Fprintln(out, s)
			case "table", "console", "text", "":
				fmt.Fprint(out, table)
			default:
				return fmt.Errorf("unknown output format: %s (valid: table, json)", a.formatName())
			}
			return nil
		},
	}
	cmd.Flags().String("net", "", "Target annual net income")
	cmd.Flags().String("tax", "", "Target annual tax")
	cmd.Flags().String("profile", "", "Gross up only the named profile")
	cmd.MarkFlagsMutuallyExclusive("net", "tax")
	return cmd
}
