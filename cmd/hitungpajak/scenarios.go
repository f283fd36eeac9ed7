package main

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/ulwant/HitungPajakku-sub001/internal/compare"
	"github.com/ulwant/HitungPajakku-sub001/internal/config"
	"github.com/ulwant/HitungPajakku-sub001/internal/domain"
	"github.com/ulwant/HitungPajakku-sub001/internal/output"
	"github.com/ulwant/HitungPajakku-sub001/internal/transform"
)

// loadScenarios reads a scenario file. A regulation named by the file is used unless
// --regulation was given; its path is relative to the scenario file.
func (a *app) loadScenarios(path string) (*config.ScenarioFile, error) {
	sf, err := config.NewInputParser().LoadScenarios(path)
	if err != nil {
		return nil, err
	}
	if sf.Regulation != "" && a.settings.GetString("regulation") == "" {
		regPath := sf.Regulation
		if !filepath.IsAbs(regPath) {
			regPath = filepath.Join(filepath.Dir(path), regPath)
		}
		if err := a.loadEngine(regPath); err != nil {
			return nil, err
		}
	}
	return sf, nil
}

func (a *app) compareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [scenario-file]",
		Short: "Compare employee, freelancer and small-business profiles side by side",
		Long: `Evaluate every profile of a scenario file and compare tax and net income.

With --with, one profile of the file (--base, default the first) is compared against
built-in what-if templates instead. --apply adds one custom variant built from
transform specs.

Examples:
  hitungpajak compare scenarios.yaml
  hitungpajak compare scenarios.yaml --format csv
  hitungpajak compare scenarios.yaml --base Karyawan --with switch_freelancer,switch_umkm
  hitungpajak compare scenarios.yaml --apply adjust_income:rate=0.1 --apply set_npwp:has=false
  hitungpajak compare --list-templates`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			templates := transform.CreateBuiltInTemplates()
			if list, _ := cmd.Flags().GetBool("list-templates"); list {
				fmt.Fprint(cmd.OutOrStdout(), transform.GetTemplateHelp(templates))
				return nil
			}
			if len(args) == 0 {
				return fmt.Errorf("scenario file required (use --list-templates to see available templates)")
			}

			sf, err := a.loadScenarios(args[0])
			if err != nil {
				return err
			}

			profiles, err := whatIfProfiles(cmd, sf, templates)
			if err != nil {
				return err
			}

			compSet, err := compare.NewCompareEngine(a.engine).Compare(profiles)
			if err != nil {
				return fmt.Errorf("comparison failed: %w", err)
			}
			compSet.ConfigPath = args[0]

			out := cmd.OutOrStdout()
			switch a.formatName() {
			case "csv":
				s, err := (&compare.CSVFormatter{}).Format(compSet)
				if err != nil {
					return fmt.Errorf("failed to format CSV: %w", err)
				}
				fmt.Fprint(out, s)
			case "json":
				s, err := (&compare.JSONFormatter{Pretty: true}).Format(compSet)
				if err != nil {
					return fmt.Errorf("failed to format JSON: %w", err)
				}
				fmt.Fprintln(out, s)
			case "table", "console", "text", "":
				fmt.Fprint(out, (&compare.TableFormatter{}).Format(compSet))
			default:
				return fmt.Errorf("unknown output format: %s (valid: table, csv, json)", a.formatName())
			}
			return nil
		},
	}
	cmd.Flags().String("base", "", "Profile to build what-if variants from (default: first profile)")
	cmd.Flags().String("with", "", "Comma-separated list of what-if templates to compare against the base")
	cmd.Flags().StringArray("apply", nil, "Transform spec for a custom variant, e.g. adjust_income:rate=0.1 (repeatable)")
	cmd.Flags().Bool("list-templates", false, "List all available what-if templates")
	return cmd
}

// whatIfProfiles returns the scenario file's profiles, or the base profile and its
// variants when --with or --apply is given.
func whatIfProfiles(cmd *cobra.Command, sf *config.ScenarioFile, templates *transform.TemplateRegistry) ([]compare.Profile, error) {
	withList, _ := cmd.Flags().GetString("with")
	specs, _ := cmd.Flags().GetStringArray("apply")
	names := transform.ParseTemplateList(withList)
	if len(names) == 0 && len(specs) == 0 {
		return sf.Profiles, nil
	}
	if len(sf.Profiles) == 0 {
		return nil, fmt.Errorf("scenario file has no profiles")
	}

	base := sf.Profiles[0]
	if name, _ := cmd.Flags().GetString("base"); name != "" {
		p, ok := lo.Find(sf.Profiles, func(p compare.Profile) bool { return p.ProfileName() == name })
		if !ok {
			return nil, fmt.Errorf("base profile %q not found", name)
		}
		base = p
	}

	profiles, err := transform.BuildAlternatives(base, templates, names)
	if err != nil {
		return nil, err
	}
	if len(specs) == 0 {
		return profiles, nil
	}

	registry := transform.NewTransformRegistry()
	chain := make([]transform.ProfileTransform, 0, len(specs))
	for _, spec := range specs {
		t, err := registry.ParseTransformSpec(spec)
		if err != nil {
			return nil, fmt.Errorf("--apply %s: %w", spec, err)
		}
		chain = append(chain, t)
	}
	custom, err := transform.ApplyTransforms(base, chain)
	if err != nil {
		return nil, err
	}
	return append(profiles, transform.Rename(custom, base.ProfileName()+" + custom")), nil
}

func (a *app) projectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project [scenario-file]",
		Short: "Project profiles over several years of income growth and inflation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sf, err := a.loadScenarios(args[0])
			if err != nil {
				return err
			}

			params := sf.Projection
			if cmd.Flags().Changed("years") {
				params.HorizonYears, _ = cmd.Flags().GetInt("years")
			}
			if params.HorizonYears < 0 {
				return fmt.Errorf("horizon must not be negative, got %d", params.HorizonYears)
			}

			profiles := sf.Profiles
			if name, _ := cmd.Flags().GetString("profile"); name != "" {
				profiles = lo.Filter(profiles, func(p compare.Profile, _ int) bool { return p.ProfileName() == name })
				if len(profiles) == 0 {
					return fmt.Errorf("profile %q not found in %s", name, args[0])
				}
			}

			ce := compare.NewCompareEngine(a.engine)
			results := make([]domain.ProjectionResult, 0, len(profiles))
			for _, p := range profiles {
				pr, err := ce.Project(p, params)
				if err != nil {
					return fmt.Errorf("projection of %s failed: %w", p.ProfileName(), err)
				}
				results = append(results, pr)
			}

			out := cmd.OutOrStdout()
			switch a.formatName() {
			case "json":
				data, err := json.MarshalIndent(results, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(out, string(data))
			case "csv":
				for _, pr := range results {
					s, err := output.FormatProjectionCSV(pr)
					if err != nil {
						return err
					}
					fmt.Fprintf(out, "# %s\n%s", pr.Name, s)
				}
			default:
				for i, pr := range results {
					if i > 0 {
						fmt.Fprintln(out)
					}
					fmt.Fprint(out, output.FormatProjectionTable(pr))
				}
			}
			return nil
		},
	}
	cmd.Flags().Int("years", 0, "Override the projection horizon of the scenario file")
	cmd.Flags().String("profile", "", "Project only the named profile")
	return cmd
}

func (a *app) ratesCmd() *cobra.Command {
	rates := &cobra.Command{
		Use:   "rates",
		Short: "Inspect and validate regulation data",
	}

	dump := &cobra.Command{
		Use:   "dump",
		Short: "Print the active regulation as YAML",
		Long:  "Print the active regulation as YAML. The output can be edited and passed back with --regulation.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := config.NewInputParser().DumpRegulation(a.engine.Regulation)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	validate := &cobra.Command{
		Use:   "validate [regulation-file]",
		Short: "Validate a regulation override file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := config.NewInputParser().LoadRegulation(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Regulation file %s is valid (version %s)\n", args[0], reg.Version)
			return nil
		},
	}

	rates.AddCommand(dump, validate)
	return rates
}
