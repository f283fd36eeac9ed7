package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"runtime/debug"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ulwant/HitungPajakku-sub001/internal/calculation"
	"github.com/ulwant/HitungPajakku-sub001/internal/config"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// app carries the settings and the engine shared by every subcommand of one command tree
type app struct {
	settings *viper.Viper
	log      *logrus.Logger
	engine   *calculation.Engine
	envFile  string
}

func newApp() *app {
	return &app{settings: viper.New(), log: logrus.New(), envFile: ".env"}
}

// setup runs before every subcommand: settings, logger, then the engine
func (a *app) setup(cmd *cobra.Command, args []string) error {
	if err := godotenv.Load(a.envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", a.envFile, err)
	}

	a.settings.SetEnvPrefix("HITUNGPAJAK")
	a.settings.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.settings.AutomaticEnv()
	if err := a.settings.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	level, err := logrus.ParseLevel(a.settings.GetString("log-level"))
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	a.log.SetLevel(level)
	a.log.SetOutput(cmd.ErrOrStderr())

	return a.loadEngine(a.settings.GetString("regulation"))
}

func (a *app) loadEngine(regulationPath string) error {
	reg, err := config.NewInputParser().LoadRegulation(regulationPath)
	if err != nil {
		return err
	}
	a.engine = calculation.NewEngineWithRegulation(reg)
	a.engine.SetLogger(a.log.WithField("module", "engine"))
	a.log.WithFields(logrus.Fields{"module": "cli", "version": reg.Version}).Debug("regulation loaded")
	return nil
}

func newRootCmd() *cobra.Command {
	a := newApp()

	root := &cobra.Command{
		Use:   "hitungpajak",
		Short: "Indonesian tax calculator CLI",
		Long: `Calculates Indonesian taxes (PPh 21, PPh 23, PPh final, PPN, PPnBM, import taxes,
professional norm and late payment penalties) against a configurable regulation.

Settings can also be given as HITUNGPAJAK_* environment variables or in a .env file.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	root.PersistentFlags().String("regulation", "", "Path to a regulation override YAML file")
	root.PersistentFlags().StringP("format", "f", "console", "Output format (console, summary, json, csv, html)")
	root.PersistentFlags().Bool("save", false, "Also write calculator results to a timestamped file in the working directory")
	root.PersistentFlags().String("log-level", "warn", "Log level (debug, info, warn, error)")

	root.AddCommand(a.calculatorCommands()...)
	root.AddCommand(a.compareCmd(), a.grossupCmd(), a.projectCmd(), a.ratesCmd(), a.serveCmd(), a.tuiCmd(), versionCmd())
	return root
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "hitungpajak %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.String()
	}
	return ""
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
