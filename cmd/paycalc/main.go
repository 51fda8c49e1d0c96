package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/rgehrsitz/paycalc/internal/calculation"
	"github.com/rgehrsitz/paycalc/internal/config"
	"github.com/rgehrsitz/paycalc/internal/domain"
	"github.com/rgehrsitz/paycalc/internal/logging"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// app holds what every command needs once the root pre-run has loaded it
type app struct {
	settings *config.Settings
	logger   zerolog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{logger: zerolog.Nop()}

	root := &cobra.Command{
		Use:   "paycalc",
		Short: "Salary and tax calculator CLI",
		Long: `Calculate take-home pay, tax, levies and superannuation for a salary,
compare tax systems, estimate a year-end return, and solve for the salary
that reaches a target net income.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd)
		},
	}

	root.PersistentFlags().String("config", "", "Path to a settings file (YAML, JSON or TOML)")
	root.PersistentFlags().String("regulatory-config", "", "Path to tax system data (default: embedded tables)")
	root.PersistentFlags().Bool("debug", false, "Enable debug output for detailed calculations")

	root.AddCommand(
		calculateCmd(a),
		validateCmd(a),
		compareCmd(a),
		estimateCmd(a),
		solveCmd(a),
		systemsCmd(a),
		serveCmd(a),
		versionCmd(),
	)
	return root
}

func (a *app) load(cmd *cobra.Command) error {
	configFile, _ := cmd.Flags().GetString("config")
	settings, err := config.LoadSettings(configFile)
	if err != nil {
		return err
	}

	level := settings.LogLevel
	if debugMode, _ := cmd.Flags().GetBool("debug"); debugMode {
		level = "debug"
	}
	a.settings = settings
	a.logger = logging.New(cmd.ErrOrStderr(), level, settings.LogFormat)
	return nil
}

// calcLogger is the engine logger: silent unless --debug is set
func (a *app) calcLogger(cmd *cobra.Command) calculation.Logger {
	if debugMode, _ := cmd.Flags().GetBool("debug"); debugMode {
		return logging.CalcLogger{Logger: a.logger}
	}
	return calculation.NopLogger{}
}

// regulatoryPath prefers the flag over the settings file
func (a *app) regulatoryPath(cmd *cobra.Command) string {
	if path, _ := cmd.Flags().GetString("regulatory-config"); path != "" {
		return path
	}
	if a.settings != nil {
		return a.settings.RegulatoryPath
	}
	return ""
}

// defaultSystem prefers an explicit code, then the settings file
func (a *app) defaultSystem(code string) string {
	if code == "" && a.settings != nil {
		return a.settings.DefaultSystem
	}
	return code
}

// loadInput reads a salary file and the tax system it should be evaluated under
func (a *app) loadInput(cmd *cobra.Command, inputFile, systemOverride string) (*domain.Configuration, domain.TaxSystem, *domain.RegulatoryConfig, error) {
	parser := config.NewInputParser()
	cfg, regulatory, err := parser.LoadFromFileWithRegulatory(inputFile, a.regulatoryPath(cmd))
	if err != nil {
		return nil, domain.TaxSystem{}, nil, err
	}

	code := systemOverride
	if code == "" {
		code = a.defaultSystem(cfg.TaxSystem)
	}
	system, err := regulatory.Lookup(code)
	if err != nil {
		return nil, domain.TaxSystem{}, nil, err
	}
	a.logger.Debug().Str("file", inputFile).Str("system", system.Code).Msg("loaded salary file")
	return cfg, system, regulatory, nil
}

func (a *app) newEngine(cmd *cobra.Command, system domain.TaxSystem) (*calculation.CalculationEngine, error) {
	engine, err := calculation.NewCalculationEngine(system)
	if err != nil {
		return nil, err
	}
	engine.SetLogger(a.calcLogger(cmd))
	return engine, nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "paycalc %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.GoVersion + " " + bi.Main.Path
	}
	return ""
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
