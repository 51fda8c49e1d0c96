package main

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/paycalc/internal/output"
	"github.com/spf13/cobra"
)

var formatExtensions = map[string]string{
	"console":      "txt",
	"console-lite": "txt",
	"csv":          "csv",
	"detailed-csv": "csv",
	"html":         "html",
	"json":         "json",
}

func calculateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calculate [input-file]",
		Short: "Calculate take-home pay for a salary file",
		Long: `Calculate income tax, levies, superannuation and net pay for a salary file
and print the per-period breakdown.

Examples:
  paycalc calculate salary.yaml
  paycalc calculate salary.yaml --format csv
  paycalc calculate salary.yaml --system au-2023-24 --format html --save`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			systemCode, _ := cmd.Flags().GetString("system")
			cfg, system, _, err := a.loadInput(cmd, args[0], systemCode)
			if err != nil {
				return err
			}

			engine, err := a.newEngine(cmd, system)
			if err != nil {
				return err
			}
			calc := engine.Calculate(cfg.Income)
			report := output.NewReport(cfg.Name, system, calc)

			outputFormat, _ := cmd.Flags().GetString("format")
			if outputFormat == "" {
				outputFormat = a.settings.Output
			}
			f := output.GetFormatterByName(outputFormat)
			if f == nil {
				return fmt.Errorf("unknown output format %q (valid: %s)", outputFormat, strings.Join(output.AvailableFormatterNames(), ", "))
			}

			if save, _ := cmd.Flags().GetBool("save"); save {
				path, err := output.WriteFormatted(f, report, formatExtensions[f.Name()])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", path)
				return nil
			}

			data, err := f.Format(report)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().StringP("format", "f", "", "Output format ("+strings.Join(output.AvailableFormatterNames(), ", ")+")")
	cmd.Flags().String("system", "", "Tax system code (default: the file's tax_system)")
	cmd.Flags().Bool("save", false, "Write the report to a timestamped file instead of stdout")
	return cmd
}

func validateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [input-file]",
		Short: "Validate a salary file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, system, _, err := a.loadInput(cmd, args[0], "")
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Configuration file %s is valid (tax system %s)\n", args[0], system.Code)
			return nil
		},
	}
}
