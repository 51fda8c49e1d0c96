package main

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/paycalc/internal/compare"
	"github.com/rgehrsitz/paycalc/internal/domain"
	"github.com/rgehrsitz/paycalc/internal/transform"
	"github.com/spf13/cobra"
)

func compareCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [input-file]",
		Short: "Compare one salary across tax systems or what-if scenarios",
		Long: `Compare a salary under a base tax system against alternative systems,
or against what-if scenarios applied to the same salary.

Examples:
  paycalc compare salary.yaml --with au-2023-24
  paycalc compare salary.yaml --base au-2024-25 --with au-2023-24,simple --format csv
  paycalc compare salary.yaml --what-if raise_5pct,four_day_week
  paycalc compare salary.yaml --what-if "raise_salary:amount=5000"
  paycalc compare --list-templates`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			baseSystem, _ := cmd.Flags().GetString("base")
			systemsStr, _ := cmd.Flags().GetString("with")
			whatIf, _ := cmd.Flags().GetStringArray("what-if")
			listTemplates, _ := cmd.Flags().GetBool("list-templates")
			outputFormat, _ := cmd.Flags().GetString("format")

			templates := transform.CreateBuiltInTemplates()
			if listTemplates {
				fmt.Fprint(cmd.OutOrStdout(), transform.GetTemplateHelp(templates))
				return nil
			}
			if len(args) == 0 {
				return fmt.Errorf("an input file is required")
			}

			alternatives := parseList(systemsStr)
			scenarios := parseWhatIf(whatIf)
			if len(alternatives) == 0 && len(scenarios) == 0 {
				return fmt.Errorf("--with flag is required to specify the systems to compare (or --what-if for scenarios)")
			}
			if len(alternatives) > 0 && len(scenarios) > 0 {
				return fmt.Errorf("--with and --what-if cannot be combined")
			}

			cfg, base, regulatory, err := a.loadInput(cmd, args[0], baseSystem)
			if err != nil {
				return err
			}

			compareEngine := compare.NewCompareEngine(regulatory)
			compareEngine.Logger = a.calcLogger(cmd)

			var comparisonSet *compare.ComparisonSet
			if len(scenarios) > 0 {
				comparisonSet, err = compareScenarios(cmd, compareEngine, templates, cfg, base.Code, scenarios)
			} else {
				comparisonSet, err = compareEngine.CompareConfiguration(cmd.Context(), cfg, base.Code, alternatives)
			}
			if err != nil {
				return fmt.Errorf("comparison failed: %w", err)
			}
			if comparisonSet.InputName == "" {
				comparisonSet.InputName = args[0]
			}

			var out string
			switch strings.ToLower(outputFormat) {
			case "csv":
				out, err = (&compare.CSVFormatter{}).Format(comparisonSet)
			case "json":
				out, err = (&compare.JSONFormatter{Pretty: true}).Format(comparisonSet)
			case "compact":
				out = (&compare.TableFormatter{}).FormatCompact(comparisonSet)
			case "table", "console", "":
				out = (&compare.TableFormatter{}).Format(comparisonSet)
			default:
				return fmt.Errorf("unknown output format: %s (valid: table, compact, csv, json)", outputFormat)
			}
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().String("base", "", "Base tax system (default: the file's tax_system)")
	cmd.Flags().String("with", "", "Comma-separated list of tax systems to compare")
	cmd.Flags().StringArray("what-if", nil, "What-if template or transform spec (name:key=value,...), repeatable")
	cmd.Flags().Bool("list-templates", false, "List the built-in what-if templates and transforms")
	cmd.Flags().StringP("format", "f", "table", "Output format (table, compact, csv, json)")
	return cmd
}

// parseList splits a comma-separated flag, dropping blanks
func parseList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// parseWhatIf expands --what-if values. Plain template names may be
// comma-separated; a transform spec carries its own commas and is kept whole.
func parseWhatIf(values []string) []string {
	var out []string
	for _, v := range values {
		if strings.Contains(v, ":") {
			if v = strings.TrimSpace(v); v != "" {
				out = append(out, v)
			}
			continue
		}
		out = append(out, transform.ParseTemplateList(v)...)
	}
	return out
}

func compareScenarios(
	cmd *cobra.Command,
	compareEngine *compare.CompareEngine,
	templates *transform.TemplateRegistry,
	cfg *domain.Configuration,
	systemCode string,
	names []string,
) (*compare.ComparisonSet, error) {
	transforms := transform.NewTransformRegistry()

	resolved := make([]transform.Template, 0, len(names))
	for _, name := range names {
		template, err := templates.Resolve(name, transforms)
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, template)
	}
	return compareEngine.CompareTemplates(cmd.Context(), cfg, systemCode, resolved)
}
