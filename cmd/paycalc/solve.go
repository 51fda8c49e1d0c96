package main

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/paycalc/internal/domain"
	"github.com/rgehrsitz/paycalc/internal/goalseek"
	"github.com/spf13/cobra"
)

func solveCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "solve [input-file]",
		Short: "Find the salary that reaches a target take-home pay",
		Long: `Solve for the base salary that produces a target net income. Everything
else in the salary file (overtime, sacrifice, levies) is held fixed.

Examples:
  paycalc solve salary.yaml --target-net 1500 --frequency weekly
  paycalc solve salary.yaml --target-net 40000 --to 80000 --step 10000`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			targetStr, _ := cmd.Flags().GetString("target-net")
			if targetStr == "" {
				return fmt.Errorf("--target-net flag is required")
			}
			target, err := parseAmountFlag("target-net", targetStr)
			if err != nil {
				return err
			}

			freqStr, _ := cmd.Flags().GetString("frequency")
			if !domain.Frequency(freqStr).Valid() {
				return fmt.Errorf("unknown --frequency %q", freqStr)
			}
			freq := domain.ParseFrequency(freqStr)

			cfg, system, _, err := a.loadInput(cmd, args[0], "")
			if err != nil {
				return err
			}
			engine, err := a.newEngine(cmd, system)
			if err != nil {
				return err
			}

			req := goalseek.Request{
				Input:           cfg.Income,
				TargetNet:       target,
				TargetFrequency: freq,
			}
			if req.Constraints, err = constraintsFromFlags(cmd); err != nil {
				return err
			}

			solver := goalseek.NewDefaultSolver(engine)
			outputFormat, _ := cmd.Flags().GetString("format")

			toStr, _ := cmd.Flags().GetString("to")
			if toStr != "" {
				to, err := parseAmountFlag("to", toStr)
				if err != nil {
					return err
				}
				stepStr, _ := cmd.Flags().GetString("step")
				step, err := parseAmountFlag("step", stepStr)
				if err != nil {
					return err
				}
				results, err := solver.SalarySchedule(cmd.Context(), req, target, to, step)
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), (&goalseek.TableFormatter{}).FormatSchedule(results))
				return nil
			}

			result, err := solver.Solve(cmd.Context(), req)
			if err != nil {
				return err
			}

			switch strings.ToLower(outputFormat) {
			case "json":
				out, err := (&goalseek.JSONFormatter{Pretty: true}).Format(result)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), out)
			case "table", "console", "":
				fmt.Fprint(cmd.OutOrStdout(), (&goalseek.TableFormatter{}).Format(result))
			default:
				return fmt.Errorf("unknown output format: %s (valid: table, json)", outputFormat)
			}
			return nil
		},
	}

	cmd.Flags().String("target-net", "", "Target net income per --frequency period (required)")
	cmd.Flags().String("frequency", string(domain.Annually), "Period of the target (weekly, fortnightly, monthly, quarterly, annually)")
	cmd.Flags().String("min-salary", "", "Lowest annual salary to consider")
	cmd.Flags().String("max-salary", "", "Highest annual salary to consider")
	cmd.Flags().String("to", "", "Solve a schedule of targets from --target-net up to this amount")
	cmd.Flags().String("step", "5000", "Schedule step between targets")
	cmd.Flags().StringP("format", "f", "table", "Output format (table, json)")
	return cmd
}

func constraintsFromFlags(cmd *cobra.Command) (goalseek.Constraints, error) {
	var c goalseek.Constraints
	for _, name := range []string{"min-salary", "max-salary"} {
		raw, _ := cmd.Flags().GetString(name)
		if raw == "" {
			continue
		}
		v, err := parseAmountFlag(name, raw)
		if err != nil {
			return c, err
		}
		if name == "min-salary" {
			c.MinSalary = &v
		} else {
			c.MaxSalary = &v
		}
	}
	return c, nil
}
