package main

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/paycalc/internal/calculation"
	"github.com/rgehrsitz/paycalc/internal/config"
	"github.com/rgehrsitz/paycalc/internal/domain"
	"github.com/rgehrsitz/paycalc/internal/output"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func estimateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Estimate a year-end tax return",
		Long: `Estimate the tax owed on a year's income and the refund or shortfall
against tax already withheld.

Examples:
  paycalc estimate --gross 85000 --withheld 19000
  paycalc estimate --financial-year 2023-24 --gross 85000 --withheld 19000
  paycalc estimate --gross 85000 --deduction "work travel=1200" --deduction donations=300 --format csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := estimateInputFromFlags(cmd)
			if err != nil {
				return err
			}

			regulatory, err := config.LoadRegulatory(a.regulatoryPath(cmd))
			if err != nil {
				return err
			}
			code, _ := cmd.Flags().GetString("system")
			if in.FinancialYear == "" {
				code = a.defaultSystem(code)
			}
			system, err := calculation.ResolveEstimateSystem(regulatory, code, in.FinancialYear)
			if err != nil {
				return err
			}

			est, err := calculation.EstimateTax(system, in)
			if err != nil {
				return err
			}

			outputFormat, _ := cmd.Flags().GetString("format")
			data, err := output.FormatEstimate(outputFormat, est)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().String("system", "", "Tax system code (default: the configured default)")
	cmd.Flags().String("financial-year", "", "Financial year such as 2024-25; selects the matching system when --system is not set")
	cmd.Flags().String("gross", "0", "Gross income for the year")
	cmd.Flags().String("withheld", "0", "Tax already withheld")
	cmd.Flags().StringArray("deduction", nil, "Deduction as category=amount (repeatable)")
	cmd.Flags().Bool("loan", false, "Include study loan repayment")
	cmd.Flags().Bool("medicare-exempt", false, "Exempt from the Medicare levy")
	cmd.Flags().StringP("format", "f", "console", "Output format ("+strings.Join(output.EstimateFormatNames(), ", ")+")")
	return cmd
}

func estimateInputFromFlags(cmd *cobra.Command) (calculation.EstimateInput, error) {
	var in calculation.EstimateInput
	var err error

	grossStr, _ := cmd.Flags().GetString("gross")
	if in.GrossIncome, err = parseAmountFlag("gross", grossStr); err != nil {
		return in, err
	}
	withheldStr, _ := cmd.Flags().GetString("withheld")
	if in.TaxWithheld, err = parseAmountFlag("withheld", withheldStr); err != nil {
		return in, err
	}

	deductions, _ := cmd.Flags().GetStringArray("deduction")
	for _, raw := range deductions {
		category, amountStr, ok := strings.Cut(raw, "=")
		if !ok || strings.TrimSpace(category) == "" {
			return in, fmt.Errorf("invalid --deduction %q (expected category=amount)", raw)
		}
		amount, err := parseAmountFlag("deduction", amountStr)
		if err != nil {
			return in, err
		}
		in.Deductions = append(in.Deductions, calculation.Deduction{Category: strings.TrimSpace(category), Amount: amount})
	}

	in.FinancialYear, _ = cmd.Flags().GetString("financial-year")
	if in.FinancialYear != "" {
		if _, _, err := calculation.ParseFinancialYear(in.FinancialYear); err != nil {
			return in, err
		}
	}
	in.IncludeLoanRepayment, _ = cmd.Flags().GetBool("loan")
	in.MedicareExempt, _ = cmd.Flags().GetBool("medicare-exempt")
	return in, nil
}

// parseAmountFlag accepts the same money text as the salary form ("$85,000")
// but rejects anything that is not a number
func parseAmountFlag(name, raw string) (decimal.Decimal, error) {
	cleaned := strings.NewReplacer("$", "", ",", "", "_", "").Replace(strings.TrimSpace(raw))
	if cleaned == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid --%s amount %q", name, raw)
	}
	if !domain.AmountInRange(d) {
		return decimal.Zero, fmt.Errorf("--%s amount is out of range (limit %s)", name, domain.MaxAmount)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("--%s cannot be negative", name)
	}
	return d, nil
}
