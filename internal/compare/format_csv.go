package compare

import (
	"encoding/csv"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"System",
		"Type",
		"Gross Income",
		"Taxable Income",
		"Income Tax",
		"Levies",
		"Total Tax",
		"Net Income",
		"Superannuation",
		"Effective Rate",
		"Net Diff from Base",
		"Net % Change",
		"Tax Diff from Base",
		"Levy Diff from Base",
		"Super Diff from Base",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	if compSet.BaseResult != nil {
		if err := writer.Write(cf.formatRow(compSet.BaseResult, "base")); err != nil {
			return "", err
		}
	}

	for i := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&compSet.AlternativeResults[i], "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// formatRow formats a comparison result as a CSV row
func (cf *CSVFormatter) formatRow(result *ComparisonResult, systemType string) []string {
	return []string{
		result.Label(),
		systemType,
		result.GrossIncome.StringFixed(2),
		result.TaxableIncome.StringFixed(2),
		result.IncomeTax.StringFixed(2),
		result.TotalLevies.StringFixed(2),
		result.TotalTax.StringFixed(2),
		result.NetIncome.StringFixed(2),
		result.Superannuation.StringFixed(2),
		result.EffectiveRate.StringFixed(2),
		result.NetDiffFromBase.StringFixed(2),
		result.NetPctFromBase.StringFixed(2),
		result.TaxDiffFromBase.StringFixed(2),
		result.LevyDiffFromBase.StringFixed(2),
		result.SuperDiffFromBase.StringFixed(2),
	}
}
