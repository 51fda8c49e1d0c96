package output

import (
	"strings"
	"testing"

	"github.com/rgehrsitz/paycalc/internal/calculation"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTestEstimate(t *testing.T, withheld int64) *calculation.TaxEstimate {
	t.Helper()
	est, err := calculation.EstimateTax(testSystem(), calculation.EstimateInput{
		FinancialYear: "2024-25",
		GrossIncome:   decimal.NewFromInt(60000),
		Deductions: []calculation.Deduction{
			{Category: "Work from home", Amount: decimal.NewFromInt(10000)},
		},
		TaxWithheld: decimal.NewFromInt(withheld),
	})
	require.NoError(t, err)
	return est
}

func TestFormatEstimate_CSV(t *testing.T) {
	output, err := FormatEstimate("csv", buildTestEstimate(t, 12000))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(output)), "\n")
	assert.Equal(t, "Field,Amount,Amount (cents)", lines[0])
	content := string(output)
	assert.Contains(t, content, "Gross income,60000.00,6000000")
	assert.Contains(t, content, "Deduction: Work from home,10000.00,1000000")
	assert.Contains(t, content, "Taxable income,50000.00,5000000")
	assert.Contains(t, content, "Total tax,10000.00,1000000")
	assert.Contains(t, content, "Refund or owed,2000.00,200000")
	assert.Contains(t, content, "Effective rate (%),16.6667,")
}

func TestFormatEstimate_Console(t *testing.T) {
	refund, err := FormatEstimate("console", buildTestEstimate(t, 12000))
	require.NoError(t, err)
	assert.Contains(t, string(refund), "TAX RETURN ESTIMATE 2024-25")
	assert.Contains(t, string(refund), "Estimated refund: $2000.00")

	owed, err := FormatEstimate("CONSOLE", buildTestEstimate(t, 9000))
	require.NoError(t, err)
	assert.Contains(t, string(owed), "Estimated amount owed: $1000.00")
}

func TestFormatEstimate_JSON(t *testing.T) {
	output, err := FormatEstimate("json", buildTestEstimate(t, 12000))
	require.NoError(t, err)
	assert.Contains(t, string(output), "\"refundOrOwed\": \"2000\"")
	assert.Contains(t, string(output), "\"taxSystem\": \"simple\"")
}

func TestFormatEstimate_Unknown(t *testing.T) {
	_, err := FormatEstimate("xml", buildTestEstimate(t, 0))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unsupported estimate format "xml"`)
	assert.Contains(t, err.Error(), "console, csv, json")
}

func TestSystemAssumptions(t *testing.T) {
	system := testSystem()
	system.Rules.StandardWeeklyHours = decimal.NewFromInt(38)

	assumptions := SystemAssumptions(system)
	assert.Contains(t, assumptions, "Tax system: Simple flat rate (20%) (simple)")
	assert.Contains(t, assumptions, "Income tax: 1 brackets, 20.00% top marginal rate")
	assert.Contains(t, assumptions, "Pro-rata salaries are based on a 38 hour week")
	for _, a := range assumptions {
		assert.NotContains(t, a, "Medicare", "No levy configured")
	}
}
