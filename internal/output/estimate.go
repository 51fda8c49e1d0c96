package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"sort"
	"strings"

	"github.com/goccy/go-json"
	"github.com/rgehrsitz/paycalc/internal/calculation"
	"github.com/shopspring/decimal"
)

// EstimateFormatterFunc renders a tax return estimate
type EstimateFormatterFunc func(est *calculation.TaxEstimate) ([]byte, error)

var estimateFormatters = map[string]EstimateFormatterFunc{
	"console": formatEstimateConsole,
	"csv":     formatEstimateCSV,
	"json":    formatEstimateJSON,
}

// FormatEstimate renders est with the named format
func FormatEstimate(format string, est *calculation.TaxEstimate) ([]byte, error) {
	f, ok := estimateFormatters[strings.ToLower(format)]
	if !ok {
		return nil, fmt.Errorf("unsupported estimate format %q (available: %s)", format, strings.Join(EstimateFormatNames(), ", "))
	}
	return f(est)
}

// EstimateFormatNames returns the supported estimate formats, sorted
func EstimateFormatNames() []string {
	names := make([]string, 0, len(estimateFormatters))
	for name := range estimateFormatters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type estimateField struct {
	label  string
	amount decimal.Decimal
}

func estimateFields(est *calculation.TaxEstimate) []estimateField {
	fields := []estimateField{
		{"Gross income", est.GrossIncome},
	}
	for _, d := range est.Deductions {
		fields = append(fields, estimateField{"Deduction: " + d.Category, d.Amount})
	}
	return append(fields,
		estimateField{"Total deductions", est.TotalDeductions},
		estimateField{"Taxable income", est.TaxableIncome},
		estimateField{"Base tax", est.BaseTax},
		estimateField{"Medicare levy", est.MedicareLevy},
		estimateField{"Study loan repayment", est.LoanRepayment},
		estimateField{"Low income offset", est.LowIncomeOffset},
		estimateField{"Total tax", est.TotalTax},
		estimateField{"Tax withheld", est.TaxWithheld},
		estimateField{"Refund or owed", est.RefundOrOwed},
	)
}

func formatEstimateConsole(est *calculation.TaxEstimate) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, titleStyle.Render(fmt.Sprintf("TAX RETURN ESTIMATE %s", est.FinancialYear)))
	fmt.Fprintln(&buf, mutedStyle.Render("Tax system: "+est.TaxSystem))
	fmt.Fprintln(&buf)
	for _, f := range estimateFields(est) {
		fmt.Fprintf(&buf, "%s%s\n", labelStyle.Render(f.label+":"), cellStyle.Render(FormatCurrency(f.amount)))
	}
	fmt.Fprintf(&buf, "%s%s\n", labelStyle.Render("Effective rate:"), cellStyle.Render(FormatPercentage(est.EffectiveRate)))
	fmt.Fprintln(&buf)

	if est.IsRefund() {
		fmt.Fprintln(&buf, netCellStyle.UnsetWidth().Render(fmt.Sprintf("Estimated refund: %s", FormatCurrency(est.RefundOrOwed))))
	} else {
		fmt.Fprintln(&buf, deductionCellStyle.UnsetWidth().Render(fmt.Sprintf("Estimated amount owed: %s", FormatCurrency(est.RefundOrOwed.Abs()))))
	}
	return buf.Bytes(), nil
}

// formatEstimateCSV writes Field, Amount, Amount (cents) rows
func formatEstimateCSV(est *calculation.TaxEstimate) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	records := [][]string{{"Field", "Amount", "Amount (cents)"}}
	for _, f := range estimateFields(est) {
		records = append(records, []string{f.label, f.amount.StringFixed(2), f.amount.Shift(2).Round(0).String()})
	}
	records = append(records, []string{"Effective rate (%)", est.EffectiveRate.StringFixed(4), ""})
	if err := w.WriteAll(records); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func formatEstimateJSON(est *calculation.TaxEstimate) ([]byte, error) {
	return json.MarshalIndent(est, "", "  ")
}
