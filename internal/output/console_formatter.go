package output

import (
	"bytes"
	"fmt"

	"github.com/rgehrsitz/paycalc/internal/domain"
)

// ConsoleFormatter prints a short plain-text summary
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console-lite" }

func (c ConsoleFormatter) Format(report *Report) ([]byte, error) {
	calc := report.Calculation
	if calc == nil {
		return nil, errNoCalculation
	}
	a := calc.Annual
	net := func(r domain.BreakdownRow) string { return FormatCurrency(r.NetIncome) }

	var buf bytes.Buffer
	fmt.Fprintln(&buf, "SALARY SUMMARY")
	fmt.Fprintln(&buf, "==============")
	fmt.Fprintf(&buf, "Tax system: %s\n", calc.TaxSystem)
	fmt.Fprintf(&buf, "Gross income: %s\n", FormatCurrency(a.TotalAnnualIncome))
	fmt.Fprintf(&buf, "Total tax: %s (effective %s)\n", FormatCurrency(a.TotalTax()), FormatPercentage(a.EffectiveRate))
	fmt.Fprintf(&buf, "Net income: %s\n", FormatCurrency(a.NetIncome))
	for _, f := range []domain.Frequency{domain.Weekly, domain.Fortnightly, domain.Monthly} {
		if row, ok := calc.Row(f); ok {
			fmt.Fprintf(&buf, "  %s: %s\n", f.Label(), net(row))
		}
	}
	fmt.Fprintf(&buf, "Superannuation: %s\n", FormatCurrency(a.Superannuation.Add(a.VoluntarySuper)))
	fmt.Fprintf(&buf, "Remaining cap: %s\n", FormatCurrency(calc.Summary.RemainingCap))
	return buf.Bytes(), nil
}
