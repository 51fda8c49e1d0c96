package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/paycalc/internal/domain"
)

// ConsoleVerboseFormatter renders the full per-period breakdown table
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console" }

func (c ConsoleVerboseFormatter) Format(report *Report) ([]byte, error) {
	calc := report.Calculation
	if calc == nil {
		return nil, errNoCalculation
	}
	var buf bytes.Buffer

	fmt.Fprintln(&buf, titleStyle.Render(strings.ToUpper(report.Title)))
	fmt.Fprintln(&buf, mutedStyle.Render(fmt.Sprintf("Tax system: %s   Currency: %s", calc.TaxSystem, calc.Currency)))
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, renderBreakdownTable(calc))
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, panelStyle.Render(renderSummary(calc)))

	if len(report.Assumptions) > 0 {
		fmt.Fprintln(&buf)
		fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
		for _, a := range report.Assumptions {
			fmt.Fprintf(&buf, "• %s\n", a)
		}
	}
	return buf.Bytes(), nil
}

func renderBreakdownTable(calc *domain.SalaryCalculation) string {
	header := []string{labelStyle.Render("")}
	for _, row := range calc.Breakdown {
		header = append(header, headerCellStyle.Render(row.Frequency.Label()))
	}
	lines := []string{lipgloss.JoinHorizontal(lipgloss.Top, header...)}
	lines = append(lines, mutedStyle.Render(strings.Repeat("─", labelWidth+cellWidth*len(calc.Breakdown))))

	for _, item := range visibleLines(calc) {
		style := cellStyle
		switch item.Key {
		case "NetIncome":
			style = netCellStyle
		case "IncomeTax", "MedicareLevy", "LoanRepayment":
			style = deductionCellStyle
		}
		cells := []string{labelStyle.Render(item.Label)}
		for _, row := range calc.Breakdown {
			cells = append(cells, style.Render(FormatCurrency(item.Value(row))))
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return strings.Join(lines, "\n")
}

func renderSummary(calc *domain.SalaryCalculation) string {
	a := calc.Annual
	rows := [][2]string{
		{"Taxable income", FormatCurrency(calc.Summary.TaxableIncome)},
		{"Total tax", FormatCurrency(a.TotalTax())},
		{"Marginal rate", FormatPercentage(calc.Summary.MarginalRate)},
		{"Effective rate", FormatPercentage(a.EffectiveRate)},
		{"Super rate", FormatPercentage(a.SuperRate)},
		{"Remaining concessional cap", FormatCurrency(calc.Summary.RemainingCap)},
	}
	if a.RequestedVoluntary.IsPositive() {
		voluntary := FormatCurrency(a.VoluntarySuper)
		if a.VoluntarySuper.LessThan(a.RequestedVoluntary) {
			voluntary += fmt.Sprintf(" (capped from %s)", FormatCurrency(a.RequestedVoluntary))
		}
		rows = append(rows,
			[2]string{"Voluntary super", voluntary},
			[2]string{"Estimated tax savings", FormatCurrency(calc.Summary.TaxSavingsEstimate)},
		)
	}

	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		lines = append(lines, labelStyle.Render(r[0]+":")+r[1])
	}
	return strings.Join(lines, "\n")
}
