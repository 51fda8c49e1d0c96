package output

import (
	"time"

	"github.com/rgehrsitz/paycalc/internal/domain"
	"github.com/shopspring/decimal"
)

// Report is everything a formatter renders for one salary calculation
type Report struct {
	Title       string                    `json:"title"`
	Calculation *domain.SalaryCalculation `json:"calculation"`
	Assumptions []string                  `json:"assumptions"`
	GeneratedAt time.Time                 `json:"generatedAt"`
}

// NewReport wraps a calculation with the assumptions of the system that produced it
func NewReport(title string, system domain.TaxSystem, calc *domain.SalaryCalculation) *Report {
	if title == "" {
		title = "Salary Breakdown"
	}
	return &Report{
		Title:       title,
		Calculation: calc,
		Assumptions: SystemAssumptions(system),
		GeneratedAt: time.Now(),
	}
}

// lineItem is one labelled amount in the per-period breakdown
type lineItem struct {
	Key      string
	Label    string
	Value    func(domain.BreakdownRow) decimal.Decimal
	Optional bool // hidden in console output when the annual amount is zero
}

var breakdownLines = []lineItem{
	{Key: "GrossIncome", Label: "Gross income", Value: func(r domain.BreakdownRow) decimal.Decimal { return r.GrossIncome }},
	{Key: "BaseSalary", Label: "Base salary", Value: func(r domain.BreakdownRow) decimal.Decimal { return r.BaseSalary }},
	{Key: "Overtime", Label: "Overtime", Value: func(r domain.BreakdownRow) decimal.Decimal { return r.Overtime }, Optional: true},
	{Key: "IncomeTax", Label: "Income tax", Value: func(r domain.BreakdownRow) decimal.Decimal { return r.IncomeTax }},
	{Key: "LowIncomeOffset", Label: "Low income offset", Value: func(r domain.BreakdownRow) decimal.Decimal { return r.LowIncomeOffset }, Optional: true},
	{Key: "MedicareLevy", Label: "Medicare levy", Value: func(r domain.BreakdownRow) decimal.Decimal { return r.MedicareLevy }, Optional: true},
	{Key: "LoanRepayment", Label: "Study loan repayment", Value: func(r domain.BreakdownRow) decimal.Decimal { return r.LoanRepayment }, Optional: true},
	{Key: "TaxDeductibleSacrifice", Label: "Pre-tax salary sacrifice", Value: func(r domain.BreakdownRow) decimal.Decimal { return r.TaxDeductibleSacrifice }, Optional: true},
	{Key: "NonTaxDeductibleSacrifice", Label: "Post-tax salary sacrifice", Value: func(r domain.BreakdownRow) decimal.Decimal { return r.NonTaxDeductibleSacrifice }, Optional: true},
	{Key: "TotalSalarySacrifice", Label: "Total salary sacrifice", Value: func(r domain.BreakdownRow) decimal.Decimal { return r.TotalSalarySacrifice }, Optional: true},
	{Key: "NetIncome", Label: "Net income", Value: func(r domain.BreakdownRow) decimal.Decimal { return r.NetIncome }},
	{Key: "Superannuation", Label: "Superannuation", Value: func(r domain.BreakdownRow) decimal.Decimal { return r.Superannuation }},
	{Key: "VoluntarySuper", Label: "Voluntary super", Value: func(r domain.BreakdownRow) decimal.Decimal { return r.VoluntarySuper }, Optional: true},
	{Key: "FringeBenefits", Label: "Fringe benefits", Value: func(r domain.BreakdownRow) decimal.Decimal { return r.FringeBenefits }, Optional: true},
	{Key: "ReportableFringeBenefits", Label: "Reportable fringe benefits", Value: func(r domain.BreakdownRow) decimal.Decimal { return r.ReportableFringeBenefits }, Optional: true},
}

// visibleLines drops optional lines whose annual amount is zero
func visibleLines(calc *domain.SalaryCalculation) []lineItem {
	annual, _ := calc.Row(domain.Annually)
	lines := make([]lineItem, 0, len(breakdownLines))
	for _, l := range breakdownLines {
		if l.Optional && l.Value(annual).IsZero() {
			continue
		}
		lines = append(lines, l)
	}
	return lines
}

// FormatCurrency formats a decimal as currency
func FormatCurrency(amount decimal.Decimal) string {
	return "$" + amount.StringFixed(2)
}

// FormatPercentage formats a percent value such as 11.5 as "11.50%"
func FormatPercentage(amount decimal.Decimal) string {
	return amount.StringFixed(2) + "%"
}
