package calculation

import (
	"github.com/rgehrsitz/paycalc/internal/domain"
	"github.com/shopspring/decimal"
)

// Project converts annual results into one display row per pay frequency,
// weekly first and annually last
func Project(annual domain.AnnualResult) []domain.BreakdownRow {
	rows := make([]domain.BreakdownRow, 0, len(domain.PayFrequencies))
	for _, f := range domain.PayFrequencies {
		rows = append(rows, ProjectRow(annual, f))
	}
	return rows
}

// ProjectRow converts annual results into a single row for frequency f
func ProjectRow(annual domain.AnnualResult, f domain.Frequency) domain.BreakdownRow {
	per := func(amount decimal.Decimal) decimal.Decimal {
		return FromAnnual(amount, f)
	}
	return domain.BreakdownRow{
		Frequency:                 f,
		GrossIncome:               per(annual.TotalAnnualIncome),
		BaseSalary:                per(annual.AnnualSalary),
		Overtime:                  per(annual.TotalOvertime),
		IncomeTax:                 per(annual.IncomeTax),
		LowIncomeOffset:           per(annual.LowIncomeOffset),
		MedicareLevy:              per(annual.MedicareLevy),
		LoanRepayment:             per(annual.LoanRepayment),
		NetIncome:                 per(annual.NetIncome),
		Superannuation:            per(annual.Superannuation),
		VoluntarySuper:            per(annual.VoluntarySuper),
		FringeBenefits:            per(annual.TotalFringeBenefits),
		ReportableFringeBenefits:  per(annual.ReportableFringeBenefits),
		TaxDeductibleSacrifice:    per(annual.TaxDeductibleSacrifice),
		NonTaxDeductibleSacrifice: per(annual.NonTaxDeductibleSacrifice),
		TotalSalarySacrifice:      per(annual.TotalSalarySacrifice),
	}
}
