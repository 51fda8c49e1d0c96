package domain

import (
	"github.com/shopspring/decimal"
)

// AnnualResult holds every derived annual amount for one salary snapshot
type AnnualResult struct {
	AnnualSalary      decimal.Decimal `json:"annualSalary"`
	TotalOvertime     decimal.Decimal `json:"totalOvertime"`
	OvertimeSuperBase decimal.Decimal `json:"overtimeSuperBase"`
	TotalAnnualIncome decimal.Decimal `json:"totalAnnualIncome"`

	Superannuation       decimal.Decimal `json:"superannuation"`
	SuperRate            decimal.Decimal `json:"superRate"`
	RemainingCap         decimal.Decimal `json:"remainingCap"`
	RequestedVoluntary   decimal.Decimal `json:"requestedVoluntary"`
	VoluntarySuper       decimal.Decimal `json:"voluntarySuper"`
	TaxSavingsEstimate   decimal.Decimal `json:"taxSavingsEstimate"`
	ConcessionalCapLimit decimal.Decimal `json:"concessionalCapLimit"`

	TaxDeductibleSacrifice    decimal.Decimal `json:"taxDeductibleSacrifice"`
	NonTaxDeductibleSacrifice decimal.Decimal `json:"nonTaxDeductibleSacrifice"`
	TotalSalarySacrifice      decimal.Decimal `json:"totalSalarySacrifice"`

	TaxableIncome   decimal.Decimal `json:"taxableIncome"`
	IncomeTax       decimal.Decimal `json:"incomeTax"`
	LowIncomeOffset decimal.Decimal `json:"lowIncomeOffset"`
	MedicareLevy    decimal.Decimal `json:"medicareLevy"`
	LoanRepayment   decimal.Decimal `json:"loanRepayment"`
	TotalLevies     decimal.Decimal `json:"totalLevies"`
	MarginalRate    decimal.Decimal `json:"marginalRate"`
	EffectiveRate   decimal.Decimal `json:"effectiveRate"`

	TotalFringeBenefits      decimal.Decimal `json:"totalFringeBenefits"`
	ReportableFringeBenefits decimal.Decimal `json:"reportableFringeBenefits"`

	NetIncome decimal.Decimal `json:"netIncome"`
}

// TotalTax is income tax after offsets plus all levies
func (ar AnnualResult) TotalTax() decimal.Decimal {
	return ar.IncomeTax.Sub(ar.LowIncomeOffset).Add(ar.TotalLevies)
}

// BreakdownRow is the annual result expressed per pay period
type BreakdownRow struct {
	Frequency                 Frequency       `json:"frequency"`
	GrossIncome               decimal.Decimal `json:"grossIncome"`
	BaseSalary                decimal.Decimal `json:"baseSalary"`
	Overtime                  decimal.Decimal `json:"overtime"`
	IncomeTax                 decimal.Decimal `json:"incomeTax"`
	LowIncomeOffset           decimal.Decimal `json:"lowIncomeOffset"`
	MedicareLevy              decimal.Decimal `json:"medicareLevy"`
	LoanRepayment             decimal.Decimal `json:"loanRepayment"`
	NetIncome                 decimal.Decimal `json:"netIncome"`
	Superannuation            decimal.Decimal `json:"superannuation"`
	VoluntarySuper            decimal.Decimal `json:"voluntarySuper"`
	FringeBenefits            decimal.Decimal `json:"fringeBenefits"`
	ReportableFringeBenefits  decimal.Decimal `json:"reportableFringeBenefits"`
	TaxDeductibleSacrifice    decimal.Decimal `json:"taxDeductibleSacrifice"`
	NonTaxDeductibleSacrifice decimal.Decimal `json:"nonTaxDeductibleSacrifice"`
	TotalSalarySacrifice      decimal.Decimal `json:"totalSalarySacrifice"`
}

// SalarySummary carries the scalar fields a form shows next to the breakdown
type SalarySummary struct {
	TaxableIncome      decimal.Decimal `json:"taxableIncome"`
	RemainingCap       decimal.Decimal `json:"remainingCap"`
	TaxSavingsEstimate decimal.Decimal `json:"taxSavingsEstimate"`
	MarginalRate       decimal.Decimal `json:"marginalRate"`
}

// SalaryCalculation is the full engine output for one snapshot
type SalaryCalculation struct {
	TaxSystem string         `json:"taxSystem"`
	Currency  string         `json:"currency"`
	Annual    AnnualResult   `json:"annual"`
	Breakdown []BreakdownRow `json:"breakdown"`
	Summary   SalarySummary  `json:"summary"`
}

// Row returns the breakdown row for f, if present
func (sc *SalaryCalculation) Row(f Frequency) (BreakdownRow, bool) {
	for _, r := range sc.Breakdown {
		if r.Frequency == f {
			return r, true
		}
	}
	return BreakdownRow{}, false
}
