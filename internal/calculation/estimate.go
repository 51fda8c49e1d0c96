package calculation

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rgehrsitz/paycalc/internal/domain"
	"github.com/shopspring/decimal"
)

// Deduction is one itemised deduction category claimed on a return
type Deduction struct {
	Category string          `json:"category" yaml:"category"`
	Amount   decimal.Decimal `json:"amount" yaml:"amount"`
}

// EstimateInput describes a year's income position for a tax return estimate
type EstimateInput struct {
	FinancialYear        string          `json:"financialYear" yaml:"financial_year"`
	GrossIncome          decimal.Decimal `json:"grossIncome" yaml:"gross_income"`
	Deductions           []Deduction     `json:"deductions" yaml:"deductions"`
	TaxWithheld          decimal.Decimal `json:"taxWithheld" yaml:"tax_withheld"`
	IncludeLoanRepayment bool            `json:"includeLoanRepayment" yaml:"include_loan_repayment"`
	MedicareExempt       bool            `json:"medicareExempt" yaml:"medicare_exempt"`
}

// TaxEstimate is the result of a return estimate. Amounts are rounded to cents.
type TaxEstimate struct {
	TaxSystem       string          `json:"taxSystem"`
	FinancialYear   string          `json:"financialYear"`
	GrossIncome     decimal.Decimal `json:"grossIncome"`
	Deductions      []Deduction     `json:"deductions"`
	TotalDeductions decimal.Decimal `json:"totalDeductions"`
	TaxableIncome   decimal.Decimal `json:"taxableIncome"`
	BaseTax         decimal.Decimal `json:"baseTax"`
	MedicareLevy    decimal.Decimal `json:"medicareLevy"`
	LoanRepayment   decimal.Decimal `json:"loanRepayment"`
	LowIncomeOffset decimal.Decimal `json:"lowIncomeOffset"`
	TotalTax        decimal.Decimal `json:"totalTax"`
	EffectiveRate   decimal.Decimal `json:"effectiveRate"`
	TaxWithheld     decimal.Decimal `json:"taxWithheld"`
	RefundOrOwed    decimal.Decimal `json:"refundOrOwed"` // positive is a refund
}

// IsRefund reports whether more tax was withheld than is owed
func (te *TaxEstimate) IsRefund() bool {
	return te.RefundOrOwed.IsPositive()
}

// Validate rejects a malformed financial year and amounts too large to
// calculate with
func (in EstimateInput) Validate() error {
	if in.FinancialYear != "" {
		if _, _, err := ParseFinancialYear(in.FinancialYear); err != nil {
			return err
		}
	}
	if !domain.AmountInRange(in.GrossIncome) {
		return fmt.Errorf("gross income is out of range (limit %s)", domain.MaxAmount)
	}
	if !domain.AmountInRange(in.TaxWithheld) {
		return fmt.Errorf("tax withheld is out of range (limit %s)", domain.MaxAmount)
	}
	for _, d := range in.Deductions {
		if !domain.AmountInRange(d.Amount) {
			return fmt.Errorf("deduction %q is out of range (limit %s)", d.Category, domain.MaxAmount)
		}
	}
	return nil
}

// ResolveEstimateSystem picks the tax system for a return. A named system must
// cover fy when both are given; with no name, the system covering fy is used,
// and with neither, the default system.
func ResolveEstimateSystem(rc *domain.RegulatoryConfig, code, fy string) (domain.TaxSystem, error) {
	if fy == "" {
		return rc.Lookup(code)
	}
	short, err := NormalizeFinancialYear(fy)
	if err != nil {
		return domain.TaxSystem{}, err
	}

	if code != "" {
		system, err := rc.Lookup(code)
		if err != nil {
			return domain.TaxSystem{}, err
		}
		if err := checkFinancialYear(system, short); err != nil {
			return domain.TaxSystem{}, err
		}
		return system, nil
	}

	system, ok := rc.SystemForYear(short)
	if !ok {
		return domain.TaxSystem{}, &domain.UnknownSystemError{FinancialYear: short, Available: rc.Codes()}
	}
	return system, nil
}

// NormalizeFinancialYear returns fy in its short form, "2024-2025" becoming "2024-25"
func NormalizeFinancialYear(fy string) (string, error) {
	start, _, err := ParseFinancialYear(fy)
	if err != nil {
		return "", err
	}
	return CurrentFinancialYear(start), nil
}

// checkFinancialYear fails when system is tied to a year other than fy.
// Systems without a year, such as flat test systems, cover any year.
func checkFinancialYear(system domain.TaxSystem, fy string) error {
	if system.FinancialYear != "" && system.FinancialYear != fy {
		return fmt.Errorf("tax system %s covers financial year %s, not %s", system.Code, system.FinancialYear, fy)
	}
	return nil
}

// EstimateTax computes a year-end return: bracket tax on gross income less
// deductions, plus levies, less the low income offset. The offset always
// applies when the system defines one. The input's financial year, when set,
// must be the one the system's brackets belong to.
func EstimateTax(system domain.TaxSystem, in EstimateInput) (*TaxEstimate, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	evaluator, err := NewBracketEvaluator(system.Brackets)
	if err != nil {
		return nil, fmt.Errorf("tax system %q: %w", system.Code, err)
	}

	fy := system.FinancialYear
	if in.FinancialYear != "" {
		fy, _ = NormalizeFinancialYear(in.FinancialYear)
		if err := checkFinancialYear(system, fy); err != nil {
			return nil, err
		}
	}

	gross := nonNegative(in.GrossIncome)
	totalDeductions := decimal.Zero
	deductions := make([]Deduction, 0, len(in.Deductions))
	for _, d := range in.Deductions {
		amount := nonNegative(d.Amount).Round(2)
		deductions = append(deductions, Deduction{Category: d.Category, Amount: amount})
		totalDeductions = totalDeductions.Add(amount)
	}

	taxable := decimal.Max(decimal.Zero, gross.Sub(totalDeductions)).Round(2)
	est := &TaxEstimate{
		TaxSystem:       system.Code,
		FinancialYear:   fy,
		GrossIncome:     gross.Round(2),
		Deductions:      deductions,
		TotalDeductions: totalDeductions,
		TaxableIncome:   taxable,
		BaseTax:         evaluator.Tax(taxable).Round(2),
		LowIncomeOffset: CalculateLowIncomeOffset(taxable, system.Rules.LowIncomeOffset).Round(2),
		TaxWithheld:     nonNegative(in.TaxWithheld).Round(2),
	}
	if !in.MedicareExempt {
		est.MedicareLevy = CalculateMedicareLevy(taxable, system.Rules.MedicareLevy).Round(2)
	}
	if in.IncludeLoanRepayment {
		est.LoanRepayment = CalculateLoanRepayment(taxable, system.Rules.LoanRepaymentBands).Round(2)
	}

	est.TotalTax = decimal.Max(decimal.Zero, est.BaseTax.Add(est.MedicareLevy).Add(est.LoanRepayment).Sub(est.LowIncomeOffset))
	if gross.IsPositive() {
		est.EffectiveRate = est.TotalTax.Div(gross).Mul(hundred).Round(4)
	}
	est.RefundOrOwed = est.TaxWithheld.Sub(est.TotalTax)
	return est, nil
}

// ParseFinancialYear converts a July to June financial year such as "2024-25"
// into its first and last instants (UTC)
func ParseFinancialYear(fy string) (time.Time, time.Time, error) {
	parts := strings.SplitN(strings.TrimSpace(fy), "-", 2)
	if len(parts) != 2 {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid financial year %q (expected YYYY-YY)", fy)
	}
	startYear, err := strconv.Atoi(parts[0])
	if err != nil || len(parts[0]) != 4 {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid start year in financial year %q", fy)
	}
	endYear, err := strconv.Atoi(parts[1])
	if err != nil || (endYear != (startYear+1)%100 && endYear != startYear+1) {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid end year in financial year %q", fy)
	}

	start := time.Date(startYear, time.July, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(startYear+1, time.June, 30, 23, 59, 59, 0, time.UTC)
	return start, end, nil
}

// CurrentFinancialYear returns the financial year containing now. Years
// start on 1 July.
func CurrentFinancialYear(now time.Time) string {
	startYear := now.Year()
	if now.Month() < time.July {
		startYear--
	}
	return fmt.Sprintf("%d-%02d", startYear, (startYear+1)%100)
}
