package output

import (
	"fmt"

	"github.com/rgehrsitz/paycalc/internal/domain"
)

// SystemAssumptions lists the jurisdiction constants behind a calculation,
// rendered in detailed outputs
func SystemAssumptions(system domain.TaxSystem) []string {
	rules := system.Rules
	name := system.Name
	if name == "" {
		name = system.Code
	}

	out := []string{
		fmt.Sprintf("Tax system: %s (%s)", name, system.Code),
		fmt.Sprintf("Income tax: %d brackets, %s top marginal rate", len(system.Brackets), topRate(system)),
		fmt.Sprintf("Superannuation guarantee: %s of ordinary earnings", FormatPercentage(rules.SuperGuaranteeRate)),
		fmt.Sprintf("Concessional contributions cap: %s per year, taxed at %s in the fund",
			FormatCurrency(rules.ConcessionalCap), FormatPercentage(rules.ConcessionalTaxRate)),
		fmt.Sprintf("Voluntary super tax savings assume a %s marginal rate", FormatPercentage(rules.AssumedMarginalRate)),
	}
	if rules.StandardWeeklyHours.IsPositive() {
		out = append(out, fmt.Sprintf("Pro-rata salaries are based on a %s hour week", rules.StandardWeeklyHours))
	}
	if rules.MedicareLevy.Rate.IsPositive() {
		line := fmt.Sprintf("Medicare levy: %s of taxable income", FormatPercentage(rules.MedicareLevy.Rate))
		if rules.MedicareLevy.PhaseInUpper.IsPositive() {
			line += fmt.Sprintf(", phased in between %s and %s",
				FormatCurrency(rules.MedicareLevy.PhaseInLower), FormatCurrency(rules.MedicareLevy.PhaseInUpper))
		}
		out = append(out, line)
	}
	if n := len(rules.LoanRepaymentBands); n > 0 {
		out = append(out, fmt.Sprintf("Study loan repayments: %d income bands", n))
	}
	if lito := rules.LowIncomeOffset; lito != nil {
		out = append(out, fmt.Sprintf("Low income tax offset: up to %s, tapering from %s",
			FormatCurrency(lito.Maximum), FormatCurrency(lito.FullThreshold)))
	}
	if rules.FringeBenefitGrossUp.IsPositive() {
		out = append(out, fmt.Sprintf("Reportable fringe benefits grossed up by %s", rules.FringeBenefitGrossUp))
	}
	return out
}

func topRate(system domain.TaxSystem) string {
	if len(system.Brackets) == 0 {
		return FormatPercentage(system.Rules.AssumedMarginalRate)
	}
	return FormatPercentage(system.Brackets[len(system.Brackets)-1].Rate)
}
