package calculation

import (
	"fmt"

	"github.com/rgehrsitz/paycalc/internal/domain"
	"github.com/shopspring/decimal"
)

// CalculateMedicareLevy applies the flat levy to taxable income. When the
// rules define a phase-in band, income at or below PhaseInLower pays nothing
// and income inside the band pays PhaseInRate of the excess over PhaseInLower.
func CalculateMedicareLevy(taxableIncome decimal.Decimal, rules domain.MedicareLevyRules) decimal.Decimal {
	if !taxableIncome.IsPositive() || !rules.Rate.IsPositive() {
		return decimal.Zero
	}

	if rules.PhaseInUpper.IsPositive() {
		if taxableIncome.LessThanOrEqual(rules.PhaseInLower) {
			return decimal.Zero
		}
		if taxableIncome.LessThanOrEqual(rules.PhaseInUpper) {
			return applyRate(taxableIncome.Sub(rules.PhaseInLower), rules.PhaseInRate)
		}
	}
	return applyRate(taxableIncome, rules.Rate)
}

// ValidateLevyBands checks a loan repayment table the same way bracket tables
// are checked, except that the first band may start above zero
func ValidateLevyBands(bands []domain.LevyBand) error {
	for i, b := range bands {
		if b.Min.IsNegative() {
			return &InvalidBracketsError{Table: "levy bands", Index: i, Message: "min cannot be negative"}
		}
		if b.Rate.IsNegative() || b.Rate.GreaterThan(hundred) {
			return &InvalidBracketsError{Table: "levy bands", Index: i, Message: fmt.Sprintf("rate %s outside [0,100]", b.Rate)}
		}
		if i == len(bands)-1 {
			if b.Max != nil {
				return &InvalidBracketsError{Table: "levy bands", Index: i, Message: "top band must be unbounded"}
			}
			break
		}
		if b.Max == nil {
			return &InvalidBracketsError{Table: "levy bands", Index: i, Message: "only the top band may be unbounded"}
		}
		if !b.Max.GreaterThan(b.Min) {
			return &InvalidBracketsError{Table: "levy bands", Index: i, Message: fmt.Sprintf("max %s must exceed min %s", b.Max, b.Min)}
		}
		if !b.Max.Equal(bands[i+1].Min) {
			return &InvalidBracketsError{Table: "levy bands", Index: i, Message: fmt.Sprintf("max %s does not meet next min %s", b.Max, bands[i+1].Min)}
		}
		if bands[i+1].Rate.LessThan(b.Rate) {
			return &InvalidBracketsError{Table: "levy bands", Index: i + 1, Message: "rates must not decrease"}
		}
	}
	return nil
}

// LevyBandRate locates the band containing income. Income below the first
// band pays 0%.
func LevyBandRate(income decimal.Decimal, bands []domain.LevyBand) decimal.Decimal {
	rate := decimal.Zero
	for _, b := range bands {
		if income.LessThan(b.Min) {
			break
		}
		rate = b.Rate
	}
	return rate
}

// CalculateLoanRepayment is the whole taxable income times the matched band rate
func CalculateLoanRepayment(taxableIncome decimal.Decimal, bands []domain.LevyBand) decimal.Decimal {
	if !taxableIncome.IsPositive() {
		return decimal.Zero
	}
	return applyRate(taxableIncome, LevyBandRate(taxableIncome, bands))
}

// CalculateLowIncomeOffset returns the tapering offset for taxable income.
// Up to FullThreshold the full Maximum applies, then it tapers at
// FirstTaperRate to SecondThreshold and at SecondTaperRate after that.
func CalculateLowIncomeOffset(taxableIncome decimal.Decimal, rules *domain.LowIncomeOffsetRules) decimal.Decimal {
	if rules == nil {
		return decimal.Zero
	}
	if taxableIncome.LessThanOrEqual(rules.FullThreshold) {
		return rules.Maximum
	}
	if taxableIncome.LessThanOrEqual(rules.SecondThreshold) {
		return decimal.Max(decimal.Zero, rules.Maximum.Sub(applyRate(taxableIncome.Sub(rules.FullThreshold), rules.FirstTaperRate)))
	}
	remaining := rules.Maximum.Sub(applyRate(rules.SecondThreshold.Sub(rules.FullThreshold), rules.FirstTaperRate))
	return decimal.Max(decimal.Zero, remaining.Sub(applyRate(taxableIncome.Sub(rules.SecondThreshold), rules.SecondTaperRate)))
}
