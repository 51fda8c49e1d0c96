package calculation

import (
	"github.com/rgehrsitz/paycalc/internal/domain"
	"github.com/shopspring/decimal"
)

// ToAnnual converts a per-period amount into an annual amount.
// Negative amounts pass through; callers use them for deductions.
func ToAnnual(amount decimal.Decimal, frequency domain.Frequency) decimal.Decimal {
	return amount.Mul(decimal.NewFromInt(frequency.PeriodsPerYear()))
}

// FromAnnual converts an annual amount into a per-period amount
func FromAnnual(annual decimal.Decimal, frequency domain.Frequency) decimal.Decimal {
	periods := frequency.PeriodsPerYear()
	if periods == 1 {
		return annual
	}
	return annual.Div(decimal.NewFromInt(periods))
}

// Convert moves an amount from one period to another
func Convert(amount decimal.Decimal, from, to domain.Frequency) decimal.Decimal {
	return FromAnnual(ToAnnual(amount, from), to)
}
