package calculation

import (
	"github.com/shopspring/decimal"
)

// RemainingCap is the allowance left under an annual contribution cap once
// the base (mandatory) contribution is counted
func RemainingCap(baseContribution, annualCapLimit decimal.Decimal) decimal.Decimal {
	return decimal.Max(decimal.Zero, annualCapLimit.Sub(baseContribution))
}

// ClampVoluntary bounds a requested voluntary contribution to [0, remaining].
// Out-of-range requests are clamped, never rejected.
func ClampVoluntary(requested, remaining decimal.Decimal) decimal.Decimal {
	remaining = decimal.Max(decimal.Zero, remaining)
	return decimal.Min(decimal.Max(decimal.Zero, requested), remaining)
}

// TaxSavingsEstimate approximates the tax saved by a concessional
// contribution using a fixed assumed marginal rate rather than the bracket
// table. Rates are percents.
func TaxSavingsEstimate(voluntary, assumedMarginalRate, concessionalRate decimal.Decimal) decimal.Decimal {
	return applyRate(voluntary, assumedMarginalRate.Sub(concessionalRate))
}
