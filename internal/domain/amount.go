package domain

import "github.com/shopspring/decimal"

// MaxAmount is the largest magnitude accepted for any money amount, rate or
// hour count coming from outside the program
var MaxAmount = decimal.New(1, 12)

// maxExponent bounds the decimal exponent. Comparing or rounding a value with
// an exponent in the millions allocates millions of digits.
const maxExponent = 20

// AmountInRange reports whether d is small enough to calculate with
func AmountInRange(d decimal.Decimal) bool {
	if exp := d.Exponent(); exp > maxExponent || exp < -maxExponent {
		return false
	}
	return d.Abs().LessThanOrEqual(MaxAmount)
}
