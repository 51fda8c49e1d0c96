package calculation

import (
	"fmt"

	"github.com/rgehrsitz/paycalc/internal/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// applyRate returns amount × rate%
func applyRate(amount, ratePercent decimal.Decimal) decimal.Decimal {
	return amount.Mul(ratePercent).Div(hundred)
}

// InvalidBracketsError reports a malformed bracket or band table. It signals a
// data bug in reference tables, never a user-input problem.
type InvalidBracketsError struct {
	Table   string
	Index   int
	Message string
}

func (e *InvalidBracketsError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("invalid %s: %s", e.Table, e.Message)
	}
	return fmt.Sprintf("invalid %s: bracket %d: %s", e.Table, e.Index, e.Message)
}

// ValidateBrackets checks that brackets start at zero, are ascending and
// contiguous, end unbounded, carry rates in [0,100], and that any supplied
// BaseAmount equals the tax of all lower brackets.
func ValidateBrackets(brackets []domain.TaxBracket) error {
	if len(brackets) == 0 {
		return &InvalidBracketsError{Table: "tax brackets", Index: -1, Message: "no brackets defined"}
	}
	if !brackets[0].Min.IsZero() {
		return &InvalidBracketsError{Table: "tax brackets", Index: 0, Message: fmt.Sprintf("first bracket must start at 0, starts at %s", brackets[0].Min)}
	}

	cumulative := decimal.Zero
	for i, b := range brackets {
		if b.Min.IsNegative() {
			return &InvalidBracketsError{Table: "tax brackets", Index: i, Message: "min cannot be negative"}
		}
		if b.Rate.IsNegative() || b.Rate.GreaterThan(hundred) {
			return &InvalidBracketsError{Table: "tax brackets", Index: i, Message: fmt.Sprintf("rate %s outside [0,100]", b.Rate)}
		}
		if b.BaseAmount != nil && !b.BaseAmount.Equal(cumulative) {
			return &InvalidBracketsError{Table: "tax brackets", Index: i, Message: fmt.Sprintf("base amount %s does not match cumulative tax %s", b.BaseAmount, cumulative)}
		}

		last := i == len(brackets)-1
		if last {
			if !b.Unbounded() {
				return &InvalidBracketsError{Table: "tax brackets", Index: i, Message: "top bracket must be unbounded"}
			}
			break
		}
		if b.Unbounded() {
			return &InvalidBracketsError{Table: "tax brackets", Index: i, Message: "only the top bracket may be unbounded"}
		}
		if !b.Max.GreaterThan(b.Min) {
			return &InvalidBracketsError{Table: "tax brackets", Index: i, Message: fmt.Sprintf("max %s must exceed min %s", b.Max, b.Min)}
		}
		if !b.Max.Equal(brackets[i+1].Min) {
			return &InvalidBracketsError{Table: "tax brackets", Index: i, Message: fmt.Sprintf("max %s does not meet next min %s", b.Max, brackets[i+1].Min)}
		}
		cumulative = cumulative.Add(applyRate(b.Max.Sub(b.Min), b.Rate))
	}
	return nil
}

// CalculateTax walks the brackets in ascending order: every bracket wholly
// below income is taxed across its full width, the bracket containing income
// is taxed on (income - min). Income on a boundary belongs to the higher bracket.
func CalculateTax(income decimal.Decimal, brackets []domain.TaxBracket) (decimal.Decimal, error) {
	if err := ValidateBrackets(brackets); err != nil {
		return decimal.Zero, err
	}
	return sumBracketTax(income, brackets), nil
}

func sumBracketTax(income decimal.Decimal, brackets []domain.TaxBracket) decimal.Decimal {
	if !income.IsPositive() {
		return decimal.Zero
	}

	var totalTax decimal.Decimal
	for _, bracket := range brackets {
		if income.LessThanOrEqual(bracket.Min) {
			break
		}
		upper := income
		if !bracket.Unbounded() && bracket.Max.LessThan(income) {
			upper = *bracket.Max
		}
		totalTax = totalTax.Add(applyRate(upper.Sub(bracket.Min), bracket.Rate))
	}
	return totalTax
}

// BracketEvaluator evaluates a validated bracket table using precomputed
// base amounts
type BracketEvaluator struct {
	brackets []domain.TaxBracket
}

// NewBracketEvaluator validates brackets and fills in every BaseAmount
func NewBracketEvaluator(brackets []domain.TaxBracket) (*BracketEvaluator, error) {
	if err := ValidateBrackets(brackets); err != nil {
		return nil, err
	}

	filled := make([]domain.TaxBracket, len(brackets))
	cumulative := decimal.Zero
	for i, b := range brackets {
		base := cumulative
		b.BaseAmount = &base
		filled[i] = b
		if !b.Unbounded() {
			cumulative = cumulative.Add(applyRate(b.Max.Sub(b.Min), b.Rate))
		}
	}
	return &BracketEvaluator{brackets: filled}, nil
}

// table returns a copy of the evaluated brackets, base amounts included
func (be *BracketEvaluator) table() []domain.TaxBracket {
	return append([]domain.TaxBracket(nil), be.brackets...)
}

// Tax returns baseAmount + (income - min) × rate for the containing bracket
func (be *BracketEvaluator) Tax(income decimal.Decimal) decimal.Decimal {
	if !income.IsPositive() {
		return decimal.Zero
	}
	b := be.containing(income)
	return b.BaseAmount.Add(applyRate(income.Sub(b.Min), b.Rate))
}

// MarginalRate returns the rate, in percent, applied to the next unit of income
func (be *BracketEvaluator) MarginalRate(income decimal.Decimal) decimal.Decimal {
	if income.IsNegative() {
		income = decimal.Zero
	}
	return be.containing(income).Rate
}

func (be *BracketEvaluator) containing(income decimal.Decimal) domain.TaxBracket {
	for i := len(be.brackets) - 1; i >= 0; i-- {
		if income.GreaterThanOrEqual(be.brackets[i].Min) {
			return be.brackets[i]
		}
	}
	return be.brackets[0]
}

// NewFlatTaxSystem builds the "simple" pseudo-system: one bracket from zero
// to infinity at ratePercent
func NewFlatTaxSystem(ratePercent decimal.Decimal) domain.TaxSystem {
	return domain.TaxSystem{
		Code:     "simple",
		Name:     fmt.Sprintf("Simple flat rate (%s%%)", ratePercent.String()),
		Currency: "AUD",
		Brackets: []domain.TaxBracket{{Min: decimal.Zero, Max: nil, Rate: ratePercent}},
	}
}
