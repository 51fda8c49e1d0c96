package config

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/paycalc/internal/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ValidationError is a single rejected field
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every problem found in one pass
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	msgs := make([]string, len(ve))
	for i, e := range ve {
		msgs[i] = e.Error()
	}
	return "validation failed:\n- " + strings.Join(msgs, "\n- ")
}

// Err returns nil when nothing was collected
func (ve ValidationErrors) Err() error {
	if len(ve) == 0 {
		return nil
	}
	return ve
}

func (ve *ValidationErrors) add(field, format string, args ...any) {
	*ve = append(*ve, ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
}

// checkRange reports false, and records the field, when d is too large to
// calculate with. The value itself is left out of the message.
func (ve *ValidationErrors) checkRange(field string, d decimal.Decimal) bool {
	if !domain.AmountInRange(d) {
		ve.add(field, "is out of range (limit %s)", domain.MaxAmount)
		return false
	}
	return true
}

func (ve *ValidationErrors) checkNonNegative(field string, d decimal.Decimal) {
	if !ve.checkRange(field, d) {
		return
	}
	if d.IsNegative() {
		ve.add(field, "cannot be negative, got %s", d)
	}
}

func (ve *ValidationErrors) checkPercent(field string, d decimal.Decimal) {
	if !ve.checkRange(field, d) {
		return
	}
	if d.IsNegative() || d.GreaterThan(hundred) {
		ve.add(field, "must be between 0 and 100, got %s", d)
	}
}
