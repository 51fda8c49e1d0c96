package transform

import (
	"fmt"

	"github.com/rgehrsitz/paycalc/internal/domain"
	"github.com/shopspring/decimal"
)

// SetVoluntarySuper turns on a voluntary concessional contribution. The
// engine clamps it to the remaining cap, so an oversized amount means "as
// much as the cap allows".
type SetVoluntarySuper struct {
	Amount    decimal.Decimal
	Frequency domain.Frequency
}

func (t *SetVoluntarySuper) Name() string { return "set_voluntary_super" }

func (t *SetVoluntarySuper) Description() string {
	if t.Amount.IsZero() {
		return "Stop voluntary super contributions"
	}
	return fmt.Sprintf("Contribute $%s %s to super", t.Amount.StringFixed(2), domain.ParseFrequency(string(t.Frequency)))
}

func (t *SetVoluntarySuper) Validate(base domain.SalaryInput) error {
	if t.Amount.IsNegative() {
		return &TransformError{TransformName: t.Name(), Operation: "validate", Reason: "amount cannot be negative"}
	}
	return nil
}

func (t *SetVoluntarySuper) Apply(base domain.SalaryInput) (domain.SalaryInput, error) {
	out := CloneInput(base)
	out.Settings.VoluntarySuper = t.Amount.IsPositive()
	out.Settings.VoluntarySuperAmount = t.Amount
	out.Settings.VoluntarySuperFrequency = domain.ParseFrequency(string(t.Frequency))
	return out, nil
}

// SetSuperRate overrides the employer guarantee rate (a percent)
type SetSuperRate struct {
	Rate decimal.Decimal
}

func (t *SetSuperRate) Name() string { return "set_super_rate" }

func (t *SetSuperRate) Description() string {
	return fmt.Sprintf("Employer super at %s%%", t.Rate.String())
}

func (t *SetSuperRate) Validate(base domain.SalaryInput) error {
	if t.Rate.IsNegative() || t.Rate.GreaterThan(hundred) {
		return &TransformError{TransformName: t.Name(), Operation: "validate", Reason: "rate must be between 0 and 100"}
	}
	return nil
}

func (t *SetSuperRate) Apply(base domain.SalaryInput) (domain.SalaryInput, error) {
	out := CloneInput(base)
	rate := t.Rate
	out.Settings.SuperRate = &rate
	return out, nil
}

// AddSalarySacrifice appends a pre-tax deduction
type AddSalarySacrifice struct {
	Label           string
	Amount          decimal.Decimal
	Frequency       domain.Frequency
	IsTaxDeductible bool
}

func (t *AddSalarySacrifice) Name() string { return "add_salary_sacrifice" }

func (t *AddSalarySacrifice) Description() string {
	kind := "non-deductible"
	if t.IsTaxDeductible {
		kind = "tax-deductible"
	}
	label := t.Label
	if label == "" {
		label = "salary sacrifice"
	}
	return fmt.Sprintf("Sacrifice $%s %s for %s (%s)", t.Amount.StringFixed(2), domain.ParseFrequency(string(t.Frequency)), label, kind)
}

func (t *AddSalarySacrifice) Validate(base domain.SalaryInput) error {
	if !t.Amount.IsPositive() {
		return &TransformError{TransformName: t.Name(), Operation: "validate", Reason: "amount must be positive"}
	}
	return nil
}

func (t *AddSalarySacrifice) Apply(base domain.SalaryInput) (domain.SalaryInput, error) {
	out := CloneInput(base)
	out.SalarySacrifice = append(out.SalarySacrifice, domain.SalarySacrificeEntry{
		Description:     t.Label,
		Amount:          t.Amount,
		Frequency:       domain.ParseFrequency(string(t.Frequency)),
		IsTaxDeductible: t.IsTaxDeductible,
	})
	return out, nil
}
