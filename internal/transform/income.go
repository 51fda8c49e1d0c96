package transform

import (
	"fmt"

	"github.com/rgehrsitz/paycalc/internal/calculation"
	"github.com/rgehrsitz/paycalc/internal/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// RaiseSalary increases the base salary by a percent, a fixed amount, or both
// (percent first). Amount is per Frequency, defaulting to the salary's own.
type RaiseSalary struct {
	Percent   decimal.Decimal
	Amount    decimal.Decimal
	Frequency domain.Frequency
}

func (t *RaiseSalary) Name() string { return "raise_salary" }

func (t *RaiseSalary) Description() string {
	switch {
	case !t.Percent.IsZero() && !t.Amount.IsZero():
		return fmt.Sprintf("Raise salary by %s%% plus $%s%s", t.Percent.String(), t.Amount.StringFixed(2), t.per())
	case !t.Amount.IsZero():
		return fmt.Sprintf("Raise salary by $%s%s", t.Amount.StringFixed(2), t.per())
	}
	return fmt.Sprintf("Raise salary by %s%%", t.Percent.String())
}

func (t *RaiseSalary) Validate(base domain.SalaryInput) error {
	if t.Percent.LessThanOrEqual(hundred.Neg()) {
		return &TransformError{TransformName: t.Name(), Operation: "validate", Reason: "percent must be greater than -100"}
	}
	if t.Frequency != "" && !t.Frequency.Valid() {
		return &TransformError{TransformName: t.Name(), Operation: "validate", Reason: fmt.Sprintf("unknown frequency %q", t.Frequency)}
	}
	if t.raised(base).IsNegative() {
		return &TransformError{TransformName: t.Name(), Operation: "validate", Reason: "salary would become negative"}
	}
	return nil
}

func (t *RaiseSalary) Apply(base domain.SalaryInput) (domain.SalaryInput, error) {
	out := CloneInput(base)
	out.Salary = t.raised(base)
	return out, nil
}

func (t *RaiseSalary) raised(base domain.SalaryInput) decimal.Decimal {
	amount := t.Amount
	if t.Frequency != "" {
		amount = calculation.Convert(amount, t.Frequency, base.Frequency)
	}
	return base.Salary.Mul(hundred.Add(t.Percent)).Div(hundred).Add(amount)
}

func (t *RaiseSalary) per() string {
	if t.Frequency == "" {
		return ""
	}
	return " " + string(t.Frequency)
}

// SetHours pro-rates the salary to the given hours per week or fortnight.
// Zero hours removes pro-rating.
type SetHours struct {
	Hours     decimal.Decimal
	Frequency domain.Frequency
}

func (t *SetHours) Name() string { return "set_hours" }

func (t *SetHours) Description() string {
	if t.Hours.IsZero() {
		return "Work full-time hours"
	}
	return fmt.Sprintf("Work %s hours per %s", t.Hours.String(), t.period())
}

func (t *SetHours) period() string {
	if domain.ParseFrequency(string(t.Frequency)) == domain.Fortnightly {
		return "fortnight"
	}
	return "week"
}

func (t *SetHours) Validate(base domain.SalaryInput) error {
	if t.Hours.IsNegative() {
		return &TransformError{TransformName: t.Name(), Operation: "validate", Reason: "hours cannot be negative"}
	}
	if t.Frequency != "" {
		f := domain.ParseFrequency(string(t.Frequency))
		if f != domain.Weekly && f != domain.Fortnightly {
			return &TransformError{TransformName: t.Name(), Operation: "validate", Reason: fmt.Sprintf("frequency must be weekly or fortnightly, got %q", t.Frequency)}
		}
	}
	return nil
}

func (t *SetHours) Apply(base domain.SalaryInput) (domain.SalaryInput, error) {
	out := CloneInput(base)
	if t.Hours.IsZero() {
		out.ProRata = nil
		return out, nil
	}
	freq := domain.Weekly
	if t.period() == "fortnight" {
		freq = domain.Fortnightly
	}
	out.ProRata = &domain.ProRata{Hours: t.Hours, Frequency: freq}
	return out, nil
}

// AddOvertime appends a recurring overtime block
type AddOvertime struct {
	Hours        decimal.Decimal
	Rate         decimal.Decimal
	Frequency    domain.Frequency
	IncludeSuper bool
}

func (t *AddOvertime) Name() string { return "add_overtime" }

func (t *AddOvertime) Description() string {
	return fmt.Sprintf("Add %s overtime hours %s at $%s", t.Hours.String(), domain.ParseFrequency(string(t.Frequency)), t.Rate.StringFixed(2))
}

func (t *AddOvertime) Validate(base domain.SalaryInput) error {
	if !t.Hours.IsPositive() || t.Rate.IsNegative() {
		return &TransformError{TransformName: t.Name(), Operation: "validate", Reason: "hours must be positive and rate non-negative"}
	}
	return nil
}

func (t *AddOvertime) Apply(base domain.SalaryInput) (domain.SalaryInput, error) {
	out := CloneInput(base)
	out.Overtime = append(out.Overtime, domain.OvertimeEntry{
		Hours:        t.Hours,
		Rate:         t.Rate,
		Frequency:    domain.ParseFrequency(string(t.Frequency)),
		IncludeSuper: t.IncludeSuper,
	})
	return out, nil
}
