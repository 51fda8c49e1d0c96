package transform

import (
	"fmt"

	"github.com/rgehrsitz/paycalc/internal/domain"
)

// InputTransform is a what-if change to a salary snapshot. Transforms are
// composable: each one receives the previous one's output.
type InputTransform interface {
	// Apply returns a modified copy of base. base itself is never changed.
	Apply(base domain.SalaryInput) (domain.SalaryInput, error)

	// Name returns a short identifier such as "raise_salary"
	Name() string

	// Description returns a human-readable description of the change
	Description() string

	// Validate checks the transform's parameters without applying it
	Validate(base domain.SalaryInput) error
}

// ApplyTransforms applies transforms to base in order
func ApplyTransforms(base domain.SalaryInput, transforms []InputTransform) (domain.SalaryInput, error) {
	current := CloneInput(base)

	for i, transform := range transforms {
		if transform == nil {
			return domain.SalaryInput{}, fmt.Errorf("transform at index %d is nil", i)
		}

		if err := transform.Validate(current); err != nil {
			return domain.SalaryInput{}, fmt.Errorf("transform %s validation failed: %w", transform.Name(), err)
		}

		next, err := transform.Apply(current)
		if err != nil {
			return domain.SalaryInput{}, fmt.Errorf("transform %s failed: %w", transform.Name(), err)
		}

		current = next
	}

	return current, nil
}

// CloneInput deep-copies the slices and pointers of a snapshot
func CloneInput(in domain.SalaryInput) domain.SalaryInput {
	out := in
	if in.ProRata != nil {
		pr := *in.ProRata
		out.ProRata = &pr
	}
	if in.Settings.SuperRate != nil {
		rate := *in.Settings.SuperRate
		out.Settings.SuperRate = &rate
	}
	out.Overtime = append([]domain.OvertimeEntry(nil), in.Overtime...)
	out.FringeBenefits = append([]domain.FringeBenefitEntry(nil), in.FringeBenefits...)
	out.SalarySacrifice = append([]domain.SalarySacrificeEntry(nil), in.SalarySacrifice...)
	return out
}

// TransformError is a transform that could not be built or applied
type TransformError struct {
	TransformName string
	Operation     string
	Reason        string
	Err           error
}

func (e *TransformError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transform %s (%s): %s: %v", e.TransformName, e.Operation, e.Reason, e.Err)
	}
	return fmt.Sprintf("transform %s (%s): %s", e.TransformName, e.Operation, e.Reason)
}

func (e *TransformError) Unwrap() error {
	return e.Err
}
