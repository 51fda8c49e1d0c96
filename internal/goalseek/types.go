package goalseek

import (
	"fmt"

	"github.com/rgehrsitz/paycalc/internal/domain"
	"github.com/shopspring/decimal"
)

// Constraints bound the annual base salary the solver may try
type Constraints struct {
	MinSalary *decimal.Decimal `json:"min_salary,omitempty"`
	MaxSalary *decimal.Decimal `json:"max_salary,omitempty"`
}

// Request asks for the base salary that yields TargetNet take-home pay per
// TargetFrequency period. Every other field of Input is held fixed.
type Request struct {
	Input           domain.SalaryInput `json:"input"`
	TargetNet       decimal.Decimal    `json:"target_net"`
	TargetFrequency domain.Frequency   `json:"target_frequency"`
	Constraints     Constraints        `json:"constraints"`
	MaxIterations   int                `json:"max_iterations,omitempty"`
	Tolerance       decimal.Decimal    `json:"tolerance,omitempty"`
}

// Result is the outcome of a solve
type Result struct {
	Request         Request `json:"request"`
	Success         bool    `json:"success"`
	Iterations      int     `json:"iterations"`
	ConvergenceInfo string  `json:"convergence_info"`

	// AnnualSalary is the solved salary; Salary is the same amount expressed
	// in the input's own frequency
	AnnualSalary decimal.Decimal `json:"annual_salary"`
	Salary       decimal.Decimal `json:"salary"`

	AchievedNet decimal.Decimal           `json:"achieved_net"` // per TargetFrequency
	Difference  decimal.Decimal           `json:"difference"`   // achieved minus target
	Calculation *domain.SalaryCalculation `json:"calculation"`
}

// SolverOptions configures the bisection
type SolverOptions struct {
	Tolerance     decimal.Decimal // Acceptable |achieved - target| in annual net dollars
	MaxIterations int             // Bisection steps before giving up
	Parallelism   int             // Concurrent solves in SolveMany
}

// DefaultSolverOptions returns default solver configuration
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		Tolerance:     decimal.NewFromFloat(0.01),
		MaxIterations: 100,
		Parallelism:   4,
	}
}

// Validate checks the request before any calculation runs
func (r *Request) Validate() error {
	for name, d := range map[string]*decimal.Decimal{
		"target net income": &r.TargetNet,
		"min_salary":        r.Constraints.MinSalary,
		"max_salary":        r.Constraints.MaxSalary,
	} {
		if d != nil && !domain.AmountInRange(*d) {
			return &SolveError{
				Operation: "validate_request",
				Message:   fmt.Sprintf("%s is out of range (limit %s)", name, domain.MaxAmount),
			}
		}
	}
	if r.TargetNet.IsNegative() {
		return &SolveError{
			Operation: "validate_request",
			Message:   "target net income cannot be negative",
		}
	}
	if r.TargetFrequency != "" && !r.TargetFrequency.Valid() {
		return &SolveError{
			Operation: "validate_request",
			Message:   "unknown target frequency " + string(r.TargetFrequency),
		}
	}

	c := r.Constraints
	if c.MinSalary != nil && c.MinSalary.IsNegative() {
		return &SolveError{
			Operation: "validate_request",
			Message:   "min_salary cannot be negative",
		}
	}
	if c.MinSalary != nil && c.MaxSalary != nil && c.MinSalary.GreaterThan(*c.MaxSalary) {
		return &SolveError{
			Operation: "validate_request",
			Message:   "min_salary cannot be greater than max_salary",
		}
	}
	return nil
}

// SolveError represents errors from the salary solver
type SolveError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *SolveError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *SolveError) Unwrap() error {
	return e.Cause
}
