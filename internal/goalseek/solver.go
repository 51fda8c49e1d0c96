package goalseek

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/paycalc/internal/calculation"
	"github.com/rgehrsitz/paycalc/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	two           = decimal.NewFromInt(2)
	minUpperBound = decimal.NewFromInt(1000)
	oneCent       = decimal.NewFromFloat(0.01)
)

// Solver finds the base salary that produces a target take-home pay
type Solver struct {
	CalcEngine *calculation.CalculationEngine
	Options    SolverOptions
}

// NewSolver creates a new salary solver
func NewSolver(calcEngine *calculation.CalculationEngine, options SolverOptions) *Solver {
	return &Solver{
		CalcEngine: calcEngine,
		Options:    options,
	}
}

// NewDefaultSolver creates a solver with default options
func NewDefaultSolver(calcEngine *calculation.CalculationEngine) *Solver {
	return NewSolver(calcEngine, DefaultSolverOptions())
}

// netAt returns the annual net income for an annual base salary
func (s *Solver) netAt(in domain.SalaryInput, annualSalary decimal.Decimal) decimal.Decimal {
	in.Salary = annualSalary
	in.Frequency = domain.Annually
	return s.CalcEngine.DeriveAnnualResults(in).NetIncome
}

// Solve bisects on the annual base salary. Net income rises with salary
// apart from downward steps where a flat-rate loan band starts, so the search
// still closes on a crossing. If the interval shrinks below a cent first, the
// closest salary found is returned with Success=false.
func (s *Solver) Solve(ctx context.Context, req Request) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if req.MaxIterations == 0 {
		req.MaxIterations = s.Options.MaxIterations
	}
	if req.Tolerance.IsZero() {
		req.Tolerance = s.Options.Tolerance
	}
	freq := req.TargetFrequency
	if freq == "" {
		freq = domain.Annually
	}
	target := calculation.ToAnnual(req.TargetNet, freq)
	s.CalcEngine.Logger.Debugf("goalseek: target annual net %s", target)

	lo := decimal.Zero
	if req.Constraints.MinSalary != nil {
		lo = *req.Constraints.MinSalary
	}

	iterations := 0

	// The lower bound may already clear the target
	if diff := s.netAt(req.Input, lo).Sub(target); diff.Abs().LessThanOrEqual(req.Tolerance) {
		return s.finish(req, freq, lo, iterations, true, "Target met at the minimum salary"), nil
	} else if diff.IsPositive() {
		return nil, &SolveError{
			Operation: "solve",
			Message:   fmt.Sprintf("target net %s is below the net income at the minimum salary %s", target.StringFixed(2), lo.StringFixed(2)),
		}
	}

	// Find an upper bound whose net income reaches the target
	var hi decimal.Decimal
	if req.Constraints.MaxSalary != nil {
		hi = *req.Constraints.MaxSalary
		if s.netAt(req.Input, hi).LessThan(target) {
			return nil, &SolveError{
				Operation: "solve",
				Message:   fmt.Sprintf("target net %s is unreachable within max_salary %s", target.StringFixed(2), hi.StringFixed(2)),
			}
		}
	} else {
		hi = decimal.Max(target.Mul(two), lo.Add(minUpperBound))
		for s.netAt(req.Input, hi).LessThan(target) {
			iterations++
			if iterations >= req.MaxIterations {
				return nil, &SolveError{
					Operation: "solve",
					Message:   fmt.Sprintf("target net %s is unreachable: no upper bound found after %d iterations", target.StringFixed(2), iterations),
				}
			}
			hi = hi.Mul(two)
		}
	}

	best := hi
	bestDiff := s.netAt(req.Input, hi).Sub(target).Abs()

	for iterations < req.MaxIterations {
		iterations++

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		mid := lo.Add(hi).Div(two)
		diff := s.netAt(req.Input, mid).Sub(target)
		if diff.Abs().LessThan(bestDiff) {
			best, bestDiff = mid, diff.Abs()
		}

		if diff.Abs().LessThanOrEqual(req.Tolerance) {
			info := fmt.Sprintf("Converged to target net within $%s", req.Tolerance.StringFixed(2))
			return s.finish(req, freq, mid, iterations, true, info), nil
		}

		if diff.IsNegative() {
			lo = mid
		} else {
			hi = mid
		}

		if hi.Sub(lo).LessThan(oneCent) {
			info := fmt.Sprintf("Search interval closed; closest is $%s away", bestDiff.StringFixed(2))
			return s.finish(req, freq, best, iterations, false, info), nil
		}
	}

	info := fmt.Sprintf("Did not converge after %d iterations", iterations)
	return s.finish(req, freq, best, iterations, false, info), nil
}

// finish rounds the salary to cents and runs the full calculation for it
func (s *Solver) finish(req Request, freq domain.Frequency, annual decimal.Decimal, iterations int, success bool, info string) *Result {
	annual = annual.Round(2)

	in := req.Input
	in.Salary = annual
	in.Frequency = domain.Annually
	calc := s.CalcEngine.Calculate(in)

	achieved := calculation.FromAnnual(calc.Annual.NetIncome, freq)
	return &Result{
		Request:         req,
		Success:         success,
		Iterations:      iterations,
		ConvergenceInfo: info,
		AnnualSalary:    annual,
		Salary:          calculation.FromAnnual(annual, req.Input.Frequency).Round(2),
		AchievedNet:     achieved,
		Difference:      achieved.Sub(req.TargetNet),
		Calculation:     calc,
	}
}
