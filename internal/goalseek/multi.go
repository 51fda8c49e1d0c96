package goalseek

import (
	"context"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// SolveMany solves the same request for several target net amounts,
// returning results in target order. The first failure cancels the rest.
func (s *Solver) SolveMany(ctx context.Context, req Request, targets []decimal.Decimal) ([]Result, error) {
	results := make([]Result, len(targets))

	g, ctx := errgroup.WithContext(ctx)
	if s.Options.Parallelism > 0 {
		g.SetLimit(s.Options.Parallelism)
	}

	for i, target := range targets {
		i, target := i, target
		g.Go(func() error {
			r := req
			r.TargetNet = target
			result, err := s.Solve(ctx, r)
			if err != nil {
				return err
			}
			results[i] = *result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// SalarySchedule solves for evenly spaced targets from start to end
// inclusive, such as every $5000 of take-home pay
func (s *Solver) SalarySchedule(ctx context.Context, req Request, start, end, step decimal.Decimal) ([]Result, error) {
	if !step.IsPositive() || start.GreaterThan(end) {
		return nil, &SolveError{
			Operation: "salary_schedule",
			Message:   "step must be positive and start must not exceed end",
		}
	}

	var targets []decimal.Decimal
	for t := start; t.LessThanOrEqual(end); t = t.Add(step) {
		targets = append(targets, t)
	}
	return s.SolveMany(ctx, req, targets)
}
