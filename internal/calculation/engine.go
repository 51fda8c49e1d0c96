package calculation

import (
	"fmt"
	"sync"

	"github.com/goccy/go-json"
	"github.com/rgehrsitz/paycalc/internal/domain"
	"github.com/shopspring/decimal"
)

const fortnightHoursMultiplier = 2

var defaultStandardWeeklyHours = decimal.NewFromInt(38)

// CalculationEngine derives annual results and period breakdowns for salary
// snapshots under one tax system
type CalculationEngine struct {
	system    domain.TaxSystem
	evaluator *BracketEvaluator
	Logger    Logger

	mu       sync.Mutex
	lastKey  string
	lastCalc *domain.SalaryCalculation
}

// NewCalculationEngine validates the system's bracket and band tables and
// returns an engine bound to it
func NewCalculationEngine(system domain.TaxSystem) (*CalculationEngine, error) {
	evaluator, err := NewBracketEvaluator(system.Brackets)
	if err != nil {
		return nil, fmt.Errorf("tax system %q: %w", system.Code, err)
	}
	if err := ValidateLevyBands(system.Rules.LoanRepaymentBands); err != nil {
		return nil, fmt.Errorf("tax system %q: %w", system.Code, err)
	}
	return &CalculationEngine{
		system:    system,
		evaluator: evaluator,
		Logger:    NopLogger{},
	}, nil
}

// SetLogger sets the engine's logger. Passing nil restores the no-op logger.
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

// System returns the tax system the engine evaluates against
func (ce *CalculationEngine) System() domain.TaxSystem {
	return ce.system
}

// Evaluator exposes the validated bracket evaluator
func (ce *CalculationEngine) Evaluator() *BracketEvaluator {
	return ce.evaluator
}

// Calculate derives the annual results for in and projects them into display
// rows. The last snapshot is memoized, so repeated calls with an unchanged
// input return the same figures without recomputing.
func (ce *CalculationEngine) Calculate(in domain.SalaryInput) *domain.SalaryCalculation {
	key := snapshotKey(in)

	ce.mu.Lock()
	if key != "" && key == ce.lastKey && ce.lastCalc != nil {
		calc := cloneCalculation(ce.lastCalc)
		ce.mu.Unlock()
		ce.Logger.Debugf("memo hit for %s snapshot", ce.system.Code)
		return calc
	}
	ce.mu.Unlock()

	annual := ce.DeriveAnnualResults(in)
	calc := &domain.SalaryCalculation{
		TaxSystem: ce.system.Code,
		Currency:  ce.system.Currency,
		Annual:    annual,
		Breakdown: Project(annual),
		Summary: domain.SalarySummary{
			TaxableIncome:      annual.TaxableIncome,
			RemainingCap:       annual.RemainingCap,
			TaxSavingsEstimate: annual.TaxSavingsEstimate,
			MarginalRate:       annual.MarginalRate,
		},
	}

	ce.mu.Lock()
	ce.lastKey = key
	ce.lastCalc = calc
	ce.mu.Unlock()
	return cloneCalculation(calc)
}

// DeriveAnnualResults runs the full derivation chain for one snapshot. Every
// step reads only values computed before it.
func (ce *CalculationEngine) DeriveAnnualResults(in domain.SalaryInput) domain.AnnualResult {
	rules := ce.system.Rules
	settings := in.Settings.Normalized()
	var r domain.AnnualResult

	// Income
	r.AnnualSalary = ce.annualSalary(in)
	for _, o := range in.Overtime {
		amount := ToAnnual(nonNegative(o.Hours).Mul(nonNegative(o.Rate)), o.Frequency)
		r.TotalOvertime = r.TotalOvertime.Add(amount)
		if o.IncludeSuper {
			r.OvertimeSuperBase = r.OvertimeSuperBase.Add(amount)
		}
	}
	r.TotalAnnualIncome = r.AnnualSalary.Add(r.TotalOvertime)

	// Superannuation
	r.SuperRate = rules.SuperGuaranteeRate
	if settings.SuperRate != nil {
		r.SuperRate = nonNegative(*settings.SuperRate)
	}
	r.Superannuation = applyRate(r.AnnualSalary.Add(r.OvertimeSuperBase), r.SuperRate)
	r.ConcessionalCapLimit = rules.ConcessionalCap
	r.RemainingCap = RemainingCap(r.Superannuation, rules.ConcessionalCap)
	if settings.VoluntarySuper {
		r.RequestedVoluntary = ToAnnual(settings.VoluntarySuperAmount, settings.VoluntarySuperFrequency)
		r.VoluntarySuper = ClampVoluntary(r.RequestedVoluntary, r.RemainingCap)
		if !r.VoluntarySuper.Equal(r.RequestedVoluntary) {
			ce.Logger.Debugf("voluntary contribution %s clamped to %s", r.RequestedVoluntary.StringFixed(2), r.VoluntarySuper.StringFixed(2))
		}
	}
	r.TaxSavingsEstimate = TaxSavingsEstimate(r.VoluntarySuper, rules.AssumedMarginalRate, rules.ConcessionalTaxRate)

	// Salary sacrifice
	for _, s := range in.SalarySacrifice {
		amount := ToAnnual(nonNegative(s.Amount), s.Frequency)
		if s.IsTaxDeductible {
			r.TaxDeductibleSacrifice = r.TaxDeductibleSacrifice.Add(amount)
		} else {
			r.NonTaxDeductibleSacrifice = r.NonTaxDeductibleSacrifice.Add(amount)
		}
	}
	r.TotalSalarySacrifice = r.TaxDeductibleSacrifice.Add(r.NonTaxDeductibleSacrifice)

	// Tax
	r.TaxableIncome = decimal.Max(decimal.Zero, r.TotalAnnualIncome.Sub(r.TaxDeductibleSacrifice).Sub(r.VoluntarySuper))
	r.IncomeTax = ce.evaluator.Tax(r.TaxableIncome)
	r.MarginalRate = ce.evaluator.MarginalRate(r.TaxableIncome)

	if settings.IncludeMedicareLevy && !settings.MedicareExempt {
		r.MedicareLevy = CalculateMedicareLevy(r.TaxableIncome, rules.MedicareLevy)
	}
	if settings.IncludeLoanRepayment {
		r.LoanRepayment = CalculateLoanRepayment(r.TaxableIncome, rules.LoanRepaymentBands)
	}
	r.TotalLevies = r.MedicareLevy.Add(r.LoanRepayment)

	if settings.ApplyTaxOffsets {
		r.LowIncomeOffset = decimal.Min(CalculateLowIncomeOffset(r.TaxableIncome, rules.LowIncomeOffset), r.IncomeTax)
	}

	if r.TotalAnnualIncome.IsPositive() {
		r.EffectiveRate = r.TotalTax().Div(r.TotalAnnualIncome).Mul(hundred)
	}

	r.NetIncome = decimal.Max(decimal.Zero, r.TotalAnnualIncome.
		Sub(r.IncomeTax.Sub(r.LowIncomeOffset)).
		Sub(r.TotalLevies).
		Sub(r.VoluntarySuper).
		Sub(r.TotalSalarySacrifice))

	// Fringe benefits are reported, never paid out of net income
	grossUp := rules.FringeBenefitGrossUp
	if !grossUp.IsPositive() {
		grossUp = decimal.NewFromInt(1)
	}
	reportableBase := decimal.Zero
	for _, fb := range in.FringeBenefits {
		amount := ToAnnual(nonNegative(fb.Amount), fb.Frequency)
		r.TotalFringeBenefits = r.TotalFringeBenefits.Add(amount)
		if fb.Reportable && fb.Type != domain.FringeBenefitExempt {
			reportableBase = reportableBase.Add(amount)
		}
	}
	r.ReportableFringeBenefits = reportableBase.Mul(grossUp)

	ce.Logger.Debugf("%s: taxable %s, tax %s, levies %s, net %s", ce.system.Code,
		r.TaxableIncome.StringFixed(2), r.IncomeTax.StringFixed(2), r.TotalLevies.StringFixed(2), r.NetIncome.StringFixed(2))

	return r
}

// annualSalary annualises the base salary and applies the pro-rata ratio
// hours / standard hours, where standard hours double for a fortnight
func (ce *CalculationEngine) annualSalary(in domain.SalaryInput) decimal.Decimal {
	annual := ToAnnual(nonNegative(in.Salary), in.Frequency)
	if in.ProRata == nil {
		return annual
	}

	standard := ce.system.Rules.StandardWeeklyHours
	if !standard.IsPositive() {
		standard = defaultStandardWeeklyHours
	}
	if domain.ParseFrequency(string(in.ProRata.Frequency)) == domain.Fortnightly {
		standard = standard.Mul(decimal.NewFromInt(fortnightHoursMultiplier))
	}
	return annual.Mul(nonNegative(in.ProRata.Hours)).Div(standard)
}

func nonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

func snapshotKey(in domain.SalaryInput) string {
	b, err := json.Marshal(in)
	if err != nil {
		return ""
	}
	return string(b)
}

func cloneCalculation(c *domain.SalaryCalculation) *domain.SalaryCalculation {
	out := *c
	out.Breakdown = append([]domain.BreakdownRow(nil), c.Breakdown...)
	return &out
}
