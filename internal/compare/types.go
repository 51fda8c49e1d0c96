package compare

import (
	"fmt"

	"github.com/rgehrsitz/paycalc/internal/domain"
	"github.com/shopspring/decimal"
)

// ComparisonResult is one tax system's outcome for the shared input
type ComparisonResult struct {
	SystemCode  string                    `json:"systemCode"`
	SystemName  string                    `json:"systemName"`
	Scenario    string                    `json:"scenario,omitempty"`
	Description string                    `json:"description,omitempty"`
	Calculation *domain.SalaryCalculation `json:"-"`

	// Key Metrics (annual)
	GrossIncome    decimal.Decimal `json:"grossIncome"`
	TaxableIncome  decimal.Decimal `json:"taxableIncome"`
	IncomeTax      decimal.Decimal `json:"incomeTax"`
	TotalLevies    decimal.Decimal `json:"totalLevies"`
	TotalTax       decimal.Decimal `json:"totalTax"`
	NetIncome      decimal.Decimal `json:"netIncome"`
	Superannuation decimal.Decimal `json:"superannuation"` // guarantee plus voluntary
	EffectiveRate  decimal.Decimal `json:"effectiveRate"`
	MarginalRate   decimal.Decimal `json:"marginalRate"`

	// Comparison to Base
	NetDiffFromBase   decimal.Decimal `json:"netDiffFromBase"`
	NetPctFromBase    decimal.Decimal `json:"netPctFromBase"`
	TaxDiffFromBase   decimal.Decimal `json:"taxDiffFromBase"`
	LevyDiffFromBase  decimal.Decimal `json:"levyDiffFromBase"`
	SuperDiffFromBase decimal.Decimal `json:"superDiffFromBase"`
}

// Label names the row: the what-if scenario when there is one, else the system
func (r *ComparisonResult) Label() string {
	if r.Scenario != "" {
		return r.Scenario
	}
	return r.SystemCode
}

// ComparisonSet is a base system and the alternatives measured against it
type ComparisonSet struct {
	InputName          string             `json:"inputName"`
	BaseSystem         string             `json:"baseSystem"`
	BaseResult         *ComparisonResult  `json:"baseResult"`
	AlternativeResults []ComparisonResult `json:"alternativeResults"`
	Recommendations    []string           `json:"recommendations"`
}

// MetricsCalculator extracts key metrics from salary calculations
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics summarises one system's calculation
func (mc *MetricsCalculator) CalculateMetrics(system domain.TaxSystem, calc *domain.SalaryCalculation) ComparisonResult {
	a := calc.Annual
	return ComparisonResult{
		SystemCode:     system.Code,
		SystemName:     system.Name,
		Calculation:    calc,
		GrossIncome:    a.TotalAnnualIncome,
		TaxableIncome:  a.TaxableIncome,
		IncomeTax:      a.IncomeTax.Sub(a.LowIncomeOffset),
		TotalLevies:    a.TotalLevies,
		TotalTax:       a.TotalTax(),
		NetIncome:      a.NetIncome,
		Superannuation: a.Superannuation.Add(a.VoluntarySuper),
		EffectiveRate:  a.EffectiveRate,
		MarginalRate:   a.MarginalRate,
	}
}

// CalculateComparison fills in the deltas of result against base
func (mc *MetricsCalculator) CalculateComparison(result, base ComparisonResult) ComparisonResult {
	result.NetDiffFromBase = result.NetIncome.Sub(base.NetIncome)
	if !base.NetIncome.IsZero() {
		result.NetPctFromBase = result.NetDiffFromBase.
			Div(base.NetIncome).
			Mul(decimal.NewFromInt(100))
	}
	result.TaxDiffFromBase = result.TotalTax.Sub(base.TotalTax)
	result.LevyDiffFromBase = result.TotalLevies.Sub(base.TotalLevies)
	result.SuperDiffFromBase = result.Superannuation.Sub(base.Superannuation)
	return result
}

// GenerateRecommendations names the alternatives that beat the base
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}

	if compSet.BaseResult == nil || len(compSet.AlternativeResults) == 0 {
		return recommendations
	}
	base := compSet.BaseResult

	// Highest take-home pay
	bestNet := -1
	for i, alt := range compSet.AlternativeResults {
		if alt.NetIncome.GreaterThan(base.NetIncome) &&
			(bestNet < 0 || alt.NetIncome.GreaterThan(compSet.AlternativeResults[bestNet].NetIncome)) {
			bestNet = i
		}
	}
	if bestNet >= 0 {
		alt := compSet.AlternativeResults[bestNet]
		recommendations = append(recommendations, fmt.Sprintf(
			"Highest Net Income: %s pays $%s more per year than %s",
			alt.Label(), alt.NetDiffFromBase.StringFixed(2), base.Label()))
	}

	// Lowest total tax
	lowestTax := -1
	for i, alt := range compSet.AlternativeResults {
		if alt.TotalTax.LessThan(base.TotalTax) &&
			(lowestTax < 0 || alt.TotalTax.LessThan(compSet.AlternativeResults[lowestTax].TotalTax)) {
			lowestTax = i
		}
	}
	if lowestTax >= 0 {
		alt := compSet.AlternativeResults[lowestTax]
		recommendations = append(recommendations, fmt.Sprintf(
			"Lowest Taxes: %s saves $%s in tax and levies",
			alt.Label(), alt.TaxDiffFromBase.Neg().StringFixed(2)))
	}

	// Largest retirement contribution
	mostSuper := -1
	for i, alt := range compSet.AlternativeResults {
		if alt.Superannuation.GreaterThan(base.Superannuation) &&
			(mostSuper < 0 || alt.Superannuation.GreaterThan(compSet.AlternativeResults[mostSuper].Superannuation)) {
			mostSuper = i
		}
	}
	if mostSuper >= 0 {
		alt := compSet.AlternativeResults[mostSuper]
		recommendations = append(recommendations, fmt.Sprintf(
			"Most Superannuation: %s adds $%s per year",
			alt.Label(), alt.SuperDiffFromBase.StringFixed(2)))
	}

	return recommendations
}
