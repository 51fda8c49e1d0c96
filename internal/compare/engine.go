package compare

import (
	"context"
	"fmt"
	"sync"

	"github.com/rgehrsitz/paycalc/internal/calculation"
	"github.com/rgehrsitz/paycalc/internal/domain"
	"github.com/rgehrsitz/paycalc/internal/transform"
)

// CompareEngine runs one salary input through several tax systems
type CompareEngine struct {
	Regulatory        *domain.RegulatoryConfig
	MetricsCalculator *MetricsCalculator
	Logger            calculation.Logger

	mu      sync.Mutex
	engines map[string]*calculation.CalculationEngine
}

// NewCompareEngine creates a new comparison engine over the given systems
func NewCompareEngine(regulatory *domain.RegulatoryConfig) *CompareEngine {
	return &CompareEngine{
		Regulatory:        regulatory,
		MetricsCalculator: NewMetricsCalculator(),
		Logger:            calculation.NopLogger{},
		engines:           make(map[string]*calculation.CalculationEngine),
	}
}

// Engine returns a cached calculation engine for the system code. An empty
// code selects the default system.
func (ce *CompareEngine) Engine(code string) (*calculation.CalculationEngine, error) {
	ce.mu.Lock()
	defer ce.mu.Unlock()

	system, err := ce.Regulatory.Lookup(code)
	if err != nil {
		return nil, err
	}
	if engine, ok := ce.engines[system.Code]; ok {
		return engine, nil
	}
	engine, err := calculation.NewCalculationEngine(system)
	if err != nil {
		return nil, err
	}
	engine.SetLogger(ce.Logger)
	ce.engines[system.Code] = engine
	return engine, nil
}

func (ce *CompareEngine) run(code string, in domain.SalaryInput) (ComparisonResult, error) {
	engine, err := ce.Engine(code)
	if err != nil {
		return ComparisonResult{}, err
	}
	calc := engine.Calculate(in)
	return ce.MetricsCalculator.CalculateMetrics(engine.System(), calc), nil
}

// CompareSystems evaluates in under the base system and each alternative.
// An empty base selects the default system.
func (ce *CompareEngine) CompareSystems(
	ctx context.Context,
	in domain.SalaryInput,
	baseSystem string,
	alternativeSystems []string,
) (*ComparisonSet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	baseResult, err := ce.run(baseSystem, in)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate base system: %w", err)
	}
	ce.Logger.Debugf("compare: base %s net %s", baseResult.SystemCode, baseResult.NetIncome)

	alternatives := []ComparisonResult{}
	for _, code := range alternativeSystems {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		altResult, err := ce.run(code, in)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate system %s: %w", code, err)
		}
		altResult = ce.MetricsCalculator.CalculateComparison(altResult, baseResult)
		alternatives = append(alternatives, altResult)
	}

	compSet := &ComparisonSet{
		BaseSystem:         baseResult.SystemCode,
		BaseResult:         &baseResult,
		AlternativeResults: alternatives,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)

	return compSet, nil
}

// CompareConfiguration compares a loaded salary file. The file's own
// tax_system is the base unless baseSystem overrides it.
func (ce *CompareEngine) CompareConfiguration(
	ctx context.Context,
	config *domain.Configuration,
	baseSystem string,
	alternativeSystems []string,
) (*ComparisonSet, error) {
	if baseSystem == "" {
		baseSystem = config.TaxSystem
	}
	compSet, err := ce.CompareSystems(ctx, config.Income, baseSystem, alternativeSystems)
	if err != nil {
		return nil, err
	}
	compSet.InputName = config.Name
	return compSet, nil
}

// BaseScenario labels the unmodified input in a what-if comparison
const BaseScenario = "Base"

// CompareTemplates evaluates the salary file as-is and with each what-if
// template applied, all under one tax system
func (ce *CompareEngine) CompareTemplates(
	ctx context.Context,
	config *domain.Configuration,
	systemCode string,
	templates []transform.Template,
) (*ComparisonSet, error) {
	if systemCode == "" {
		systemCode = config.TaxSystem
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	baseResult, err := ce.run(systemCode, config.Income)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate base scenario: %w", err)
	}
	baseResult.Scenario = BaseScenario

	alternatives := []ComparisonResult{}
	for _, template := range templates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		in, err := template.Apply(config.Income)
		if err != nil {
			return nil, fmt.Errorf("failed to apply template %s: %w", template.Name, err)
		}
		altResult, err := ce.run(systemCode, in)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate template %s: %w", template.Name, err)
		}
		altResult.Scenario = template.Name
		altResult.Description = template.Description
		altResult = ce.MetricsCalculator.CalculateComparison(altResult, baseResult)
		alternatives = append(alternatives, altResult)
		ce.Logger.Debugf("compare: %s net %s", template.Name, altResult.NetIncome)
	}

	compSet := &ComparisonSet{
		InputName:          config.Name,
		BaseSystem:         baseResult.SystemCode,
		BaseResult:         &baseResult,
		AlternativeResults: alternatives,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)

	return compSet, nil
}
