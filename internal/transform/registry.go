package transform

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/rgehrsitz/paycalc/internal/domain"
	"github.com/shopspring/decimal"
)

// TransformRegistry creates transforms from string parameters, for the CLI
type TransformRegistry struct {
	factories map[string]TransformFactory
}

// TransformFactory creates a transform from parameters
type TransformFactory func(params map[string]string) (InputTransform, error)

// NewTransformRegistry creates a registry with every built-in transform
func NewTransformRegistry() *TransformRegistry {
	registry := &TransformRegistry{
		factories: make(map[string]TransformFactory),
	}

	registry.Register("raise_salary", createRaiseSalary)
	registry.Register("set_hours", createSetHours)
	registry.Register("add_overtime", createAddOvertime)
	registry.Register("set_voluntary_super", createSetVoluntarySuper)
	registry.Register("set_super_rate", createSetSuperRate)
	registry.Register("add_salary_sacrifice", createAddSalarySacrifice)
	registry.Register("toggle", createToggleSetting)

	return registry
}

// Register adds a transform factory to the registry
func (r *TransformRegistry) Register(name string, factory TransformFactory) {
	r.factories[name] = factory
}

// Create creates a transform by name with the given parameters
func (r *TransformRegistry) Create(name string, params map[string]string) (InputTransform, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("unknown transform: %s", name)
	}
	return factory(params)
}

// List returns the sorted names of all registered transforms
func (r *TransformRegistry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseTransformSpec parses "name:param1=value1,param2=value2", for example
// "raise_salary:percent=5". A bare name passes no parameters.
func (r *TransformRegistry) ParseTransformSpec(spec string) (InputTransform, error) {
	name, paramsStr, _ := strings.Cut(spec, ":")
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("invalid transform spec %q, expected 'name:params'", spec)
	}

	params := make(map[string]string)
	if paramsStr = strings.TrimSpace(paramsStr); paramsStr != "" {
		for _, paramPair := range strings.Split(paramsStr, ",") {
			k, v, ok := strings.Cut(paramPair, "=")
			if !ok {
				return nil, fmt.Errorf("invalid parameter format, expected 'key=value', got: %s", paramPair)
			}
			params[strings.TrimSpace(k)] = strings.TrimSpace(v)
		}
	}

	return r.Create(name, params)
}

func decimalParam(params map[string]string, key string, required bool, transform string) (decimal.Decimal, error) {
	raw, ok := params[key]
	if !ok {
		if required {
			return decimal.Decimal{}, fmt.Errorf("%s requires '%s' parameter", transform, key)
		}
		return decimal.Decimal{}, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s value: %w", key, err)
	}
	if !domain.AmountInRange(d) {
		return decimal.Zero, fmt.Errorf("%s value out of range (limit %s)", key, domain.MaxAmount)
	}
	return d, nil
}

func boolParam(params map[string]string, key string, fallback bool) (bool, error) {
	raw, ok := params[key]
	if !ok {
		return fallback, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return b, nil
}

func createRaiseSalary(params map[string]string) (InputTransform, error) {
	percent, err := decimalParam(params, "percent", false, "raise_salary")
	if err != nil {
		return nil, err
	}
	amount, err := decimalParam(params, "amount", false, "raise_salary")
	if err != nil {
		return nil, err
	}
	if percent.IsZero() && amount.IsZero() {
		return nil, fmt.Errorf("raise_salary requires 'percent' or 'amount' parameter")
	}
	return &RaiseSalary{Percent: percent, Amount: amount, Frequency: domain.Frequency(params["frequency"])}, nil
}

func createSetHours(params map[string]string) (InputTransform, error) {
	hours, err := decimalParam(params, "hours", true, "set_hours")
	if err != nil {
		return nil, err
	}
	return &SetHours{Hours: hours, Frequency: domain.Frequency(params["frequency"])}, nil
}

func createAddOvertime(params map[string]string) (InputTransform, error) {
	hours, err := decimalParam(params, "hours", true, "add_overtime")
	if err != nil {
		return nil, err
	}
	rate, err := decimalParam(params, "rate", true, "add_overtime")
	if err != nil {
		return nil, err
	}
	includeSuper, err := boolParam(params, "include_super", false)
	if err != nil {
		return nil, err
	}
	return &AddOvertime{Hours: hours, Rate: rate, Frequency: domain.Frequency(params["frequency"]), IncludeSuper: includeSuper}, nil
}

func createSetVoluntarySuper(params map[string]string) (InputTransform, error) {
	amount, err := decimalParam(params, "amount", true, "set_voluntary_super")
	if err != nil {
		return nil, err
	}
	return &SetVoluntarySuper{Amount: amount, Frequency: domain.Frequency(params["frequency"])}, nil
}

func createSetSuperRate(params map[string]string) (InputTransform, error) {
	rate, err := decimalParam(params, "rate", true, "set_super_rate")
	if err != nil {
		return nil, err
	}
	return &SetSuperRate{Rate: rate}, nil
}

func createAddSalarySacrifice(params map[string]string) (InputTransform, error) {
	amount, err := decimalParam(params, "amount", true, "add_salary_sacrifice")
	if err != nil {
		return nil, err
	}
	deductible, err := boolParam(params, "deductible", true)
	if err != nil {
		return nil, err
	}
	return &AddSalarySacrifice{
		Label:           params["description"],
		Amount:          amount,
		Frequency:       domain.Frequency(params["frequency"]),
		IsTaxDeductible: deductible,
	}, nil
}

func createToggleSetting(params map[string]string) (InputTransform, error) {
	setting, ok := params["setting"]
	if !ok {
		return nil, fmt.Errorf("toggle requires 'setting' parameter")
	}
	enabled, err := boolParam(params, "enabled", true)
	if err != nil {
		return nil, err
	}
	return &ToggleSetting{Setting: Setting(setting), Enabled: enabled}, nil
}
