package config

import (
	"fmt"
	"os"

	"github.com/rgehrsitz/paycalc/internal/domain"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of personal salary files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a salary configuration from a YAML (or JSON) file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes and validates a salary configuration
func (ip *InputParser) Parse(data []byte) (*domain.Configuration, error) {
	var config domain.Configuration
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// LoadFromFileWithRegulatory loads a salary file together with the
// jurisdiction data it refers to. An empty regulatoryPath uses the embedded
// tables. The file's tax_system must exist in that data.
func (ip *InputParser) LoadFromFileWithRegulatory(filename, regulatoryPath string) (*domain.Configuration, *domain.RegulatoryConfig, error) {
	config, err := ip.LoadFromFile(filename)
	if err != nil {
		return nil, nil, err
	}

	regulatory, err := LoadRegulatory(regulatoryPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load regulatory data: %w", err)
	}

	if _, err := regulatory.Lookup(config.TaxSystem); err != nil {
		return nil, nil, err
	}
	return config, regulatory, nil
}

// ValidateConfiguration checks a salary file for values a form could never
// hold. All problems are reported together.
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	var errs ValidationErrors
	ip.validateIncome(&errs, &config.Income)
	return errs.Err()
}

func (ip *InputParser) validateIncome(errs *ValidationErrors, in *domain.SalaryInput) {
	errs.checkNonNegative("income.salary", in.Salary)
	checkFrequency(errs, "income.frequency", in.Frequency)

	if in.ProRata != nil {
		if errs.checkRange("income.pro_rata.hours", in.ProRata.Hours) && !in.ProRata.Hours.IsPositive() {
			errs.add("income.pro_rata.hours", "must be positive, got %s", in.ProRata.Hours)
		}
		prf := domain.ParseFrequency(string(in.ProRata.Frequency))
		if in.ProRata.Frequency != "" && prf != domain.Weekly && prf != domain.Fortnightly {
			errs.add("income.pro_rata.frequency", "must be weekly or fortnightly, got %q", in.ProRata.Frequency)
		}
	}

	for i, o := range in.Overtime {
		field := fmt.Sprintf("income.overtime[%d]", i)
		errs.checkNonNegative(field+".hours", o.Hours)
		errs.checkNonNegative(field+".rate", o.Rate)
		checkFrequency(errs, field+".frequency", o.Frequency)
	}

	for i, fb := range in.FringeBenefits {
		field := fmt.Sprintf("income.fringe_benefits[%d]", i)
		errs.checkNonNegative(field+".amount", fb.Amount)
		checkFrequency(errs, field+".frequency", fb.Frequency)
		if fb.Type != "" && fb.Type != domain.FringeBenefitTaxable && fb.Type != domain.FringeBenefitExempt {
			errs.add(field+".type", "must be taxable or exempt, got %q", fb.Type)
		}
	}

	for i, s := range in.SalarySacrifice {
		field := fmt.Sprintf("income.salary_sacrifice[%d]", i)
		errs.checkNonNegative(field+".amount", s.Amount)
		checkFrequency(errs, field+".frequency", s.Frequency)
	}

	settings := in.Settings
	if settings.SuperRate != nil {
		errs.checkPercent("income.settings.super_rate", *settings.SuperRate)
	}
	errs.checkNonNegative("income.settings.voluntary_super_amount", settings.VoluntarySuperAmount)
	checkFrequency(errs, "income.settings.voluntary_super_frequency", settings.VoluntarySuperFrequency)
}

// checkFrequency accepts an empty frequency, which the engine reads as annual
func checkFrequency(errs *ValidationErrors, field string, f domain.Frequency) {
	if f != "" && !f.Valid() {
		errs.add(field, "unknown frequency %q", f)
	}
}
