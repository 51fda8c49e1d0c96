package config

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/rgehrsitz/paycalc/internal/calculation"
	"github.com/rgehrsitz/paycalc/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed data/regulatory.yaml
var defaultRegulatoryData []byte

// DefaultRegulatoryData returns the embedded jurisdiction tables
func DefaultRegulatoryData() []byte {
	return append([]byte(nil), defaultRegulatoryData...)
}

// LoadRegulatory loads jurisdiction data from path, or the embedded tables
// when path is empty
func LoadRegulatory(path string) (*domain.RegulatoryConfig, error) {
	if path == "" {
		return ParseRegulatory(defaultRegulatoryData)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read regulatory file %s: %w", path, err)
	}
	rc, err := ParseRegulatory(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rc, nil
}

// ParseRegulatory decodes and validates jurisdiction data
func ParseRegulatory(data []byte) (*domain.RegulatoryConfig, error) {
	var rc domain.RegulatoryConfig
	if err := yaml.Unmarshal(data, &rc); err != nil {
		return nil, fmt.Errorf("failed to parse regulatory YAML: %w", err)
	}
	if err := ValidateRegulatory(&rc); err != nil {
		return nil, err
	}
	return &rc, nil
}

// ValidateRegulatory fails fast on the first malformed system. Broken tables
// are data bugs, so nothing is loaded when any system is invalid.
func ValidateRegulatory(rc *domain.RegulatoryConfig) error {
	if len(rc.Systems) == 0 {
		return fmt.Errorf("regulatory data defines no tax systems")
	}

	seen := make(map[string]bool, len(rc.Systems))
	for i, s := range rc.Systems {
		if s.Code == "" {
			return fmt.Errorf("tax system %d: code is required", i)
		}
		if seen[s.Code] {
			return fmt.Errorf("tax system %q defined more than once", s.Code)
		}
		seen[s.Code] = true

		if err := validateTaxSystem(s); err != nil {
			return fmt.Errorf("tax system %q: %w", s.Code, err)
		}
	}

	if rc.DefaultSystem != "" && !seen[rc.DefaultSystem] {
		return fmt.Errorf("default system %q is not defined", rc.DefaultSystem)
	}
	return nil
}

func validateTaxSystem(s domain.TaxSystem) error {
	if err := calculation.ValidateBrackets(s.Brackets); err != nil {
		return err
	}
	if err := calculation.ValidateLevyBands(s.Rules.LoanRepaymentBands); err != nil {
		return err
	}

	r := s.Rules
	var errs ValidationErrors
	errs.checkPercent("super_guarantee_rate", r.SuperGuaranteeRate)
	errs.checkPercent("concessional_tax_rate", r.ConcessionalTaxRate)
	errs.checkPercent("assumed_marginal_rate", r.AssumedMarginalRate)
	errs.checkPercent("medicare_levy.rate", r.MedicareLevy.Rate)
	errs.checkPercent("medicare_levy.phase_in_rate", r.MedicareLevy.PhaseInRate)
	errs.checkNonNegative("concessional_cap", r.ConcessionalCap)
	errs.checkNonNegative("standard_weekly_hours", r.StandardWeeklyHours)
	errs.checkNonNegative("fringe_benefit_gross_up", r.FringeBenefitGrossUp)

	if r.MedicareLevy.PhaseInUpper.IsPositive() && r.MedicareLevy.PhaseInUpper.LessThanOrEqual(r.MedicareLevy.PhaseInLower) {
		errs.add("medicare_levy.phase_in_upper", "must exceed phase_in_lower")
	}
	if lito := r.LowIncomeOffset; lito != nil {
		errs.checkNonNegative("low_income_offset.maximum", lito.Maximum)
		errs.checkPercent("low_income_offset.first_taper_rate", lito.FirstTaperRate)
		errs.checkPercent("low_income_offset.second_taper_rate", lito.SecondTaperRate)
		if lito.SecondThreshold.LessThan(lito.FullThreshold) {
			errs.add("low_income_offset.second_threshold", "must not be below full_threshold")
		}
	}
	return errs.Err()
}
