package domain

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// RegulatoryConfig contains the reference data for every supported jurisdiction.
// It is loaded from regulatory.yaml and is immutable once validated.
type RegulatoryConfig struct {
	Metadata      RegulatoryMetadata `yaml:"metadata" json:"metadata"`
	DefaultSystem string             `yaml:"default_system" json:"default_system"`
	Systems       []TaxSystem        `yaml:"systems" json:"systems"`
}

// RegulatoryMetadata contains information about the regulatory data
type RegulatoryMetadata struct {
	DataYear    int    `yaml:"data_year" json:"data_year"`
	LastUpdated string `yaml:"last_updated" json:"last_updated"`
	Description string `yaml:"description" json:"description"`
}

// System looks up a tax system by code. An empty code selects the default system.
func (rc *RegulatoryConfig) System(code string) (TaxSystem, bool) {
	if code == "" {
		code = rc.DefaultSystem
	}
	for _, s := range rc.Systems {
		if s.Code == code {
			return s, true
		}
	}
	return TaxSystem{}, false
}

// SystemForYear looks up the system covering a financial year such as "2024-25"
func (rc *RegulatoryConfig) SystemForYear(fy string) (TaxSystem, bool) {
	if fy == "" {
		return TaxSystem{}, false
	}
	for _, s := range rc.Systems {
		if s.FinancialYear == fy {
			return s, true
		}
	}
	return TaxSystem{}, false
}

// UnknownSystemError reports a system code, or a financial year, that no
// configured tax system matches
type UnknownSystemError struct {
	Code          string
	FinancialYear string
	Available     []string
}

func (e *UnknownSystemError) Error() string {
	if e.Code == "" && e.FinancialYear != "" {
		return fmt.Sprintf("no tax system for financial year %q (available: %v)", e.FinancialYear, e.Available)
	}
	return fmt.Sprintf("unknown tax system %q (available: %v)", e.Code, e.Available)
}

// Lookup is System with an *UnknownSystemError for a missing code
func (rc *RegulatoryConfig) Lookup(code string) (TaxSystem, error) {
	s, ok := rc.System(code)
	if !ok {
		if code == "" {
			code = rc.DefaultSystem
		}
		return TaxSystem{}, &UnknownSystemError{Code: code, Available: rc.Codes()}
	}
	return s, nil
}

// Codes returns the sorted system codes
func (rc *RegulatoryConfig) Codes() []string {
	codes := make([]string, 0, len(rc.Systems))
	for _, s := range rc.Systems {
		codes = append(codes, s.Code)
	}
	sort.Strings(codes)
	return codes
}

// TaxBracket is a contiguous income range [Min, Max) taxed at Rate percent.
// A nil Max marks the unbounded top bracket. BaseAmount, when present, is the
// cumulative tax of every lower bracket.
type TaxBracket struct {
	Min        decimal.Decimal  `yaml:"min" json:"min"`
	Max        *decimal.Decimal `yaml:"max" json:"max"`
	Rate       decimal.Decimal  `yaml:"rate" json:"rate"`
	BaseAmount *decimal.Decimal `yaml:"base_amount,omitempty" json:"base_amount,omitempty"`
}

// Unbounded reports whether the bracket has no upper limit
func (b TaxBracket) Unbounded() bool {
	return b.Max == nil
}

// LevyBand selects a flat levy rate for incomes in [Min, Max)
type LevyBand struct {
	Min  decimal.Decimal  `yaml:"min" json:"min"`
	Max  *decimal.Decimal `yaml:"max" json:"max"`
	Rate decimal.Decimal  `yaml:"rate" json:"rate"`
}

// TaxSystem is one jurisdiction's bracket table plus the rules the salary
// engine needs around it
type TaxSystem struct {
	Code          string       `yaml:"code" json:"code"`
	Name          string       `yaml:"name" json:"name"`
	Currency      string       `yaml:"currency" json:"currency"`
	FinancialYear string       `yaml:"financial_year,omitempty" json:"financial_year,omitempty"`
	Brackets      []TaxBracket `yaml:"brackets" json:"brackets"`
	Rules         SalaryRules  `yaml:"rules" json:"rules"`
}

// SalaryRules holds jurisdiction constants. Rates are percents.
type SalaryRules struct {
	SuperGuaranteeRate   decimal.Decimal       `yaml:"super_guarantee_rate" json:"super_guarantee_rate"`
	ConcessionalCap      decimal.Decimal       `yaml:"concessional_cap" json:"concessional_cap"`
	ConcessionalTaxRate  decimal.Decimal       `yaml:"concessional_tax_rate" json:"concessional_tax_rate"`
	AssumedMarginalRate  decimal.Decimal       `yaml:"assumed_marginal_rate" json:"assumed_marginal_rate"`
	StandardWeeklyHours  decimal.Decimal       `yaml:"standard_weekly_hours" json:"standard_weekly_hours"`
	FringeBenefitGrossUp decimal.Decimal       `yaml:"fringe_benefit_gross_up" json:"fringe_benefit_gross_up"`
	MedicareLevy         MedicareLevyRules     `yaml:"medicare_levy" json:"medicare_levy"`
	LoanRepaymentBands   []LevyBand            `yaml:"loan_repayment_bands,omitempty" json:"loan_repayment_bands,omitempty"`
	LowIncomeOffset      *LowIncomeOffsetRules `yaml:"low_income_offset,omitempty" json:"low_income_offset,omitempty"`
}

// MedicareLevyRules describes the flat levy and its optional low-income phase-in.
// Between PhaseInLower and PhaseInUpper the levy is PhaseInRate of the excess
// over PhaseInLower; a zero PhaseInUpper disables the phase-in.
type MedicareLevyRules struct {
	Rate         decimal.Decimal `yaml:"rate" json:"rate"`
	PhaseInLower decimal.Decimal `yaml:"phase_in_lower" json:"phase_in_lower"`
	PhaseInUpper decimal.Decimal `yaml:"phase_in_upper" json:"phase_in_upper"`
	PhaseInRate  decimal.Decimal `yaml:"phase_in_rate" json:"phase_in_rate"`
}

// LowIncomeOffsetRules describes a two-step tapering tax offset
type LowIncomeOffsetRules struct {
	Maximum         decimal.Decimal `yaml:"maximum" json:"maximum"`
	FullThreshold   decimal.Decimal `yaml:"full_threshold" json:"full_threshold"`
	FirstTaperRate  decimal.Decimal `yaml:"first_taper_rate" json:"first_taper_rate"`
	SecondThreshold decimal.Decimal `yaml:"second_threshold" json:"second_threshold"`
	SecondTaperRate decimal.Decimal `yaml:"second_taper_rate" json:"second_taper_rate"`
}
