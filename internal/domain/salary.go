package domain

import (
	"github.com/shopspring/decimal"
)

// FringeBenefitType classifies a fringe benefit for benefit-tax purposes
type FringeBenefitType string

const (
	FringeBenefitTaxable FringeBenefitType = "taxable"
	FringeBenefitExempt  FringeBenefitType = "exempt"
)

// ProRata scales a nominal full-time salary by hours actually worked
type ProRata struct {
	Hours     decimal.Decimal `yaml:"hours" json:"hours"`
	Frequency Frequency       `yaml:"frequency" json:"frequency"` // weekly or fortnightly
}

// OvertimeEntry is a recurring block of overtime hours paid at a fixed rate
type OvertimeEntry struct {
	Hours        decimal.Decimal `yaml:"hours" json:"hours"`
	Rate         decimal.Decimal `yaml:"rate" json:"rate"`
	Frequency    Frequency       `yaml:"frequency" json:"frequency"`
	IncludeSuper bool            `yaml:"include_super" json:"include_super"`
}

// FringeBenefitEntry is a non-cash benefit provided by the employer
type FringeBenefitEntry struct {
	Description string            `yaml:"description,omitempty" json:"description,omitempty"`
	Amount      decimal.Decimal   `yaml:"amount" json:"amount"`
	Frequency   Frequency         `yaml:"frequency" json:"frequency"`
	Type        FringeBenefitType `yaml:"type" json:"type"`
	Reportable  bool              `yaml:"reportable" json:"reportable"`
}

// SalarySacrificeEntry redirects pre-tax salary into a benefit
type SalarySacrificeEntry struct {
	Description     string          `yaml:"description,omitempty" json:"description,omitempty"`
	Amount          decimal.Decimal `yaml:"amount" json:"amount"`
	Frequency       Frequency       `yaml:"frequency" json:"frequency"`
	IsTaxDeductible bool            `yaml:"is_tax_deductible" json:"is_tax_deductible"`
}

// TaxSettings controls which levies and contributions apply.
// Rates are percents (11.5 means 11.5%).
type TaxSettings struct {
	SuperRate               *decimal.Decimal `yaml:"super_rate,omitempty" json:"super_rate,omitempty"` // nil uses the jurisdiction's guarantee rate
	IncludeMedicareLevy     bool             `yaml:"include_medicare_levy" json:"include_medicare_levy"`
	MedicareExempt          bool             `yaml:"medicare_exempt" json:"medicare_exempt"`
	PrivateHealth           bool             `yaml:"private_health" json:"private_health"`
	IncludeLoanRepayment    bool             `yaml:"include_loan_repayment" json:"include_loan_repayment"`
	VoluntarySuper          bool             `yaml:"voluntary_super" json:"voluntary_super"`
	VoluntarySuperAmount    decimal.Decimal  `yaml:"voluntary_super_amount" json:"voluntary_super_amount"`
	VoluntarySuperFrequency Frequency        `yaml:"voluntary_super_frequency,omitempty" json:"voluntary_super_frequency,omitempty"`
	ApplyTaxOffsets         bool             `yaml:"apply_tax_offsets" json:"apply_tax_offsets"`
}

// Normalized resolves mutually exclusive flags. Private health cover
// switches the Medicare levy off.
func (s TaxSettings) Normalized() TaxSettings {
	if s.PrivateHealth {
		s.IncludeMedicareLevy = false
	}
	return s
}

// SalaryInput is a typed snapshot of the salary form
type SalaryInput struct {
	Salary          decimal.Decimal        `yaml:"salary" json:"salary"`
	Frequency       Frequency              `yaml:"frequency" json:"frequency"`
	ProRata         *ProRata               `yaml:"pro_rata,omitempty" json:"pro_rata,omitempty"`
	Overtime        []OvertimeEntry        `yaml:"overtime,omitempty" json:"overtime,omitempty"`
	FringeBenefits  []FringeBenefitEntry   `yaml:"fringe_benefits,omitempty" json:"fringe_benefits,omitempty"`
	SalarySacrifice []SalarySacrificeEntry `yaml:"salary_sacrifice,omitempty" json:"salary_sacrifice,omitempty"`
	Settings        TaxSettings            `yaml:"settings" json:"settings"`
}

// Configuration is a personal input file: one salary snapshot evaluated
// against a named tax system
type Configuration struct {
	Name      string      `yaml:"name" json:"name"`
	TaxSystem string      `yaml:"tax_system" json:"tax_system"`
	Income    SalaryInput `yaml:"income" json:"income"`
}
