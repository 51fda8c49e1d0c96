package calculation

import (
	"strings"

	"github.com/rgehrsitz/paycalc/internal/domain"
	"github.com/shopspring/decimal"
)

var moneyReplacer = strings.NewReplacer("$", "", "€", "", "£", "", ",", "", "_", "", " ", "")

// ParseMoney turns raw form text into an amount. It never fails: blank or
// unparsable text is zero, and so is anything beyond domain.MaxAmount.
func ParseMoney(raw string) decimal.Decimal {
	cleaned := moneyReplacer.Replace(strings.TrimSpace(raw))
	if cleaned == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil || !domain.AmountInRange(d) {
		return decimal.Zero
	}
	return d
}

// ParseRate parses a percent such as "11.5" or "11.5%", zero when unparsable
func ParseRate(raw string) decimal.Decimal {
	return ParseMoney(strings.TrimSuffix(strings.TrimSpace(raw), "%"))
}

// SalaryForm is the string-typed snapshot a live-editing form holds
type SalaryForm struct {
	Salary           string `json:"salary" yaml:"salary"`
	Frequency        string `json:"frequency" yaml:"frequency"`
	ProRataEnabled   bool   `json:"proRataEnabled" yaml:"pro_rata_enabled"`
	ProRataHours     string `json:"proRataHours" yaml:"pro_rata_hours"`
	ProRataFrequency string `json:"proRataFrequency" yaml:"pro_rata_frequency"`

	Overtime        []OvertimeForm        `json:"overtime" yaml:"overtime"`
	FringeBenefits  []FringeBenefitForm   `json:"fringeBenefits" yaml:"fringe_benefits"`
	SalarySacrifice []SalarySacrificeForm `json:"salarySacrifice" yaml:"salary_sacrifice"`

	SuperRate               string `json:"superRate" yaml:"super_rate"`
	IncludeMedicareLevy     bool   `json:"includeMedicareLevy" yaml:"include_medicare_levy"`
	MedicareExempt          bool   `json:"medicareExempt" yaml:"medicare_exempt"`
	PrivateHealth           bool   `json:"privateHealth" yaml:"private_health"`
	IncludeLoanRepayment    bool   `json:"includeLoanRepayment" yaml:"include_loan_repayment"`
	VoluntarySuper          bool   `json:"voluntarySuper" yaml:"voluntary_super"`
	VoluntarySuperAmount    string `json:"voluntarySuperAmount" yaml:"voluntary_super_amount"`
	VoluntarySuperFrequency string `json:"voluntarySuperFrequency" yaml:"voluntary_super_frequency"`
	ApplyTaxOffsets         bool   `json:"applyTaxOffsets" yaml:"apply_tax_offsets"`
}

// OvertimeForm is one overtime row of the form
type OvertimeForm struct {
	Hours        string `json:"hours" yaml:"hours"`
	Rate         string `json:"rate" yaml:"rate"`
	Frequency    string `json:"frequency" yaml:"frequency"`
	IncludeSuper bool   `json:"includeSuper" yaml:"include_super"`
}

// FringeBenefitForm is one fringe benefit row of the form
type FringeBenefitForm struct {
	Description string `json:"description" yaml:"description"`
	Amount      string `json:"amount" yaml:"amount"`
	Frequency   string `json:"frequency" yaml:"frequency"`
	Type        string `json:"type" yaml:"type"`
	Reportable  bool   `json:"reportable" yaml:"reportable"`
}

// SalarySacrificeForm is one salary sacrifice row of the form
type SalarySacrificeForm struct {
	Description     string `json:"description" yaml:"description"`
	Amount          string `json:"amount" yaml:"amount"`
	Frequency       string `json:"frequency" yaml:"frequency"`
	IsTaxDeductible bool   `json:"isTaxDeductible" yaml:"is_tax_deductible"`
}

// Input sanitizes the form into the engine's typed input
func (f SalaryForm) Input() domain.SalaryInput {
	in := domain.SalaryInput{
		Salary:    ParseMoney(f.Salary),
		Frequency: domain.ParseFrequency(f.Frequency),
		Settings: domain.TaxSettings{
			IncludeMedicareLevy:     f.IncludeMedicareLevy,
			MedicareExempt:          f.MedicareExempt,
			PrivateHealth:           f.PrivateHealth,
			IncludeLoanRepayment:    f.IncludeLoanRepayment,
			VoluntarySuper:          f.VoluntarySuper,
			VoluntarySuperAmount:    ParseMoney(f.VoluntarySuperAmount),
			VoluntarySuperFrequency: domain.ParseFrequency(f.VoluntarySuperFrequency),
			ApplyTaxOffsets:         f.ApplyTaxOffsets,
		},
	}

	if strings.TrimSpace(f.SuperRate) != "" {
		rate := ParseRate(f.SuperRate)
		in.Settings.SuperRate = &rate
	}

	if f.ProRataEnabled {
		prf := domain.ParseFrequency(f.ProRataFrequency)
		if prf != domain.Fortnightly {
			prf = domain.Weekly
		}
		in.ProRata = &domain.ProRata{Hours: ParseMoney(f.ProRataHours), Frequency: prf}
	}

	for _, o := range f.Overtime {
		in.Overtime = append(in.Overtime, domain.OvertimeEntry{
			Hours:        ParseMoney(o.Hours),
			Rate:         ParseMoney(o.Rate),
			Frequency:    domain.ParseFrequency(o.Frequency),
			IncludeSuper: o.IncludeSuper,
		})
	}

	for _, fb := range f.FringeBenefits {
		kind := domain.FringeBenefitTaxable
		if strings.EqualFold(strings.TrimSpace(fb.Type), string(domain.FringeBenefitExempt)) {
			kind = domain.FringeBenefitExempt
		}
		in.FringeBenefits = append(in.FringeBenefits, domain.FringeBenefitEntry{
			Description: fb.Description,
			Amount:      ParseMoney(fb.Amount),
			Frequency:   domain.ParseFrequency(fb.Frequency),
			Type:        kind,
			Reportable:  fb.Reportable,
		})
	}

	for _, s := range f.SalarySacrifice {
		in.SalarySacrifice = append(in.SalarySacrifice, domain.SalarySacrificeEntry{
			Description:     s.Description,
			Amount:          ParseMoney(s.Amount),
			Frequency:       domain.ParseFrequency(s.Frequency),
			IsTaxDeductible: s.IsTaxDeductible,
		})
	}

	return in
}
