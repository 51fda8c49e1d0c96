package transform

import (
	"fmt"

	"github.com/rgehrsitz/paycalc/internal/domain"
)

// Setting names one of the boolean tax settings a transform can flip
type Setting string

const (
	SettingMedicareLevy  Setting = "medicare_levy"
	SettingPrivateHealth Setting = "private_health"
	SettingLoan          Setting = "loan_repayment"
	SettingTaxOffsets    Setting = "tax_offsets"
)

// ToggleSetting switches one tax setting on or off
type ToggleSetting struct {
	Setting Setting
	Enabled bool
}

func (t *ToggleSetting) Name() string { return "toggle_setting" }

func (t *ToggleSetting) Description() string {
	state := "off"
	if t.Enabled {
		state = "on"
	}
	return fmt.Sprintf("Turn %s %s", t.Setting, state)
}

func (t *ToggleSetting) Validate(base domain.SalaryInput) error {
	switch t.Setting {
	case SettingMedicareLevy, SettingPrivateHealth, SettingLoan, SettingTaxOffsets:
		return nil
	}
	return &TransformError{TransformName: t.Name(), Operation: "validate", Reason: fmt.Sprintf("unknown setting %q", t.Setting)}
}

func (t *ToggleSetting) Apply(base domain.SalaryInput) (domain.SalaryInput, error) {
	out := CloneInput(base)
	switch t.Setting {
	case SettingMedicareLevy:
		out.Settings.IncludeMedicareLevy = t.Enabled
	case SettingPrivateHealth:
		out.Settings.PrivateHealth = t.Enabled
	case SettingLoan:
		out.Settings.IncludeLoanRepayment = t.Enabled
	case SettingTaxOffsets:
		out.Settings.ApplyTaxOffsets = t.Enabled
	}
	return out, nil
}
