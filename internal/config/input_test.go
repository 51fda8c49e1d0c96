package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rgehrsitz/paycalc/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validSalaryYAML = `
name: "Full-time engineer"
tax_system: au-2024-25
income:
  salary: 95000
  frequency: annually
  pro_rata:
    hours: 30.4
    frequency: weekly
  overtime:
    - hours: 4
      rate: 72.5
      frequency: weekly
      include_super: true
  fringe_benefits:
    - description: "Novated car"
      amount: 650
      frequency: monthly
      type: taxable
      reportable: true
  salary_sacrifice:
    - description: "Laptop"
      amount: 1800
      frequency: annually
      is_tax_deductible: true
  settings:
    include_medicare_levy: true
    include_loan_repayment: true
    voluntary_super: true
    voluntary_super_amount: 250
    voluntary_super_frequency: fortnightly
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestNewInputParser(t *testing.T) {
	parser := NewInputParser()
	assert.NotNil(t, parser, "Should create input parser")
}

func TestInputParser_LoadFromFile_FileNotFound(t *testing.T) {
	parser := NewInputParser()

	config, err := parser.LoadFromFile("nonexistent.yaml")

	assert.Error(t, err, "Should error for nonexistent file")
	assert.Nil(t, config, "Should return nil config")
	assert.Contains(t, err.Error(), "failed to read file", "Should have specific error message")
}

func TestInputParser_LoadFromFile_InvalidYAML(t *testing.T) {
	path := writeFile(t, "invalid.yaml", "invalid: yaml: content: [unclosed")

	config, err := NewInputParser().LoadFromFile(path)

	assert.Error(t, err, "Should error for invalid YAML")
	assert.Nil(t, config, "Should return nil config")
	assert.Contains(t, err.Error(), "failed to parse YAML", "Should have specific error message")
}

func TestInputParser_LoadFromFile_ValidYAML(t *testing.T) {
	path := writeFile(t, "valid.yaml", validSalaryYAML)

	config, err := NewInputParser().LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "Full-time engineer", config.Name)
	assert.Equal(t, "au-2024-25", config.TaxSystem)

	in := config.Income
	assert.Equal(t, "95000", in.Salary.String())
	assert.Equal(t, domain.Annually, in.Frequency)
	require.NotNil(t, in.ProRata)
	assert.Equal(t, "30.4", in.ProRata.Hours.String())
	require.Len(t, in.Overtime, 1)
	assert.True(t, in.Overtime[0].IncludeSuper)
	require.Len(t, in.FringeBenefits, 1)
	assert.Equal(t, domain.FringeBenefitTaxable, in.FringeBenefits[0].Type)
	require.Len(t, in.SalarySacrifice, 1)
	assert.True(t, in.SalarySacrifice[0].IsTaxDeductible)
	assert.Nil(t, in.Settings.SuperRate)
	assert.True(t, in.Settings.VoluntarySuper)
	assert.Equal(t, domain.Fortnightly, in.Settings.VoluntarySuperFrequency)
}

func TestInputParser_ValidateConfiguration(t *testing.T) {
	tests := []struct {
		name     string
		yaml     string
		contains []string
	}{
		{
			name: "negative salary",
			yaml: `
income:
  salary: -10
  frequency: annually
`,
			contains: []string{"income.salary: cannot be negative"},
		},
		{
			name: "huge exponent",
			yaml: `
income:
  salary: 1e5000000
  frequency: annually
  pro_rata:
    hours: 1e-5000000
`,
			contains: []string{"income.salary: is out of range (limit 1000000000000)", "income.pro_rata.hours: is out of range"},
		},
		{
			name: "unknown frequency",
			yaml: `
income:
  salary: 1000
  frequency: hourly
`,
			contains: []string{`income.frequency: unknown frequency "hourly"`},
		},
		{
			name: "bad pro-rata",
			yaml: `
income:
  salary: 1000
  pro_rata:
    hours: 0
    frequency: monthly
`,
			contains: []string{"income.pro_rata.hours: must be positive", "income.pro_rata.frequency: must be weekly or fortnightly"},
		},
		{
			name: "bad entries reported together",
			yaml: `
income:
  salary: 1000
  overtime:
    - hours: -1
      rate: 50
  fringe_benefits:
    - amount: 10
      type: luxury
  salary_sacrifice:
    - amount: -5
      frequency: daily
`,
			contains: []string{
				"income.overtime[0].hours",
				"income.fringe_benefits[0].type: must be taxable or exempt",
				"income.salary_sacrifice[0].amount",
				"income.salary_sacrifice[0].frequency",
			},
		},
		{
			name: "super rate out of range",
			yaml: `
income:
  salary: 1000
  settings:
    super_rate: 150
`,
			contains: []string{"income.settings.super_rate: must be between 0 and 100"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewInputParser().Parse([]byte(tt.yaml))
			require.Error(t, err)

			var verrs ValidationErrors
			require.True(t, errors.As(err, &verrs), "Should wrap ValidationErrors, got %T", err)
			for _, c := range tt.contains {
				assert.Contains(t, err.Error(), c)
			}
		})
	}
}

func TestInputParser_LoadFromFileWithRegulatory(t *testing.T) {
	path := writeFile(t, "valid.yaml", validSalaryYAML)

	config, regulatory, err := NewInputParser().LoadFromFileWithRegulatory(path, "")
	require.NoError(t, err)
	assert.Equal(t, "au-2024-25", config.TaxSystem)

	system, ok := regulatory.System(config.TaxSystem)
	require.True(t, ok)
	assert.Equal(t, "AUD", system.Currency)
}

func TestInputParser_LoadFromFileWithRegulatory_UnknownSystem(t *testing.T) {
	path := writeFile(t, "nz.yaml", "tax_system: nz-2024\nincome:\n  salary: 1000\n")

	_, _, err := NewInputParser().LoadFromFileWithRegulatory(path, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown tax system "nz-2024"`)
	assert.Contains(t, err.Error(), "au-2023-24")
}

func TestInputParser_EmptySystemUsesDefault(t *testing.T) {
	path := writeFile(t, "plain.yaml", "income:\n  salary: 52000\n")

	config, regulatory, err := NewInputParser().LoadFromFileWithRegulatory(path, "")
	require.NoError(t, err)

	system, ok := regulatory.System(config.TaxSystem)
	require.True(t, ok)
	assert.Equal(t, "au-2024-25", system.Code)
}
