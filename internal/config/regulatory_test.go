package config

import (
	"strings"
	"testing"

	"github.com/rgehrsitz/paycalc/internal/calculation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRegulatory_Embedded(t *testing.T) {
	rc, err := LoadRegulatory("")
	require.NoError(t, err)

	assert.Equal(t, "au-2024-25", rc.DefaultSystem)
	assert.Equal(t, []string{"au-2023-24", "au-2024-25", "simple"}, rc.Codes())

	current, ok := rc.System("au-2024-25")
	require.True(t, ok)
	assert.Equal(t, "30000", current.Rules.ConcessionalCap.String())
	assert.Equal(t, "11.5", current.Rules.SuperGuaranteeRate.String())
	require.Len(t, current.Brackets, 5)
	assert.True(t, current.Brackets[4].Unbounded())
	require.NotNil(t, current.Rules.LowIncomeOffset)
	assert.Len(t, current.Rules.LoanRepaymentBands, 18)

	previous, ok := rc.System("au-2023-24")
	require.True(t, ok)
	assert.Equal(t, "27500", previous.Rules.ConcessionalCap.String())

	flat, ok := rc.System("simple")
	require.True(t, ok)
	require.Len(t, flat.Brackets, 1)
	assert.Equal(t, "20", flat.Brackets[0].Rate.String())
}

func TestLoadRegulatory_EmbeddedTaxMatchesTables(t *testing.T) {
	rc, err := LoadRegulatory("")
	require.NoError(t, err)

	tests := []struct {
		system   string
		income   string
		expected string
	}{
		{"au-2024-25", "50000", "5788"},
		{"au-2024-25", "200000", "56138"},
		{"au-2023-24", "50000", "6717"},
		{"au-2023-24", "200000", "60667"},
		{"simple", "50000", "10000"},
	}

	for _, tt := range tests {
		t.Run(tt.system+"/"+tt.income, func(t *testing.T) {
			system, ok := rc.System(tt.system)
			require.True(t, ok)
			engine, err := calculation.NewCalculationEngine(system)
			require.NoError(t, err)

			tax := engine.Evaluator().Tax(calculation.ParseMoney(tt.income))
			assert.Equal(t, tt.expected, tax.String())
		})
	}
}

func TestLoadRegulatory_FileNotFound(t *testing.T) {
	_, err := LoadRegulatory("missing-regulatory.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read regulatory file")
}

func TestParseRegulatory_FailsFast(t *testing.T) {
	tests := []struct {
		name     string
		yaml     string
		contains string
	}{
		{
			name:     "no systems",
			yaml:     "systems: []\n",
			contains: "defines no tax systems",
		},
		{
			name: "gap in brackets",
			yaml: `
systems:
  - code: broken
    brackets:
      - { min: 0, max: 1000, rate: 0 }
      - { min: 2000, max: null, rate: 10 }
`,
			contains: `tax system "broken": invalid tax brackets: bracket 0: max 1000 does not meet next min 2000`,
		},
		{
			name: "negative rate",
			yaml: `
systems:
  - code: negative
    brackets:
      - { min: 0, max: null, rate: -5 }
`,
			contains: "outside [0,100]",
		},
		{
			name: "bad loan bands",
			yaml: `
systems:
  - code: bands
    brackets:
      - { min: 0, max: null, rate: 10 }
    rules:
      loan_repayment_bands:
        - { min: 1000, max: 2000, rate: 1 }
`,
			contains: "invalid levy bands",
		},
		{
			name: "rules out of range",
			yaml: `
systems:
  - code: rules
    brackets:
      - { min: 0, max: null, rate: 10 }
    rules:
      super_guarantee_rate: 120
      concessional_cap: -1
`,
			contains: "super_guarantee_rate: must be between 0 and 100",
		},
		{
			name: "duplicate code",
			yaml: `
systems:
  - code: dup
    brackets:
      - { min: 0, max: null, rate: 10 }
  - code: dup
    brackets:
      - { min: 0, max: null, rate: 10 }
`,
			contains: `"dup" defined more than once`,
		},
		{
			name: "unknown default",
			yaml: `
default_system: missing
systems:
  - code: only
    brackets:
      - { min: 0, max: null, rate: 10 }
`,
			contains: `default system "missing" is not defined`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rc, err := ParseRegulatory([]byte(tt.yaml))
			require.Error(t, err)
			assert.Nil(t, rc)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestParseRegulatory_BracketErrorIsTyped(t *testing.T) {
	yaml := strings.Join([]string{
		"systems:",
		"  - code: typed",
		"    brackets:",
		"      - { min: 100, max: null, rate: 10 }",
	}, "\n")

	_, err := ParseRegulatory([]byte(yaml))
	var bracketErr *calculation.InvalidBracketsError
	require.ErrorAs(t, err, &bracketErr)
	assert.Equal(t, 0, bracketErr.Index)
}

func TestDefaultRegulatoryData_IsCopy(t *testing.T) {
	data := DefaultRegulatoryData()
	require.NotEmpty(t, data)
	data[0] = '#'

	_, err := LoadRegulatory("")
	assert.NoError(t, err)
}
