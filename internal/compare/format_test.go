package compare

import (
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
)

func testComparisonSet() *ComparisonSet {
	return &ComparisonSet{
		InputName:  "Full-time engineer",
		BaseSystem: "au-2024-25",
		BaseResult: &ComparisonResult{
			SystemCode:     "au-2024-25",
			GrossIncome:    decimal.NewFromInt(50000),
			TaxableIncome:  decimal.NewFromInt(50000),
			IncomeTax:      decimal.NewFromInt(5788),
			TotalTax:       decimal.NewFromInt(5788),
			NetIncome:      decimal.NewFromInt(44212),
			Superannuation: decimal.NewFromInt(5750),
			EffectiveRate:  decimal.NewFromFloat(11.576),
		},
		AlternativeResults: []ComparisonResult{
			{
				SystemCode:        "au-2023-24",
				GrossIncome:       decimal.NewFromInt(50000),
				TaxableIncome:     decimal.NewFromInt(50000),
				IncomeTax:         decimal.NewFromInt(6717),
				TotalTax:          decimal.NewFromInt(6717),
				NetIncome:         decimal.NewFromInt(43283),
				Superannuation:    decimal.NewFromInt(5500),
				EffectiveRate:     decimal.NewFromFloat(13.434),
				NetDiffFromBase:   decimal.NewFromInt(-929),
				NetPctFromBase:    decimal.NewFromFloat(-2.1012),
				TaxDiffFromBase:   decimal.NewFromInt(929),
				SuperDiffFromBase: decimal.NewFromInt(-250),
			},
		},
		Recommendations: []string{"Lowest Taxes: au-2024-25 saves $929.00 in tax and levies"},
	}
}

func TestTableFormatter_Format(t *testing.T) {
	formatter := &TableFormatter{}

	result := formatter.Format(testComparisonSet())

	if result == "" {
		t.Fatal("Expected formatted output, got empty string")
	}

	expected := []string{
		"TAX SYSTEM COMPARISON",
		"Base System: au-2024-25",
		"Input: Full-time engineer",
		"au-2024-25 (base)",
		"$44212.00",
		"au-2023-24",
		"11.58%",
		"COMPARISON TO BASE",
		"Net Income:   -$929.00 (-2.10%)",
		"Total Tax:    +$929.00",
		"Super:        -$250.00",
		"RECOMMENDATIONS",
		"• Lowest Taxes",
	}
	for _, want := range expected {
		if !strings.Contains(result, want) {
			t.Errorf("Expected %q in output:\n%s", want, result)
		}
	}

	// Levies did not change
	if strings.Contains(result, "Levies:") {
		t.Error("Zero deltas should be omitted")
	}
}

func TestTableFormatter_Format_EmptyAlternatives(t *testing.T) {
	formatter := &TableFormatter{}

	compSet := testComparisonSet()
	compSet.AlternativeResults = nil
	compSet.Recommendations = nil

	result := formatter.Format(compSet)

	if !strings.Contains(result, "au-2024-25 (base)") {
		t.Error("Expected base system in table")
	}

	if strings.Contains(result, "COMPARISON TO BASE") || strings.Contains(result, "RECOMMENDATIONS") {
		t.Error("Should not have comparison sections without alternatives")
	}
}

func TestTableFormatter_truncate(t *testing.T) {
	formatter := &TableFormatter{}

	if got := formatter.truncate("short", 10); got != "short" {
		t.Errorf("Expected 'short', got %q", got)
	}

	if got := formatter.truncate("a-very-long-system-code", 10); got != "a-very-..." {
		t.Errorf("Expected 'a-very-...', got %q", got)
	}
}

func TestTableFormatter_FormatCompact(t *testing.T) {
	formatter := &TableFormatter{}

	compSet := testComparisonSet()
	compSet.AlternativeResults = append(compSet.AlternativeResults, ComparisonResult{SystemCode: "same"})

	result := formatter.FormatCompact(compSet)

	expected := "Base: au-2024-25 | au-2023-24: -$929.00 | same: ="
	if result != expected {
		t.Errorf("Expected %q, got %q", expected, result)
	}
}

func TestCSVFormatter_Format(t *testing.T) {
	formatter := &CSVFormatter{}

	result, err := formatter.Format(testComparisonSet())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(result), "\n")
	if len(lines) != 3 {
		t.Fatalf("Expected header plus 2 rows, got %d lines", len(lines))
	}

	if !strings.HasPrefix(lines[0], "System,Type,Gross Income") {
		t.Errorf("Unexpected header: %s", lines[0])
	}

	if !strings.HasPrefix(lines[1], "au-2024-25,base,50000.00,50000.00,5788.00") {
		t.Errorf("Unexpected base row: %s", lines[1])
	}

	if !strings.HasSuffix(lines[2], "-929.00,-2.10,929.00,0.00,-250.00") {
		t.Errorf("Unexpected alternative row: %s", lines[2])
	}
}

func TestJSONFormatter_Format(t *testing.T) {
	tests := []struct {
		name   string
		pretty bool
	}{
		{"compact", false},
		{"pretty", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			formatter := &JSONFormatter{Pretty: tt.pretty}

			result, err := formatter.Format(testComparisonSet())
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}

			if tt.pretty != strings.Contains(result, "\n  ") {
				t.Errorf("Indentation mismatch for pretty=%v", tt.pretty)
			}

			var decoded ComparisonSet
			if err := json.Unmarshal([]byte(result), &decoded); err != nil {
				t.Fatalf("Output is not valid JSON: %v", err)
			}

			if decoded.BaseSystem != "au-2024-25" {
				t.Errorf("Expected base system au-2024-25, got %s", decoded.BaseSystem)
			}

			if len(decoded.AlternativeResults) != 1 || !decoded.AlternativeResults[0].NetDiffFromBase.Equal(decimal.NewFromInt(-929)) {
				t.Errorf("Alternative deltas did not survive encoding: %+v", decoded.AlternativeResults)
			}
		})
	}
}

func TestJSONFormatter_FormatNil(t *testing.T) {
	if _, err := (&JSONFormatter{}).Format(nil); err == nil {
		t.Error("Expected an error for a nil comparison set")
	}
}
