package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestAmountInRange(t *testing.T) {
	tests := []struct {
		raw      string
		expected bool
	}{
		{"0", true},
		{"85000.25", true},
		{"-85000", true},
		{"1000000000000", true},
		{"1000000000000.01", false},
		{"-1000000000001", false},
		{"1e5000000", false},
		{"1e-5000000", false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			if got := AmountInRange(decimal.RequireFromString(tt.raw)); got != tt.expected {
				t.Errorf("AmountInRange(%s) = %v, expected %v", tt.raw, got, tt.expected)
			}
		})
	}
}
