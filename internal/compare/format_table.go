package compare

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Format generates a formatted table comparing tax systems
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	// Header
	sb.WriteString("TAX SYSTEM COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Base System: %s\n", compSet.BaseSystem))
	if compSet.InputName != "" {
		sb.WriteString(fmt.Sprintf("Input: %s\n", compSet.InputName))
	}
	sb.WriteString("\n")

	nameWidth := 20
	numWidth := 14

	sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, "System",
		numWidth, "Net Income",
		numWidth, "Total Tax",
		numWidth, "Super",
		numWidth, "Effective"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	if base := compSet.BaseResult; base != nil {
		sb.WriteString(tf.formatRow(base, nameWidth, numWidth, true))
	}

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for i := range compSet.AlternativeResults {
			sb.WriteString(tf.formatRow(&compSet.AlternativeResults[i], nameWidth, numWidth, false))
		}
	}

	sb.WriteString(strings.Repeat("=", 80) + "\n")

	// Deltas from base
	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString("\nCOMPARISON TO BASE\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")

		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(fmt.Sprintf("\n%s:\n", alt.Label()))
			sb.WriteString(fmt.Sprintf("  Net Income:   %s (%s%%)\n",
				tf.formatDelta(alt.NetDiffFromBase), alt.NetPctFromBase.StringFixed(2)))
			if !alt.TaxDiffFromBase.IsZero() {
				sb.WriteString(fmt.Sprintf("  Total Tax:    %s\n", tf.formatDelta(alt.TaxDiffFromBase)))
			}
			if !alt.LevyDiffFromBase.IsZero() {
				sb.WriteString(fmt.Sprintf("  Levies:       %s\n", tf.formatDelta(alt.LevyDiffFromBase)))
			}
			if !alt.SuperDiffFromBase.IsZero() {
				sb.WriteString(fmt.Sprintf("  Super:        %s\n", tf.formatDelta(alt.SuperDiffFromBase)))
			}
		}
		sb.WriteString("\n")
	}

	if len(compSet.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, rec := range compSet.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// formatRow formats a single system row
func (tf *TableFormatter) formatRow(result *ComparisonResult, nameWidth, numWidth int, isBase bool) string {
	name := result.Label()
	if isBase {
		name += " (base)"
	}

	return fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, tf.truncate(name, nameWidth),
		numWidth, "$"+result.NetIncome.StringFixed(2),
		numWidth, "$"+result.TotalTax.StringFixed(2),
		numWidth, "$"+result.Superannuation.StringFixed(2),
		numWidth, result.EffectiveRate.StringFixed(2)+"%")
}

// formatDelta renders a signed currency delta such as +$1200.00 or -$80.50
func (tf *TableFormatter) formatDelta(d decimal.Decimal) string {
	switch {
	case d.IsPositive():
		return "+$" + d.StringFixed(2)
	case d.IsNegative():
		return "-$" + d.Abs().StringFixed(2)
	}
	return "$0.00"
}

// truncate truncates a string to maxLen
func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// FormatCompact creates a compact single-line summary of net income changes
func (tf *TableFormatter) FormatCompact(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Base: %s | ", compSet.BaseSystem))

	for i, alt := range compSet.AlternativeResults {
		if i > 0 {
			sb.WriteString(" | ")
		}
		change := "="
		if !alt.NetDiffFromBase.IsZero() {
			change = tf.formatDelta(alt.NetDiffFromBase)
		}
		sb.WriteString(fmt.Sprintf("%s: %s", alt.Label(), change))
	}

	return sb.String()
}
