package goalseek

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"github.com/rgehrsitz/paycalc/internal/domain"
	"github.com/shopspring/decimal"
)

// TableFormatter formats solver results as a console table
type TableFormatter struct{}

// Format generates a report for one solve
func (tf *TableFormatter) Format(result *Result) string {
	var sb strings.Builder

	freq := result.Request.TargetFrequency
	if freq == "" {
		freq = domain.Annually
	}

	sb.WriteString("SALARY GOAL SEEK\n")
	sb.WriteString(strings.Repeat("=", 60) + "\n")
	sb.WriteString(fmt.Sprintf("Target Net Income:  $%s %s\n", tf.formatCurrency(result.Request.TargetNet), strings.ToLower(freq.Label())))
	sb.WriteString(fmt.Sprintf("Status:             %s\n", tf.formatStatus(result.Success)))
	sb.WriteString(fmt.Sprintf("Iterations:         %d\n", result.Iterations))
	if result.ConvergenceInfo != "" {
		sb.WriteString(fmt.Sprintf("Convergence:        %s\n", result.ConvergenceInfo))
	}
	sb.WriteString("\n")

	sb.WriteString("REQUIRED SALARY\n")
	sb.WriteString(strings.Repeat("-", 60) + "\n")
	sb.WriteString(fmt.Sprintf("Annual Salary:      $%s\n", tf.formatCurrency(result.AnnualSalary)))
	if inFreq := result.Request.Input.Frequency; inFreq != "" && inFreq.PeriodsPerYear() != 1 {
		sb.WriteString(fmt.Sprintf("%-20s$%s\n", inFreq.Label()+" Salary:", tf.formatCurrency(result.Salary)))
	}
	sb.WriteString("\n")

	if calc := result.Calculation; calc != nil {
		a := calc.Annual
		sb.WriteString("PROJECTED RESULTS\n")
		sb.WriteString(strings.Repeat("-", 60) + "\n")
		sb.WriteString(fmt.Sprintf("Gross Income:       $%s\n", tf.formatCurrency(a.TotalAnnualIncome)))
		sb.WriteString(fmt.Sprintf("Total Tax:          $%s\n", tf.formatCurrency(a.TotalTax())))
		sb.WriteString(fmt.Sprintf("Net Income:         $%s\n", tf.formatCurrency(a.NetIncome)))
		sb.WriteString(fmt.Sprintf("Achieved (%s): $%s (%s$%s)\n",
			strings.ToLower(freq.Label()),
			tf.formatCurrency(result.AchievedNet),
			tf.deltaSymbol(result.Difference),
			tf.formatCurrency(result.Difference.Abs())))
		sb.WriteString("\n")
	}

	return sb.String()
}

// FormatSchedule formats several solves as one row per target
func (tf *TableFormatter) FormatSchedule(results []Result) string {
	var sb strings.Builder

	sb.WriteString("SALARY SCHEDULE\n")
	sb.WriteString(strings.Repeat("=", 60) + "\n")
	sb.WriteString(fmt.Sprintf("%15s %15s %15s %10s\n", "Target Net", "Annual Salary", "Total Tax", "Status"))
	sb.WriteString(strings.Repeat("-", 60) + "\n")

	for _, r := range results {
		tax := decimal.Zero
		if r.Calculation != nil {
			tax = r.Calculation.Annual.TotalTax()
		}
		status := "ok"
		if !r.Success {
			status = "gap"
		}
		sb.WriteString(fmt.Sprintf("%15s %15s %15s %10s\n",
			"$"+tf.formatCurrency(r.Request.TargetNet),
			"$"+tf.formatCurrency(r.AnnualSalary),
			"$"+tf.formatCurrency(tax),
			status))
	}

	return sb.String()
}

// JSONFormatter formats results as JSON
type JSONFormatter struct {
	Pretty bool
}

// Format generates JSON output
func (jf *JSONFormatter) Format(result *Result) (string, error) {
	var data []byte
	var err error

	if jf.Pretty {
		data, err = json.MarshalIndent(result, "", "  ")
	} else {
		data, err = json.Marshal(result)
	}

	if err != nil {
		return "", err
	}

	return string(data), nil
}

// Helper methods

func (tf *TableFormatter) formatStatus(success bool) string {
	if success {
		return "✓ Converged"
	}
	return "⚠ Did not converge"
}

func (tf *TableFormatter) formatCurrency(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsNegative() {
		return "-"
	}
	return "+"
}
