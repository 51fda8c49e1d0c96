package output

import (
	"github.com/goccy/go-json"
)

// JSONFormatter emits the report as indented JSON
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(report *Report) ([]byte, error) {
	if report.Calculation == nil {
		return nil, errNoCalculation
	}
	return json.MarshalIndent(report, "", "  ")
}
