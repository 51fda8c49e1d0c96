package output

import (
	"bytes"
	_ "embed"
	"html/template"

	"github.com/rgehrsitz/paycalc/internal/domain"
)

// HTMLFormatter produces a standalone HTML report
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr": FormatCurrency,
	"pct":  FormatPercentage,
}).Parse(htmlTemplateSource))

type htmlLine struct {
	Label  string
	Net    bool
	Values []string
}

func (h HTMLFormatter) Format(report *Report) ([]byte, error) {
	calc := report.Calculation
	if calc == nil {
		return nil, errNoCalculation
	}

	var lines []htmlLine
	for _, l := range visibleLines(calc) {
		values := make([]string, 0, len(calc.Breakdown))
		for _, r := range calc.Breakdown {
			values = append(values, FormatCurrency(l.Value(r)))
		}
		lines = append(lines, htmlLine{Label: l.Label, Net: l.Key == "NetIncome", Values: values})
	}
	frequencies := make([]string, 0, len(calc.Breakdown))
	for _, r := range calc.Breakdown {
		frequencies = append(frequencies, r.Frequency.Label())
	}

	data := struct {
		*Report
		Annual      domain.AnnualResult
		Summary     domain.SalarySummary
		Frequencies []string
		Lines       []htmlLine
	}{report, calc.Annual, calc.Summary, frequencies, lines}

	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
