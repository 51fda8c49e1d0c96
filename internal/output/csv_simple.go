package output

import (
	"bytes"
	"encoding/csv"
)

// CSVSummarizer writes the breakdown as one row per pay frequency
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(report *Report) ([]byte, error) {
	calc := report.Calculation
	if calc == nil {
		return nil, errNoCalculation
	}
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)

	header := []string{"Frequency"}
	for _, l := range breakdownLines {
		header = append(header, l.Key)
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, r := range calc.Breakdown {
		row := []string{string(r.Frequency)}
		for _, l := range breakdownLines {
			row = append(row, l.Value(r).StringFixed(2))
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// DetailedCSVFormatter writes one row per line item with a column per
// frequency, followed by the summary values
type DetailedCSVFormatter struct{}

func (d DetailedCSVFormatter) Name() string { return "detailed-csv" }

func (d DetailedCSVFormatter) Format(report *Report) ([]byte, error) {
	calc := report.Calculation
	if calc == nil {
		return nil, errNoCalculation
	}
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)

	header := []string{"Item"}
	for _, r := range calc.Breakdown {
		header = append(header, r.Frequency.Label())
	}
	records := [][]string{header}
	for _, l := range breakdownLines {
		record := []string{l.Label}
		for _, r := range calc.Breakdown {
			record = append(record, l.Value(r).StringFixed(2))
		}
		records = append(records, record)
	}

	a := calc.Annual
	records = append(records,
		[]string{},
		[]string{"Summary", "Value"},
		[]string{"Tax system", calc.TaxSystem},
		[]string{"Taxable income", calc.Summary.TaxableIncome.StringFixed(2)},
		[]string{"Total tax", a.TotalTax().StringFixed(2)},
		[]string{"Marginal rate", calc.Summary.MarginalRate.StringFixed(2)},
		[]string{"Effective rate", a.EffectiveRate.StringFixed(2)},
		[]string{"Remaining cap", calc.Summary.RemainingCap.StringFixed(2)},
		[]string{"Tax savings estimate", calc.Summary.TaxSavingsEstimate.StringFixed(2)},
	)
	if err := w.WriteAll(records); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
