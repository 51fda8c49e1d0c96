package output

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"
)

// Formatter renders a report in one output format
type Formatter interface {
	Name() string
	Format(report *Report) ([]byte, error)
}

// FormatterFunc adapts a plain function to the Formatter interface
type FormatterFunc struct {
	ID string
	F  func(report *Report) ([]byte, error)
}

func (f FormatterFunc) Name() string { return f.ID }

func (f FormatterFunc) Format(report *Report) ([]byte, error) { return f.F(report) }

var registry = map[string]Formatter{}

var aliases = map[string]string{
	"verbose":         "console",
	"console-verbose": "console",
	"lite":            "console-lite",
	"csv-detailed":    "detailed-csv",
}

func register(f Formatter) { registry[f.Name()] = f }

func init() {
	register(ConsoleFormatter{})
	register(ConsoleVerboseFormatter{})
	register(CSVSummarizer{})
	register(DetailedCSVFormatter{})
	register(JSONFormatter{})
	register(HTMLFormatter{})
}

// GetFormatterByName resolves a formatter or alias; nil when unknown
func GetFormatterByName(name string) Formatter {
	key := strings.ToLower(strings.TrimSpace(name))
	if target, ok := aliases[key]; ok {
		key = target
	}
	return registry[key]
}

// AvailableFormatterNames returns the registered formatter names, sorted
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AvailableFormatAliases returns the accepted alternate names, sorted
func AvailableFormatAliases() []string {
	names := make([]string, 0, len(aliases))
	for alias := range aliases {
		names = append(names, alias)
	}
	sort.Strings(names)
	return names
}

// WriteFormatted renders the report and writes it to a timestamped file in
// the working directory, returning the file name
func WriteFormatted(f Formatter, report *Report, ext string) (string, error) {
	data, err := f.Format(report)
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("salary_report_%s.%s", time.Now().Format("20060102_150405"), ext)
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return filename, nil
}
