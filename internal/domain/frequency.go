package domain

import "strings"

// Frequency is a pay or reporting period
type Frequency string

const (
	Weekly      Frequency = "weekly"
	Fortnightly Frequency = "fortnightly"
	Monthly     Frequency = "monthly"
	Quarterly   Frequency = "quarterly"
	Annually    Frequency = "annually"
)

// PayFrequencies are the periods used for income and breakdown rows, shortest first
var PayFrequencies = []Frequency{Weekly, Fortnightly, Monthly, Annually}

// PeriodsPerYear returns the annual multiplier for the frequency.
// Unknown or empty frequencies are treated as annual.
func (f Frequency) PeriodsPerYear() int64 {
	switch f.normalize() {
	case Weekly:
		return 52
	case Fortnightly:
		return 26
	case Monthly:
		return 12
	case Quarterly:
		return 4
	default:
		return 1
	}
}

// Valid reports whether f names a known frequency
func (f Frequency) Valid() bool {
	switch f.normalize() {
	case Weekly, Fortnightly, Monthly, Quarterly, Annually:
		return true
	}
	return false
}

// Label returns a display label such as "Weekly"
func (f Frequency) Label() string {
	n := f.normalize()
	if n == "" {
		return "Annually"
	}
	return strings.ToUpper(string(n[:1])) + string(n[1:])
}

func (f Frequency) normalize() Frequency {
	switch strings.ToLower(strings.TrimSpace(string(f))) {
	case "weekly", "week":
		return Weekly
	case "fortnightly", "fortnight", "biweekly":
		return Fortnightly
	case "monthly", "month":
		return Monthly
	case "quarterly", "quarter":
		return Quarterly
	case "annually", "annual", "yearly", "year":
		return Annually
	}
	return ""
}

// ParseFrequency normalizes user text into a Frequency, falling back to Annually
func ParseFrequency(raw string) Frequency {
	if f := Frequency(raw).normalize(); f != "" {
		return f
	}
	return Annually
}
