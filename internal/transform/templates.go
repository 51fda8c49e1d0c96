package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rgehrsitz/paycalc/internal/domain"
	"github.com/shopspring/decimal"
)

// Template categories, in help order
const (
	CategoryPay         = "Pay Changes"
	CategorySuper       = "Superannuation"
	CategoryLevies      = "Levies and Offsets"
	CategoryCombination = "Combination Strategies"
)

var categoryOrder = []string{CategoryPay, CategorySuper, CategoryLevies, CategoryCombination}

// TemplateRegistry manages named what-if templates
type TemplateRegistry struct {
	templates map[string]Template
}

// Template is a named collection of transforms
type Template struct {
	Name        string
	Description string
	Category    string
	Transforms  []InputTransform
}

// Apply runs the template's transforms against base
func (t Template) Apply(base domain.SalaryInput) (domain.SalaryInput, error) {
	return ApplyTransforms(base, t.Transforms)
}

// NewTemplateRegistry creates an empty template registry
func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{
		templates: make(map[string]Template),
	}
}

// Register adds a template to the registry
func (tr *TemplateRegistry) Register(t Template) {
	tr.templates[strings.ToLower(t.Name)] = t
}

// Get retrieves a template by name (case-insensitive)
func (tr *TemplateRegistry) Get(name string) (Template, bool) {
	t, ok := tr.templates[strings.ToLower(name)]
	return t, ok
}

// List returns all registered template names, sorted
func (tr *TemplateRegistry) List() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve looks up a template by name. A "name:params" transform spec is
// accepted too and becomes a one-transform template.
func (tr *TemplateRegistry) Resolve(name string, transforms *TransformRegistry) (Template, error) {
	if t, ok := tr.Get(name); ok {
		return t, nil
	}
	if transforms != nil && strings.Contains(name, ":") {
		transform, err := transforms.ParseTransformSpec(name)
		if err != nil {
			return Template{}, err
		}
		return Template{
			Name:        name,
			Description: transform.Description(),
			Transforms:  []InputTransform{transform},
		}, nil
	}
	return Template{}, fmt.Errorf("unknown template: %s", name)
}

// CreateBuiltInTemplates creates a registry with common salary what-ifs
func CreateBuiltInTemplates() *TemplateRegistry {
	registry := NewTemplateRegistry()

	for _, pct := range []int64{3, 5, 10} {
		registry.Register(Template{
			Name:        fmt.Sprintf("raise_%dpct", pct),
			Description: fmt.Sprintf("Salary increase of %d%%", pct),
			Category:    CategoryPay,
			Transforms:  []InputTransform{&RaiseSalary{Percent: decimal.NewFromInt(pct)}},
		})
	}

	fourDayWeek := &SetHours{Hours: decimal.RequireFromString("30.4"), Frequency: domain.Weekly}
	registry.Register(Template{
		Name:        "four_day_week",
		Description: "Work four of five days (30.4 hours per week)",
		Category:    CategoryPay,
		Transforms:  []InputTransform{fourDayWeek},
	})
	registry.Register(Template{
		Name:        "nine_day_fortnight",
		Description: "Work nine of ten days (68.4 hours per fortnight)",
		Category:    CategoryPay,
		Transforms:  []InputTransform{&SetHours{Hours: decimal.RequireFromString("68.4"), Frequency: domain.Fortnightly}},
	})
	registry.Register(Template{
		Name:        "full_time",
		Description: "Return to full-time hours",
		Category:    CategoryPay,
		Transforms:  []InputTransform{&SetHours{}},
	})

	maxSuper := &SetVoluntarySuper{Amount: decimal.NewFromInt(1_000_000), Frequency: domain.Annually}
	registry.Register(Template{
		Name:        "super_100_fortnight",
		Description: "Contribute $100 per fortnight to super",
		Category:    CategorySuper,
		Transforms:  []InputTransform{&SetVoluntarySuper{Amount: decimal.NewFromInt(100), Frequency: domain.Fortnightly}},
	})
	registry.Register(Template{
		Name:        "max_concessional",
		Description: "Contribute up to the concessional cap",
		Category:    CategorySuper,
		Transforms:  []InputTransform{maxSuper},
	})
	registry.Register(Template{
		Name:        "no_voluntary_super",
		Description: "Stop voluntary super contributions",
		Category:    CategorySuper,
		Transforms:  []InputTransform{&SetVoluntarySuper{}},
	})
	registry.Register(Template{
		Name:        "super_rate_12",
		Description: "Employer super at 12%",
		Category:    CategorySuper,
		Transforms:  []InputTransform{&SetSuperRate{Rate: decimal.NewFromInt(12)}},
	})

	registry.Register(Template{
		Name:        "private_health",
		Description: "Take out private health cover (no Medicare levy)",
		Category:    CategoryLevies,
		Transforms:  []InputTransform{&ToggleSetting{Setting: SettingPrivateHealth, Enabled: true}},
	})
	registry.Register(Template{
		Name:        "with_offsets",
		Description: "Apply the low income tax offset",
		Category:    CategoryLevies,
		Transforms:  []InputTransform{&ToggleSetting{Setting: SettingTaxOffsets, Enabled: true}},
	})
	registry.Register(Template{
		Name:        "loan_repaid",
		Description: "Study loan fully repaid",
		Category:    CategoryLevies,
		Transforms:  []InputTransform{&ToggleSetting{Setting: SettingLoan, Enabled: false}},
	})

	registry.Register(Template{
		Name:        "four_day_week_max_super",
		Description: "Four day week plus contributions up to the cap",
		Category:    CategoryCombination,
		Transforms:  []InputTransform{fourDayWeek, maxSuper},
	})

	return registry
}

// ParseTemplateList splits a comma-separated list of template names
func ParseTemplateList(s string) []string {
	if s == "" {
		return nil
	}

	parts := strings.Split(s, ",")
	templates := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			templates = append(templates, trimmed)
		}
	}
	return templates
}

// GetTemplateHelp returns help text listing every template by category
func GetTemplateHelp(registry *TemplateRegistry) string {
	if len(registry.templates) == 0 {
		return "No templates registered"
	}

	var sb strings.Builder
	sb.WriteString("Available Templates:\n\n")

	categories := make(map[string][]Template)
	for _, name := range registry.List() {
		t := registry.templates[name]
		category := t.Category
		if category == "" {
			category = CategoryCombination
		}
		categories[category] = append(categories[category], t)
	}

	for _, category := range categoryOrder {
		templates := categories[category]
		if len(templates) == 0 {
			continue
		}

		sb.WriteString(fmt.Sprintf("%s:\n", category))
		for _, t := range templates {
			sb.WriteString(fmt.Sprintf("  %-26s %s\n", t.Name, t.Description))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Ad-hoc transforms (name:key=value,...):\n")
	sb.WriteString("  " + strings.Join(NewTransformRegistry().List(), ", ") + "\n\n")

	sb.WriteString("Usage:\n")
	sb.WriteString("  paycalc compare salary.yaml --what-if raise_5pct,four_day_week\n")
	sb.WriteString("  paycalc compare salary.yaml --what-if \"set_voluntary_super:amount=250,frequency=fortnightly\"\n")

	return sb.String()
}
