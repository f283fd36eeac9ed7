package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ulwant/HitungPajakku-sub001/internal/compare"
	"github.com/ulwant/HitungPajakku-sub001/internal/domain"
)

// TemplateRegistry manages built-in what-if templates
type TemplateRegistry struct {
	templates map[string]Template
}

// Template represents a named collection of transforms
type Template struct {
	Name        string
	Description string
	Transforms  []ProfileTransform
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

// CreateBuiltInTemplates creates a template registry with common what-if situations
func CreateBuiltInTemplates() *TemplateRegistry {
	registry := NewTemplateRegistry()

	// Income
	for _, pct := range []int64{5, 10, 20} {
		registry.Register(Template{
			Name:        fmt.Sprintf("raise_%dpct", pct),
			Description: fmt.Sprintf("Income grows by %d%%", pct),
			Transforms:  []ProfileTransform{&AdjustIncome{Rate: decimal.NewFromInt(pct).Div(decimal.NewFromInt(100))}},
		})
	}
	registry.Register(Template{
		Name:        "cut_10pct",
		Description: "Income falls by 10%",
		Transforms:  []ProfileTransform{&AdjustIncome{Rate: decimal.NewFromFloat(-0.10)}},
	})
	registry.Register(Template{
		Name:        "half_year",
		Description: "Employee works only 6 months of the year",
		Transforms:  []ProfileTransform{&SetMonthsWorked{Months: 6}},
	})

	// Taxpayer status
	registry.Register(Template{
		Name:        "no_npwp",
		Description: "Employee has no NPWP (wage tax surcharge)",
		Transforms:  []ProfileTransform{&SetNPWP{HasNPWP: false}},
	})
	registry.Register(Template{
		Name:        "with_npwp",
		Description: "Employee registers an NPWP",
		Transforms:  []ProfileTransform{&SetNPWP{HasNPWP: true}},
	})
	for dependants := 0; dependants <= 3; dependants++ {
		status := domain.PTKPStatus(fmt.Sprintf("K/%d", dependants))
		registry.Register(Template{
			Name:        fmt.Sprintf("married_%d", dependants),
			Description: fmt.Sprintf("Married with %d dependant(s) (%s)", dependants, status),
			Transforms:  []ProfileTransform{&SetPTKPStatus{Status: status}},
		})
	}

	// Regime switches
	registry.Register(Template{
		Name:        "switch_freelancer",
		Description: "Same gross as a freelance professional in a major city",
		Transforms:  []ProfileTransform{&ConvertToFreelancer{Profession: domain.ProfessionFreelance, Region: domain.RegionMajorCity}},
	})
	registry.Register(Template{
		Name:        "switch_umkm",
		Description: "Same gross as small-business turnover (flat final)",
		Transforms:  []ProfileTransform{&ConvertToSmallBusiness{}},
	})
	registry.Register(Template{
		Name:        "switch_umkm_raise_10pct",
		Description: "Small-business turnover 10% above today's gross",
		Transforms: []ProfileTransform{
			&ConvertToSmallBusiness{},
			&AdjustIncome{Rate: decimal.NewFromFloat(0.10)},
		},
	})

	return registry
}

// ApplyTemplate applies a template to a base profile. The result is named
// "<base> + <template>".
func ApplyTemplate(base compare.Profile, template Template) (compare.Profile, error) {
	p, err := ApplyTransforms(base, template.Transforms)
	if err != nil {
		return nil, err
	}
	return Rename(p, base.ProfileName()+" + "+template.Name), nil
}

// BuildAlternatives returns the base profile followed by one variant per template name
func BuildAlternatives(base compare.Profile, registry *TemplateRegistry, names []string) ([]compare.Profile, error) {
	if base == nil {
		return nil, fmt.Errorf("base profile cannot be nil")
	}
	profiles := []compare.Profile{base}
	for _, name := range names {
		t, ok := registry.Get(name)
		if !ok {
			return nil, fmt.Errorf("unknown template: %s (use --list-templates to see available templates)", name)
		}
		p, err := ApplyTemplate(base, t)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, nil
}

// ParseTemplateList parses a comma-separated list of template names
func ParseTemplateList(templateList string) []string {
	if templateList == "" {
		return nil
	}

	parts := strings.Split(templateList, ",")
	templates := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			templates = append(templates, trimmed)
		}
	}
	return templates
}

// GetTemplateHelp returns formatted help text for all templates
func GetTemplateHelp(registry *TemplateRegistry) string {
	if len(registry.templates) == 0 {
		return "No templates registered"
	}

	var sb strings.Builder
	sb.WriteString("Available Templates:\n\n")

	categories := map[string][]Template{}
	order := []string{"Income", "Taxpayer Status", "Regime Switches"}
	for _, name := range registry.List() {
		t := registry.templates[name]
		switch {
		case strings.HasPrefix(name, "switch_"):
			categories["Regime Switches"] = append(categories["Regime Switches"], t)
		case strings.HasPrefix(name, "married_"), strings.HasSuffix(name, "npwp"):
			categories["Taxpayer Status"] = append(categories["Taxpayer Status"], t)
		default:
			categories["Income"] = append(categories["Income"], t)
		}
	}

	for _, category := range order {
		templates := categories[category]
		if len(templates) == 0 {
			continue
		}

		sb.WriteString(fmt.Sprintf("%s:\n", category))
		for _, t := range templates {
			sb.WriteString(fmt.Sprintf("  %-30s %s\n", t.Name, t.Description))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Usage:\n")
	sb.WriteString("  hitungpajak compare scenarios.yaml --base Karyawan --with switch_freelancer,switch_umkm\n")
	sb.WriteString("  hitungpajak compare scenarios.yaml --base Karyawan --with raise_10pct,married_1\n")

	return sb.String()
}
