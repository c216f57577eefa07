package scoring

import "fmt"

// Category groups related metrics for subscore aggregation.
type Category string

const (
	CategoryAcademic Category = "academic"
	CategoryWellness Category = "wellness"
	CategorySupport  Category = "support"
)

// Categories lists every known category in aggregation order.
var Categories = []Category{CategoryAcademic, CategoryWellness, CategorySupport}

// MetricSpec describes one input metric: the range raw values are
// normalized against, the category it rolls up into, and its weight
// relative to the other metrics in that category. Inverted metrics
// measure something harmful, so a high raw value maps to a low
// normalized score.
type MetricSpec struct {
	Name         string   `json:"name" yaml:"name"`
	Category     Category `json:"category" yaml:"category"`
	Min          float64  `json:"min" yaml:"min"`
	Max          float64  `json:"max" yaml:"max"`
	Inverted     bool     `json:"inverted,omitempty" yaml:"inverted"`
	Weight       float64  `json:"weight" yaml:"weight"`
	SevereAction string   `json:"-" yaml:"severe_action"`
	MildAction   string   `json:"-" yaml:"mild_action"`
}

// Schema is the ordered catalog of metrics an engine accepts. Order is
// significant: it fixes tie-breaking in recommendations and the layout
// of factor breakdowns.
type Schema []MetricSpec

// DefaultSchema returns the standard nine-metric catalog.
func DefaultSchema() Schema {
	return Schema{
		{
			Name:         "attendance_pct",
			Category:     CategoryAcademic,
			Min:          60,
			Max:          100,
			Weight:       0.25,
			SevereAction: "Set up daily attendance tracking and schedule weekly check-ins with an advisor.",
			MildAction:   "Aim for at least 90% attendance; review the schedule for recurring conflicts.",
		},
		{
			Name:         "study_hours_per_week",
			Category:     CategoryAcademic,
			Min:          0,
			Max:          20,
			Weight:       0.20,
			SevereAction: "Build a fixed study timetable with a minimum of 15 hours per week and track it daily.",
			MildAction:   "Add two or three focused study blocks per week using a distraction-free technique.",
		},
		{
			Name:         "previous_gpa",
			Category:     CategoryAcademic,
			Min:          0,
			Max:          4,
			Weight:       0.15,
			SevereAction: "Request a tutoring plan covering the weakest subjects and review fundamentals before new material.",
			MildAction:   "Target the lowest-scoring subjects first; past grades respond to steady review.",
		},
		{
			Name:         "sleep_hours",
			Category:     CategoryWellness,
			Min:          4,
			Max:          8,
			Weight:       0.15,
			SevereAction: "Set a strict sleep schedule targeting 8 hours and remove screens an hour before bed.",
			MildAction:   "Move bedtime earlier in 30-minute steps until reaching 7 to 8 hours consistently.",
		},
		{
			Name:         "mental_health_score",
			Category:     CategoryWellness,
			Min:          0,
			Max:          10,
			Weight:       0.10,
			SevereAction: "Contact campus counseling services this week; sustained low wellbeing needs professional support.",
			MildAction:   "Schedule regular breaks and at least one restorative activity per day.",
		},
		{
			Name:         "extracurricular_hours",
			Category:     CategoryWellness,
			Min:          0,
			Max:          5,
			Weight:       0.05,
			SevereAction: "Join at least one club or activity; structured time outside class improves balance.",
			MildAction:   "Add a small weekly activity such as a study group or sports session.",
		},
		{
			Name:         "family_support_score",
			Category:     CategorySupport,
			Min:          0,
			Max:          10,
			Weight:       0.05,
			SevereAction: "Arrange a meeting between an advisor and the family to agree on a support plan.",
			MildAction:   "Share progress updates with family regularly to keep them engaged.",
		},
		{
			Name:         "financial_stress_score",
			Category:     CategorySupport,
			Min:          0,
			Max:          10,
			Inverted:     true,
			Weight:       0.03,
			SevereAction: "Meet with financial aid to review grants, emergency funds and work-study options.",
			MildAction:   "Draft a simple monthly budget and check eligibility for available scholarships.",
		},
		{
			Name:         "peer_influence_score",
			Category:     CategorySupport,
			Min:          0,
			Max:          10,
			Weight:       0.02,
			SevereAction: "Join a moderated study group to build a circle that reinforces good habits.",
			MildAction:   "Spend more study time with academically focused classmates.",
		},
	}
}

// Lookup returns the spec for a metric name.
func (s Schema) Lookup(name string) (MetricSpec, bool) {
	for _, m := range s {
		if m.Name == name {
			return m, true
		}
	}
	return MetricSpec{}, false
}

// MetricNames returns every metric name in declaration order.
func (s Schema) MetricNames() []string {
	names := make([]string, len(s))
	for i, m := range s {
		names[i] = m.Name
	}
	return names
}

// ByCategory returns the specs belonging to one category, in
// declaration order.
func (s Schema) ByCategory(c Category) []MetricSpec {
	var out []MetricSpec
	for _, m := range s {
		if m.Category == c {
			out = append(out, m)
		}
	}
	return out
}

// Validate checks structural soundness: no duplicate names, known
// categories, sane ranges, positive weights, and at least one metric
// per referenced category.
func (s Schema) Validate() error {
	if len(s) == 0 {
		return fmt.Errorf("schema has no metrics")
	}
	seen := make(map[string]bool, len(s))
	for _, m := range s {
		if m.Name == "" {
			return fmt.Errorf("metric with empty name")
		}
		if seen[m.Name] {
			return fmt.Errorf("duplicate metric %q", m.Name)
		}
		seen[m.Name] = true
		switch m.Category {
		case CategoryAcademic, CategoryWellness, CategorySupport:
		default:
			return fmt.Errorf("metric %q: unknown category %q", m.Name, m.Category)
		}
		if m.Max <= m.Min {
			return fmt.Errorf("metric %q: max %.2f must exceed min %.2f", m.Name, m.Max, m.Min)
		}
		if m.Weight <= 0 {
			return fmt.Errorf("metric %q: weight must be positive, got %.4f", m.Name, m.Weight)
		}
	}
	return nil
}
