package scoring

import "testing"

func TestCheckAdvisoriesCleanProfile(t *testing.T) {
	if advisories := CheckAdvisories(strongProfile()); len(advisories) != 0 {
		t.Errorf("expected no advisories, got %+v", advisories)
	}
}

func TestCheckAdvisories(t *testing.T) {
	tests := []struct {
		name       string
		metric     string
		value      float64
		wantMetric string
	}{
		{"very low attendance", "attendance_pct", 55, "attendance_pct"},
		{"barely any study", "study_hours_per_week", 2, "study_hours_per_week"},
		{"excessive study", "study_hours_per_week", 50, "study_hours_per_week"},
		{"sleep deprived", "sleep_hours", 4.5, "sleep_hours"},
		{"oversleeping", "sleep_hours", 13, "sleep_hours"},
		{"low wellbeing", "mental_health_score", 3, "mental_health_score"},
		{"acute financial stress", "financial_stress_score", 9, "financial_stress_score"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := strongProfile()
			input[tt.metric] = tt.value

			advisories := CheckAdvisories(input)
			if len(advisories) != 1 {
				t.Fatalf("expected 1 advisory, got %d: %+v", len(advisories), advisories)
			}
			if advisories[0].Metric != tt.wantMetric {
				t.Errorf("got metric %s, want %s", advisories[0].Metric, tt.wantMetric)
			}
			if advisories[0].Message == "" {
				t.Error("advisory message empty")
			}
		})
	}
}

func TestCheckAdvisoriesMultiple(t *testing.T) {
	input := strongProfile()
	input["attendance_pct"] = 50
	input["sleep_hours"] = 4

	advisories := CheckAdvisories(input)
	if len(advisories) != 2 {
		t.Fatalf("expected 2 advisories, got %d", len(advisories))
	}
	// Rule order is fixed: attendance before sleep.
	if advisories[0].Metric != "attendance_pct" || advisories[1].Metric != "sleep_hours" {
		t.Errorf("unexpected order: %s, %s", advisories[0].Metric, advisories[1].Metric)
	}
}

func TestCheckAdvisoriesSkipsAbsentMetrics(t *testing.T) {
	if advisories := CheckAdvisories(MetricInput{}); len(advisories) != 0 {
		t.Errorf("empty input should yield no advisories, got %+v", advisories)
	}
}
