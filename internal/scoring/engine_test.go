package scoring

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

// strongProfile is a high performer: every factor at or above healthy.
func strongProfile() MetricInput {
	return MetricInput{
		"attendance_pct":         95,
		"study_hours_per_week":   20,
		"previous_gpa":           3.8,
		"sleep_hours":            8,
		"mental_health_score":    8,
		"extracurricular_hours":  5,
		"family_support_score":   9,
		"financial_stress_score": 2,
		"peer_influence_score":   8,
	}
}

func defaultEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := NewEngine(Config{})
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	return e
}

func TestEvaluateStrongProfile(t *testing.T) {
	e := defaultEngine(t)
	r, err := e.Evaluate(strongProfile())
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}

	if math.Abs(r.Subscores.Academic-0.9354166666666667) > 1e-9 {
		t.Errorf("academic subscore: got %f, want 0.935417", r.Subscores.Academic)
	}
	if math.Abs(r.Subscores.Wellness-0.9333333333333333) > 1e-9 {
		t.Errorf("wellness subscore: got %f, want 0.933333", r.Subscores.Wellness)
	}
	if math.Abs(r.Subscores.Support-0.85) > 1e-9 {
		t.Errorf("support subscore: got %f, want 0.85", r.Subscores.Support)
	}
	if math.Abs(r.Probability-0.92625) > 1e-9 {
		t.Errorf("probability: got %f, want 0.92625", r.Probability)
	}
	if r.Tier != TierLow {
		t.Errorf("tier: got %s, want %s", r.Tier, TierLow)
	}

	if len(r.Recommendations) != 1 || !r.Recommendations[0].OnTrack {
		t.Fatalf("expected single on-track recommendation, got %+v", r.Recommendations)
	}
	if r.Recommendations[0].Action != OnTrackMessage {
		t.Errorf("on-track action: got %q", r.Recommendations[0].Action)
	}

	if len(r.Factors) != 9 {
		t.Fatalf("expected 9 factors, got %d", len(r.Factors))
	}
	if len(r.TopFactors) != 3 {
		t.Fatalf("expected 3 top factors, got %d", len(r.TopFactors))
	}
	wantTop := []string{"attendance_pct", "study_hours_per_week", "sleep_hours"}
	for i, want := range wantTop {
		if r.TopFactors[i].Metric != want {
			t.Errorf("top factor %d: got %s, want %s", i, r.TopFactors[i].Metric, want)
		}
	}
}

func TestEvaluateOverallIsWeightedSumOfSubscores(t *testing.T) {
	e := defaultEngine(t)
	profiles := []MetricInput{
		strongProfile(),
		{
			"attendance_pct":         72,
			"study_hours_per_week":   6,
			"previous_gpa":           2.1,
			"sleep_hours":            5.5,
			"mental_health_score":    4,
			"extracurricular_hours":  1,
			"family_support_score":   3,
			"financial_stress_score": 7,
			"peer_influence_score":   5,
		},
	}

	w := e.Weights()
	for _, p := range profiles {
		r, err := e.Evaluate(p)
		if err != nil {
			t.Fatalf("Evaluate failed: %v", err)
		}
		want := w.Academic*r.Subscores.Academic +
			w.Wellness*r.Subscores.Wellness +
			w.Support*r.Subscores.Support
		if r.Probability != want {
			t.Errorf("probability %v is not the weighted subscore sum %v", r.Probability, want)
		}

		var contribSum float64
		for _, f := range r.Factors {
			contribSum += f.Weighted
		}
		if math.Abs(contribSum-r.Probability) > 1e-9 {
			t.Errorf("factor contributions sum to %f, probability is %f", contribSum, r.Probability)
		}
	}
}

func TestEvaluateDeterministic(t *testing.T) {
	e := defaultEngine(t)
	input := strongProfile()

	first, err := e.Evaluate(input)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	second, err := e.Evaluate(input)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("same input produced different results")
	}
}

func TestEvaluateDoesNotMutateInput(t *testing.T) {
	e := defaultEngine(t)
	input := MetricInput{
		"attendance_pct":         120, // above max, clamps during scoring
		"study_hours_per_week":   10,
		"previous_gpa":           3.0,
		"sleep_hours":            7,
		"mental_health_score":    6,
		"extracurricular_hours":  2,
		"family_support_score":   5,
		"financial_stress_score": 5,
		"peer_influence_score":   5,
	}
	want := input.Clone()

	if _, err := e.Evaluate(input); err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if !reflect.DeepEqual(input, want) {
		t.Errorf("input mutated: %v", input)
	}
}

func TestEvaluateClampsOutOfRange(t *testing.T) {
	e := defaultEngine(t)

	low := strongProfile()
	low["attendance_pct"] = 40 // below the 60 floor
	rLow, err := e.Evaluate(low)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	for _, f := range rLow.Factors {
		if f.Metric == "attendance_pct" && f.Normalized != 0 {
			t.Errorf("attendance 40 should normalize to 0, got %f", f.Normalized)
		}
	}

	high := strongProfile()
	high["sleep_hours"] = 11 // above the 8 ceiling
	rHigh, err := e.Evaluate(high)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	for _, f := range rHigh.Factors {
		if f.Metric == "sleep_hours" && f.Normalized != 1 {
			t.Errorf("sleep 11 should normalize to 1, got %f", f.Normalized)
		}
	}
}

func TestEvaluateInvertedMetric(t *testing.T) {
	e := defaultEngine(t)

	calm := strongProfile()
	calm["financial_stress_score"] = 0
	stressed := strongProfile()
	stressed["financial_stress_score"] = 10

	rCalm, err := e.Evaluate(calm)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	rStressed, err := e.Evaluate(stressed)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}

	if rCalm.Probability <= rStressed.Probability {
		t.Errorf("zero stress (%f) should beat max stress (%f)",
			rCalm.Probability, rStressed.Probability)
	}
	for _, f := range rStressed.Factors {
		if f.Metric == "financial_stress_score" && f.Normalized != 0 {
			t.Errorf("max stress should normalize to 0, got %f", f.Normalized)
		}
	}
}

func TestEvaluateMissingMetric(t *testing.T) {
	e := defaultEngine(t)
	input := strongProfile()
	delete(input, "sleep_hours")

	_, err := e.Evaluate(input)
	if err == nil {
		t.Fatal("expected error for missing metric")
	}
	var missing *MissingMetricError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingMetricError, got %T: %v", err, err)
	}
	if missing.Metric != "sleep_hours" {
		t.Errorf("got metric %q, want sleep_hours", missing.Metric)
	}
	if err.Error() != "missing required metric: sleep_hours" {
		t.Errorf("unexpected message: %q", err.Error())
	}
}

func TestEvaluateUnknownMetric(t *testing.T) {
	e := defaultEngine(t)
	input := strongProfile()
	input["shoe_size"] = 42

	_, err := e.Evaluate(input)
	if err == nil {
		t.Fatal("expected error for unknown metric")
	}
	var unknown *UnknownMetricError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownMetricError, got %T: %v", err, err)
	}
	if unknown.Metric != "shoe_size" {
		t.Errorf("got metric %q, want shoe_size", unknown.Metric)
	}
	if err.Error() != "unknown metric: shoe_size" {
		t.Errorf("unexpected message: %q", err.Error())
	}
}

func TestEvaluateErrorIsDeterministic(t *testing.T) {
	e := defaultEngine(t)
	input := strongProfile()
	delete(input, "sleep_hours")
	delete(input, "attendance_pct")

	// Two metrics missing: the lexicographically first is reported,
	// every time.
	for i := 0; i < 5; i++ {
		_, err := e.Evaluate(input)
		var missing *MissingMetricError
		if !errors.As(err, &missing) {
			t.Fatalf("expected MissingMetricError, got %v", err)
		}
		if missing.Metric != "attendance_pct" {
			t.Fatalf("run %d: got %q, want attendance_pct", i, missing.Metric)
		}
	}
}

func TestNewEngineRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"weights not summing to one", Config{Weights: CategoryWeights{Academic: 0.5, Wellness: 0.3, Support: 0.3}}},
		{"negative weight", Config{Weights: CategoryWeights{Academic: 1.2, Wellness: -0.3, Support: 0.1}}},
		{"ascending tiers", Config{Tiers: TierThresholds{Low: 0.4, Moderate: 0.7, High: 0.85}}},
		{"threshold above one", Config{Tiers: TierThresholds{Low: 1.5, Moderate: 0.7, High: 0.4}}},
		{"healthy threshold above one", Config{HealthyThreshold: 1.5}},
		{"negative max recommendations", Config{MaxRecommendations: -1}},
		{"schema with bad range", Config{Schema: Schema{{Name: "x", Category: CategoryAcademic, Min: 5, Max: 5, Weight: 1}}}},
		{"schema with duplicate", Config{Schema: Schema{
			{Name: "x", Category: CategoryAcademic, Min: 0, Max: 1, Weight: 0.5},
			{Name: "x", Category: CategoryAcademic, Min: 0, Max: 1, Weight: 0.5},
		}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewEngine(tt.cfg); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestDefaultSchemaIsValid(t *testing.T) {
	s := DefaultSchema()
	if err := s.Validate(); err != nil {
		t.Fatalf("default schema invalid: %v", err)
	}
	if len(s) != 9 {
		t.Errorf("expected 9 metrics, got %d", len(s))
	}

	// Per-category metric weights sum to the default category weight.
	w := DefaultWeights()
	for _, c := range Categories {
		var sum float64
		for _, m := range s.ByCategory(c) {
			sum += m.Weight
		}
		if math.Abs(sum-w.For(c)) > 0.001 {
			t.Errorf("category %s weights sum to %f, want %f", c, sum, w.For(c))
		}
	}
}
