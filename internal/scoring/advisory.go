package scoring

// Advisory flags a raw input value that is plausible but worth a
// second look before trusting the prediction. Advisories never block
// evaluation.
type Advisory struct {
	Metric  string `json:"metric"`
	Message string `json:"message"`
}

// CheckAdvisories inspects raw inputs for unusual patterns. Rules run
// in a fixed order so output is deterministic. Metrics absent from the
// input are skipped; presence checks belong to Normalize.
func CheckAdvisories(input MetricInput) []Advisory {
	var out []Advisory
	add := func(metric, message string) {
		out = append(out, Advisory{Metric: metric, Message: message})
	}

	if v, ok := input["attendance_pct"]; ok && v < 70 {
		add("attendance_pct", "attendance below 70% usually signals disengagement or external obstacles")
	}
	if v, ok := input["study_hours_per_week"]; ok {
		if v < 5 {
			add("study_hours_per_week", "fewer than 5 study hours per week is unusually low")
		} else if v > 35 {
			add("study_hours_per_week", "more than 35 study hours per week suggests burnout risk or a data entry error")
		}
	}
	if v, ok := input["sleep_hours"]; ok {
		if v < 6 {
			add("sleep_hours", "averaging under 6 hours of sleep impairs retention and focus")
		} else if v > 12 {
			add("sleep_hours", "more than 12 hours of sleep may indicate a health issue or a data entry error")
		}
	}
	if v, ok := input["mental_health_score"]; ok && v < 5 {
		add("mental_health_score", "low self-reported wellbeing warrants a counseling referral")
	}
	if v, ok := input["financial_stress_score"]; ok && v >= 8 {
		add("financial_stress_score", "acute financial stress reported; consider a financial aid review")
	}

	return out
}
