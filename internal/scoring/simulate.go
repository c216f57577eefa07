package scoring

import "sort"

// SimulationResult compares a baseline profile against the same
// profile with selected metrics overridden. Metrics holds the derived
// input the simulated side was scored on.
type SimulationResult struct {
	Baseline    *PredictionResult `json:"baseline"`
	Simulated   *PredictionResult `json:"simulated"`
	Metrics     MetricInput       `json:"metrics"`
	Delta       float64           `json:"delta"`
	TierChanged bool              `json:"tier_changed"`
}

// Improved reports whether the overrides raised the probability.
func (r *SimulationResult) Improved() bool {
	return r.Delta > 0
}

// Simulate evaluates a profile twice, once as given and once with the
// overrides applied on top, and reports the difference. The baseline
// map is never mutated. Every override key must exist in the schema;
// an override for a metric absent from the baseline still applies, but
// the merged input must satisfy the schema like any other.
func (e *Engine) Simulate(baseline MetricInput, overrides map[string]float64) (*SimulationResult, error) {
	keys := make([]string, 0, len(overrides))
	for name := range overrides {
		keys = append(keys, name)
	}
	sort.Strings(keys)
	for _, name := range keys {
		if _, ok := e.schema.Lookup(name); !ok {
			return nil, &UnknownMetricError{Metric: name}
		}
	}

	before, err := e.Evaluate(baseline)
	if err != nil {
		return nil, err
	}

	merged := baseline.Clone()
	for name, value := range overrides {
		merged[name] = value
	}
	after, err := e.Evaluate(merged)
	if err != nil {
		return nil, err
	}

	return &SimulationResult{
		Baseline:    before,
		Simulated:   after,
		Metrics:     merged,
		Delta:       after.Probability - before.Probability,
		TierChanged: after.Tier != before.Tier,
	}, nil
}
