package scoring

import "sort"

// Normalize maps every raw metric in input onto [0, 1] according to
// the schema. Raw values outside a metric's range clamp to the nearest
// bound rather than failing: intake forms routinely carry a 102%
// attendance or a 9-hour sleep average, and those simply saturate.
//
// The input must contain exactly the schema's metrics: a missing one
// yields a MissingMetricError, an extra key an UnknownMetricError.
// When several keys are missing or unknown the lexicographically first
// is reported, so the same bad input always produces the same error.
func Normalize(schema Schema, input MetricInput) (map[string]float64, error) {
	var missing []string
	for _, spec := range schema {
		if _, ok := input[spec.Name]; !ok {
			missing = append(missing, spec.Name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, &MissingMetricError{Metric: missing[0]}
	}

	var unknown []string
	for name := range input {
		if _, ok := schema.Lookup(name); !ok {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, &UnknownMetricError{Metric: unknown[0]}
	}

	normalized := make(map[string]float64, len(schema))
	for _, spec := range schema {
		normalized[spec.Name] = normalizeMetric(spec, input[spec.Name])
	}
	return normalized, nil
}

func normalizeMetric(spec MetricSpec, raw float64) float64 {
	scaled := (clamp(raw, spec.Min, spec.Max) - spec.Min) / (spec.Max - spec.Min)
	if spec.Inverted {
		return 1 - scaled
	}
	return scaled
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
