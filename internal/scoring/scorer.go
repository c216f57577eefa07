package scoring

import "sort"

// FactorScore is one metric's contribution to the overall probability.
// Weight is the metric's effective share of the overall score, i.e.
// the category weight times the metric's share within its category, so
// Weighted values sum to the overall probability.
type FactorScore struct {
	Metric     string   `json:"metric"`
	Category   Category `json:"category"`
	Raw        float64  `json:"raw"`
	Normalized float64  `json:"normalized"`
	Weight     float64  `json:"weight"`
	Weighted   float64  `json:"weighted"`
}

// CategorySubscores holds the weighted average of each category's
// normalized metrics.
type CategorySubscores struct {
	Academic float64 `json:"academic"`
	Wellness float64 `json:"wellness"`
	Support  float64 `json:"support"`
}

// For returns the subscore for a category.
func (s CategorySubscores) For(c Category) float64 {
	switch c {
	case CategoryAcademic:
		return s.Academic
	case CategoryWellness:
		return s.Wellness
	case CategorySupport:
		return s.Support
	default:
		return 0
	}
}

// Score aggregates normalized metrics into category subscores, the
// overall probability, and the per-factor breakdown. Each subscore is
// the within-category weighted mean, and the overall probability is
// exactly the category-weighted sum of the subscores.
func Score(schema Schema, weights CategoryWeights, input MetricInput, normalized map[string]float64) (CategorySubscores, float64, []FactorScore) {
	var subs CategorySubscores
	catTotals := make(map[Category]float64, len(Categories))
	for _, c := range Categories {
		var sum, total float64
		for _, spec := range schema.ByCategory(c) {
			sum += normalized[spec.Name] * spec.Weight
			total += spec.Weight
		}
		catTotals[c] = total
		var sub float64
		if total > 0 {
			sub = sum / total
		}
		switch c {
		case CategoryAcademic:
			subs.Academic = sub
		case CategoryWellness:
			subs.Wellness = sub
		case CategorySupport:
			subs.Support = sub
		}
	}

	overall := weights.Academic*subs.Academic +
		weights.Wellness*subs.Wellness +
		weights.Support*subs.Support

	factors := make([]FactorScore, 0, len(schema))
	for _, spec := range schema {
		weight := 0.0
		if catTotals[spec.Category] > 0 {
			weight = weights.For(spec.Category) * spec.Weight / catTotals[spec.Category]
		}
		factors = append(factors, FactorScore{
			Metric:     spec.Name,
			Category:   spec.Category,
			Raw:        input[spec.Name],
			Normalized: normalized[spec.Name],
			Weight:     weight,
			Weighted:   weight * normalized[spec.Name],
		})
	}

	return subs, overall, factors
}

// TopFactors returns the n factors contributing most to the overall
// probability, largest weighted contribution first. Ties keep schema
// order.
func TopFactors(factors []FactorScore, n int) []FactorScore {
	ranked := make([]FactorScore, len(factors))
	copy(ranked, factors)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Weighted > ranked[j].Weighted
	})
	if n > len(ranked) {
		n = len(ranked)
	}
	return ranked[:n]
}
