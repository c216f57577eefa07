package scoring

import "sort"

// Severity grades how far a factor sits below the healthy threshold.
type Severity string

const (
	SeverityMild     Severity = "mild"
	SeverityModerate Severity = "moderate"
	SeveritySevere   Severity = "severe"
)

// Shortfall cutoffs for severity grading.
const (
	severeShortfall   = 0.50
	moderateShortfall = 0.25
)

// OnTrackMessage is the single recommendation issued when every factor
// clears the healthy threshold.
const OnTrackMessage = "All factors are at healthy levels. Keep up the current habits."

// Recommendation is one targeted intervention for a weak factor, or
// the on-track message when nothing is weak.
type Recommendation struct {
	Metric    string   `json:"metric,omitempty"`
	Category  Category `json:"category,omitempty"`
	Severity  Severity `json:"severity,omitempty"`
	Shortfall float64  `json:"shortfall,omitempty"`
	Action    string   `json:"action"`
	OnTrack   bool     `json:"on_track,omitempty"`
}

// Recommend selects up to maxCount interventions for the factors
// furthest below healthy, weighted by how much their category matters.
// Candidates rank by category weight times shortfall, descending; ties
// keep schema order so output is stable for identical inputs. A clean
// profile yields exactly one on-track recommendation.
func Recommend(schema Schema, weights CategoryWeights, normalized map[string]float64, healthy float64, maxCount int) []Recommendation {
	type candidate struct {
		spec      MetricSpec
		shortfall float64
		rank      float64
	}

	var candidates []candidate
	for _, spec := range schema {
		shortfall := healthy - normalized[spec.Name]
		if shortfall <= 0 {
			continue
		}
		candidates = append(candidates, candidate{
			spec:      spec,
			shortfall: shortfall,
			rank:      weights.For(spec.Category) * shortfall,
		})
	}

	if len(candidates) == 0 {
		return []Recommendation{{Action: OnTrackMessage, OnTrack: true}}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].rank > candidates[j].rank
	})
	if maxCount > 0 && len(candidates) > maxCount {
		candidates = candidates[:maxCount]
	}

	recs := make([]Recommendation, 0, len(candidates))
	for _, c := range candidates {
		severity := severityFor(c.shortfall)
		action := c.spec.MildAction
		if severity == SeveritySevere {
			action = c.spec.SevereAction
		}
		recs = append(recs, Recommendation{
			Metric:    c.spec.Name,
			Category:  c.spec.Category,
			Severity:  severity,
			Shortfall: c.shortfall,
			Action:    action,
		})
	}
	return recs
}

func severityFor(shortfall float64) Severity {
	switch {
	case shortfall >= severeShortfall:
		return SeveritySevere
	case shortfall >= moderateShortfall:
		return SeverityModerate
	default:
		return SeverityMild
	}
}
