package scoring

import "fmt"

// RiskTier labels how urgently a student needs intervention.
type RiskTier string

const (
	TierLow      RiskTier = "low"
	TierModerate RiskTier = "moderate"
	TierHigh     RiskTier = "high"
	TierCritical RiskTier = "critical"
)

// Tiers lists every risk tier from best to worst outcome.
var Tiers = []RiskTier{TierLow, TierModerate, TierHigh, TierCritical}

// Valid reports whether t is one of the defined tiers.
func (t RiskTier) Valid() bool {
	switch t {
	case TierLow, TierModerate, TierHigh, TierCritical:
		return true
	}
	return false
}

// Description returns a short advising note for the tier.
func (t RiskTier) Description() string {
	switch t {
	case TierLow:
		return "On track for academic success"
	case TierModerate:
		return "Below target, needs improvement"
	case TierHigh:
		return "Requires monitoring and support"
	case TierCritical:
		return "Needs immediate intervention"
	default:
		return "Unknown tier"
	}
}

// TierThresholds are the probability cutoffs between risk tiers. A
// probability at or above a cutoff lands in the better tier, so 0.85
// exactly is low risk, not moderate.
type TierThresholds struct {
	Low      float64 `json:"low"`
	Moderate float64 `json:"moderate"`
	High     float64 `json:"high"`
}

// DefaultTierThresholds returns the standard cutoffs.
func DefaultTierThresholds() TierThresholds {
	return TierThresholds{Low: 0.85, Moderate: 0.70, High: 0.40}
}

// Validate checks that cutoffs are strictly descending within (0, 1).
func (t TierThresholds) Validate() error {
	if t.Low <= 0 || t.Low >= 1 {
		return fmt.Errorf("low threshold %.4f outside (0, 1)", t.Low)
	}
	if t.Moderate <= 0 || t.Moderate >= 1 {
		return fmt.Errorf("moderate threshold %.4f outside (0, 1)", t.Moderate)
	}
	if t.High <= 0 || t.High >= 1 {
		return fmt.Errorf("high threshold %.4f outside (0, 1)", t.High)
	}
	if t.Low <= t.Moderate || t.Moderate <= t.High {
		return fmt.Errorf("thresholds must descend: low %.4f > moderate %.4f > high %.4f",
			t.Low, t.Moderate, t.High)
	}
	return nil
}

// Classify maps an overall probability to its risk tier.
func (t TierThresholds) Classify(probability float64) RiskTier {
	switch {
	case probability >= t.Low:
		return TierLow
	case probability >= t.Moderate:
		return TierModerate
	case probability >= t.High:
		return TierHigh
	default:
		return TierCritical
	}
}
