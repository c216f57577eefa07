package scoring

// Improvement quantifies the gap between a probability and a target
// threshold.
type Improvement struct {
	Target     float64 `json:"target"`
	Needed     float64 `json:"needed"`
	Percentage float64 `json:"percentage"`
	Achieved   bool    `json:"achieved"`
}

// ImprovementNeeded reports how far current sits below target. Needed
// is zero once the target is met, never negative.
func ImprovementNeeded(current, target float64) Improvement {
	needed := target - current
	if needed < 0 {
		needed = 0
	}
	return Improvement{
		Target:     target,
		Needed:     needed,
		Percentage: needed * 100,
		Achieved:   current >= target,
	}
}
