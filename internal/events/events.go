package events

import (
	"time"

	"github.com/CampusPulse/Compass/internal/scoring"
)

type PredictionRecordedEvent struct {
	ID          string           `json:"id"`
	StudentRef  string           `json:"student_ref,omitempty"`
	Probability float64          `json:"probability"`
	Tier        scoring.RiskTier `json:"tier"`
	Timestamp   time.Time        `json:"timestamp"`
}

type SimulationRunEvent struct {
	ID                   string    `json:"id"`
	StudentRef           string    `json:"student_ref,omitempty"`
	BaselineProbability  float64   `json:"baseline_probability"`
	SimulatedProbability float64   `json:"simulated_probability"`
	Delta                float64   `json:"delta"`
	TierChanged          bool      `json:"tier_changed"`
	Committed            bool      `json:"committed"`
	Timestamp            time.Time `json:"timestamp"`
}

type StatsEvent struct {
	Count      int                      `json:"count"`
	Mean       float64                  `json:"mean"`
	Median     float64                  `json:"median"`
	StdDev     float64                  `json:"std_dev"`
	Min        float64                  `json:"min"`
	Max        float64                  `json:"max"`
	TierCounts map[scoring.RiskTier]int `json:"tier_counts,omitempty"`
	Timestamp  time.Time                `json:"timestamp"`
}
