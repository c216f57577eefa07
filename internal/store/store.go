package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/CampusPulse/Compass/internal/scoring"
)

// HistoryEntry is one recorded prediction: the submitted profile plus
// the full result it produced. Entries are immutable once appended.
type HistoryEntry struct {
	ID         uuid.UUID                 `json:"id"`
	StudentRef string                    `json:"student_ref,omitempty"`
	Metrics    scoring.MetricInput       `json:"metrics"`
	Result     *scoring.PredictionResult `json:"result"`
	CreatedAt  time.Time                 `json:"created_at"`
}

// HistoryFilter narrows a ledger query. Zero fields match everything.
// Limit <= 0 means unbounded.
type HistoryFilter struct {
	StudentRef string
	Tier       *scoring.RiskTier
	Since      *time.Time
	Until      *time.Time
	Limit      int
	Offset     int
}

// LedgerStats summarizes recorded probabilities. StdDev is the
// population standard deviation. Min and Max are zero when the ledger
// is empty.
type LedgerStats struct {
	Count      int                      `json:"count"`
	Mean       float64                  `json:"mean"`
	Median     float64                  `json:"median"`
	StdDev     float64                  `json:"std_dev"`
	Min        float64                  `json:"min"`
	Max        float64                  `json:"max"`
	TierCounts map[scoring.RiskTier]int `json:"tier_counts"`
}

// Ledger is the append-only prediction history. Append assigns ID and
// CreatedAt when unset; entries are never updated or removed. Query
// returns entries oldest first, so insertion order is preserved.
type Ledger interface {
	Append(ctx context.Context, entry *HistoryEntry) error
	Get(ctx context.Context, id uuid.UUID) (*HistoryEntry, error)
	Query(ctx context.Context, filter HistoryFilter) ([]*HistoryEntry, error)
	Stats(ctx context.Context) (*LedgerStats, error)
	Close() error
}
