package store

import (
	"context"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/CampusPulse/Compass/internal/scoring"
)

// MemoryLedger keeps history in process memory, preserving insertion
// order. It is the default backend for single-node deployments and
// tests; entries vanish on restart.
type MemoryLedger struct {
	mu      sync.RWMutex
	entries []*HistoryEntry
	byID    map[uuid.UUID]*HistoryEntry
}

// NewMemoryLedger returns an empty ledger.
func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{byID: make(map[uuid.UUID]*HistoryEntry)}
}

// Append records an entry, assigning ID and CreatedAt when unset.
func (l *MemoryLedger) Append(_ context.Context, entry *HistoryEntry) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	l.entries = append(l.entries, entry)
	l.byID[entry.ID] = entry
	return nil
}

// Get returns the entry with the given ID, or nil when absent.
func (l *MemoryLedger) Get(_ context.Context, id uuid.UUID) (*HistoryEntry, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.byID[id], nil
}

// Query returns matching entries oldest first.
func (l *MemoryLedger) Query(_ context.Context, filter HistoryFilter) ([]*HistoryEntry, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var matched []*HistoryEntry
	for _, e := range l.entries {
		if filter.StudentRef != "" && e.StudentRef != filter.StudentRef {
			continue
		}
		if filter.Tier != nil && (e.Result == nil || e.Result.Tier != *filter.Tier) {
			continue
		}
		if filter.Since != nil && e.CreatedAt.Before(*filter.Since) {
			continue
		}
		if filter.Until != nil && e.CreatedAt.After(*filter.Until) {
			continue
		}
		matched = append(matched, e)
	}

	if filter.Offset > 0 {
		if filter.Offset >= len(matched) {
			return nil, nil
		}
		matched = matched[filter.Offset:]
	}
	if filter.Limit > 0 && len(matched) > filter.Limit {
		matched = matched[:filter.Limit]
	}

	out := make([]*HistoryEntry, len(matched))
	copy(out, matched)
	return out, nil
}

// Stats summarizes every recorded probability.
func (l *MemoryLedger) Stats(_ context.Context) (*LedgerStats, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	stats := &LedgerStats{TierCounts: make(map[scoring.RiskTier]int)}
	if len(l.entries) == 0 {
		return stats, nil
	}

	probs := make([]float64, 0, len(l.entries))
	var sum float64
	for _, e := range l.entries {
		if e.Result == nil {
			continue
		}
		probs = append(probs, e.Result.Probability)
		sum += e.Result.Probability
		stats.TierCounts[e.Result.Tier]++
	}
	if len(probs) == 0 {
		return stats, nil
	}

	stats.Count = len(probs)
	stats.Mean = sum / float64(len(probs))

	sorted := make([]float64, len(probs))
	copy(sorted, probs)
	sort.Float64s(sorted)
	stats.Min = sorted[0]
	stats.Max = sorted[len(sorted)-1]
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		stats.Median = (sorted[mid-1] + sorted[mid]) / 2
	} else {
		stats.Median = sorted[mid]
	}

	var variance float64
	for _, p := range probs {
		d := p - stats.Mean
		variance += d * d
	}
	stats.StdDev = math.Sqrt(variance / float64(len(probs)))

	return stats, nil
}

// Close is a no-op for the in-memory backend.
func (l *MemoryLedger) Close() error { return nil }
