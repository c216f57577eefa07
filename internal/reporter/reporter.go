package reporter

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/CampusPulse/Compass/internal/events"
	"github.com/CampusPulse/Compass/internal/store"
)

// Reporter periodically publishes ledger statistics so advising
// dashboards can track the cohort without polling the API.
type Reporter struct {
	ledger   store.Ledger
	events   events.Client
	interval time.Duration
	logger   *slog.Logger

	stopOnce sync.Once
	stopCh   chan struct{}
	wg       sync.WaitGroup
}

func New(ledger store.Ledger, ev events.Client, interval time.Duration, logger *slog.Logger) *Reporter {
	return &Reporter{
		ledger:   ledger,
		events:   ev,
		interval: interval,
		logger:   logger,
		stopCh:   make(chan struct{}),
	}
}

func (r *Reporter) Start(ctx context.Context) {
	r.wg.Add(1)
	go r.loop(ctx)
}

func (r *Reporter) Stop() {
	r.stopOnce.Do(func() { close(r.stopCh) })
	r.wg.Wait()
}

func (r *Reporter) loop(ctx context.Context) {
	defer r.wg.Done()
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.stopCh:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.publishStats(ctx)
		}
	}
}

func (r *Reporter) publishStats(ctx context.Context) {
	stats, err := r.ledger.Stats(ctx)
	if err != nil {
		r.logger.Error("failed to read ledger stats", "error", err)
		return
	}

	evt := events.StatsEvent{
		Count:      stats.Count,
		Mean:       stats.Mean,
		Median:     stats.Median,
		StdDev:     stats.StdDev,
		Min:        stats.Min,
		Max:        stats.Max,
		TierCounts: stats.TierCounts,
		Timestamp:  time.Now().UTC(),
	}
	if err := r.events.Publish(events.SubjectStats, evt); err != nil {
		r.logger.Warn("failed to publish stats event", "error", err)
		return
	}
	r.logger.Debug("published ledger stats", "count", stats.Count)
}
