package scheduler

import (
	"context"
	"time"

	"github.com/MrSnakeDoc/waypoint/internal/history"
	"github.com/MrSnakeDoc/waypoint/internal/logger"
)

// DefaultPruneThreshold is the age after which recent locations are
// discarded: 30 days, matching the load-time cutoff.
const DefaultPruneThreshold = 30 * 24 * time.Hour

// RecentsPruner periodically removes stale recent locations, so the
// 30-day cutoff applies continuously rather than only at startup.
type RecentsPruner struct {
	history   *history.Service
	logger    logger.Logger
	interval  time.Duration
	threshold time.Duration
	stopCh    chan struct{}
}

// NewRecentsPruner creates a new pruner.
func NewRecentsPruner(
	hist *history.Service,
	log logger.Logger,
	interval time.Duration,
	threshold time.Duration,
) *RecentsPruner {
	if threshold == 0 {
		threshold = DefaultPruneThreshold
	}
	return &RecentsPruner{
		history:   hist,
		logger:    log,
		interval:  interval,
		threshold: threshold,
		stopCh:    make(chan struct{}),
	}
}

// Start runs one prune immediately, then keeps pruning on the interval.
func (rp *RecentsPruner) Start(ctx context.Context) error {
	rp.Prune()

	ticker := time.NewTicker(rp.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				rp.Prune()
			case <-rp.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the pruner.
func (rp *RecentsPruner) Stop() {
	close(rp.stopCh)
}

// Prune drops recent locations older than the threshold.
func (rp *RecentsPruner) Prune() {
	dropped := rp.history.PruneRecents(rp.threshold)
	if dropped > 0 {
		rp.logger.Info("pruned stale recent locations",
			logger.Int("dropped", dropped),
			logger.Duration("threshold", rp.threshold))
	} else {
		rp.logger.Debug("no stale recent locations to prune")
	}
}
