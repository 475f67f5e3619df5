package scheduler

import (
	"context"

	"github.com/MrSnakeDoc/waypoint/internal/history"
	"github.com/MrSnakeDoc/waypoint/internal/logger"
	redisstore "github.com/MrSnakeDoc/waypoint/internal/store/redis"
)

// RedisSyncer reconciles the local recents list with the mirrored visit
// records on startup: mirrored visits are folded into the recents, then
// the merged list is pushed back so other sessions see visits recorded
// while the mirror was unreachable.
type RedisSyncer struct {
	store   *redisstore.Store
	history *history.Service
	logger  logger.Logger
}

// NewRedisSyncer creates a new syncer.
func NewRedisSyncer(store *redisstore.Store, hist *history.Service, log logger.Logger) *RedisSyncer {
	return &RedisSyncer{
		store:   store,
		history: hist,
		logger:  log,
	}
}

// Sync pulls mirrored visits into the recents list, then pushes the
// merged list back to the mirror.
func (rs *RedisSyncer) Sync(ctx context.Context) error {
	rs.logger.Info("syncing visit records from redis")

	visits, err := rs.store.GetAllVisits(ctx)
	if err != nil {
		return err
	}

	merged := 0
	if len(visits) > 0 {
		merged = rs.history.MergeVisits(visits)
	}

	recents := rs.history.GetRecentLocations(0)
	if len(recents) > 0 {
		if err := rs.store.SaveVisitsMany(ctx, recents); err != nil {
			// Push failures are not fatal, the pull already succeeded.
			rs.logger.Warn("failed to push recents back to redis",
				logger.Error(err))
		}
	}

	rs.logger.Info("synced visit records from redis",
		logger.Int("found", len(visits)),
		logger.Int("merged", merged),
		logger.Int("pushed", len(recents)))
	return nil
}
