package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/MrSnakeDoc/waypoint/internal/events"
	"github.com/MrSnakeDoc/waypoint/internal/locations"
	"github.com/MrSnakeDoc/waypoint/internal/logger"
	"github.com/MrSnakeDoc/waypoint/internal/sources/seed"
)

// SeedReloader periodically reloads the seed file and merges its entries
// into the location manager. A manual trigger channel allows immediate
// reloads from the API.
type SeedReloader struct {
	loader        *seed.Loader
	mapper        *seed.Mapper
	manager       *locations.Manager
	bus           *events.Bus
	logger        logger.Logger
	interval      time.Duration
	stopCh        chan struct{}
	manualTrigger chan struct{}
}

// NewSeedReloader creates a new seed reloader.
func NewSeedReloader(
	seedFile string,
	manager *locations.Manager,
	bus *events.Bus,
	log logger.Logger,
	interval time.Duration,
	manualTrigger chan struct{},
) *SeedReloader {
	return &SeedReloader{
		loader:        seed.NewLoader(seedFile),
		mapper:        seed.NewMapper(log),
		manager:       manager,
		bus:           bus,
		logger:        log,
		interval:      interval,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start loads the seed immediately, then keeps reloading on the interval
// and on manual triggers until Stop or context cancellation.
func (sr *SeedReloader) Start(ctx context.Context) error {
	if err := sr.Reload(ctx); err != nil {
		return fmt.Errorf("initial seed reload failed: %w", err)
	}

	ticker := time.NewTicker(sr.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := sr.Reload(ctx); err != nil {
					sr.logger.Error("failed to reload seed file",
						logger.Error(err))
				}
			case <-sr.manualTrigger:
				sr.logger.Info("manual seed reload triggered")
				if err := sr.Reload(ctx); err != nil {
					sr.logger.Error("failed to reload seed file",
						logger.Error(err))
				}
			case <-sr.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the reloader.
func (sr *SeedReloader) Stop() {
	close(sr.stopCh)
}

// Reload parses the seed file and merges new entries into the manager.
// Entries the user already has (by path) are never overwritten.
func (sr *SeedReloader) Reload(ctx context.Context) error {
	_ = ctx

	config, err := sr.loader.Load()
	if err != nil {
		return fmt.Errorf("failed to load seed: %w", err)
	}

	locs := sr.mapper.MapLocations(config)
	bookmarks := sr.mapper.MapBookmarks(config)

	added := sr.manager.MergeSeed(locs, bookmarks)
	if added > 0 {
		sr.logger.Info("seed entries merged",
			logger.Int("locations", len(locs)),
			logger.Int("bookmarks", len(bookmarks)),
			logger.Int("added", added))
		sr.bus.Publish(events.Event{Type: events.SeedReloaded})
	} else {
		sr.logger.Debug("seed reload found nothing new")
	}
	return nil
}
