package deps

import (
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/waypoint/internal/events"
	"github.com/MrSnakeDoc/waypoint/internal/history"
	"github.com/MrSnakeDoc/waypoint/internal/locations"
	"github.com/MrSnakeDoc/waypoint/internal/logger"
	"github.com/MrSnakeDoc/waypoint/internal/navigator"
	redisstore "github.com/MrSnakeDoc/waypoint/internal/store/redis"
)

type Deps struct {
	Logger            logger.Logger
	StartTime         time.Time
	Version           string
	Commit            string
	BuildDate         string
	GoVersion         string
	TimeNow           func() time.Time   // for testing, defaults to time.Now
	Navigator         *navigator.Service // navigation orchestrator
	History           *history.Service   // back/forward + recents state owner
	Locations         *locations.Manager // quick locations + bookmarks state owner
	Bus               *events.Bus        // synchronous event bus
	RedisClient       *redis.Client      // nil when the visit mirror is disabled
	VisitStore        *redisstore.Store  // nil when the visit mirror is disabled
	SeedFile          string             // path to the seed file ("" = disabled)
	SeedReloadTrigger chan struct{}      // channel to trigger manual seed reload (nil if seeding disabled)
	LoopbackOnly      bool               // true => only loopback clients may reach the API
}
