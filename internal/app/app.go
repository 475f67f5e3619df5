package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/waypoint/internal/config"
	"github.com/MrSnakeDoc/waypoint/internal/events"
	"github.com/MrSnakeDoc/waypoint/internal/history"
	"github.com/MrSnakeDoc/waypoint/internal/httpserver"
	"github.com/MrSnakeDoc/waypoint/internal/httpserver/deps"
	"github.com/MrSnakeDoc/waypoint/internal/locations"
	"github.com/MrSnakeDoc/waypoint/internal/logger"
	"github.com/MrSnakeDoc/waypoint/internal/navigator"
	"github.com/MrSnakeDoc/waypoint/internal/redis"
	"github.com/MrSnakeDoc/waypoint/internal/scheduler"
	filestore "github.com/MrSnakeDoc/waypoint/internal/store/file"
	redisstore "github.com/MrSnakeDoc/waypoint/internal/store/redis"
	"github.com/MrSnakeDoc/waypoint/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
	navigator   *navigator.Service
	reloader    *scheduler.SeedReloader
	pruner      *scheduler.RecentsPruner
}

func New() (*App, error) {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	store, err := filestore.New(cfg.DataDir, loggerClient)
	if err != nil {
		return nil, fmt.Errorf("failed to open data dir %s: %w", cfg.DataDir, err)
	}

	bus := events.NewBus(loggerClient)

	hist := history.New(store, bus, loggerClient, history.Options{
		HistoryMax:   cfg.HistoryMax,
		RecentMax:    cfg.RecentMax,
		RecentMaxAge: cfg.RecentMaxAge,
	})

	locs := locations.New(store, bus, loggerClient)

	// Redis is an optional mirror for cross-session visit sharing. The
	// daemon stays fully functional without it.
	var redisClient *goredis.Client
	var visitStore *redisstore.Store
	var mirror navigator.VisitMirror
	if cfg.RedisEnabled() {
		loggerClient.Infof("Connecting to Redis at %s", cfg.RedisAddr)
		redisClient, err = redis.New(redis.ConnectOptions{
			Addr:           cfg.RedisAddr,
			User:           cfg.RedisUser,
			Password:       cfg.RedisPassword,
			RedisDB:        cfg.RedisDB,
			DialTimeout:    cfg.RedisDT,
			ReadTimeout:    cfg.RedisRT,
			WriteTimeout:   cfg.RedisWT,
			PoolSize:       cfg.RedisPoolSize,
			ConnectTimeout: cfg.RedisConnectTimeout,
			RetryInterval:  cfg.RedisRetryInterval,
			MaxWait:        cfg.RedisMaxWait,
			PingTimeout:    cfg.RedisPingTimeout,
			WarnThreshold:  cfg.RedisWarnThreshold,
		}, loggerClient)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		loggerClient.Info("Redis initialized successfully")

		visitStore = redisstore.NewStore(redisClient)
		mirror = visitStore

		// Pull visits recorded by other sessions into the local recents.
		syncer := scheduler.NewRedisSyncer(visitStore, hist, loggerClient)
		if err := syncer.Sync(context.Background()); err != nil {
			loggerClient.Warn("failed to sync visits from redis on startup",
				logger.Error(err))
		}
	} else {
		loggerClient.Info("redis not configured, visit mirror disabled")
	}

	nav := navigator.New(hist, locs, mirror, bus, loggerClient, navigator.Options{
		ValidationEnabled:  cfg.ValidatePaths,
		AutoRefreshEnabled: cfg.AutoRefresh,
	})

	var reloader *scheduler.SeedReloader
	var seedReloadTrigger chan struct{}
	if cfg.SeedFile != "" {
		loggerClient.Info("seed file configured, initializing seed reloader",
			logger.String("file", cfg.SeedFile))
		seedReloadTrigger = make(chan struct{}, 1)
		reloader = scheduler.NewSeedReloader(
			cfg.SeedFile,
			locs,
			bus,
			loggerClient,
			cfg.ReloadInterval,
			seedReloadTrigger,
		)
	} else {
		loggerClient.Info("seed file not configured, seeding disabled")
	}

	pruner := scheduler.NewRecentsPruner(hist, loggerClient, cfg.PruneInterval, cfg.RecentMaxAge)

	d := deps.Deps{
		Logger:            loggerClient,
		StartTime:         time.Now(),
		Version:           version.Version,
		Commit:            version.Commit,
		BuildDate:         version.BuildDate,
		GoVersion:         version.GoVersion,
		TimeNow:           time.Now,
		Navigator:         nav,
		History:           hist,
		Locations:         locs,
		Bus:               bus,
		RedisClient:       redisClient,
		VisitStore:        visitStore,
		SeedFile:          cfg.SeedFile,
		SeedReloadTrigger: seedReloadTrigger,
		LoopbackOnly:      cfg.LoopbackOnly,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      server,
		redisClient: redisClient,
		navigator:   nav,
		reloader:    reloader,
		pruner:      pruner,
	}, nil
}

func (a *App) Run() error {
	a.logger.Infof("Starting Waypoint v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("Waypoint %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if a.reloader != nil {
		if err := a.reloader.Start(ctx); err != nil {
			// A broken seed file should not keep the daemon from starting.
			a.logger.Warn("seed reloader failed to start", logger.Error(err))
			a.reloader = nil
		} else {
			a.logger.Info("seed reloader started",
				logger.Duration("interval", a.cfg.ReloadInterval))
		}
	}

	if err := a.pruner.Start(ctx); err != nil {
		return fmt.Errorf("failed to start recents pruner: %w", err)
	}
	a.logger.Info("recents pruner started",
		logger.Duration("interval", a.cfg.PruneInterval))

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	if a.reloader != nil {
		a.reloader.Stop()
	}
	a.pruner.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warnf("failed to close redis: %v", err)
		} else {
			a.logger.Info("Redis closed cleanly")
		}
	}

	a.logger.Info("Waypoint stopped cleanly")
	return nil
}
