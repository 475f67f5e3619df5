package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ListenPort      string        // ex: ":8750"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	DataDir      string // directory holding the JSON state files (default: <user config dir>/waypoint)
	SeedFile     string // path to the seed YAML file (optional, empty = seeding disabled)
	LoopbackOnly bool   // true => only loopback clients may reach the API

	HistoryMax   int           // max entries kept per history deque
	RecentMax    int           // max entries kept in the recent-locations list
	RecentMaxAge time.Duration // recents older than this are discarded (default: 30 days)

	ValidatePaths bool // check path existence before navigating
	AutoRefresh   bool // initial auto-refresh flag exposed in the state snapshot

	ReloadInterval time.Duration // interval to reload the seed file (default: 1h)
	PruneInterval  time.Duration // interval to prune stale recent locations (default: 24h)

	// Redis (optional visit mirror; empty addr = disabled)
	RedisAddr           string
	RedisUser           string
	RedisPassword       string
	RedisDB             int
	RedisDT             time.Duration // dial timeout
	RedisRT             time.Duration // read timeout
	RedisWT             time.Duration // write timeout
	RedisMaxWait        time.Duration // max wait between retries
	RedisPingTimeout    time.Duration // timeout for each ping attempt
	RedisPoolSize       int
	RedisConnectTimeout time.Duration // total time to retry connecting
	RedisRetryInterval  time.Duration // initial wait between retries (grows exponentially)
	RedisWarnThreshold  int           // warn after this many attempts
}

func Load() *Config {
	loadDotEnv()

	cfg := &Config{
		// Server settings
		ListenPort:      getenv("WAYPOINT_LISTEN_PORT", ":8750"),
		ShutdownTimeout: mustDuration("WAYPOINT_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("WAYPOINT_LOG_LEVEL", "info"),
		PrettyLog: mustBool("WAYPOINT_PRETTY_LOG", true),

		// State
		DataDir:      getenv("WAYPOINT_DATA_DIR", defaultDataDir()),
		SeedFile:     getenv("WAYPOINT_SEED_FILE", ""),
		LoopbackOnly: mustBool("WAYPOINT_LOOPBACK_ONLY", true),

		HistoryMax:   getenvInt("WAYPOINT_HISTORY_MAX", 50),
		RecentMax:    getenvInt("WAYPOINT_RECENT_MAX", 100),
		RecentMaxAge: mustDuration("WAYPOINT_RECENT_MAX_AGE", 30*24*time.Hour),

		ValidatePaths: mustBool("WAYPOINT_VALIDATE_PATHS", true),
		AutoRefresh:   mustBool("WAYPOINT_AUTO_REFRESH", false),

		ReloadInterval: mustDuration("WAYPOINT_RELOAD_INTERVAL", time.Hour),
		PruneInterval:  mustDuration("WAYPOINT_PRUNE_INTERVAL", 24*time.Hour),

		// Redis settings (optional)
		RedisAddr:           getenv("WAYPOINT_REDIS_ADDR", ""),
		RedisUser:           getenv("WAYPOINT_REDIS_USERNAME", "default"),
		RedisPassword:       getenv("WAYPOINT_REDIS_PASSWORD", ""),
		RedisDB:             getenvInt("WAYPOINT_REDIS_DB", 0),
		RedisDT:             mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:             mustDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:             mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:        mustDuration("REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:    mustDuration("REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:       getenvInt("REDIS_POOL_SIZE", 10),
		RedisConnectTimeout: mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:  mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisWarnThreshold:  getenvInt("REDIS_WARN_THRESHOLD", 3),
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		if cfg.RedisPassword != "" {
			cfgCopy.RedisPassword = "***REDACTED***"
		}
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
}

// loadDotEnv loads a .env file if one exists, checking the current directory
// first and then walking up towards the repository root. Variables already
// set in the environment take precedence.
func loadDotEnv() {
	_ = godotenv.Load()

	wd, err := os.Getwd()
	if err != nil {
		return
	}
	dir := wd
	for i := 0; i < 5; i++ {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			_ = godotenv.Load(envPath)
			return
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return
		}
		dir = parent
	}
}

func defaultDataDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		home, herr := os.UserHomeDir()
		if herr != nil {
			return ".waypoint"
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "waypoint")
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

// RedisEnabled reports whether the optional visit mirror is configured.
func (c *Config) RedisEnabled() bool {
	return strings.TrimSpace(c.RedisAddr) != ""
}
