package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.ListenPort != ":8750" {
		t.Errorf("ListenPort = %q, want :8750", cfg.ListenPort)
	}
	if cfg.HistoryMax != 50 {
		t.Errorf("HistoryMax = %v, want 50", cfg.HistoryMax)
	}
	if cfg.RecentMax != 100 {
		t.Errorf("RecentMax = %v, want 100", cfg.RecentMax)
	}
	if cfg.RecentMaxAge != 30*24*time.Hour {
		t.Errorf("RecentMaxAge = %v, want 720h", cfg.RecentMaxAge)
	}
	if !cfg.LoopbackOnly {
		t.Error("LoopbackOnly = false, the daemon must default to loopback only")
	}
	if !cfg.ValidatePaths {
		t.Error("ValidatePaths = false, want validation on by default")
	}
	if cfg.AutoRefresh {
		t.Error("AutoRefresh = true, want off by default")
	}
	if cfg.DataDir == "" {
		t.Error("DataDir is empty")
	}
	if cfg.RedisEnabled() {
		t.Error("RedisEnabled() = true with no address configured")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("WAYPOINT_LISTEN_PORT", ":9999")
	t.Setenv("WAYPOINT_HISTORY_MAX", "10")
	t.Setenv("WAYPOINT_RECENT_MAX_AGE", "24h")
	t.Setenv("WAYPOINT_LOOPBACK_ONLY", "false")
	t.Setenv("WAYPOINT_DATA_DIR", "/var/lib/waypoint")
	t.Setenv("WAYPOINT_SEED_FILE", "/etc/waypoint/seed.yml")
	t.Setenv("WAYPOINT_REDIS_ADDR", "localhost:6379")

	cfg := Load()

	if cfg.ListenPort != ":9999" {
		t.Errorf("ListenPort = %q, want :9999", cfg.ListenPort)
	}
	if cfg.HistoryMax != 10 {
		t.Errorf("HistoryMax = %v, want 10", cfg.HistoryMax)
	}
	if cfg.RecentMaxAge != 24*time.Hour {
		t.Errorf("RecentMaxAge = %v, want 24h", cfg.RecentMaxAge)
	}
	if cfg.LoopbackOnly {
		t.Error("LoopbackOnly = true, override not applied")
	}
	if cfg.DataDir != "/var/lib/waypoint" {
		t.Errorf("DataDir = %q", cfg.DataDir)
	}
	if cfg.SeedFile != "/etc/waypoint/seed.yml" {
		t.Errorf("SeedFile = %q", cfg.SeedFile)
	}
	if !cfg.RedisEnabled() {
		t.Error("RedisEnabled() = false with an address configured")
	}
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("WAYPOINT_HISTORY_MAX", "not-a-number")
	t.Setenv("WAYPOINT_RECENT_MAX_AGE", "soon")
	t.Setenv("WAYPOINT_LOOPBACK_ONLY", "maybe")

	cfg := Load()

	if cfg.HistoryMax != 50 {
		t.Errorf("HistoryMax = %v, malformed value should fall back to 50", cfg.HistoryMax)
	}
	if cfg.RecentMaxAge != 30*24*time.Hour {
		t.Errorf("RecentMaxAge = %v, malformed value should fall back to 720h", cfg.RecentMaxAge)
	}
	if !cfg.LoopbackOnly {
		t.Error("LoopbackOnly should fall back to true on a malformed value")
	}
}
