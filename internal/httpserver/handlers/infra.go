package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/waypoint/internal/httpserver/deps"
)

type componentStatus struct {
	OK        bool   `json:"ok"`
	Back      *int   `json:"back,omitempty"`
	Forward   *int   `json:"forward,omitempty"`
	Recents   *int   `json:"recents,omitempty"`
	Quick     *int   `json:"quick_locations,omitempty"`
	Bookmarks *int   `json:"bookmarks,omitempty"`
	Mode      string `json:"mode,omitempty"`
	Impact    string `json:"impact,omitempty"`
	Error     string `json:"error,omitempty"`
}

type infraResponse struct {
	Mode       string                     `json:"mode"`
	Components map[string]componentStatus `json:"components"`
}

// Infra reports per-component health with live counts. Redis being down
// degrades the daemon (no cross-session visit merging) but never breaks
// navigation.
func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		back, forward, recents := d.History.Counts()
		quick, bookmarks := d.Locations.Counts()

		components := map[string]componentStatus{
			"history": {
				OK:      true,
				Back:    &back,
				Forward: &forward,
				Recents: &recents,
			},
			"locations": {
				OK:        true,
				Quick:     &quick,
				Bookmarks: &bookmarks,
			},
			"seed": {
				OK:   d.SeedFile != "",
				Mode: seedMode(d.SeedFile),
			},
			"redis": checkRedis(d),
		}

		writeJSON(w, http.StatusOK, infraResponse{
			Mode:       determineMode(components),
			Components: components,
		})
	}
}

func seedMode(file string) string {
	if file == "" {
		return "disabled"
	}
	return "periodic"
}

func determineMode(components map[string]componentStatus) string {
	if redis, exists := components["redis"]; exists && !redis.OK && redis.Error != "disabled" {
		return "degraded"
	}
	return "nominal"
}

func checkRedis(d deps.Deps) componentStatus {
	if d.RedisClient == nil {
		return componentStatus{
			OK:     false,
			Mode:   "disabled",
			Impact: "visit-mirror-disabled",
			Error:  "disabled",
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := d.RedisClient.Ping(ctx).Err(); err != nil {
		return componentStatus{
			OK:     false,
			Mode:   "degraded",
			Impact: "visit-mirror-unavailable",
			Error:  err.Error(),
		}
	}

	return componentStatus{
		OK:     true,
		Mode:   "optimal",
		Impact: "visit-mirror-enabled",
	}
}
