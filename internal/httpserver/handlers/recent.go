package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/waypoint/internal/domain"
	"github.com/MrSnakeDoc/waypoint/internal/httpserver/deps"
	"github.com/MrSnakeDoc/waypoint/internal/logger"
)

type recentsResponse struct {
	RecentLocations []*domain.RecentLocation `json:"recent_locations"`
}

// GetRecents handles GET /recent?limit=N, most-recent-first.
func GetRecents(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := parseLimit(r, 0)
		writeJSON(w, http.StatusOK, recentsResponse{
			RecentLocations: d.History.GetRecentLocations(limit),
		})
	}
}

// ClearRecents handles DELETE /recent.
func ClearRecents(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d.History.ClearRecentLocations()
		w.WriteHeader(http.StatusNoContent)
	}
}

// RemoveRecent handles DELETE /recent/entry?path=...
func RemoveRecent(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Query().Get("path")
		if path == "" {
			writeError(w, http.StatusBadRequest, "missing path parameter")
			return
		}
		if !d.History.RemoveFromRecentLocations(path) {
			writeError(w, http.StatusNotFound, "path not in recent locations")
			return
		}
		if d.VisitStore != nil {
			if err := d.VisitStore.DeleteVisit(r.Context(), path); err != nil {
				d.Logger.Debug("failed to delete mirrored visit",
					logger.String("path", path),
					logger.Error(err))
			}
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
