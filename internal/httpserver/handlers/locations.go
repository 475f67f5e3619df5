package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/MrSnakeDoc/waypoint/internal/domain"
	"github.com/MrSnakeDoc/waypoint/internal/httpserver/deps"
	"github.com/MrSnakeDoc/waypoint/internal/utils"
)

type quickLocationsResponse struct {
	Locations []*domain.QuickLocation `json:"locations"`
}

type quickLocationCreateRequest struct {
	Name        string `json:"name"`
	Icon        string `json:"icon,omitempty"`
	Path        string `json:"path"`
	Description string `json:"description,omitempty"`
}

// ListQuickLocations handles GET /locations: standard entries first, then
// custom ones.
func ListQuickLocations(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, quickLocationsResponse{
			Locations: d.Locations.GetQuickLocations(),
		})
	}
}

// CreateQuickLocation handles POST /locations.
func CreateQuickLocation(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer utils.Close(r.Body)

		var req quickLocationCreateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.Name == "" {
			writeError(w, http.StatusBadRequest, "missing location name")
			return
		}

		loc, err := d.Locations.AddQuickLocation(req.Name, req.Icon, req.Path, req.Description)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		writeJSON(w, http.StatusCreated, loc)
	}
}

// DeleteQuickLocation handles DELETE /locations?path=...
func DeleteQuickLocation(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Query().Get("path")
		if path == "" {
			writeError(w, http.StatusBadRequest, "missing path parameter")
			return
		}
		if !d.Locations.RemoveQuickLocation(path) {
			writeError(w, http.StatusNotFound, "no quick location with that path")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
