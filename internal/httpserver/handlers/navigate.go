package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/MrSnakeDoc/waypoint/internal/events"
	"github.com/MrSnakeDoc/waypoint/internal/httpserver/deps"
	"github.com/MrSnakeDoc/waypoint/internal/utils"
)

type navigateRequest struct {
	Path         string `json:"path"`
	AddToHistory *bool  `json:"add_to_history,omitempty"`
}

type navigateResponse struct {
	OK          bool   `json:"ok"`
	CurrentPath string `json:"current_path,omitempty"`
	Reason      string `json:"reason,omitempty"`
}

// Navigate handles POST /navigate: the single navigation entry point.
func Navigate(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer utils.Close(r.Body)

		var req navigateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		addToHistory := true
		if req.AddToHistory != nil {
			addToHistory = *req.AddToHistory
		}

		respondNavigation(w, d, func() bool {
			return d.Navigator.NavigateTo(req.Path, addToHistory)
		})
	}
}

// NavigateBack handles POST /navigate/back.
func NavigateBack(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondNavigation(w, d, d.Navigator.NavigateBack)
	}
}

// NavigateForward handles POST /navigate/forward.
func NavigateForward(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondNavigation(w, d, d.Navigator.NavigateForward)
	}
}

// NavigateUp handles POST /navigate/up.
func NavigateUp(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondNavigation(w, d, d.Navigator.NavigateUp)
	}
}

// NavigateHome handles POST /navigate/home.
func NavigateHome(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondNavigation(w, d, d.Navigator.NavigateHome)
	}
}

// Refresh handles POST /refresh: re-emits signals for the current path.
func Refresh(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ok := d.Navigator.RefreshCurrentLocation()
		writeJSON(w, http.StatusOK, navigateResponse{
			OK:          ok,
			CurrentPath: d.Navigator.CurrentPath(),
		})
	}
}

// State handles GET /state: the aggregate navigation snapshot.
func State(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, d.Navigator.State())
	}
}

// respondNavigation runs a navigation call and reports its outcome.
// The failure reason is captured through the synchronous event bus:
// a navigation-failed subscriber is guaranteed to run before the
// navigation call returns.
func respondNavigation(w http.ResponseWriter, d deps.Deps, nav func() bool) {
	var reason string
	unsub := d.Bus.Subscribe(events.NavigationFailed, func(e events.Event) {
		reason = e.Reason
	})
	ok := nav()
	unsub()

	resp := navigateResponse{OK: ok}
	if ok {
		resp.CurrentPath = d.Navigator.CurrentPath()
		writeJSON(w, http.StatusOK, resp)
		return
	}
	resp.Reason = reason
	if resp.Reason == "" {
		resp.Reason = "navigation rejected"
	}
	writeJSON(w, http.StatusUnprocessableEntity, resp)
}
