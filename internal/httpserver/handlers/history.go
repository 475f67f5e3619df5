package handlers

import (
	"net/http"
	"strconv"

	"github.com/MrSnakeDoc/waypoint/internal/httpserver/deps"
)

type historyResponse struct {
	Back    []string `json:"back"`
	Forward []string `json:"forward"`
	Current string   `json:"current,omitempty"`
}

// GetHistory handles GET /history?limit=N: bounded, ordered views of both
// deques (back: most-recent-first, forward: next-up-first).
func GetHistory(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := parseLimit(r, 0)
		writeJSON(w, http.StatusOK, historyResponse{
			Back:    d.History.GetBackHistory(limit),
			Forward: d.History.GetForwardHistory(limit),
			Current: d.History.CurrentPath(),
		})
	}
}

// ClearHistory handles DELETE /history.
func ClearHistory(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d.History.ClearHistory()
		w.WriteHeader(http.StatusNoContent)
	}
}

func parseLimit(r *http.Request, def int) int {
	v := r.URL.Query().Get("limit")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return def
	}
	return n
}
