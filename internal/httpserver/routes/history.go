package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/waypoint/internal/httpserver/deps"
	"github.com/MrSnakeDoc/waypoint/internal/httpserver/handlers"
)

func init() { Register(registerHistory) }

func registerHistory(r chi.Router, d deps.Deps) {
	r.Get("/history", handlers.GetHistory(d))
	r.Delete("/history", handlers.ClearHistory(d))
	r.Get("/recent", handlers.GetRecents(d))
	r.Delete("/recent", handlers.ClearRecents(d))
	r.Delete("/recent/entry", handlers.RemoveRecent(d))
}
