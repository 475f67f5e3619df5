package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/waypoint/internal/httpserver/deps"
	"github.com/MrSnakeDoc/waypoint/internal/httpserver/handlers"
)

func init() { Register(registerLocations) }

func registerLocations(r chi.Router, d deps.Deps) {
	r.Get("/locations", handlers.ListQuickLocations(d))
	r.Post("/locations", handlers.CreateQuickLocation(d))
	r.Delete("/locations", handlers.DeleteQuickLocation(d))
}
