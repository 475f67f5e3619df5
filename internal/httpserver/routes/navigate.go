package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/waypoint/internal/httpserver/deps"
	"github.com/MrSnakeDoc/waypoint/internal/httpserver/handlers"
)

func init() { Register(registerNavigate) }

func registerNavigate(r chi.Router, d deps.Deps) {
	r.Post("/navigate", handlers.Navigate(d))
	r.Post("/navigate/back", handlers.NavigateBack(d))
	r.Post("/navigate/forward", handlers.NavigateForward(d))
	r.Post("/navigate/up", handlers.NavigateUp(d))
	r.Post("/navigate/home", handlers.NavigateHome(d))
	r.Post("/refresh", handlers.Refresh(d))
	r.Get("/state", handlers.State(d))
}
