package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/waypoint/internal/httpserver/deps"
	"github.com/MrSnakeDoc/waypoint/internal/httpserver/handlers"
)

func init() { Register(registerBookmarks) }

func registerBookmarks(r chi.Router, d deps.Deps) {
	r.Get("/bookmarks", handlers.ListBookmarks(d))
	r.Post("/bookmarks", handlers.CreateBookmark(d))
	r.Patch("/bookmarks/{id}", handlers.UpdateBookmark(d))
	r.Delete("/bookmarks/{id}", handlers.DeleteBookmark(d))
	r.Post("/bookmarks/export", handlers.ExportBookmarks(d))
	r.Post("/bookmarks/import", handlers.ImportBookmarks(d))
}
