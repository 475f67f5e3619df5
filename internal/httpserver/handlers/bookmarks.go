package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/waypoint/internal/domain"
	"github.com/MrSnakeDoc/waypoint/internal/httpserver/deps"
	"github.com/MrSnakeDoc/waypoint/internal/locations"
	"github.com/MrSnakeDoc/waypoint/internal/utils"
)

type bookmarksResponse struct {
	Bookmarks  []*domain.Bookmark `json:"bookmarks"`
	Categories []string           `json:"categories"`
}

type bookmarkCreateRequest struct {
	Name     string `json:"name"`
	Path     string `json:"path"`
	Icon     string `json:"icon,omitempty"`
	Category string `json:"category,omitempty"`
}

type bookmarkUpdateRequest struct {
	Name     *string `json:"name,omitempty"`
	Path     *string `json:"path,omitempty"`
	Icon     *string `json:"icon,omitempty"`
	Category *string `json:"category,omitempty"`
}

type bookmarkFileRequest struct {
	Path  string `json:"path"`
	Merge bool   `json:"merge,omitempty"`
}

// ListBookmarks handles GET /bookmarks.
func ListBookmarks(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, bookmarksResponse{
			Bookmarks:  d.Locations.GetBookmarks(),
			Categories: d.Locations.GetCategories(),
		})
	}
}

// CreateBookmark handles POST /bookmarks.
func CreateBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer utils.Close(r.Body)

		var req bookmarkCreateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.Name == "" {
			writeError(w, http.StatusBadRequest, "missing bookmark name")
			return
		}

		bm, err := d.Locations.AddBookmark(req.Name, req.Path, req.Icon, req.Category)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		writeJSON(w, http.StatusCreated, bm)
	}
}

// UpdateBookmark handles PATCH /bookmarks/{id}: partial update, path changes
// are re-validated.
func UpdateBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer utils.Close(r.Body)

		id := chi.URLParam(r, "id")

		var req bookmarkUpdateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		found, err := d.Locations.UpdateBookmark(id, locations.BookmarkUpdate{
			Name:     req.Name,
			Path:     req.Path,
			Icon:     req.Icon,
			Category: req.Category,
		})
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		if !found {
			writeError(w, http.StatusNotFound, "bookmark not found")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// DeleteBookmark handles DELETE /bookmarks/{id}.
func DeleteBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if !d.Locations.RemoveBookmark(id) {
			writeError(w, http.StatusNotFound, "bookmark not found")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// ExportBookmarks handles POST /bookmarks/export {path}.
func ExportBookmarks(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer utils.Close(r.Body)

		var req bookmarkFileRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Path == "" {
			writeError(w, http.StatusBadRequest, "missing export path")
			return
		}
		if err := d.Locations.ExportBookmarks(req.Path); err != nil {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// ImportBookmarks handles POST /bookmarks/import {path, merge}.
func ImportBookmarks(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer utils.Close(r.Body)

		var req bookmarkFileRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Path == "" {
			writeError(w, http.StatusBadRequest, "missing import path")
			return
		}
		if err := d.Locations.ImportBookmarks(req.Path, req.Merge); err != nil {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
