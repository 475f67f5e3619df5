package domain

import "time"

// DefaultBookmarkIcon is used when a bookmark is created without an icon.
const DefaultBookmarkIcon = "bookmark"

// DefaultBookmarkCategory groups bookmarks created without a category.
const DefaultBookmarkCategory = "default"

// Bookmark represents a user-created shortcut to a filesystem path.
type Bookmark struct {
	// ─────────────────────────────
	// Identity (immutable)
	// ─────────────────────────────

	// ID is an opaque unique identifier generated at creation.
	// It is never reused, even after the bookmark is deleted.
	ID string `json:"id"`

	// ─────────────────────────────
	// Attributes (mutable by id)
	// ─────────────────────────────

	// Name is the display label chosen by the user.
	Name string `json:"name"`

	// Path is the resolved absolute target path.
	// It must exist at the time of add or update.
	Path string `json:"path"`

	// Icon is a glyph identifier rendered by the UI layer.
	Icon string `json:"icon"`

	// Category organizes bookmarks into groups. Defaults to "default".
	Category string `json:"category"`

	// ─────────────────────────────
	// Metadata
	// ─────────────────────────────

	// Created is the time the bookmark was first added.
	Created time.Time `json:"created"`
}
