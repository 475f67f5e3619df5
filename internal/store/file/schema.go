package file

import (
	"time"

	"github.com/MrSnakeDoc/waypoint/internal/domain"
)

// schemaVersion is bumped when a persisted envelope changes shape.
const schemaVersion = 1

// HistoryRecord is the on-disk shape of navigation_history.json.
type HistoryRecord struct {
	Version        int       `json:"version"`
	BackHistory    []string  `json:"back_history"`
	ForwardHistory []string  `json:"forward_history"`
	CurrentPath    *string   `json:"current_path"`
	SavedAt        time.Time `json:"saved_at"`
}

// RecentsRecord is the on-disk shape of recent_locations.json.
type RecentsRecord struct {
	Version         int                      `json:"version"`
	RecentLocations []*domain.RecentLocation `json:"recent_locations"`
	SavedAt         time.Time                `json:"saved_at"`
}

// BookmarksRecord is the on-disk shape of bookmarks.json.
type BookmarksRecord struct {
	Version    int                `json:"version"`
	Bookmarks  []*domain.Bookmark `json:"bookmarks"`
	Categories []string           `json:"categories"`
	SavedAt    time.Time          `json:"saved_at"`
}

// QuickLocationsRecord is the on-disk shape of quick_locations.json.
// Only custom locations are persisted; standard ones are re-probed at startup.
type QuickLocationsRecord struct {
	Version         int                     `json:"version"`
	CustomLocations []*domain.QuickLocation `json:"custom_locations"`
	SavedAt         time.Time               `json:"saved_at"`
}
