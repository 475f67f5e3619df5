package events

import "github.com/MrSnakeDoc/waypoint/internal/domain"

// Type identifies a navigation event.
type Type string

const (
	NavigationRequested    Type = "navigation_requested"
	NavigationCompleted    Type = "navigation_completed"
	NavigationFailed       Type = "navigation_failed"
	CurrentPathChanged     Type = "current_path_changed"
	NavigationStateChanged Type = "navigation_state_changed"
	HistoryChanged         Type = "history_changed"
	RecentsChanged         Type = "recents_changed"
	BookmarksChanged       Type = "bookmarks_changed"
	QuickLocationsChanged  Type = "quick_locations_changed"
	SeedReloaded           Type = "seed_reloaded"
)

// Event carries the payload of a published event. Path is set for
// navigation events, Reason for failures, State for snapshot updates.
type Event struct {
	Type   Type
	Path   string
	Reason string
	State  *domain.NavigationState
}
