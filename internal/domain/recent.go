package domain

import (
	"path/filepath"
	"time"
)

// RecentLocation is a recency-ranked visit record.
// At most one entry exists per distinct path.
type RecentLocation struct {
	Path        string    `json:"path"`
	LastVisited time.Time `json:"last_visited"`
	VisitCount  int       `json:"visit_count"`
	DisplayName string    `json:"display_name"`
}

// DisplayNameFor derives the label shown for a path: the base name,
// or the path itself for the filesystem root.
func DisplayNameFor(path string) string {
	base := filepath.Base(path)
	if base == "." || base == string(filepath.Separator) {
		return path
	}
	return base
}
