package file

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/MrSnakeDoc/waypoint/internal/domain"
	"github.com/MrSnakeDoc/waypoint/internal/logger"
)

const (
	HistoryFile        = "navigation_history.json"
	RecentsFile        = "recent_locations.json"
	BookmarksFile      = "bookmarks.json"
	QuickLocationsFile = "quick_locations.json"
)

// Store persists navigation state as human-readable JSON files, one file
// per concern, under a single data directory. Writes are atomic
// (temp file + rename). Load failures yield defaults, never errors:
// in-memory state stays authoritative for the session.
type Store struct {
	dir    string
	logger logger.Logger
}

// New creates the data directory if needed and returns a store rooted there.
func New(dir string, log logger.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data dir %s: %w", dir, err)
	}
	return &Store{dir: dir, logger: log}, nil
}

// Dir returns the data directory backing this store.
func (s *Store) Dir() string { return s.dir }

// SaveHistory writes the back/forward deques and current path.
func (s *Store) SaveHistory(back, forward []string, current string) error {
	rec := HistoryRecord{
		Version:        schemaVersion,
		BackHistory:    back,
		ForwardHistory: forward,
		SavedAt:        time.Now(),
	}
	if current != "" {
		rec.CurrentPath = &current
	}
	return s.writeJSON(HistoryFile, rec)
}

// LoadHistory reads the persisted history, returning defaults when the
// file is missing or unreadable.
func (s *Store) LoadHistory() (back, forward []string, current string) {
	var rec HistoryRecord
	if !s.readJSON(HistoryFile, &rec) {
		return nil, nil, ""
	}
	if rec.CurrentPath != nil {
		current = *rec.CurrentPath
	}
	return rec.BackHistory, rec.ForwardHistory, current
}

// SaveRecents writes the recent-locations list, most-recent-first.
func (s *Store) SaveRecents(recents []*domain.RecentLocation) error {
	rec := RecentsRecord{
		Version:         schemaVersion,
		RecentLocations: recents,
		SavedAt:         time.Now(),
	}
	return s.writeJSON(RecentsFile, rec)
}

// LoadRecents reads persisted recent locations. Entries with an empty path
// are dropped; age filtering is the caller's concern.
func (s *Store) LoadRecents() []*domain.RecentLocation {
	var rec RecentsRecord
	if !s.readJSON(RecentsFile, &rec) {
		return nil
	}
	out := make([]*domain.RecentLocation, 0, len(rec.RecentLocations))
	for _, r := range rec.RecentLocations {
		if r == nil || r.Path == "" {
			continue
		}
		if r.VisitCount < 1 {
			r.VisitCount = 1
		}
		if r.DisplayName == "" {
			r.DisplayName = domain.DisplayNameFor(r.Path)
		}
		out = append(out, r)
	}
	return out
}

// SaveBookmarks writes the bookmark list and known categories.
func (s *Store) SaveBookmarks(bookmarks []*domain.Bookmark, categories []string) error {
	rec := BookmarksRecord{
		Version:    schemaVersion,
		Bookmarks:  bookmarks,
		Categories: categories,
		SavedAt:    time.Now(),
	}
	return s.writeJSON(BookmarksFile, rec)
}

// LoadBookmarks reads persisted bookmarks, defaulting missing fields.
func (s *Store) LoadBookmarks() ([]*domain.Bookmark, []string) {
	var rec BookmarksRecord
	if !s.readJSON(BookmarksFile, &rec) {
		return nil, nil
	}
	out := make([]*domain.Bookmark, 0, len(rec.Bookmarks))
	for _, b := range rec.Bookmarks {
		if b == nil || b.ID == "" || b.Path == "" {
			continue
		}
		if b.Icon == "" {
			b.Icon = domain.DefaultBookmarkIcon
		}
		if b.Category == "" {
			b.Category = domain.DefaultBookmarkCategory
		}
		out = append(out, b)
	}
	return out, rec.Categories
}

// SaveQuickLocations writes the custom quick locations.
func (s *Store) SaveQuickLocations(custom []*domain.QuickLocation) error {
	rec := QuickLocationsRecord{
		Version:         schemaVersion,
		CustomLocations: custom,
		SavedAt:         time.Now(),
	}
	return s.writeJSON(QuickLocationsFile, rec)
}

// LoadQuickLocations reads persisted custom quick locations.
func (s *Store) LoadQuickLocations() []*domain.QuickLocation {
	var rec QuickLocationsRecord
	if !s.readJSON(QuickLocationsFile, &rec) {
		return nil
	}
	out := make([]*domain.QuickLocation, 0, len(rec.CustomLocations))
	for _, q := range rec.CustomLocations {
		if q == nil || q.Name == "" || q.Path == "" {
			continue
		}
		if q.Description == "" {
			q.Description = q.DefaultDescription()
		}
		q.Standard = false // persisted entries are custom by definition
		out = append(out, q)
	}
	return out
}

// writeJSON marshals v and atomically replaces the target file.
func (s *Store) writeJSON(name string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", name, err)
	}

	target := filepath.Join(s.dir, name)
	tmp, err := os.CreateTemp(s.dir, name+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", name, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file for %s: %w", name, err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", name, err)
	}
	return nil
}

// readJSON loads the named file into v. Returns false when the file is
// missing or corrupt; corruption is logged but never propagated.
func (s *Store) readJSON(name string, v interface{}) bool {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn("failed to read state file, using defaults",
				logger.String("file", name),
				logger.Error(err))
		}
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		s.logger.Warn("corrupt state file, using defaults",
			logger.String("file", name),
			logger.Error(err))
		return false
	}
	return true
}
