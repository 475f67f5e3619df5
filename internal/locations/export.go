package locations

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/MrSnakeDoc/waypoint/internal/domain"
	"github.com/MrSnakeDoc/waypoint/internal/events"
	"github.com/MrSnakeDoc/waypoint/internal/logger"
	"github.com/MrSnakeDoc/waypoint/internal/store/file"
)

// ExportBookmarks writes the full bookmark list and categories to path,
// in the same envelope as bookmarks.json.
func (m *Manager) ExportBookmarks(path string) error {
	m.mu.Lock()
	rec := file.BookmarksRecord{
		Version:    1,
		Bookmarks:  append([]*domain.Bookmark(nil), m.bookmarks...),
		Categories: append([]string(nil), m.categories...),
		SavedAt:    time.Now(),
	}
	m.mu.Unlock()

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal bookmarks: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write bookmark export: %w", err)
	}

	m.logger.Info("bookmarks exported",
		logger.String("file", path),
		logger.Int("count", len(rec.Bookmarks)))
	return nil
}

// ImportBookmarks loads bookmarks from an export file. With merge set,
// entries whose path is already bookmarked are skipped; otherwise the
// whole list is replaced. There is no partial-write rollback: a parse
// error leaves the current state untouched.
func (m *Manager) ImportBookmarks(path string, merge bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read bookmark import: %w", err)
	}

	var rec file.BookmarksRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return fmt.Errorf("failed to parse bookmark import: %w", err)
	}

	incoming := make([]*domain.Bookmark, 0, len(rec.Bookmarks))
	for _, b := range rec.Bookmarks {
		if b == nil || b.Path == "" {
			continue
		}
		if b.ID == "" {
			b.ID = uuid.New().String()
		}
		if b.Icon == "" {
			b.Icon = domain.DefaultBookmarkIcon
		}
		if b.Category == "" {
			b.Category = domain.DefaultBookmarkCategory
		}
		if b.Created.IsZero() {
			b.Created = time.Now()
		}
		incoming = append(incoming, b)
	}

	m.mu.Lock()
	if merge {
		existing := make(map[string]bool, len(m.bookmarks))
		for _, b := range m.bookmarks {
			existing[b.Path] = true
		}
		for _, b := range incoming {
			if existing[b.Path] {
				continue
			}
			existing[b.Path] = true
			m.bookmarks = append(m.bookmarks, b)
			m.registerCategoryLocked(b.Category)
		}
	} else {
		m.bookmarks = incoming
		m.categories = nil
		for _, c := range rec.Categories {
			m.registerCategoryLocked(c)
		}
		for _, b := range incoming {
			m.registerCategoryLocked(b.Category)
		}
	}
	m.persistBookmarksLocked()
	count := len(m.bookmarks)
	m.mu.Unlock()

	m.logger.Info("bookmarks imported",
		logger.String("file", path),
		logger.Bool("merge", merge),
		logger.Int("count", count))
	m.bus.Publish(events.Event{Type: events.BookmarksChanged})
	return nil
}

// MergeSeed folds seeded quick locations and bookmarks into the catalog,
// deduplicating by path and never overwriting user edits. Returns the
// number of entries added.
func (m *Manager) MergeSeed(locs []*domain.QuickLocation, bookmarks []*domain.Bookmark) int {
	added := 0

	m.mu.Lock()
	knownPaths := make(map[string]bool, len(m.standard)+len(m.custom))
	for _, q := range m.standard {
		knownPaths[q.Path] = true
	}
	for _, q := range m.custom {
		knownPaths[q.Path] = true
	}
	quickAdded := 0
	for _, q := range locs {
		if q == nil || q.Path == "" || knownPaths[q.Path] || m.findQuickByNameLocked(q.Name) != nil {
			continue
		}
		cp := *q
		cp.Standard = false
		if cp.Description == "" {
			cp.Description = cp.DefaultDescription()
		}
		knownPaths[cp.Path] = true
		m.custom = append(m.custom, &cp)
		quickAdded++
	}
	if quickAdded > 0 {
		m.persistQuickLocked()
	}

	bookmarkPaths := make(map[string]bool, len(m.bookmarks))
	for _, b := range m.bookmarks {
		bookmarkPaths[b.Path] = true
	}
	bookmarksAdded := 0
	for _, b := range bookmarks {
		if b == nil || b.Path == "" || bookmarkPaths[b.Path] {
			continue
		}
		cp := *b
		if cp.ID == "" {
			cp.ID = uuid.New().String()
		}
		if cp.Created.IsZero() {
			cp.Created = time.Now()
		}
		bookmarkPaths[cp.Path] = true
		m.bookmarks = append(m.bookmarks, &cp)
		m.registerCategoryLocked(cp.Category)
		bookmarksAdded++
	}
	if bookmarksAdded > 0 {
		m.persistBookmarksLocked()
	}
	added = quickAdded + bookmarksAdded
	m.mu.Unlock()

	if quickAdded > 0 {
		m.bus.Publish(events.Event{Type: events.QuickLocationsChanged})
	}
	if bookmarksAdded > 0 {
		m.bus.Publish(events.Event{Type: events.BookmarksChanged})
	}
	return added
}
