package locations

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MrSnakeDoc/waypoint/internal/domain"
	"github.com/MrSnakeDoc/waypoint/internal/events"
	"github.com/MrSnakeDoc/waypoint/internal/logger"
	"github.com/MrSnakeDoc/waypoint/internal/store/file"
)

// Manager owns the quick-locations catalog and the user bookmark list,
// each persisted independently. Paths are validated at mutation time:
// adding or updating an entry whose target does not exist is a
// caller-visible error, not a transient failure.
type Manager struct {
	mu sync.Mutex

	standard []*domain.QuickLocation
	custom   []*domain.QuickLocation

	bookmarks  []*domain.Bookmark
	categories []string

	store  *file.Store
	bus    *events.Bus
	logger logger.Logger
}

// New probes the standard platform locations, loads persisted custom
// locations and bookmarks, and returns a ready manager.
func New(store *file.Store, bus *events.Bus, log logger.Logger) *Manager {
	m := &Manager{
		store:  store,
		bus:    bus,
		logger: log,
	}

	m.standard = probeStandardLocations()
	m.custom = store.LoadQuickLocations()

	bookmarks, categories := store.LoadBookmarks()
	m.bookmarks = bookmarks
	m.categories = categories
	for _, b := range m.bookmarks {
		m.registerCategoryLocked(b.Category)
	}

	log.Info("location manager initialized",
		logger.Int("standard", len(m.standard)),
		logger.Int("custom", len(m.custom)),
		logger.Int("bookmarks", len(m.bookmarks)))

	return m
}

// GetQuickLocations returns the full catalog, standard entries first.
func (m *Manager) GetQuickLocations() []*domain.QuickLocation {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]*domain.QuickLocation, 0, len(m.standard)+len(m.custom))
	for _, q := range m.standard {
		cp := *q
		out = append(out, &cp)
	}
	for _, q := range m.custom {
		cp := *q
		out = append(out, &cp)
	}
	return out
}

// AddQuickLocation adds a custom quick location. The path must exist.
func (m *Manager) AddQuickLocation(name, icon, path, description string) (*domain.QuickLocation, error) {
	resolved, err := validateTarget(path)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	if m.findQuickByNameLocked(name) != nil {
		m.mu.Unlock()
		return nil, fmt.Errorf("quick location %q already exists", name)
	}

	loc := &domain.QuickLocation{
		Name:        name,
		Icon:        icon,
		Path:        resolved,
		Description: description,
		Standard:    false,
	}
	if loc.Description == "" {
		loc.Description = loc.DefaultDescription()
	}
	m.custom = append(m.custom, loc)
	m.persistQuickLocked()
	cp := *loc
	m.mu.Unlock()

	m.bus.Publish(events.Event{Type: events.QuickLocationsChanged, Path: resolved})
	return &cp, nil
}

// RemoveQuickLocation removes the quick location with the given path.
// Removed standard entries reappear on restart since they are re-probed.
func (m *Manager) RemoveQuickLocation(path string) bool {
	resolved, err := domain.ResolvePath(path)
	if err != nil {
		resolved = path
	}

	m.mu.Lock()
	removed := false
	for i, q := range m.custom {
		if q.Path == resolved {
			m.custom = append(m.custom[:i], m.custom[i+1:]...)
			removed = true
			break
		}
	}
	if removed {
		m.persistQuickLocked()
	} else {
		for i, q := range m.standard {
			if q.Path == resolved {
				m.standard = append(m.standard[:i], m.standard[i+1:]...)
				removed = true
				break
			}
		}
	}
	m.mu.Unlock()

	if removed {
		m.bus.Publish(events.Event{Type: events.QuickLocationsChanged, Path: resolved})
	}
	return removed
}

// GetBookmarks returns a copy of the bookmark list.
func (m *Manager) GetBookmarks() []*domain.Bookmark {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]*domain.Bookmark, len(m.bookmarks))
	for i, b := range m.bookmarks {
		cp := *b
		out[i] = &cp
	}
	return out
}

// GetCategories returns the known bookmark categories.
func (m *Manager) GetCategories() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.categories...)
}

// AddBookmark creates and persists a bookmark. The path must exist.
func (m *Manager) AddBookmark(name, path, icon, category string) (*domain.Bookmark, error) {
	resolved, err := validateTarget(path)
	if err != nil {
		return nil, err
	}

	if icon == "" {
		icon = domain.DefaultBookmarkIcon
	}
	if category == "" {
		category = domain.DefaultBookmarkCategory
	}

	bookmark := &domain.Bookmark{
		ID:       uuid.New().String(),
		Name:     name,
		Path:     resolved,
		Icon:     icon,
		Category: category,
		Created:  time.Now(),
	}

	m.mu.Lock()
	m.bookmarks = append(m.bookmarks, bookmark)
	m.registerCategoryLocked(category)
	m.persistBookmarksLocked()
	cp := *bookmark
	m.mu.Unlock()

	m.logger.Info("bookmark added",
		logger.String("id", bookmark.ID),
		logger.String("path", resolved))
	m.bus.Publish(events.Event{Type: events.BookmarksChanged, Path: resolved})
	return &cp, nil
}

// RemoveBookmark deletes a bookmark by id. Returns false when not found.
func (m *Manager) RemoveBookmark(id string) bool {
	m.mu.Lock()
	removed := false
	var path string
	for i, b := range m.bookmarks {
		if b.ID == id {
			path = b.Path
			m.bookmarks = append(m.bookmarks[:i], m.bookmarks[i+1:]...)
			removed = true
			break
		}
	}
	if removed {
		m.persistBookmarksLocked()
	}
	m.mu.Unlock()

	if removed {
		m.bus.Publish(events.Event{Type: events.BookmarksChanged, Path: path})
	}
	return removed
}

// BookmarkUpdate describes a partial bookmark update. Nil fields are
// left untouched.
type BookmarkUpdate struct {
	Name     *string
	Path     *string
	Icon     *string
	Category *string
}

// UpdateBookmark applies a partial update by id. A provided path is
// re-validated for existence and re-resolved. Returns false when the id
// is unknown.
func (m *Manager) UpdateBookmark(id string, upd BookmarkUpdate) (bool, error) {
	var resolved string
	if upd.Path != nil {
		var err error
		resolved, err = validateTarget(*upd.Path)
		if err != nil {
			return false, err
		}
	}

	m.mu.Lock()
	var target *domain.Bookmark
	for _, b := range m.bookmarks {
		if b.ID == id {
			target = b
			break
		}
	}
	if target == nil {
		m.mu.Unlock()
		return false, nil
	}

	if upd.Name != nil {
		target.Name = *upd.Name
	}
	if upd.Path != nil {
		target.Path = resolved
	}
	if upd.Icon != nil {
		target.Icon = *upd.Icon
	}
	if upd.Category != nil && *upd.Category != "" {
		target.Category = *upd.Category
		m.registerCategoryLocked(*upd.Category)
	}
	m.persistBookmarksLocked()
	path := target.Path
	m.mu.Unlock()

	m.bus.Publish(events.Event{Type: events.BookmarksChanged, Path: path})
	return true, nil
}

// FindBookmarkByPath resolves the input and linearly scans for an exact
// match. Returns nil when none exists.
func (m *Manager) FindBookmarkByPath(path string) *domain.Bookmark {
	resolved, err := domain.ResolvePath(path)
	if err != nil {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.bookmarks {
		if b.Path == resolved {
			cp := *b
			return &cp
		}
	}
	return nil
}

// GetProjectRoot walks up from the working directory looking for project
// markers. Falls back to the working directory itself.
func (m *Manager) GetProjectRoot() string {
	wd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return DetectProjectRoot(wd)
}

// NoteVisit is a delegation point for per-location visit bookkeeping.
// Recency tracking lives in the history service; this hook is reserved
// for future enhancement and intentionally does nothing.
func (m *Manager) NoteVisit(path string) {
	_ = path
}

// Counts returns catalog sizes. Used by /infra.
func (m *Manager) Counts() (quick, bookmarks int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.standard) + len(m.custom), len(m.bookmarks)
}

func (m *Manager) findQuickByNameLocked(name string) *domain.QuickLocation {
	for _, q := range m.standard {
		if q.Name == name {
			return q
		}
	}
	for _, q := range m.custom {
		if q.Name == name {
			return q
		}
	}
	return nil
}

func (m *Manager) registerCategoryLocked(category string) {
	if category == "" {
		return
	}
	for _, c := range m.categories {
		if c == category {
			return
		}
	}
	m.categories = append(m.categories, category)
}

func (m *Manager) persistBookmarksLocked() {
	if err := m.store.SaveBookmarks(m.bookmarks, m.categories); err != nil {
		m.logger.Warn("failed to persist bookmarks",
			logger.Error(err))
	}
}

func (m *Manager) persistQuickLocked() {
	if err := m.store.SaveQuickLocations(m.custom); err != nil {
		m.logger.Warn("failed to persist quick locations",
			logger.Error(err))
	}
}

// validateTarget resolves a path and requires it to exist.
func validateTarget(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("invalid path: empty")
	}
	resolved, err := domain.ResolvePath(path)
	if err != nil {
		return "", fmt.Errorf("invalid path %q: %w", path, err)
	}
	if !domain.PathExists(resolved) {
		return "", fmt.Errorf("invalid path %q: does not exist", path)
	}
	return resolved, nil
}
