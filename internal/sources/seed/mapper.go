package seed

import (
	"time"

	"github.com/MrSnakeDoc/waypoint/internal/domain"
	"github.com/MrSnakeDoc/waypoint/internal/logger"
)

// Mapper converts seed config entries to domain entities, dropping
// entries whose target path does not exist.
type Mapper struct {
	logger logger.Logger
}

// NewMapper creates a new mapper.
func NewMapper(log logger.Logger) *Mapper {
	return &Mapper{logger: log}
}

// MapLocations converts seed location entries to quick locations.
func (m *Mapper) MapLocations(config *Config) []*domain.QuickLocation {
	out := make([]*domain.QuickLocation, 0, len(config.QuickLocations))
	for _, e := range config.QuickLocations {
		if e.Name == "" || e.Path == "" {
			continue
		}
		resolved, err := domain.ResolvePath(e.Path)
		if err != nil || !domain.PathExists(resolved) {
			m.logger.Debug("skipping seed location, path unavailable",
				logger.String("name", e.Name),
				logger.String("path", e.Path))
			continue
		}
		loc := &domain.QuickLocation{
			Name:        e.Name,
			Icon:        e.Icon,
			Path:        resolved,
			Description: e.Description,
		}
		if loc.Icon == "" {
			loc.Icon = "folder"
		}
		if loc.Description == "" {
			loc.Description = loc.DefaultDescription()
		}
		out = append(out, loc)
	}
	return out
}

// MapBookmarks converts seed bookmark entries to bookmarks. Ids are left
// empty; the location manager assigns them on merge.
func (m *Mapper) MapBookmarks(config *Config) []*domain.Bookmark {
	now := time.Now()
	out := make([]*domain.Bookmark, 0, len(config.Bookmarks))
	for _, e := range config.Bookmarks {
		if e.Name == "" || e.Path == "" {
			continue
		}
		resolved, err := domain.ResolvePath(e.Path)
		if err != nil || !domain.PathExists(resolved) {
			m.logger.Debug("skipping seed bookmark, path unavailable",
				logger.String("name", e.Name),
				logger.String("path", e.Path))
			continue
		}
		bm := &domain.Bookmark{
			Name:     e.Name,
			Path:     resolved,
			Icon:     e.Icon,
			Category: e.Category,
			Created:  now,
		}
		if bm.Icon == "" {
			bm.Icon = domain.DefaultBookmarkIcon
		}
		if bm.Category == "" {
			bm.Category = domain.DefaultBookmarkCategory
		}
		out = append(out, bm)
	}
	return out
}
