package seed

import (
	"testing"

	"github.com/MrSnakeDoc/waypoint/internal/domain"
	"github.com/MrSnakeDoc/waypoint/internal/logger"
)

func TestMapLocationsSkipsMissingPaths(t *testing.T) {
	existing := t.TempDir()
	config := &Config{
		QuickLocations: []LocationEntry{
			{Name: "Real", Path: existing},
			{Name: "Ghost", Path: "/definitely/not/here"},
			{Name: "", Path: existing}, // no name
		},
	}

	out := NewMapper(logger.Nop()).MapLocations(config)
	if len(out) != 1 {
		t.Fatalf("MapLocations() returned %v entries, want 1", len(out))
	}
	if out[0].Name != "Real" {
		t.Errorf("MapLocations()[0].Name = %q, want Real", out[0].Name)
	}
	if out[0].Icon != "folder" {
		t.Errorf("MapLocations()[0].Icon = %q, want the folder default", out[0].Icon)
	}
	if out[0].Description == "" {
		t.Error("MapLocations() left Description empty, want default")
	}
}

func TestMapBookmarksDefaults(t *testing.T) {
	existing := t.TempDir()
	config := &Config{
		Bookmarks: []BookmarkEntry{
			{Name: "Work", Path: existing},
			{Name: "Ghost", Path: "/definitely/not/here"},
		},
	}

	out := NewMapper(logger.Nop()).MapBookmarks(config)
	if len(out) != 1 {
		t.Fatalf("MapBookmarks() returned %v entries, want 1", len(out))
	}
	bm := out[0]
	if bm.ID != "" {
		t.Errorf("MapBookmarks() assigned id %q, ids belong to the manager", bm.ID)
	}
	if bm.Icon != domain.DefaultBookmarkIcon || bm.Category != domain.DefaultBookmarkCategory {
		t.Errorf("MapBookmarks() defaults not applied: %+v", bm)
	}
	if bm.Created.IsZero() {
		t.Error("MapBookmarks() left Created zero")
	}
}
