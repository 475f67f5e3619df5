package seed

// Config is the root structure of the seed YAML file. The file is
// typically provisioned by dotfiles or config management and declares
// quick locations and bookmarks to merge into the catalog.
type Config struct {
	QuickLocations []LocationEntry `yaml:"quick_locations"`
	Bookmarks      []BookmarkEntry `yaml:"bookmarks"`
}

// LocationEntry declares a custom quick location.
type LocationEntry struct {
	Name        string `yaml:"name"`
	Icon        string `yaml:"icon,omitempty"`
	Path        string `yaml:"path"`
	Description string `yaml:"description,omitempty"`
}

// BookmarkEntry declares a bookmark.
type BookmarkEntry struct {
	Name     string `yaml:"name"`
	Path     string `yaml:"path"`
	Icon     string `yaml:"icon,omitempty"`
	Category string `yaml:"category,omitempty"`
}
