package locations

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/MrSnakeDoc/waypoint/internal/domain"
)

// probeStandardLocations builds the standard quick-locations catalog from
// platform directories, keeping only entries whose path currently exists.
func probeStandardLocations() []*domain.QuickLocation {
	var candidates []*domain.QuickLocation

	home, err := os.UserHomeDir()
	if err == nil {
		candidates = append(candidates,
			quick("Home", "home", home),
			quick("Root", "drive", rootPath()),
			quick("Documents", "documents", filepath.Join(home, "Documents")),
			quick("Downloads", "downloads", filepath.Join(home, "Downloads")),
			quick("Desktop", "desktop", filepath.Join(home, "Desktop")),
		)
	} else {
		candidates = append(candidates, quick("Root", "drive", rootPath()))
	}

	if apps := applicationsDir(); apps != "" {
		candidates = append(candidates, quick("Applications", "apps", apps))
	}

	if wd, err := os.Getwd(); err == nil {
		if root := DetectProjectRoot(wd); root != "" {
			candidates = append(candidates, quick("Project", "project", root))
		}
	}

	out := make([]*domain.QuickLocation, 0, len(candidates))
	seen := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		if c.Path == "" || seen[c.Path] || !domain.PathExists(c.Path) {
			continue
		}
		seen[c.Path] = true
		out = append(out, c)
	}
	return out
}

func quick(name, icon, path string) *domain.QuickLocation {
	q := &domain.QuickLocation{
		Name:     name,
		Icon:     icon,
		Path:     path,
		Standard: true,
	}
	q.Description = q.DefaultDescription()
	return q
}

func rootPath() string {
	if runtime.GOOS == "windows" {
		if d := os.Getenv("SystemDrive"); d != "" {
			return d + string(filepath.Separator)
		}
		return `C:\`
	}
	return "/"
}

func applicationsDir() string {
	switch runtime.GOOS {
	case "darwin":
		return "/Applications"
	case "windows":
		return os.Getenv("ProgramFiles")
	default:
		return ""
	}
}
