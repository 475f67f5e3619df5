package locations

import (
	"os"
	"path/filepath"
)

// projectMarkers are files or directories whose presence identifies the
// root of a project checkout: version control dirs, build manifests and
// IDE config dirs.
var projectMarkers = []string{
	".git",
	".hg",
	".svn",
	"go.mod",
	"package.json",
	"pyproject.toml",
	"setup.py",
	"Cargo.toml",
	"Makefile",
	".idea",
	".vscode",
}

// DetectProjectRoot walks upward from start through every ancestor and
// returns the first directory containing a project marker. When no marker
// is found all the way to the filesystem root, start itself is returned.
// Best-effort heuristic, not exact.
func DetectProjectRoot(start string) string {
	dir := start
	for {
		for _, marker := range projectMarkers {
			if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
				return dir
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return start
		}
		dir = parent
	}
}
