package locations

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDetectProjectRoot(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, ".git"), 0o755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	nested := filepath.Join(root, "internal", "deep", "pkg")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}

	if got := DetectProjectRoot(nested); got != root {
		t.Errorf("DetectProjectRoot(%q) = %q, want %q", nested, got, root)
	}
}

func TestDetectProjectRootPrefersNearestMarker(t *testing.T) {
	outer := t.TempDir()
	if err := os.WriteFile(filepath.Join(outer, "Makefile"), nil, 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	inner := filepath.Join(outer, "sub")
	if err := os.Mkdir(inner, 0o755); err != nil {
		t.Fatalf("Mkdir failed: %v", err)
	}
	if err := os.WriteFile(filepath.Join(inner, "go.mod"), nil, 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	if got := DetectProjectRoot(inner); got != inner {
		t.Errorf("DetectProjectRoot(%q) = %q, want the nearest marker dir %q", inner, got, inner)
	}
}

func TestDetectProjectRootFallsBackToStart(t *testing.T) {
	// A bare temp dir has no markers anywhere up to / on most systems,
	// but ancestors may coincidentally contain one; create an isolated
	// subtree and only assert the fallback when none was found above it.
	start := filepath.Join(t.TempDir(), "empty")
	if err := os.MkdirAll(start, 0o755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}

	got := DetectProjectRoot(start)
	if got != start && !hasMarker(got) {
		t.Errorf("DetectProjectRoot(%q) = %q, which holds no marker", start, got)
	}
}

func TestGetProjectRoot(t *testing.T) {
	m, _ := newTestManager(t)

	root := m.GetProjectRoot()
	if root == "" {
		t.Fatal("GetProjectRoot() returned empty with a valid working directory")
	}
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd failed: %v", err)
	}
	if root != wd && !hasMarker(root) {
		t.Errorf("GetProjectRoot() = %q, which holds no marker and is not the working dir", root)
	}
}

func hasMarker(dir string) bool {
	for _, marker := range projectMarkers {
		if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
			return true
		}
	}
	return false
}
