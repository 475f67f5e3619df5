package navigator

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/MrSnakeDoc/waypoint/internal/domain"
	"github.com/MrSnakeDoc/waypoint/internal/events"
	"github.com/MrSnakeDoc/waypoint/internal/history"
	"github.com/MrSnakeDoc/waypoint/internal/locations"
	"github.com/MrSnakeDoc/waypoint/internal/logger"
	"github.com/MrSnakeDoc/waypoint/internal/store/file"
)

type recordingMirror struct {
	visits []string
}

func (r *recordingMirror) RecordVisit(ctx context.Context, path string) error {
	r.visits = append(r.visits, path)
	return nil
}

type fixture struct {
	nav     *Service
	history *history.Service
	bus     *events.Bus
	mirror  *recordingMirror
}

func newFixture(t *testing.T, opts Options) *fixture {
	t.Helper()
	store, err := file.New(t.TempDir(), logger.Nop())
	if err != nil {
		t.Fatalf("file.New() failed: %v", err)
	}
	bus := events.NewBus(logger.Nop())
	hist := history.New(store, bus, logger.Nop(), history.Options{})
	locs := locations.New(store, bus, logger.Nop())
	mirror := &recordingMirror{}
	return &fixture{
		nav:     New(hist, locs, mirror, bus, logger.Nop(), opts),
		history: hist,
		bus:     bus,
		mirror:  mirror,
	}
}

// resolved mirrors what the navigator stores: temp dirs may sit behind
// symlinks (macOS /tmp), so compare against the canonical form.
func resolved(t *testing.T, path string) string {
	t.Helper()
	r, err := domain.ResolvePath(path)
	if err != nil {
		t.Fatalf("ResolvePath(%q) failed: %v", path, err)
	}
	return r
}

func TestNavigateToDirectory(t *testing.T) {
	f := newFixture(t, Options{ValidationEnabled: true})
	dir := t.TempDir()

	var completed []string
	f.bus.Subscribe(events.NavigationCompleted, func(e events.Event) {
		completed = append(completed, e.Path)
	})

	if !f.nav.NavigateTo(dir, true) {
		t.Fatalf("NavigateTo(%q) = false", dir)
	}

	want := resolved(t, dir)
	if f.nav.CurrentPath() != want {
		t.Errorf("CurrentPath() = %q, want %q", f.nav.CurrentPath(), want)
	}
	if f.history.CurrentPath() != want {
		t.Errorf("history.CurrentPath() = %q, want %q", f.history.CurrentPath(), want)
	}
	if len(completed) != 1 || completed[0] != want {
		t.Errorf("completion events = %v, want one for %q", completed, want)
	}
	if len(f.mirror.visits) != 1 || f.mirror.visits[0] != want {
		t.Errorf("mirror visits = %v, want one for %q", f.mirror.visits, want)
	}
}

func TestNavigateToFile(t *testing.T) {
	f := newFixture(t, Options{ValidationEnabled: true})

	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	if !f.nav.NavigateTo(path, true) {
		t.Errorf("NavigateTo() = false for a regular file")
	}
}

func TestNavigateToIdempotent(t *testing.T) {
	f := newFixture(t, Options{ValidationEnabled: true})
	dir := t.TempDir()

	completions := 0
	f.bus.Subscribe(events.NavigationCompleted, func(e events.Event) { completions++ })

	if !f.nav.NavigateTo(dir, true) {
		t.Fatal("first NavigateTo() failed")
	}
	if !f.nav.NavigateTo(dir, true) {
		t.Fatal("re-navigation to the current path must succeed")
	}

	if completions != 1 {
		t.Errorf("completion events = %v, re-navigation must not re-emit", completions)
	}
	back, _, _ := f.history.Counts()
	if back != 0 {
		t.Errorf("back deque has %v entries, re-navigation must not record", back)
	}
}

func TestNavigateToInvalidPath(t *testing.T) {
	f := newFixture(t, Options{ValidationEnabled: true})
	missing := filepath.Join(t.TempDir(), "nope")

	var failures []string
	f.bus.Subscribe(events.NavigationFailed, func(e events.Event) {
		failures = append(failures, e.Reason)
	})

	if f.nav.NavigateTo(missing, true) {
		t.Fatal("NavigateTo() = true for a missing path")
	}
	if len(failures) != 1 || failures[0] != "Invalid path: "+missing {
		t.Errorf("failure reasons = %v, want [Invalid path: %s]", failures, missing)
	}
	if f.nav.CurrentPath() != "" {
		t.Errorf("CurrentPath() = %q after a failed navigation, want empty", f.nav.CurrentPath())
	}
	if f.nav.State().IsNavigating {
		t.Error("IsNavigating stuck true after a failure")
	}
}

func TestNavigateToEmptyPath(t *testing.T) {
	f := newFixture(t, Options{ValidationEnabled: true})

	failures := 0
	f.bus.Subscribe(events.NavigationFailed, func(e events.Event) { failures++ })

	if f.nav.NavigateTo("", true) || f.nav.NavigateTo("   ", true) {
		t.Error("NavigateTo() accepted an empty path")
	}
	// Empty input is a silent no-op, not a failure event.
	if failures != 0 {
		t.Errorf("empty path published %v failure events, want 0", failures)
	}
}

func TestValidationDisabledStillChecksReachability(t *testing.T) {
	f := newFixture(t, Options{ValidationEnabled: false})
	missing := filepath.Join(t.TempDir(), "nope")

	var failures []string
	f.bus.Subscribe(events.NavigationFailed, func(e events.Event) {
		failures = append(failures, e.Reason)
	})

	// The existence pre-check is skipped but the target must still be
	// reachable when the navigation is performed.
	if f.nav.NavigateTo(missing, true) {
		t.Fatal("NavigateTo() = true for an unreachable path")
	}
	if len(failures) != 1 {
		t.Fatalf("failure events = %v, want 1", len(failures))
	}
}

func TestBackForwardNavigation(t *testing.T) {
	f := newFixture(t, Options{ValidationEnabled: true})
	dirA := t.TempDir()
	dirB := t.TempDir()

	if !f.nav.NavigateTo(dirA, true) || !f.nav.NavigateTo(dirB, true) {
		t.Fatal("setup navigations failed")
	}

	if !f.nav.NavigateBack() {
		t.Fatal("NavigateBack() = false")
	}
	if f.nav.CurrentPath() != resolved(t, dirA) {
		t.Errorf("CurrentPath() after back = %q, want %q", f.nav.CurrentPath(), resolved(t, dirA))
	}

	if !f.nav.NavigateForward() {
		t.Fatal("NavigateForward() = false")
	}
	if f.nav.CurrentPath() != resolved(t, dirB) {
		t.Errorf("CurrentPath() after forward = %q, want %q", f.nav.CurrentPath(), resolved(t, dirB))
	}

	// Back/forward re-navigation must not grow the back deque.
	back, _, _ := f.history.Counts()
	if back != 1 {
		t.Errorf("back deque has %v entries after a back/forward cycle, want 1", back)
	}

	if f.nav.NavigateForward() {
		t.Error("NavigateForward() succeeded with empty forward history")
	}
}

func TestNavigateBackWithoutHistory(t *testing.T) {
	f := newFixture(t, Options{ValidationEnabled: true})

	if f.nav.NavigateBack() {
		t.Error("NavigateBack() = true with no history")
	}
}

func TestNavigateUp(t *testing.T) {
	f := newFixture(t, Options{ValidationEnabled: true})

	parent := t.TempDir()
	child := filepath.Join(parent, "sub")
	if err := os.Mkdir(child, 0o755); err != nil {
		t.Fatalf("Mkdir failed: %v", err)
	}

	if !f.nav.NavigateTo(child, true) {
		t.Fatal("NavigateTo(child) failed")
	}
	if !f.nav.NavigateUp() {
		t.Fatal("NavigateUp() = false")
	}
	if f.nav.CurrentPath() != resolved(t, parent) {
		t.Errorf("CurrentPath() after up = %q, want %q", f.nav.CurrentPath(), resolved(t, parent))
	}
}

func TestNavigateUpAtRoot(t *testing.T) {
	f := newFixture(t, Options{ValidationEnabled: true})

	if f.nav.NavigateUp() {
		t.Error("NavigateUp() = true with no current path")
	}

	if !f.nav.NavigateTo("/", true) {
		t.Fatal("NavigateTo(/) failed")
	}
	if f.nav.NavigateUp() {
		t.Error("NavigateUp() = true at the filesystem root")
	}
}

func TestNavigateHome(t *testing.T) {
	f := newFixture(t, Options{ValidationEnabled: true})

	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}

	if !f.nav.NavigateHome() {
		t.Fatal("NavigateHome() = false")
	}
	if f.nav.CurrentPath() != resolved(t, home) {
		t.Errorf("CurrentPath() = %q, want %q", f.nav.CurrentPath(), resolved(t, home))
	}
}

func TestRefreshCurrentLocation(t *testing.T) {
	f := newFixture(t, Options{ValidationEnabled: true})

	if f.nav.RefreshCurrentLocation() {
		t.Error("RefreshCurrentLocation() = true with no current path")
	}

	dir := t.TempDir()
	if !f.nav.NavigateTo(dir, true) {
		t.Fatal("NavigateTo() failed")
	}

	var requested, completed int
	f.bus.Subscribe(events.NavigationRequested, func(e events.Event) { requested++ })
	f.bus.Subscribe(events.NavigationCompleted, func(e events.Event) { completed++ })

	if !f.nav.RefreshCurrentLocation() {
		t.Fatal("RefreshCurrentLocation() = false with a current path")
	}
	if requested != 1 || completed != 1 {
		t.Errorf("refresh emitted (%v requested, %v completed), want (1, 1)", requested, completed)
	}

	// Refresh does not touch history.
	back, forward, _ := f.history.Counts()
	if back != 0 || forward != 0 {
		t.Errorf("refresh modified history: back=%v forward=%v", back, forward)
	}
}

func TestStateSnapshot(t *testing.T) {
	f := newFixture(t, Options{ValidationEnabled: true, AutoRefreshEnabled: true})
	dirA := t.TempDir()
	dirB := t.TempDir()
	dirC := t.TempDir()

	st := f.nav.State()
	if st.CanGoBack || st.CanGoForward || st.CurrentPath != "" {
		t.Errorf("initial state = %+v, want empty", st)
	}
	if !st.AutoRefreshEnabled || !st.ValidationEnabled {
		t.Errorf("initial flags = %+v, want both enabled", st)
	}

	// Three navigations, one step back: dirA stays in the back deque
	// while dirC sits in the forward deque.
	f.nav.NavigateTo(dirA, true)
	f.nav.NavigateTo(dirB, true)
	f.nav.NavigateTo(dirC, true)
	f.nav.NavigateBack()

	st = f.nav.State()
	if !st.CanGoBack {
		t.Error("CanGoBack = false with back history available")
	}
	if !st.CanGoForward {
		t.Error("CanGoForward = false with forward history available")
	}
	if st.IsNavigating {
		t.Error("IsNavigating = true while idle")
	}

	// A second back step reaches the first visited path and drains the
	// back deque entirely.
	f.nav.NavigateBack()
	st = f.nav.State()
	if st.CanGoBack {
		t.Error("CanGoBack = true at the oldest visited path")
	}
	if !st.CanGoForward {
		t.Error("CanGoForward = false after stepping back twice")
	}

	f.nav.SetAutoRefreshEnabled(false)
	f.nav.SetValidationEnabled(false)
	st = f.nav.State()
	if st.AutoRefreshEnabled || st.ValidationEnabled {
		t.Errorf("flags after toggling off = %+v", st)
	}
}

func TestStateChangePublished(t *testing.T) {
	f := newFixture(t, Options{})

	var states []*domain.NavigationState
	f.bus.Subscribe(events.NavigationStateChanged, func(e events.Event) {
		states = append(states, e.State)
	})

	f.nav.SetAutoRefreshEnabled(true)

	if len(states) != 1 || states[0] == nil || !states[0].AutoRefreshEnabled {
		t.Errorf("state events = %+v, want one with AutoRefreshEnabled", states)
	}
}

func TestNavigatorWithoutHistoryService(t *testing.T) {
	bus := events.NewBus(logger.Nop())
	nav := New(nil, nil, nil, bus, logger.Nop(), Options{ValidationEnabled: true})

	dir := t.TempDir()
	if !nav.NavigateTo(dir, true) {
		t.Error("NavigateTo() = false without a history service; navigation itself must still work")
	}
	if nav.NavigateBack() {
		t.Error("NavigateBack() = true without a history service")
	}
	if nav.NavigateForward() {
		t.Error("NavigateForward() = true without a history service")
	}
}

func TestCurrentPathRestoredFromHistory(t *testing.T) {
	store, err := file.New(t.TempDir(), logger.Nop())
	if err != nil {
		t.Fatalf("file.New() failed: %v", err)
	}
	bus := events.NewBus(logger.Nop())
	hist := history.New(store, bus, logger.Nop(), history.Options{})
	hist.AddToHistory("/somewhere")

	nav := New(hist, nil, nil, bus, logger.Nop(), Options{})
	if nav.CurrentPath() != "/somewhere" {
		t.Errorf("CurrentPath() = %q, want the restored /somewhere", nav.CurrentPath())
	}
}
