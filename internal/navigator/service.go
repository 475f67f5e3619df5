package navigator

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/MrSnakeDoc/waypoint/internal/domain"
	"github.com/MrSnakeDoc/waypoint/internal/events"
	"github.com/MrSnakeDoc/waypoint/internal/history"
	"github.com/MrSnakeDoc/waypoint/internal/locations"
	"github.com/MrSnakeDoc/waypoint/internal/logger"
)

// VisitMirror receives best-effort visit notifications, typically backed
// by the optional redis store.
type VisitMirror interface {
	RecordVisit(ctx context.Context, path string) error
}

// Options set the initial toggle flags.
type Options struct {
	ValidationEnabled  bool
	AutoRefreshEnabled bool
}

// Service is the single navigation entry point: it validates and resolves
// a target, performs the navigation, and records the transition into the
// injected history service and location manager. It owns no persisted
// state of its own. No failure here may escape to the caller as a panic
// or error: outcomes are booleans plus published events.
type Service struct {
	mu          sync.Mutex
	current     string
	navigating  bool
	autoRefresh bool
	validate    bool

	history   *history.Service
	locations *locations.Manager
	mirror    VisitMirror

	bus    *events.Bus
	logger logger.Logger
}

// New wires the service to its collaborators. The history service and
// location manager are injected, never constructed here; mirror may be
// nil. The current path is restored from the history service.
func New(hist *history.Service, locs *locations.Manager, mirror VisitMirror, bus *events.Bus, log logger.Logger, opts Options) *Service {
	s := &Service{
		history:     hist,
		locations:   locs,
		mirror:      mirror,
		bus:         bus,
		logger:      log,
		validate:    opts.ValidationEnabled,
		autoRefresh: opts.AutoRefreshEnabled,
	}
	if hist != nil {
		s.current = hist.CurrentPath()
	}
	return s
}

// NavigateTo validates, resolves and performs a navigation to path.
// With addToHistory false the transition is not recorded, which is how
// back/forward re-navigation avoids double-recording. Returns false on
// any failure; the failure reason is published as a navigation-failed
// event and the current path is left untouched.
func (s *Service) NavigateTo(path string, addToHistory bool) bool {
	path = strings.TrimSpace(path)
	if path == "" {
		s.logger.Debug("navigation skipped, empty path")
		return false
	}

	if s.validationEnabled() {
		candidate, err := domain.ExpandHome(path)
		if err != nil || !domain.PathExists(candidate) {
			s.fail(path, fmt.Sprintf("Invalid path: %s", path))
			return false
		}
	}

	resolved, err := domain.ResolvePath(path)
	if err != nil {
		s.fail(path, fmt.Sprintf("Could not resolve path: %s", path))
		return false
	}

	s.mu.Lock()
	if resolved == s.current {
		// Idempotent success: nothing re-performed, re-recorded or re-emitted.
		s.mu.Unlock()
		return true
	}
	s.navigating = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.navigating = false
		s.mu.Unlock()
	}()

	s.bus.Publish(events.Event{Type: events.NavigationRequested, Path: resolved})

	if err := s.perform(resolved); err != nil {
		s.fail(resolved, err.Error())
		return false
	}

	s.mu.Lock()
	s.current = resolved
	s.mu.Unlock()

	if addToHistory {
		if s.history != nil {
			s.history.AddToHistory(resolved)
		} else {
			s.logger.Warn("history service not configured, navigation not recorded",
				logger.String("path", resolved))
		}
	}
	if s.locations != nil {
		s.locations.NoteVisit(resolved)
	}
	s.mirrorVisit(resolved)

	s.bus.Publish(events.Event{Type: events.CurrentPathChanged, Path: resolved})
	s.bus.Publish(events.Event{Type: events.NavigationCompleted, Path: resolved})
	s.publishState()
	return true
}

// NavigateBack pops the history service's back deque and re-navigates to
// the popped path without re-recording.
func (s *Service) NavigateBack() bool {
	if s.history == nil {
		s.logger.Warn("cannot navigate back, history service not configured")
		return false
	}
	target, ok := s.history.GoBack()
	if !ok {
		return false
	}
	return s.NavigateTo(target, false)
}

// NavigateForward is the symmetric counterpart of NavigateBack.
func (s *Service) NavigateForward() bool {
	if s.history == nil {
		s.logger.Warn("cannot navigate forward, history service not configured")
		return false
	}
	target, ok := s.history.GoForward()
	if !ok {
		return false
	}
	return s.NavigateTo(target, false)
}

// NavigateUp navigates to the parent of the current path. Fails at the
// filesystem root, where a path is its own parent.
func (s *Service) NavigateUp() bool {
	current := s.CurrentPath()
	if current == "" {
		return false
	}
	parent := filepath.Dir(current)
	if parent == current {
		return false
	}
	return s.NavigateTo(parent, true)
}

// NavigateHome navigates to the platform home directory.
func (s *Service) NavigateHome() bool {
	home, err := os.UserHomeDir()
	if err != nil {
		s.fail("~", fmt.Sprintf("Could not resolve path: %v", err))
		return false
	}
	return s.NavigateTo(home, true)
}

// RefreshCurrentLocation re-emits requested/completed for the unchanged
// current path without re-validating or touching history. Pure UI hint.
func (s *Service) RefreshCurrentLocation() bool {
	current := s.CurrentPath()
	if current == "" {
		return false
	}
	s.bus.Publish(events.Event{Type: events.NavigationRequested, Path: current})
	s.bus.Publish(events.Event{Type: events.NavigationCompleted, Path: current})
	return true
}

// CurrentPath returns the current path, or "" when none is set.
func (s *Service) CurrentPath() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// SetAutoRefreshEnabled flips the auto-refresh flag.
func (s *Service) SetAutoRefreshEnabled(enabled bool) {
	s.mu.Lock()
	s.autoRefresh = enabled
	s.mu.Unlock()
	s.publishState()
}

// SetValidationEnabled allows callers to bypass existence checks, for
// paths expected to be created externally.
func (s *Service) SetValidationEnabled(enabled bool) {
	s.mu.Lock()
	s.validate = enabled
	s.mu.Unlock()
	s.publishState()
}

// State recomputes the aggregate navigation snapshot on demand.
func (s *Service) State() domain.NavigationState {
	s.mu.Lock()
	st := domain.NavigationState{
		CurrentPath:        s.current,
		IsNavigating:       s.navigating,
		AutoRefreshEnabled: s.autoRefresh,
		ValidationEnabled:  s.validate,
	}
	s.mu.Unlock()

	if s.history != nil {
		st.CanGoBack = s.history.CanGoBack()
		st.CanGoForward = s.history.CanGoForward()
	}
	return st
}

// perform checks that the resolved target is actually reachable: a
// directory must be listable (a permission error is a failure, not a
// panic), a file must be a regular file. Panics from unexpected
// filesystem conditions are converted to failures at this boundary.
func (s *Service) perform(resolved string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("Navigation error: %v", r)
		}
	}()

	info, statErr := os.Stat(resolved)
	if statErr != nil {
		return fmt.Errorf("Invalid path: %s", resolved)
	}

	if info.IsDir() {
		if _, readErr := os.ReadDir(resolved); readErr != nil {
			return fmt.Errorf("Could not access directory: %s", resolved)
		}
		return nil
	}

	if !info.Mode().IsRegular() {
		return fmt.Errorf("Invalid path: %s", resolved)
	}
	return nil
}

func (s *Service) mirrorVisit(path string) {
	if s.mirror == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.mirror.RecordVisit(ctx, path); err != nil {
		s.logger.Debug("failed to mirror visit",
			logger.String("path", path),
			logger.Error(err))
	}
}

func (s *Service) validationEnabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.validate
}

func (s *Service) fail(path, reason string) {
	s.logger.Warn("navigation failed",
		logger.String("path", path),
		logger.String("reason", reason))
	s.bus.Publish(events.Event{Type: events.NavigationFailed, Path: path, Reason: reason})
}

func (s *Service) publishState() {
	st := s.State()
	s.bus.Publish(events.Event{Type: events.NavigationStateChanged, State: &st})
}
