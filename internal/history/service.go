package history

import (
	"sync"
	"time"

	"github.com/MrSnakeDoc/waypoint/internal/domain"
	"github.com/MrSnakeDoc/waypoint/internal/events"
	"github.com/MrSnakeDoc/waypoint/internal/logger"
	"github.com/MrSnakeDoc/waypoint/internal/store/file"
)

const (
	// DefaultHistoryMax bounds each of the back/forward deques.
	DefaultHistoryMax = 50
	// DefaultRecentMax bounds the recent-locations list.
	DefaultRecentMax = 100
	// DefaultRecentMaxAge is the cutoff applied to recents on load.
	DefaultRecentMaxAge = 30 * 24 * time.Hour
)

// Options tune the capacity bounds of a Service. Zero values fall back to
// the defaults above.
type Options struct {
	HistoryMax   int
	RecentMax    int
	RecentMaxAge time.Duration
}

// Service owns the back/forward history deques, the current path and the
// recency-ranked recent-locations list. State is persisted to JSON on
// every mutation; persistence failures are logged and non-fatal, the
// in-memory state stays authoritative for the session.
type Service struct {
	mu sync.Mutex

	// back holds previously visited paths, oldest first: the most
	// recently pushed entry is at the end. forward holds the next-up
	// path at the front. The current path is never kept inside either.
	back    []string
	forward []string
	current string

	// recents is ordered most-recent-first, at most one entry per path.
	recents []*domain.RecentLocation

	historyMax   int
	recentMax    int
	recentMaxAge time.Duration

	store  *file.Store
	bus    *events.Bus
	logger logger.Logger
}

// New loads persisted state and returns a ready service. A missing or
// corrupt state file leaves the service at defaults.
func New(store *file.Store, bus *events.Bus, log logger.Logger, opts Options) *Service {
	if opts.HistoryMax <= 0 {
		opts.HistoryMax = DefaultHistoryMax
	}
	if opts.RecentMax <= 0 {
		opts.RecentMax = DefaultRecentMax
	}
	if opts.RecentMaxAge <= 0 {
		opts.RecentMaxAge = DefaultRecentMaxAge
	}

	s := &Service{
		historyMax:   opts.HistoryMax,
		recentMax:    opts.RecentMax,
		recentMaxAge: opts.RecentMaxAge,
		store:        store,
		bus:          bus,
		logger:       log,
	}
	s.load()
	return s
}

func (s *Service) load() {
	back, forward, current := s.store.LoadHistory()
	s.back = trimFront(back, s.historyMax)
	s.forward = trimTail(forward, s.historyMax)
	s.current = current

	cutoff := time.Now().Add(-s.recentMaxAge)
	loaded := s.store.LoadRecents()
	recents := make([]*domain.RecentLocation, 0, len(loaded))
	for _, r := range loaded {
		if r.LastVisited.Before(cutoff) {
			continue
		}
		recents = append(recents, r)
	}
	s.recents = trimRecents(recents, s.recentMax)

	s.logger.Debug("navigation history loaded",
		logger.Int("back", len(s.back)),
		logger.Int("forward", len(s.forward)),
		logger.Int("recents", len(s.recents)))
}

// AddToHistory records a navigation to path. The previous current path is
// pushed onto the back deque and the forward deque is cleared: branching
// navigation discards the abandoned forward branch irrevocably.
func (s *Service) AddToHistory(path string) {
	if path == "" {
		return
	}

	s.mu.Lock()
	if s.current != "" && s.current != path {
		s.back = trimFront(append(s.back, s.current), s.historyMax)
		s.forward = nil
	}
	s.current = path
	s.updateRecentLocked(path)
	s.persistHistoryLocked()
	s.persistRecentsLocked()
	s.mu.Unlock()

	s.bus.Publish(events.Event{Type: events.HistoryChanged, Path: path})
	s.bus.Publish(events.Event{Type: events.RecentsChanged, Path: path})
}

// CanGoBack reports whether the back deque is non-empty.
func (s *Service) CanGoBack() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.back) > 0
}

// CanGoForward reports whether the forward deque is non-empty.
func (s *Service) CanGoForward() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.forward) > 0
}

// GoBack moves the current path onto the forward deque and pops the most
// recently pushed back entry as the new current path. Returns the new
// current path, or "" and false when there is no back history.
func (s *Service) GoBack() (string, bool) {
	s.mu.Lock()
	if len(s.back) == 0 {
		s.mu.Unlock()
		return "", false
	}

	if s.current != "" {
		s.forward = trimTail(append([]string{s.current}, s.forward...), s.historyMax)
	}
	s.current = s.back[len(s.back)-1]
	s.back = s.back[:len(s.back)-1]
	target := s.current
	s.persistHistoryLocked()
	s.mu.Unlock()

	s.bus.Publish(events.Event{Type: events.HistoryChanged, Path: target})
	return target, true
}

// GoForward is the symmetric counterpart of GoBack.
func (s *Service) GoForward() (string, bool) {
	s.mu.Lock()
	if len(s.forward) == 0 {
		s.mu.Unlock()
		return "", false
	}

	if s.current != "" {
		s.back = trimFront(append(s.back, s.current), s.historyMax)
	}
	s.current = s.forward[0]
	s.forward = s.forward[1:]
	target := s.current
	s.persistHistoryLocked()
	s.mu.Unlock()

	s.bus.Publish(events.Event{Type: events.HistoryChanged, Path: target})
	return target, true
}

// CurrentPath returns the current path, or "" when none is set.
func (s *Service) CurrentPath() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// GetBackHistory returns up to limit back entries, most-recent-first.
// A non-positive limit returns the full view.
func (s *Service) GetBackHistory(limit int) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, 0, len(s.back))
	for i := len(s.back) - 1; i >= 0; i-- {
		out = append(out, s.back[i])
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out
}

// GetForwardHistory returns up to limit forward entries, next-up-first.
func (s *Service) GetForwardHistory(limit int) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.forward)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]string, n)
	copy(out, s.forward[:n])
	return out
}

// GetRecentLocations returns up to limit recent locations, most-recent-first.
func (s *Service) GetRecentLocations(limit int) []*domain.RecentLocation {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.recents)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]*domain.RecentLocation, n)
	for i := 0; i < n; i++ {
		cp := *s.recents[i]
		out[i] = &cp
	}
	return out
}

// ClearHistory empties both deques and the current path.
func (s *Service) ClearHistory() {
	s.mu.Lock()
	s.back = nil
	s.forward = nil
	s.current = ""
	s.persistHistoryLocked()
	s.mu.Unlock()

	s.bus.Publish(events.Event{Type: events.HistoryChanged})
}

// ClearRecentLocations empties the recent-locations list.
func (s *Service) ClearRecentLocations() {
	s.mu.Lock()
	s.recents = nil
	s.persistRecentsLocked()
	s.mu.Unlock()

	s.bus.Publish(events.Event{Type: events.RecentsChanged})
}

// RemoveFromRecentLocations drops the entry for path, if present.
func (s *Service) RemoveFromRecentLocations(path string) bool {
	s.mu.Lock()
	removed := false
	for i, r := range s.recents {
		if r.Path == path {
			s.recents = append(s.recents[:i], s.recents[i+1:]...)
			removed = true
			break
		}
	}
	if removed {
		s.persistRecentsLocked()
	}
	s.mu.Unlock()

	if removed {
		s.bus.Publish(events.Event{Type: events.RecentsChanged, Path: path})
	}
	return removed
}

// PruneRecents removes recent locations older than maxAge and returns the
// number of entries dropped.
func (s *Service) PruneRecents(maxAge time.Duration) int {
	cutoff := time.Now().Add(-maxAge)

	s.mu.Lock()
	kept := s.recents[:0]
	for _, r := range s.recents {
		if r.LastVisited.Before(cutoff) {
			continue
		}
		kept = append(kept, r)
	}
	dropped := len(s.recents) - len(kept)
	s.recents = kept
	if dropped > 0 {
		s.persistRecentsLocked()
	}
	s.mu.Unlock()

	if dropped > 0 {
		s.bus.Publish(events.Event{Type: events.RecentsChanged})
	}
	return dropped
}

// MergeVisits folds externally mirrored visit records into the recents
// list, adopting the higher visit count and the later timestamp. Entries
// older than the recency cutoff are ignored. Used by the startup redis sync.
func (s *Service) MergeVisits(visits []*domain.RecentLocation) int {
	cutoff := time.Now().Add(-s.recentMaxAge)
	merged := 0

	s.mu.Lock()
	for _, v := range visits {
		if v == nil || v.Path == "" || v.LastVisited.Before(cutoff) {
			continue
		}
		existing := s.findRecentLocked(v.Path)
		if existing == nil {
			cp := *v
			if cp.VisitCount < 1 {
				cp.VisitCount = 1
			}
			if cp.DisplayName == "" {
				cp.DisplayName = domain.DisplayNameFor(cp.Path)
			}
			s.recents = append(s.recents, &cp)
			merged++
			continue
		}
		changed := false
		if v.VisitCount > existing.VisitCount {
			existing.VisitCount = v.VisitCount
			changed = true
		}
		if v.LastVisited.After(existing.LastVisited) {
			existing.LastVisited = v.LastVisited
			changed = true
		}
		if changed {
			merged++
		}
	}
	if merged > 0 {
		s.sortRecentsLocked()
		s.recents = trimRecents(s.recents, s.recentMax)
		s.persistRecentsLocked()
	}
	s.mu.Unlock()

	if merged > 0 {
		s.bus.Publish(events.Event{Type: events.RecentsChanged})
	}
	return merged
}

// Counts returns the current deque and recents sizes. Used by /infra.
func (s *Service) Counts() (back, forward, recents int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.back), len(s.forward), len(s.recents)
}

// updateRecentLocked bumps the recency entry for path: an existing entry
// keeps its visit count (incremented), a new one starts at 1. The entry
// moves to the front and the list is trimmed to capacity.
func (s *Service) updateRecentLocked(path string) {
	now := time.Now()

	var entry *domain.RecentLocation
	for i, r := range s.recents {
		if r.Path == path {
			entry = r
			s.recents = append(s.recents[:i], s.recents[i+1:]...)
			break
		}
	}

	if entry != nil {
		entry.VisitCount++
		entry.LastVisited = now
	} else {
		entry = &domain.RecentLocation{
			Path:        path,
			LastVisited: now,
			VisitCount:  1,
			DisplayName: domain.DisplayNameFor(path),
		}
	}

	s.recents = trimRecents(append([]*domain.RecentLocation{entry}, s.recents...), s.recentMax)
}

func (s *Service) findRecentLocked(path string) *domain.RecentLocation {
	for _, r := range s.recents {
		if r.Path == path {
			return r
		}
	}
	return nil
}

func (s *Service) sortRecentsLocked() {
	// Insertion sort keeps the mostly-sorted list stable; sizes are small.
	for i := 1; i < len(s.recents); i++ {
		for j := i; j > 0 && s.recents[j].LastVisited.After(s.recents[j-1].LastVisited); j-- {
			s.recents[j], s.recents[j-1] = s.recents[j-1], s.recents[j]
		}
	}
}

func (s *Service) persistHistoryLocked() {
	if err := s.store.SaveHistory(s.back, s.forward, s.current); err != nil {
		s.logger.Warn("failed to persist navigation history",
			logger.Error(err))
	}
}

func (s *Service) persistRecentsLocked() {
	if err := s.store.SaveRecents(s.recents); err != nil {
		s.logger.Warn("failed to persist recent locations",
			logger.Error(err))
	}
}

// trimFront drops the oldest entries once the slice exceeds max.
func trimFront(xs []string, max int) []string {
	if len(xs) > max {
		return append([]string(nil), xs[len(xs)-max:]...)
	}
	return xs
}

// trimTail drops the farthest-out entries once the slice exceeds max.
func trimTail(xs []string, max int) []string {
	if len(xs) > max {
		return append([]string(nil), xs[:max]...)
	}
	return xs
}

func trimRecents(xs []*domain.RecentLocation, max int) []*domain.RecentLocation {
	if len(xs) > max {
		return xs[:max]
	}
	return xs
}
