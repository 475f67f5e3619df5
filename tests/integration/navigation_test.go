package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/MrSnakeDoc/waypoint/internal/domain"
	"github.com/MrSnakeDoc/waypoint/internal/events"
	"github.com/MrSnakeDoc/waypoint/internal/history"
	"github.com/MrSnakeDoc/waypoint/internal/httpserver/deps"
	"github.com/MrSnakeDoc/waypoint/internal/httpserver/mw"
	"github.com/MrSnakeDoc/waypoint/internal/httpserver/routes"
	"github.com/MrSnakeDoc/waypoint/internal/locations"
	"github.com/MrSnakeDoc/waypoint/internal/logger"
	"github.com/MrSnakeDoc/waypoint/internal/navigator"
	"github.com/MrSnakeDoc/waypoint/internal/store/file"
)

// newTestServer wires the real services (file store, bus, history,
// locations, navigator) behind the real router, with redis and seeding
// disabled.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	log := logger.Nop()
	store, err := file.New(t.TempDir(), log)
	if err != nil {
		t.Fatalf("file.New() failed: %v", err)
	}
	bus := events.NewBus(log)
	hist := history.New(store, bus, log, history.Options{})
	locs := locations.New(store, bus, log)
	nav := navigator.New(hist, locs, nil, bus, log, navigator.Options{ValidationEnabled: true})

	d := deps.Deps{
		Logger:       log,
		StartTime:    time.Now(),
		Version:      "test",
		TimeNow:      time.Now,
		Navigator:    nav,
		History:      hist,
		Locations:    locs,
		Bus:          bus,
		LoopbackOnly: true,
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(mw.LoopbackOnly(d.LoopbackOnly, log))
	routes.RegisterAll(r, d)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url string, body interface{}) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("POST %s failed: %v", url, err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	defer func() {
		if err := resp.Body.Close(); err != nil {
			t.Errorf("failed to close body: %v", err)
		}
	}()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
}

func TestNavigationOverHTTP(t *testing.T) {
	srv := newTestServer(t)
	dirA := t.TempDir()
	dirB := t.TempDir()

	// Navigate to two directories.
	for _, dir := range []string{dirA, dirB} {
		resp := postJSON(t, srv.URL+"/navigate", map[string]interface{}{"path": dir})
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("POST /navigate returned %v", resp.StatusCode)
		}
		var nav struct {
			OK          bool   `json:"ok"`
			CurrentPath string `json:"current_path"`
		}
		decodeBody(t, resp, &nav)
		if !nav.OK || nav.CurrentPath == "" {
			t.Fatalf("navigate response = %+v", nav)
		}
	}

	// State reflects the back history.
	var state domain.NavigationState
	resp, err := http.Get(srv.URL + "/state")
	if err != nil {
		t.Fatalf("GET /state failed: %v", err)
	}
	decodeBody(t, resp, &state)
	if !state.CanGoBack || state.CanGoForward {
		t.Errorf("state = %+v, want back available, forward empty", state)
	}

	// Go back over HTTP.
	resp = postJSON(t, srv.URL+"/navigate/back", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("POST /navigate/back returned %v", resp.StatusCode)
	}
	var back struct {
		OK          bool   `json:"ok"`
		CurrentPath string `json:"current_path"`
	}
	decodeBody(t, resp, &back)
	wantA, _ := domain.ResolvePath(dirA)
	if !back.OK || back.CurrentPath != wantA {
		t.Errorf("back response = %+v, want current %q", back, wantA)
	}

	// History view has the forward entry.
	resp, err = http.Get(srv.URL + "/history")
	if err != nil {
		t.Fatalf("GET /history failed: %v", err)
	}
	var hist struct {
		Back    []string `json:"back"`
		Forward []string `json:"forward"`
	}
	decodeBody(t, resp, &hist)
	if len(hist.Forward) != 1 {
		t.Errorf("history forward = %v, want one entry", hist.Forward)
	}

	// Both directories appear in recents.
	resp, err = http.Get(srv.URL + "/recent")
	if err != nil {
		t.Fatalf("GET /recent failed: %v", err)
	}
	var recents struct {
		RecentLocations []*domain.RecentLocation `json:"recent_locations"`
	}
	decodeBody(t, resp, &recents)
	if len(recents.RecentLocations) != 2 {
		t.Errorf("recents = %v entries, want 2", len(recents.RecentLocations))
	}
}

func TestNavigationFailureOverHTTP(t *testing.T) {
	srv := newTestServer(t)

	missing := filepath.Join(t.TempDir(), "nope")
	resp := postJSON(t, srv.URL+"/navigate", map[string]interface{}{"path": missing})
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("POST /navigate for a missing path returned %v, want 422", resp.StatusCode)
	}
	var nav struct {
		OK     bool   `json:"ok"`
		Reason string `json:"reason"`
	}
	decodeBody(t, resp, &nav)
	if nav.OK || nav.Reason != "Invalid path: "+missing {
		t.Errorf("failure response = %+v", nav)
	}
}

func TestBookmarksOverHTTP(t *testing.T) {
	srv := newTestServer(t)
	dir := t.TempDir()

	// Create.
	resp := postJSON(t, srv.URL+"/bookmarks", map[string]string{"name": "work", "path": dir})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("POST /bookmarks returned %v", resp.StatusCode)
	}
	var created domain.Bookmark
	decodeBody(t, resp, &created)
	if created.ID == "" {
		t.Fatal("created bookmark has no id")
	}

	// Create with a bad path is rejected.
	resp = postJSON(t, srv.URL+"/bookmarks", map[string]string{"name": "ghost", "path": filepath.Join(dir, "nope")})
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("POST /bookmarks with a missing path returned %v, want 422", resp.StatusCode)
	}
	if err := resp.Body.Close(); err != nil {
		t.Errorf("failed to close body: %v", err)
	}

	// List.
	resp, err := http.Get(srv.URL + "/bookmarks")
	if err != nil {
		t.Fatalf("GET /bookmarks failed: %v", err)
	}
	var list struct {
		Bookmarks []*domain.Bookmark `json:"bookmarks"`
	}
	decodeBody(t, resp, &list)
	if len(list.Bookmarks) != 1 {
		t.Fatalf("GET /bookmarks = %v entries, want 1", len(list.Bookmarks))
	}

	// Delete.
	req, err := http.NewRequest(http.MethodDelete, srv.URL+"/bookmarks/"+created.ID, nil)
	if err != nil {
		t.Fatalf("NewRequest failed: %v", err)
	}
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("DELETE /bookmarks/{id} failed: %v", err)
	}
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("DELETE returned %v, want 204", resp.StatusCode)
	}
	if err := resp.Body.Close(); err != nil {
		t.Errorf("failed to close body: %v", err)
	}
}

func TestQuickLocationsOverHTTP(t *testing.T) {
	srv := newTestServer(t)
	dir := t.TempDir()

	resp := postJSON(t, srv.URL+"/locations", map[string]string{"name": "Scratch", "path": dir})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("POST /locations returned %v", resp.StatusCode)
	}
	var created domain.QuickLocation
	decodeBody(t, resp, &created)
	if created.Standard {
		t.Error("created quick location marked standard")
	}

	resp, err := http.Get(srv.URL + "/locations")
	if err != nil {
		t.Fatalf("GET /locations failed: %v", err)
	}
	var list struct {
		Locations []*domain.QuickLocation `json:"locations"`
	}
	decodeBody(t, resp, &list)
	found := false
	for _, q := range list.Locations {
		if q.Name == "Scratch" {
			found = true
		}
	}
	if !found {
		t.Error("created quick location missing from GET /locations")
	}
}

func TestHealthEndpoints(t *testing.T) {
	srv := newTestServer(t)

	for _, path := range []string{"/healthz", "/readyz", "/infra"} {
		resp, err := http.Get(srv.URL + path)
		if err != nil {
			t.Fatalf("GET %s failed: %v", path, err)
		}
		if resp.StatusCode != http.StatusOK {
			t.Errorf("GET %s returned %v", path, resp.StatusCode)
		}
		if err := resp.Body.Close(); err != nil {
			t.Errorf("failed to close body: %v", err)
		}
	}
}

func TestReloadDisabledWithoutSeed(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/reload", nil)
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("POST /reload without a seed file returned %v, want 409", resp.StatusCode)
	}
	if err := resp.Body.Close(); err != nil {
		t.Errorf("failed to close body: %v", err)
	}
}
