package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/emotionplay/emotionplay-server/internal/core/domain"
	"github.com/emotionplay/emotionplay-server/internal/core/ports"
	"github.com/emotionplay/emotionplay-server/internal/core/services"
)

// --- Fakes ---

type fakeTokens struct {
	authorized bool
}

func (f *fakeTokens) EnsureFreshToken(ctx context.Context) (string, error) { return "tok", nil }
func (f *fakeTokens) IsAuthorized() bool                                   { return f.authorized }

type fakeAuthorizer struct {
	authorizeErr  error
	disconnected  bool
	authorizeRuns int
}

func (f *fakeAuthorizer) Authorize(ctx context.Context) error {
	f.authorizeRuns++
	return f.authorizeErr
}
func (f *fakeAuthorizer) Disconnect() { f.disconnected = true }

type fakeHistory struct {
	items     []domain.HistoryItem
	renameErr error
	renamed   map[string]string
}

func (f *fakeHistory) Add(ctx context.Context, item domain.HistoryItem) error { return nil }
func (f *fakeHistory) List(ctx context.Context) ([]domain.HistoryItem, error) { return f.items, nil }
func (f *fakeHistory) Rename(ctx context.Context, id, name string) error {
	if f.renameErr != nil {
		return f.renameErr
	}
	if f.renamed == nil {
		f.renamed = map[string]string{}
	}
	f.renamed[id] = name
	return nil
}
func (f *fakeHistory) Delete(ctx context.Context, id string) error                   { return nil }
func (f *fakeHistory) Clear(ctx context.Context) error                               { return nil }
func (f *fakeHistory) UpdateCoverURL(ctx context.Context, id, coverURL string) error { return nil }

type fakeJournal struct {
	entries []domain.MoodEntry
}

func (f *fakeJournal) AddEntry(ctx context.Context, entry domain.MoodEntry) error {
	f.entries = append(f.entries, entry)
	return nil
}
func (f *fakeJournal) Entries(ctx context.Context) ([]domain.MoodEntry, error) {
	return f.entries, nil
}
func (f *fakeJournal) RecentSeedArtists(ctx context.Context, limit int) ([]string, error) {
	return nil, nil
}
func (f *fakeJournal) RecentSeedTracks(ctx context.Context, limit int) ([]string, error) {
	return nil, nil
}

type fakePrefs struct {
	genres []string
}

func (f *fakePrefs) PreferredGenres(ctx context.Context) ([]string, error) { return f.genres, nil }
func (f *fakePrefs) SetPreferredGenres(ctx context.Context, genres []string) error {
	f.genres = genres
	return nil
}

type handlerFixture struct {
	handler    *Handler
	authorizer *fakeAuthorizer
	tokens     *fakeTokens
	history    *fakeHistory
	journal    *fakeJournal
	prefs      *fakePrefs
}

func newFixture() *handlerFixture {
	f := &handlerFixture{
		authorizer: &fakeAuthorizer{},
		tokens:     &fakeTokens{},
		history:    &fakeHistory{},
		journal:    &fakeJournal{},
		prefs:      &fakePrefs{genres: []string{"pop"}},
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	f.handler = NewHandler(nil, f.authorizer, f.tokens, f.history, f.journal, f.prefs, logger)
	return f
}

func doRequest(h http.Handler, method, target string, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// --- Tests ---

func TestHealthCheck(t *testing.T) {
	f := newFixture()
	rec := doRequest(f.handler, "GET", "/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d", rec.Code)
	}
}

func TestAuthStatus(t *testing.T) {
	f := newFixture()
	f.tokens.authorized = true

	rec := doRequest(f.handler, "GET", "/auth/status", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d", rec.Code)
	}
	var body authStatusResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !body.Authorized {
		t.Error("expected authorized true")
	}
}

func TestConnect_CancelledIsUnauthorized(t *testing.T) {
	f := newFixture()
	f.authorizer.authorizeErr = ports.ErrAuthorizationCancelled

	rec := doRequest(f.handler, "POST", "/auth/connect", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status: got %d, want 401", rec.Code)
	}
	if f.authorizer.authorizeRuns != 1 {
		t.Errorf("authorize runs: got %d", f.authorizer.authorizeRuns)
	}
}

func TestDisconnect(t *testing.T) {
	f := newFixture()
	rec := doRequest(f.handler, "POST", "/auth/disconnect", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d", rec.Code)
	}
	if !f.authorizer.disconnected {
		t.Error("expected Disconnect to be forwarded")
	}
}

func TestRenameHistory(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		renameErr  error
		wantStatus int
	}{
		{"ok", `{"name":"New Name"}`, nil, http.StatusNoContent},
		{"missing name", `{}`, nil, http.StatusBadRequest},
		{"bad json", `{`, nil, http.StatusBadRequest},
		{"not found", `{"name":"x"}`, domain.ErrNotFound, http.StatusNotFound},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture()
			f.history.renameErr = tc.renameErr

			rec := doRequest(f.handler, "PATCH", "/history/item-1", tc.body)
			if rec.Code != tc.wantStatus {
				t.Fatalf("status: got %d, want %d", rec.Code, tc.wantStatus)
			}
			if tc.wantStatus == http.StatusNoContent && f.history.renamed["item-1"] != "New Name" {
				t.Errorf("rename not applied: %v", f.history.renamed)
			}
		})
	}
}

func TestListHistory(t *testing.T) {
	f := newFixture()
	f.history.items = []domain.HistoryItem{
		domain.NewHistoryItem(domain.MoodHappy, "Mix", []byte{1}, "https://p/1", 0.9),
	}

	rec := doRequest(f.handler, "GET", "/history", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d", rec.Code)
	}
	var items []domain.HistoryItem
	if err := json.Unmarshal(rec.Body.Bytes(), &items); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(items) != 1 || items[0].PlaylistName != "Mix" {
		t.Errorf("unexpected items: %+v", items)
	}
	if strings.Contains(rec.Body.String(), `"image"`) {
		t.Error("raw image bytes must not be serialized")
	}
}

func TestCreateMix_UnknownMood(t *testing.T) {
	f := newFixture()
	rec := doRequest(f.handler, "POST", "/mixes", `{"mood":"furious"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want 400", rec.Code)
	}
}

func TestGenresRoundTrip(t *testing.T) {
	f := newFixture()

	rec := doRequest(f.handler, "PUT", "/preferences/genres", `{"genres":["jazz","soul"]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("put status: got %d", rec.Code)
	}

	rec = doRequest(f.handler, "GET", "/preferences/genres", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get status: got %d", rec.Code)
	}
	var body genresPayload
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Genres) != 2 || body.Genres[0] != "jazz" {
		t.Errorf("unexpected genres: %v", body.Genres)
	}
}

func TestAddJournalEntry(t *testing.T) {
	f := newFixture()

	rec := doRequest(f.handler, "POST", "/journal",
		`{"mood":"calm","song_title":"Holocene","song_artist":"Bon Iver","notes":"rainy day"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status: got %d, body %s", rec.Code, rec.Body.String())
	}
	if len(f.journal.entries) != 1 {
		t.Fatalf("expected one entry, got %d", len(f.journal.entries))
	}
	entry := f.journal.entries[0]
	if entry.Mood != domain.MoodCalm || entry.Song.Title != "Holocene" {
		t.Errorf("unexpected entry: %+v", entry)
	}

	rec = doRequest(f.handler, "POST", "/journal", `{"mood":"calm","song_title":"No Artist"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing artist: got %d, want 400", rec.Code)
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"no photo", services.ErrNoPhoto, http.StatusBadRequest},
		{"rate limited", &ports.StatusError{Status: 429}, http.StatusTooManyRequests},
		{"not authenticated", ports.ErrNotAuthenticated, http.StatusUnauthorized},
		{"cancelled", ports.ErrAuthorizationCancelled, http.StatusUnauthorized},
		{"not found", domain.ErrNotFound, http.StatusNotFound},
		{"no recommendations", ports.ErrNoRecommendations, http.StatusUnprocessableEntity},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := statusFor(tc.err); got != tc.want {
				t.Errorf("got %d, want %d", got, tc.want)
			}
		})
	}
}
