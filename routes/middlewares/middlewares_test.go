package middlewares

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/theossalmeida/front-great-people/database"
	"github.com/theossalmeida/front-great-people/views"
)

type memStore struct {
	mu      sync.Mutex
	states  map[string]*views.State
	saveErr error
	saves   int
}

func (m *memStore) Get(ctx context.Context, id string) (*views.State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.states[id]
	if !ok {
		return nil, database.ErrSessionNotFound
	}
	return s, nil
}

func (m *memStore) Save(ctx context.Context, id string, state *views.State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	if err := ctx.Err(); err != nil {
		return err
	}
	if m.saveErr != nil {
		return m.saveErr
	}
	m.states[id] = state
	return nil
}

func (m *memStore) TTL() time.Duration {
	return time.Hour
}

func TestSessionsCreatesAndReusesSession(t *testing.T) {
	store := &memStore{states: map[string]*views.State{}}
	h := Sessions(store)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s := SessionFrom(r.Context())
		s.State.Records.SetSearch(s.State.Records.Search + "x")
		w.Write([]byte(s.State.Records.Search))
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Body.String() != "x" {
		t.Fatalf("body = %q", rec.Body.String())
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != SessionCookie || cookies[0].Value == "" || !cookies[0].HttpOnly {
		t.Fatalf("cookies = %+v", cookies)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Body.String() != "xx" {
		t.Fatalf("body = %q, want state carried over", rec.Body.String())
	}
	if len(store.states) != 1 {
		t.Fatalf("sessions = %d", len(store.states))
	}
}

func TestSessionsUnknownCookieStartsFresh(t *testing.T) {
	store := &memStore{states: map[string]*views.State{}}
	h := Sessions(store)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(SessionFrom(r.Context()).ID))
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "stale"})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Body.String() == "stale" || rec.Body.String() == "" {
		t.Fatalf("id = %q", rec.Body.String())
	}
}

func TestSessionsSaveFailureIs500(t *testing.T) {
	store := &memStore{states: map[string]*views.State{}, saveErr: errors.New("disk full")}
	h := Sessions(store)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("fine"))
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("code = %d", rec.Code)
	}
	if rec.Body.String() == "fine" {
		t.Fatal("buffered response leaked")
	}
}

func TestSessionsSavesAfterClientGoesAway(t *testing.T) {
	store := &memStore{states: map[string]*views.State{}}
	ctx, cancel := context.WithCancel(context.Background())
	h := Sessions(store)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		SessionFrom(r.Context()).State.Records.SetSearch("kept")
		cancel()
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil).WithContext(ctx))
	if rec.Code == http.StatusInternalServerError {
		t.Fatalf("code = %d", rec.Code)
	}
	if len(store.states) != 1 {
		t.Fatalf("sessions = %d, want 1", len(store.states))
	}
	for _, s := range store.states {
		if s.Records.Search != "kept" {
			t.Fatalf("search = %q", s.Records.Search)
		}
	}
}

func TestUploadGuard(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	g := NewUploadGuard(ctx)

	if g.Busy("a") {
		t.Fatal("a busy before acquire")
	}
	if !g.Acquire("a") {
		t.Fatal("first acquire refused")
	}
	if g.Acquire("a") {
		t.Fatal("second acquire granted")
	}
	if !g.Acquire("b") {
		t.Fatal("other key refused")
	}
	if !g.Busy("a") {
		t.Fatal("a not busy")
	}
	g.Release("a")
	if g.Busy("a") {
		t.Fatal("a busy after release")
	}
	if !g.Acquire("a") {
		t.Fatal("acquire after release refused")
	}
}
