package middlewares

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gofrs/uuid"
	"github.com/theossalmeida/front-great-people/database"
	"github.com/theossalmeida/front-great-people/httpx"
	"github.com/theossalmeida/front-great-people/views"
)

const SessionCookie = "session_id"

type SessionStore interface {
	Get(ctx context.Context, id string) (*views.State, error)
	Save(ctx context.Context, id string, state *views.State) error
	TTL() time.Duration
}

type Session struct {
	ID    string
	State *views.State
}

type sessionKey struct{}

func SessionFrom(ctx context.Context) *Session {
	s, _ := ctx.Value(sessionKey{}).(*Session)
	return s
}

func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// Sessions attaches the caller's view state to the request and stores it
// back once the handler is done. The response is held until the state is
// saved, so a failed save never reaches the browser as a success.
func Sessions(store SessionStore) func(http.Handler) http.Handler {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, err := loadSession(r, store)
			if err != nil {
				httpx.LogInternalError(w, r, "session.load", err)
				return
			}

			buf := httpx.NewResponseBuffer()
			http.SetCookie(buf, &http.Cookie{
				Path:     "/",
				Name:     SessionCookie,
				Value:    session.ID,
				MaxAge:   int(store.TTL().Seconds()),
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})

			h.ServeHTTP(buf, r.WithContext(WithSession(r.Context(), session)))

			// last write wins between concurrent requests of one session.
			// The backend may already have acted, so a client that went away
			// must not cost the state.
			err = store.Save(context.WithoutCancel(r.Context()), session.ID, session.State)
			if err != nil {
				httpx.LogInternalError(w, r, "session.save", err)
				return
			}
			buf.Flush(w)
		})
	}
}

func loadSession(r *http.Request, store SessionStore) (*Session, error) {
	cookie, err := r.Cookie(SessionCookie)
	if err != nil && !errors.Is(err, http.ErrNoCookie) {
		return nil, err
	}
	if err == nil && cookie.Value != "" {
		state, err := store.Get(r.Context(), cookie.Value)
		switch {
		case err == nil:
			return &Session{ID: cookie.Value, State: state}, nil
		case !errors.Is(err, database.ErrSessionNotFound):
			return nil, err
		}
	}

	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	return &Session{ID: id.String(), State: views.NewState()}, nil
}
