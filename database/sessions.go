package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/theossalmeida/front-great-people/views"
)

var ErrSessionNotFound = errors.New("session not found")

// Sessions keeps the view state of every browser session, keyed by the
// session cookie. Rows expire ttl after their last save.
type Sessions struct {
	db  *sql.DB
	ttl time.Duration
	now func() time.Time
}

func NewSessions(db *sql.DB, ttl time.Duration) *Sessions {
	return &Sessions{db: db, ttl: ttl, now: time.Now}
}

func (s *Sessions) TTL() time.Duration {
	return s.ttl
}

func (s *Sessions) Get(ctx context.Context, id string) (*views.State, error) {
	var blob []byte
	err := s.db.
		QueryRowContext(ctx, `
			SELECT state FROM session
			WHERE id = ?
				AND expiration > ?`,
			id,
			s.now().Unix(),
		).
		Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "session.get")
	}

	state := &views.State{}
	if err := json.Unmarshal(blob, state); err != nil {
		return nil, errors.Wrap(err, "session.get.decode")
	}
	state.Normalize()
	return state, nil
}

func (s *Sessions) Save(ctx context.Context, id string, state *views.State) error {
	blob, err := json.Marshal(state)
	if err != nil {
		return errors.Wrap(err, "session.save.encode")
	}

	now := s.now()
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO session (id, state, created, expiration) VALUES (?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			state = excluded.state,
			expiration = excluded.expiration`,
		id,
		blob,
		now.Unix(),
		now.Add(s.ttl).Unix(),
	)
	return errors.Wrap(err, "session.save")
}

func (s *Sessions) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM session WHERE id = ?", id)
	return errors.Wrap(err, "session.delete")
}

// Purge removes every session expired at now.
func (s *Sessions) Purge(ctx context.Context, now time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM session WHERE expiration <= ?", now.Unix())
	if err != nil {
		return 0, errors.Wrap(err, "session.purge")
	}
	n, err := res.RowsAffected()
	return n, errors.Wrap(err, "session.purge.verify")
}
