package collections

import (
	"context"

	"github.com/agentstation/marquee/pkg/constants"
	"github.com/agentstation/marquee/pkg/movies"
	"github.com/agentstation/marquee/pkg/store"
)

// SessionStore holds the logged-in session, nil when logged out. Writes are
// durable before they become visible.
type SessionStore struct {
	*Collection[*movies.Session]
}

// NewSessionStore creates the session collection over s.
func NewSessionStore(s store.Store) *SessionStore {
	return &SessionStore{New(s, Config[*movies.Session]{
		Key:    constants.KeySession,
		Policy: DurableFirst,
		Clone: func(in *movies.Session) *movies.Session {
			if in == nil {
				return nil
			}
			out := *in
			return &out
		},
	})}
}

// SetSession replaces the session record. Passing nil logs out.
func SetSession(next *movies.Session) Mutation[*movies.Session] {
	return func(current *movies.Session) (*movies.Session, bool, error) {
		if current == nil && next == nil {
			return nil, false, nil
		}
		return next, true, nil
	}
}

// Set stores s as the current session.
func (s *SessionStore) Set(ctx context.Context, session *movies.Session) error {
	_, _, err := s.Apply(ctx, SetSession(session))
	return err
}

// Clear removes the current session.
func (s *SessionStore) Clear(ctx context.Context) error {
	return s.Set(ctx, nil)
}

// Current returns the session or nil.
func (s *SessionStore) Current() *movies.Session {
	return s.Get()
}
