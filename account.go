package marquee

import (
	"context"

	"github.com/agentstation/marquee/pkg/auth"
	"github.com/agentstation/marquee/pkg/movies"
)

// Compile-time interface check to ensure proper implementation.
var _ Accounts = (*client)(nil)

// Accounts handles local registration and the login session. Account and
// session changes are written before they become visible.
type Accounts interface {
	// Register creates an account without logging in
	Register(ctx context.Context, name, email, password string) (movies.Account, error)

	// Login starts a session; a mismatch is reported as a NotFoundError
	Login(ctx context.Context, email, password string) (*movies.Session, error)

	// Logout ends the session and keeps every collection
	Logout(ctx context.Context) error

	// Session returns the logged-in session or nil
	Session() *movies.Session

	// AuthState returns the session state and the last login failure
	AuthState() (auth.State, error)
}

// Register creates an account.
func (c *client) Register(ctx context.Context, name, email, password string) (movies.Account, error) {
	return c.auth.Register(c.ctx(ctx), name, email, password)
}

// Login starts a session.
func (c *client) Login(ctx context.Context, email, password string) (*movies.Session, error) {
	return c.auth.Login(c.ctx(ctx), email, password)
}

// Logout ends the session.
func (c *client) Logout(ctx context.Context) error {
	return c.auth.Logout(c.ctx(ctx))
}

// AuthState reports the state machine.
func (c *client) AuthState() (auth.State, error) {
	return c.auth.State(), c.auth.LastError()
}
