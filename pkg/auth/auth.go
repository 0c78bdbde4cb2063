// Package auth implements local account registration and the login session
// state machine. Passwords are stored only as bcrypt hashes.
package auth

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/agentstation/marquee/pkg/collections"
	"github.com/agentstation/marquee/pkg/constants"
	"github.com/agentstation/marquee/pkg/errors"
	"github.com/agentstation/marquee/pkg/logging"
	"github.com/agentstation/marquee/pkg/movies"
)

// maxPasswordBytes is the longest input bcrypt accepts.
const maxPasswordBytes = 72

// State is the login state.
type State int

const (
	Anonymous State = iota
	Authenticating
	Authenticated
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Authenticating:
		return "authenticating"
	case Authenticated:
		return "authenticated"
	default:
		return "anonymous"
	}
}

// Service owns the session state machine.
type Service struct {
	accounts *collections.Accounts
	session  *collections.SessionStore
	cost     int
	now      func() time.Time

	mu      sync.Mutex
	state   State
	lastErr error
}

// Option configures a Service.
type Option func(*Service)

// WithCost sets the bcrypt cost.
func WithCost(cost int) Option {
	return func(s *Service) {
		s.cost = cost
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// New creates a Service over the accounts and session collections. Call
// Restore after the collections are hydrated.
func New(accounts *collections.Accounts, session *collections.SessionStore, opts ...Option) *Service {
	s := &Service{
		accounts: accounts,
		session:  session,
		cost:     bcrypt.DefaultCost,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Restore()
	return s
}

// Restore derives the state from the session collection: a stored session
// means Authenticated.
func (s *Service) Restore() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session.Current() != nil {
		s.state = Authenticated
	} else {
		s.state = Anonymous
	}
	return s.state
}

// State returns the current state.
func (s *Service) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// LastError returns why the most recent login attempt failed, or nil.
func (s *Service) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Current returns the logged-in session or nil.
func (s *Service) Current() *movies.Session {
	return s.session.Current()
}

// Register creates an account. It does not log in.
func (s *Service) Register(ctx context.Context, name, email, password string) (movies.Account, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if len(name) < constants.MinNameLength {
		return movies.Account{}, errors.NewValidationError("name", name, "must be at least 2 characters")
	}
	if err := validateCredentials(email, password); err != nil {
		return movies.Account{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return movies.Account{}, errors.NewValidationError("password", nil, err.Error())
	}

	acct := movies.Account{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    s.now().UTC(),
	}
	if err := s.accounts.Add(ctx, acct); err != nil {
		return movies.Account{}, err
	}

	logging.FromContext(ctx).Info().Str("account_id", acct.ID).Msg("account registered")
	return acct, nil
}

// Login checks email and password against the registered accounts and, on
// success, stores a new session. On failure the stored session is left as
// it was, the state returns to what it was before the attempt and the
// reason is kept for LastError.
func (s *Service) Login(ctx context.Context, email, password string) (*movies.Session, error) {
	email = strings.TrimSpace(email)

	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.state
	s.state = Authenticating

	fail := func(err error) (*movies.Session, error) {
		s.state = prev
		s.lastErr = err
		logging.FromContext(ctx).Warn().Err(err).Str("state", prev.String()).Msg("login failed")
		return nil, err
	}

	if err := validateCredentials(email, password); err != nil {
		return fail(err)
	}

	acct, ok := s.accounts.FindByEmail(email)
	if !ok || bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(password)) != nil {
		return fail(errors.NewNotFoundError("account", email))
	}

	session := acct.NewSession(s.now())
	if err := s.session.Set(ctx, &session); err != nil {
		return fail(err)
	}

	s.state = Authenticated
	s.lastErr = nil
	logging.FromContext(ctx).Info().Str("account_id", acct.ID).Msg("logged in")
	return &session, nil
}

// Logout clears the session. Accounts, watchlist and reviews are untouched.
func (s *Service) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.session.Clear(ctx); err != nil {
		return err
	}
	s.state = Anonymous
	s.lastErr = nil
	return nil
}

func validateCredentials(email, password string) error {
	if !strings.Contains(email, "@") {
		return errors.NewValidationError("email", email, "must be a valid email address")
	}
	if len(password) < constants.MinPasswordLength {
		return errors.NewValidationError("password", nil, "must be at least 4 characters")
	}
	if len(password) > maxPasswordBytes {
		return errors.NewValidationError("password", nil, "must be at most 72 bytes")
	}
	return nil
}
