package collections

import (
	"context"
	"slices"

	"github.com/agentstation/marquee/pkg/constants"
	"github.com/agentstation/marquee/pkg/errors"
	"github.com/agentstation/marquee/pkg/movies"
	"github.com/agentstation/marquee/pkg/store"
)

// DuplicateEmailMessage is the message reported when registering a taken email.
const DuplicateEmailMessage = "User already exists with this email"

// Accounts holds locally registered accounts. Writes are durable before
// they become visible.
type Accounts struct {
	*Collection[[]movies.Account]
}

// NewAccounts creates the accounts collection over s.
func NewAccounts(s store.Store) *Accounts {
	return &Accounts{New(s, Config[[]movies.Account]{
		Key:    constants.KeyAccounts,
		Policy: DurableFirst,
		Empty:  func() []movies.Account { return []movies.Account{} },
		Clone: func(in []movies.Account) []movies.Account {
			return append(make([]movies.Account, 0, len(in)), in...)
		},
	})}
}

// AddAccount appends a unless its email is already registered. Emails
// compare exactly.
func AddAccount(a movies.Account) Mutation[[]movies.Account] {
	return func(current []movies.Account) ([]movies.Account, bool, error) {
		if slices.ContainsFunc(current, func(x movies.Account) bool { return x.Email == a.Email }) {
			return current, false, &errors.AlreadyExistsError{Resource: "account", ID: a.Email, Message: DuplicateEmailMessage}
		}
		return append(current, a), true, nil
	}
}

// Add registers a.
func (a *Accounts) Add(ctx context.Context, acct movies.Account) error {
	_, _, err := a.Apply(ctx, AddAccount(acct))
	return err
}

// FindByEmail returns the account registered with email.
func (a *Accounts) FindByEmail(email string) (movies.Account, bool) {
	a.stateMu.RLock()
	defer a.stateMu.RUnlock()
	for _, acct := range a.value {
		if acct.Email == email {
			return acct, true
		}
	}
	return movies.Account{}, false
}
