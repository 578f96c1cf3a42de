// Package memory holds in-process implementations of the stores of package accounts.
// They back the service when no database is configured in DEVELOPMENT, DEMO or TESTING
// and stand in for PostgreSQL in handler tests.
package memory

import (
	"context"
	"database/sql"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/xy-planning-network/accounts"
)

var _ accounts.UserStore = (*UserStore)(nil)

// UserStore implements accounts.UserStore with a map guarded by a mutex.
// Emails are unique case-sensitively, as the users_email_key constraint is.
type UserStore struct {
	mu     sync.RWMutex
	lastID uint
	users  map[uint]accounts.User
}

// NewUserStore constructs an empty *UserStore.
func NewUserStore() *UserStore {
	return &UserStore{users: make(map[uint]accounts.User)}
}

// All lists every User ordered by ID.
func (s *UserStore) All(_ context.Context) ([]accounts.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]accounts.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, u)
	}
	slices.SortFunc(users, func(a, b accounts.User) int { return int(a.ID) - int(b.ID) })

	return users, nil
}

// ByEmail retrieves the User with the email.
func (s *UserStore) ByEmail(_ context.Context, email string) (accounts.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if u, ok := s.byEmail(email); ok {
		return u, nil
	}

	return accounts.User{}, fmt.Errorf("%w: user %s", accounts.ErrNotFound, email)
}

// ByID retrieves the User with the ID.
func (s *UserStore) ByID(_ context.Context, id uint) (accounts.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return accounts.User{}, fmt.Errorf("%w: user %d", accounts.ErrNotFound, id)
	}

	return u, nil
}

// Create inserts u, setting u.ID.
func (s *UserStore) Create(_ context.Context, u *accounts.User) error {
	if u == nil {
		return fmt.Errorf("%w: *accounts.User cannot be nil", accounts.ErrMissingData)
	}

	if strings.TrimSpace(u.Email) == "" {
		return fmt.Errorf("%w: email cannot be empty", accounts.ErrNotValid)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byEmail(u.Email); ok {
		return fmt.Errorf("%w: users_email_key %s", accounts.ErrExists, u.Email)
	}

	s.lastID++
	u.ID = s.lastID
	s.users[u.ID] = *u

	return nil
}

// Delete removes the User with the ID.
func (s *UserStore) Delete(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return fmt.Errorf("%w: user %d", accounts.ErrNotFound, id)
	}
	delete(s.users, id)

	return nil
}

// EmailExists asserts whether a User with the email exists.
func (s *UserStore) EmailExists(_ context.Context, email string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.byEmail(email)
	return ok, nil
}

// UpdateCredentials replaces the email and password hash of the User with the ID.
func (s *UserStore) UpdateCredentials(_ context.Context, id uint, email, hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return fmt.Errorf("%w: user %d", accounts.ErrNotFound, id)
	}

	if other, ok := s.byEmail(email); ok && other.ID != id {
		return fmt.Errorf("%w: users_email_key %s", accounts.ErrExists, email)
	}

	u.Email = email
	u.Password = sql.NullString{String: hash, Valid: true}
	s.users[id] = u

	return nil
}

// byEmail expects the caller to hold mu.
func (s *UserStore) byEmail(email string) (accounts.User, bool) {
	for _, u := range s.users {
		if u.Email == email {
			return u, true
		}
	}

	return accounts.User{}, false
}
