package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/xy-planning-network/accounts"
)

var _ accounts.UserStore = (*UserStore)(nil)

// userColumns are the columns of the users table a User scans.
var userColumns = []string{"id", "firstname", "lastname", "username", "email", "password"}

// UserStore implements accounts.UserStore over the users table.
type UserStore struct {
	db *DB
}

// NewUserStore constructs a *UserStore querying db.
func NewUserStore(db *DB) *UserStore { return &UserStore{db: db} }

// All lists every User ordered by ID.
// An empty table yields an empty, non-nil slice.
func (s *UserStore) All(ctx context.Context) ([]accounts.User, error) {
	users := make([]accounts.User, 0)
	err := s.db.WithContext(ctx).Select(userColumns...).Order("id").Find(&users)
	if errors.Is(err, accounts.ErrNotFound) {
		return make([]accounts.User, 0), nil
	}

	if err != nil {
		return nil, err
	}

	return users, nil
}

// ByEmail retrieves the User with the email.
func (s *UserStore) ByEmail(ctx context.Context, email string) (accounts.User, error) {
	var u accounts.User
	if err := s.db.WithContext(ctx).Select(userColumns...).Where("email = ?", email).First(&u); err != nil {
		return accounts.User{}, err
	}

	return u, nil
}

// ByID retrieves the User with the ID.
func (s *UserStore) ByID(ctx context.Context, id uint) (accounts.User, error) {
	var u accounts.User
	if err := s.db.WithContext(ctx).Select(userColumns...).Where("id = ?", id).First(&u); err != nil {
		return accounts.User{}, err
	}

	return u, nil
}

// Create inserts u, setting u.ID.
// The users_email_key constraint decides uniqueness: a duplicate email returns ErrExists.
func (s *UserStore) Create(ctx context.Context, u *accounts.User) error {
	if u == nil {
		return fmt.Errorf("%w: *accounts.User cannot be nil", accounts.ErrMissingData)
	}

	u.ID = 0
	return s.db.WithContext(ctx).Create(u)
}

// Delete removes the User with the ID.
func (s *UserStore) Delete(ctx context.Context, id uint) error {
	if id == 0 {
		return fmt.Errorf("%w: user 0", accounts.ErrNotFound)
	}

	return s.db.WithContext(ctx).Delete(&accounts.User{ID: id})
}

// EmailExists asserts whether a User with the email exists.
func (s *UserStore) EmailExists(ctx context.Context, email string) (bool, error) {
	return s.db.WithContext(ctx).Model(new(accounts.User)).Where("email = ?", email).Exists()
}

// UpdateCredentials replaces the email and password hash of the User with the ID.
func (s *UserStore) UpdateCredentials(ctx context.Context, id uint, email, hash string) error {
	return s.db.
		WithContext(ctx).
		Model(new(accounts.User)).
		Where("id = ?", id).
		Update(Updates{"email": email, "password": hash})
}
