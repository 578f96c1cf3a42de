package accounts

import (
	"context"
	"database/sql"
)

//go:generate mockgen -destination=mocks/mock_user_store.go -package=mocks . UserStore

// A User is the single entity the accounts service manages.
//
// Password holds the bcrypt hash of the local password.
// It is NULL for accounts created through federated login
// that never set a local password; such accounts cannot log in with a password.
type User struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Firstname string         `json:"firstname"`
	Lastname  string         `json:"lastname"`
	Username  string         `json:"username"`
	Email     string         `json:"email"`
	Password  sql.NullString `json:"-" gorm:"column:password"`
}

// TableName implements gorm's schema.Tabler.
func (User) TableName() string { return "users" }

// HasPassword asserts whether the User can authenticate with a local password.
func (u User) HasPassword() bool { return u.Password.Valid && u.Password.String != "" }

// GetID implements logger.LogUser.
func (u User) GetID() uint { return u.ID }

// GetEmail implements logger.LogUser.
func (u User) GetEmail() string { return u.Email }

// A UserStore persists Users.
//
// Implementations return errors wrapping ErrNotFound when no User matches,
// ErrExists when a write violates email uniqueness
// and ErrUnexpected for any other failure.
type UserStore interface {
	// All lists every User ordered by ID.
	All(ctx context.Context) ([]User, error)

	// ByEmail retrieves the User with the email.
	ByEmail(ctx context.Context, email string) (User, error)

	// ByID retrieves the User with the ID.
	ByID(ctx context.Context, id uint) (User, error)

	// Create inserts u, setting u.ID.
	Create(ctx context.Context, u *User) error

	// Delete removes the User with the ID.
	Delete(ctx context.Context, id uint) error

	// EmailExists asserts whether a User with the email exists.
	EmailExists(ctx context.Context, email string) (bool, error)

	// UpdateCredentials replaces the email and password hash of the User with the ID.
	UpdateCredentials(ctx context.Context, id uint, email, hash string) error
}
