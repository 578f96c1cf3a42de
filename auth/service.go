package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/xy-planning-network/accounts"
)

// maxNameLen and maxEmailLen mirror the widths of the users columns.
const (
	maxNameLen  = 30
	maxEmailLen = 50
)

// A Session is the result of a successful login:
// the Claims of the authenticated user and the token encoding them.
type Session struct {
	Claims Claims
	Token  string
}

// A NewUser is the data required to register a User with a local password.
type NewUser struct {
	Firstname string
	Lastname  string
	Username  string
	Email     string
	Password  string
}

// Service runs the authentication flows of the accounts service.
type Service struct {
	dummyHash  string
	hasher     Hasher
	identities IdentityVerifier
	tokens     *Tokens
	users      accounts.UserStore
}

// A ServiceOpt configures a Service.
type ServiceOpt func(*Service)

// WithHasher replaces the default Hasher.
func WithHasher(h Hasher) ServiceOpt {
	return func(s *Service) { s.hasher = h }
}

// WithIdentityVerifier enables federated login through v.
func WithIdentityVerifier(v IdentityVerifier) ServiceOpt {
	return func(s *Service) { s.identities = v }
}

// NewService constructs a *Service storing users in users and issuing tokens with tokens.
// Federated login is disabled unless WithIdentityVerifier is passed.
func NewService(users accounts.UserStore, tokens *Tokens, opts ...ServiceOpt) (*Service, error) {
	if users == nil || tokens == nil {
		return nil, fmt.Errorf("%w: users and tokens are required", accounts.ErrBadConfig)
	}

	s := &Service{
		hasher: NewHasher(DefaultCost),
		tokens: tokens,
		users:  users,
	}
	for _, opt := range opts {
		opt(s)
	}

	// NOTE: compared against when no real hash exists so rejections cost one bcrypt round either way.
	dummy, err := s.hasher.Hash("not-a-real-password")
	if err != nil {
		return nil, err
	}
	s.dummyHash = dummy

	return s, nil
}

// Login authenticates a User by email and password.
//
// An unknown email, an account without a local password and a wrong password
// all return ErrCredentials.
func (s *Service) Login(ctx context.Context, email, password string) (Session, error) {
	u, err := s.users.ByEmail(ctx, email)
	if errors.Is(err, accounts.ErrNotFound) {
		s.hasher.Verify(password, s.dummyHash)
		return Session{}, ErrCredentials
	}

	if err != nil {
		return Session{}, err
	}

	if !u.HasPassword() {
		s.hasher.Verify(password, s.dummyHash)
		return Session{}, ErrCredentials
	}

	if !s.hasher.Verify(password, u.Password.String) {
		return Session{}, ErrCredentials
	}

	return s.issue(u)
}

// FederatedLogin authenticates the holder of a third-party identity token.
// The first login for an email creates a User without a local password.
// An identity whose email does not fit the users table returns ErrInvalidToken.
func (s *Service) FederatedLogin(ctx context.Context, token string) (Session, error) {
	if s.identities == nil {
		return Session{}, fmt.Errorf("%w: federated login is not configured", accounts.ErrBadConfig)
	}

	id, err := s.identities.Verify(ctx, token)
	if err != nil {
		return Session{}, err
	}

	// Names are truncated to fit; an email cannot be.
	if utf8.RuneCountInString(id.Email) > maxEmailLen {
		return Session{}, fmt.Errorf("%w: email longer than %d characters", ErrInvalidToken, maxEmailLen)
	}

	u, err := s.users.ByEmail(ctx, id.Email)
	if errors.Is(err, accounts.ErrNotFound) {
		u, err = s.createFederated(ctx, id)
	}

	if err != nil {
		return Session{}, err
	}

	return s.issue(u)
}

// Signup registers nu.
//
// If the email is taken, ErrExists returns.
// The lookup beforehand only saves hashing a password for nothing;
// the store's uniqueness constraint decides.
func (s *Service) Signup(ctx context.Context, nu NewUser) (accounts.User, error) {
	exists, err := s.users.EmailExists(ctx, nu.Email)
	if err != nil {
		return accounts.User{}, err
	}

	if exists {
		return accounts.User{}, fmt.Errorf("%w: email %s", accounts.ErrExists, nu.Email)
	}

	hash, err := s.hasher.Hash(nu.Password)
	if err != nil {
		return accounts.User{}, err
	}

	u := accounts.User{
		Firstname: nu.Firstname,
		Lastname:  nu.Lastname,
		Username:  nu.Username,
		Email:     nu.Email,
		Password:  sql.NullString{String: hash, Valid: true},
	}

	if err := s.users.Create(ctx, &u); err != nil {
		return accounts.User{}, err
	}

	return u, nil
}

// ChangeCredentials replaces the email and password of the User with the ID.
func (s *Service) ChangeCredentials(ctx context.Context, id uint, email, password string) error {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return err
	}

	return s.users.UpdateCredentials(ctx, id, email, hash)
}

// ReadSession verifies token and returns the Claims it encodes.
// An empty token returns ErrNoToken.
func (s *Service) ReadSession(token string) (Claims, error) {
	return s.tokens.Verify(token)
}

// createFederated inserts a password-less User for id.
// Losing a race against a concurrent insert for the same email yields the stored User.
func (s *Service) createFederated(ctx context.Context, id Identity) (accounts.User, error) {
	u := accounts.User{
		Firstname: truncate(id.Firstname, maxNameLen),
		Lastname:  truncate(id.Lastname, maxNameLen),
		Username:  truncate(id.Username, maxNameLen),
		Email:     id.Email,
	}

	err := s.users.Create(ctx, &u)
	if errors.Is(err, accounts.ErrExists) {
		return s.users.ByEmail(ctx, id.Email)
	}

	if err != nil {
		return accounts.User{}, err
	}

	return u, nil
}

func (s *Service) issue(u accounts.User) (Session, error) {
	claims := ClaimsFor(u)
	token, err := s.tokens.Issue(claims)
	if err != nil {
		return Session{}, err
	}

	return Session{Claims: claims, Token: token}, nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}

	return string(r[:n])
}
