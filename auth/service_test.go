package auth_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/accounts"
	"github.com/xy-planning-network/accounts/auth"
	"github.com/xy-planning-network/accounts/mocks"
	"golang.org/x/crypto/bcrypt"
)

type serviceFixture struct {
	hasher     auth.Hasher
	identities *mocks.MockIdentityVerifier
	service    *auth.Service
	tokens     *auth.Tokens
	users      *mocks.MockUserStore
}

func newServiceFixture(t *testing.T) serviceFixture {
	ctrl := gomock.NewController(t)

	f := serviceFixture{
		hasher:     auth.NewHasher(bcrypt.MinCost),
		identities: mocks.NewMockIdentityVerifier(ctrl),
		users:      mocks.NewMockUserStore(ctrl),
	}

	var err error
	f.tokens, err = auth.NewTokens(testSecret)
	require.Nil(t, err)

	f.service, err = auth.NewService(
		f.users,
		f.tokens,
		auth.WithHasher(f.hasher),
		auth.WithIdentityVerifier(f.identities),
	)
	require.Nil(t, err)

	return f
}

func (f serviceFixture) userWithPassword(t *testing.T, password string) accounts.User {
	hash, err := f.hasher.Hash(password)
	require.Nil(t, err)

	u := newTestUser()
	u.Password = sql.NullString{String: hash, Valid: true}
	return u
}

func TestNewService(t *testing.T) {
	tokens, err := auth.NewTokens(testSecret)
	require.Nil(t, err)

	_, err = auth.NewService(nil, tokens)
	require.ErrorIs(t, err, accounts.ErrBadConfig)

	ctrl := gomock.NewController(t)
	_, err = auth.NewService(mocks.NewMockUserStore(ctrl), nil)
	require.ErrorIs(t, err, accounts.ErrBadConfig)
}

func TestServiceLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("Match", func(t *testing.T) {
		// Arrange
		f := newServiceFixture(t)
		u := f.userWithPassword(t, "secret1")
		f.users.EXPECT().ByEmail(ctx, u.Email).Return(u, nil)

		// Act
		s, err := f.service.Login(ctx, u.Email, "secret1")

		// Assert
		require.Nil(t, err)
		require.Equal(t, auth.ClaimsFor(u), s.Claims)

		claims, err := f.tokens.Verify(s.Token)
		require.Nil(t, err)
		require.Equal(t, s.Claims, claims)
	})

	rejections := []struct {
		name  string
		setup func(f serviceFixture) (email string)
	}{
		{
			"Unknown-Email",
			func(f serviceFixture) string {
				f.users.EXPECT().ByEmail(ctx, "nobody@example.com").Return(accounts.User{}, accounts.ErrNotFound)
				return "nobody@example.com"
			},
		},
		{
			"Wrong-Password",
			func(f serviceFixture) string {
				u := f.userWithPassword(t, "secret1")
				f.users.EXPECT().ByEmail(ctx, u.Email).Return(u, nil)
				return u.Email
			},
		},
		{
			"No-Local-Password",
			func(f serviceFixture) string {
				u := newTestUser()
				f.users.EXPECT().ByEmail(ctx, u.Email).Return(u, nil)
				return u.Email
			},
		},
	}

	var seen []error
	for _, tc := range rejections {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			f := newServiceFixture(t)
			email := tc.setup(f)

			// Act
			s, err := f.service.Login(ctx, email, "wrong-password")

			// Assert
			require.ErrorIs(t, err, auth.ErrCredentials)
			require.Zero(t, s)
			seen = append(seen, err)
		})
	}

	t.Run("Indistinguishable", func(t *testing.T) {
		require.Len(t, seen, len(rejections))
		for _, err := range seen {
			require.Equal(t, seen[0].Error(), err.Error())
		}
	})

	t.Run("Store-Failure", func(t *testing.T) {
		// Arrange
		f := newServiceFixture(t)
		storeErr := fmt.Errorf("%w: connection refused", accounts.ErrUnexpected)
		f.users.EXPECT().ByEmail(ctx, "ada@example.com").Return(accounts.User{}, storeErr)

		// Act
		_, err := f.service.Login(ctx, "ada@example.com", "secret1")

		// Assert
		require.ErrorIs(t, err, accounts.ErrUnexpected)
		require.NotErrorIs(t, err, auth.ErrCredentials)
	})
}

func TestServiceFederatedLogin(t *testing.T) {
	ctx := context.Background()
	id := auth.Identity{Email: "ada@example.com", Firstname: "Ada", Lastname: "Lovelace", Username: "ada"}

	t.Run("Not-Configured", func(t *testing.T) {
		// Arrange
		ctrl := gomock.NewController(t)
		tokens, err := auth.NewTokens(testSecret)
		require.Nil(t, err)

		service, err := auth.NewService(mocks.NewMockUserStore(ctrl), tokens, auth.WithHasher(auth.NewHasher(bcrypt.MinCost)))
		require.Nil(t, err)

		// Act
		_, err = service.FederatedLogin(ctx, "id-token")

		// Assert
		require.ErrorIs(t, err, accounts.ErrBadConfig)
	})

	t.Run("Rejected-Token", func(t *testing.T) {
		// Arrange
		f := newServiceFixture(t)
		f.identities.EXPECT().Verify(ctx, "id-token").Return(auth.Identity{}, auth.ErrInvalidAudience)

		// Act
		_, err := f.service.FederatedLogin(ctx, "id-token")

		// Assert
		require.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("Email-Too-Long", func(t *testing.T) {
		// Arrange
		f := newServiceFixture(t)
		long := id
		long.Email = strings.Repeat("a", 39) + "@example.com"
		f.identities.EXPECT().Verify(ctx, "id-token").Return(long, nil)

		// Act
		_, err := f.service.FederatedLogin(ctx, "id-token")

		// Assert
		require.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("Existing-User", func(t *testing.T) {
		// Arrange
		f := newServiceFixture(t)
		u := f.userWithPassword(t, "secret1")
		f.identities.EXPECT().Verify(ctx, "id-token").Return(id, nil)
		f.users.EXPECT().ByEmail(ctx, id.Email).Return(u, nil)

		// Act
		s, err := f.service.FederatedLogin(ctx, "id-token")

		// Assert
		require.Nil(t, err)
		require.Equal(t, u.ID, s.Claims.ID)
	})

	t.Run("New-User", func(t *testing.T) {
		// Arrange
		f := newServiceFixture(t)
		f.identities.EXPECT().Verify(ctx, "id-token").Return(id, nil)
		f.users.EXPECT().ByEmail(ctx, id.Email).Return(accounts.User{}, accounts.ErrNotFound)
		f.users.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, u *accounts.User) error {
			require.False(t, u.HasPassword())
			require.Equal(t, id.Email, u.Email)
			u.ID = 7
			return nil
		})

		// Act
		s, err := f.service.FederatedLogin(ctx, "id-token")

		// Assert
		require.Nil(t, err)
		require.Equal(t, uint(7), s.Claims.ID)
		require.Equal(t, "ada", s.Claims.Username)
	})

	t.Run("Lost-Create-Race", func(t *testing.T) {
		// Arrange
		f := newServiceFixture(t)
		winner := newTestUser()
		f.identities.EXPECT().Verify(ctx, "id-token").Return(id, nil)
		gomock.InOrder(
			f.users.EXPECT().ByEmail(ctx, id.Email).Return(accounts.User{}, accounts.ErrNotFound),
			f.users.EXPECT().Create(ctx, gomock.Any()).Return(fmt.Errorf("%w: SQLSTATE 23505", accounts.ErrExists)),
			f.users.EXPECT().ByEmail(ctx, id.Email).Return(winner, nil),
		)

		// Act
		s, err := f.service.FederatedLogin(ctx, "id-token")

		// Assert
		require.Nil(t, err)
		require.Equal(t, winner.ID, s.Claims.ID)
	})
}

func TestServiceSignup(t *testing.T) {
	ctx := context.Background()
	nu := auth.NewUser{
		Firstname: "A",
		Lastname:  "B",
		Username:  "ab",
		Email:     "a@b.com",
		Password:  "secret1",
	}

	t.Run("Created", func(t *testing.T) {
		// Arrange
		f := newServiceFixture(t)
		f.users.EXPECT().EmailExists(ctx, nu.Email).Return(false, nil)
		f.users.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, u *accounts.User) error {
			u.ID = 1
			return nil
		})

		// Act
		u, err := f.service.Signup(ctx, nu)

		// Assert
		require.Nil(t, err)
		require.Equal(t, uint(1), u.ID)
		require.True(t, u.HasPassword())
		require.NotEqual(t, nu.Password, u.Password.String)
		require.True(t, f.hasher.Verify(nu.Password, u.Password.String))
	})

	t.Run("Email-Taken", func(t *testing.T) {
		// Arrange
		f := newServiceFixture(t)
		f.users.EXPECT().EmailExists(ctx, nu.Email).Return(true, nil)

		// Act
		_, err := f.service.Signup(ctx, nu)

		// Assert
		require.ErrorIs(t, err, accounts.ErrExists)
	})

	t.Run("Constraint-Violation", func(t *testing.T) {
		// Arrange
		f := newServiceFixture(t)
		f.users.EXPECT().EmailExists(ctx, nu.Email).Return(false, nil)
		f.users.EXPECT().Create(ctx, gomock.Any()).Return(fmt.Errorf("%w: SQLSTATE 23505", accounts.ErrExists))

		// Act
		_, err := f.service.Signup(ctx, nu)

		// Assert
		require.ErrorIs(t, err, accounts.ErrExists)
	})

	t.Run("Store-Failure", func(t *testing.T) {
		// Arrange
		f := newServiceFixture(t)
		f.users.EXPECT().EmailExists(ctx, nu.Email).Return(false, errors.New("boom"))

		// Act
		_, err := f.service.Signup(ctx, nu)

		// Assert
		require.Equal(t, accounts.KindStoreFailure, accounts.KindOf(err))
	})
}

func TestServiceChangeCredentials(t *testing.T) {
	// Arrange
	ctx := context.Background()
	f := newServiceFixture(t)
	f.users.EXPECT().
		UpdateCredentials(ctx, uint(3), "new@example.com", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uint, _, hash string) error {
			require.True(t, f.hasher.Verify("secret2", hash))
			return nil
		})

	// Act
	err := f.service.ChangeCredentials(ctx, 3, "new@example.com", "secret2")

	// Assert
	require.Nil(t, err)
}

func TestServiceReadSession(t *testing.T) {
	// Arrange
	f := newServiceFixture(t)
	expected := auth.ClaimsFor(newTestUser())
	token, err := f.tokens.Issue(expected)
	require.Nil(t, err)

	// Act
	actual, err := f.service.ReadSession(token)
	_, emptyErr := f.service.ReadSession("")

	// Assert
	require.Nil(t, err)
	require.Equal(t, expected, actual)
	require.ErrorIs(t, emptyErr, auth.ErrNoToken)
}
