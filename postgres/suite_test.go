package postgres_test

import (
	"context"
	"database/sql"
	"errors"
	"io/fs"
	"os"
	"testing"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/suite"
	"github.com/xy-planning-network/accounts"
	"github.com/xy-planning-network/accounts/postgres"
)

// StoreTestSuite runs UserStore against a real PostgreSQL database.
// It skips unless DATABASE_TEST_URL is set, by the environment or ../.env.
type StoreTestSuite struct {
	suite.Suite

	db    *postgres.DB
	store *postgres.UserStore
}

func TestRunSuite(t *testing.T) {
	suite.Run(t, new(StoreTestSuite))
}

func (s *StoreTestSuite) SetupSuite() {
	err := godotenv.Load("../.env")
	var pe *fs.PathError
	if err != nil && !errors.As(err, &pe) {
		s.Require().FailNow(err.Error())
	}

	url := os.Getenv("DATABASE_TEST_URL")
	if url == "" {
		s.T().Skip("DATABASE_TEST_URL not set")
	}

	cfg := &postgres.CxnConfig{IsTestDB: true, URL: url}
	s.db, err = postgres.Connect(cfg, postgres.Migrations(), accounts.Testing, nil)
	s.Require().Nil(err)

	s.store = postgres.NewUserStore(s.db)
}

func (s *StoreTestSuite) TearDownTest() {
	s.Require().Nil(postgres.WipeDB(s.db.DB(), "public"))
}

func (s *StoreTestSuite) TestLifecycle() {
	ctx := context.Background()

	// Arrange
	u := &accounts.User{
		Firstname: "Ada",
		Lastname:  "Lovelace",
		Username:  "ada",
		Email:     "ada@example.com",
		Password:  sql.NullString{String: "hash", Valid: true},
	}

	// Act + Assert
	s.Require().Nil(s.store.Create(ctx, u))
	s.Require().NotZero(u.ID)

	exists, err := s.store.EmailExists(ctx, u.Email)
	s.Require().Nil(err)
	s.Require().True(exists)

	dup := &accounts.User{Firstname: "Other", Lastname: "User", Username: "other", Email: u.Email}
	s.Require().ErrorIs(s.store.Create(ctx, dup), accounts.ErrExists)

	s.Require().Nil(s.store.UpdateCredentials(ctx, u.ID, "ada@lovelace.dev", "new-hash"))

	actual, err := s.store.ByID(ctx, u.ID)
	s.Require().Nil(err)
	s.Require().Equal("ada@lovelace.dev", actual.Email)
	s.Require().Equal("new-hash", actual.Password.String)

	all, err := s.store.All(ctx)
	s.Require().Nil(err)
	s.Require().Len(all, 1)

	s.Require().Nil(s.store.Delete(ctx, u.ID))
	s.Require().ErrorIs(s.store.Delete(ctx, u.ID), accounts.ErrNotFound)

	_, err = s.store.ByEmail(ctx, "ada@lovelace.dev")
	s.Require().ErrorIs(err, accounts.ErrNotFound)
}

func (s *StoreTestSuite) TestFederatedUserHasNoPassword() {
	ctx := context.Background()

	// Arrange
	u := &accounts.User{Firstname: "Grace", Lastname: "Hopper", Username: "grace", Email: "grace@example.com"}
	s.Require().Nil(s.store.Create(ctx, u))

	// Act
	actual, err := s.store.ByEmail(ctx, u.Email)

	// Assert
	s.Require().Nil(err)
	s.Require().False(actual.HasPassword())
}
