package auth_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/accounts"
	"github.com/xy-planning-network/accounts/auth"
	"golang.org/x/crypto/bcrypt"
)

func TestHasher(t *testing.T) {
	// Arrange
	h := auth.NewHasher(bcrypt.MinCost)

	// Act
	hash, err := h.Hash("secret1")

	// Assert
	require.Nil(t, err)
	require.NotEqual(t, "secret1", hash)
	require.True(t, h.Verify("secret1", hash))
	require.False(t, h.Verify("secret2", hash))
	require.False(t, h.Verify("secret1", "not-a-hash"))
	require.False(t, h.Verify("secret1", ""))

	// Arrange + Act
	again, err := h.Hash("secret1")

	// Assert
	require.Nil(t, err)
	require.NotEqual(t, hash, again)
}

func TestHasherCost(t *testing.T) {
	for _, tc := range []struct {
		name     string
		cost     int
		expected int
	}{
		{"Default", auth.DefaultCost, auth.DefaultCost},
		{"Too-Low", 1, auth.DefaultCost},
		{"Too-High", 99, auth.DefaultCost},
		{"Min", bcrypt.MinCost, bcrypt.MinCost},
	} {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			h := auth.NewHasher(tc.cost)

			// Act
			hash, err := h.Hash("secret1")
			require.Nil(t, err)

			actual, err := bcrypt.Cost([]byte(hash))

			// Assert
			require.Nil(t, err)
			require.Equal(t, tc.expected, actual)
		})
	}
}

func TestHasherLongPassword(t *testing.T) {
	// Arrange
	h := auth.NewHasher(bcrypt.MinCost)

	// Act
	_, err := h.Hash(strings.Repeat("é", 40))

	// Assert
	require.ErrorIs(t, err, accounts.ErrNotValid)
}
