package accounts_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/accounts"
)

func TestKeyString(t *testing.T) {
	require.Equal(t, "accounts context key: ClaimsKey", accounts.ClaimsKey.String())
}

func TestKeyDistinct(t *testing.T) {
	// Arrange
	ctx := context.WithValue(context.Background(), accounts.RequestIDKey, "abc")

	// Act + Assert
	require.Equal(t, "abc", ctx.Value(accounts.RequestIDKey))
	require.Nil(t, ctx.Value(accounts.IpAddrKey))
	require.Nil(t, ctx.Value("RequestIDKey"))
}
