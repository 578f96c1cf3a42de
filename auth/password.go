package auth

import (
	"errors"
	"fmt"

	"github.com/xy-planning-network/accounts"
	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is the bcrypt work factor for stored passwords.
const DefaultCost = 10

// A Hasher hashes and verifies passwords with bcrypt.
type Hasher struct {
	cost int
}

// NewHasher constructs a Hasher using cost.
// Costs outside bcrypt's bounds fall back to DefaultCost.
func NewHasher(cost int) Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}

	return Hasher{cost: cost}
}

// Hash salts and hashes plaintext.
// Passwords longer than 72 bytes are not valid.
func (h Hasher) Hash(plaintext string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", fmt.Errorf("%w: password longer than 72 bytes", accounts.ErrNotValid)
	}

	if err != nil {
		return "", fmt.Errorf("%w: failed hashing password", accounts.ErrUnexpected)
	}

	return string(b), nil
}

// Verify asserts whether plaintext matches hash.
// A malformed hash never matches.
func (h Hasher) Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
