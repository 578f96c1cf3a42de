package auth

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/xy-planning-network/accounts"
	"google.golang.org/api/idtoken"
	"google.golang.org/api/option"
)

//go:generate mockgen -destination=../mocks/mock_identity_verifier.go -package=mocks . IdentityVerifier

// An Identity is what a federated identity provider asserts about a user.
type Identity struct {
	Email     string
	Firstname string
	Lastname  string
	Username  string
}

// An IdentityVerifier validates a third-party identity token and extracts the Identity in it.
type IdentityVerifier interface {
	Verify(ctx context.Context, token string) (Identity, error)
}

// GoogleVerifier verifies Google-issued ID tokens for one OAuth client.
type GoogleVerifier struct {
	audience  string
	validator *idtoken.Validator
}

// NewGoogleVerifier constructs a *GoogleVerifier accepting tokens whose audience is clientID.
// opts configure the client fetching Google's public keys.
func NewGoogleVerifier(ctx context.Context, clientID string, opts ...option.ClientOption) (*GoogleVerifier, error) {
	if clientID == "" {
		return nil, fmt.Errorf(`%w: google client id cannot be ""`, accounts.ErrBadConfig)
	}

	v, err := idtoken.NewValidator(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", accounts.ErrBadConfig, err)
	}

	return &GoogleVerifier{audience: clientID, validator: v}, nil
}

// Verify validates token's signature, issuer, expiry and audience
// and maps its claims into an Identity.
func (g *GoogleVerifier) Verify(ctx context.Context, token string) (Identity, error) {
	payload, err := g.validator.Validate(ctx, token, g.audience)
	if err != nil && strings.Contains(err.Error(), "audience") {
		return Identity{}, fmt.Errorf("%w: %s", ErrInvalidAudience, err)
	}

	if err != nil {
		return Identity{}, fmt.Errorf("%w: %s", ErrInvalidToken, err)
	}

	return IdentityFromPayload(payload)
}

// IdentityFromPayload maps the claims of a validated Google ID token into an Identity.
//
// Google does not assert a username, so the local part of the email stands in for one.
// A payload without an email, or without Google vouching for it, returns ErrInvalidToken.
func IdentityFromPayload(p *idtoken.Payload) (Identity, error) {
	if p == nil {
		return Identity{}, fmt.Errorf("%w: no payload", ErrInvalidToken)
	}

	email := claimString(p.Claims, "email")
	if email == "" {
		return Identity{}, fmt.Errorf("%w: no email claim", ErrInvalidToken)
	}

	if !emailVerified(p.Claims["email_verified"]) {
		return Identity{}, fmt.Errorf("%w: email %s is not verified", ErrInvalidToken, email)
	}

	id := Identity{
		Email:     email,
		Firstname: claimString(p.Claims, "given_name"),
		Lastname:  claimString(p.Claims, "family_name"),
		Username:  strings.SplitN(email, "@", 2)[0],
	}

	if id.Firstname == "" {
		id.Firstname = claimString(p.Claims, "name")
	}

	return id, nil
}

// emailVerified reports whether the email_verified claim is true.
// Some issuers send it as the string "true".
func emailVerified(claim any) bool {
	switch v := claim.(type) {
	case bool:
		return v
	case string:
		ok, err := strconv.ParseBool(strings.TrimSpace(v))
		return err == nil && ok
	default:
		return false
	}
}

func claimString(claims map[string]any, key string) string {
	s, _ := claims[key].(string)
	return strings.TrimSpace(s)
}
