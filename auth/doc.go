/*
Package auth authenticates users of the accounts service.

# Passwords

Local passwords are stored as bcrypt hashes with a fixed cost. A Hasher creates and checks them.

# Tokens

A successful login yields a Session: the Claims identifying the user and the HS256 JWT encoding them.
The token travels in a cookie; the cookie's max-age is the only lifetime the token has unless a TTL is configured.

# Google

Federated login accepts a Google ID token, verifies it against the configured client ID
and matches the account by email, creating a password-less account on first login.
*/
package auth
