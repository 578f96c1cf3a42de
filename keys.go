package accounts

type Key string

const (
	// ClaimsKey stashes the verified session claims of an HTTP request.
	ClaimsKey Key = "ClaimsKey"

	// IpAddrKey stashes the IP address of an HTTP request.
	IpAddrKey Key = "IpAddrKey"

	// RequestIDKey stashes a unique UUID for each HTTP request.
	RequestIDKey Key = "RequestIDKey"
)

// String formats the stringified key with additional contextual information
func (k Key) String() string {
	return "accounts context key: " + string(k)
}
