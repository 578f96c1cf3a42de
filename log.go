package accounts

import (
	"log/slog"
	"net/url"
	"strings"
)

const (
	LogKindKey = "kind"
	LogMaskVal = "xxxxxx"
)

var (
	AppLogKind  = slog.StringValue("app")
	HTTPLogKind = slog.StringValue("http")
)

// SecretParams are the parameters whose values never reach a log:
// a password, a Google ID token and a session token.
var SecretParams = []string{"password", "credential", "token"}

// Mask replaces all values set for each of keys in vals with a single LogMaskVal.
// Keys compare case-insensitively.
func Mask(vals url.Values, keys ...string) {
	for k := range vals {
		for _, key := range keys {
			if strings.EqualFold(k, key) {
				vals[k] = []string{LogMaskVal}
				break
			}
		}
	}
}
