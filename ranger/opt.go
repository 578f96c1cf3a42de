package ranger

import (
	"fmt"
	"io"

	"github.com/xy-planning-network/accounts"
	"github.com/xy-planning-network/accounts/auth"
)

// A RangerOption configures a *Ranger before New wires its components together.
type RangerOption func(*Ranger) error

// WithLogOutput writes the app and HTTP logs to w instead of os.Stdout.
func WithLogOutput(w io.Writer) RangerOption {
	return func(r *Ranger) error {
		if w == nil {
			return fmt.Errorf("%w: log output cannot be nil", accounts.ErrBadConfig)
		}

		r.out = w
		return nil
	}
}

// WithUserStore uses store instead of connecting to the configured database.
func WithUserStore(store accounts.UserStore) RangerOption {
	return func(r *Ranger) error {
		if store == nil {
			return fmt.Errorf("%w: user store cannot be nil", accounts.ErrBadConfig)
		}

		r.users = store
		return nil
	}
}

// WithIdentityVerifier verifies federated identities with v instead of Google.
func WithIdentityVerifier(v auth.IdentityVerifier) RangerOption {
	return func(r *Ranger) error {
		r.identities = v
		return nil
	}
}

// WithHasher hashes passwords with h.
func WithHasher(h auth.Hasher) RangerOption {
	return func(r *Ranger) error {
		r.serviceOpts = append(r.serviceOpts, auth.WithHasher(h))
		return nil
	}
}
