package accounts

import (
	"fmt"
	"strings"
)

// An Environment is a different context in which the accounts service operates.
type Environment string

const (
	Demo        Environment = "DEMO"
	Development Environment = "DEVELOPMENT"
	Production  Environment = "PRODUCTION"
	Review      Environment = "REVIEW"
	Staging     Environment = "STAGING"
	Testing     Environment = "TESTING"
)

var _ Enumerable = Development

func (e Environment) String() string { return string(e) }

func (e Environment) Valid() error {
	switch e {
	case Demo, Development, Production, Review, Staging, Testing:
		return nil
	default:
		return fmt.Errorf("%w: %q is not an Environment", ErrNotValid, string(e))
	}
}

// UnmarshalText parses an Environment case-insensitively.
//
// UnmarshalText implements [encoding.TextUnmarshaler].
func (e *Environment) UnmarshalText(text []byte) error {
	env := Environment(strings.ToUpper(strings.TrimSpace(string(text))))
	if err := env.Valid(); err != nil {
		return err
	}

	*e = env
	return nil
}

// CanUseServiceStub asserts whether the Environment allows for setting up with stubbed out services,
// for those services that support stubbing.
func (e Environment) CanUseServiceStub() bool {
	switch e {
	case Demo, Development, Testing:
		return true
	default:
		return false
	}
}

func (e Environment) IsDevelopment() bool { return e == Development }

func (e Environment) IsProduction() bool { return e == Production }
