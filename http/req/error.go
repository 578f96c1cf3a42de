package req

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xy-planning-network/accounts"
)

// A ValidationError is an issue with a concrete value not matching the rule set on its field.
type ValidationError struct {
	Field string `json:"field"`
	Got   any    `json:"got"`
	Rule  string `json:"rule,omitempty"`
}

// ValidationErrors is a set of ValidationError.
type ValidationErrors []ValidationError

// Error lists each failed field as "field: rule (got value)".
func (v ValidationErrors) Error() string {
	msgs := make([]string, 0, len(v))
	for _, err := range v {
		msgs = append(msgs, fmt.Sprintf("%s: %s (got %v)", err.Field, err.Rule, err.Got))
	}

	return strings.Join(msgs, "; ")
}

// MarshalJSON renders v as {"validationErrors": [...]}, the body of a 400 response.
func (v ValidationErrors) MarshalJSON() ([]byte, error) {
	var errs struct {
		E []ValidationError `json:"validationErrors,omitempty"`
	}
	errs.E = append(errs.E, v...)

	return json.Marshal(errs)
}

func (ValidationErrors) Unwrap() error { return accounts.ErrNotValid }
