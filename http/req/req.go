package req

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"

	"github.com/xy-planning-network/accounts"
)

// MaxBodySize caps the bytes ParseBody reads.
const MaxBodySize = 1 << 20

// A Parser decodes request payloads into structs and validates them.
type Parser struct {
	params paramDecoder
	validator
}

func NewParser() *Parser {
	return &Parser{
		params:    newParamDecoder(),
		validator: newValidator(),
	}
}

// ParseBody decodes into a pointer to a struct the JSON data in body.
// If successful, ParseBody runs validation against the contents,
// returning ValidationErrors, which wrap ErrNotValid, if the data fails validation rules.
//
// ParseBody reads at most MaxBodySize bytes of body.
func (p *Parser) ParseBody(body io.Reader, structPtr any) error {
	var ourFault *json.InvalidUnmarshalError
	err := json.NewDecoder(io.LimitReader(body, MaxBodySize)).Decode(structPtr)
	if errors.As(err, &ourFault) {
		return fmt.Errorf("accounts/http/req: %w: ParseBody called with non-pointer: %s", accounts.ErrBadAny, err)
	}

	if err != nil {
		return fmt.Errorf("accounts/http/req: %w: failed decoding request body: %s", accounts.ErrBadFormat, err)
	}

	if err := p.validate(structPtr); err != nil {
		return fmt.Errorf("accounts/http/req: %T failed validation: %w", structPtr, err)
	}

	return nil
}

// ParsePathParams decodes into a pointer to a struct the route variables in vars,
// as returned by mux.Vars.
// If successful, ParsePathParams runs validation against the contents.
func (p *Parser) ParsePathParams(vars map[string]string, structPtr any) error {
	vals := make(url.Values, len(vars))
	for k, v := range vars {
		vals.Set(k, v)
	}

	if err := p.params.decode(structPtr, vals); err != nil {
		return fmt.Errorf("accounts/http/req: failed decoding request path params: %w", err)
	}

	if err := p.validate(structPtr); err != nil {
		return fmt.Errorf("accounts/http/req: %T failed validation: %w", structPtr, err)
	}

	return nil
}
