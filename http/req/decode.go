package req

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/gorilla/schema"
	"github.com/xy-planning-network/accounts"
)

type paramDecoder struct {
	dec *schema.Decoder
}

func newParamDecoder() paramDecoder {
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	dec.SetAliasTag("schema")

	return paramDecoder{dec}
}

func (d paramDecoder) decode(structPtr any, vals url.Values) error {
	if err := d.dec.Decode(structPtr, vals); err != nil {
		return translateDecoderError(err)
	}

	return nil
}

// translateDecoderError converts an error returned by *schema.Decoder into standardized errors.
// Some are issues with calling code, some are unexpected
// and the rest are mismatches between the request's params and the expected shape.
func translateDecoderError(err error) error {
	var pkgErrs schema.MultiError
	if !errors.As(err, &pkgErrs) {
		return fmt.Errorf("%w: %s", accounts.ErrBadFormat, err)
	}

	var validErrs ValidationErrors
	for key, pkgErr := range pkgErrs {
		var ce schema.ConversionError
		var ee schema.EmptyFieldError
		switch {
		case errors.As(pkgErr, &ce):
			validErrs = append(validErrs, ValidationError{
				Field: ce.Key,
				Got:   "bad value",
				Rule:  "must be " + ce.Type.String(),
			})

		case errors.As(pkgErr, &ee):
			return fmt.Errorf(`%w: use validate tags to set "required" fields, not schema`, accounts.ErrNotImplemented)

		case strings.Contains(pkgErr.Error(), "schema: converter not found for"):
			return fmt.Errorf("%w: cannot convert %s into unsupported type", accounts.ErrNotImplemented, key)

		default:
			return fmt.Errorf("%w: %s", accounts.ErrUnexpected, pkgErr)
		}
	}

	return validErrs
}
