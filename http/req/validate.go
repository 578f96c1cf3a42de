package req

import (
	"errors"
	"reflect"
	"strings"

	v10 "github.com/go-playground/validator/v10"
	"github.com/xy-planning-network/accounts"
)

// BcryptMaxBytes is the most bytes of a password bcrypt hashes.
const BcryptMaxBytes = 72

type validator struct {
	valid *v10.Validate
}

// newValidator constructs a validator naming fields by their json or schema tag.
func newValidator() validator {
	v := v10.New(v10.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		for _, tag := range []string{"json", "schema"} {
			name := strings.SplitN(field.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}

		return ""
	})

	// bcryptmax counts bytes where max counts runes.
	if err := v.RegisterValidation("bcryptmax", func(fl v10.FieldLevel) bool {
		return len(fl.Field().String()) <= BcryptMaxBytes
	}); err != nil {
		panic(err)
	}

	return validator{v}
}

// validate checks the fields on structPtr match the rules set by "validate" struct tags.
// On failure, validate translates each issue to a ValidationError,
// returning them all as ValidationErrors.
//
// The values of fields named password are masked.
func (v validator) validate(structPtr any) error {
	err := v.valid.Struct(structPtr)
	if err == nil {
		return nil
	}

	var errs v10.ValidationErrors
	if !errors.As(err, &errs) {
		return err
	}

	var validateErrs ValidationErrors
	for _, ve := range errs {
		field := ve.Namespace()
		if ns := strings.SplitN(field, ".", 2); len(ns) == 2 {
			field = ns[1]
		}

		rule := ve.Tag()
		if ve.Param() != "" {
			rule += "=" + ve.Param()
		}
		rule += "; " + ve.Type().String()

		got := ve.Value()
		if strings.Contains(strings.ToLower(ve.Field()), "password") {
			got = accounts.LogMaskVal
		}

		validateErrs = append(validateErrs, ValidationError{
			Field: field,
			Got:   got,
			Rule:  rule,
		})
	}

	return validateErrs
}
