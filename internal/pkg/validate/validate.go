package validate

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
)

// TagTOTPCode accepts exactly six ASCII digits.
const TagTOTPCode = "totp_code"

var totpCodePattern = regexp.MustCompile(`^[0-9]{6}$`)

// v is the package-level singleton validator. Custom tags are registered once
// at package load time, before the first call to Struct.
var v = newValidator()

func newValidator() *validator.Validate {
	val := validator.New(validator.WithRequiredStructEnabled())
	if err := val.RegisterValidation(TagTOTPCode, func(fl validator.FieldLevel) bool {
		return totpCodePattern.MatchString(fl.Field().String())
	}); err != nil {
		panic(fmt.Sprintf("register %s validation: %v", TagTOTPCode, err))
	}
	return val
}

// FieldError reports the first struct field that failed its tag.
type FieldError struct {
	Field string
	Tag   string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field '%s' failed '%s'", e.Field, e.Tag)
}

// Struct validates the given struct using its validate tags. Fields are
// checked in declaration order and the first failure is returned as a
// *FieldError.
func Struct(s interface{}) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) || len(ve) == 0 {
		return err
	}
	return &FieldError{Field: ve[0].Field(), Tag: ve[0].Tag()}
}
