package model

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var hhmmPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// RegisterValidations adds the custom binding validations used by request
// structs. Must be called once at startup against gin's validator engine.
func RegisterValidations(v *validator.Validate) error {
	return v.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
		return hhmmPattern.MatchString(fl.Field().String())
	})
}
