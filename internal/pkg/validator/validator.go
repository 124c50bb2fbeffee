package validator

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	validate *validator.Validate

	regionPattern = regexp.MustCompile(`^[a-z0-9-]+$`)
)

func init() {
	validate = validator.New()
	// region: catalog key, lowercase letters, digits and dashes.
	_ = validate.RegisterValidation("region", func(fl validator.FieldLevel) bool {
		return regionPattern.MatchString(fl.Field().String())
	})
}

// Validate validates a struct against its tags.
func Validate(s interface{}) error {
	return validate.Struct(s)
}

// GetValidator exposes the shared validator for custom rules.
func GetValidator() *validator.Validate {
	return validate
}
