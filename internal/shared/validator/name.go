package validator

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

const TagNoDigits = "nodigits"

var (
	// noDigitsRegex rejects ASCII digits anywhere in the value
	noDigitsRegex = regexp.MustCompile(`^[^0-9]*$`)
)

// ValidateNoDigits validates that a text field (e.g. a person's name) holds no numbers
func ValidateNoDigits(fl validator.FieldLevel) bool {
	return noDigitsRegex.MatchString(fl.Field().String())
}
