package validator

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

const TagDigitsOnly = "digitsonly"

var (
	// digitsRegex matches unsigned integers without separators or fraction
	// Formats: 08012345678 (length is checked separately with min/max)
	digitsRegex = regexp.MustCompile(`^[0-9]+$`)
)

// ValidateDigitsOnly validates a phone number stored as text
func ValidateDigitsOnly(fl validator.FieldLevel) bool {
	return digitsRegex.MatchString(fl.Field().String())
}
