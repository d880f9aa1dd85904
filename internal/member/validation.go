package member

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/sample1/member-api/internal/model"
	sharedValidator "github.com/sample1/member-api/internal/shared/validator"
)

// InitialVersion is the version of a newly created member
const InitialVersion int64 = 0

// Violation is one failed rule on one field
type Violation struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

// ValidationResult lists violations in field declaration order; empty means valid
type ValidationResult struct {
	Violations []Violation
}

func (r ValidationResult) Valid() bool {
	return len(r.Violations) == 0
}

// characterRules are checked again when the length rule of the same field
// failed, since validator stops at the first failing tag of a field
var characterRules = map[string]struct{ tag, rule string }{
	"name":        {tag: sharedValidator.TagNoDigits, rule: sharedValidator.RulePattern},
	"phoneNumber": {tag: sharedValidator.TagDigitsOnly, rule: sharedValidator.RuleDigits},
}

// Validator checks member field constraints.
// It holds no mutable state and is safe for concurrent use.
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	return &Validator{validate: sharedValidator.New()}
}

// Validate checks name, membershipCd, email and phoneNumber of candidate.
// ID and Version are managed by storage and are not inspected.
// Every failing rule is reported, in field declaration order.
func (v *Validator) Validate(candidate *model.Member) ValidationResult {
	if candidate == nil {
		return ValidationResult{Violations: []Violation{{Field: "member", Rule: sharedValidator.RuleRequired}}}
	}

	err := v.validate.Struct(candidate)
	if err == nil {
		return ValidationResult{}
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return ValidationResult{Violations: []Violation{{Field: "member", Rule: sharedValidator.RuleRequired}}}
	}

	violations := make([]Violation, 0, len(validationErrors))
	for _, fe := range validationErrors {
		rule := sharedValidator.RuleOf(fe)
		violations = append(violations, Violation{Field: fe.Field(), Rule: rule})

		extra, ok := characterRules[fe.Field()]
		if !ok || rule != sharedValidator.RuleSize {
			continue
		}
		if err := v.validate.Var(fe.Value(), extra.tag); err != nil {
			violations = append(violations, Violation{Field: fe.Field(), Rule: extra.rule})
		}
	}
	return ValidationResult{Violations: violations}
}

// NextVersion is the version stored by a successful update of a member read at current
func NextVersion(current int64) int64 {
	return current + 1
}
