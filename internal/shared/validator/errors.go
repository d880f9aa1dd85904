package validator

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"
	sharedError "github.com/sample1/member-api/internal/shared/error"
)

// Rule identifiers reported to clients, independent of validator tag names
const (
	RuleRequired = "required"
	RuleSize     = "size"
	RuleRange    = "range"
	RulePattern  = "pattern"
	RuleEmail    = "email"
	RuleDigits   = "digits"
)

// ToErrorResponse converts gin binding/validator errors into a standardized response.
func ToErrorResponse(err error) (*sharedError.ErrorResponse, bool) {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil, false
	}

	if len(validationErrors) == 0 {
		return nil, false
	}

	details := ToFieldErrors(validationErrors)

	// 메시지는 첫 번째 오류 기준 (사용자 친화적), 전체 목록은 details
	resp := sharedError.ValidationFailed.WithDetails(details)
	resp.Message = details[0].Message
	return &resp, true
}

// ToFieldErrors keeps validator order, which is struct field declaration order
func ToFieldErrors(validationErrors validator.ValidationErrors) []sharedError.FieldError {
	details := make([]sharedError.FieldError, 0, len(validationErrors))
	for _, fe := range validationErrors {
		details = append(details, sharedError.FieldError{
			Field:   fe.Field(),
			Rule:    RuleOf(fe),
			Message: getErrorMessage(fe),
		})
	}
	return details
}

// RuleOf maps a validator tag to the rule identifier exposed by the API
func RuleOf(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return RuleRequired
	case "min", "max", "len":
		if isSized(fe.Kind()) {
			return RuleSize
		}
		return RuleRange
	case "email":
		return RuleEmail
	case TagNoDigits:
		return RulePattern
	case TagDigitsOnly:
		return RuleDigits
	default:
		return fe.Tag()
	}
}

// MessageFor returns the client message for a rule on a field, used when
// violations are produced outside of a validator.ValidationErrors value
func MessageFor(field, rule string) string {
	switch rule {
	case RuleRequired:
		return "필수 항목을 입력해 주세요."
	case RuleSize:
		return fmt.Sprintf("'%s' 필드의 길이가 올바르지 않습니다.", field)
	case RuleRange:
		return fmt.Sprintf("'%s' 필드의 값이 허용 범위를 벗어났습니다.", field)
	case RuleEmail:
		return "이메일 형식이 올바르지 않습니다."
	case RulePattern:
		return "숫자를 포함할 수 없습니다."
	case RuleDigits:
		return "숫자만 입력 가능합니다."
	default:
		return fmt.Sprintf("'%s' 필드가 올바르지 않습니다.", field)
	}
}

// getErrorMessage returns user-friendly error message for validation error
func getErrorMessage(fe validator.FieldError) string {
	sized := isSized(fe.Kind())

	switch {
	case fe.Tag() == "min" && sized:
		return fmt.Sprintf("최소 %s자 이상이어야 합니다.", fe.Param())
	case fe.Tag() == "max" && sized:
		return fmt.Sprintf("최대 %s자까지 입력 가능합니다.", fe.Param())
	case fe.Tag() == "min":
		return fmt.Sprintf("%s 이상이어야 합니다.", fe.Param())
	case fe.Tag() == "max":
		return fmt.Sprintf("%s 이하여야 합니다.", fe.Param())
	default:
		return MessageFor(fe.Field(), RuleOf(fe))
	}
}

func isSized(kind reflect.Kind) bool {
	switch kind {
	case reflect.String, reflect.Slice, reflect.Map, reflect.Array:
		return true
	default:
		return false
	}
}
