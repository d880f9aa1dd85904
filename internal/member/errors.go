package member

import (
	"fmt"
	"net/http"
	"strings"

	sharedError "github.com/sample1/member-api/internal/shared/error"
	sharedValidator "github.com/sample1/member-api/internal/shared/validator"
)

const (
	memberNotFound     = "MEMBER_NOT_FOUND"     // errInfo
	emailAlreadyExists = "EMAIL_ALREADY_EXISTS" // errInfo
	memberInvalid      = "MEMBER_INVALID"       // errInfo
	memberVersionStale = "MEMBER_VERSION_STALE" // errInfo
)

var (
	ErrMemberNotFound     = sharedError.NewDomainError(memberNotFound)
	ErrEmailAlreadyExists = sharedError.NewDomainError(emailAlreadyExists)
	ErrVersionConflict    = sharedError.NewDomainError(memberVersionStale)
)

func init() {
	sharedError.RegisterDomainErrorResponse(memberNotFound, sharedError.ErrorResponse{
		Status:  http.StatusNotFound,
		Code:    "MEMBER-001",
		Message: "회원 정보를 찾을 수 없습니다.",
	})

	sharedError.RegisterDomainErrorResponse(emailAlreadyExists, sharedError.ErrorResponse{
		Status:  http.StatusConflict,
		Code:    "MEMBER-002",
		Message: "이미 등록된 이메일입니다.",
	})

	sharedError.RegisterDomainErrorResponse(memberInvalid, sharedError.ErrorResponse{
		Status:  http.StatusBadRequest,
		Code:    "MEMBER-003",
		Message: "회원 정보가 올바르지 않습니다.",
	})

	sharedError.RegisterDomainErrorResponse(memberVersionStale, sharedError.ErrorResponse{
		Status:  http.StatusConflict,
		Code:    "MEMBER-004",
		Message: "다른 사용자가 먼저 수정했습니다. 다시 조회 후 시도해 주세요.",
	})
}

// ValidationError carries every field violation of a rejected member
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, v.Field+":"+v.Rule)
	}
	return fmt.Sprintf("%s [%s]", memberInvalid, strings.Join(parts, ", "))
}

func (e *ValidationError) Info() string {
	return memberInvalid
}

// FieldErrors exposes the violations in the shared error response format
func (e *ValidationError) FieldErrors() []sharedError.FieldError {
	details := make([]sharedError.FieldError, 0, len(e.Violations))
	for _, v := range e.Violations {
		details = append(details, sharedError.FieldError{
			Field:   v.Field,
			Rule:    v.Rule,
			Message: sharedValidator.MessageFor(v.Field, v.Rule),
		})
	}
	return details
}

var _ sharedError.DomainError = (*ValidationError)(nil)
