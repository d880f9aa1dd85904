package auth

import (
	"net/http"

	sharedError "github.com/sample1/member-api/internal/shared/error"
)

const (
	incorrectCredentials = "INCORRECT_CREDENTIALS" // errInfo
	invalidRefreshToken  = "INVALID_REFRESH_TOKEN" // errInfo
)

var (
	ErrIncorrectCredentials = sharedError.NewDomainError(incorrectCredentials)
	ErrInvalidRefreshToken  = sharedError.NewDomainError(invalidRefreshToken)
)

func init() {
	sharedError.RegisterDomainErrorResponse(incorrectCredentials, sharedError.ErrorResponse{
		Status:  http.StatusUnauthorized,
		Code:    "AUTH-003",
		Message: "아이디 또는 비밀번호가 일치하지 않습니다.",
	})

	sharedError.RegisterDomainErrorResponse(invalidRefreshToken, sharedError.ErrorResponse{
		Status:  http.StatusUnauthorized,
		Code:    "AUTH-004",
		Message: "다시 로그인해 주세요.",
	})
}
