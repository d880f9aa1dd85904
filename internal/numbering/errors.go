package numbering

import (
	"net/http"

	sharedError "github.com/sample1/member-api/internal/shared/error"
)

const (
	sequenceNotFound = "SEQUENCE_NOT_FOUND" // errInfo
	invalidNextValue = "INVALID_NEXT_VALUE" // errInfo
)

var (
	ErrSequenceNotFound = sharedError.NewDomainError(sequenceNotFound)
	ErrInvalidNextValue = sharedError.NewDomainError(invalidNextValue)
)

func init() {
	sharedError.RegisterDomainErrorResponse(sequenceNotFound, sharedError.ErrorResponse{
		Status:  http.StatusNotFound,
		Code:    "NUMBERING-001",
		Message: "채번 정보를 찾을 수 없습니다.",
	})

	sharedError.RegisterDomainErrorResponse(invalidNextValue, sharedError.ErrorResponse{
		Status:  http.StatusBadRequest,
		Code:    "NUMBERING-002",
		Message: "다음 값은 1 이상이어야 합니다.",
	})
}
