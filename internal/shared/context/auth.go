package context

import (
	"net/http"

	sharedError "github.com/sample1/member-api/internal/shared/error"
	"github.com/sample1/member-api/internal/shared/logger"

	"github.com/gin-gonic/gin"
)

// Context keys for storing operator authentication information
const (
	OperatorIDKey = "operator_id"
	TokenTypeKey  = "token_type"
)

func GetOperatorID(c *gin.Context) (string, bool) {
	operatorID, exists := c.Get(OperatorIDKey)
	if !exists {
		return "", false
	}

	id, ok := operatorID.(string)
	if !ok || id == "" {
		return "", false
	}

	return id, true
}

// RequireOperatorID retrieves the authenticated operator from the Gin context.
// If it is missing, an authentication error response is sent and false is returned.
func RequireOperatorID(c *gin.Context) (string, bool) {
	operatorID, ok := GetOperatorID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, sharedError.ErrorResponse{
			Status:  http.StatusUnauthorized,
			Code:    "AUTH-000",
			Message: "로그인을 해주세요.",
		})
		c.Abort()
		logger.FromContext(c.Request.Context()).Error("[API] context에 운영자 ID가 존재하지 않습니다.")
		return "", false
	}
	return operatorID, true
}
