package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sample1/member-api/internal/shared/handler"
)

type AuthHandler struct {
	authService *AuthService
}

func NewAuthHandler(authService *AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

func (a *AuthHandler) Login(c *gin.Context) {
	var request LoginRequest

	// Parse and validate JSON request
	if !handler.BindJSON(c, &request) {
		return
	}

	response, err := a.authService.Login(c.Request.Context(), &request)
	if err != nil {
		handler.RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (a *AuthHandler) Refresh(c *gin.Context) {
	var request RefreshRequest

	if !handler.BindJSON(c, &request) {
		return
	}

	response, err := a.authService.Refresh(c.Request.Context(), &request)
	if err != nil {
		handler.RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}
