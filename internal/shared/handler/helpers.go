package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	sharedError "github.com/sample1/member-api/internal/shared/error"
	"github.com/sample1/member-api/internal/shared/middleware"
	"github.com/sample1/member-api/internal/shared/validator"
)

// DetailedError is implemented by domain errors that carry per-field details
type DetailedError interface {
	error
	FieldErrors() []sharedError.FieldError
}

// BindJSON parses and validates JSON request body
// Returns true if binding succeeded, false if failed (response already sent)
//
// Usage:
//
//	var req ResetRequest
//	if !handler.BindJSON(c, &req) {
//	    return
//	}
func BindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		// Add error to context for middleware logging
		c.Error(err)

		// Check if it's a validation error
		if resp, ok := validator.ToErrorResponse(err); ok {
			c.JSON(http.StatusBadRequest, resp)
		} else {
			// JSON parsing error or other binding errors
			c.JSON(sharedError.InvalidRequest.Status, sharedError.InvalidRequest)
		}
		return false
	}
	return true
}

// ParamInt64 parses a positive integer path parameter
// Returns false if parsing failed (response already sent)
func ParamInt64(c *gin.Context, name string) (int64, bool) {
	value, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || value < 1 {
		c.JSON(sharedError.InvalidRequest.Status, sharedError.InvalidRequest)
		return 0, false
	}
	return value, true
}

// RespondError sends an error response with logging
//
// Usage:
//
//	if err := service.DoSomething(); err != nil {
//	    handler.RespondError(c, err, sharedError.InternalServerError)
//	    return
//	}
func RespondError(c *gin.Context, err error, errResp sharedError.ErrorResponse) {
	// Add error to context for middleware logging
	c.Error(err)

	// Send error response
	c.JSON(errResp.Status, errResp)
}

// RespondDomainError resolves a registered domain error and attaches field
// details when the error carries them. Unregistered errors become 503 when the
// request deadline passed and 500 otherwise.
func RespondDomainError(c *gin.Context, err error) {
	resp, ok := sharedError.ResolveDomainError(err)
	if !ok {
		if errors.Is(err, context.DeadlineExceeded) || middleware.IsTimeout(c) {
			RespondError(c, err, sharedError.RequestTimeout)
			return
		}
		RespondError(c, err, sharedError.InternalServerError)
		return
	}

	var detailed DetailedError
	if errors.As(err, &detailed) {
		resp = resp.WithDetails(detailed.FieldErrors())
	}

	RespondError(c, err, resp)
}
