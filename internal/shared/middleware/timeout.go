package middleware

import (
	"context"
	"log/slog"
	"time"

	sharedError "github.com/sample1/member-api/internal/shared/error"

	"github.com/gin-gonic/gin"
)

const DefaultTimeout = 30 * time.Second

// Timeout sets a deadline on the request context.
// Handlers and GORM queries observe it through c.Request.Context(); when the
// deadline passes before anything was written, a 503 response is sent.
func Timeout(timeout time.Duration) gin.HandlerFunc {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)

		c.Next()

		if ctx.Err() != context.DeadlineExceeded {
			return
		}

		slog.Warn("Request deadline exceeded",
			"request_id", GetRequestID(c),
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
			"timeout", timeout.String(),
			"status", c.Writer.Status(),
		)

		if !c.Writer.Written() {
			resp := sharedError.RequestTimeout
			c.AbortWithStatusJSON(resp.Status, resp)
		}
	}
}

// IsTimeout reports whether the request deadline has passed
func IsTimeout(c *gin.Context) bool {
	return c.Request.Context().Err() == context.DeadlineExceeded
}
