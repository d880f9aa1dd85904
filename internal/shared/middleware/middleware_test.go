package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	sharedContext "github.com/sample1/member-api/internal/shared/context"
	sharedError "github.com/sample1/member-api/internal/shared/error"
	"github.com/sample1/member-api/internal/shared/middleware"
	"github.com/sample1/member-api/internal/shared/testutil"
	"github.com/sample1/member-api/internal/shared/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestID(t *testing.T) {
	router := testutil.SetupTestRouter()
	router.Use(middleware.RequestID())
	router.GET("/", func(c *gin.Context) { c.String(http.StatusOK, middleware.GetRequestID(c)) })

	testCases := []struct {
		name     string
		incoming string
		keep     bool
	}{
		{"generated when missing", "", false},
		{"propagated when valid", "req-123", true},
		{"replaced when too long", strings.Repeat("a", 65), false},
		{"replaced when it has spaces", "a b", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.incoming != "" {
				req.Header.Set(middleware.RequestIDHeader, tc.incoming)
			}
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, req)

			got := recorder.Header().Get(middleware.RequestIDHeader)
			require.NotEmpty(t, got)
			assert.Equal(t, got, recorder.Body.String())
			if tc.keep {
				assert.Equal(t, tc.incoming, got)
			} else {
				assert.NotEqual(t, tc.incoming, got)
			}
		})
	}
}

func TestTimeout_RespondsWhenHandlerDidNotWrite(t *testing.T) {
	router := testutil.SetupTestRouter()
	router.Use(middleware.Timeout(10 * time.Millisecond))
	router.GET("/slow", func(c *gin.Context) {
		<-c.Request.Context().Done()
	})

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/slow", nil))

	assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)
	var errorResponse sharedError.ErrorResponse
	testutil.ParseResponse(t, recorder, &errorResponse)
	assert.Equal(t, sharedError.RequestTimeout.Code, errorResponse.Code)
}

func TestTimeout_FastHandlerUntouched(t *testing.T) {
	router := testutil.SetupTestRouter()
	router.Use(middleware.Timeout(time.Second))
	router.GET("/fast", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/fast", nil))

	assert.Equal(t, http.StatusNoContent, recorder.Code)
}

func newJWTRouter(manager token.Manager) *gin.Engine {
	router := testutil.SetupTestRouter()
	router.Use(middleware.JWT(manager))
	router.GET("/admin", func(c *gin.Context) {
		operator, _ := sharedContext.GetOperatorID(c)
		c.String(http.StatusOK, operator)
	})
	return router
}

func TestJWT(t *testing.T) {
	manager := testutil.NewMockTokenManager()
	manager.ValidateTokenFunc = func(tokenString string) (*token.Claims, error) {
		switch tokenString {
		case "good":
			return &token.Claims{OperatorID: "admin", TokenType: token.ACCESS}, nil
		case "refresh":
			return &token.Claims{OperatorID: "admin", TokenType: token.REFRESH}, nil
		case "expired":
			return nil, token.ErrExpiredToken
		default:
			return nil, token.ErrInvalidToken
		}
	}
	router := newJWTRouter(manager)

	testCases := []struct {
		name   string
		header string
		status int
	}{
		{"valid access token", "Bearer good", http.StatusOK},
		{"lowercase scheme", "bearer good", http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic good", http.StatusUnauthorized},
		{"refresh token", "Bearer refresh", http.StatusUnauthorized},
		{"expired token", "Bearer expired", http.StatusUnauthorized},
		{"garbage token", "Bearer nope", http.StatusUnauthorized},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			if tc.header != "" {
				req.Header.Set(middleware.AuthorizationHeader, tc.header)
			}
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, req)

			assert.Equal(t, tc.status, recorder.Code)
			if tc.status == http.StatusOK {
				assert.Equal(t, "admin", recorder.Body.String())
			}
		})
	}
}
