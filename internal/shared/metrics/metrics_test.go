package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_DomainCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordValidationFailure("name", "pattern")
	c.RecordValidationFailure("name", "pattern")
	c.RecordConflict(ConflictVersion)
	c.RecordIdentityAllocated("MemberId")
	c.RecordSequenceReset("MemberId")

	assert.Equal(t, float64(2), testutil.ToFloat64(c.validationFailures.WithLabelValues("name", "pattern")))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.conflicts.WithLabelValues(ConflictVersion)))
	assert.Equal(t, float64(0), testutil.ToFloat64(c.conflicts.WithLabelValues(ConflictEmail)))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.allocations.WithLabelValues("MemberId")))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.resets.WithLabelValues("MemberId")))
}

func TestCollector_Middleware(t *testing.T) {
	// Given: A router instrumented with the collector
	gin.SetMode(gin.TestMode)
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	router := gin.New()
	router.Use(c.Middleware())
	router.GET("/api/v1/members/:id", func(ctx *gin.Context) { ctx.Status(http.StatusNotFound) })

	// When
	for _, path := range []string{"/api/v1/members/1", "/api/v1/members/2", "/nowhere"} {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	// Then: Labels use the route template, not the raw path
	assert.Equal(t, float64(2), testutil.ToFloat64(c.httpRequests.WithLabelValues("GET", "/api/v1/members/:id", "404")))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.httpRequests.WithLabelValues("GET", "unmatched", "404")))
}

func TestHandler_ExposesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.RecordConflict(ConflictEmail)

	srv := httptest.NewServer(Handler(reg))
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.Contains(string(body), `member_conflicts_total{kind="email"} 1`))
}
