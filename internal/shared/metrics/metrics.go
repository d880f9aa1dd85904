// Package metrics exposes Prometheus collectors for the member registry.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Conflict kinds reported through RecordConflict
const (
	ConflictEmail   = "email"
	ConflictVersion = "version"
)

// Recorder is the interface used by services to report domain events
type Recorder interface {
	RecordValidationFailure(field, rule string)
	RecordConflict(kind string)
	RecordIdentityAllocated(seqID string)
	RecordSequenceReset(seqID string)
}

// Collector is the Prometheus implementation of Recorder plus HTTP metrics
type Collector struct {
	validationFailures *prometheus.CounterVec
	conflicts          *prometheus.CounterVec
	allocations        *prometheus.CounterVec
	resets             *prometheus.CounterVec
	httpRequests       *prometheus.CounterVec
	httpDuration       *prometheus.HistogramVec
}

// NewCollector creates a Collector and registers its metrics on reg
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		validationFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "member_validation_failures_total",
			Help: "Member field violations by field and rule",
		}, []string{"field", "rule"}),
		conflicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "member_conflicts_total",
			Help: "Rejected member writes by conflict kind",
		}, []string{"kind"}),
		allocations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "numbering_allocations_total",
			Help: "Identity values handed out by sequence",
		}, []string{"seq_id"}),
		resets: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "numbering_resets_total",
			Help: "Administrator resets by sequence",
		}, []string{"seq_id"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by method, route and status",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	reg.MustRegister(
		c.validationFailures,
		c.conflicts,
		c.allocations,
		c.resets,
		c.httpRequests,
		c.httpDuration,
	)

	return c
}

func (c *Collector) RecordValidationFailure(field, rule string) {
	c.validationFailures.WithLabelValues(field, rule).Inc()
}

func (c *Collector) RecordConflict(kind string) {
	c.conflicts.WithLabelValues(kind).Inc()
}

func (c *Collector) RecordIdentityAllocated(seqID string) {
	c.allocations.WithLabelValues(seqID).Inc()
}

func (c *Collector) RecordSequenceReset(seqID string) {
	c.resets.WithLabelValues(seqID).Inc()
}

// Middleware records request count and latency per route template
func (c *Collector) Middleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()

		route := ctx.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := ctx.Request.Method

		c.httpRequests.WithLabelValues(method, route, strconv.Itoa(ctx.Writer.Status())).Inc()
		c.httpDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}

// Handler returns the Prometheus scrape handler
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// NopRecorder discards every event
type NopRecorder struct{}

func (NopRecorder) RecordValidationFailure(string, string) {}
func (NopRecorder) RecordConflict(string)                  {}
func (NopRecorder) RecordIdentityAllocated(string)         {}
func (NopRecorder) RecordSequenceReset(string)             {}

var (
	_ Recorder = (*Collector)(nil)
	_ Recorder = NopRecorder{}
)
