package bootstrap

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sample1/member-api/internal/config"
	sharedError "github.com/sample1/member-api/internal/shared/error"
	"github.com/sample1/member-api/internal/shared/metrics"
	"github.com/sample1/member-api/internal/shared/middleware"
)

// Bootstrap handles common server setup that can be reused across projects
type Bootstrap struct {
	cfg       *config.Config
	collector *metrics.Collector
}

// NewBootstrap creates a new bootstrap instance
// collector may be nil when metrics are disabled
func NewBootstrap(cfg *config.Config, collector *metrics.Collector) *Bootstrap {
	return &Bootstrap{
		cfg:       cfg,
		collector: collector,
	}
}

// SetupEngine creates and configures a gin engine with common middleware
func (b *Bootstrap) SetupEngine() *gin.Engine {
	// Set Gin mode based on environment
	if b.cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	// Disable Gin's default logger (using slog)
	gin.DefaultWriter = io.Discard
	gin.DefaultErrorWriter = io.Discard

	// Create engine without default middleware
	engine := gin.New()

	// Essential middleware (common for all projects)
	engine.Use(gin.CustomRecovery(b.recoveryHandler))
	engine.Use(middleware.RequestID())
	engine.Use(middleware.CORS(b.cfg))
	if b.collector != nil {
		engine.Use(b.collector.Middleware())
	}
	engine.Use(middleware.Timeout(b.cfg.Server.RequestTimeout))
	engine.Use(middleware.LoggerMiddleware())

	return engine
}

// recoveryHandler handles panics
func (b *Bootstrap) recoveryHandler(c *gin.Context, recovered interface{}) {
	slog.Error("Panic Recovered",
		"error", recovered,
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
		"request_id", middleware.GetRequestID(c),
	)
	c.AbortWithStatusJSON(http.StatusInternalServerError, sharedError.InternalServerError)
}
