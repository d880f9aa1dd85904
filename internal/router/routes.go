package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sample1/member-api/internal/auth"
	"github.com/sample1/member-api/internal/config"
	"github.com/sample1/member-api/internal/member"
	"github.com/sample1/member-api/internal/meta"
	"github.com/sample1/member-api/internal/numbering"
	"github.com/sample1/member-api/internal/shared/database"
	"github.com/sample1/member-api/internal/shared/metrics"
	"github.com/sample1/member-api/internal/shared/middleware"
	"github.com/sample1/member-api/internal/shared/token"
)

// Setup configures all application-specific routes using dependency injection
func Setup(router *gin.Engine, cfg *config.Config, db *database.DB, recorder metrics.Recorder, gatherer prometheus.Gatherer) {
	// Meta handler (health check, metrics)
	metaHandler := meta.NewHandler(cfg, db)
	router.GET("/health", metaHandler.Health)
	if cfg.Metrics.Enabled && gatherer != nil {
		router.GET(cfg.Metrics.Path, gin.WrapH(metrics.Handler(gatherer)))
	}

	// repository
	memberRepository := member.NewMemberRepository()
	numberingRepository := numbering.NewNumberingRepository(cfg.Numbering.InitialValue)

	// shared services
	tokenManager := token.NewJWTManager(cfg)

	// service
	authService := auth.NewAuthService(cfg.Admin, tokenManager)
	numberingService := numbering.NewNumberingService(db.DB, numberingRepository, recorder)
	memberService := member.NewMemberService(db.DB, memberRepository, numberingService, member.NewValidator(), recorder)

	// handler
	authHandler := auth.NewAuthHandler(authService)
	numberingHandler := numbering.NewNumberingHandler(numberingService)
	memberHandler := member.NewMemberHandler(memberService)

	// API v1 routes
	authV1 := router.Group("/api/v1/auth")
	{
		authV1.POST("/login", authHandler.Login)
		authV1.POST("/refresh", authHandler.Refresh)
	}

	memberV1 := router.Group("/api/v1/members")
	{
		memberV1.POST("", memberHandler.Register)
		memberV1.GET("", memberHandler.List)
		memberV1.POST("/validate", memberHandler.Validate)
		memberV1.GET("/:id", memberHandler.Get)
		memberV1.PUT("/:id", memberHandler.Update)
		memberV1.DELETE("/:id", memberHandler.Delete)
	}

	adminV1 := router.Group("/api/v1/admin")
	adminV1.Use(middleware.JWT(tokenManager))
	{
		adminV1.GET("/numbering/:seqId", numberingHandler.Get)
		adminV1.PUT("/numbering/:seqId", numberingHandler.Reset)
	}
}
