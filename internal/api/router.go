// Package api wires the gin router: middleware, public routes, and the
// gated endpoints.
package api

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/lead-intake/internal/auth"
	"github.com/jonesrussell/lead-intake/internal/config"
	"github.com/jonesrussell/lead-intake/internal/handlers"
	"github.com/jonesrussell/lead-intake/internal/logger"
	"github.com/jonesrussell/lead-intake/internal/metrics"
)

const corsMaxAgeHours = 12

type Handlers struct {
	Lead       *handlers.LeadHandler
	Transcribe *handlers.TranscribeHandler
}

func NewRouter(cfg *config.Config, h Handlers, m *metrics.Metrics, version string, log logger.Logger) *gin.Engine {
	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// CORS middleware - must be first
	router.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Server.CORSOrigins,
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{
			"Origin", "Content-Type", "Content-Length", "Accept-Encoding",
			"accept", "origin", "Cache-Control", "X-Requested-With", auth.HeaderAPIKey,
		},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        corsMaxAgeHours * time.Hour,
	}))

	router.Use(recoveryMiddleware(log))
	router.Use(requestLogger(log))
	router.Use(metricsMiddleware(m))

	router.GET("/health", handlers.Health(version))
	router.GET("/", handlers.Root(version))
	router.GET("/metrics", gin.WrapH(m.Handler()))

	gated := router.Group("/", auth.Middleware(cfg.APIKey))
	gated.POST("/lead-intake", h.Lead.Submit)
	gated.POST("/transcribe", h.Transcribe.Upload)
	gated.GET("/leads/:id", h.Lead.GetByID)

	return router
}
