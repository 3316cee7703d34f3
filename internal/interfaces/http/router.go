package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/GeoRose/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/GeoRose/internal/interfaces/http/handlers"
	"github.com/turtacn/GeoRose/internal/interfaces/http/middleware"
	"github.com/turtacn/GeoRose/pkg/errors"
)

// RouterConfig aggregates all handler and middleware dependencies required
// to construct the complete HTTP route tree.  Nil entries are skipped.
type RouterConfig struct {
	// Mode is the gin mode: debug, release or test.
	Mode string

	// Handlers
	DiagramHandler *handlers.DiagramHandler
	HealthHandler  *handlers.HealthHandler

	// Middleware
	Logger        logging.Logger
	LoggingConfig middleware.LoggingConfig
	CORS          *middleware.CORSConfig
	RateLimiter   middleware.RateLimiter
	HTTPMetrics   middleware.HTTPMetrics
	MaxBodySize   int64

	// MetricsHandler serves MetricsPath when set.
	MetricsHandler http.Handler
	MetricsPath    string
}

// NewRouter constructs the complete HTTP route tree from the given
// configuration: global middleware, public health and metrics endpoints,
// and the /api/v1 diagram group.
func NewRouter(cfg RouterConfig) *gin.Engine {
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}
	r := gin.New()
	r.HandleMethodNotAllowed = true

	// --- Global middleware (applied to every request) ---
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	if cfg.HTTPMetrics != nil {
		r.Use(middleware.Metrics(cfg.HTTPMetrics))
	}
	if cfg.Logger != nil {
		r.Use(middleware.RequestLogging(cfg.Logger, cfg.LoggingConfig))
	}
	if cfg.CORS != nil {
		r.Use(middleware.CORS(*cfg.CORS))
	}

	// --- Public health and metrics endpoints ---
	if cfg.HealthHandler != nil {
		cfg.HealthHandler.RegisterRoutes(r)
	}
	if cfg.MetricsHandler != nil {
		path := cfg.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		r.GET(path, gin.WrapH(cfg.MetricsHandler))
	}

	// --- API v1 ---
	api := r.Group("/api/v1")
	if cfg.RateLimiter != nil {
		api.Use(middleware.RateLimit(cfg.RateLimiter, middleware.DefaultRateLimitConfig()))
	}
	if cfg.MaxBodySize > 0 {
		api.Use(middleware.BodyLimit(cfg.MaxBodySize))
	}
	if cfg.DiagramHandler != nil {
		cfg.DiagramHandler.RegisterRoutes(api)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, handlers.ErrorResponse{
			Code:    errors.ErrCodeNotFound.String(),
			Message: "route not found",
		})
	})
	return r
}

//Personal.AI order the ending
