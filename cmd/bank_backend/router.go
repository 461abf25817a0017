package main

import (
	"fmt"
	"log/slog"

	portssvc "github.com/SscSPs/bank_api/internal/core/ports/services"
	"github.com/SscSPs/bank_api/internal/handlers"
	"github.com/SscSPs/bank_api/internal/middleware"
	"github.com/SscSPs/bank_api/internal/platform/config"
	"github.com/SscSPs/bank_api/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
)

// newRouter builds the gin engine with the global middleware chain and all routes.
func newRouter(
	cfg *config.Config,
	logger *slog.Logger,
	serviceContainer *portssvc.ServiceContainer,
	rateLimiter *limiter.Limiter,
	posthogClient *utils.PosthogClientWrapper,
) (*gin.Engine, error) {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery)
	r.Use(
		middleware.StructuredLoggingMiddleware(logger),
		gin.Recovery(),
		middleware.CORS(cfg.CORSAllowedOrigins),
		middleware.RateLimit(rateLimiter),
		middleware.PosthogMiddleware(posthogClient),
	)

	if err := r.SetTrustedProxies(nil); err != nil {
		return nil, fmt.Errorf("failed to set trusted proxies: %w", err)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer)
	return r, nil
}
