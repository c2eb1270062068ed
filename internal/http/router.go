package http

import (
	"github.com/gin-gonic/gin"

	"github.com/mrlokans/authkeeper/internal/auth"
	"github.com/mrlokans/authkeeper/internal/logger"
	"github.com/mrlokans/authkeeper/internal/metrics"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(logger.GinRequestLogger(logger.Component(cfg.Logger, "http")))
	router.Use(gin.Recovery())

	// Apply security headers to all responses
	router.Use(auth.SecurityHeadersMiddleware())
	router.Use(auth.StrictTransportSecurityMiddleware())

	// The gate runs before every handler, including 404s under a protected prefix.
	var gateOpts []auth.MiddlewareOption
	if cfg.MetricsEnabled {
		gateOpts = append(gateOpts, auth.WithDecisionHook(func(o auth.Outcome) {
			metrics.ObserveGateDecision(string(o))
		}))
	}
	gate := auth.NewMiddleware(cfg.AuthService, cfg.AuthConfig, logger.Component(cfg.Logger, "gate"), gateOpts...)
	router.Use(gate.Handler())

	healthController := NewHealthController(cfg.Database, cfg.Logger)
	accountController := NewAccountController(cfg.Accounts, cfg.Logger)
	profileController := NewProfileController(cfg.Accounts, cfg.Logger)

	api := router.Group("/api")
	{
		api.GET("/health", healthController.Status)
		api.POST("/register", accountController.Register)
		api.POST("/login", accountController.Login)
		api.GET("/profile", profileController.Profile)
		api.GET("/protected/whoami", profileController.Whoami)
	}

	if cfg.MetricsEnabled {
		router.GET("/metrics", gin.WrapH(metrics.Handler()))
	}

	return router
}
