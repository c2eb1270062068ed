package entrypoint

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/mrlokans/authkeeper/internal/auth"
	"github.com/mrlokans/authkeeper/internal/config"
	"github.com/mrlokans/authkeeper/internal/database"
	"github.com/mrlokans/authkeeper/internal/database/users"
	http_controllers "github.com/mrlokans/authkeeper/internal/http"
	"github.com/mrlokans/authkeeper/internal/logger"
	"github.com/mrlokans/authkeeper/internal/metrics"
	"github.com/mrlokans/authkeeper/internal/services"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// App holds the wired components of a running server.
type App struct {
	Router   *gin.Engine
	Database *database.Database
	Auth     *auth.Service
}

// Close releases the database connection pool.
func (a *App) Close() error {
	return a.Database.Close()
}

// NewApp opens the store and wires the auth service, account service and
// router from cfg.
func NewApp(cfg *config.Config, log zerolog.Logger) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	db, err := database.NewDatabase(cfg.Database.URL, logger.Component(log, "database"))
	if err != nil {
		return nil, err
	}

	var authOpts []auth.Option
	var accountOpts []services.AccountOption
	if cfg.Metrics.Enabled {
		authOpts = append(authOpts, auth.WithHashObserver(metrics.ObservePasswordHash))
		accountOpts = append(accountOpts, services.WithOperationObserver(metrics.ObserveAccountOperation))
	}

	authService := auth.NewService(cfg.Auth, authOpts...)
	accounts := services.NewAccountService(
		users.NewRepository(db.DB),
		authService,
		logger.Component(log, "accounts"),
		accountOpts...,
	)

	router := http_controllers.NewRouter(http_controllers.RouterConfig{
		Accounts:       accounts,
		AuthService:    authService,
		Database:       db,
		AuthConfig:     cfg.Auth,
		Logger:         log,
		MetricsEnabled: cfg.Metrics.Enabled,
	})

	return &App{Router: router, Database: db, Auth: authService}, nil
}

// Serve runs the HTTP server until SIGINT or SIGTERM, then shuts it down
// within the configured timeout.
func Serve(router *gin.Engine, cfg *config.Config, log zerolog.Logger, onShutdown ShutdownFunc) error {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Dur("timeout", timeout).Msg("shutting down server")
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Drain in-flight requests before releasing what they use.
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	if onShutdown != nil {
		onShutdown(ctx)
	}

	log.Info().Msg("server exiting")
	return nil
}

func Run(cfg *config.Config, version string) {
	log := logger.New(cfg.Log)
	log.Info().Str("version", version).Msg("starting authkeeper")

	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	app, err := NewApp(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize")
	}

	err = Serve(app.Router, cfg, log, func(ctx context.Context) {
		if err := app.Close(); err != nil {
			log.Error().Err(err).Msg("error closing database")
		}
	})
	if err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
