package http

import (
	"github.com/rs/zerolog"

	"github.com/mrlokans/authkeeper/internal/auth"
	"github.com/mrlokans/authkeeper/internal/config"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	Accounts    AccountManager
	AuthService *auth.Service
	Database    Pinger

	// Gate configuration; ProtectedPrefixes decides which paths need a token.
	AuthConfig config.Auth

	Logger zerolog.Logger

	// Expose /metrics and count gate decisions
	MetricsEnabled bool
}
