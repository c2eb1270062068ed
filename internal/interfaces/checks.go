package interfaces

// This file contains compile-time interface implementation checks.
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/authkeeper/internal/auth"
	"github.com/mrlokans/authkeeper/internal/database"
	"github.com/mrlokans/authkeeper/internal/database/users"
	"github.com/mrlokans/authkeeper/internal/http"
	"github.com/mrlokans/authkeeper/internal/services"
)

// =============================================================================
// Data Access Layer
// =============================================================================

var _ services.AccountStore = (*users.Repository)(nil)

var _ http.Pinger = (*database.Database)(nil)

// =============================================================================
// Authentication
// =============================================================================

var _ auth.TokenVerifier = (*auth.Service)(nil)

var _ services.Authenticator = (*auth.Service)(nil)

// =============================================================================
// HTTP Layer
// =============================================================================

var _ http.AccountManager = (*services.AccountService)(nil)
