// Package auth issues and verifies bearer session tokens.
//
// It is built from four pieces:
//   - password.go: bcrypt hashing and verification with a configurable cost
//   - token.go: HS256 signed tokens carrying {sub, username, iat, exp}
//   - service.go: Service, which binds both to the process-wide config.Auth
//   - middleware.go: the request gate that enforces bearer tokens on
//     protected path prefixes and attaches the verified Identity
//
// # Configuration
//
//	JWT_SECRET=<random string>               # HMAC signing secret (required)
//	JWT_EXPIRATION=86400                     # token lifetime in seconds
//	BCRYPT_COST=12                           # bcrypt cost factor
//	AUTH_PROTECTED_PREFIXES=/api/profile,/api/protected
//
// # Usage
//
//	authService := auth.NewService(cfg.Auth)
//	gate := auth.NewMiddleware(authService, cfg.Auth, log)
//	router.Use(gate.Handler())
//
// Read the caller in handlers:
//
//	identity, ok := auth.IdentityFromContext(c.Request.Context())
package auth
