// Package interfaces documents the core abstractions used throughout the
// service and checks at compile time that the concrete types satisfy them.
//
// # Interface Categories
//
// ## Data Access
//
//   - AccountStore: account persistence (internal/services/account_service.go),
//     implemented by users.Repository
//   - Pinger: store reachability for the health check (internal/http/health.go),
//     implemented by database.Database
//
// ## Authentication
//
//   - TokenVerifier: bearer token verification used by the request gate
//     (internal/auth/middleware.go), implemented by auth.Service
//   - Authenticator: hashing and token issuance used by account orchestration
//     (internal/services/account_service.go), implemented by auth.Service
//
// ## HTTP
//
//   - AccountManager: what the controllers drive (internal/http/accounts.go),
//     implemented by services.AccountService
//
// # Adding a New Store
//
//  1. Create a sub-package under internal/database/
//  2. Implement services.AccountStore on a Repository with a *gorm.DB
//  3. Add a compile-time check to checks.go
package interfaces
