package config

// DefaultDatabaseURL is the default location of the account store.
const DefaultDatabaseURL = "./authkeeper.db"

// DefaultProtectedPrefixes lists the path prefixes that require a bearer token
// when AUTH_PROTECTED_PREFIXES is not set.
const DefaultProtectedPrefixes = "/api/profile,/api/protected"

// DefaultBcryptCost is the work factor used when BCRYPT_COST is not set.
const DefaultBcryptCost = 12
