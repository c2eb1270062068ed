package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Global
		Database
		Auth
		Log
		Metrics
	}

	HTTP struct {
		Port int32
		Host string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		URL string // sqlite path, sqlite:// URL or postgres:// URL
	}
	// Auth is shared by value with every authentication component and is
	// never modified after NewConfig returns.
	Auth struct {
		Secret            string
		TokenLifetime     time.Duration
		BcryptCost        int
		ProtectedPrefixes []string
	}
	Log struct {
		Level  string
		Format string // "json" or "console"
	}
	Metrics struct {
		Enabled bool
	}
)

// Bcrypt accepts costs in this range; anything else fails at hash time.
const (
	MinBcryptCost = 4
	MaxBcryptCost = 31
)

func NewConfig() *Config {
	// A missing .env file is fine: production deployments set real env vars.
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("server_host", "127.0.0.1")
	v.SetDefault("server_port", 8080)
	v.SetDefault("shutdown_timeout_in_seconds", 5)
	v.SetDefault("database_url", DefaultDatabaseURL)

	// Auth defaults
	v.SetDefault("jwt_secret", "")
	v.SetDefault("jwt_expiration", 86400) // seconds
	v.SetDefault("bcrypt_cost", DefaultBcryptCost)
	v.SetDefault("auth_protected_prefixes", DefaultProtectedPrefixes)

	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "console")
	v.SetDefault("metrics_enabled", true)

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("SERVER_PORT"),
			Host: v.GetString("SERVER_HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			URL: v.GetString("DATABASE_URL"),
		},
		Auth: Auth{
			Secret:            v.GetString("JWT_SECRET"),
			TokenLifetime:     time.Duration(v.GetInt64("JWT_EXPIRATION")) * time.Second,
			BcryptCost:        v.GetInt("BCRYPT_COST"),
			ProtectedPrefixes: splitPrefixes(v.GetString("AUTH_PROTECTED_PREFIXES")),
		},
		Log: Log{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		Metrics: Metrics{
			Enabled: v.GetBool("METRICS_ENABLED"),
		},
	}
}

// Validate reports configuration that would make the server unsafe or unusable.
func (c *Config) Validate() error {
	var errs []error
	if c.Database.URL == "" {
		errs = append(errs, errors.New("DATABASE_URL must not be empty"))
	}
	if err := c.Auth.Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		errs = append(errs, fmt.Errorf("SERVER_PORT %d is out of range", c.HTTP.Port))
	}
	return errors.Join(errs...)
}

// Validate checks the settings shared by the hasher, token codec and gate.
func (a Auth) Validate() error {
	var errs []error
	if a.Secret == "" {
		errs = append(errs, errors.New("JWT_SECRET must be set"))
	}
	if a.TokenLifetime <= 0 {
		errs = append(errs, fmt.Errorf("JWT_EXPIRATION must be positive, got %s", a.TokenLifetime))
	}
	if a.BcryptCost < MinBcryptCost || a.BcryptCost > MaxBcryptCost {
		errs = append(errs, fmt.Errorf("BCRYPT_COST must be between %d and %d, got %d", MinBcryptCost, MaxBcryptCost, a.BcryptCost))
	}
	if len(a.ProtectedPrefixes) == 0 {
		errs = append(errs, errors.New("AUTH_PROTECTED_PREFIXES must list at least one prefix"))
	}
	return errors.Join(errs...)
}

func splitPrefixes(raw string) []string {
	var prefixes []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			prefixes = append(prefixes, p)
		}
	}
	return prefixes
}
