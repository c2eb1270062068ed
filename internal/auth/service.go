package auth

import (
	"time"

	"github.com/mrlokans/authkeeper/internal/config"
	"github.com/mrlokans/authkeeper/internal/entities"
)

// Hash operation labels passed to a HashObserver.
const (
	HashOperationHash   = "hash"
	HashOperationVerify = "verify"
)

// HashObserver receives the duration of every bcrypt call.
type HashObserver func(operation string, elapsed time.Duration)

// Service binds the hasher and token codec to the process-wide auth config.
// It holds no per-request state and is safe for concurrent use.
type Service struct {
	config  config.Auth
	secret  []byte
	now     func() time.Time
	observe HashObserver
}

// Option configures a Service.
type Option func(*Service)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithHashObserver reports bcrypt timings, e.g. to metrics.
func WithHashObserver(observe HashObserver) Option {
	return func(s *Service) {
		s.observe = observe
	}
}

// NewService creates a new authentication service.
func NewService(cfg config.Auth, opts ...Option) *Service {
	s := &Service{
		config: cfg,
		secret: []byte(cfg.Secret),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// HashPassword hashes a plaintext password at the configured cost.
func (s *Service) HashPassword(password string) (string, error) {
	defer s.track(HashOperationHash, s.now())
	return HashPassword(password, s.config.BcryptCost)
}

// VerifyPassword reports whether password matches the stored hash.
func (s *Service) VerifyPassword(password, hash string) (bool, error) {
	defer s.track(HashOperationVerify, s.now())
	return CheckPassword(password, hash)
}

// IssueToken creates a token for user valid for the configured lifetime.
func (s *Service) IssueToken(user *entities.User) (string, error) {
	claims := NewClaims(user.ID, user.Username, s.now(), s.config.TokenLifetime)
	return IssueToken(claims, s.secret)
}

// VerifyToken checks signature and expiry against the current time.
// Errors wrap ErrMalformedToken, ErrInvalidSignature or ErrTokenExpired.
func (s *Service) VerifyToken(token string) (*Claims, error) {
	return ParseToken(token, s.secret, s.now())
}

// ExtractSubject returns the account id a valid token was issued for.
func (s *Service) ExtractSubject(token string) (string, error) {
	claims, err := s.VerifyToken(token)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

// TokenLifetime returns the configured token lifetime.
func (s *Service) TokenLifetime() time.Duration {
	return s.config.TokenLifetime
}

func (s *Service) track(operation string, start time.Time) {
	if s.observe != nil {
		s.observe(operation, s.now().Sub(start))
	}
}
