package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/mrlokans/authkeeper/internal/config"
)

// Client-facing rejection messages. The specific token failure is never exposed.
const (
	MessageMissingAuthorization = "Missing or invalid authorization header"
	MessageInvalidToken         = "Invalid or expired token"
)

const bearerPrefix = "Bearer "

// Envelope is the JSON body of every API response, including gate rejections.
// Data is null on errors.
type Envelope struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// Outcome is the terminal state the gate reached for a request.
type Outcome string

const (
	OutcomePublic        Outcome = "public"
	OutcomeForwarded     Outcome = "forwarded"
	OutcomeMissingHeader Outcome = "missing_header"
	OutcomeInvalidToken  Outcome = "invalid_token"
)

// TokenVerifier validates a raw bearer token.
type TokenVerifier interface {
	VerifyToken(token string) (*Claims, error)
}

// Middleware gates requests to protected path prefixes behind a bearer token.
type Middleware struct {
	verifier          TokenVerifier
	protectedPrefixes []string
	log               zerolog.Logger
	onDecision        func(Outcome)
}

// MiddlewareOption configures a Middleware.
type MiddlewareOption func(*Middleware)

// WithDecisionHook is called once per request with the gate outcome.
func WithDecisionHook(hook func(Outcome)) MiddlewareOption {
	return func(m *Middleware) {
		m.onDecision = hook
	}
}

// NewMiddleware creates a new authentication middleware.
func NewMiddleware(verifier TokenVerifier, cfg config.Auth, log zerolog.Logger, opts ...MiddlewareOption) *Middleware {
	prefixes := make([]string, len(cfg.ProtectedPrefixes))
	copy(prefixes, cfg.ProtectedPrefixes)

	m := &Middleware{
		verifier:          verifier,
		protectedPrefixes: prefixes,
		log:               log,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// IsProtected reports whether path falls under a protected prefix.
func (m *Middleware) IsProtected(path string) bool {
	for _, prefix := range m.protectedPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// Authenticate classifies r and, for protected paths, verifies its bearer
// token. Claims are non-nil only for OutcomeForwarded.
func (m *Middleware) Authenticate(r *http.Request) (Outcome, *Claims, error) {
	if !m.IsProtected(r.URL.Path) {
		return OutcomePublic, nil, nil
	}

	token, ok := bearerToken(r.Header.Get("Authorization"))
	if !ok {
		return OutcomeMissingHeader, nil, nil
	}

	claims, err := m.verifier.VerifyToken(token)
	if err != nil {
		return OutcomeInvalidToken, nil, err
	}
	return OutcomeForwarded, claims, nil
}

// Handler returns a Gin middleware handler that authenticates requests
// before the route handler runs.
func (m *Middleware) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		outcome, claims, err := m.Authenticate(c.Request)
		if m.onDecision != nil {
			m.onDecision(outcome)
		}

		switch outcome {
		case OutcomePublic:
			c.Next()
		case OutcomeForwarded:
			ctx := WithIdentity(c.Request.Context(), Identity{
				Subject:  claims.Subject,
				Username: claims.Username,
			})
			c.Request = c.Request.WithContext(ctx)
			c.Next()
		case OutcomeMissingHeader:
			m.log.Debug().Str("path", c.Request.URL.Path).Msg("rejected request without bearer token")
			abortUnauthorized(c, MessageMissingAuthorization)
		default:
			m.log.Debug().
				Str("path", c.Request.URL.Path).
				Str("reason", tokenFailureReason(err)).
				Msg("rejected request with invalid bearer token")
			abortUnauthorized(c, MessageInvalidToken)
		}
	}
}

// bearerToken extracts the token after a case-sensitive "Bearer " prefix.
// An empty token after the prefix is still returned and fails verification.
func bearerToken(header string) (string, bool) {
	if !strings.HasPrefix(header, bearerPrefix) {
		return "", false
	}
	return header[len(bearerPrefix):], true
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, Envelope{
		Code:    http.StatusUnauthorized,
		Message: message,
	})
}

func tokenFailureReason(err error) string {
	switch {
	case errors.Is(err, ErrTokenExpired):
		return "expired"
	case errors.Is(err, ErrInvalidSignature):
		return "invalid_signature"
	case errors.Is(err, ErrMalformedToken):
		return "malformed"
	default:
		return "unknown"
	}
}
