package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token verification failures. They stay distinct internally and collapse
// into a single 401 response at the HTTP boundary.
var (
	ErrMalformedToken   = errors.New("malformed token")
	ErrInvalidSignature = errors.New("invalid token signature")
	ErrTokenExpired     = errors.New("token expired")
	ErrTokenIssuance    = errors.New("token issuance failed")
)

var signingMethod = jwt.SigningMethodHS256

// Claims is the payload of a session token. On the wire it carries only
// sub, username, iat and exp.
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// NewClaims builds the claim set for a subject issued at now and valid for lifetime.
func NewClaims(subject, username string, now time.Time, lifetime time.Duration) Claims {
	return Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(lifetime)),
		},
	}
}

// IssueToken signs claims with secret using HS256.
func IssueToken(claims Claims, secret []byte) (string, error) {
	if len(secret) == 0 {
		return "", fmt.Errorf("%w: empty signing secret", ErrTokenIssuance)
	}
	if claims.ExpiresAt == nil {
		return "", fmt.Errorf("%w: missing expiry", ErrTokenIssuance)
	}
	if claims.IssuedAt != nil && !claims.ExpiresAt.After(claims.IssuedAt.Time) {
		return "", fmt.Errorf("%w: expiry must be after issued-at", ErrTokenIssuance)
	}

	signed, err := jwt.NewWithClaims(signingMethod, claims).SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTokenIssuance, err)
	}
	return signed, nil
}

// ParseToken verifies the signature of token under secret, then rejects it
// if now is at or past its expiry. No leeway is applied.
func ParseToken(token string, secret []byte, now time.Time) (*Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{signingMethod.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return now }),
		jwt.WithExpirationRequired(),
	)

	claims := &Claims{}
	_, err := parser.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return secret, nil
	})
	if err != nil {
		return nil, classifyTokenError(err)
	}
	return claims, nil
}

func classifyTokenError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return fmt.Errorf("%w: %v", ErrMalformedToken, err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("%w: %v", ErrTokenExpired, err)
	default:
		// missing exp, wrong claim types and similar shape problems
		return fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}
}
