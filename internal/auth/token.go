package auth

import (
	"fmt"
	"time"

	"github.com/fivetwenty-io/lostfound-e2e/internal/constants"
	"github.com/golang-jwt/jwt/v5"
)

// Token is a bearer token and the moment it stops being accepted.
type Token struct {
	AccessToken string
	ExpiresAt   time.Time
}

// Valid reports whether the token can still be used. A zero ExpiresAt means
// the expiry is unknown and the token is trusted until the server rejects it.
func (t *Token) Valid() bool {
	if t == nil || t.AccessToken == "" {
		return false
	}

	if t.ExpiresAt.IsZero() {
		return true
	}

	return time.Now().Add(constants.TokenExpiryBuffer).Before(t.ExpiresAt)
}

// Claims is the subset of JWT claims the harness cares about.
type Claims struct {
	Subject   string
	Email     string
	Role      string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// ParseClaims decodes a JWT without verifying its signature. The harness
// never holds the server's signing key; it only needs the expiry.
func ParseClaims(token string) (*Claims, error) {
	mapClaims := jwt.MapClaims{}

	_, _, err := jwt.NewParser().ParseUnverified(token, mapClaims)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", constants.ErrInvalidJWTFormat, err)
	}

	exp, err := mapClaims.GetExpirationTime()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", constants.ErrInvalidJWTFormat, err)
	}

	if exp == nil {
		return nil, constants.ErrNoExpirationClaim
	}

	claims := &Claims{ExpiresAt: exp.Time}

	if sub, err := mapClaims.GetSubject(); err == nil {
		claims.Subject = sub
	}

	if iat, err := mapClaims.GetIssuedAt(); err == nil && iat != nil {
		claims.IssuedAt = iat.Time
	}

	if email, ok := mapClaims["email"].(string); ok {
		claims.Email = email
	}

	if role, ok := mapClaims["role"].(string); ok {
		claims.Role = role
	}

	return claims, nil
}

// NewToken wraps a raw bearer token, reading its expiry when it is a JWT.
func NewToken(raw string) *Token {
	token := &Token{AccessToken: raw}

	if claims, err := ParseClaims(raw); err == nil {
		token.ExpiresAt = claims.ExpiresAt
	}

	return token
}
