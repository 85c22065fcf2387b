package fakeserver

import (
	"crypto/rand"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/fivetwenty-io/lostfound-e2e/pkg/lostfound"
	"github.com/golang-jwt/jwt/v5"
)

// Static errors for err113 compliance.
var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)

type tokenClaims struct {
	Email string         `json:"email"`
	Role  lostfound.Role `json:"role"`
	jwt.RegisteredClaims
}

// tokenIssuer signs and validates HS256 tokens with a per-process key.
type tokenIssuer struct {
	key      []byte
	lifetime time.Duration
	now      func() time.Time
}

func newTokenIssuer(lifetime time.Duration, now func() time.Time) (*tokenIssuer, error) {
	key := make([]byte, 32)

	_, err := rand.Read(key)
	if err != nil {
		return nil, fmt.Errorf("failed to generate signing key: %w", err)
	}

	return &tokenIssuer{key: key, lifetime: lifetime, now: now}, nil
}

func (t *tokenIssuer) issue(user lostfound.User) (string, error) {
	now := t.now()
	claims := tokenClaims{
		Email: user.Email,
		Role:  user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.lifetime)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.key)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// validate returns the user ID carried by a valid token.
func (t *tokenIssuer) validate(raw string) (int64, error) {
	token, err := jwt.ParseWithClaims(raw, &tokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("%w: unexpected signing method %v", ErrInvalidToken, token.Header["alg"])
		}

		return t.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, ErrExpiredToken
		}

		return 0, ErrInvalidToken
	}

	claims, ok := token.Claims.(*tokenClaims)
	if !ok || !token.Valid {
		return 0, ErrInvalidToken
	}

	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, ErrInvalidToken
	}

	return id, nil
}
