package constants

import "errors"

// Token errors.
var (
	ErrInvalidJWTFormat  = errors.New("invalid JWT format")
	ErrNoExpirationClaim = errors.New("no expiration claim found")
)

// CLI errors.
var (
	ErrInvalidHeaderFormat = errors.New("invalid header format, expected key:value")
	ErrPasswordRequired    = errors.New("password is required")
	ErrEmailRequired       = errors.New("email is required")
	ErrUnknownOutputFormat = errors.New("unknown output format")
)
