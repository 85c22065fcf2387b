package constants

import "time"

// HTTP and network timeouts.
const (
	// DefaultTimeoutMillis is the default per-request timeout in milliseconds.
	DefaultTimeoutMillis = 10000

	// ShutdownTimeout bounds graceful shutdown of the reference server.
	ShutdownTimeout = 5 * time.Second

	// ReadHeaderTimeout is applied to the reference server listener.
	ReadHeaderTimeout = 10 * time.Second
)

// Default endpoints and addresses.
const (
	// DefaultBaseURL is used when API_BASE_URL is not set.
	DefaultBaseURL = "http://localhost:8080"

	// DefaultListenAddr is the address the reference server binds to.
	DefaultListenAddr = ":8080"
)

// HTTP headers and media types.
const (
	HeaderAuthorization = "Authorization"
	HeaderContentType   = "Content-Type"
	ContentTypeJSON     = "application/json"
	BearerPrefix        = "Bearer "
)

// Output formats.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// Token lifecycle.
const (
	// TokenExpiryBuffer is subtracted from a token's expiry when deciding
	// whether a cached token can still be used.
	TokenExpiryBuffer = 30 * time.Second

	// TokenLifetime is the lifetime of tokens issued by the reference server.
	TokenLifetime = time.Hour
)

// Test data.
const (
	// TestEmailPrefix starts the local part of every generated test email.
	TestEmailPrefix = "test"

	// TestEmailDomain is used when the template email has no domain.
	TestEmailDomain = "example.com"

	// UniqueSuffixLength is the number of UUID characters appended to
	// generated emails.
	UniqueSuffixLength = 8

	// RecentActivityLimit caps the activity feed in system reports.
	RecentActivityLimit = 10

	// MinPasswordLength mirrors the server-side signup rule.
	MinPasswordLength = 6
)

// MaskedSecret replaces passwords in printed output.
const MaskedSecret = "********"
