package auth

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"
)

// TokenCache reuses tokens per email until they are about to expire. Each
// miss performs exactly one sign-in, even under concurrent callers. Sign-ins
// for different emails run in parallel.
type TokenCache struct {
	authenticator *Authenticator
	mutex         sync.Mutex
	tokens        map[string]*Token
	inflight      singleflight.Group
}

// NewTokenCache creates an empty cache backed by authenticator.
func NewTokenCache(authenticator *Authenticator) *TokenCache {
	return &TokenCache{
		authenticator: authenticator,
		tokens:        make(map[string]*Token),
	}
}

// Token returns a cached token for email or signs in to obtain one.
// Concurrent misses for the same email share a single sign-in.
func (c *TokenCache) Token(ctx context.Context, email, password string) (string, error) {
	if token, ok := c.valid(email); ok {
		return token, nil
	}

	result, err, _ := c.inflight.Do(email, func() (interface{}, error) {
		// A flight that finished just before this one may have filled the cache.
		if token, ok := c.valid(email); ok {
			return token, nil
		}

		raw, err := c.authenticator.Authenticate(ctx, email, password)
		if err != nil {
			return "", err
		}

		c.mutex.Lock()
		c.tokens[email] = NewToken(raw)
		c.mutex.Unlock()

		return raw, nil
	})
	if err != nil {
		return "", err
	}

	token, _ := result.(string)

	return token, nil
}

func (c *TokenCache) valid(email string) (string, bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if cached := c.tokens[email]; cached.Valid() {
		return cached.AccessToken, true
	}

	return "", false
}

// Get returns the cached token for email without signing in.
func (c *TokenCache) Get(email string) *Token {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if cached, ok := c.tokens[email]; ok {
		out := *cached

		return &out
	}

	return nil
}

// Invalidate drops the cached token for email.
func (c *TokenCache) Invalidate(email string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	delete(c.tokens, email)
}

// Clear drops every cached token.
func (c *TokenCache) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.tokens = make(map[string]*Token)
}
