// Package auth turns credentials into bearer tokens against the sign-in
// endpoint and caches them for reuse.
package auth

import (
	"context"
	"errors"
	stdhttp "net/http"

	lfhttp "github.com/fivetwenty-io/lostfound-e2e/internal/http"
	"github.com/fivetwenty-io/lostfound-e2e/internal/logging"
	"github.com/fivetwenty-io/lostfound-e2e/pkg/lostfound"
)

// Dispatcher sends one request. *lfhttp.Client satisfies it.
type Dispatcher interface {
	Do(ctx context.Context, req *lfhttp.Request) (*lfhttp.Response, error)
}

// Authenticator performs the sign-in exchange.
type Authenticator struct {
	client     Dispatcher
	signinPath string
	logger     logging.Logger
}

// NewAuthenticator creates an Authenticator posting to signinPath.
func NewAuthenticator(client Dispatcher, signinPath string, logger logging.Logger) *Authenticator {
	if logger == nil {
		logger = logging.Nop()
	}

	return &Authenticator{
		client:     client,
		signinPath: signinPath,
		logger:     logger,
	}
}

// Authenticate signs in and returns the bearer token. Transport failures are
// returned as is; a response without a token, whatever its status, yields a
// *lostfound.AuthenticationError.
func (a *Authenticator) Authenticate(ctx context.Context, email, password string) (string, error) {
	resp, err := a.client.Do(ctx, &lfhttp.Request{
		Method: stdhttp.MethodPost,
		URL:    a.signinPath,
		Body:   lostfound.SigninRequest{Email: email, Password: password},
	})
	if err != nil {
		return "", err
	}

	var (
		result  lostfound.SigninResult
		message string
	)

	env, decodeErr := resp.Envelope()
	if decodeErr == nil {
		decodeErr = env.DecodeData(&result)
		message = env.ErrorMessage()
	}

	if result.Token == "" {
		fields := map[string]interface{}{
			"email":  email,
			"status": resp.StatusCode,
		}

		// A missing data member is the normal shape of a rejected sign-in.
		if decodeErr != nil && !errors.Is(decodeErr, lostfound.ErrNoData) {
			fields["error"] = decodeErr.Error()

			if message == "" {
				message = decodeErr.Error()
			}
		}

		a.logger.Warn("Sign-in returned no token", fields)

		return "", &lostfound.AuthenticationError{
			Email:      email,
			StatusCode: resp.StatusCode,
			Message:    message,
		}
	}

	a.logger.Debug("Signed in", map[string]interface{}{"email": email})

	return result.Token, nil
}
