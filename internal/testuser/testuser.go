// Package testuser creates throwaway accounts for tests: signup with a unique
// email, then sign-in with the same credentials.
package testuser

import (
	"context"
	"errors"
	"fmt"
	stdhttp "net/http"
	"strings"
	"time"

	"github.com/fivetwenty-io/lostfound-e2e/internal/auth"
	"github.com/fivetwenty-io/lostfound-e2e/internal/config"
	"github.com/fivetwenty-io/lostfound-e2e/internal/constants"
	lfhttp "github.com/fivetwenty-io/lostfound-e2e/internal/http"
	"github.com/fivetwenty-io/lostfound-e2e/internal/logging"
	"github.com/fivetwenty-io/lostfound-e2e/pkg/lostfound"
	"github.com/google/uuid"
)

// User is a generated credential set. Password is kept for later sign-ins
// but never printed or serialized.
type User struct {
	ID          int64  `json:"id,omitempty"  yaml:"id,omitempty"`
	Email       string `json:"email"         yaml:"email"`
	Password    string `json:"-"             yaml:"-"`
	FirstName   string `json:"first_name"    yaml:"first_name"`
	LastName    string `json:"last_name"     yaml:"last_name"`
	PhoneNumber string `json:"phone_number"  yaml:"phone_number"`
	Address     string `json:"address"       yaml:"address"`
}

// String implements fmt.Stringer with the password masked.
func (u User) String() string {
	return fmt.Sprintf("User{ID:%d Email:%s Password:%s Name:%s %s}",
		u.ID, u.Email, constants.MaskedSecret, u.FirstName, u.LastName)
}

// GoString keeps %#v from leaking the password.
func (u User) GoString() string {
	return u.String()
}

// SignupRequest builds the signup payload.
func (u User) SignupRequest() lostfound.SignupRequest {
	return lostfound.SignupRequest{
		Email:       u.Email,
		Password:    u.Password,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		PhoneNumber: u.PhoneNumber,
		Address:     u.Address,
	}
}

// TestUser is a signed-in ephemeral account.
type TestUser struct {
	User  User   `json:"user"  yaml:"user"`
	Token string `json:"token" yaml:"token"`
}

// Factory creates ephemeral accounts.
type Factory struct {
	client        auth.Dispatcher
	authenticator *auth.Authenticator
	signupPath    string
	template      config.NewUserTemplate
	strict        bool
	logger        logging.Logger
	clock         func() time.Time
}

// Option configures a Factory.
type Option func(*Factory)

// WithStrictSignup makes Create fail with *lostfound.SignupError when signup
// is not answered with a 2xx status, instead of going on to sign in.
func WithStrictSignup() Option {
	return func(f *Factory) {
		f.strict = true
	}
}

// WithLogger sets the logger.
func WithLogger(logger logging.Logger) Option {
	return func(f *Factory) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// WithClock overrides the timestamp used in generated emails.
func WithClock(clock func() time.Time) Option {
	return func(f *Factory) {
		f.clock = clock
	}
}

// NewFactory creates a Factory that signs up at signupPath using template for
// every profile field except the email.
func NewFactory(
	client auth.Dispatcher,
	authenticator *auth.Authenticator,
	signupPath string,
	template config.NewUserTemplate,
	opts ...Option,
) *Factory {
	factory := &Factory{
		client:        client,
		authenticator: authenticator,
		signupPath:    signupPath,
		template:      template,
		logger:        logging.Nop(),
		clock:         time.Now,
	}

	for _, opt := range opts {
		opt(factory)
	}

	return factory
}

// UniqueEmail returns test-<unix ms>-<8 hex chars>@<template domain>.
func (f *Factory) UniqueEmail() string {
	domain := constants.TestEmailDomain
	if at := strings.LastIndex(f.template.Email, "@"); at >= 0 && at < len(f.template.Email)-1 {
		domain = f.template.Email[at+1:]
	}

	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:constants.UniqueSuffixLength]

	return fmt.Sprintf("%s-%d-%s@%s", constants.TestEmailPrefix, f.clock().UnixMilli(), suffix, domain)
}

// NewUser returns a fresh credential set without contacting the server.
func (f *Factory) NewUser() User {
	return User{
		Email:       f.UniqueEmail(),
		Password:    f.template.Password,
		FirstName:   f.template.FirstName,
		LastName:    f.template.LastName,
		PhoneNumber: f.template.PhoneNumber,
		Address:     f.template.Address,
	}
}

// Create signs up a new account and signs it in.
func (f *Factory) Create(ctx context.Context) (*TestUser, error) {
	user := f.NewUser()

	resp, err := f.client.Do(ctx, &lfhttp.Request{
		Method: stdhttp.MethodPost,
		URL:    f.signupPath,
		Body:   user.SignupRequest(),
	})
	if err != nil {
		return nil, err
	}

	signupStatus := 0

	if resp.IsSuccess() {
		var created lostfound.User
		if decodeErr := resp.DecodeData(&created); decodeErr == nil {
			user.ID = created.ID
		}
	} else {
		signupStatus = resp.StatusCode

		if f.strict {
			return nil, &lostfound.SignupError{
				Email:      user.Email,
				StatusCode: resp.StatusCode,
				Message:    resp.ErrorMessage(),
			}
		}

		f.logger.Warn("Signup was not accepted, signing in anyway", map[string]interface{}{
			"email":  user.Email,
			"status": resp.StatusCode,
			"error":  resp.ErrorMessage(),
		})
	}

	token, err := f.authenticator.Authenticate(ctx, user.Email, user.Password)
	if err != nil {
		var authErr *lostfound.AuthenticationError
		if signupStatus != 0 && errors.As(err, &authErr) {
			authErr.SignupStatus = signupStatus
		}

		return nil, err
	}

	f.logger.Success("Test user created", map[string]interface{}{"email": user.Email, "id": user.ID})

	return &TestUser{User: user, Token: token}, nil
}
