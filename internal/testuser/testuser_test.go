package testuser_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"regexp"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fivetwenty-io/lostfound-e2e/internal/auth"
	"github.com/fivetwenty-io/lostfound-e2e/internal/config"
	"github.com/fivetwenty-io/lostfound-e2e/internal/fakeserver"
	lfhttp "github.com/fivetwenty-io/lostfound-e2e/internal/http"
	"github.com/fivetwenty-io/lostfound-e2e/internal/testuser"
	"github.com/fivetwenty-io/lostfound-e2e/pkg/lostfound"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	signupPath = "/api/v1/auth/signup"
	signinPath = "/api/v1/auth/signin"
)

var template = config.NewUserTemplate{
	Email:       "test-1700000000000@example.com",
	Password:    "TestPass123!",
	FirstName:   "Test",
	LastName:    "User",
	PhoneNumber: "1234567890",
	Address:     "123 Test St, Test City",
}

func newFactory(t *testing.T, baseURL string, opts ...testuser.Option) *testuser.Factory {
	t.Helper()

	client := lfhttp.NewClient(baseURL)

	return testuser.NewFactory(client, auth.NewAuthenticator(client, signinPath, nil), signupPath, template, opts...)
}

func referenceServer(t *testing.T) *httptest.Server {
	t.Helper()

	srv, err := fakeserver.New()
	require.NoError(t, err)

	server := httptest.NewServer(srv)
	t.Cleanup(server.Close)

	return server
}

func TestFactory_Create(t *testing.T) {
	t.Parallel()

	server := referenceServer(t)
	factory := newFactory(t, server.URL)

	created, err := factory.Create(context.Background())
	require.NoError(t, err)

	assert.NotEmpty(t, created.Token)
	assert.Positive(t, created.User.ID)
	assert.Equal(t, "TestPass123!", created.User.Password)
	assert.Equal(t, "Test", created.User.FirstName)
	assert.Regexp(t, regexp.MustCompile(`^test-\d+-[0-9a-f]{8}@example\.com$`), created.User.Email)
}

func TestFactory_CreateTwiceIsUnique(t *testing.T) {
	t.Parallel()

	server := referenceServer(t)
	fixed := time.UnixMilli(1700000000000)
	factory := newFactory(t, server.URL, testuser.WithClock(func() time.Time { return fixed }))

	first, err := factory.Create(context.Background())
	require.NoError(t, err)

	second, err := factory.Create(context.Background())
	require.NoError(t, err)

	assert.NotEqual(t, first.User.Email, second.User.Email)
	assert.NotEqual(t, first.Token, second.Token)
}

func TestFactory_UniqueEmailDomain(t *testing.T) {
	t.Parallel()

	client := lfhttp.NewClient("http://unused")
	authenticator := auth.NewAuthenticator(client, signinPath, nil)

	custom := template
	custom.Email = "qa@lostfound.test"
	assert.Contains(t, testuser.NewFactory(client, authenticator, signupPath, custom).UniqueEmail(), "@lostfound.test")

	custom.Email = ""
	assert.Contains(t, testuser.NewFactory(client, authenticator, signupPath, custom).UniqueEmail(), "@example.com")
}

// signupRejectingServer rejects every signup and every sign-in.
func signupRejectingServer(t *testing.T) (*httptest.Server, *atomic.Int32) {
	t.Helper()

	var signins atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Content-Type", "application/json")

		switch request.URL.Path {
		case signupPath:
			writer.WriteHeader(http.StatusConflict)
			_, _ = writer.Write([]byte(`{"status":409,"error":"Email already exists"}`))
		case signinPath:
			signins.Add(1)

			writer.WriteHeader(http.StatusUnauthorized)
			_, _ = writer.Write([]byte(`{"status":401,"error":"Invalid email or password"}`))
		}
	}))
	t.Cleanup(server.Close)

	return server, &signins
}

func TestFactory_RejectedSignupPassThrough(t *testing.T) {
	t.Parallel()

	server, signins := signupRejectingServer(t)
	factory := newFactory(t, server.URL)

	_, err := factory.Create(context.Background())
	require.Error(t, err)

	var authErr *lostfound.AuthenticationError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, http.StatusUnauthorized, authErr.StatusCode)
	assert.Equal(t, http.StatusConflict, authErr.SignupStatus)
	assert.Contains(t, err.Error(), "after signup returned 409")
	assert.Equal(t, int32(1), signins.Load())
}

func TestFactory_StrictSignup(t *testing.T) {
	t.Parallel()

	server, signins := signupRejectingServer(t)
	factory := newFactory(t, server.URL, testuser.WithStrictSignup())

	_, err := factory.Create(context.Background())
	require.Error(t, err)

	var signupErr *lostfound.SignupError
	require.ErrorAs(t, err, &signupErr)
	assert.Equal(t, http.StatusConflict, signupErr.StatusCode)
	assert.Equal(t, "Email already exists", signupErr.Message)
	require.ErrorIs(t, err, lostfound.ErrSignupRejected)
	assert.Equal(t, int32(0), signins.Load())
}

func TestFactory_TransportError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	_, err := newFactory(t, url).Create(context.Background())
	require.Error(t, err)
	assert.True(t, lostfound.IsTransport(err))
}

func TestUser_NeverPrintsPassword(t *testing.T) {
	t.Parallel()

	user := testuser.User{ID: 3, Email: "a@b.c", Password: "TestPass123!", FirstName: "Test", LastName: "User"}

	for _, out := range []string{user.String(), fmt.Sprintf("%v", user), fmt.Sprintf("%+v", user), fmt.Sprintf("%#v", user)} {
		assert.NotContains(t, out, "TestPass123!")
		assert.Contains(t, out, "a@b.c")
	}

	req := user.SignupRequest()
	assert.Equal(t, "TestPass123!", req.Password)
	assert.Equal(t, "a@b.c", req.Email)
}
