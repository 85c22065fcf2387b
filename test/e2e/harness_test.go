package e2e_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/fivetwenty-io/lostfound-e2e/internal/auth"
	"github.com/fivetwenty-io/lostfound-e2e/internal/config"
	"github.com/fivetwenty-io/lostfound-e2e/internal/fakeserver"
	lfhttp "github.com/fivetwenty-io/lostfound-e2e/internal/http"
	"github.com/fivetwenty-io/lostfound-e2e/internal/logging"
	"github.com/fivetwenty-io/lostfound-e2e/internal/testuser"
	"github.com/fivetwenty-io/lostfound-e2e/pkg/lostfound"
	"github.com/stretchr/testify/suite"
)

const requestDeadline = 30 * time.Second

// apiSuite is embedded by every e2e suite. It owns the dispatcher, the admin
// token cache and the test-user factory.
type apiSuite struct {
	suite.Suite

	cfg     config.Config
	logger  logging.Logger
	server  *httptest.Server
	client  *lfhttp.Client
	tokens  *auth.TokenCache
	factory *testuser.Factory
}

// SetupSuite resolves configuration and picks the target server.
func (s *apiSuite) SetupSuite() {
	cfg, err := config.Global()
	s.Require().NoError(err)

	opts := []logging.Option{logging.WithLevel(logging.ParseLevel(cfg.Log.Level))}
	if cfg.Log.NoColor {
		opts = append(opts, logging.WithoutColor())
	}

	s.logger = logging.NewConsoleLogger(os.Stderr, opts...)

	if os.Getenv("API_BASE_URL") == "" {
		srv, err := fakeserver.New(
			fakeserver.WithAdmin(cfg.Auth.Admin.Email, cfg.Auth.Admin.Password),
			fakeserver.WithLogger(logging.Nop()),
		)
		s.Require().NoError(err)

		s.server = httptest.NewServer(srv)
		cfg.API.BaseURL = s.server.URL
	}

	s.cfg = cfg
	s.client = lfhttp.NewClient(cfg.API.BaseURL,
		lfhttp.WithLogger(s.logger),
		lfhttp.WithTimeout(cfg.API.TimeoutDuration()),
		lfhttp.WithMetrics(lfhttp.NewMetricsCollector()),
	)

	authenticator := auth.NewAuthenticator(s.client, cfg.Endpoints.Auth.Signin, s.logger)
	s.tokens = auth.NewTokenCache(authenticator)
	s.factory = testuser.NewFactory(s.client, authenticator, cfg.Endpoints.Auth.Signup, cfg.TestData.NewUser,
		testuser.WithLogger(s.logger))

	s.logger.Debug("E2E target", map[string]interface{}{"base_url": cfg.API.BaseURL})
}

// TearDownSuite prints response-time metrics in verbose mode and stops the
// reference server.
func (s *apiSuite) TearDownSuite() {
	if testing.Verbose() && s.client != nil {
		_ = s.client.Metrics().Render(os.Stdout)
	}

	if s.server != nil {
		s.server.Close()
	}
}

func (s *apiSuite) ctx() context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), requestDeadline)
	s.T().Cleanup(cancel)

	return ctx
}

func (s *apiSuite) adminToken() string {
	token, err := s.tokens.Token(s.ctx(), s.cfg.Auth.Admin.Email, s.cfg.Auth.Admin.Password)
	s.Require().NoError(err)

	return token
}

func (s *apiSuite) newUser() *testuser.TestUser {
	user, err := s.factory.Create(s.ctx())
	s.Require().NoError(err)
	s.Require().NotEmpty(user.Token)

	return user
}

func (s *apiSuite) do(method, url string, body interface{}, token string) *lfhttp.Response {
	resp, err := s.client.Do(s.ctx(), &lfhttp.Request{Method: method, URL: url, Body: body, Token: token})
	s.Require().NoError(err)

	return resp
}

// requireStatus fails with the response body attached for context.
func (s *apiSuite) requireStatus(expected int, resp *lfhttp.Response) {
	s.Require().Equal(expected, resp.StatusCode, string(resp.Body))
}

// requireErrorMember checks the error envelope shape.
func (s *apiSuite) requireErrorMember(resp *lfhttp.Response) {
	env, err := resp.Envelope()
	s.Require().NoError(err)
	s.True(env.HasError(), string(resp.Body))
}

func (s *apiSuite) createLostItem(token, title, description string) lostfound.LostItem {
	resp := s.do(http.MethodPost, s.cfg.Endpoints.LostItems, lostfound.LostItemRequest{
		Title:       title,
		Description: description,
		Category:    "Electronics",
		Location:    "Computer Science Building, Room 302",
		LostDate:    time.Now().UTC().Truncate(time.Second),
	}, token)
	s.requireStatus(http.StatusCreated, resp)

	var item lostfound.LostItem
	s.Require().NoError(resp.DecodeData(&item))

	return item
}

func (s *apiSuite) createFoundItem(token, title, description string) lostfound.FoundItem {
	resp := s.do(http.MethodPost, s.cfg.Endpoints.FoundItems, lostfound.FoundItemRequest{
		Title:           title,
		Description:     description,
		Category:        "Electronics",
		Location:        "Main Library, 2nd floor",
		FoundDate:       time.Now().UTC().Truncate(time.Second),
		StorageLocation: "Campus Security Office",
	}, token)
	s.requireStatus(http.StatusCreated, resp)

	var item lostfound.FoundItem
	s.Require().NoError(resp.DecodeData(&item))

	return item
}
