package e2e_test

import (
	"net/http"
	"testing"

	"github.com/fivetwenty-io/lostfound-e2e/internal/auth"
	lfhttp "github.com/fivetwenty-io/lostfound-e2e/internal/http"
	"github.com/fivetwenty-io/lostfound-e2e/internal/testuser"
	"github.com/fivetwenty-io/lostfound-e2e/pkg/lostfound"
	"github.com/stretchr/testify/suite"
)

// AuthSuite covers signup, signin and bearer protection.
type AuthSuite struct {
	apiSuite

	user *testuser.TestUser
}

func (s *AuthSuite) SetupSuite() {
	s.apiSuite.SetupSuite()

	s.user = s.newUser()
}

func (s *AuthSuite) TestSignupRegistersNewUser() {
	candidate := s.factory.NewUser()

	resp := s.do(http.MethodPost, s.cfg.Endpoints.Auth.Signup, candidate.SignupRequest(), "")
	s.requireStatus(http.StatusCreated, resp)

	env, err := resp.Envelope()
	s.Require().NoError(err)
	s.Require().True(env.HasData())
	s.NotContains(string(env.Data), `"password"`)

	var user lostfound.User
	s.Require().NoError(resp.DecodeData(&user))
	s.Equal(candidate.Email, user.Email)
}

func (s *AuthSuite) TestSignupRejectsInvalidData() {
	resp := s.do(http.MethodPost, s.cfg.Endpoints.Auth.Signup, map[string]string{
		"email":    "invalid-email",
		"password": "short",
	}, "")
	s.requireStatus(http.StatusBadRequest, resp)
	s.requireErrorMember(resp)
}

func (s *AuthSuite) TestSigninWithValidCredentials() {
	resp := s.do(http.MethodPost, s.cfg.Endpoints.Auth.Signin, lostfound.SigninRequest{
		Email:    s.user.User.Email,
		Password: s.user.User.Password,
	}, "")
	s.requireStatus(http.StatusOK, resp)

	var result lostfound.SigninResult
	s.Require().NoError(resp.DecodeData(&result))
	s.NotEmpty(result.Token)

	claims, err := auth.ParseClaims(result.Token)
	s.Require().NoError(err)
	s.False(claims.ExpiresAt.IsZero())
}

func (s *AuthSuite) TestSigninWithWrongPassword() {
	resp := s.do(http.MethodPost, s.cfg.Endpoints.Auth.Signin, lostfound.SigninRequest{
		Email:    s.user.User.Email,
		Password: "wrong-password",
	}, "")
	s.requireStatus(http.StatusUnauthorized, resp)
	s.requireErrorMember(resp)
}

func (s *AuthSuite) TestAuthenticatorRaisesOnBadCredentials() {
	authenticator := auth.NewAuthenticator(s.client, s.cfg.Endpoints.Auth.Signin, s.logger)

	token, err := authenticator.Authenticate(s.ctx(), s.user.User.Email, s.user.User.Password)
	s.Require().NoError(err)
	s.NotEmpty(token)

	_, err = authenticator.Authenticate(s.ctx(), s.user.User.Email, "wrong-password")
	s.Require().Error(err)
	s.True(lostfound.IsAuthentication(err))
	s.ErrorIs(err, lostfound.ErrNoTokenReceived)
}

func (s *AuthSuite) TestProtectedRouteWithValidToken() {
	resp := s.do(http.MethodGet, s.cfg.Endpoints.LostItems, nil, s.user.Token)
	s.Contains([]int{http.StatusOK, http.StatusNoContent}, resp.StatusCode, string(resp.Body))
}

func (s *AuthSuite) TestProtectedRouteWithoutToken() {
	resp := s.do(http.MethodGet, s.cfg.Endpoints.LostItems, nil, "")
	s.requireStatus(http.StatusUnauthorized, resp)
	s.requireErrorMember(resp)
}

func (s *AuthSuite) TestProtectedRouteWithInvalidToken() {
	resp, err := s.client.Do(s.ctx(), &lfhttp.Request{
		Method:  http.MethodGet,
		URL:     s.cfg.Endpoints.LostItems,
		Headers: map[string]string{"Authorization": "Bearer invalid.token.here"},
	})
	s.Require().NoError(err)
	s.requireStatus(http.StatusUnauthorized, resp)
	s.requireErrorMember(resp)
}

func (s *AuthSuite) TestFactoryProducesDistinctUsers() {
	first := s.newUser()
	second := s.newUser()

	s.NotEqual(first.User.Email, second.User.Email)
	s.NotEqual(first.Token, second.Token)
}

func TestAuthSuite(t *testing.T) {
	suite.Run(t, new(AuthSuite))
}
