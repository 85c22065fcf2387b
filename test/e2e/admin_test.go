package e2e_test

import (
	"net/http"
	"testing"

	"github.com/fivetwenty-io/lostfound-e2e/internal/testuser"
	"github.com/fivetwenty-io/lostfound-e2e/pkg/lostfound"
	"github.com/stretchr/testify/suite"
)

// AdminSuite covers user moderation, item moderation and reports.
type AdminSuite struct {
	apiSuite

	regular *testuser.TestUser
}

func (s *AdminSuite) SetupSuite() {
	s.apiSuite.SetupSuite()

	s.regular = s.newUser()
}

func (s *AdminSuite) TestListUsers() {
	resp := s.do(http.MethodGet, s.cfg.Endpoints.Admin.Users, nil, s.adminToken())
	s.requireStatus(http.StatusOK, resp)

	var users []lostfound.User
	s.Require().NoError(resp.DecodeData(&users))
	s.NotEmpty(users)
}

func (s *AdminSuite) TestBanAndUnbanUser() {
	target := s.newUser()
	s.Require().Positive(target.User.ID)

	for _, banned := range []bool{true, false} {
		resp := s.do(http.MethodPatch, s.cfg.Endpoints.AdminUser(target.User.ID),
			lostfound.BanUpdate{IsBanned: banned}, s.adminToken())
		s.requireStatus(http.StatusOK, resp)

		var user lostfound.User
		s.Require().NoError(resp.DecodeData(&user))
		s.Equal(banned, user.IsBanned)
	}
}

func (s *AdminSuite) TestRegularUserIsForbidden() {
	for _, url := range []string{s.cfg.Endpoints.Admin.Users, s.cfg.Endpoints.Admin.Reports} {
		resp := s.do(http.MethodGet, url, nil, s.regular.Token)
		s.requireStatus(http.StatusForbidden, resp)
	}
}

func (s *AdminSuite) TestApproveLostItem() {
	item := s.createLostItem(s.regular.Token, "Test Lost Item", "This is a test lost item")

	resp := s.do(http.MethodPatch, s.cfg.Endpoints.AdminItem(item.ID), lostfound.ItemStatusUpdate{
		Status: lostfound.StatusApproved,
		Type:   lostfound.ItemTypeLost,
	}, s.adminToken())
	s.requireStatus(http.StatusOK, resp)

	var moderated lostfound.LostItem
	s.Require().NoError(resp.DecodeData(&moderated))
	s.Equal(lostfound.StatusApproved, moderated.Status)
}

func (s *AdminSuite) TestRejectFoundItem() {
	item := s.createFoundItem(s.regular.Token, "Test Found Item", "This is a test found item")

	resp := s.do(http.MethodPatch, s.cfg.Endpoints.AdminItem(item.ID), lostfound.ItemStatusUpdate{
		Status:          lostfound.StatusRejected,
		Type:            lostfound.ItemTypeFound,
		RejectionReason: "Insufficient information",
	}, s.adminToken())
	s.requireStatus(http.StatusOK, resp)

	var moderated lostfound.FoundItem
	s.Require().NoError(resp.DecodeData(&moderated))
	s.Equal(lostfound.StatusRejected, moderated.Status)
}

func (s *AdminSuite) TestModerationRejectsUnknownStatus() {
	item := s.createLostItem(s.regular.Token, "Test Lost Item", "This is a test lost item")

	resp := s.do(http.MethodPatch, s.cfg.Endpoints.AdminItem(item.ID),
		map[string]string{"status": "LOST_FOREVER", "type": "LOST"}, s.adminToken())
	s.requireStatus(http.StatusBadRequest, resp)
	s.requireErrorMember(resp)
}

func (s *AdminSuite) TestReports() {
	resp := s.do(http.MethodGet, s.cfg.Endpoints.Admin.Reports, nil, s.adminToken())
	s.requireStatus(http.StatusOK, resp)

	env, err := resp.Envelope()
	s.Require().NoError(err)

	var members map[string]interface{}
	s.Require().NoError(env.DecodeData(&members))
	s.Contains(members, "userStats")
	s.Contains(members, "itemStats")
	s.Contains(members, "recentActivity")
}

func (s *AdminSuite) TestAdminTokenIsCached() {
	first := s.adminToken()
	second := s.adminToken()

	s.Equal(first, second)
	s.Require().NotNil(s.tokens.Get(s.cfg.Auth.Admin.Email))
}

func TestAdminSuite(t *testing.T) {
	suite.Run(t, new(AdminSuite))
}
