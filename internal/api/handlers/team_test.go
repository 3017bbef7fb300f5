package handlers_test

import (
	"net/http"
	"testing"

	"crm-backend/internal/api/handlers"
	"crm-backend/internal/database/models"
	apperrors "crm-backend/internal/errors"
	"crm-backend/internal/mocks"
	"crm-backend/internal/service"
	"crm-backend/internal/tenant"
	"crm-backend/internal/testutils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

// TeamHandlerTestSuite defines the test suite for TeamHandler
type TeamHandlerTestSuite struct {
	suite.Suite
	ctrl        *gomock.Controller
	mockService *mocks.MockTeamServiceInterface
	httpSuite   *testutils.HTTPTestSuite
	principal   *tenant.Principal
	orgID       uuid.UUID
}

func (suite *TeamHandlerTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockService = mocks.NewMockTeamServiceInterface(suite.ctrl)
	suite.orgID = uuid.New()
	suite.principal = principalFor(suite.orgID)

	handler := handlers.NewTeamHandler(suite.mockService)
	suite.httpSuite = testutils.SetupHTTPTest()

	team := suite.httpSuite.Router.Group("/api/v1/team", withPrincipal(suite.principal))
	{
		team.GET("", handler.GetTeam)
		team.POST("/invitations", handler.InviteMember)
		team.DELETE("/invitations/:id", handler.RevokeInvitation)
	}
}

func (suite *TeamHandlerTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

func (suite *TeamHandlerTestSuite) TestGetTeam() {
	suite.mockService.EXPECT().Members(gomock.Any(), suite.orgID).Return(&service.TeamResponse{
		Members:     []service.MemberResponse{{ID: uuid.New(), Name: "Jane", Email: "jane@example.com"}},
		Invitations: []service.InvitationResponse{{ID: uuid.New(), Email: "bob@example.com", Status: models.InvitationStatusPending}},
	}, nil)

	w := suite.httpSuite.MakeRequest(http.MethodGet, "/api/v1/team", nil)

	var team service.TeamResponse
	testutils.AssertJSONResponse(suite.T(), w, http.StatusOK, &team)
	assert.Len(suite.T(), team.Members, 1)
	assert.Len(suite.T(), team.Invitations, 1)
}

func (suite *TeamHandlerTestSuite) TestInviteMember_UsesCallerAsInviter() {
	suite.mockService.EXPECT().Invite(gomock.Any(), suite.orgID, suite.principal.UserID, &service.InviteRequest{Email: "bob@example.com"}).
		Return(&service.InvitationResponse{ID: uuid.New(), Email: "bob@example.com", Status: models.InvitationStatusPending}, nil)

	w := suite.httpSuite.MakeRequest(http.MethodPost, "/api/v1/team/invitations", service.InviteRequest{Email: "bob@example.com"})

	var invitation service.InvitationResponse
	testutils.AssertJSONResponse(suite.T(), w, http.StatusCreated, &invitation)
	assert.Equal(suite.T(), models.InvitationStatusPending, invitation.Status)
}

func (suite *TeamHandlerTestSuite) TestInviteMember_Duplicate() {
	suite.mockService.EXPECT().Invite(gomock.Any(), suite.orgID, suite.principal.UserID, gomock.Any()).Return(nil, apperrors.ErrInvitationExists)

	w := suite.httpSuite.MakeRequest(http.MethodPost, "/api/v1/team/invitations", service.InviteRequest{Email: "bob@example.com"})

	testutils.AssertErrorResponse(suite.T(), w, http.StatusConflict, "Failed to invite member")
}

func (suite *TeamHandlerTestSuite) TestInviteMember_ExistingUser() {
	suite.mockService.EXPECT().Invite(gomock.Any(), suite.orgID, suite.principal.UserID, gomock.Any()).Return(nil, apperrors.ErrUserExists)

	w := suite.httpSuite.MakeRequest(http.MethodPost, "/api/v1/team/invitations", service.InviteRequest{Email: "jane@example.com"})

	assert.Equal(suite.T(), http.StatusConflict, w.Code)
}

func (suite *TeamHandlerTestSuite) TestRevokeInvitation() {
	id := uuid.New()
	suite.mockService.EXPECT().Revoke(gomock.Any(), suite.orgID, id).Return(nil)

	w := suite.httpSuite.MakeRequest(http.MethodDelete, "/api/v1/team/invitations/"+id.String(), nil)

	assert.Equal(suite.T(), http.StatusNoContent, w.Code)
}

func (suite *TeamHandlerTestSuite) TestRevokeInvitation_NotFound() {
	id := uuid.New()
	suite.mockService.EXPECT().Revoke(gomock.Any(), suite.orgID, id).Return(apperrors.ErrInvitationNotFound)

	w := suite.httpSuite.MakeRequest(http.MethodDelete, "/api/v1/team/invitations/"+id.String(), nil)

	testutils.AssertErrorResponse(suite.T(), w, http.StatusNotFound, "Failed to revoke invitation")
}

func TestTeamHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TeamHandlerTestSuite))
}
