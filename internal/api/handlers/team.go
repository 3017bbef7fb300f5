package handlers

import (
	"net/http"

	"crm-backend/internal/auth"
	"crm-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// TeamHandler handles HTTP requests for team members and invitations
type TeamHandler struct {
	teamService service.TeamServiceInterface
}

// NewTeamHandler creates a new team handler
func NewTeamHandler(teamService service.TeamServiceInterface) *TeamHandler {
	return &TeamHandler{
		teamService: teamService,
	}
}

// GetTeam handles GET /team
// @Summary List team
// @Description Members and pending invitations of the caller's organization, newest first
// @Tags team
// @Produce json
// @Success 200 {object} service.TeamResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /team [get]
func (h *TeamHandler) GetTeam(c *gin.Context) {
	orgID, ok := organizationID(c)
	if !ok {
		return
	}

	team, err := h.teamService.Members(c.Request.Context(), orgID)
	if err != nil {
		respondError(c, "Failed to load team", err)
		return
	}

	c.JSON(http.StatusOK, team)
}

// InviteMember handles POST /team/invitations
// @Summary Invite member
// @Description Create a pending invitation and queue its delivery
// @Tags team
// @Accept json
// @Produce json
// @Param invitation body service.InviteRequest true "Invitee"
// @Success 201 {object} service.InvitationResponse
// @Failure 400 {object} ErrorResponse "Invalid email"
// @Failure 409 {object} ErrorResponse "User or pending invitation already exists"
// @Security BearerAuth
// @Router /team/invitations [post]
func (h *TeamHandler) InviteMember(c *gin.Context) {
	orgID, ok := organizationID(c)
	if !ok {
		return
	}
	userID, _ := auth.GetUserID(c)

	var req service.InviteRequest
	if !bindJSON(c, &req) {
		return
	}

	invitation, err := h.teamService.Invite(c.Request.Context(), orgID, userID, &req)
	if err != nil {
		respondError(c, "Failed to invite member", err)
		return
	}

	c.JSON(http.StatusCreated, invitation)
}

// RevokeInvitation handles DELETE /team/invitations/:id
// @Summary Revoke invitation
// @Tags team
// @Param id path string true "Invitation ID (UUID)"
// @Success 204 "Invitation revoked"
// @Failure 404 {object} ErrorResponse "Invitation not found"
// @Security BearerAuth
// @Router /team/invitations/{id} [delete]
func (h *TeamHandler) RevokeInvitation(c *gin.Context) {
	orgID, ok := organizationID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "invitation")
	if !ok {
		return
	}

	if err := h.teamService.Revoke(c.Request.Context(), orgID, id); err != nil {
		respondError(c, "Failed to revoke invitation", err)
		return
	}

	c.Status(http.StatusNoContent)
}
