package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"crm-backend/internal/database/models"
	"crm-backend/internal/logger"

	"github.com/hibiken/asynq"
	"gorm.io/gorm"
)

// InvitationLookup finds the invitation a delivery task refers to
type InvitationLookup interface {
	GetPendingByToken(ctx context.Context, token string) (*models.Invitation, error)
}

// Handler processes background tasks
type Handler struct {
	mailer      Mailer
	invitations InvitationLookup
	appBaseURL  string
	now         func() time.Time
}

// NewHandler creates a task handler
func NewHandler(mailer Mailer, invitations InvitationLookup, appBaseURL string) *Handler {
	return &Handler{
		mailer:      mailer,
		invitations: invitations,
		appBaseURL:  strings.TrimRight(appBaseURL, "/"),
		now:         time.Now,
	}
}

// RegisterHandlers registers all task handlers with the mux
func (h *Handler) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(TypeInvitationSend, h.HandleInvitationSend)
}

// HandleInvitationSend delivers one invitation. Expired invitations and invitations that are
// no longer pending (revoked or accepted since enqueueing) are dropped without retry.
func (h *Handler) HandleInvitationSend(ctx context.Context, t *asynq.Task) error {
	var payload InvitationPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w: %w", err, asynq.SkipRetry)
	}

	log := logger.New().WithFields(map[string]interface{}{
		"invitation_id":   payload.InvitationID,
		"organization_id": payload.OrganizationID,
	})

	if !payload.ExpiresAt.IsZero() && h.now().After(payload.ExpiresAt) {
		log.Warn("skipping delivery of expired invitation")
		return nil
	}

	invitation, err := h.invitations.GetPendingByToken(ctx, payload.Token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Info("skipping delivery of invitation that is no longer pending")
			return nil
		}
		return fmt.Errorf("failed to look up invitation: %w", err)
	}
	if invitation.ID != payload.InvitationID {
		log.Warn("skipping delivery, token belongs to another invitation")
		return nil
	}

	msg := InvitationMessage{
		To:        payload.Email,
		AcceptURL: fmt.Sprintf("%s/invite/%s", h.appBaseURL, payload.Token),
	}
	if err := h.mailer.SendInvitation(ctx, msg); err != nil {
		log.WithError(err).Error("invitation delivery failed")
		return fmt.Errorf("failed to deliver invitation: %w", err)
	}

	log.Info("invitation delivered")
	return nil
}
