package tasks

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// Task type names
const (
	TypeInvitationSend = "invitation:send"
)

// InvitationPayload contains the data for an invitation delivery task
type InvitationPayload struct {
	InvitationID   uuid.UUID `json:"invitation_id"`
	OrganizationID uuid.UUID `json:"organization_id"`
	Email          string    `json:"email"`
	Token          string    `json:"token"`
	ExpiresAt      time.Time `json:"expires_at"`
}

func NewInvitationTask(payload InvitationPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeInvitationSend, data), nil
}
