package tasks

import (
	"context"
	"fmt"
	"time"

	"crm-backend/internal/database/models"

	"github.com/hibiken/asynq"
)

// Enqueuer is the part of asynq.Client the dispatcher needs
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// Dispatcher hands invitations to the delivery worker
type Dispatcher struct {
	client Enqueuer
}

// NewDispatcher creates a dispatcher on top of an asynq client
func NewDispatcher(client Enqueuer) *Dispatcher {
	return &Dispatcher{client: client}
}

// DispatchInvitation enqueues delivery of a freshly created invitation
func (d *Dispatcher) DispatchInvitation(ctx context.Context, invitation *models.Invitation) error {
	task, err := NewInvitationTask(InvitationPayload{
		InvitationID:   invitation.ID,
		OrganizationID: invitation.OrganizationID,
		Email:          invitation.Email,
		Token:          invitation.Token,
		ExpiresAt:      invitation.ExpiresAt,
	})
	if err != nil {
		return fmt.Errorf("failed to create invitation task: %w", err)
	}

	opts := []asynq.Option{asynq.Queue("default"), asynq.MaxRetry(5), asynq.Timeout(time.Minute)}
	if !invitation.ExpiresAt.IsZero() {
		opts = append(opts, asynq.Deadline(invitation.ExpiresAt))
	}
	if _, err := d.client.EnqueueContext(ctx, task, opts...); err != nil {
		return fmt.Errorf("failed to enqueue invitation task: %w", err)
	}
	return nil
}
