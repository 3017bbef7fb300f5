package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"crm-backend/internal/database/models"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeMailer struct {
	sent []InvitationMessage
	err  error
}

func (m *fakeMailer) SendInvitation(_ context.Context, msg InvitationMessage) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

type fakeInvitations struct {
	pending map[string]*models.Invitation
	err     error
}

func (f *fakeInvitations) GetPendingByToken(_ context.Context, token string) (*models.Invitation, error) {
	if f.err != nil {
		return nil, f.err
	}
	inv, ok := f.pending[token]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return inv, nil
}

type fakeEnqueuer struct {
	tasks []*asynq.Task
	err   error
}

func (e *fakeEnqueuer) EnqueueContext(_ context.Context, task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	if e.err != nil {
		return nil, e.err
	}
	e.tasks = append(e.tasks, task)
	return &asynq.TaskInfo{ID: uuid.NewString(), Type: task.Type()}, nil
}

func invitationPayload(expiresAt time.Time) InvitationPayload {
	return InvitationPayload{
		InvitationID:   uuid.New(),
		OrganizationID: uuid.New(),
		Email:          "new.hire@acme.test",
		Token:          "abc123",
		ExpiresAt:      expiresAt,
	}
}

func invitationTask(t *testing.T, payload InvitationPayload) *asynq.Task {
	task, err := NewInvitationTask(payload)
	require.NoError(t, err)
	return task
}

// stillPending reports payload's invitation as pending
func stillPending(payload InvitationPayload) *fakeInvitations {
	inv := &models.Invitation{
		TenantModel: models.TenantModel{BaseModel: models.BaseModel{ID: payload.InvitationID}, OrganizationID: payload.OrganizationID},
		Email:       payload.Email,
		Token:       payload.Token,
		Status:      models.InvitationStatusPending,
		ExpiresAt:   payload.ExpiresAt,
	}
	return &fakeInvitations{pending: map[string]*models.Invitation{payload.Token: inv}}
}

func TestHandleInvitationSend(t *testing.T) {
	mailer := &fakeMailer{}
	payload := invitationPayload(time.Now().Add(time.Hour))
	h := NewHandler(mailer, stillPending(payload), "https://crm.example.com/")

	err := h.HandleInvitationSend(context.Background(), invitationTask(t, payload))

	require.NoError(t, err)
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "new.hire@acme.test", mailer.sent[0].To)
	assert.Equal(t, "https://crm.example.com/invite/abc123", mailer.sent[0].AcceptURL)
}

func TestHandleInvitationSendSkipsExpired(t *testing.T) {
	mailer := &fakeMailer{}
	payload := invitationPayload(time.Now().Add(-time.Minute))
	h := NewHandler(mailer, stillPending(payload), "https://crm.example.com")

	err := h.HandleInvitationSend(context.Background(), invitationTask(t, payload))

	require.NoError(t, err)
	assert.Empty(t, mailer.sent)
}

func TestHandleInvitationSendSkipsRevoked(t *testing.T) {
	mailer := &fakeMailer{}
	payload := invitationPayload(time.Now().Add(time.Hour))
	h := NewHandler(mailer, &fakeInvitations{}, "https://crm.example.com")

	err := h.HandleInvitationSend(context.Background(), invitationTask(t, payload))

	require.NoError(t, err)
	assert.Empty(t, mailer.sent)
}

func TestHandleInvitationSendSkipsReissuedToken(t *testing.T) {
	mailer := &fakeMailer{}
	payload := invitationPayload(time.Now().Add(time.Hour))
	invitations := stillPending(payload)
	invitations.pending[payload.Token].ID = uuid.New()
	h := NewHandler(mailer, invitations, "https://crm.example.com")

	err := h.HandleInvitationSend(context.Background(), invitationTask(t, payload))

	require.NoError(t, err)
	assert.Empty(t, mailer.sent)
}

func TestHandleInvitationSendLookupErrorRetries(t *testing.T) {
	mailer := &fakeMailer{}
	payload := invitationPayload(time.Now().Add(time.Hour))
	h := NewHandler(mailer, &fakeInvitations{err: errors.New("connection refused")}, "https://crm.example.com")

	err := h.HandleInvitationSend(context.Background(), invitationTask(t, payload))

	require.Error(t, err)
	assert.NotErrorIs(t, err, asynq.SkipRetry)
	assert.Contains(t, err.Error(), "failed to look up invitation")
	assert.Empty(t, mailer.sent)
}

func TestHandleInvitationSendMailerError(t *testing.T) {
	mailer := &fakeMailer{err: errors.New("smtp down")}
	payload := invitationPayload(time.Now().Add(time.Hour))
	h := NewHandler(mailer, stillPending(payload), "https://crm.example.com")

	err := h.HandleInvitationSend(context.Background(), invitationTask(t, payload))

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "smtp down")
}

func TestHandleInvitationSendBadPayload(t *testing.T) {
	h := NewHandler(&fakeMailer{}, &fakeInvitations{}, "https://crm.example.com")

	err := h.HandleInvitationSend(context.Background(), asynq.NewTask(TypeInvitationSend, []byte("{")))

	assert.ErrorIs(t, err, asynq.SkipRetry)
}

func TestDispatcherEnqueuesInvitation(t *testing.T) {
	enq := &fakeEnqueuer{}
	d := NewDispatcher(enq)
	inv := &models.Invitation{
		TenantModel: models.TenantModel{BaseModel: models.BaseModel{ID: uuid.New()}, OrganizationID: uuid.New()},
		Email:       "new.hire@acme.test",
		Token:       "tok",
		ExpiresAt:   time.Now().Add(24 * time.Hour),
	}

	require.NoError(t, d.DispatchInvitation(context.Background(), inv))
	require.Len(t, enq.tasks, 1)
	assert.Equal(t, TypeInvitationSend, enq.tasks[0].Type())

	var payload InvitationPayload
	require.NoError(t, json.Unmarshal(enq.tasks[0].Payload(), &payload))
	assert.Equal(t, inv.ID, payload.InvitationID)
	assert.Equal(t, inv.OrganizationID, payload.OrganizationID)
	assert.Equal(t, "tok", payload.Token)
}

func TestDispatcherEnqueueError(t *testing.T) {
	d := NewDispatcher(&fakeEnqueuer{err: errors.New("redis unavailable")})
	err := d.DispatchInvitation(context.Background(), &models.Invitation{Email: "x@acme.test"})
	assert.Error(t, err)
}
