package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"crm-backend/internal/database/models"
	apperrors "crm-backend/internal/errors"
	"crm-backend/internal/logger"
	"crm-backend/internal/repository"
	"crm-backend/internal/revalidate"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InviteRequest represents the form submitted to invite a teammate
type InviteRequest struct {
	Email string `json:"email" validate:"required,email,max=255"`
}

// AcceptInvitationRequest represents the form an invited person submits to join
type AcceptInvitationRequest struct {
	Token    string `json:"token" validate:"required"`
	Name     string `json:"name" validate:"required,max=255"`
	Password string `json:"password" validate:"required,min=6"`
}

// InvitationResponse represents a pending invitation. The token is never returned.
type InvitationResponse struct {
	ID        uuid.UUID               `json:"id"`
	Email     string                  `json:"email"`
	Status    models.InvitationStatus `json:"status"`
	ExpiresAt string                  `json:"expires_at"`
	CreatedAt string                  `json:"created_at"`
}

// Invite creates a pending invitation for an email that is neither a user nor already invited,
// then hands it to the delivery worker.
func (s *TeamService) Invite(ctx context.Context, orgID, invitedBy uuid.UUID, req *InviteRequest) (*InvitationResponse, error) {
	if err := ValidateStruct(s.validator, req); err != nil {
		return nil, err
	}
	email := normalizeEmail(req.Email)

	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.ErrUserExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check user: %w", err)
	}

	if _, err := s.invitationRepo.GetPendingByEmail(ctx, email); err == nil {
		return nil, apperrors.ErrInvitationExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check invitation: %w", err)
	}

	token, err := s.newToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate invitation token: %w", err)
	}

	invitation := &models.Invitation{
		TenantModel: models.TenantModel{OrganizationID: orgID},
		Email:       email,
		Token:       token,
		Status:      models.InvitationStatusPending,
		ExpiresAt:   s.now().Add(s.invitationTTL),
	}
	if invitedBy != uuid.Nil {
		invitation.InvitedByID = &invitedBy
	}

	if err := s.invitationRepo.Create(ctx, invitation); err != nil {
		// two concurrent invites for the same email race past the lookup and meet at the unique index
		if repository.IsUniqueViolation(err) {
			return nil, apperrors.ErrInvitationExists
		}
		return nil, fmt.Errorf("failed to create invitation: %w", err)
	}

	if s.dispatcher != nil {
		if err := s.dispatcher.DispatchInvitation(ctx, invitation); err != nil {
			logger.WithContext(ctx).WithError(err).WithField("invitation_id", invitation.ID).Error("failed to dispatch invitation")
		}
	}

	notify(ctx, s.notifier, orgID, revalidate.PathTeam)
	return toInvitationResponse(invitation), nil
}

// Revoke deletes a pending invitation of the organization
func (s *TeamService) Revoke(ctx context.Context, orgID, id uuid.UUID) error {
	if err := s.invitationRepo.Delete(ctx, orgID, id); err != nil {
		return notFound(err, apperrors.ErrInvitationNotFound, "revoke invitation")
	}

	notify(ctx, s.notifier, orgID, revalidate.PathTeam)
	return nil
}

// Accept turns a pending invitation into a user of the inviting organization.
// The invitation is consumed in the same transaction that creates the user.
func (s *TeamService) Accept(ctx context.Context, req *AcceptInvitationRequest) (*models.User, error) {
	if err := ValidateStruct(s.validator, req); err != nil {
		return nil, err
	}

	invitation, err := s.invitationRepo.GetPendingByToken(ctx, req.Token)
	if err != nil {
		return nil, notFound(err, apperrors.ErrInvitationNotFound, "get invitation")
	}
	if invitation.IsExpired(s.now()) {
		return nil, fmt.Errorf("validation failed: %w", apperrors.ErrInvitationExpired)
	}

	if _, err := s.userRepo.GetByEmail(ctx, invitation.Email); err == nil {
		return nil, apperrors.ErrUserExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check user: %w", err)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        invitation.Email,
		PasswordHash: hash,
	}
	if err := s.invitationRepo.Accept(ctx, invitation, user); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, apperrors.ErrUserExists
		}
		return nil, notFound(err, apperrors.ErrInvitationNotFound, "accept invitation")
	}

	logger.WithContext(ctx).WithFields(map[string]interface{}{
		"user_id":         user.ID,
		"organization_id": invitation.OrganizationID,
	}).Info("invitation accepted")

	notify(ctx, s.notifier, invitation.OrganizationID, revalidate.PathTeam)
	return user, nil
}

func toInvitationResponse(invitation *models.Invitation) *InvitationResponse {
	return &InvitationResponse{
		ID:        invitation.ID,
		Email:     invitation.Email,
		Status:    invitation.Status,
		ExpiresAt: formatTime(invitation.ExpiresAt),
		CreatedAt: formatTime(invitation.CreatedAt),
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
