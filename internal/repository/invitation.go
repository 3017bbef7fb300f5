package repository

import (
	"context"
	"strings"

	"crm-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InvitationRepository handles database operations for invitations
type InvitationRepository struct {
	db *gorm.DB
}

// NewInvitationRepository creates a new invitation repository
func NewInvitationRepository(db *gorm.DB) *InvitationRepository {
	return &InvitationRepository{db: db}
}

var _ InvitationRepositoryInterface = (*InvitationRepository)(nil)

// Create creates a new invitation
func (r *InvitationRepository) Create(ctx context.Context, invitation *models.Invitation) error {
	return r.db.WithContext(ctx).Create(invitation).Error
}

// GetPendingByEmail finds a pending invitation for email in any organization
func (r *InvitationRepository) GetPendingByEmail(ctx context.Context, email string) (*models.Invitation, error) {
	var invitation models.Invitation
	err := r.db.WithContext(ctx).
		Where("LOWER(email) = ? AND status = ?", strings.ToLower(email), models.InvitationStatusPending).
		First(&invitation).Error
	if err != nil {
		return nil, err
	}
	return &invitation, nil
}

// GetPendingByToken finds the pending invitation carrying token
func (r *InvitationRepository) GetPendingByToken(ctx context.Context, token string) (*models.Invitation, error) {
	var invitation models.Invitation
	err := r.db.WithContext(ctx).
		Where("token = ? AND status = ?", token, models.InvitationStatusPending).
		First(&invitation).Error
	if err != nil {
		return nil, err
	}
	return &invitation, nil
}

// ListByOrganization retrieves an organization's invitations, newest first
func (r *InvitationRepository) ListByOrganization(ctx context.Context, orgID uuid.UUID) ([]models.Invitation, error) {
	var invitations []models.Invitation
	err := r.db.WithContext(ctx).
		Scopes(ForOrganization(orgID)).
		Order("created_at DESC").
		Find(&invitations).Error
	if err != nil {
		return nil, err
	}
	return invitations, nil
}

// Delete revokes an invitation of the organization
func (r *InvitationRepository) Delete(ctx context.Context, orgID, id uuid.UUID) error {
	return deleteScoped(ctx, r.db, &models.Invitation{}, orgID, id)
}

// Accept creates the invited user in the invitation's organization and consumes the invitation.
// Both happen in one transaction; a concurrently consumed invitation yields gorm.ErrRecordNotFound.
func (r *InvitationRepository) Accept(ctx context.Context, invitation *models.Invitation, user *models.User) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ? AND status = ?", invitation.ID, models.InvitationStatusPending).
			Delete(&models.Invitation{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		orgID := invitation.OrganizationID
		user.OrganizationID = &orgID
		return tx.Create(user).Error
	})
}
