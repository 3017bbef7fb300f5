package repository

import (
	"context"

	"crm-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ContactRepository handles database operations for contacts
type ContactRepository struct {
	db *gorm.DB
}

// NewContactRepository creates a new contact repository
func NewContactRepository(db *gorm.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

var _ ContactRepositoryInterface = (*ContactRepository)(nil)

// Create creates a new contact
func (r *ContactRepository) Create(ctx context.Context, contact *models.Contact) error {
	return r.db.WithContext(ctx).Create(contact).Error
}

// GetByID retrieves a contact of the organization by ID with its linked records
func (r *ContactRepository) GetByID(ctx context.Context, orgID, id uuid.UUID) (*models.Contact, error) {
	var contact models.Contact
	err := r.db.WithContext(ctx).
		Preload("Company", "organization_id = ?", orgID).
		First(&contact, "id = ? AND organization_id = ?", id, orgID).Error
	if err != nil {
		return nil, err
	}
	return &contact, nil
}

// List retrieves the organization's contacts with their company, newest first
func (r *ContactRepository) List(ctx context.Context, orgID uuid.UUID) ([]models.Contact, error) {
	var contacts []models.Contact
	err := r.db.WithContext(ctx).
		Scopes(ForOrganization(orgID)).
		Preload("Company", "organization_id = ?", orgID).
		Order("created_at DESC").
		Find(&contacts).Error
	if err != nil {
		return nil, err
	}
	return contacts, nil
}

// Update updates a contact of the organization
func (r *ContactRepository) Update(ctx context.Context, orgID, id uuid.UUID, updates map[string]interface{}) error {
	return updateScoped(ctx, r.db, &models.Contact{}, orgID, id, updates)
}

// Delete deletes a contact of the organization
func (r *ContactRepository) Delete(ctx context.Context, orgID, id uuid.UUID) error {
	return deleteScoped(ctx, r.db, &models.Contact{}, orgID, id)
}
