package repository

import (
	"context"

	"crm-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CompanyRepository handles database operations for companies
type CompanyRepository struct {
	db *gorm.DB
}

// NewCompanyRepository creates a new company repository
func NewCompanyRepository(db *gorm.DB) *CompanyRepository {
	return &CompanyRepository{db: db}
}

var _ CompanyRepositoryInterface = (*CompanyRepository)(nil)

// Create creates a new company
func (r *CompanyRepository) Create(ctx context.Context, company *models.Company) error {
	return r.db.WithContext(ctx).Create(company).Error
}

// GetByID retrieves a company of the organization by ID
func (r *CompanyRepository) GetByID(ctx context.Context, orgID, id uuid.UUID) (*models.Company, error) {
	var company models.Company
	err := r.db.WithContext(ctx).First(&company, "id = ? AND organization_id = ?", id, orgID).Error
	if err != nil {
		return nil, err
	}
	return &company, nil
}

// List retrieves the organization's companies, newest first
func (r *CompanyRepository) List(ctx context.Context, orgID uuid.UUID) ([]models.Company, error) {
	var companies []models.Company
	err := r.db.WithContext(ctx).
		Scopes(ForOrganization(orgID)).
		Order("created_at DESC").
		Find(&companies).Error
	if err != nil {
		return nil, err
	}
	return companies, nil
}

// Update updates a company of the organization
func (r *CompanyRepository) Update(ctx context.Context, orgID, id uuid.UUID, updates map[string]interface{}) error {
	return updateScoped(ctx, r.db, &models.Company{}, orgID, id, updates)
}

// Delete deletes a company of the organization
func (r *CompanyRepository) Delete(ctx context.Context, orgID, id uuid.UUID) error {
	return deleteScoped(ctx, r.db, &models.Company{}, orgID, id)
}
