package repository

import (
	"context"

	"crm-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DealRepository handles database operations for deals
type DealRepository struct {
	db *gorm.DB
}

// NewDealRepository creates a new deal repository
func NewDealRepository(db *gorm.DB) *DealRepository {
	return &DealRepository{db: db}
}

var _ DealRepositoryInterface = (*DealRepository)(nil)

// Create creates a new deal
func (r *DealRepository) Create(ctx context.Context, deal *models.Deal) error {
	return r.db.WithContext(ctx).Create(deal).Error
}

// GetByID retrieves a deal of the organization by ID with its linked records
func (r *DealRepository) GetByID(ctx context.Context, orgID, id uuid.UUID) (*models.Deal, error) {
	var deal models.Deal
	err := r.db.WithContext(ctx).
		Preload("Company", "organization_id = ?", orgID).
		First(&deal, "id = ? AND organization_id = ?", id, orgID).Error
	if err != nil {
		return nil, err
	}
	return &deal, nil
}

// List retrieves the organization's deals with their company, newest first.
// This is also the card order inside each pipeline column.
func (r *DealRepository) List(ctx context.Context, orgID uuid.UUID) ([]models.Deal, error) {
	var deals []models.Deal
	err := r.db.WithContext(ctx).
		Scopes(ForOrganization(orgID)).
		Preload("Company", "organization_id = ?", orgID).
		Order("created_at DESC").
		Find(&deals).Error
	if err != nil {
		return nil, err
	}
	return deals, nil
}

// Update updates a deal of the organization
func (r *DealRepository) Update(ctx context.Context, orgID, id uuid.UUID, updates map[string]interface{}) error {
	return updateScoped(ctx, r.db, &models.Deal{}, orgID, id, updates)
}

// UpdateStage sets only the stage column. Postgres counts matched rows, so moving a
// deal to the stage it is already in still reports one affected row.
func (r *DealRepository) UpdateStage(ctx context.Context, orgID, id uuid.UUID, stage models.DealStage) error {
	return updateScoped(ctx, r.db, &models.Deal{}, orgID, id, map[string]interface{}{"stage": stage})
}

// Delete deletes a deal of the organization
func (r *DealRepository) Delete(ctx context.Context, orgID, id uuid.UUID) error {
	return deleteScoped(ctx, r.db, &models.Deal{}, orgID, id)
}
