package repository

import (
	"context"

	"crm-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TaskRepository handles database operations for tasks
type TaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

var _ TaskRepositoryInterface = (*TaskRepository)(nil)

// Create creates a new task
func (r *TaskRepository) Create(ctx context.Context, task *models.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

// GetByID retrieves a task of the organization by ID with its linked records
func (r *TaskRepository) GetByID(ctx context.Context, orgID, id uuid.UUID) (*models.Task, error) {
	var task models.Task
	err := r.db.WithContext(ctx).
		Preload("Contact", "organization_id = ?", orgID).
		Preload("Company", "organization_id = ?", orgID).
		First(&task, "id = ? AND organization_id = ?", id, orgID).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// List retrieves the organization's tasks ordered by due date, undated tasks last
func (r *TaskRepository) List(ctx context.Context, orgID uuid.UUID) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.WithContext(ctx).
		Scopes(ForOrganization(orgID)).
		Preload("Contact", "organization_id = ?", orgID).
		Preload("Company", "organization_id = ?", orgID).
		Order("due_date ASC NULLS LAST").
		Order("created_at DESC").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// Update updates a task of the organization
func (r *TaskRepository) Update(ctx context.Context, orgID, id uuid.UUID, updates map[string]interface{}) error {
	return updateScoped(ctx, r.db, &models.Task{}, orgID, id, updates)
}

// UpdateStatus sets only the status column
func (r *TaskRepository) UpdateStatus(ctx context.Context, orgID, id uuid.UUID, status models.TaskStatus) error {
	return updateScoped(ctx, r.db, &models.Task{}, orgID, id, map[string]interface{}{"status": status})
}

// Delete deletes a task of the organization
func (r *TaskRepository) Delete(ctx context.Context, orgID, id uuid.UUID) error {
	return deleteScoped(ctx, r.db, &models.Task{}, orgID, id)
}
