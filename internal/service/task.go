package service

import (
	"context"
	"fmt"

	"crm-backend/internal/database/models"
	apperrors "crm-backend/internal/errors"
	"crm-backend/internal/repository"
	"crm-backend/internal/revalidate"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// TaskService handles business logic for tasks
type TaskService struct {
	repo      repository.TaskRepositoryInterface
	refs      references
	notifier  revalidate.Notifier
	validator *validator.Validate
}

// NewTaskService creates a new task service
func NewTaskService(repo repository.TaskRepositoryInterface, contactRepo repository.ContactRepositoryInterface, companyRepo repository.CompanyRepositoryInterface, notifier revalidate.Notifier, validator *validator.Validate) *TaskService {
	return &TaskService{
		repo:      repo,
		refs:      references{companies: companyRepo, contacts: contactRepo},
		notifier:  notifier,
		validator: validator,
	}
}

var _ TaskServiceInterface = (*TaskService)(nil)

// TaskRequest represents the form submitted to create or update a task
type TaskRequest struct {
	Title       string              `json:"title" validate:"required,max=255"`
	Description string              `json:"description"`
	DueDate     Date                `json:"due_date"`
	Priority    models.TaskPriority `json:"priority"`
	Status      models.TaskStatus   `json:"status"`
	ContactID   OptionalID          `json:"contact_id"`
	CompanyID   OptionalID          `json:"company_id"`
}

// TaskResponse represents the response for task operations
type TaskResponse struct {
	ID          uuid.UUID           `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	DueDate     *string             `json:"due_date"`
	Priority    models.TaskPriority `json:"priority"`
	Status      models.TaskStatus   `json:"status"`
	ContactID   *uuid.UUID          `json:"contact_id"`
	ContactName *string             `json:"contact_name"`
	CompanyID   *uuid.UUID          `json:"company_id"`
	CompanyName *string             `json:"company_name"`
	CreatedAt   string              `json:"created_at"`
	UpdatedAt   string              `json:"updated_at"`
}

// List retrieves the organization's tasks by due date, undated last
func (s *TaskService) List(ctx context.Context, orgID uuid.UUID) ([]TaskResponse, error) {
	tasks, err := s.repo.List(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	responses := make([]TaskResponse, len(tasks))
	for i := range tasks {
		responses[i] = *s.toResponse(&tasks[i])
	}
	return responses, nil
}

// Create creates a new task in the organization. New tasks are always Pending.
func (s *TaskService) Create(ctx context.Context, orgID uuid.UUID, req *TaskRequest) (*TaskResponse, error) {
	if err := s.check(ctx, orgID, req); err != nil {
		return nil, err
	}

	task := &models.Task{TenantModel: models.TenantModel{OrganizationID: orgID}}
	applyTaskRequest(task, req)
	task.Status = models.TaskStatusPending

	if err := s.repo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	created, err := s.repo.GetByID(ctx, orgID, task.ID)
	if err != nil {
		return nil, notFound(err, apperrors.ErrTaskNotFound, "get task")
	}

	notify(ctx, s.notifier, orgID, revalidate.PathTasks, revalidate.PathDashboard)
	return s.toResponse(created), nil
}

// Update replaces the editable fields of a task. The status only changes when one is given.
func (s *TaskService) Update(ctx context.Context, orgID, id uuid.UUID, req *TaskRequest) (*TaskResponse, error) {
	if err := s.check(ctx, orgID, req); err != nil {
		return nil, err
	}

	task := &models.Task{}
	applyTaskRequest(task, req)

	updates := map[string]interface{}{
		"title":       task.Title,
		"description": task.Description,
		"due_date":    task.DueDate,
		"priority":    task.Priority,
		"contact_id":  task.ContactID,
		"company_id":  task.CompanyID,
	}
	if req.Status != "" {
		updates["status"] = req.Status
	}
	if err := s.repo.Update(ctx, orgID, id, updates); err != nil {
		return nil, notFound(err, apperrors.ErrTaskNotFound, "update task")
	}

	updated, err := s.repo.GetByID(ctx, orgID, id)
	if err != nil {
		return nil, notFound(err, apperrors.ErrTaskNotFound, "get task")
	}

	notify(ctx, s.notifier, orgID, revalidate.PathTasks, revalidate.PathDashboard)
	return s.toResponse(updated), nil
}

// UpdateStatus toggles a task between Pending and Completed
func (s *TaskService) UpdateStatus(ctx context.Context, orgID, id uuid.UUID, status models.TaskStatus) error {
	if !status.IsValid() {
		return fmt.Errorf("validation failed: %w", apperrors.ErrInvalidTaskStatus)
	}

	if err := s.repo.UpdateStatus(ctx, orgID, id, status); err != nil {
		return notFound(err, apperrors.ErrTaskNotFound, "update task status")
	}

	notify(ctx, s.notifier, orgID, revalidate.PathTasks, revalidate.PathDashboard)
	return nil
}

// Delete deletes a task of the organization
func (s *TaskService) Delete(ctx context.Context, orgID, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, orgID, id); err != nil {
		return notFound(err, apperrors.ErrTaskNotFound, "delete task")
	}

	notify(ctx, s.notifier, orgID, revalidate.PathTasks, revalidate.PathDashboard)
	return nil
}

func (s *TaskService) check(ctx context.Context, orgID uuid.UUID, req *TaskRequest) error {
	if err := ValidateStruct(s.validator, req); err != nil {
		return err
	}
	if req.Priority != "" && !req.Priority.IsValid() {
		return fmt.Errorf("validation failed: %w", apperrors.NewValidationError("priority", "must be Low, Medium or High"))
	}
	if req.Status != "" && !req.Status.IsValid() {
		return fmt.Errorf("validation failed: %w", apperrors.ErrInvalidTaskStatus)
	}
	if err := s.refs.contact(ctx, orgID, req.ContactID.Ptr()); err != nil {
		return err
	}
	return s.refs.company(ctx, orgID, req.CompanyID.Ptr())
}

func applyTaskRequest(task *models.Task, req *TaskRequest) {
	task.Title = req.Title
	task.Description = req.Description
	task.DueDate = req.DueDate.Ptr()
	task.Priority = req.Priority
	if task.Priority == "" {
		task.Priority = models.TaskPriorityMedium
	}
	task.ContactID = req.ContactID.Ptr()
	task.CompanyID = req.CompanyID.Ptr()
}

func (s *TaskService) toResponse(task *models.Task) *TaskResponse {
	resp := &TaskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		DueDate:     formatDate(task.DueDate),
		Priority:    task.Priority,
		Status:      task.Status,
		ContactID:   task.ContactID,
		CompanyID:   task.CompanyID,
		CreatedAt:   formatTime(task.CreatedAt),
		UpdatedAt:   formatTime(task.UpdatedAt),
	}
	if task.Contact != nil {
		name := task.Contact.FullName()
		resp.ContactName = &name
	}
	if task.Company != nil {
		name := task.Company.Name
		resp.CompanyName = &name
	}
	return resp
}
