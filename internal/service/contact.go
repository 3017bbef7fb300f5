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

// ContactService handles business logic for contacts
type ContactService struct {
	repo      repository.ContactRepositoryInterface
	refs      references
	notifier  revalidate.Notifier
	validator *validator.Validate
}

// NewContactService creates a new contact service
func NewContactService(repo repository.ContactRepositoryInterface, companyRepo repository.CompanyRepositoryInterface, notifier revalidate.Notifier, validator *validator.Validate) *ContactService {
	return &ContactService{
		repo:      repo,
		refs:      references{companies: companyRepo, contacts: repo},
		notifier:  notifier,
		validator: validator,
	}
}

var _ ContactServiceInterface = (*ContactService)(nil)

// ContactRequest represents the form submitted to create or update a contact
type ContactRequest struct {
	FirstName      string     `json:"first_name" validate:"required,max=255"`
	LastName       string     `json:"last_name" validate:"required,max=255"`
	Email          string     `json:"email" validate:"required,email,max=255"`
	Phone          string     `json:"phone" validate:"max=50"`
	JobTitle       string     `json:"job_title" validate:"max=255"`
	LifecycleStage string     `json:"lifecycle_stage" validate:"max=50"`
	CompanyID      OptionalID `json:"company_id"`
}

// ContactResponse represents the response for contact operations
type ContactResponse struct {
	ID             uuid.UUID  `json:"id"`
	FirstName      string     `json:"first_name"`
	LastName       string     `json:"last_name"`
	Email          string     `json:"email"`
	Phone          string     `json:"phone"`
	JobTitle       string     `json:"job_title"`
	LifecycleStage string     `json:"lifecycle_stage"`
	CompanyID      *uuid.UUID `json:"company_id"`
	CompanyName    *string    `json:"company_name"`
	CreatedAt      string     `json:"created_at"`
	UpdatedAt      string     `json:"updated_at"`
}

// List retrieves the organization's contacts with their company, newest first
func (s *ContactService) List(ctx context.Context, orgID uuid.UUID) ([]ContactResponse, error) {
	contacts, err := s.repo.List(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}

	responses := make([]ContactResponse, len(contacts))
	for i := range contacts {
		responses[i] = *s.toResponse(&contacts[i])
	}
	return responses, nil
}

// Create creates a new contact in the organization
func (s *ContactService) Create(ctx context.Context, orgID uuid.UUID, req *ContactRequest) (*ContactResponse, error) {
	if err := ValidateStruct(s.validator, req); err != nil {
		return nil, err
	}
	if err := s.refs.company(ctx, orgID, req.CompanyID.Ptr()); err != nil {
		return nil, err
	}

	contact := &models.Contact{TenantModel: models.TenantModel{OrganizationID: orgID}}
	applyContactRequest(contact, req)

	if err := s.repo.Create(ctx, contact); err != nil {
		return nil, fmt.Errorf("failed to create contact: %w", err)
	}

	created, err := s.repo.GetByID(ctx, orgID, contact.ID)
	if err != nil {
		return nil, notFound(err, apperrors.ErrContactNotFound, "get contact")
	}

	notify(ctx, s.notifier, orgID, revalidate.PathContacts, revalidate.PathDashboard)
	return s.toResponse(created), nil
}

// Update replaces the editable fields of a contact of the organization
func (s *ContactService) Update(ctx context.Context, orgID, id uuid.UUID, req *ContactRequest) (*ContactResponse, error) {
	if err := ValidateStruct(s.validator, req); err != nil {
		return nil, err
	}
	if err := s.refs.company(ctx, orgID, req.CompanyID.Ptr()); err != nil {
		return nil, err
	}

	contact := &models.Contact{}
	applyContactRequest(contact, req)

	updates := map[string]interface{}{
		"first_name":      contact.FirstName,
		"last_name":       contact.LastName,
		"email":           contact.Email,
		"phone":           contact.Phone,
		"job_title":       contact.JobTitle,
		"lifecycle_stage": contact.LifecycleStage,
		"company_id":      contact.CompanyID,
	}
	if err := s.repo.Update(ctx, orgID, id, updates); err != nil {
		return nil, notFound(err, apperrors.ErrContactNotFound, "update contact")
	}

	updated, err := s.repo.GetByID(ctx, orgID, id)
	if err != nil {
		return nil, notFound(err, apperrors.ErrContactNotFound, "get contact")
	}

	notify(ctx, s.notifier, orgID, revalidate.PathContacts)
	return s.toResponse(updated), nil
}

// Delete deletes a contact of the organization. Tasks linking to it keep existing.
func (s *ContactService) Delete(ctx context.Context, orgID, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, orgID, id); err != nil {
		return notFound(err, apperrors.ErrContactNotFound, "delete contact")
	}

	notify(ctx, s.notifier, orgID, revalidate.PathContacts, revalidate.PathDashboard)
	return nil
}

func applyContactRequest(contact *models.Contact, req *ContactRequest) {
	contact.FirstName = req.FirstName
	contact.LastName = req.LastName
	contact.Email = req.Email
	contact.Phone = req.Phone
	contact.JobTitle = req.JobTitle
	contact.LifecycleStage = req.LifecycleStage
	if contact.LifecycleStage == "" {
		contact.LifecycleStage = models.ContactDefaultLifecycleStage
	}
	contact.CompanyID = req.CompanyID.Ptr()
}

func (s *ContactService) toResponse(contact *models.Contact) *ContactResponse {
	resp := &ContactResponse{
		ID:             contact.ID,
		FirstName:      contact.FirstName,
		LastName:       contact.LastName,
		Email:          contact.Email,
		Phone:          contact.Phone,
		JobTitle:       contact.JobTitle,
		LifecycleStage: contact.LifecycleStage,
		CompanyID:      contact.CompanyID,
		CreatedAt:      formatTime(contact.CreatedAt),
		UpdatedAt:      formatTime(contact.UpdatedAt),
	}
	if contact.Company != nil {
		name := contact.Company.Name
		resp.CompanyName = &name
	}
	return resp
}
