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

// CompanyService handles business logic for companies
type CompanyService struct {
	repo      repository.CompanyRepositoryInterface
	notifier  revalidate.Notifier
	validator *validator.Validate
}

// NewCompanyService creates a new company service
func NewCompanyService(repo repository.CompanyRepositoryInterface, notifier revalidate.Notifier, validator *validator.Validate) *CompanyService {
	return &CompanyService{
		repo:      repo,
		notifier:  notifier,
		validator: validator,
	}
}

var _ CompanyServiceInterface = (*CompanyService)(nil)

// CompanyRequest represents the form submitted to create or update a company
type CompanyRequest struct {
	Name           string `json:"name" validate:"required,max=255"`
	Domain         string `json:"domain" validate:"max=255"`
	Address        string `json:"address" validate:"max=255"`
	City           string `json:"city" validate:"max=255"`
	State          string `json:"state" validate:"max=255"`
	Country        string `json:"country" validate:"max=255"`
	Industry       string `json:"industry" validate:"max=255"`
	Employees      string `json:"employees" validate:"max=50"`
	Revenue        string `json:"revenue" validate:"max=50"`
	Description    string `json:"description"`
	AboutUs        string `json:"about_us"`
	LifecycleStage string `json:"lifecycle_stage" validate:"max=50"`
}

// CompanyResponse represents the response for company operations
type CompanyResponse struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Domain         string    `json:"domain"`
	Address        string    `json:"address"`
	City           string    `json:"city"`
	State          string    `json:"state"`
	Country        string    `json:"country"`
	Industry       string    `json:"industry"`
	Employees      string    `json:"employees"`
	Revenue        string    `json:"revenue"`
	Description    string    `json:"description"`
	AboutUs        string    `json:"about_us"`
	LifecycleStage string    `json:"lifecycle_stage"`
	CreatedAt      string    `json:"created_at"`
	UpdatedAt      string    `json:"updated_at"`
}

// List retrieves the organization's companies, newest first
func (s *CompanyService) List(ctx context.Context, orgID uuid.UUID) ([]CompanyResponse, error) {
	companies, err := s.repo.List(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}

	responses := make([]CompanyResponse, len(companies))
	for i := range companies {
		responses[i] = *s.toResponse(&companies[i])
	}
	return responses, nil
}

// Create creates a new company in the organization
func (s *CompanyService) Create(ctx context.Context, orgID uuid.UUID, req *CompanyRequest) (*CompanyResponse, error) {
	if err := ValidateStruct(s.validator, req); err != nil {
		return nil, err
	}

	company := &models.Company{TenantModel: models.TenantModel{OrganizationID: orgID}}
	applyCompanyRequest(company, req)

	if err := s.repo.Create(ctx, company); err != nil {
		return nil, fmt.Errorf("failed to create company: %w", err)
	}

	notify(ctx, s.notifier, orgID, revalidate.PathCompanies)
	return s.toResponse(company), nil
}

// Update replaces the editable fields of a company of the organization
func (s *CompanyService) Update(ctx context.Context, orgID, id uuid.UUID, req *CompanyRequest) (*CompanyResponse, error) {
	if err := ValidateStruct(s.validator, req); err != nil {
		return nil, err
	}

	company := &models.Company{}
	applyCompanyRequest(company, req)

	updates := map[string]interface{}{
		"name":            company.Name,
		"domain":          company.Domain,
		"address":         company.Address,
		"city":            company.City,
		"state":           company.State,
		"country":         company.Country,
		"industry":        company.Industry,
		"employees":       company.Employees,
		"revenue":         company.Revenue,
		"description":     company.Description,
		"about_us":        company.AboutUs,
		"lifecycle_stage": company.LifecycleStage,
	}
	if err := s.repo.Update(ctx, orgID, id, updates); err != nil {
		return nil, notFound(err, apperrors.ErrCompanyNotFound, "update company")
	}

	updated, err := s.repo.GetByID(ctx, orgID, id)
	if err != nil {
		return nil, notFound(err, apperrors.ErrCompanyNotFound, "get company")
	}

	notify(ctx, s.notifier, orgID, revalidate.PathCompanies)
	return s.toResponse(updated), nil
}

// Delete deletes a company of the organization. Contacts, deals and tasks linking to it keep existing.
func (s *CompanyService) Delete(ctx context.Context, orgID, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, orgID, id); err != nil {
		return notFound(err, apperrors.ErrCompanyNotFound, "delete company")
	}

	notify(ctx, s.notifier, orgID, revalidate.PathCompanies)
	return nil
}

func applyCompanyRequest(company *models.Company, req *CompanyRequest) {
	company.Name = req.Name
	company.Domain = req.Domain
	company.Address = req.Address
	company.City = req.City
	company.State = req.State
	company.Country = req.Country
	company.Industry = req.Industry
	company.Employees = req.Employees
	company.Revenue = req.Revenue
	company.Description = req.Description
	company.AboutUs = req.AboutUs
	company.LifecycleStage = req.LifecycleStage
	if company.LifecycleStage == "" {
		company.LifecycleStage = models.CompanyDefaultLifecycleStage
	}
}

func (s *CompanyService) toResponse(company *models.Company) *CompanyResponse {
	return &CompanyResponse{
		ID:             company.ID,
		Name:           company.Name,
		Domain:         company.Domain,
		Address:        company.Address,
		City:           company.City,
		State:          company.State,
		Country:        company.Country,
		Industry:       company.Industry,
		Employees:      company.Employees,
		Revenue:        company.Revenue,
		Description:    company.Description,
		AboutUs:        company.AboutUs,
		LifecycleStage: company.LifecycleStage,
		CreatedAt:      formatTime(company.CreatedAt),
		UpdatedAt:      formatTime(company.UpdatedAt),
	}
}
