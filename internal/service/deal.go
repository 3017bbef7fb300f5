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
	"github.com/shopspring/decimal"
)

// DealService handles business logic for deals and the sales pipeline
type DealService struct {
	repo      repository.DealRepositoryInterface
	refs      references
	notifier  revalidate.Notifier
	validator *validator.Validate
}

// NewDealService creates a new deal service
func NewDealService(repo repository.DealRepositoryInterface, companyRepo repository.CompanyRepositoryInterface, notifier revalidate.Notifier, validator *validator.Validate) *DealService {
	return &DealService{
		repo:      repo,
		refs:      references{companies: companyRepo},
		notifier:  notifier,
		validator: validator,
	}
}

var _ DealServiceInterface = (*DealService)(nil)

// DealRequest represents the form submitted to create or update a deal
type DealRequest struct {
	Name      string           `json:"name" validate:"required,max=255"`
	Amount    Amount           `json:"amount"`
	Stage     models.DealStage `json:"stage" validate:"required"`
	CloseDate Date             `json:"close_date"`
	CompanyID OptionalID       `json:"company_id"`
}

// DealResponse represents the response for deal operations
type DealResponse struct {
	ID          uuid.UUID        `json:"id"`
	Name        string           `json:"name"`
	Amount      decimal.Decimal  `json:"amount"`
	Stage       models.DealStage `json:"stage"`
	CloseDate   *string          `json:"close_date"`
	CompanyID   *uuid.UUID       `json:"company_id"`
	CompanyName *string          `json:"company_name"`
	CreatedAt   string           `json:"created_at"`
	UpdatedAt   string           `json:"updated_at"`
}

// StageColumn is one column of the pipeline board
type StageColumn struct {
	Stage models.DealStage `json:"stage"`
	Count int              `json:"count"`
	Total decimal.Decimal  `json:"total"`
	Deals []DealResponse   `json:"deals"`
}

// PipelineResponse is the board: every stage in order, empty columns included
type PipelineResponse struct {
	Stages []StageColumn `json:"stages"`
}

// List retrieves the organization's deals, newest first
func (s *DealService) List(ctx context.Context, orgID uuid.UUID) ([]DealResponse, error) {
	deals, err := s.repo.List(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to list deals: %w", err)
	}

	responses := make([]DealResponse, len(deals))
	for i := range deals {
		responses[i] = *s.toResponse(&deals[i])
	}
	return responses, nil
}

// Pipeline groups the organization's deals by stage. Inside a column deals keep the listing order.
func (s *DealService) Pipeline(ctx context.Context, orgID uuid.UUID) (*PipelineResponse, error) {
	deals, err := s.List(ctx, orgID)
	if err != nil {
		return nil, err
	}

	stages := models.DealStages()
	columns := make([]StageColumn, len(stages))
	index := make(map[models.DealStage]int, len(stages))
	for i, stage := range stages {
		columns[i] = StageColumn{Stage: stage, Total: decimal.Zero, Deals: []DealResponse{}}
		index[stage] = i
	}

	for _, deal := range deals {
		i, ok := index[deal.Stage]
		if !ok {
			continue
		}
		columns[i].Deals = append(columns[i].Deals, deal)
		columns[i].Count++
		columns[i].Total = columns[i].Total.Add(deal.Amount)
	}

	return &PipelineResponse{Stages: columns}, nil
}

// Create creates a new deal in the organization
func (s *DealService) Create(ctx context.Context, orgID uuid.UUID, req *DealRequest) (*DealResponse, error) {
	resp, err := s.create(ctx, orgID, req)
	if err != nil {
		return nil, err
	}

	notify(ctx, s.notifier, orgID, revalidate.PathDeals, revalidate.PathDashboard)
	return resp, nil
}

func (s *DealService) create(ctx context.Context, orgID uuid.UUID, req *DealRequest) (*DealResponse, error) {
	if err := s.check(ctx, orgID, req); err != nil {
		return nil, err
	}

	deal := &models.Deal{TenantModel: models.TenantModel{OrganizationID: orgID}}
	applyDealRequest(deal, req)

	if err := s.repo.Create(ctx, deal); err != nil {
		return nil, fmt.Errorf("failed to create deal: %w", err)
	}

	created, err := s.repo.GetByID(ctx, orgID, deal.ID)
	if err != nil {
		return nil, notFound(err, apperrors.ErrDealNotFound, "get deal")
	}
	return s.toResponse(created), nil
}

// Update replaces the editable fields of a deal of the organization
func (s *DealService) Update(ctx context.Context, orgID, id uuid.UUID, req *DealRequest) (*DealResponse, error) {
	if err := s.check(ctx, orgID, req); err != nil {
		return nil, err
	}

	deal := &models.Deal{}
	applyDealRequest(deal, req)

	updates := map[string]interface{}{
		"name":       deal.Name,
		"amount":     deal.Amount,
		"stage":      deal.Stage,
		"close_date": deal.CloseDate,
		"company_id": deal.CompanyID,
	}
	if err := s.repo.Update(ctx, orgID, id, updates); err != nil {
		return nil, notFound(err, apperrors.ErrDealNotFound, "update deal")
	}

	updated, err := s.repo.GetByID(ctx, orgID, id)
	if err != nil {
		return nil, notFound(err, apperrors.ErrDealNotFound, "get deal")
	}

	notify(ctx, s.notifier, orgID, revalidate.PathDeals, revalidate.PathDashboard)
	return s.toResponse(updated), nil
}

// Transition moves a deal to another stage. Every stage is reachable from every other one,
// moving to the current stage succeeds without changing anything else.
func (s *DealService) Transition(ctx context.Context, orgID, id uuid.UUID, stage models.DealStage) error {
	if !stage.IsValid() {
		return fmt.Errorf("validation failed: %w", apperrors.ErrInvalidStage)
	}

	if err := s.repo.UpdateStage(ctx, orgID, id, stage); err != nil {
		return notFound(err, apperrors.ErrDealNotFound, "update deal stage")
	}

	notify(ctx, s.notifier, orgID, revalidate.PathDeals, revalidate.PathDashboard)
	return nil
}

// Delete deletes a deal of the organization
func (s *DealService) Delete(ctx context.Context, orgID, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, orgID, id); err != nil {
		return notFound(err, apperrors.ErrDealNotFound, "delete deal")
	}

	notify(ctx, s.notifier, orgID, revalidate.PathDeals, revalidate.PathDashboard)
	return nil
}

func (s *DealService) check(ctx context.Context, orgID uuid.UUID, req *DealRequest) error {
	if err := ValidateStruct(s.validator, req); err != nil {
		return err
	}
	if !req.Stage.IsValid() {
		return fmt.Errorf("validation failed: %w", apperrors.ErrInvalidStage)
	}
	// postgres rounds to two places before checking precision
	if req.Amount.Round(2).Abs().GreaterThanOrEqual(models.MaxDealAmount) {
		return fmt.Errorf("validation failed: %w", apperrors.ErrAmountOutOfRange)
	}
	return s.refs.company(ctx, orgID, req.CompanyID.Ptr())
}

func applyDealRequest(deal *models.Deal, req *DealRequest) {
	deal.Name = req.Name
	deal.Amount = req.Amount.Decimal
	deal.Stage = req.Stage
	deal.CloseDate = req.CloseDate.Ptr()
	deal.CompanyID = req.CompanyID.Ptr()
}

func (s *DealService) toResponse(deal *models.Deal) *DealResponse {
	resp := &DealResponse{
		ID:        deal.ID,
		Name:      deal.Name,
		Amount:    deal.Amount,
		Stage:     deal.Stage,
		CloseDate: formatDate(deal.CloseDate),
		CompanyID: deal.CompanyID,
		CreatedAt: formatTime(deal.CreatedAt),
		UpdatedAt: formatTime(deal.UpdatedAt),
	}
	if deal.Company != nil {
		name := deal.Company.Name
		resp.CompanyName = &name
	}
	return resp
}
