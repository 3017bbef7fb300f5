package service

import (
	"context"
	"io"

	"crm-backend/internal/database/models"

	"github.com/google/uuid"
)

//go:generate mockgen -source=interfaces.go -destination=../mocks/service_mocks.go -package=mocks

// Every method takes the organization id resolved by the tenant guard; none of them reads tenant state from ctx.

// CompanyServiceInterface defines the interface for company service
type CompanyServiceInterface interface {
	List(ctx context.Context, orgID uuid.UUID) ([]CompanyResponse, error)
	Create(ctx context.Context, orgID uuid.UUID, req *CompanyRequest) (*CompanyResponse, error)
	Update(ctx context.Context, orgID, id uuid.UUID, req *CompanyRequest) (*CompanyResponse, error)
	Delete(ctx context.Context, orgID, id uuid.UUID) error
}

// ContactServiceInterface defines the interface for contact service
type ContactServiceInterface interface {
	List(ctx context.Context, orgID uuid.UUID) ([]ContactResponse, error)
	Create(ctx context.Context, orgID uuid.UUID, req *ContactRequest) (*ContactResponse, error)
	Update(ctx context.Context, orgID, id uuid.UUID, req *ContactRequest) (*ContactResponse, error)
	Delete(ctx context.Context, orgID, id uuid.UUID) error
}

// DealServiceInterface defines the interface for deal service, including the pipeline transitions
type DealServiceInterface interface {
	List(ctx context.Context, orgID uuid.UUID) ([]DealResponse, error)
	Pipeline(ctx context.Context, orgID uuid.UUID) (*PipelineResponse, error)
	Create(ctx context.Context, orgID uuid.UUID, req *DealRequest) (*DealResponse, error)
	Update(ctx context.Context, orgID, id uuid.UUID, req *DealRequest) (*DealResponse, error)
	Transition(ctx context.Context, orgID, id uuid.UUID, stage models.DealStage) error
	Delete(ctx context.Context, orgID, id uuid.UUID) error
	Import(ctx context.Context, orgID uuid.UUID, filename string, r io.Reader) (*ImportResult, error)
}

// TaskServiceInterface defines the interface for task service
type TaskServiceInterface interface {
	List(ctx context.Context, orgID uuid.UUID) ([]TaskResponse, error)
	Create(ctx context.Context, orgID uuid.UUID, req *TaskRequest) (*TaskResponse, error)
	Update(ctx context.Context, orgID, id uuid.UUID, req *TaskRequest) (*TaskResponse, error)
	UpdateStatus(ctx context.Context, orgID, id uuid.UUID, status models.TaskStatus) error
	Delete(ctx context.Context, orgID, id uuid.UUID) error
}

// DashboardServiceInterface defines the interface for dashboard service
type DashboardServiceInterface interface {
	GetStats(ctx context.Context, orgID uuid.UUID) (*DashboardResponse, error)
}

// TeamServiceInterface defines the interface for team membership and invitations
type TeamServiceInterface interface {
	Members(ctx context.Context, orgID uuid.UUID) (*TeamResponse, error)
	Invite(ctx context.Context, orgID, invitedBy uuid.UUID, req *InviteRequest) (*InvitationResponse, error)
	Revoke(ctx context.Context, orgID, id uuid.UUID) error
	Accept(ctx context.Context, req *AcceptInvitationRequest) (*models.User, error)
}

// InvitationDispatcher hands a new invitation to the delivery channel
type InvitationDispatcher interface {
	DispatchInvitation(ctx context.Context, invitation *models.Invitation) error
}
