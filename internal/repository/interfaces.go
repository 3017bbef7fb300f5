package repository

import (
	"context"
	"time"

	"crm-backend/internal/database/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=interfaces.go -destination=../mocks/repository_mocks.go -package=mocks

// Every method that touches tenant data takes the organization id explicitly and adds it to the
// WHERE clause. Update and Delete return gorm.ErrRecordNotFound when no row of that organization matched.

// OrganizationRepositoryInterface defines the interface for organization repository operations
type OrganizationRepositoryInterface interface {
	Create(ctx context.Context, org *models.Organization) error
	CreateWithOwner(ctx context.Context, org *models.Organization, owner *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Organization, error)
}

// UserRepositoryInterface defines the interface for user repository operations
type UserRepositoryInterface interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	ListByOrganization(ctx context.Context, orgID uuid.UUID) ([]models.User, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
}

// InvitationRepositoryInterface defines the interface for invitation repository operations
type InvitationRepositoryInterface interface {
	Create(ctx context.Context, invitation *models.Invitation) error
	GetPendingByEmail(ctx context.Context, email string) (*models.Invitation, error)
	GetPendingByToken(ctx context.Context, token string) (*models.Invitation, error)
	ListByOrganization(ctx context.Context, orgID uuid.UUID) ([]models.Invitation, error)
	Delete(ctx context.Context, orgID, id uuid.UUID) error
	Accept(ctx context.Context, invitation *models.Invitation, user *models.User) error
}

// CompanyRepositoryInterface defines the interface for company repository operations
type CompanyRepositoryInterface interface {
	Create(ctx context.Context, company *models.Company) error
	GetByID(ctx context.Context, orgID, id uuid.UUID) (*models.Company, error)
	List(ctx context.Context, orgID uuid.UUID) ([]models.Company, error)
	Update(ctx context.Context, orgID, id uuid.UUID, updates map[string]interface{}) error
	Delete(ctx context.Context, orgID, id uuid.UUID) error
}

// ContactRepositoryInterface defines the interface for contact repository operations
type ContactRepositoryInterface interface {
	Create(ctx context.Context, contact *models.Contact) error
	GetByID(ctx context.Context, orgID, id uuid.UUID) (*models.Contact, error)
	List(ctx context.Context, orgID uuid.UUID) ([]models.Contact, error)
	Update(ctx context.Context, orgID, id uuid.UUID, updates map[string]interface{}) error
	Delete(ctx context.Context, orgID, id uuid.UUID) error
}

// DealRepositoryInterface defines the interface for deal repository operations
type DealRepositoryInterface interface {
	Create(ctx context.Context, deal *models.Deal) error
	GetByID(ctx context.Context, orgID, id uuid.UUID) (*models.Deal, error)
	List(ctx context.Context, orgID uuid.UUID) ([]models.Deal, error)
	Update(ctx context.Context, orgID, id uuid.UUID, updates map[string]interface{}) error
	UpdateStage(ctx context.Context, orgID, id uuid.UUID, stage models.DealStage) error
	Delete(ctx context.Context, orgID, id uuid.UUID) error
}

// TaskRepositoryInterface defines the interface for task repository operations
type TaskRepositoryInterface interface {
	Create(ctx context.Context, task *models.Task) error
	GetByID(ctx context.Context, orgID, id uuid.UUID) (*models.Task, error)
	List(ctx context.Context, orgID uuid.UUID) ([]models.Task, error)
	Update(ctx context.Context, orgID, id uuid.UUID, updates map[string]interface{}) error
	UpdateStatus(ctx context.Context, orgID, id uuid.UUID, status models.TaskStatus) error
	Delete(ctx context.Context, orgID, id uuid.UUID) error
}

// MonthlyRevenue is the Closed Won amount of one calendar month
type MonthlyRevenue struct {
	Month   time.Time
	Revenue decimal.Decimal
}

// DashboardRepositoryInterface defines the read-only aggregate queries behind the dashboard
type DashboardRepositoryInterface interface {
	TotalRevenue(ctx context.Context, orgID uuid.UUID) (decimal.Decimal, error)
	PipelineValue(ctx context.Context, orgID uuid.UUID) (decimal.Decimal, error)
	CountContacts(ctx context.Context, orgID uuid.UUID) (int64, error)
	CountPendingTasks(ctx context.Context, orgID uuid.UUID) (int64, error)
	RecentDeals(ctx context.Context, orgID uuid.UUID, limit int) ([]models.Deal, error)
	RecentTasks(ctx context.Context, orgID uuid.UUID, limit int) ([]models.Task, error)
	RevenueByMonth(ctx context.Context, orgID uuid.UUID, since time.Time) ([]MonthlyRevenue, error)
}
