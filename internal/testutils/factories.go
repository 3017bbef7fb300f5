package testutils

import (
	"fmt"
	"time"

	"crm-backend/internal/database/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func newBase() models.BaseModel {
	now := time.Now()
	return models.BaseModel{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func newTenant(orgID uuid.UUID) models.TenantModel {
	return models.TenantModel{BaseModel: newBase(), OrganizationID: orgID}
}

// OrganizationFactory provides methods to create test Organization data
type OrganizationFactory struct{}

// NewOrganizationFactory creates a new OrganizationFactory
func NewOrganizationFactory() *OrganizationFactory {
	return &OrganizationFactory{}
}

// Create creates a test Organization with default values
func (f *OrganizationFactory) Create() *models.Organization {
	return &models.Organization{
		BaseModel: newBase(),
		Name:      "Test Organization",
	}
}

// WithName sets a custom name for the organization
func (f *OrganizationFactory) WithName(name string) *models.Organization {
	org := f.Create()
	org.Name = name
	return org
}

// UserFactory provides methods to create test User data
type UserFactory struct{}

// NewUserFactory creates a new UserFactory
func NewUserFactory() *UserFactory {
	return &UserFactory{}
}

// Create creates a test User with a unique email and no organization
func (f *UserFactory) Create() *models.User {
	base := newBase()
	return &models.User{
		BaseModel:    base,
		Name:         "Jane Doe",
		Email:        fmt.Sprintf("jane.%s@test.com", base.ID.String()[:8]),
		PasswordHash: "$2a$04$notarealhashnotarealhashnotarealhashnotarealhashnota",
	}
}

// WithOrganization creates a test User belonging to the given organization
func (f *UserFactory) WithOrganization(orgID uuid.UUID) *models.User {
	user := f.Create()
	user.OrganizationID = &orgID
	return user
}

// WithEmail sets a custom email for the user
func (f *UserFactory) WithEmail(email string) *models.User {
	user := f.Create()
	user.Email = email
	return user
}

// InvitationFactory provides methods to create test Invitation data
type InvitationFactory struct{}

// NewInvitationFactory creates a new InvitationFactory
func NewInvitationFactory() *InvitationFactory {
	return &InvitationFactory{}
}

// Create creates a pending invitation that expires in a week
func (f *InvitationFactory) Create() *models.Invitation {
	tenant := newTenant(uuid.New())
	return &models.Invitation{
		TenantModel: tenant,
		Email:       fmt.Sprintf("invitee.%s@test.com", tenant.ID.String()[:8]),
		Token:       "token-" + tenant.ID.String(),
		Status:      models.InvitationStatusPending,
		ExpiresAt:   time.Now().Add(7 * 24 * time.Hour),
	}
}

// WithOrganization creates a pending invitation into the given organization
func (f *InvitationFactory) WithOrganization(orgID uuid.UUID) *models.Invitation {
	invitation := f.Create()
	invitation.OrganizationID = orgID
	return invitation
}

// CompanyFactory provides methods to create test Company data
type CompanyFactory struct{}

// NewCompanyFactory creates a new CompanyFactory
func NewCompanyFactory() *CompanyFactory {
	return &CompanyFactory{}
}

// Create creates a test Company with default values
func (f *CompanyFactory) Create() *models.Company {
	return &models.Company{
		TenantModel:    newTenant(uuid.New()),
		Name:           "Acme Inc",
		Domain:         "acme.com",
		Industry:       "Manufacturing",
		City:           "Chicago",
		Country:        "USA",
		LifecycleStage: models.CompanyDefaultLifecycleStage,
	}
}

// WithOrganization sets the organization for the company
func (f *CompanyFactory) WithOrganization(orgID uuid.UUID) *models.Company {
	company := f.Create()
	company.OrganizationID = orgID
	return company
}

// ContactFactory provides methods to create test Contact data
type ContactFactory struct{}

// NewContactFactory creates a new ContactFactory
func NewContactFactory() *ContactFactory {
	return &ContactFactory{}
}

// Create creates a test Contact with default values
func (f *ContactFactory) Create() *models.Contact {
	tenant := newTenant(uuid.New())
	return &models.Contact{
		TenantModel:    tenant,
		FirstName:      "John",
		LastName:       "Smith",
		Email:          fmt.Sprintf("john.%s@test.com", tenant.ID.String()[:8]),
		Phone:          "+1-555-0123",
		JobTitle:       "Buyer",
		LifecycleStage: models.ContactDefaultLifecycleStage,
	}
}

// WithOrganization sets the organization for the contact
func (f *ContactFactory) WithOrganization(orgID uuid.UUID) *models.Contact {
	contact := f.Create()
	contact.OrganizationID = orgID
	return contact
}

// WithCompany links the contact to a company of the same organization
func (f *ContactFactory) WithCompany(company *models.Company) *models.Contact {
	contact := f.WithOrganization(company.OrganizationID)
	contact.CompanyID = &company.ID
	return contact
}

// DealFactory provides methods to create test Deal data
type DealFactory struct{}

// NewDealFactory creates a new DealFactory
func NewDealFactory() *DealFactory {
	return &DealFactory{}
}

// Create creates a test Deal in the first pipeline stage
func (f *DealFactory) Create() *models.Deal {
	return &models.Deal{
		TenantModel: newTenant(uuid.New()),
		Name:        "Test Deal",
		Amount:      decimal.NewFromInt(1000),
		Stage:       models.DealStageAppointmentScheduled,
	}
}

// WithOrganization sets the organization for the deal
func (f *DealFactory) WithOrganization(orgID uuid.UUID) *models.Deal {
	deal := f.Create()
	deal.OrganizationID = orgID
	return deal
}

// WithStageAndAmount creates a deal of the organization in the given stage
func (f *DealFactory) WithStageAndAmount(orgID uuid.UUID, stage models.DealStage, amount int64) *models.Deal {
	deal := f.WithOrganization(orgID)
	deal.Stage = stage
	deal.Amount = decimal.NewFromInt(amount)
	deal.Name = fmt.Sprintf("%s %d", stage, amount)
	return deal
}

// TaskFactory provides methods to create test Task data
type TaskFactory struct{}

// NewTaskFactory creates a new TaskFactory
func NewTaskFactory() *TaskFactory {
	return &TaskFactory{}
}

// Create creates a pending test Task with medium priority
func (f *TaskFactory) Create() *models.Task {
	return &models.Task{
		TenantModel: newTenant(uuid.New()),
		Title:       "Follow up",
		Description: "Call back about pricing",
		Priority:    models.TaskPriorityMedium,
		Status:      models.TaskStatusPending,
	}
}

// WithOrganization sets the organization for the task
func (f *TaskFactory) WithOrganization(orgID uuid.UUID) *models.Task {
	task := f.Create()
	task.OrganizationID = orgID
	return task
}

// WithStatus creates a task of the organization with the given status
func (f *TaskFactory) WithStatus(orgID uuid.UUID, status models.TaskStatus) *models.Task {
	task := f.WithOrganization(orgID)
	task.Status = status
	return task
}

// FactorySet provides access to all factories
type FactorySet struct {
	Organization *OrganizationFactory
	User         *UserFactory
	Invitation   *InvitationFactory
	Company      *CompanyFactory
	Contact      *ContactFactory
	Deal         *DealFactory
	Task         *TaskFactory
}

// NewFactorySet creates a new FactorySet with all factories initialized
func NewFactorySet() *FactorySet {
	return &FactorySet{
		Organization: NewOrganizationFactory(),
		User:         NewUserFactory(),
		Invitation:   NewInvitationFactory(),
		Company:      NewCompanyFactory(),
		Contact:      NewContactFactory(),
		Deal:         NewDealFactory(),
		Task:         NewTaskFactory(),
	}
}

// CreateTenant creates an organization together with its owner, a company and a contact of that company.
// Nothing is persisted.
func (fs *FactorySet) CreateTenant(name string) (*models.Organization, *models.User, *models.Company, *models.Contact) {
	org := fs.Organization.WithName(name)
	owner := fs.User.WithOrganization(org.ID)
	company := fs.Company.WithOrganization(org.ID)
	contact := fs.Contact.WithCompany(company)
	return org, owner, company, contact
}
