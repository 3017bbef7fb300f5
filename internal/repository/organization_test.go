//go:build integration
// +build integration

package repository

import (
	"context"
	"testing"

	"crm-backend/internal/database/models"
	"crm-backend/internal/testutils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

// OrganizationRepositoryTestSuite tests the OrganizationRepository
type OrganizationRepositoryTestSuite struct {
	suite.Suite
	baseTestSuite *testutils.BaseTestSuite
	repo          *OrganizationRepository
	userRepo      *UserRepository
	factories     *testutils.FactorySet
	ctx           context.Context
}

// SetupSuite runs before all tests in the suite
func (suite *OrganizationRepositoryTestSuite) SetupSuite() {
	suite.baseTestSuite = testutils.SetupTestSuite(suite.T())

	suite.repo = NewOrganizationRepository(suite.baseTestSuite.DB)
	suite.userRepo = NewUserRepository(suite.baseTestSuite.DB)
	suite.factories = testutils.NewFactorySet()
	suite.ctx = context.Background()
}

// TearDownSuite runs after all tests in the suite
func (suite *OrganizationRepositoryTestSuite) TearDownSuite() {
	suite.baseTestSuite.TeardownTestSuite()
}

// SetupTest runs before each test
func (suite *OrganizationRepositoryTestSuite) SetupTest() {
	suite.baseTestSuite.SetupTest()
}

// TearDownTest runs after each test
func (suite *OrganizationRepositoryTestSuite) TearDownTest() {
	suite.baseTestSuite.TearDownTest()
}

// TestCreate tests creating a new organization
func (suite *OrganizationRepositoryTestSuite) TestCreate() {
	org := &models.Organization{Name: "Acme Org"}

	err := suite.repo.Create(suite.ctx, org)

	suite.NoError(err)
	suite.NotEqual(uuid.Nil, org.ID)
	suite.NotZero(org.CreatedAt)
	suite.NotZero(org.UpdatedAt)
}

// TestGetByID tests retrieving an organization by ID
func (suite *OrganizationRepositoryTestSuite) TestGetByID() {
	org := suite.factories.Organization.WithName("Lookup Org")
	suite.Require().NoError(suite.repo.Create(suite.ctx, org))

	retrieved, err := suite.repo.GetByID(suite.ctx, org.ID)

	suite.NoError(err)
	suite.Equal(org.ID, retrieved.ID)
	suite.Equal("Lookup Org", retrieved.Name)
}

// TestGetByIDNotFound tests retrieving a non-existent organization
func (suite *OrganizationRepositoryTestSuite) TestGetByIDNotFound() {
	org, err := suite.repo.GetByID(suite.ctx, uuid.New())

	suite.ErrorIs(err, gorm.ErrRecordNotFound)
	suite.Nil(org)
}

// TestCreateWithOwner tests that the organization and its first user are created together
func (suite *OrganizationRepositoryTestSuite) TestCreateWithOwner() {
	org := &models.Organization{Name: "Jane's Org"}
	owner := suite.factories.User.Create()

	err := suite.repo.CreateWithOwner(suite.ctx, org, owner)
	suite.Require().NoError(err)

	suite.Require().NotNil(owner.OrganizationID)
	suite.Equal(org.ID, *owner.OrganizationID)

	stored, err := suite.userRepo.GetByID(suite.ctx, owner.ID)
	suite.Require().NoError(err)
	suite.Equal(org.ID, *stored.OrganizationID)
}

// TestCreateWithOwnerRollsBack tests that a failing owner insert leaves no orphan organization
func (suite *OrganizationRepositoryTestSuite) TestCreateWithOwnerRollsBack() {
	existing := suite.factories.User.WithEmail("taken@example.com")
	suite.Require().NoError(suite.userRepo.Create(suite.ctx, existing))

	org := &models.Organization{Name: "Orphan Org"}
	owner := suite.factories.User.WithEmail("taken@example.com")

	err := suite.repo.CreateWithOwner(suite.ctx, org, owner)
	suite.Require().Error(err)
	suite.True(IsUniqueViolation(err))

	var count int64
	suite.NoError(suite.baseTestSuite.DB.Model(&models.Organization{}).Where("name = ?", "Orphan Org").Count(&count).Error)
	suite.Zero(count)
}

// TestOrganizationRepositoryTestSuite runs the test suite
func TestOrganizationRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(OrganizationRepositoryTestSuite))
}
