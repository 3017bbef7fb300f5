//go:build integration
// +build integration

package repository

import (
	"context"
	"testing"

	"crm-backend/internal/testutils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

// UserRepositoryTestSuite tests the UserRepository
type UserRepositoryTestSuite struct {
	suite.Suite
	baseTestSuite *testutils.BaseTestSuite
	repo          *UserRepository
	orgRepo       *OrganizationRepository
	factories     *testutils.FactorySet
	ctx           context.Context
}

func (suite *UserRepositoryTestSuite) SetupSuite() {
	suite.baseTestSuite = testutils.SetupTestSuite(suite.T())
	suite.repo = NewUserRepository(suite.baseTestSuite.DB)
	suite.orgRepo = NewOrganizationRepository(suite.baseTestSuite.DB)
	suite.factories = testutils.NewFactorySet()
	suite.ctx = context.Background()
}

func (suite *UserRepositoryTestSuite) TearDownSuite() {
	suite.baseTestSuite.TeardownTestSuite()
}

func (suite *UserRepositoryTestSuite) SetupTest() {
	suite.baseTestSuite.SetupTest()
}

func (suite *UserRepositoryTestSuite) TearDownTest() {
	suite.baseTestSuite.TearDownTest()
}

// TestCreateDuplicateEmail tests that emails are unique across organizations
func (suite *UserRepositoryTestSuite) TestCreateDuplicateEmail() {
	orgA := suite.factories.Organization.WithName("A")
	orgB := suite.factories.Organization.WithName("B")
	suite.Require().NoError(suite.orgRepo.Create(suite.ctx, orgA))
	suite.Require().NoError(suite.orgRepo.Create(suite.ctx, orgB))

	first := suite.factories.User.WithOrganization(orgA.ID)
	first.Email = "test@example.com"
	suite.Require().NoError(suite.repo.Create(suite.ctx, first))

	second := suite.factories.User.WithOrganization(orgB.ID)
	second.Email = "test@example.com"
	err := suite.repo.Create(suite.ctx, second)

	suite.Error(err)
	suite.True(IsUniqueViolation(err))
}

// TestGetByEmail tests that lookup by email ignores case
func (suite *UserRepositoryTestSuite) TestGetByEmail() {
	org := suite.factories.Organization.Create()
	suite.Require().NoError(suite.orgRepo.Create(suite.ctx, org))

	user := suite.factories.User.WithOrganization(org.ID)
	user.Email = "test@example.com"
	suite.Require().NoError(suite.repo.Create(suite.ctx, user))

	retrieved, err := suite.repo.GetByEmail(suite.ctx, "Test@Example.com")

	suite.NoError(err)
	suite.Equal(user.ID, retrieved.ID)
	suite.Equal(org.ID, *retrieved.OrganizationID)
}

// TestGetByIDNotFound tests retrieving a non-existent user
func (suite *UserRepositoryTestSuite) TestGetByIDNotFound() {
	user, err := suite.repo.GetByID(suite.ctx, uuid.New())

	suite.ErrorIs(err, gorm.ErrRecordNotFound)
	suite.Nil(user)
}

// TestListByOrganization tests that only members of the organization are returned
func (suite *UserRepositoryTestSuite) TestListByOrganization() {
	orgA := suite.factories.Organization.WithName("A")
	orgB := suite.factories.Organization.WithName("B")
	suite.Require().NoError(suite.orgRepo.Create(suite.ctx, orgA))
	suite.Require().NoError(suite.orgRepo.Create(suite.ctx, orgB))

	for i := 0; i < 2; i++ {
		suite.Require().NoError(suite.repo.Create(suite.ctx, suite.factories.User.WithOrganization(orgA.ID)))
	}
	suite.Require().NoError(suite.repo.Create(suite.ctx, suite.factories.User.WithOrganization(orgB.ID)))

	members, err := suite.repo.ListByOrganization(suite.ctx, orgA.ID)

	suite.NoError(err)
	suite.Len(members, 2)
	for _, m := range members {
		suite.Equal(orgA.ID, *m.OrganizationID)
	}
}

// TestUpdate tests updating columns of a user
func (suite *UserRepositoryTestSuite) TestUpdate() {
	user := suite.factories.User.Create()
	suite.Require().NoError(suite.repo.Create(suite.ctx, user))

	err := suite.repo.Update(suite.ctx, user.ID, map[string]interface{}{"name": "Renamed"})
	suite.NoError(err)

	stored, err := suite.repo.GetByID(suite.ctx, user.ID)
	suite.Require().NoError(err)
	suite.Equal("Renamed", stored.Name)

	err = suite.repo.Update(suite.ctx, uuid.New(), map[string]interface{}{"name": "Ghost"})
	suite.ErrorIs(err, gorm.ErrRecordNotFound)
}

func TestUserRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(UserRepositoryTestSuite))
}
