package service_test

import (
	"context"
	"testing"

	"crm-backend/internal/database/models"
	apperrors "crm-backend/internal/errors"
	"crm-backend/internal/mocks"
	"crm-backend/internal/revalidate"
	"crm-backend/internal/revalidate/revalidatetest"
	"crm-backend/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type TaskServiceTestSuite struct {
	suite.Suite
	ctrl            *gomock.Controller
	mockTaskRepo    *mocks.MockTaskRepositoryInterface
	mockContactRepo *mocks.MockContactRepositoryInterface
	mockCompanyRepo *mocks.MockCompanyRepositoryInterface
	recorder        *revalidatetest.Recorder
	taskService     *service.TaskService
	ctx             context.Context
	orgID           uuid.UUID
}

func (suite *TaskServiceTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockTaskRepo = mocks.NewMockTaskRepositoryInterface(suite.ctrl)
	suite.mockContactRepo = mocks.NewMockContactRepositoryInterface(suite.ctrl)
	suite.mockCompanyRepo = mocks.NewMockCompanyRepositoryInterface(suite.ctrl)
	suite.recorder = revalidatetest.NewRecorder()
	suite.taskService = service.NewTaskService(suite.mockTaskRepo, suite.mockContactRepo, suite.mockCompanyRepo, suite.recorder, service.NewValidator())
	suite.ctx = context.Background()
	suite.orgID = uuid.New()
}

func (suite *TaskServiceTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

func (suite *TaskServiceTestSuite) TestCreate_DefaultsToPendingMedium() {
	contactID := uuid.New()
	contact := &models.Contact{
		TenantModel: models.TenantModel{BaseModel: models.BaseModel{ID: contactID}, OrganizationID: suite.orgID},
		FirstName:   "Jane",
		LastName:    "Doe",
	}
	var stored *models.Task
	suite.mockContactRepo.EXPECT().GetByID(suite.ctx, suite.orgID, contactID).Return(contact, nil)
	suite.mockTaskRepo.EXPECT().Create(suite.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, task *models.Task) error {
			task.ID = uuid.New()
			stored = task
			return nil
		})
	suite.mockTaskRepo.EXPECT().GetByID(suite.ctx, suite.orgID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _ uuid.UUID) (*models.Task, error) {
			stored.Contact = contact
			return stored, nil
		})

	resp, err := suite.taskService.Create(suite.ctx, suite.orgID, &service.TaskRequest{
		Title:     "Call Jane",
		Status:    models.TaskStatusCompleted,
		ContactID: service.SomeID(contactID),
	})

	suite.Require().NoError(err)
	assert.Equal(suite.T(), models.TaskStatusPending, resp.Status)
	assert.Equal(suite.T(), models.TaskPriorityMedium, resp.Priority)
	suite.Require().NotNil(resp.ContactName)
	assert.Equal(suite.T(), "Jane Doe", *resp.ContactName)
	assert.Nil(suite.T(), resp.DueDate)
	assert.Equal(suite.T(), []string{revalidate.PathTasks, revalidate.PathDashboard}, suite.recorder.Paths())
}

func (suite *TaskServiceTestSuite) TestCreate_InvalidPriority() {
	resp, err := suite.taskService.Create(suite.ctx, suite.orgID, &service.TaskRequest{Title: "x", Priority: "Urgent"})

	assert.Nil(suite.T(), resp)
	assert.Equal(suite.T(), "priority", apperrors.ValidationField(err))
}

func (suite *TaskServiceTestSuite) TestCreate_ContactOfAnotherOrganization() {
	contactID := uuid.New()
	suite.mockContactRepo.EXPECT().GetByID(suite.ctx, suite.orgID, contactID).Return(nil, gorm.ErrRecordNotFound)

	resp, err := suite.taskService.Create(suite.ctx, suite.orgID, &service.TaskRequest{Title: "x", ContactID: service.SomeID(contactID)})

	assert.Nil(suite.T(), resp)
	assert.Equal(suite.T(), "contact_id", apperrors.ValidationField(err))
}

func (suite *TaskServiceTestSuite) TestUpdate_KeepsStatusWhenOmitted() {
	id := uuid.New()
	suite.mockTaskRepo.EXPECT().Update(suite.ctx, suite.orgID, id, gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _ uuid.UUID, updates map[string]interface{}) error {
			_, hasStatus := updates["status"]
			assert.False(suite.T(), hasStatus)
			assert.Equal(suite.T(), models.TaskPriorityHigh, updates["priority"])
			return nil
		})
	suite.mockTaskRepo.EXPECT().GetByID(suite.ctx, suite.orgID, id).Return(&models.Task{
		TenantModel: models.TenantModel{BaseModel: models.BaseModel{ID: id}, OrganizationID: suite.orgID},
		Title:       "Follow up",
		Priority:    models.TaskPriorityHigh,
		Status:      models.TaskStatusCompleted,
	}, nil)

	resp, err := suite.taskService.Update(suite.ctx, suite.orgID, id, &service.TaskRequest{Title: "Follow up", Priority: models.TaskPriorityHigh})

	suite.Require().NoError(err)
	assert.Equal(suite.T(), models.TaskStatusCompleted, resp.Status)
}

func (suite *TaskServiceTestSuite) TestUpdateStatus() {
	id := uuid.New()
	suite.mockTaskRepo.EXPECT().UpdateStatus(suite.ctx, suite.orgID, id, models.TaskStatusCompleted).Return(nil)

	err := suite.taskService.UpdateStatus(suite.ctx, suite.orgID, id, models.TaskStatusCompleted)

	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), suite.recorder.Events(), 1)
}

func (suite *TaskServiceTestSuite) TestUpdateStatus_Invalid() {
	err := suite.taskService.UpdateStatus(suite.ctx, suite.orgID, uuid.New(), models.TaskStatus("Done"))

	assert.ErrorIs(suite.T(), err, apperrors.ErrInvalidTaskStatus)
}

func (suite *TaskServiceTestSuite) TestUpdateStatus_NotFound() {
	id := uuid.New()
	suite.mockTaskRepo.EXPECT().UpdateStatus(suite.ctx, suite.orgID, id, models.TaskStatusPending).Return(gorm.ErrRecordNotFound)

	err := suite.taskService.UpdateStatus(suite.ctx, suite.orgID, id, models.TaskStatusPending)

	assert.ErrorIs(suite.T(), err, apperrors.ErrTaskNotFound)
}

func (suite *TaskServiceTestSuite) TestDelete_NotFound() {
	id := uuid.New()
	suite.mockTaskRepo.EXPECT().Delete(suite.ctx, suite.orgID, id).Return(gorm.ErrRecordNotFound)

	err := suite.taskService.Delete(suite.ctx, suite.orgID, id)

	assert.ErrorIs(suite.T(), err, apperrors.ErrTaskNotFound)
	assert.Empty(suite.T(), suite.recorder.Events())
}

func TestTaskServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TaskServiceTestSuite))
}
