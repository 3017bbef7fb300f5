package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"crm-backend/internal/api/handlers"
	apperrors "crm-backend/internal/errors"
	"crm-backend/internal/mocks"
	"crm-backend/internal/service"
	"crm-backend/internal/tenant"
	"crm-backend/internal/testutils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

// CompanyHandlerTestSuite defines the test suite for CompanyHandler
type CompanyHandlerTestSuite struct {
	suite.Suite
	ctrl        *gomock.Controller
	mockService *mocks.MockCompanyServiceInterface
	httpSuite   *testutils.HTTPTestSuite
	orgID       uuid.UUID
}

func (suite *CompanyHandlerTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockService = mocks.NewMockCompanyServiceInterface(suite.ctrl)
	suite.orgID = uuid.New()

	handler := handlers.NewCompanyHandler(suite.mockService)
	suite.httpSuite = testutils.SetupHTTPTest()

	v1 := suite.httpSuite.Router.Group("/api/v1", withPrincipal(principalFor(suite.orgID)))
	companies := v1.Group("/companies")
	{
		companies.GET("", handler.ListCompanies)
		companies.POST("", handler.CreateCompany)
		companies.PUT("/:id", handler.UpdateCompany)
		companies.DELETE("/:id", handler.DeleteCompany)
	}

	// a principal without organization
	detached := suite.httpSuite.Router.Group("/detached", withPrincipal(&tenant.Principal{UserID: uuid.New()}))
	detached.GET("/companies", handler.ListCompanies)
}

func (suite *CompanyHandlerTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

func (suite *CompanyHandlerTestSuite) TestListCompanies() {
	suite.mockService.EXPECT().List(gomock.Any(), suite.orgID).Return([]service.CompanyResponse{
		{ID: uuid.New(), Name: "Acme"},
		{ID: uuid.New(), Name: "Globex"},
	}, nil)

	w := suite.httpSuite.MakeRequest(http.MethodGet, "/api/v1/companies", nil)

	var companies []service.CompanyResponse
	testutils.AssertJSONResponse(suite.T(), w, http.StatusOK, &companies)
	assert.Len(suite.T(), companies, 2)
	assert.Equal(suite.T(), "Acme", companies[0].Name)
}

func (suite *CompanyHandlerTestSuite) TestListCompanies_NoOrganization() {
	w := suite.httpSuite.MakeRequest(http.MethodGet, "/detached/companies", nil)

	testutils.AssertErrorResponse(suite.T(), w, http.StatusUnauthorized, "Unauthorized")
}

func (suite *CompanyHandlerTestSuite) TestCreateCompany() {
	suite.mockService.EXPECT().Create(gomock.Any(), suite.orgID, &service.CompanyRequest{Name: "Acme", Domain: "acme.io"}).
		Return(&service.CompanyResponse{ID: uuid.New(), Name: "Acme", Domain: "acme.io", LifecycleStage: "Subscriber"}, nil)

	w := suite.httpSuite.MakeRequest(http.MethodPost, "/api/v1/companies", map[string]string{"name": "Acme", "domain": "acme.io"})

	var company service.CompanyResponse
	testutils.AssertJSONResponse(suite.T(), w, http.StatusCreated, &company)
	assert.Equal(suite.T(), "Subscriber", company.LifecycleStage)
}

func (suite *CompanyHandlerTestSuite) TestCreateCompany_ValidationError() {
	suite.mockService.EXPECT().Create(gomock.Any(), suite.orgID, gomock.Any()).
		Return(nil, fmt.Errorf("validation failed: %w", apperrors.NewValidationError("name", "is required")))

	w := suite.httpSuite.MakeRequest(http.MethodPost, "/api/v1/companies", map[string]string{})

	var body handlers.ErrorResponse
	testutils.AssertJSONResponse(suite.T(), w, http.StatusBadRequest, &body)
	assert.Equal(suite.T(), "name", body.Field)
}

func (suite *CompanyHandlerTestSuite) TestCreateCompany_MalformedBody() {
	w := suite.httpSuite.MakeRequestWithHeaders(http.MethodPost, "/api/v1/companies", "not json", nil)

	testutils.AssertErrorResponse(suite.T(), w, http.StatusBadRequest, "Invalid request body")
}

func (suite *CompanyHandlerTestSuite) TestUpdateCompany_OtherOrganization() {
	id := uuid.New()
	suite.mockService.EXPECT().Update(gomock.Any(), suite.orgID, id, gomock.Any()).Return(nil, apperrors.ErrCompanyNotFound)

	w := suite.httpSuite.MakeRequest(http.MethodPut, "/api/v1/companies/"+id.String(), map[string]string{"name": "Acme"})

	testutils.AssertErrorResponse(suite.T(), w, http.StatusNotFound, "Failed to update company")
}

func (suite *CompanyHandlerTestSuite) TestUpdateCompany_InvalidID() {
	w := suite.httpSuite.MakeRequest(http.MethodPut, "/api/v1/companies/not-a-uuid", map[string]string{"name": "Acme"})

	testutils.AssertErrorResponse(suite.T(), w, http.StatusBadRequest, "invalid company ID")
}

func (suite *CompanyHandlerTestSuite) TestDeleteCompany() {
	id := uuid.New()
	suite.mockService.EXPECT().Delete(gomock.Any(), suite.orgID, id).Return(nil)

	w := suite.httpSuite.MakeRequest(http.MethodDelete, "/api/v1/companies/"+id.String(), nil)

	assert.Equal(suite.T(), http.StatusNoContent, w.Code)
}

func (suite *CompanyHandlerTestSuite) TestDeleteCompany_InternalError() {
	id := uuid.New()
	suite.mockService.EXPECT().Delete(gomock.Any(), suite.orgID, id).Return(fmt.Errorf("failed to delete company: connection reset"))

	w := suite.httpSuite.MakeRequest(http.MethodDelete, "/api/v1/companies/"+id.String(), nil)

	testutils.AssertErrorResponse(suite.T(), w, http.StatusInternalServerError, "Failed to delete company")
}

func TestCompanyHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(CompanyHandlerTestSuite))
}
