package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"crm-backend/internal/config"
	"crm-backend/internal/database/models"
	apperrors "crm-backend/internal/errors"
	"crm-backend/internal/mocks"
	"crm-backend/internal/revalidate"
	"crm-backend/internal/revalidate/revalidatetest"
	"crm-backend/internal/security"
	"crm-backend/internal/service"
	"crm-backend/internal/tenant"
	"crm-backend/internal/testutils"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func testConfig() *AuthConfig {
	return &AuthConfig{
		JWTSecret:  "test-signing-key",
		TokenTTL:   time.Hour,
		Issuer:     defaultIssuer,
		BcryptCost: bcrypt.MinCost,
	}
}

func TestAuthConfig(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		assert.NoError(t, testConfig().ValidateConfig())
	})

	t.Run("missing jwt secret", func(t *testing.T) {
		cfg := testConfig()
		cfg.JWTSecret = ""

		err := cfg.ValidateConfig()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "JWT secret is required")
	})

	t.Run("non positive ttl", func(t *testing.T) {
		cfg := testConfig()
		cfg.TokenTTL = 0

		err := cfg.ValidateConfig()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "token TTL must be positive")
	})

	t.Run("derived from application config", func(t *testing.T) {
		cfg := NewAuthConfig(&config.Config{JWTSecret: "s3cret", JWTTTLMinutes: 30, BcryptCost: 12})

		assert.Equal(t, "s3cret", cfg.JWTSecret)
		assert.Equal(t, 30*time.Minute, cfg.TokenTTL)
		assert.Equal(t, defaultIssuer, cfg.Issuer)
		assert.Equal(t, 12, cfg.BcryptCost)
	})

	t.Run("service refuses invalid config", func(t *testing.T) {
		_, err := NewAuthService(&AuthConfig{}, nil, nil, nil, nil, nil, nil, nil)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid auth config")
	})
}

func TestJWTOperations(t *testing.T) {
	svc, err := NewAuthService(testConfig(), nil, nil, nil, nil, nil, nil, nil)
	require.NoError(t, err)

	orgID := uuid.New()
	user := &models.User{
		BaseModel:      models.BaseModel{ID: uuid.New()},
		Name:           "Test User",
		Email:          "test@example.com",
		OrganizationID: &orgID,
	}

	t.Run("round trip", func(t *testing.T) {
		token, err := svc.GenerateJWT(user)
		require.NoError(t, err)
		assert.NotEmpty(t, token)

		claims, err := svc.ValidateJWT(token)
		require.NoError(t, err)
		assert.Equal(t, user.ID, claims.UserID)
		assert.Equal(t, user.Email, claims.Email)
		require.NotNil(t, claims.OrganizationID)
		assert.Equal(t, orgID, *claims.OrganizationID)
		assert.Equal(t, user.ID.String(), claims.Subject)

		p := claims.Principal()
		resolved, err := tenant.ResolveOrganization(p)
		assert.NoError(t, err)
		assert.Equal(t, orgID, resolved)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := svc.ValidateJWT("invalid-token")
		assert.Error(t, err)
	})

	t.Run("expired token", func(t *testing.T) {
		token, err := svc.GenerateJWT(user)
		require.NoError(t, err)

		svc.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
		defer func() { svc.now = time.Now }()

		_, err = svc.ValidateJWT(token)
		assert.ErrorIs(t, err, jwt.ErrTokenExpired)
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		other := testConfig()
		other.JWTSecret = "another-key"
		otherSvc, err := NewAuthService(other, nil, nil, nil, nil, nil, nil, nil)
		require.NoError(t, err)

		token, err := otherSvc.GenerateJWT(user)
		require.NoError(t, err)

		_, err = svc.ValidateJWT(token)
		assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
	})

	t.Run("token from another issuer", func(t *testing.T) {
		other := testConfig()
		other.Issuer = "someone-else"
		otherSvc, err := NewAuthService(other, nil, nil, nil, nil, nil, nil, nil)
		require.NoError(t, err)

		token, err := otherSvc.GenerateJWT(user)
		require.NoError(t, err)

		_, err = svc.ValidateJWT(token)
		assert.ErrorIs(t, err, jwt.ErrTokenInvalidIssuer)
	})
}

type AuthServiceTestSuite struct {
	suite.Suite
	ctrl         *gomock.Controller
	mockOrgRepo  *mocks.MockOrganizationRepositoryInterface
	mockUserRepo *mocks.MockUserRepositoryInterface
	mockInvRepo  *mocks.MockInvitationRepositoryInterface
	mockTeam     *mocks.MockTeamServiceInterface
	hasher       *security.Hasher
	recorder     *revalidatetest.Recorder
	authService  *AuthService
	ctx          context.Context
}

func (suite *AuthServiceTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockOrgRepo = mocks.NewMockOrganizationRepositoryInterface(suite.ctrl)
	suite.mockUserRepo = mocks.NewMockUserRepositoryInterface(suite.ctrl)
	suite.mockInvRepo = mocks.NewMockInvitationRepositoryInterface(suite.ctrl)
	suite.mockTeam = mocks.NewMockTeamServiceInterface(suite.ctrl)
	suite.hasher = security.NewHasher(bcrypt.MinCost)
	suite.recorder = revalidatetest.NewRecorder()
	suite.ctx = context.Background()

	svc, err := NewAuthService(testConfig(), suite.mockOrgRepo, suite.mockUserRepo, suite.mockInvRepo, suite.mockTeam, suite.hasher, suite.recorder, service.NewValidator())
	suite.Require().NoError(err)
	suite.authService = svc
}

func (suite *AuthServiceTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

func (suite *AuthServiceTestSuite) user(password string) *models.User {
	hash, err := suite.hasher.Hash(password)
	suite.Require().NoError(err)
	orgID := uuid.New()
	return &models.User{
		BaseModel:      models.BaseModel{ID: uuid.New()},
		Name:           "Jane",
		Email:          "jane@example.com",
		PasswordHash:   hash,
		OrganizationID: &orgID,
	}
}

func (suite *AuthServiceTestSuite) TestSignUp_CreatesOrganizationWithOwner() {
	suite.mockUserRepo.EXPECT().GetByEmail(suite.ctx, "jane@example.com").Return(nil, gorm.ErrRecordNotFound)
	suite.mockInvRepo.EXPECT().GetPendingByEmail(suite.ctx, "jane@example.com").Return(nil, gorm.ErrRecordNotFound)
	suite.mockOrgRepo.EXPECT().CreateWithOwner(suite.ctx, gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, org *models.Organization, owner *models.User) error {
			assert.Equal(suite.T(), "Jane's Org", org.Name)
			assert.Equal(suite.T(), "jane@example.com", owner.Email)
			assert.NoError(suite.T(), suite.hasher.Compare(owner.PasswordHash, "secret1"))
			org.ID = uuid.New()
			owner.ID = uuid.New()
			owner.OrganizationID = &org.ID
			return nil
		})

	resp, err := suite.authService.SignUp(suite.ctx, &SignUpRequest{Name: "Jane", Email: "Jane@Example.com", Password: "secret1"})

	suite.Require().NoError(err)
	assert.Equal(suite.T(), "Bearer", resp.TokenType)
	assert.Equal(suite.T(), int64(3600), resp.ExpiresIn)
	assert.NotNil(suite.T(), resp.Profile.OrganizationID)

	claims, err := suite.authService.ValidateJWT(resp.AccessToken)
	suite.Require().NoError(err)
	assert.Equal(suite.T(), resp.Profile.ID, claims.UserID)
}

func (suite *AuthServiceTestSuite) TestSignUp_ExistingEmail() {
	suite.mockUserRepo.EXPECT().GetByEmail(suite.ctx, "jane@example.com").Return(&models.User{}, nil)

	resp, err := suite.authService.SignUp(suite.ctx, &SignUpRequest{Name: "Jane", Email: "jane@example.com", Password: "secret1"})

	assert.Nil(suite.T(), resp)
	assert.ErrorIs(suite.T(), err, apperrors.ErrUserExists)
}

func (suite *AuthServiceTestSuite) TestSignUp_PendingInvitation() {
	orgID := uuid.New()
	suite.mockUserRepo.EXPECT().GetByEmail(suite.ctx, "bob@example.com").Return(nil, gorm.ErrRecordNotFound)
	suite.mockInvRepo.EXPECT().GetPendingByEmail(suite.ctx, "bob@example.com").
		Return(&models.Invitation{TenantModel: models.TenantModel{OrganizationID: orgID}, Email: "bob@example.com", Status: models.InvitationStatusPending}, nil)

	resp, err := suite.authService.SignUp(suite.ctx, &SignUpRequest{Name: "Bob", Email: "Bob@Example.com", Password: "secret1"})

	assert.Nil(suite.T(), resp)
	assert.ErrorIs(suite.T(), err, apperrors.ErrInvitationExists)
}

func (suite *AuthServiceTestSuite) TestSignUp_InvitationLookupFails() {
	suite.mockUserRepo.EXPECT().GetByEmail(suite.ctx, "bob@example.com").Return(nil, gorm.ErrRecordNotFound)
	suite.mockInvRepo.EXPECT().GetPendingByEmail(suite.ctx, "bob@example.com").Return(nil, gorm.ErrInvalidDB)

	_, err := suite.authService.SignUp(suite.ctx, &SignUpRequest{Name: "Bob", Email: "bob@example.com", Password: "secret1"})

	suite.Require().Error(err)
	assert.ErrorIs(suite.T(), err, gorm.ErrInvalidDB)
	assert.Contains(suite.T(), err.Error(), "failed to check invitation")
}

func (suite *AuthServiceTestSuite) TestSignUp_ConcurrentDuplicate() {
	suite.mockUserRepo.EXPECT().GetByEmail(suite.ctx, "jane@example.com").Return(nil, gorm.ErrRecordNotFound)
	suite.mockInvRepo.EXPECT().GetPendingByEmail(suite.ctx, "jane@example.com").Return(nil, gorm.ErrRecordNotFound)
	suite.mockOrgRepo.EXPECT().CreateWithOwner(suite.ctx, gomock.Any(), gomock.Any()).Return(&pgconn.PgError{Code: "23505"})

	_, err := suite.authService.SignUp(suite.ctx, &SignUpRequest{Name: "Jane", Email: "jane@example.com", Password: "secret1", OrganizationName: "Acme"})

	assert.ErrorIs(suite.T(), err, apperrors.ErrUserExists)
}

func (suite *AuthServiceTestSuite) TestSignUp_ShortPassword() {
	_, err := suite.authService.SignUp(suite.ctx, &SignUpRequest{Name: "Jane", Email: "jane@example.com", Password: "123"})

	assert.Equal(suite.T(), "password", apperrors.ValidationField(err))
}

func (suite *AuthServiceTestSuite) TestAuthenticate() {
	user := suite.user("secret1")

	suite.Run("valid credentials", func() {
		suite.mockUserRepo.EXPECT().GetByEmail(suite.ctx, "jane@example.com").Return(user, nil)

		resp, err := suite.authService.Authenticate(suite.ctx, &LoginRequest{Email: "jane@example.com", Password: "secret1"})

		suite.Require().NoError(err)
		assert.Equal(suite.T(), user.ID, resp.Profile.ID)
	})

	suite.Run("wrong password", func() {
		suite.mockUserRepo.EXPECT().GetByEmail(suite.ctx, "jane@example.com").Return(user, nil)

		_, err := suite.authService.Authenticate(suite.ctx, &LoginRequest{Email: "jane@example.com", Password: "nope"})

		assert.ErrorIs(suite.T(), err, apperrors.ErrInvalidCredentials)
	})

	suite.Run("unknown email", func() {
		suite.mockUserRepo.EXPECT().GetByEmail(suite.ctx, "ghost@example.com").Return(nil, gorm.ErrRecordNotFound)

		_, err := suite.authService.Authenticate(suite.ctx, &LoginRequest{Email: "ghost@example.com", Password: "secret1"})

		assert.ErrorIs(suite.T(), err, apperrors.ErrInvalidCredentials)
	})
}

func (suite *AuthServiceTestSuite) TestAcceptInvitation_IssuesToken() {
	user := suite.user("secret1")
	req := &service.AcceptInvitationRequest{Token: "tok", Name: "Jane", Password: "secret1"}
	suite.mockTeam.EXPECT().Accept(suite.ctx, req).Return(user, nil)

	resp, err := suite.authService.AcceptInvitation(suite.ctx, req)

	suite.Require().NoError(err)
	assert.Equal(suite.T(), user.OrganizationID, resp.Profile.OrganizationID)
}

func (suite *AuthServiceTestSuite) TestAcceptInvitation_PropagatesError() {
	req := &service.AcceptInvitationRequest{Token: "tok", Name: "Jane", Password: "secret1"}
	suite.mockTeam.EXPECT().Accept(suite.ctx, req).Return(nil, apperrors.ErrInvitationExpired)

	_, err := suite.authService.AcceptInvitation(suite.ctx, req)

	assert.ErrorIs(suite.T(), err, apperrors.ErrInvitationExpired)
}

func (suite *AuthServiceTestSuite) TestUpdateProfile_NameOnly() {
	user := suite.user("secret1")
	suite.mockUserRepo.EXPECT().GetByID(suite.ctx, user.ID).Return(user, nil)
	suite.mockUserRepo.EXPECT().Update(suite.ctx, user.ID, map[string]interface{}{"name": "Janet"}).Return(nil)

	profile, err := suite.authService.UpdateProfile(suite.ctx, user.ID, &UpdateProfileRequest{Name: " Janet "})

	suite.Require().NoError(err)
	assert.Equal(suite.T(), "Janet", profile.Name)
	assert.Equal(suite.T(), []string{revalidate.PathSettings, revalidate.PathDashboard}, suite.recorder.Paths())
}

func (suite *AuthServiceTestSuite) TestUpdateProfile_NewPasswordNeedsCurrent() {
	user := suite.user("secret1")
	suite.mockUserRepo.EXPECT().GetByID(suite.ctx, user.ID).Return(user, nil)

	_, err := suite.authService.UpdateProfile(suite.ctx, user.ID, &UpdateProfileRequest{NewPassword: "secret2"})

	assert.ErrorIs(suite.T(), err, apperrors.ErrCurrentPasswordNeeded)
	assert.Empty(suite.T(), suite.recorder.Events())
}

func (suite *AuthServiceTestSuite) TestUpdateProfile_WrongCurrentPassword() {
	user := suite.user("secret1")
	suite.mockUserRepo.EXPECT().GetByID(suite.ctx, user.ID).Return(user, nil)

	_, err := suite.authService.UpdateProfile(suite.ctx, user.ID, &UpdateProfileRequest{CurrentPassword: "wrong", NewPassword: "secret2"})

	assert.ErrorIs(suite.T(), err, apperrors.ErrCurrentPasswordInvalid)
}

func (suite *AuthServiceTestSuite) TestUpdateProfile_ChangesPassword() {
	user := suite.user("secret1")
	suite.mockUserRepo.EXPECT().GetByID(suite.ctx, user.ID).Return(user, nil)
	suite.mockUserRepo.EXPECT().Update(suite.ctx, user.ID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, updates map[string]interface{}) error {
			hash, ok := updates["password_hash"].(string)
			suite.Require().True(ok)
			assert.NoError(suite.T(), suite.hasher.Compare(hash, "secret2"))
			return nil
		})

	_, err := suite.authService.UpdateProfile(suite.ctx, user.ID, &UpdateProfileRequest{CurrentPassword: "secret1", NewPassword: "secret2"})

	assert.NoError(suite.T(), err)
}

func (suite *AuthServiceTestSuite) TestProfile_NotFound() {
	id := uuid.New()
	suite.mockUserRepo.EXPECT().GetByID(suite.ctx, id).Return(nil, gorm.ErrRecordNotFound)

	_, err := suite.authService.Profile(suite.ctx, id)

	assert.ErrorIs(suite.T(), err, apperrors.ErrUserNotFound)
}

func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}

func TestRequireAuth(t *testing.T) {
	svc, err := NewAuthService(testConfig(), nil, nil, nil, nil, nil, nil, nil)
	require.NoError(t, err)
	middleware := NewAuthMiddleware(svc)

	orgID := uuid.New()
	user := &models.User{BaseModel: models.BaseModel{ID: uuid.New()}, Email: "jane@example.com", OrganizationID: &orgID}
	token, err := svc.GenerateJWT(user)
	require.NoError(t, err)

	httpSuite := testutils.SetupHTTPTest()
	httpSuite.Router.GET("/protected", middleware.RequireAuth(), func(c *gin.Context) {
		p, ok := GetPrincipal(c)
		require.True(t, ok)
		fromCtx, ok := tenant.FromContext(c.Request.Context())
		require.True(t, ok)
		assert.Equal(t, p, fromCtx)

		resolved, err := tenant.ResolveOrganization(p)
		require.NoError(t, err)
		c.JSON(http.StatusOK, gin.H{"organization_id": resolved})
	})

	t.Run("missing header", func(t *testing.T) {
		w := httpSuite.MakeRequest(http.MethodGet, "/protected", nil)
		testutils.AssertErrorResponse(t, w, http.StatusUnauthorized, "Authorization header is required")
	})

	t.Run("not a bearer token", func(t *testing.T) {
		w := httpSuite.MakeRequestWithHeaders(http.MethodGet, "/protected", nil, map[string]string{"Authorization": "Basic abc"})
		testutils.AssertErrorResponse(t, w, http.StatusUnauthorized, "Invalid authorization header format")
	})

	t.Run("invalid token", func(t *testing.T) {
		w := httpSuite.MakeRequestWithHeaders(http.MethodGet, "/protected", nil, map[string]string{"Authorization": "Bearer nope"})
		testutils.AssertErrorResponse(t, w, http.StatusUnauthorized, "Invalid token")
	})

	t.Run("valid token", func(t *testing.T) {
		w := httpSuite.MakeRequestWithHeaders(http.MethodGet, "/protected", nil, testutils.BearerHeader(token))

		var body map[string]string
		testutils.AssertJSONResponse(t, w, http.StatusOK, &body)
		assert.Equal(t, orgID.String(), body["organization_id"])
	})
}

func TestAuthHandlers(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockOrgRepo := mocks.NewMockOrganizationRepositoryInterface(ctrl)
	mockUserRepo := mocks.NewMockUserRepositoryInterface(ctrl)
	mockInvRepo := mocks.NewMockInvitationRepositoryInterface(ctrl)
	mockTeam := mocks.NewMockTeamServiceInterface(ctrl)
	hasher := security.NewHasher(bcrypt.MinCost)

	svc, err := NewAuthService(testConfig(), mockOrgRepo, mockUserRepo, mockInvRepo, mockTeam, hasher, revalidate.Nop{}, service.NewValidator())
	require.NoError(t, err)
	handler := NewAuthHandler(svc)
	middleware := NewAuthMiddleware(svc)

	httpSuite := testutils.SetupHTTPTest()
	httpSuite.Router.POST("/api/auth/signup", handler.SignUp)
	httpSuite.Router.POST("/api/auth/login", handler.Login)
	httpSuite.Router.POST("/api/auth/invitations/accept", handler.AcceptInvitation)
	httpSuite.Router.POST("/api/auth/validate", handler.ValidateToken)
	httpSuite.Router.GET("/api/v1/profile", middleware.RequireAuth(), handler.GetProfile)
	httpSuite.Router.PUT("/api/v1/profile", middleware.RequireAuth(), handler.UpdateProfile)

	hash, err := hasher.Hash("secret1")
	require.NoError(t, err)
	orgID := uuid.New()
	user := &models.User{BaseModel: models.BaseModel{ID: uuid.New()}, Name: "Jane", Email: "jane@example.com", PasswordHash: hash, OrganizationID: &orgID}

	t.Run("sign up", func(t *testing.T) {
		mockUserRepo.EXPECT().GetByEmail(gomock.Any(), "new@example.com").Return(nil, gorm.ErrRecordNotFound)
		mockInvRepo.EXPECT().GetPendingByEmail(gomock.Any(), "new@example.com").Return(nil, gorm.ErrRecordNotFound)
		mockOrgRepo.EXPECT().CreateWithOwner(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		w := httpSuite.MakeRequest(http.MethodPost, "/api/auth/signup", SignUpRequest{Name: "New", Email: "new@example.com", Password: "secret1"})

		var resp AuthResponse
		testutils.AssertJSONResponse(t, w, http.StatusCreated, &resp)
		assert.NotEmpty(t, resp.AccessToken)
	})

	t.Run("sign up with invalid email", func(t *testing.T) {
		w := httpSuite.MakeRequest(http.MethodPost, "/api/auth/signup", SignUpRequest{Name: "New", Email: "not-an-email", Password: "secret1"})

		var body map[string]interface{}
		testutils.AssertJSONResponse(t, w, http.StatusBadRequest, &body)
		assert.Equal(t, "email", body["field"])
	})

	t.Run("login with wrong password", func(t *testing.T) {
		mockUserRepo.EXPECT().GetByEmail(gomock.Any(), "jane@example.com").Return(user, nil)

		w := httpSuite.MakeRequest(http.MethodPost, "/api/auth/login", LoginRequest{Email: "jane@example.com", Password: "nope"})

		testutils.AssertErrorResponse(t, w, http.StatusUnauthorized, "Login failed")
	})

	t.Run("accept expired invitation", func(t *testing.T) {
		mockTeam.EXPECT().Accept(gomock.Any(), gomock.Any()).Return(nil, apperrors.ErrInvitationExpired)

		w := httpSuite.MakeRequest(http.MethodPost, "/api/auth/invitations/accept", service.AcceptInvitationRequest{Token: "t", Name: "Jo", Password: "secret1"})

		testutils.AssertErrorResponse(t, w, http.StatusBadRequest, "Failed to accept invitation")
	})

	t.Run("accept unknown invitation", func(t *testing.T) {
		mockTeam.EXPECT().Accept(gomock.Any(), gomock.Any()).Return(nil, apperrors.ErrInvitationNotFound)

		w := httpSuite.MakeRequest(http.MethodPost, "/api/auth/invitations/accept", service.AcceptInvitationRequest{Token: "t", Name: "Jo", Password: "secret1"})

		testutils.AssertErrorResponse(t, w, http.StatusNotFound, "Failed to accept invitation")
	})

	token, err := svc.GenerateJWT(user)
	require.NoError(t, err)
	bearer := testutils.BearerHeader(token)

	t.Run("validate token", func(t *testing.T) {
		w := httpSuite.MakeRequestWithHeaders(http.MethodPost, "/api/auth/validate", nil, bearer)

		var resp AuthValidateResponse
		testutils.AssertJSONResponse(t, w, http.StatusOK, &resp)
		assert.True(t, resp.Valid)
		assert.Equal(t, user.ID, resp.Claims.UserID)
	})

	t.Run("get profile", func(t *testing.T) {
		mockUserRepo.EXPECT().GetByID(gomock.Any(), user.ID).Return(user, nil)

		w := httpSuite.MakeRequestWithHeaders(http.MethodGet, "/api/v1/profile", nil, bearer)

		var profile UserProfile
		testutils.AssertJSONResponse(t, w, http.StatusOK, &profile)
		assert.Equal(t, "jane@example.com", profile.Email)
	})

	t.Run("update profile with wrong current password", func(t *testing.T) {
		mockUserRepo.EXPECT().GetByID(gomock.Any(), user.ID).Return(user, nil)

		w := httpSuite.MakeRequestWithHeaders(http.MethodPut, "/api/v1/profile", UpdateProfileRequest{CurrentPassword: "nope", NewPassword: "secret2"}, bearer)

		testutils.AssertErrorResponse(t, w, http.StatusUnauthorized, "Failed to update profile")
	})

	t.Run("profile without token", func(t *testing.T) {
		w := httpSuite.MakeRequest(http.MethodGet, "/api/v1/profile", nil)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestGetPrincipal_Absent(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	_, ok := GetPrincipal(c)
	assert.False(t, ok)

	_, ok = GetUserID(c)
	assert.False(t, ok)
}
