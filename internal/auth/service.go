package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"crm-backend/internal/database/models"
	apperrors "crm-backend/internal/errors"
	"crm-backend/internal/logger"
	"crm-backend/internal/repository"
	"crm-backend/internal/revalidate"
	"crm-backend/internal/security"
	"crm-backend/internal/service"
	"crm-backend/internal/tenant"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuthService provides authentication functionality
type AuthService struct {
	config    *AuthConfig
	orgRepo   repository.OrganizationRepositoryInterface
	userRepo  repository.UserRepositoryInterface
	invRepo   repository.InvitationRepositoryInterface
	team      service.TeamServiceInterface
	hasher    security.PasswordHasher
	notifier  revalidate.Notifier
	validator *validator.Validate
	now       func() time.Time
}

// AuthClaims represents JWT token claims
type AuthClaims struct {
	UserID               uuid.UUID  `json:"user_id" example:"6f1c1d2e-8a6b-4f3e-9a52-0c6f0d3b9a11"`
	Email                string     `json:"email" example:"jane@example.com"`
	OrganizationID       *uuid.UUID `json:"organization_id" example:"0b8e6c57-3a4f-4c59-8d1c-6b3a2f1e9d20"`
	jwt.RegisteredClaims `swaggerignore:"true"`
}

// Principal converts the claims into the identity the tenant guard works with
func (c *AuthClaims) Principal() *tenant.Principal {
	return &tenant.Principal{
		UserID:         c.UserID,
		Email:          c.Email,
		OrganizationID: c.OrganizationID,
	}
}

// SignUpRequest represents the sign up form
type SignUpRequest struct {
	Name             string `json:"name" validate:"required,max=255"`
	Email            string `json:"email" validate:"required,email,max=255"`
	Password         string `json:"password" validate:"required,min=6"`
	OrganizationName string `json:"organization_name" validate:"max=255"`
}

// LoginRequest represents the login form
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest represents the profile settings form
type UpdateProfileRequest struct {
	Name            string `json:"name" validate:"max=255"`
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password" validate:"omitempty,min=6"`
}

// UserProfile is the public view of the signed in user
type UserProfile struct {
	ID             uuid.UUID  `json:"id"`
	Name           string     `json:"name"`
	Email          string     `json:"email"`
	OrganizationID *uuid.UUID `json:"organization_id"`
}

// AuthResponse is returned by every endpoint that signs a user in
type AuthResponse struct {
	AccessToken string      `json:"accessToken" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	TokenType   string      `json:"tokenType" example:"Bearer"`
	ExpiresIn   int64       `json:"expiresIn" example:"86400"`
	Profile     UserProfile `json:"profile"`
}

// AuthValidateResponse represents the response from the token validation endpoint
type AuthValidateResponse struct {
	Valid  bool        `json:"valid" example:"true"`
	Claims *AuthClaims `json:"claims"`
}

// NewAuthService creates a new authentication service
func NewAuthService(
	config *AuthConfig,
	orgRepo repository.OrganizationRepositoryInterface,
	userRepo repository.UserRepositoryInterface,
	invRepo repository.InvitationRepositoryInterface,
	team service.TeamServiceInterface,
	hasher security.PasswordHasher,
	notifier revalidate.Notifier,
	validator *validator.Validate,
) (*AuthService, error) {
	if err := config.ValidateConfig(); err != nil {
		return nil, fmt.Errorf("invalid auth config: %w", err)
	}
	if config.Issuer == "" {
		config.Issuer = defaultIssuer
	}

	return &AuthService{
		config:    config,
		orgRepo:   orgRepo,
		userRepo:  userRepo,
		invRepo:   invRepo,
		team:      team,
		hasher:    hasher,
		notifier:  notifier,
		validator: validator,
		now:       time.Now,
	}, nil
}

// SignUp creates a new organization together with its first user and signs that user in.
// An email with a pending invitation must accept it instead.
func (s *AuthService) SignUp(ctx context.Context, req *SignUpRequest) (*AuthResponse, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.ErrUserExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check user: %w", err)
	}

	if _, err := s.invRepo.GetPendingByEmail(ctx, email); err == nil {
		return nil, apperrors.ErrInvitationExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check invitation: %w", err)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	orgName := strings.TrimSpace(req.OrganizationName)
	if orgName == "" {
		orgName = strings.TrimSpace(req.Name) + "'s Org"
	}

	org := &models.Organization{Name: orgName}
	user := &models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.orgRepo.CreateWithOwner(ctx, org, user); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, apperrors.ErrUserExists
		}
		return nil, fmt.Errorf("failed to create organization: %w", err)
	}

	logger.WithContext(ctx).WithFields(map[string]interface{}{
		"user_id":         user.ID,
		"organization_id": org.ID,
	}).Info("organization created")

	return s.issue(user)
}

// Authenticate checks an email and password pair. Unknown emails and wrong passwords fail alike.
func (s *AuthService) Authenticate(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if err := s.hasher.Compare(user.PasswordHash, req.Password); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.issue(user)
}

// AcceptInvitation joins the invited organization and signs the new member in
func (s *AuthService) AcceptInvitation(ctx context.Context, req *service.AcceptInvitationRequest) (*AuthResponse, error) {
	user, err := s.team.Accept(ctx, req)
	if err != nil {
		return nil, err
	}
	return s.issue(user)
}

// Profile returns the public view of a user
func (s *AuthService) Profile(ctx context.Context, userID uuid.UUID) (*UserProfile, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	profile := toProfile(user)
	return &profile, nil
}

// UpdateProfile changes the name and, when the current password is confirmed, the password
func (s *AuthService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *UpdateProfileRequest) (*UserProfile, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	updates := map[string]interface{}{}
	if name := strings.TrimSpace(req.Name); name != "" {
		updates["name"] = name
	}

	if req.NewPassword != "" {
		if req.CurrentPassword == "" {
			return nil, fmt.Errorf("validation failed: %w", apperrors.ErrCurrentPasswordNeeded)
		}
		if err := s.hasher.Compare(user.PasswordHash, req.CurrentPassword); err != nil {
			return nil, apperrors.ErrCurrentPasswordInvalid
		}
		hash, err := s.hasher.Hash(req.NewPassword)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		updates["password_hash"] = hash
	}

	if len(updates) > 0 {
		if err := s.userRepo.Update(ctx, userID, updates); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.ErrUserNotFound
			}
			return nil, fmt.Errorf("failed to update user: %w", err)
		}
		if name, ok := updates["name"].(string); ok {
			user.Name = name
		}
	}

	if user.OrganizationID != nil && s.notifier != nil {
		if err := s.notifier.Changed(ctx, *user.OrganizationID, revalidate.PathSettings, revalidate.PathDashboard); err != nil {
			logger.WithContext(ctx).WithError(err).Warn("failed to signal revalidation")
		}
	}

	profile := toProfile(user)
	return &profile, nil
}

// GenerateJWT creates a JWT token for the user
func (s *AuthService) GenerateJWT(user *models.User) (string, error) {
	now := s.now()
	claims := &AuthClaims{
		UserID:         user.ID,
		Email:          user.Email,
		OrganizationID: user.OrganizationID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    s.config.Issuer,
			Subject:   user.ID.String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}

// ValidateJWT validates and parses a JWT token
func (s *AuthService) ValidateJWT(tokenString string) (*AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		// Verify signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.JWTSecret), nil
	}, jwt.WithIssuer(s.config.Issuer), jwt.WithTimeFunc(s.now))

	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if claims, ok := token.Claims.(*AuthClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}

func (s *AuthService) issue(user *models.User) (*AuthResponse, error) {
	token, err := s.GenerateJWT(user)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return &AuthResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.config.TokenTTL / time.Second),
		Profile:     toProfile(user),
	}, nil
}

func (s *AuthService) validate(req interface{}) error {
	return service.ValidateStruct(s.validator, req)
}

func toProfile(user *models.User) UserProfile {
	return UserProfile{
		ID:             user.ID,
		Name:           user.Name,
		Email:          user.Email,
		OrganizationID: user.OrganizationID,
	}
}
