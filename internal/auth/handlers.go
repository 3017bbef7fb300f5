package auth

import (
	"net/http"
	"strings"

	apperrors "crm-backend/internal/errors"
	"crm-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles HTTP requests for authentication
type AuthHandler struct {
	service *AuthService
}

// NewAuthHandler creates a new authentication handler
func NewAuthHandler(service *AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// SignUp handles POST /api/auth/signup
// @Summary Sign up
// @Description Create a new organization with its first user and return an access token
// @Tags authentication
// @Accept json
// @Produce json
// @Param request body SignUpRequest true "Sign up form"
// @Success 201 {object} AuthResponse
// @Failure 400 {object} map[string]interface{} "Invalid request"
// @Failure 409 {object} map[string]interface{} "User already exists"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /api/auth/signup [post]
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	resp, err := h.service.SignUp(c.Request.Context(), &req)
	if err != nil {
		respondError(c, "Sign up failed", err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// Login handles POST /api/auth/login
// @Summary Log in
// @Description Authenticate with email and password
// @Tags authentication
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} map[string]interface{} "Invalid request"
// @Failure 401 {object} map[string]interface{} "Invalid credentials"
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	resp, err := h.service.Authenticate(c.Request.Context(), &req)
	if err != nil {
		respondError(c, "Login failed", err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// AcceptInvitation handles POST /api/auth/invitations/accept
// @Summary Accept invitation
// @Description Create an account from a pending invitation and join its organization
// @Tags authentication
// @Accept json
// @Produce json
// @Param request body service.AcceptInvitationRequest true "Invitation token and account details"
// @Success 201 {object} AuthResponse
// @Failure 400 {object} map[string]interface{} "Invalid request or expired invitation"
// @Failure 404 {object} map[string]interface{} "Invitation not found"
// @Failure 409 {object} map[string]interface{} "User already exists"
// @Router /api/auth/invitations/accept [post]
func (h *AuthHandler) AcceptInvitation(c *gin.Context) {
	var req service.AcceptInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	resp, err := h.service.AcceptInvitation(c.Request.Context(), &req)
	if err != nil {
		respondError(c, "Failed to accept invitation", err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// GetProfile handles GET /api/v1/profile
// @Summary Get profile
// @Description Get the profile of the signed in user
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} UserProfile
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Router /api/v1/profile [get]
func (h *AuthHandler) GetProfile(c *gin.Context) {
	userID, ok := GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	profile, err := h.service.Profile(c.Request.Context(), userID)
	if err != nil {
		respondError(c, "Failed to get profile", err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// UpdateProfile handles PUT /api/v1/profile
// @Summary Update profile
// @Description Change the display name and, with the current password, the password
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateProfileRequest true "Profile settings"
// @Success 200 {object} UserProfile
// @Failure 400 {object} map[string]interface{} "Invalid request"
// @Failure 401 {object} map[string]interface{} "Unauthorized or wrong current password"
// @Router /api/v1/profile [put]
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userID, ok := GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	profile, err := h.service.UpdateProfile(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, "Failed to update profile", err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// ValidateToken is a helper endpoint to validate JWT tokens
// @Summary Validate JWT token
// @Description Validate JWT token and return token claims
// @Tags authentication
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token to validate" example("Bearer eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9...")
// @Success 200 {object} AuthValidateResponse "Token is valid with claims"
// @Failure 401 {object} map[string]interface{} "Authorization header required or token invalid"
// @Router /api/auth/validate [post]
func (h *AuthHandler) ValidateToken(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
		return
	}

	// Extract token from Bearer header
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == authHeader {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
		return
	}

	claims, err := h.service.ValidateJWT(tokenString)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, AuthValidateResponse{Valid: true, Claims: claims})
}

func respondError(c *gin.Context, message string, err error) {
	body := gin.H{"error": message, "details": err.Error()}
	if field := apperrors.ValidationField(err); field != "" {
		body["field"] = field
	}
	c.JSON(apperrors.HTTPStatus(err), body)
}
