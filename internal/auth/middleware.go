package auth

import (
	"net/http"
	"strings"

	"crm-backend/internal/tenant"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	principalKey = "principal"
	claimsKey    = "auth_claims"
)

// TokenValidator parses access tokens
type TokenValidator interface {
	ValidateJWT(tokenString string) (*AuthClaims, error)
}

// AuthMiddleware provides JWT authentication middleware
type AuthMiddleware struct {
	validator TokenValidator
}

// NewAuthMiddleware creates a new authentication middleware
func NewAuthMiddleware(validator TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{validator: validator}
}

// RequireAuth validates the bearer token and stores the principal on the gin and request contexts
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			c.Abort()
			return
		}

		// Extract token from Bearer header
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			c.Abort()
			return
		}

		claims, err := m.validator.ValidateJWT(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token", "details": err.Error()})
			c.Abort()
			return
		}

		SetPrincipal(c, claims.Principal())
		c.Set(claimsKey, claims)

		c.Next()
	}
}

// SetPrincipal stores the authenticated identity for the rest of the request
func SetPrincipal(c *gin.Context, p *tenant.Principal) {
	c.Set(principalKey, p)
	c.Request = c.Request.WithContext(tenant.NewContext(c.Request.Context(), p))
}

// GetPrincipal is a helper function to extract the authenticated identity from context
func GetPrincipal(c *gin.Context) (*tenant.Principal, bool) {
	value, exists := c.Get(principalKey)
	if !exists {
		return nil, false
	}

	p, ok := value.(*tenant.Principal)
	return p, ok && p != nil
}

// GetUserID is a helper function to extract user ID from context
func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	p, ok := GetPrincipal(c)
	if !ok {
		return uuid.Nil, false
	}
	return p.UserID, true
}

// GetAuthClaims is a helper function to extract full auth claims from context
func GetAuthClaims(c *gin.Context) (*AuthClaims, bool) {
	claims, exists := c.Get(claimsKey)
	if !exists {
		return nil, false
	}

	authClaims, ok := claims.(*AuthClaims)
	return authClaims, ok
}
