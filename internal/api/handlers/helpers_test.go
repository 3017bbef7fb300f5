package handlers_test

import (
	"crm-backend/internal/auth"
	"crm-backend/internal/tenant"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// withPrincipal stands in for the JWT middleware
func withPrincipal(p *tenant.Principal) gin.HandlerFunc {
	return func(c *gin.Context) {
		if p != nil {
			auth.SetPrincipal(c, p)
		}
		c.Next()
	}
}

func principalFor(orgID uuid.UUID) *tenant.Principal {
	return &tenant.Principal{UserID: uuid.New(), Email: "jane@example.com", OrganizationID: &orgID}
}
