package handlers

import (
	"net/http"

	"crm-backend/internal/auth"
	apperrors "crm-backend/internal/errors"
	"crm-backend/internal/logger"
	"crm-backend/internal/tenant"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ErrorResponse represents a standard API error response
type ErrorResponse struct {
	Error   string `json:"error" example:"error message"`
	Details string `json:"details,omitempty" example:"deal not found"`
	Field   string `json:"field,omitempty" example:"stage"`
}

// organizationID resolves the organization the request is scoped to and answers 401 when there is none
func organizationID(c *gin.Context) (uuid.UUID, bool) {
	p, _ := auth.GetPrincipal(c)
	orgID, err := tenant.ResolveOrganization(p)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized", Details: err.Error()})
		return uuid.Nil, false
	}
	return orgID, true
}

func pathID(c *gin.Context, entity string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid " + entity + " ID"})
		return uuid.Nil, false
	}
	return id, true
}

func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body", Details: err.Error()})
		return false
	}
	return true
}

func respondError(c *gin.Context, message string, err error) {
	status := apperrors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		logger.WithContext(c.Request.Context()).WithError(err).Error(message)
	}
	c.JSON(status, ErrorResponse{Error: message, Details: err.Error(), Field: apperrors.ValidationField(err)})
}
