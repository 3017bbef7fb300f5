package handlers

import (
	"net/http"

	"crm-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// CompanyHandler handles HTTP requests for company operations
type CompanyHandler struct {
	companyService service.CompanyServiceInterface
}

// NewCompanyHandler creates a new company handler
func NewCompanyHandler(companyService service.CompanyServiceInterface) *CompanyHandler {
	return &CompanyHandler{companyService: companyService}
}

// ListCompanies handles GET /companies
// @Summary List companies
// @Description Get all companies of the caller's organization, newest first
// @Tags companies
// @Produce json
// @Success 200 {array} service.CompanyResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /companies [get]
func (h *CompanyHandler) ListCompanies(c *gin.Context) {
	orgID, ok := organizationID(c)
	if !ok {
		return
	}

	companies, err := h.companyService.List(c.Request.Context(), orgID)
	if err != nil {
		respondError(c, "Failed to list companies", err)
		return
	}

	c.JSON(http.StatusOK, companies)
}

// CreateCompany handles POST /companies
// @Summary Create company
// @Tags companies
// @Accept json
// @Produce json
// @Param company body service.CompanyRequest true "Company data"
// @Success 201 {object} service.CompanyResponse
// @Failure 400 {object} ErrorResponse "Invalid request body"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /companies [post]
func (h *CompanyHandler) CreateCompany(c *gin.Context) {
	orgID, ok := organizationID(c)
	if !ok {
		return
	}

	var req service.CompanyRequest
	if !bindJSON(c, &req) {
		return
	}

	company, err := h.companyService.Create(c.Request.Context(), orgID, &req)
	if err != nil {
		respondError(c, "Failed to create company", err)
		return
	}

	c.JSON(http.StatusCreated, company)
}

// UpdateCompany handles PUT /companies/:id
// @Summary Update company
// @Tags companies
// @Accept json
// @Produce json
// @Param id path string true "Company ID (UUID)"
// @Param company body service.CompanyRequest true "Company data"
// @Success 200 {object} service.CompanyResponse
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Failure 404 {object} ErrorResponse "Company not found"
// @Security BearerAuth
// @Router /companies/{id} [put]
func (h *CompanyHandler) UpdateCompany(c *gin.Context) {
	orgID, ok := organizationID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "company")
	if !ok {
		return
	}

	var req service.CompanyRequest
	if !bindJSON(c, &req) {
		return
	}

	company, err := h.companyService.Update(c.Request.Context(), orgID, id, &req)
	if err != nil {
		respondError(c, "Failed to update company", err)
		return
	}

	c.JSON(http.StatusOK, company)
}

// DeleteCompany handles DELETE /companies/:id
// @Summary Delete company
// @Description Delete a company. Its contacts, deals and tasks are kept and lose the reference.
// @Tags companies
// @Param id path string true "Company ID (UUID)"
// @Success 204 "Company deleted"
// @Failure 404 {object} ErrorResponse "Company not found"
// @Security BearerAuth
// @Router /companies/{id} [delete]
func (h *CompanyHandler) DeleteCompany(c *gin.Context) {
	orgID, ok := organizationID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "company")
	if !ok {
		return
	}

	if err := h.companyService.Delete(c.Request.Context(), orgID, id); err != nil {
		respondError(c, "Failed to delete company", err)
		return
	}

	c.Status(http.StatusNoContent)
}
