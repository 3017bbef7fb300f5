package handlers

import (
	"net/http"

	"crm-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// ContactHandler handles HTTP requests for contact operations
type ContactHandler struct {
	contactService service.ContactServiceInterface
}

// NewContactHandler creates a new contact handler
func NewContactHandler(contactService service.ContactServiceInterface) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// ListContacts handles GET /contacts
// @Summary List contacts
// @Tags contacts
// @Produce json
// @Success 200 {array} service.ContactResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /contacts [get]
func (h *ContactHandler) ListContacts(c *gin.Context) {
	orgID, ok := organizationID(c)
	if !ok {
		return
	}

	contacts, err := h.contactService.List(c.Request.Context(), orgID)
	if err != nil {
		respondError(c, "Failed to list contacts", err)
		return
	}

	c.JSON(http.StatusOK, contacts)
}

// CreateContact handles POST /contacts
// @Summary Create contact
// @Tags contacts
// @Accept json
// @Produce json
// @Param contact body service.ContactRequest true "Contact data"
// @Success 201 {object} service.ContactResponse
// @Failure 400 {object} ErrorResponse "Invalid request body or company of another organization"
// @Security BearerAuth
// @Router /contacts [post]
func (h *ContactHandler) CreateContact(c *gin.Context) {
	orgID, ok := organizationID(c)
	if !ok {
		return
	}

	var req service.ContactRequest
	if !bindJSON(c, &req) {
		return
	}

	contact, err := h.contactService.Create(c.Request.Context(), orgID, &req)
	if err != nil {
		respondError(c, "Failed to create contact", err)
		return
	}

	c.JSON(http.StatusCreated, contact)
}

// UpdateContact handles PUT /contacts/:id
// @Summary Update contact
// @Tags contacts
// @Accept json
// @Produce json
// @Param id path string true "Contact ID (UUID)"
// @Param contact body service.ContactRequest true "Contact data"
// @Success 200 {object} service.ContactResponse
// @Failure 404 {object} ErrorResponse "Contact not found"
// @Security BearerAuth
// @Router /contacts/{id} [put]
func (h *ContactHandler) UpdateContact(c *gin.Context) {
	orgID, ok := organizationID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "contact")
	if !ok {
		return
	}

	var req service.ContactRequest
	if !bindJSON(c, &req) {
		return
	}

	contact, err := h.contactService.Update(c.Request.Context(), orgID, id, &req)
	if err != nil {
		respondError(c, "Failed to update contact", err)
		return
	}

	c.JSON(http.StatusOK, contact)
}

// DeleteContact handles DELETE /contacts/:id
// @Summary Delete contact
// @Tags contacts
// @Param id path string true "Contact ID (UUID)"
// @Success 204 "Contact deleted"
// @Failure 404 {object} ErrorResponse "Contact not found"
// @Security BearerAuth
// @Router /contacts/{id} [delete]
func (h *ContactHandler) DeleteContact(c *gin.Context) {
	orgID, ok := organizationID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "contact")
	if !ok {
		return
	}

	if err := h.contactService.Delete(c.Request.Context(), orgID, id); err != nil {
		respondError(c, "Failed to delete contact", err)
		return
	}

	c.Status(http.StatusNoContent)
}
