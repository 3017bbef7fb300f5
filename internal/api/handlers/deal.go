package handlers

import (
	"net/http"

	"crm-backend/internal/database/models"
	"crm-backend/internal/service"

	"github.com/gin-gonic/gin"
)

const maxImportSize = 5 << 20

// DealHandler handles HTTP requests for deals and the pipeline board
type DealHandler struct {
	dealService service.DealServiceInterface
}

// NewDealHandler creates a new deal handler
func NewDealHandler(dealService service.DealServiceInterface) *DealHandler {
	return &DealHandler{dealService: dealService}
}

// StageRequest is the body of a pipeline transition
type StageRequest struct {
	Stage models.DealStage `json:"stage" example:"Closed Won"`
}

// ListDeals handles GET /deals
// @Summary List deals
// @Tags deals
// @Produce json
// @Success 200 {array} service.DealResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /deals [get]
func (h *DealHandler) ListDeals(c *gin.Context) {
	orgID, ok := organizationID(c)
	if !ok {
		return
	}

	deals, err := h.dealService.List(c.Request.Context(), orgID)
	if err != nil {
		respondError(c, "Failed to list deals", err)
		return
	}

	c.JSON(http.StatusOK, deals)
}

// GetPipeline handles GET /deals/pipeline
// @Summary Pipeline board
// @Description Deals grouped into the seven pipeline stages, in pipeline order
// @Tags deals
// @Produce json
// @Success 200 {object} service.PipelineResponse
// @Security BearerAuth
// @Router /deals/pipeline [get]
func (h *DealHandler) GetPipeline(c *gin.Context) {
	orgID, ok := organizationID(c)
	if !ok {
		return
	}

	pipeline, err := h.dealService.Pipeline(c.Request.Context(), orgID)
	if err != nil {
		respondError(c, "Failed to load pipeline", err)
		return
	}

	c.JSON(http.StatusOK, pipeline)
}

// CreateDeal handles POST /deals
// @Summary Create deal
// @Tags deals
// @Accept json
// @Produce json
// @Param deal body service.DealRequest true "Deal data"
// @Success 201 {object} service.DealResponse
// @Failure 400 {object} ErrorResponse "Invalid request body or stage"
// @Security BearerAuth
// @Router /deals [post]
func (h *DealHandler) CreateDeal(c *gin.Context) {
	orgID, ok := organizationID(c)
	if !ok {
		return
	}

	var req service.DealRequest
	if !bindJSON(c, &req) {
		return
	}

	deal, err := h.dealService.Create(c.Request.Context(), orgID, &req)
	if err != nil {
		respondError(c, "Failed to create deal", err)
		return
	}

	c.JSON(http.StatusCreated, deal)
}

// UpdateDeal handles PUT /deals/:id
// @Summary Update deal
// @Tags deals
// @Accept json
// @Produce json
// @Param id path string true "Deal ID (UUID)"
// @Param deal body service.DealRequest true "Deal data"
// @Success 200 {object} service.DealResponse
// @Failure 404 {object} ErrorResponse "Deal not found"
// @Security BearerAuth
// @Router /deals/{id} [put]
func (h *DealHandler) UpdateDeal(c *gin.Context) {
	orgID, ok := organizationID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "deal")
	if !ok {
		return
	}

	var req service.DealRequest
	if !bindJSON(c, &req) {
		return
	}

	deal, err := h.dealService.Update(c.Request.Context(), orgID, id, &req)
	if err != nil {
		respondError(c, "Failed to update deal", err)
		return
	}

	c.JSON(http.StatusOK, deal)
}

// UpdateDealStage handles PATCH /deals/:id/stage
// @Summary Move deal to a stage
// @Description Any stage can be reached from any stage. Only the stage column changes.
// @Tags deals
// @Accept json
// @Produce json
// @Param id path string true "Deal ID (UUID)"
// @Param stage body StageRequest true "Target stage"
// @Success 200 {object} map[string]interface{} "Stage updated"
// @Failure 400 {object} ErrorResponse "Unknown stage"
// @Failure 404 {object} ErrorResponse "Deal not found"
// @Security BearerAuth
// @Router /deals/{id}/stage [patch]
func (h *DealHandler) UpdateDealStage(c *gin.Context) {
	orgID, ok := organizationID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "deal")
	if !ok {
		return
	}

	var req StageRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.dealService.Transition(c.Request.Context(), orgID, id, req.Stage); err != nil {
		respondError(c, "Failed to update deal stage", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id, "stage": req.Stage})
}

// DeleteDeal handles DELETE /deals/:id
// @Summary Delete deal
// @Tags deals
// @Param id path string true "Deal ID (UUID)"
// @Success 204 "Deal deleted"
// @Failure 404 {object} ErrorResponse "Deal not found"
// @Security BearerAuth
// @Router /deals/{id} [delete]
func (h *DealHandler) DeleteDeal(c *gin.Context) {
	orgID, ok := organizationID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "deal")
	if !ok {
		return
	}

	if err := h.dealService.Delete(c.Request.Context(), orgID, id); err != nil {
		respondError(c, "Failed to delete deal", err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ImportDeals handles POST /deals/import
// @Summary Import deals
// @Description Bulk-create deals from a CSV or XLSX file with a header row (name, amount, stage, close_date)
// @Tags deals
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV or XLSX file"
// @Success 200 {object} service.ImportResult
// @Failure 400 {object} ErrorResponse "Missing file, unsupported format or missing header"
// @Security BearerAuth
// @Router /deals/import [post]
func (h *DealHandler) ImportDeals(c *gin.Context) {
	orgID, ok := organizationID(c)
	if !ok {
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxImportSize)
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "file is required", Details: err.Error()})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Failed to read file", Details: err.Error()})
		return
	}
	defer file.Close()

	result, err := h.dealService.Import(c.Request.Context(), orgID, fileHeader.Filename, file)
	if err != nil {
		respondError(c, "Failed to import deals", err)
		return
	}

	c.JSON(http.StatusOK, result)
}
