package handlers

import (
	"net/http"

	"crm-backend/internal/database/models"
	"crm-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// TaskHandler handles HTTP requests for task operations
type TaskHandler struct {
	taskService service.TaskServiceInterface
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(taskService service.TaskServiceInterface) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// TaskStatusRequest is the body of a status toggle
type TaskStatusRequest struct {
	Status models.TaskStatus `json:"status" example:"Completed"`
}

// ListTasks handles GET /tasks
// @Summary List tasks
// @Description Tasks of the caller's organization by due date, undated last
// @Tags tasks
// @Produce json
// @Success 200 {array} service.TaskResponse
// @Security BearerAuth
// @Router /tasks [get]
func (h *TaskHandler) ListTasks(c *gin.Context) {
	orgID, ok := organizationID(c)
	if !ok {
		return
	}

	tasks, err := h.taskService.List(c.Request.Context(), orgID)
	if err != nil {
		respondError(c, "Failed to list tasks", err)
		return
	}

	c.JSON(http.StatusOK, tasks)
}

// CreateTask handles POST /tasks
// @Summary Create task
// @Tags tasks
// @Accept json
// @Produce json
// @Param task body service.TaskRequest true "Task data"
// @Success 201 {object} service.TaskResponse
// @Failure 400 {object} ErrorResponse "Invalid request body"
// @Security BearerAuth
// @Router /tasks [post]
func (h *TaskHandler) CreateTask(c *gin.Context) {
	orgID, ok := organizationID(c)
	if !ok {
		return
	}

	var req service.TaskRequest
	if !bindJSON(c, &req) {
		return
	}

	task, err := h.taskService.Create(c.Request.Context(), orgID, &req)
	if err != nil {
		respondError(c, "Failed to create task", err)
		return
	}

	c.JSON(http.StatusCreated, task)
}

// UpdateTask handles PUT /tasks/:id
// @Summary Update task
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path string true "Task ID (UUID)"
// @Param task body service.TaskRequest true "Task data"
// @Success 200 {object} service.TaskResponse
// @Failure 404 {object} ErrorResponse "Task not found"
// @Security BearerAuth
// @Router /tasks/{id} [put]
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	orgID, ok := organizationID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "task")
	if !ok {
		return
	}

	var req service.TaskRequest
	if !bindJSON(c, &req) {
		return
	}

	task, err := h.taskService.Update(c.Request.Context(), orgID, id, &req)
	if err != nil {
		respondError(c, "Failed to update task", err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// UpdateTaskStatus handles PATCH /tasks/:id/status
// @Summary Toggle task status
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path string true "Task ID (UUID)"
// @Param status body TaskStatusRequest true "New status"
// @Success 200 {object} map[string]interface{} "Status updated"
// @Failure 400 {object} ErrorResponse "Unknown status"
// @Failure 404 {object} ErrorResponse "Task not found"
// @Security BearerAuth
// @Router /tasks/{id}/status [patch]
func (h *TaskHandler) UpdateTaskStatus(c *gin.Context) {
	orgID, ok := organizationID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "task")
	if !ok {
		return
	}

	var req TaskStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.taskService.UpdateStatus(c.Request.Context(), orgID, id, req.Status); err != nil {
		respondError(c, "Failed to update task status", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id, "status": req.Status})
}

// DeleteTask handles DELETE /tasks/:id
// @Summary Delete task
// @Tags tasks
// @Param id path string true "Task ID (UUID)"
// @Success 204 "Task deleted"
// @Failure 404 {object} ErrorResponse "Task not found"
// @Security BearerAuth
// @Router /tasks/{id} [delete]
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	orgID, ok := organizationID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "task")
	if !ok {
		return
	}

	if err := h.taskService.Delete(c.Request.Context(), orgID, id); err != nil {
		respondError(c, "Failed to delete task", err)
		return
	}

	c.Status(http.StatusNoContent)
}
