package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jengzang/ridetiles/internal/middleware"
	"github.com/jengzang/ridetiles/internal/models"
	"github.com/jengzang/ridetiles/internal/service"
	"github.com/jengzang/ridetiles/pkg/response"
)

// AnalysisTaskHandler handles HTTP requests for analysis tasks
type AnalysisTaskHandler struct {
	service *service.AnalysisTaskService
}

// NewAnalysisTaskHandler creates a new analysis task handler
func NewAnalysisTaskHandler(service *service.AnalysisTaskService) *AnalysisTaskHandler {
	return &AnalysisTaskHandler{service: service}
}

// CreateTask creates a new analysis task
// POST /api/admin/analysis/tasks
func (h *AnalysisTaskHandler) CreateTask(c *gin.Context) {
	var req models.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.service.CreateTask(c.Request.Context(), req, c.GetString(middleware.UserKey))
	if err != nil {
		fail(c, err)
		return
	}

	response.Created(c, task)
}

// GetTask retrieves a task by ID
// GET /api/admin/analysis/tasks/:id
func (h *AnalysisTaskHandler) GetTask(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid task ID")
		return
	}

	task, err := h.service.GetTask(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}

	response.Success(c, task)
}

// ListTasks retrieves all tasks
// GET /api/admin/analysis/tasks
func (h *AnalysisTaskHandler) ListTasks(c *gin.Context) {
	var filter models.TaskFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	tasks, err := h.service.ListTasks(c.Request.Context(), filter)
	if err != nil {
		fail(c, err)
		return
	}

	response.Success(c, gin.H{
		"tasks":  tasks,
		"limit":  filter.Limit,
		"offset": filter.Offset,
	})
}

// CancelTask cancels a running task
// DELETE /api/admin/analysis/tasks/:id
func (h *AnalysisTaskHandler) CancelTask(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid task ID")
		return
	}

	if err := h.service.CancelTask(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}

	response.Success(c, gin.H{"message": "Task cancelled successfully"})
}
