package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tasktracker/internal/dto"
	apperrors "tasktracker/internal/errors"
	"tasktracker/internal/middleware"
	"tasktracker/internal/models"
	"tasktracker/internal/services"
	"tasktracker/internal/utils"
)

// TaskHandler coordinates task HTTP handlers.
type TaskHandler struct {
	taskService   *services.TaskService
	reportService *services.ReportService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService, reportService *services.ReportService) *TaskHandler {
	return &TaskHandler{
		taskService:   taskService,
		reportService: reportService,
	}
}

// ListTasks returns the tasks visible to the actor, filtered and paginated.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	actor, exists := middleware.GetActor(c)
	if !exists {
		apperrors.Respond(c, apperrors.Unauthenticated("Missing token"))
		return
	}

	params := utils.GetPaginationParams(c)

	input := services.ListTasksInput{
		Query:        c.Query("q"),
		Status:       c.Query("status"),
		Service:      c.Query("service"),
		AssignedToMe: c.Query("assigned") == "me",
		CreatedByMe:  c.Query("created") == "me",
		Page:         params.Page,
		PageSize:     params.Limit,
	}

	if v := c.Query("organization_id"); v != "" {
		orgID, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			apperrors.Respond(c, apperrors.InvalidInput("Invalid organization_id"))
			return
		}
		input.OrganizationID = &orgID
	}
	if v := c.Query("client_id"); v != "" {
		clientID, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			apperrors.Respond(c, apperrors.InvalidInput("Invalid client_id"))
			return
		}
		input.ClientID = &clientID
	}

	tasks, total, err := h.taskService.ListTasks(actor, input)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks":    dto.ToTaskDTOs(tasks),
		"statuses": models.TaskStatuses,
		"services": models.TaskServices,
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// CreateTask creates a new task owned by the actor.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	actor, exists := middleware.GetActor(c)
	if !exists {
		apperrors.Respond(c, apperrors.Unauthenticated("Missing token"))
		return
	}

	type CreateTaskRequest struct {
		OrganizationID uint64 `json:"organization_id"`
		ClientID       uint64 `json:"client_id"`
		TaskName       string `json:"task_name"`
		Service        string `json:"service"`
		Status         string `json:"status"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.Respond(c, apperrors.InvalidInput("Invalid request body"))
		return
	}

	task, err := h.taskService.CreateTask(actor, services.CreateTaskInput{
		OrganizationID: req.OrganizationID,
		ClientID:       req.ClientID,
		TaskName:       req.TaskName,
		Service:        req.Service,
		Status:         req.Status,
	})
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"task": dto.ToTaskDTO(*task)})
}

// UpdateTask applies a partial update. The raw body is inspected so absent
// fields, null fields and set fields can be told apart (assignment clearing
// relies on an explicit null).
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	actor, exists := middleware.GetActor(c)
	if !exists {
		apperrors.Respond(c, apperrors.Unauthenticated("Missing token"))
		return
	}

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var rawReq map[string]any
	if err := c.ShouldBindJSON(&rawReq); err != nil {
		apperrors.Respond(c, apperrors.InvalidInput("Invalid request body"))
		return
	}

	var input services.UpdateTaskInput

	if v, present := rawReq["task_name"]; present {
		s, ok := v.(string)
		if !ok {
			apperrors.Respond(c, apperrors.InvalidInput("taskName cannot be empty"))
			return
		}
		input.TaskName = &s
	}
	if v, present := rawReq["service"]; present {
		s, ok := v.(string)
		if !ok {
			apperrors.Respond(c, apperrors.InvalidInput("Invalid service"))
			return
		}
		input.Service = &s
	}
	if v, present := rawReq["status"]; present {
		s, ok := v.(string)
		if !ok {
			apperrors.Respond(c, apperrors.InvalidInput("Invalid status"))
			return
		}
		input.Status = &s
	}
	if v, present := rawReq["organization_id"]; present {
		orgID, ok := toUint64(v)
		if !ok {
			apperrors.Respond(c, apperrors.InvalidInput("Invalid organization_id"))
			return
		}
		input.OrganizationID = &orgID
	}
	if v, present := rawReq["client_id"]; present {
		clientID, ok := toUint64(v)
		if !ok {
			apperrors.Respond(c, apperrors.InvalidInput("Invalid client_id"))
			return
		}
		input.ClientID = &clientID
	}
	if v, present := rawReq["assigned_to_user_id"]; present {
		input.SetAssignee = true
		if v != nil {
			assigneeID, ok := toUint64(v)
			if !ok {
				apperrors.Respond(c, apperrors.InvalidInput("Invalid assigned_to_user_id"))
				return
			}
			input.AssigneeID = &assigneeID
		}
	}

	task, err := h.taskService.UpdateTask(actor, id, input)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"task": dto.ToTaskDTO(*task)})
}

// UpdateStatus is a back-compat alias for UpdateTask.
func (h *TaskHandler) UpdateStatus(c *gin.Context) {
	h.UpdateTask(c)
}

// DeleteTask removes a task.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	actor, exists := middleware.GetActor(c)
	if !exists {
		apperrors.Respond(c, apperrors.Unauthenticated("Missing token"))
		return
	}

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(actor, id); err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task deleted"})
}

// AssignSelf assigns the task to the acting employee.
func (h *TaskHandler) AssignSelf(c *gin.Context) {
	actor, exists := middleware.GetActor(c)
	if !exists {
		apperrors.Respond(c, apperrors.Unauthenticated("Missing token"))
		return
	}

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	task, err := h.taskService.AssignSelf(actor, id)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"task": dto.ToTaskDTO(*task)})
}

// ListAssignableEmployees returns employees for the assignment dropdown.
func (h *TaskHandler) ListAssignableEmployees(c *gin.Context) {
	employees, err := h.taskService.ListAssignableEmployees()
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"employees": dto.ToEmployeeDTOs(employees)})
}

// TaskStats returns the scoped status/service breakdowns.
func (h *TaskHandler) TaskStats(c *gin.Context) {
	actor, exists := middleware.GetActor(c)
	if !exists {
		apperrors.Respond(c, apperrors.Unauthenticated("Missing token"))
		return
	}

	stats, err := h.reportService.TaskStats(actor)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total":     stats.Total,
		"byStatus":  stats.ByStatus,
		"byService": stats.ByService,
		"statuses":  models.TaskStatuses,
		"services":  models.TaskServices,
	})
}

// toUint64 converts a decoded JSON value to a positive integer id.
func toUint64(v any) (uint64, bool) {
	f, ok := v.(float64)
	if !ok || f <= 0 || f != float64(uint64(f)) {
		return 0, false
	}
	return uint64(f), true
}
