package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"tasktracker/internal/authz"
	apperrors "tasktracker/internal/errors"
	"tasktracker/internal/models"
	"tasktracker/internal/repository"
)

var (
	ErrTaskNotFound       = apperrors.NotFound("Task not found")
	ErrTaskFieldsRequired = apperrors.InvalidInput("organizationId, clientId, taskName, service are required")
	ErrInvalidService     = apperrors.InvalidInput("Invalid service")
	ErrInvalidStatus      = apperrors.InvalidInput("Invalid status")
	ErrTaskNameEmpty      = apperrors.InvalidInput("taskName cannot be empty")
	ErrClientNotLinked    = apperrors.InvalidInput("Selected client is not linked to selected organization")
	ErrTaskNotAllowed     = apperrors.Forbidden("Not allowed")
	ErrAssignSelfOnly     = apperrors.Forbidden("Employees can assign only to themselves")
	ErrOnlyCreatorDeletes = apperrors.Forbidden("Only creator can delete this task")
	ErrOnlyEmployeeAssign = apperrors.Forbidden("Only employee can self-assign")
)

// taskPreloads resolve the associations the presentation layer expects.
var taskPreloads = []string{"Client", "Organization", "CreatedBy", "AssignedTo"}

// TaskService owns the task lifecycle: placement validation against the
// directory, the per-role authorization matrix, and assignment rules.
type TaskService struct {
	taskRepo repository.TaskRepository
	userRepo repository.UserRepository
}

// NewTaskService creates a new TaskService.
func NewTaskService(taskRepo repository.TaskRepository, userRepo repository.UserRepository) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		userRepo: userRepo,
	}
}

// CreateTaskInput represents input for creating a task.
type CreateTaskInput struct {
	OrganizationID uint64
	ClientID       uint64
	TaskName       string
	Service        string
	Status         string
}

// ListTasksInput represents filters for listing tasks. Visibility scoping is
// applied before any of these filters.
type ListTasksInput struct {
	Query          string
	Status         string
	Service        string
	OrganizationID *uint64
	ClientID       *uint64
	AssignedToMe   bool
	CreatedByMe    bool
	Page           int
	PageSize       int
}

// UpdateTaskInput represents a partial task update. Nil fields are left
// unchanged. SetAssignee distinguishes "assignee provided" from "absent" so
// an explicit null can clear the assignment.
type UpdateTaskInput struct {
	TaskName       *string
	Service        *string
	Status         *string
	OrganizationID *uint64
	ClientID       *uint64
	SetAssignee    bool
	AssigneeID     *uint64
}

// CreateTask validates placement and creates a task owned by the actor.
func (s *TaskService) CreateTask(actor *models.User, input CreateTaskInput) (*models.Task, error) {
	name := strings.TrimSpace(input.TaskName)
	if input.OrganizationID == 0 || input.ClientID == 0 || name == "" || input.Service == "" {
		return nil, ErrTaskFieldsRequired
	}

	service := models.TaskService(input.Service)
	if !models.IsValidTaskService(service) {
		return nil, ErrInvalidService
	}

	status := models.TaskStatusPending
	if input.Status != "" {
		status = models.TaskStatus(input.Status)
		if !models.IsValidTaskStatus(status) {
			return nil, ErrInvalidStatus
		}
	}

	task := &models.Task{
		TaskName:        name,
		Service:         service,
		Status:          status,
		ClientID:        input.ClientID,
		OrganizationID:  input.OrganizationID,
		CreatedByUserID: actor.ID,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, mapPlacementError(err, "failed to create task")
	}

	return s.reload(task.ID)
}

// ListTasks returns tasks visible to the actor, newest first. Invalid enum
// filter values are ignored rather than matching nothing.
func (s *TaskService) ListTasks(actor *models.User, input ListTasksInput) ([]models.Task, int64, error) {
	filter := repository.TaskFilter{
		Query:          strings.TrimSpace(input.Query),
		OrganizationID: input.OrganizationID,
		ClientID:       input.ClientID,
		Page:           input.Page,
		PageSize:       input.PageSize,
	}

	if status := models.TaskStatus(input.Status); input.Status != "" && models.IsValidTaskStatus(status) {
		filter.Status = &status
	}
	if service := models.TaskService(input.Service); input.Service != "" && models.IsValidTaskService(service) {
		filter.Service = &service
	}
	if input.AssignedToMe {
		filter.AssignedToUserID = &actor.ID
	}
	if input.CreatedByMe {
		filter.CreatedByUserID = &actor.ID
	}

	tasks, total, err := s.taskRepo.List(filter, authz.TaskScope(actor))
	if err != nil {
		return nil, 0, apperrors.Internal("failed to list tasks", err)
	}

	return tasks, total, nil
}

// UpdateTask applies a partial update. Edit permission and reassignment
// permission are checked independently: an actor allowed to rename a task may
// still be denied a reassignment.
func (s *TaskService) UpdateTask(actor *models.User, id uint64, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.find(id)
	if err != nil {
		return nil, err
	}

	if !authz.CanUpdateTask(actor, task) {
		return nil, ErrTaskNotAllowed
	}

	if input.TaskName != nil {
		name := strings.TrimSpace(*input.TaskName)
		if name == "" {
			return nil, ErrTaskNameEmpty
		}
		task.TaskName = name
	}

	if input.Service != nil {
		service := models.TaskService(*input.Service)
		if !models.IsValidTaskService(service) {
			return nil, ErrInvalidService
		}
		task.Service = service
	}

	if input.Status != nil {
		status := models.TaskStatus(*input.Status)
		if !models.IsValidTaskStatus(status) {
			return nil, ErrInvalidStatus
		}
		task.Status = status
	}

	placementChanged := input.OrganizationID != nil || input.ClientID != nil
	if input.OrganizationID != nil {
		task.OrganizationID = *input.OrganizationID
	}
	if input.ClientID != nil {
		task.ClientID = *input.ClientID
	}

	if input.SetAssignee {
		if !authz.CanAssign(actor, input.AssigneeID) {
			return nil, ErrAssignSelfOnly
		}
		if input.AssigneeID != nil {
			if _, err := s.userRepo.FindByID(*input.AssigneeID); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, ErrUserNotFound
				}
				return nil, apperrors.Internal("failed to find user", err)
			}
		}
		task.AssignedToUserID = input.AssigneeID
	}

	if err := s.taskRepo.Update(task, placementChanged); err != nil {
		return nil, mapPlacementError(err, "failed to update task")
	}

	return s.reload(task.ID)
}

// DeleteTask removes a task when the actor is its creator or an admin.
func (s *TaskService) DeleteTask(actor *models.User, id uint64) error {
	task, err := s.find(id)
	if err != nil {
		return err
	}

	if !authz.CanDeleteTask(actor, task) {
		return ErrOnlyCreatorDeletes
	}

	if err := s.taskRepo.Delete(id); err != nil {
		return apperrors.Internal("failed to delete task", err)
	}

	return nil
}

// AssignSelf unconditionally assigns the task to the acting employee,
// overwriting any prior assignee. This is the one mutation that bypasses the
// general update gate.
func (s *TaskService) AssignSelf(actor *models.User, id uint64) (*models.Task, error) {
	if !authz.CanSelfAssign(actor) {
		return nil, ErrOnlyEmployeeAssign
	}

	task, err := s.find(id)
	if err != nil {
		return nil, err
	}

	task.AssignedToUserID = &actor.ID
	if err := s.taskRepo.Update(task, false); err != nil {
		return nil, apperrors.Internal("failed to assign task", err)
	}

	return s.reload(task.ID)
}

// ListAssignableEmployees returns employees for the assignment dropdown.
func (s *TaskService) ListAssignableEmployees() ([]models.User, error) {
	employees, err := s.userRepo.ListEmployees()
	if err != nil {
		return nil, apperrors.Internal("failed to list employees", err)
	}
	return employees, nil
}

func (s *TaskService) find(id uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, apperrors.Internal("failed to find task", err)
	}
	return task, nil
}

func (s *TaskService) reload(id uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(id, taskPreloads...)
	if err != nil {
		return nil, apperrors.Internal("failed to reload task", err)
	}
	return task, nil
}

// mapPlacementError translates repository placement sentinels into the error
// taxonomy; anything else is internal.
func mapPlacementError(err error, internalMsg string) error {
	switch {
	case errors.Is(err, repository.ErrPlacementOrganizationNotFound):
		return ErrOrganizationNotFound
	case errors.Is(err, repository.ErrPlacementClientNotFound):
		return ErrClientNotFound
	case errors.Is(err, repository.ErrClientNotLinked):
		return ErrClientNotLinked
	default:
		return apperrors.Internal(internalMsg, err)
	}
}
