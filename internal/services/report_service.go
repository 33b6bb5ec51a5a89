package services

import (
	"time"

	"tasktracker/internal/authz"
	apperrors "tasktracker/internal/errors"
	"tasktracker/internal/models"
	"tasktracker/internal/repository"
)

// TaskStats summarizes the tasks visible to an actor. Both breakdowns cover
// every enum value, zero-filled, so their sums always equal Total.
type TaskStats struct {
	Total     int64                        `json:"total"`
	ByStatus  map[models.TaskStatus]int64  `json:"byStatus"`
	ByService map[models.TaskService]int64 `json:"byService"`
}

// DashboardStats carries the dashboard headline counts.
type DashboardStats struct {
	Total      int64 `json:"total"`
	Completed  int64 `json:"completed"`
	Pending    int64 `json:"pending"`
	InProgress int64 `json:"inProgress"`
	New        int64 `json:"new"`
}

// ReportService derives aggregate counts from task data, scoped by the same
// visibility rule as task listing.
type ReportService struct {
	taskRepo repository.TaskRepository
}

// NewReportService creates a new ReportService.
func NewReportService(taskRepo repository.TaskRepository) *ReportService {
	return &ReportService{
		taskRepo: taskRepo,
	}
}

// TaskStats returns the status and service breakdowns for the actor's scope.
func (s *ReportService) TaskStats(actor *models.User) (*TaskStats, error) {
	scope := authz.TaskScope(actor)

	total, err := s.taskRepo.Count(scope)
	if err != nil {
		return nil, apperrors.Internal("failed to count tasks", err)
	}

	statusCounts, err := s.taskRepo.CountByStatus(scope)
	if err != nil {
		return nil, apperrors.Internal("failed to count tasks by status", err)
	}

	serviceCounts, err := s.taskRepo.CountByService(scope)
	if err != nil {
		return nil, apperrors.Internal("failed to count tasks by service", err)
	}

	stats := &TaskStats{
		Total:     total,
		ByStatus:  make(map[models.TaskStatus]int64, len(models.TaskStatuses)),
		ByService: make(map[models.TaskService]int64, len(models.TaskServices)),
	}
	for _, status := range models.TaskStatuses {
		stats.ByStatus[status] = statusCounts[status]
	}
	for _, service := range models.TaskServices {
		stats.ByService[service] = serviceCounts[service]
	}

	return stats, nil
}

// DashboardStats returns headline counts; "new" means created today.
func (s *ReportService) DashboardStats(actor *models.User) (*DashboardStats, error) {
	scope := authz.TaskScope(actor)

	total, err := s.taskRepo.Count(scope)
	if err != nil {
		return nil, apperrors.Internal("failed to count tasks", err)
	}

	statusCounts, err := s.taskRepo.CountByStatus(scope)
	if err != nil {
		return nil, apperrors.Internal("failed to count tasks by status", err)
	}

	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	newToday, err := s.taskRepo.CountCreatedSince(scope, startOfDay)
	if err != nil {
		return nil, apperrors.Internal("failed to count new tasks", err)
	}

	return &DashboardStats{
		Total:      total,
		Completed:  statusCounts[models.TaskStatusCompleted],
		Pending:    statusCounts[models.TaskStatusPending],
		InProgress: statusCounts[models.TaskStatusInProgress],
		New:        newToday,
	}, nil
}
