package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"tasktracker/internal/database"
	"tasktracker/internal/models"
	"tasktracker/internal/utils"
)

var (
	// ErrPlacementOrganizationNotFound is returned when a task's organization
	// id does not resolve.
	ErrPlacementOrganizationNotFound = errors.New("task repository: organization not found")
	// ErrPlacementClientNotFound is returned when a task's client id does not
	// resolve.
	ErrPlacementClientNotFound = errors.New("task repository: client not found")
	// ErrClientNotLinked is returned when the task's client is not linked to
	// its organization.
	ErrClientNotLinked = errors.New("task repository: client not linked to organization")
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// ensurePlacement verifies, inside the caller's transaction, that the
// organization and client exist and that the pair is linked.
func ensurePlacement(tx *gorm.DB, organizationID, clientID uint64) error {
	var org models.Organization
	if err := tx.First(&org, organizationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPlacementOrganizationNotFound
		}
		return err
	}

	var client models.Client
	if err := tx.First(&client, clientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPlacementClientNotFound
		}
		return err
	}

	var linkCount int64
	if err := tx.Model(&models.OrganizationClient{}).
		Where("organization_id = ? AND client_id = ?", organizationID, clientID).
		Count(&linkCount).Error; err != nil {
		return err
	}
	if linkCount == 0 {
		return ErrClientNotLinked
	}

	return nil
}

// Create inserts a task. The placement check and the insert run in one
// transaction so a concurrent link removal cannot produce an orphan pair.
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := ensurePlacement(tx, task.OrganizationID, task.ClientID); err != nil {
			return err
		}
		return tx.Create(task).Error
	})
}

// FindByID finds a task by ID with optional preloading
func (r *GormTaskRepository) FindByID(id uint64, preload ...string) (*models.Task, error) {
	var task models.Task
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&task, id).Error; err != nil {
		return nil, err
	}

	return &task, nil
}

// List retrieves tasks matching the filter, visibility-scoped, newest first.
func (r *GormTaskRepository) List(filter TaskFilter, scope func(*gorm.DB) *gorm.DB) ([]models.Task, int64, error) {
	query := r.db.Model(&models.Task{}).Scopes(scope)

	if filter.Query != "" {
		query = query.Where("tasks.task_name LIKE ?", "%"+filter.Query+"%")
	}
	if filter.Status != nil {
		query = query.Where("tasks.status = ?", *filter.Status)
	}
	if filter.Service != nil {
		query = query.Where("tasks.service = ?", *filter.Service)
	}
	if filter.OrganizationID != nil {
		query = query.Where("tasks.organization_id = ?", *filter.OrganizationID)
	}
	if filter.ClientID != nil {
		query = query.Where("tasks.client_id = ?", *filter.ClientID)
	}
	if filter.AssignedToUserID != nil {
		query = query.Where("tasks.assigned_to_user_id = ?", *filter.AssignedToUserID)
	}
	if filter.CreatedByUserID != nil {
		query = query.Where("tasks.created_by_user_id = ?", *filter.CreatedByUserID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("tasks.created_at DESC")
	if filter.Page > 0 && filter.PageSize > 0 {
		listQuery = listQuery.Scopes(database.Paginate(utils.PaginationParams{
			Page:   filter.Page,
			Limit:  filter.PageSize,
			Offset: (filter.Page - 1) * filter.PageSize,
		}))
	}

	var tasks []models.Task
	if err := listQuery.
		Preload("Client").
		Preload("Organization").
		Preload("CreatedBy").
		Preload("AssignedTo").
		Find(&tasks).Error; err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

// Update saves a task, re-validating placement inside the transaction when
// the organization/client pair changed.
func (r *GormTaskRepository) Update(task *models.Task, placementChanged bool) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if placementChanged {
			if err := ensurePlacement(tx, task.OrganizationID, task.ClientID); err != nil {
				return err
			}
		}
		return tx.Save(task).Error
	})
}

// Delete removes a task
func (r *GormTaskRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Task{}, id).Error
}

// Count counts visible tasks
func (r *GormTaskRepository) Count(scope func(*gorm.DB) *gorm.DB) (int64, error) {
	var total int64
	err := r.db.Model(&models.Task{}).Scopes(scope).Count(&total).Error
	return total, err
}

// CountByStatus counts visible tasks grouped by status
func (r *GormTaskRepository) CountByStatus(scope func(*gorm.DB) *gorm.DB) (map[models.TaskStatus]int64, error) {
	var rows []struct {
		Status models.TaskStatus
		Count  int64
	}
	err := r.db.Model(&models.Task{}).Scopes(scope).
		Select("tasks.status AS status, COUNT(tasks.id) AS count").
		Group("tasks.status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[models.TaskStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

// CountByService counts visible tasks grouped by service
func (r *GormTaskRepository) CountByService(scope func(*gorm.DB) *gorm.DB) (map[models.TaskService]int64, error) {
	var rows []struct {
		Service models.TaskService
		Count   int64
	}
	err := r.db.Model(&models.Task{}).Scopes(scope).
		Select("tasks.service AS service, COUNT(tasks.id) AS count").
		Group("tasks.service").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[models.TaskService]int64, len(rows))
	for _, row := range rows {
		counts[row.Service] = row.Count
	}
	return counts, nil
}

// CountCreatedSince counts visible tasks created at or after the instant
func (r *GormTaskRepository) CountCreatedSince(scope func(*gorm.DB) *gorm.DB, since time.Time) (int64, error) {
	var total int64
	err := r.db.Model(&models.Task{}).Scopes(scope).
		Where("tasks.created_at >= ?", since).
		Count(&total).Error
	return total, err
}
