package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"tasktracker/internal/models"
)

// ErrDuplicateKey is returned when an insert or update violates a unique
// index. The services pre-check uniqueness, so this surfaces only when a
// concurrent write got past the check; the unique index stays authoritative.
var ErrDuplicateKey = errors.New("repository: duplicate key")

// translateError maps driver-level unique violations to ErrDuplicateKey.
func translateError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateKey
	}
	return err
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by normalized email
	FindByEmail(email string) (*models.User, error)

	// Update updates a user
	Update(user *models.User) error

	// ListEmployees lists all EMPLOYEE users ordered by employee code
	ListEmployees() ([]models.User, error)

	// MaxEmployeeCode returns the highest assigned employee code, 0 when none
	MaxEmployeeCode() (int, error)

	// DeleteEmployee removes an employee. Fails with ErrEmployeeHasTasks when
	// the employee still has created tasks; clears any task assignments
	// pointing at the employee in the same transaction.
	DeleteEmployee(id uint64) error
}

// ClientRepository defines the interface for client data access
type ClientRepository interface {
	// Create creates a new client
	Create(client *models.Client) error

	// FindByID finds a client by ID
	FindByID(id uint64) (*models.Client, error)

	// FindByName finds a client by exact stored name
	FindByName(name string) (*models.Client, error)

	// List lists all clients, newest first
	List() ([]models.Client, error)

	// Update updates a client
	Update(client *models.Client) error

	// Delete removes a client and its organization links. Fails with
	// ErrClientHasTasks when any task still references the client.
	Delete(id uint64) error
}

// OrganizationRepository defines the interface for organization data access
type OrganizationRepository interface {
	// Create creates a new organization
	Create(org *models.Organization) error

	// FindByID finds an organization by ID
	FindByID(id uint64) (*models.Organization, error)

	// FindByName finds an organization by exact stored name
	FindByName(name string) (*models.Organization, error)

	// List lists all organizations, newest first
	List() ([]models.Organization, error)

	// Update updates an organization
	Update(org *models.Organization) error

	// Delete removes an organization and its client links. Fails with
	// ErrOrganizationHasTasks when any task still references it.
	Delete(id uint64) error

	// ReplaceClients replaces the organization's entire link set with exactly
	// the given client IDs, as a set difference inside one transaction.
	ReplaceClients(orgID uint64, clientIDs []uint64) error

	// ListClients returns the clients currently linked to the organization.
	ListClients(orgID uint64) ([]models.Client, error)
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a task after re-validating, in the same transaction,
	// that the organization and client exist and are linked.
	Create(task *models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// List retrieves tasks matching the filter, visibility-scoped, newest
	// first, with resolved associations.
	List(filter TaskFilter, scope func(*gorm.DB) *gorm.DB) ([]models.Task, int64, error)

	// Update saves a task. When placementChanged is set the
	// organization/client pair is re-validated inside the transaction.
	Update(task *models.Task, placementChanged bool) error

	// Delete removes a task
	Delete(id uint64) error

	// Count counts visible tasks
	Count(scope func(*gorm.DB) *gorm.DB) (int64, error)

	// CountByStatus counts visible tasks grouped by status
	CountByStatus(scope func(*gorm.DB) *gorm.DB) (map[models.TaskStatus]int64, error)

	// CountByService counts visible tasks grouped by service
	CountByService(scope func(*gorm.DB) *gorm.DB) (map[models.TaskService]int64, error)

	// CountCreatedSince counts visible tasks created at or after the instant
	CountCreatedSince(scope func(*gorm.DB) *gorm.DB, since time.Time) (int64, error)
}

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	Query            string
	Status           *models.TaskStatus
	Service          *models.TaskService
	OrganizationID   *uint64
	ClientID         *uint64
	AssignedToUserID *uint64
	CreatedByUserID  *uint64
	Page             int
	PageSize         int
}
