package repository

import (
	"errors"

	"gorm.io/gorm"

	"tasktracker/internal/models"
)

var (
	// ErrClientHasTasks is returned when a client delete is blocked by
	// referencing tasks.
	ErrClientHasTasks = errors.New("client repository: client has dependent tasks")
)

// GormClientRepository is a GORM implementation of ClientRepository
type GormClientRepository struct {
	db *gorm.DB
}

// NewClientRepository creates a new ClientRepository
func NewClientRepository(db *gorm.DB) ClientRepository {
	return &GormClientRepository{db: db}
}

// Create creates a new client
func (r *GormClientRepository) Create(client *models.Client) error {
	return translateError(r.db.Create(client).Error)
}

// FindByID finds a client by ID
func (r *GormClientRepository) FindByID(id uint64) (*models.Client, error) {
	var client models.Client
	if err := r.db.First(&client, id).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

// FindByName finds a client by exact stored name
func (r *GormClientRepository) FindByName(name string) (*models.Client, error) {
	var client models.Client
	if err := r.db.Where("name = ?", name).First(&client).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

// List lists all clients, newest first
func (r *GormClientRepository) List() ([]models.Client, error) {
	var clients []models.Client
	if err := r.db.Order("created_at DESC").Find(&clients).Error; err != nil {
		return nil, err
	}
	return clients, nil
}

// Update updates a client
func (r *GormClientRepository) Update(client *models.Client) error {
	return translateError(r.db.Save(client).Error)
}

// Delete removes a client and its organization links in one transaction.
// The dependent-task check runs inside the same transaction so a concurrent
// task creation cannot slip between the check and the delete.
func (r *GormClientRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var taskCount int64
		if err := tx.Model(&models.Task{}).
			Where("client_id = ?", id).
			Count(&taskCount).Error; err != nil {
			return err
		}
		if taskCount > 0 {
			return ErrClientHasTasks
		}

		if err := tx.Where("client_id = ?", id).
			Delete(&models.OrganizationClient{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Client{}, id).Error
	})
}
