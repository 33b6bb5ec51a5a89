package repository

import (
	"errors"

	"gorm.io/gorm"

	"tasktracker/internal/models"
)

var (
	// ErrOrganizationHasTasks is returned when an organization delete is
	// blocked by referencing tasks.
	ErrOrganizationHasTasks = errors.New("organization repository: organization has dependent tasks")
	// ErrLinkedClientNotFound is returned when a link replace names a client
	// id that does not resolve.
	ErrLinkedClientNotFound = errors.New("organization repository: linked client not found")
)

// GormOrganizationRepository is a GORM implementation of OrganizationRepository
type GormOrganizationRepository struct {
	db *gorm.DB
}

// NewOrganizationRepository creates a new OrganizationRepository
func NewOrganizationRepository(db *gorm.DB) OrganizationRepository {
	return &GormOrganizationRepository{db: db}
}

// Create creates a new organization
func (r *GormOrganizationRepository) Create(org *models.Organization) error {
	return translateError(r.db.Create(org).Error)
}

// FindByID finds an organization by ID
func (r *GormOrganizationRepository) FindByID(id uint64) (*models.Organization, error) {
	var org models.Organization
	if err := r.db.First(&org, id).Error; err != nil {
		return nil, err
	}
	return &org, nil
}

// FindByName finds an organization by exact stored name
func (r *GormOrganizationRepository) FindByName(name string) (*models.Organization, error) {
	var org models.Organization
	if err := r.db.Where("name = ?", name).First(&org).Error; err != nil {
		return nil, err
	}
	return &org, nil
}

// List lists all organizations, newest first
func (r *GormOrganizationRepository) List() ([]models.Organization, error) {
	var orgs []models.Organization
	if err := r.db.Order("created_at DESC").Find(&orgs).Error; err != nil {
		return nil, err
	}
	return orgs, nil
}

// Update updates an organization
func (r *GormOrganizationRepository) Update(org *models.Organization) error {
	return translateError(r.db.Save(org).Error)
}

// Delete removes an organization and its client links in one transaction,
// blocked while any task still references the organization.
func (r *GormOrganizationRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var taskCount int64
		if err := tx.Model(&models.Task{}).
			Where("organization_id = ?", id).
			Count(&taskCount).Error; err != nil {
			return err
		}
		if taskCount > 0 {
			return ErrOrganizationHasTasks
		}

		if err := tx.Where("organization_id = ?", id).
			Delete(&models.OrganizationClient{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Organization{}, id).Error
	})
}

// ReplaceClients swaps the organization's link set for exactly the given
// client IDs. Additions and removals are computed against current state and
// applied in one transaction, never as a delete-all-then-reinsert.
func (r *GormOrganizationRepository) ReplaceClients(orgID uint64, clientIDs []uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if len(clientIDs) > 0 {
			var clientCount int64
			if err := tx.Model(&models.Client{}).
				Where("id IN ?", clientIDs).
				Count(&clientCount).Error; err != nil {
				return err
			}
			if int(clientCount) != len(clientIDs) {
				return ErrLinkedClientNotFound
			}
		}

		var current []models.OrganizationClient
		if err := tx.Where("organization_id = ?", orgID).
			Find(&current).Error; err != nil {
			return err
		}

		wanted := make(map[uint64]struct{}, len(clientIDs))
		for _, id := range clientIDs {
			wanted[id] = struct{}{}
		}

		existing := make(map[uint64]struct{}, len(current))
		var removals []uint64
		for _, link := range current {
			existing[link.ClientID] = struct{}{}
			if _, keep := wanted[link.ClientID]; !keep {
				removals = append(removals, link.ClientID)
			}
		}

		var additions []models.OrganizationClient
		for _, id := range clientIDs {
			if _, present := existing[id]; !present {
				additions = append(additions, models.OrganizationClient{
					OrganizationID: orgID,
					ClientID:       id,
				})
			}
		}

		if len(removals) > 0 {
			if err := tx.Where("organization_id = ? AND client_id IN ?", orgID, removals).
				Delete(&models.OrganizationClient{}).Error; err != nil {
				return err
			}
		}
		if len(additions) > 0 {
			if err := tx.Create(&additions).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// ListClients returns the clients currently linked to the organization.
func (r *GormOrganizationRepository) ListClients(orgID uint64) ([]models.Client, error) {
	var clients []models.Client
	err := r.db.Model(&models.Client{}).
		Joins("JOIN organization_clients ON organization_clients.client_id = clients.id").
		Where("organization_clients.organization_id = ?", orgID).
		Order("clients.name ASC").
		Find(&clients).Error
	if err != nil {
		return nil, err
	}
	return clients, nil
}
