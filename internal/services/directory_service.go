package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "tasktracker/internal/errors"
	"tasktracker/internal/models"
	"tasktracker/internal/repository"
)

var (
	ErrClientNameRequired       = apperrors.InvalidInput("Client name is required")
	ErrClientExists             = apperrors.Conflict("Client already exists")
	ErrClientNameExists         = apperrors.Conflict("Client name already exists")
	ErrClientNotFound           = apperrors.NotFound("Client not found")
	ErrClientHasTasks           = apperrors.Conflict("Cannot delete client: tasks exist for this client")
	ErrOrganizationNameRequired = apperrors.InvalidInput("Organization name is required")
	ErrOrganizationExists       = apperrors.Conflict("Organization already exists")
	ErrOrganizationNameExists   = apperrors.Conflict("Organization name already exists")
	ErrOrganizationNotFound     = apperrors.NotFound("Organization not found")
	ErrOrganizationHasTasks     = apperrors.Conflict("Cannot delete organization: tasks exist for this organization")
	ErrDuplicateClientIDs       = apperrors.InvalidInput("clientIds must be distinct")
)

// DirectoryService manages clients, organizations and the link set between
// them, enforcing uniqueness and delete-protection invariants.
type DirectoryService struct {
	clientRepo repository.ClientRepository
	orgRepo    repository.OrganizationRepository
}

// NewDirectoryService creates a new DirectoryService.
func NewDirectoryService(clientRepo repository.ClientRepository, orgRepo repository.OrganizationRepository) *DirectoryService {
	return &DirectoryService{
		clientRepo: clientRepo,
		orgRepo:    orgRepo,
	}
}

// ListClients returns all clients, newest first.
func (s *DirectoryService) ListClients() ([]models.Client, error) {
	clients, err := s.clientRepo.List()
	if err != nil {
		return nil, apperrors.Internal("failed to list clients", err)
	}
	return clients, nil
}

// CreateClient creates a client with a unique trimmed name.
func (s *DirectoryService) CreateClient(name string, address *string) (*models.Client, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, ErrClientNameRequired
	}

	if _, err := s.clientRepo.FindByName(trimmed); err == nil {
		return nil, ErrClientExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Internal("failed to check client name", err)
	}

	client := &models.Client{
		Name:    trimmed,
		Address: emptyToNil(address),
	}

	if err := s.clientRepo.Create(client); err != nil {
		// The pre-check races concurrent inserts; the unique index decides.
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrClientExists
		}
		return nil, apperrors.Internal("failed to create client", err)
	}

	return client, nil
}

// UpdateClient edits a client's name and/or address.
func (s *DirectoryService) UpdateClient(id uint64, name, address *string) (*models.Client, error) {
	client, err := s.clientRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, apperrors.Internal("failed to find client", err)
	}

	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if trimmed != "" && trimmed != client.Name {
			if _, err := s.clientRepo.FindByName(trimmed); err == nil {
				return nil, ErrClientNameExists
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.Internal("failed to check client name", err)
			}
			client.Name = trimmed
		}
	}
	if address != nil {
		client.Address = emptyToNil(address)
	}

	if err := s.clientRepo.Update(client); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrClientNameExists
		}
		return nil, apperrors.Internal("failed to update client", err)
	}

	return client, nil
}

// DeleteClient removes a client unless tasks still reference it.
func (s *DirectoryService) DeleteClient(id uint64) error {
	if _, err := s.clientRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrClientNotFound
		}
		return apperrors.Internal("failed to find client", err)
	}

	if err := s.clientRepo.Delete(id); err != nil {
		if errors.Is(err, repository.ErrClientHasTasks) {
			return ErrClientHasTasks
		}
		return apperrors.Internal("failed to delete client", err)
	}

	return nil
}

// ListOrganizations returns all organizations, newest first.
func (s *DirectoryService) ListOrganizations() ([]models.Organization, error) {
	orgs, err := s.orgRepo.List()
	if err != nil {
		return nil, apperrors.Internal("failed to list organizations", err)
	}
	return orgs, nil
}

// CreateOrganization creates an organization with a unique trimmed name.
func (s *DirectoryService) CreateOrganization(name string) (*models.Organization, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, ErrOrganizationNameRequired
	}

	if _, err := s.orgRepo.FindByName(trimmed); err == nil {
		return nil, ErrOrganizationExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Internal("failed to check organization name", err)
	}

	org := &models.Organization{Name: trimmed}

	if err := s.orgRepo.Create(org); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrOrganizationExists
		}
		return nil, apperrors.Internal("failed to create organization", err)
	}

	return org, nil
}

// UpdateOrganization edits an organization's name.
func (s *DirectoryService) UpdateOrganization(id uint64, name *string) (*models.Organization, error) {
	org, err := s.findOrganization(id)
	if err != nil {
		return nil, err
	}

	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if trimmed != "" && trimmed != org.Name {
			if _, err := s.orgRepo.FindByName(trimmed); err == nil {
				return nil, ErrOrganizationNameExists
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.Internal("failed to check organization name", err)
			}
			org.Name = trimmed
		}
	}

	if err := s.orgRepo.Update(org); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrOrganizationNameExists
		}
		return nil, apperrors.Internal("failed to update organization", err)
	}

	return org, nil
}

// DeleteOrganization removes an organization unless tasks still reference it.
func (s *DirectoryService) DeleteOrganization(id uint64) error {
	if _, err := s.findOrganization(id); err != nil {
		return err
	}

	if err := s.orgRepo.Delete(id); err != nil {
		if errors.Is(err, repository.ErrOrganizationHasTasks) {
			return ErrOrganizationHasTasks
		}
		return apperrors.Internal("failed to delete organization", err)
	}

	return nil
}

// SetOrganizationClients replaces the organization's entire link set with
// exactly the given client IDs and returns the resulting linked clients.
func (s *DirectoryService) SetOrganizationClients(orgID uint64, clientIDs []uint64) ([]models.Client, error) {
	if _, err := s.findOrganization(orgID); err != nil {
		return nil, err
	}

	seen := make(map[uint64]struct{}, len(clientIDs))
	for _, id := range clientIDs {
		if _, dup := seen[id]; dup {
			return nil, ErrDuplicateClientIDs
		}
		seen[id] = struct{}{}
	}

	if err := s.orgRepo.ReplaceClients(orgID, clientIDs); err != nil {
		if errors.Is(err, repository.ErrLinkedClientNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, apperrors.Internal("failed to replace organization clients", err)
	}

	clients, err := s.orgRepo.ListClients(orgID)
	if err != nil {
		return nil, apperrors.Internal("failed to list organization clients", err)
	}
	return clients, nil
}

// GetOrganizationClients returns the clients currently linked to the
// organization.
func (s *DirectoryService) GetOrganizationClients(orgID uint64) ([]models.Client, error) {
	if _, err := s.findOrganization(orgID); err != nil {
		return nil, err
	}

	clients, err := s.orgRepo.ListClients(orgID)
	if err != nil {
		return nil, apperrors.Internal("failed to list organization clients", err)
	}
	return clients, nil
}

func (s *DirectoryService) findOrganization(id uint64) (*models.Organization, error) {
	org, err := s.orgRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrganizationNotFound
		}
		return nil, apperrors.Internal("failed to find organization", err)
	}
	return org, nil
}
