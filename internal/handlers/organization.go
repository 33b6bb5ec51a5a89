package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tasktracker/internal/dto"
	apperrors "tasktracker/internal/errors"
	"tasktracker/internal/services"
)

// OrganizationHandler coordinates organization directory handlers.
type OrganizationHandler struct {
	directoryService *services.DirectoryService
}

// NewOrganizationHandler creates a new OrganizationHandler.
func NewOrganizationHandler(directoryService *services.DirectoryService) *OrganizationHandler {
	return &OrganizationHandler{
		directoryService: directoryService,
	}
}

// ListOrganizations returns all organizations, newest first.
func (h *OrganizationHandler) ListOrganizations(c *gin.Context) {
	orgs, err := h.directoryService.ListOrganizations()
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"organizations": dto.ToOrganizationDTOs(orgs)})
}

// CreateOrganization creates a new organization.
func (h *OrganizationHandler) CreateOrganization(c *gin.Context) {
	type CreateOrganizationRequest struct {
		Name string `json:"name" binding:"required"`
	}

	var req CreateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.Respond(c, apperrors.InvalidInput("Organization name is required"))
		return
	}

	org, err := h.directoryService.CreateOrganization(req.Name)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"organization": dto.ToOrganizationDTO(*org)})
}

// UpdateOrganization edits an organization.
func (h *OrganizationHandler) UpdateOrganization(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	type UpdateOrganizationRequest struct {
		Name *string `json:"name"`
	}

	var req UpdateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.Respond(c, apperrors.InvalidInput("Invalid request body"))
		return
	}

	org, err := h.directoryService.UpdateOrganization(id, req.Name)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"organization": dto.ToOrganizationDTO(*org)})
}

// DeleteOrganization removes an organization unless tasks reference it.
func (h *OrganizationHandler) DeleteOrganization(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.directoryService.DeleteOrganization(id); err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Organization deleted"})
}

// GetOrganizationClients returns the clients linked to the organization.
func (h *OrganizationHandler) GetOrganizationClients(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	clients, err := h.directoryService.GetOrganizationClients(id)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"clients": dto.ToClientDTOs(clients)})
}

// SetOrganizationClients replaces the organization's link set in full.
func (h *OrganizationHandler) SetOrganizationClients(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	type SetClientsRequest struct {
		ClientIDs *[]uint64 `json:"client_ids"`
	}

	var req SetClientsRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ClientIDs == nil {
		apperrors.Respond(c, apperrors.InvalidInput("client_ids must be an array"))
		return
	}

	clients, err := h.directoryService.SetOrganizationClients(id, *req.ClientIDs)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"clients": dto.ToClientDTOs(clients)})
}
