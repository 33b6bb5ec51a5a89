package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tasktracker/internal/dto"
	apperrors "tasktracker/internal/errors"
	"tasktracker/internal/services"
)

// ClientHandler coordinates client directory handlers.
type ClientHandler struct {
	directoryService *services.DirectoryService
}

// NewClientHandler creates a new ClientHandler.
func NewClientHandler(directoryService *services.DirectoryService) *ClientHandler {
	return &ClientHandler{
		directoryService: directoryService,
	}
}

// ListClients returns all clients, newest first.
func (h *ClientHandler) ListClients(c *gin.Context) {
	clients, err := h.directoryService.ListClients()
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"clients": dto.ToClientDTOs(clients)})
}

// CreateClient creates a new client.
func (h *ClientHandler) CreateClient(c *gin.Context) {
	type CreateClientRequest struct {
		Name    string  `json:"name" binding:"required"`
		Address *string `json:"address"`
	}

	var req CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.Respond(c, apperrors.InvalidInput("Client name is required"))
		return
	}

	client, err := h.directoryService.CreateClient(req.Name, req.Address)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"client": dto.ToClientDTO(*client)})
}

// UpdateClient edits a client.
func (h *ClientHandler) UpdateClient(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	type UpdateClientRequest struct {
		Name    *string `json:"name"`
		Address *string `json:"address"`
	}

	var req UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.Respond(c, apperrors.InvalidInput("Invalid request body"))
		return
	}

	client, err := h.directoryService.UpdateClient(id, req.Name, req.Address)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"client": dto.ToClientDTO(*client)})
}

// DeleteClient removes a client unless tasks reference it.
func (h *ClientHandler) DeleteClient(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.directoryService.DeleteClient(id); err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Client deleted"})
}
