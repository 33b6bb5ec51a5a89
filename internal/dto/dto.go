package dto

import (
	"time"

	"tasktracker/internal/models"
)

// UserDTO represents a user in API responses.
type UserDTO struct {
	ID        uint64      `json:"id"`
	Email     string      `json:"email"`
	Role      models.Role `json:"role"`
	FirstName *string     `json:"first_name"`
	LastName  *string     `json:"last_name"`
}

// EmployeeDTO represents an employee in admin responses.
type EmployeeDTO struct {
	ID           uint64      `json:"id"`
	EmployeeCode *int        `json:"employee_code"`
	Role         models.Role `json:"role"`
	Email        string      `json:"email"`
	FirstName    *string     `json:"first_name"`
	LastName     *string     `json:"last_name"`
	Address      *string     `json:"address"`
	Phone        *string     `json:"phone"`
}

// ClientDTO represents a client in API responses.
type ClientDTO struct {
	ID      uint64  `json:"id"`
	Name    string  `json:"name"`
	Address *string `json:"address"`
}

// OrganizationDTO represents an organization in API responses.
type OrganizationDTO struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// TaskDTO represents a task with resolved associations.
type TaskDTO struct {
	ID               uint64             `json:"id"`
	TaskName         string             `json:"task_name"`
	Service          models.TaskService `json:"service"`
	Status           models.TaskStatus  `json:"status"`
	ClientID         uint64             `json:"client_id"`
	OrganizationID   uint64             `json:"organization_id"`
	CreatedByUserID  uint64             `json:"created_by_user_id"`
	AssignedToUserID *uint64            `json:"assigned_to_user_id"`
	CreatedAt        time.Time          `json:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at"`
	Client           *ClientDTO         `json:"client,omitempty"`
	Organization     *OrganizationDTO   `json:"organization,omitempty"`
	CreatedBy        *UserDTO           `json:"created_by,omitempty"`
	AssignedTo       *UserDTO           `json:"assigned_to,omitempty"`
}

// Conversion functions

// ToUserDTO converts a User model to UserDTO.
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:        user.ID,
		Email:     user.Email,
		Role:      user.Role,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}
}

// ToEmployeeDTO converts a User model to EmployeeDTO.
func ToEmployeeDTO(user models.User) EmployeeDTO {
	return EmployeeDTO{
		ID:           user.ID,
		EmployeeCode: user.EmployeeCode,
		Role:         user.Role,
		Email:        user.Email,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		Address:      user.Address,
		Phone:        user.Phone,
	}
}

// ToEmployeeDTOs converts a slice of users.
func ToEmployeeDTOs(users []models.User) []EmployeeDTO {
	out := make([]EmployeeDTO, len(users))
	for i, u := range users {
		out[i] = ToEmployeeDTO(u)
	}
	return out
}

// ToClientDTO converts a Client model to ClientDTO.
func ToClientDTO(client models.Client) ClientDTO {
	return ClientDTO{
		ID:      client.ID,
		Name:    client.Name,
		Address: client.Address,
	}
}

// ToClientDTOs converts a slice of clients.
func ToClientDTOs(clients []models.Client) []ClientDTO {
	out := make([]ClientDTO, len(clients))
	for i, c := range clients {
		out[i] = ToClientDTO(c)
	}
	return out
}

// ToOrganizationDTO converts an Organization model to OrganizationDTO.
func ToOrganizationDTO(org models.Organization) OrganizationDTO {
	return OrganizationDTO{
		ID:   org.ID,
		Name: org.Name,
	}
}

// ToOrganizationDTOs converts a slice of organizations.
func ToOrganizationDTOs(orgs []models.Organization) []OrganizationDTO {
	out := make([]OrganizationDTO, len(orgs))
	for i, o := range orgs {
		out[i] = ToOrganizationDTO(o)
	}
	return out
}

// ToTaskDTO converts a Task model to TaskDTO with whatever associations were
// preloaded.
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:               task.ID,
		TaskName:         task.TaskName,
		Service:          task.Service,
		Status:           task.Status,
		ClientID:         task.ClientID,
		OrganizationID:   task.OrganizationID,
		CreatedByUserID:  task.CreatedByUserID,
		AssignedToUserID: task.AssignedToUserID,
		CreatedAt:        task.CreatedAt,
		UpdatedAt:        task.UpdatedAt,
	}

	if task.Client.ID != 0 {
		client := ToClientDTO(task.Client)
		dto.Client = &client
	}
	if task.Organization.ID != 0 {
		org := ToOrganizationDTO(task.Organization)
		dto.Organization = &org
	}
	if task.CreatedBy.ID != 0 {
		creator := ToUserDTO(task.CreatedBy)
		dto.CreatedBy = &creator
	}
	if task.AssignedTo != nil && task.AssignedTo.ID != 0 {
		assignee := ToUserDTO(*task.AssignedTo)
		dto.AssignedTo = &assignee
	}

	return dto
}

// ToTaskDTOs converts a slice of tasks.
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	out := make([]TaskDTO, len(tasks))
	for i, t := range tasks {
		out[i] = ToTaskDTO(t)
	}
	return out
}
