package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tasktracker/internal/dto"
	apperrors "tasktracker/internal/errors"
	"tasktracker/internal/services"
)

// EmployeeHandler coordinates ADMIN employee-management handlers.
type EmployeeHandler struct {
	employeeService *services.EmployeeService
}

// NewEmployeeHandler creates a new EmployeeHandler.
func NewEmployeeHandler(employeeService *services.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{
		employeeService: employeeService,
	}
}

// CreateEmployee registers a new employee account.
func (h *EmployeeHandler) CreateEmployee(c *gin.Context) {
	type CreateEmployeeRequest struct {
		Email     string  `json:"email" binding:"required"`
		Password  string  `json:"password" binding:"required"`
		FirstName *string `json:"first_name"`
		LastName  *string `json:"last_name"`
		Address   *string `json:"address"`
		Phone     *string `json:"phone"`
	}

	var req CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.Respond(c, apperrors.InvalidInput("email and password are required"))
		return
	}

	employee, err := h.employeeService.CreateEmployee(services.CreateEmployeeInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Address:   req.Address,
		Phone:     req.Phone,
	})
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": dto.ToEmployeeDTO(*employee)})
}

// ListEmployees returns all employees ordered by employee code.
func (h *EmployeeHandler) ListEmployees(c *gin.Context) {
	employees, err := h.employeeService.ListEmployees()
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"employees": dto.ToEmployeeDTOs(employees)})
}

// UpdateEmployee edits an employee account.
func (h *EmployeeHandler) UpdateEmployee(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	type UpdateEmployeeRequest struct {
		Email     *string `json:"email"`
		Password  *string `json:"password"`
		FirstName *string `json:"first_name"`
		LastName  *string `json:"last_name"`
		Address   *string `json:"address"`
		Phone     *string `json:"phone"`
	}

	var req UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.Respond(c, apperrors.InvalidInput("Invalid request body"))
		return
	}

	employee, err := h.employeeService.UpdateEmployee(id, services.UpdateEmployeeInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Address:   req.Address,
		Phone:     req.Phone,
	})
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"employee": dto.ToEmployeeDTO(*employee)})
}

// DeleteEmployee removes an employee account.
func (h *EmployeeHandler) DeleteEmployee(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.employeeService.DeleteEmployee(id); err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Employee deleted"})
}

// parseIDParam parses the :id path parameter shared by resource handlers.
func parseIDParam(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apperrors.Respond(c, apperrors.InvalidInput("Invalid id"))
		return 0, false
	}
	return id, true
}
