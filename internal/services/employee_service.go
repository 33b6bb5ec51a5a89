package services

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "tasktracker/internal/errors"
	"tasktracker/internal/models"
	"tasktracker/internal/repository"
)

var (
	ErrEmployeeNotFound    = apperrors.NotFound("Employee not found")
	ErrEmailTaken          = apperrors.Conflict("Email already exists")
	ErrEmployeeHasTasks    = apperrors.Conflict("Cannot delete employee: created tasks exist")
	ErrEmailPasswordNeeded = apperrors.InvalidInput("email and password are required")
)

// EmployeeService handles ADMIN-driven employee account management.
type EmployeeService struct {
	userRepo repository.UserRepository
}

// NewEmployeeService creates a new EmployeeService.
func NewEmployeeService(userRepo repository.UserRepository) *EmployeeService {
	return &EmployeeService{
		userRepo: userRepo,
	}
}

// CreateEmployeeInput represents input for creating an employee account.
type CreateEmployeeInput struct {
	Email     string
	Password  string
	FirstName *string
	LastName  *string
	Address   *string
	Phone     *string
}

// UpdateEmployeeInput represents input for editing an employee account.
// A nil field is left unchanged; an empty string clears the optional field.
type UpdateEmployeeInput struct {
	Email     *string
	Password  *string
	FirstName *string
	LastName  *string
	Address   *string
	Phone     *string
}

// CreateEmployee creates an EMPLOYEE user with the next employee code.
func (s *EmployeeService) CreateEmployee(input CreateEmployeeInput) (*models.User, error) {
	if strings.TrimSpace(input.Email) == "" || input.Password == "" {
		return nil, ErrEmailPasswordNeeded
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))

	if _, err := s.userRepo.FindByEmail(email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Internal("failed to check email", err)
	}

	maxCode, err := s.userRepo.MaxEmployeeCode()
	if err != nil {
		return nil, apperrors.Internal("failed to resolve employee code", err)
	}
	nextCode := maxCode + 1

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Internal("failed to hash password", err)
	}

	employee := &models.User{
		Role:         models.RoleEmployee,
		Email:        email,
		PasswordHash: string(hash),
		EmployeeCode: &nextCode,
		FirstName:    emptyToNil(input.FirstName),
		LastName:     emptyToNil(input.LastName),
		Address:      emptyToNil(input.Address),
		Phone:        emptyToNil(input.Phone),
	}

	if err := s.userRepo.Create(employee); err != nil {
		// The pre-check races concurrent inserts; the unique index decides.
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrEmailTaken
		}
		return nil, apperrors.Internal("failed to create employee", err)
	}

	return employee, nil
}

// ListEmployees returns all employees ordered by employee code.
func (s *EmployeeService) ListEmployees() ([]models.User, error) {
	employees, err := s.userRepo.ListEmployees()
	if err != nil {
		return nil, apperrors.Internal("failed to list employees", err)
	}
	return employees, nil
}

// UpdateEmployee edits an employee's profile, email or password.
func (s *EmployeeService) UpdateEmployee(id uint64, input UpdateEmployeeInput) (*models.User, error) {
	employee, err := s.findEmployee(id)
	if err != nil {
		return nil, err
	}

	if input.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*input.Email))
		if email != "" && email != employee.Email {
			if _, err := s.userRepo.FindByEmail(email); err == nil {
				return nil, ErrEmailTaken
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.Internal("failed to check email", err)
			}
			employee.Email = email
		}
	}

	if input.FirstName != nil {
		employee.FirstName = emptyToNil(input.FirstName)
	}
	if input.LastName != nil {
		employee.LastName = emptyToNil(input.LastName)
	}
	if input.Address != nil {
		employee.Address = emptyToNil(input.Address)
	}
	if input.Phone != nil {
		employee.Phone = emptyToNil(input.Phone)
	}

	if input.Password != nil && strings.TrimSpace(*input.Password) != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, apperrors.Internal("failed to hash password", err)
		}
		employee.PasswordHash = string(hash)
	}

	if err := s.userRepo.Update(employee); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrEmailTaken
		}
		return nil, apperrors.Internal("failed to update employee", err)
	}

	return employee, nil
}

// DeleteEmployee removes an employee account. Tasks they created block the
// delete; tasks merely assigned to them are unassigned.
func (s *EmployeeService) DeleteEmployee(id uint64) error {
	if _, err := s.findEmployee(id); err != nil {
		return err
	}

	if err := s.userRepo.DeleteEmployee(id); err != nil {
		if errors.Is(err, repository.ErrEmployeeHasTasks) {
			return ErrEmployeeHasTasks
		}
		return apperrors.Internal("failed to delete employee", err)
	}

	return nil
}

func (s *EmployeeService) findEmployee(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, apperrors.Internal("failed to find employee", err)
	}
	if user.Role != models.RoleEmployee {
		return nil, ErrEmployeeNotFound
	}
	return user, nil
}

// emptyToNil maps an empty optional field to NULL, matching create semantics.
func emptyToNil(v *string) *string {
	if v == nil || strings.TrimSpace(*v) == "" {
		return nil
	}
	return v
}
