package repository

import (
	"errors"

	"gorm.io/gorm"

	"tasktracker/internal/models"
)

var (
	// ErrEmployeeHasTasks is returned when an employee still has created
	// tasks at deletion time.
	ErrEmployeeHasTasks = errors.New("user repository: employee has created tasks")
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(user *models.User) error {
	return translateError(r.db.Create(user).Error)
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(id uint64) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a user by normalized email
func (r *GormUserRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Update updates a user
func (r *GormUserRepository) Update(user *models.User) error {
	return translateError(r.db.Save(user).Error)
}

// ListEmployees lists all EMPLOYEE users ordered by employee code
func (r *GormUserRepository) ListEmployees() ([]models.User, error) {
	var employees []models.User
	if err := r.db.Where("role = ?", models.RoleEmployee).
		Order("employee_code ASC").
		Find(&employees).Error; err != nil {
		return nil, err
	}
	return employees, nil
}

// MaxEmployeeCode returns the highest assigned employee code, 0 when none
func (r *GormUserRepository) MaxEmployeeCode() (int, error) {
	var max *int
	err := r.db.Model(&models.User{}).
		Where("role = ?", models.RoleEmployee).
		Select("MAX(employee_code)").
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	if max == nil {
		return 0, nil
	}
	return *max, nil
}

// DeleteEmployee removes an employee row. Tasks created by the employee block
// the delete; assignments pointing at the employee are cleared atomically.
func (r *GormUserRepository) DeleteEmployee(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var created int64
		if err := tx.Model(&models.Task{}).
			Where("created_by_user_id = ?", id).
			Count(&created).Error; err != nil {
			return err
		}
		if created > 0 {
			return ErrEmployeeHasTasks
		}

		if err := tx.Model(&models.Task{}).
			Where("assigned_to_user_id = ?", id).
			Update("assigned_to_user_id", nil).Error; err != nil {
			return err
		}

		return tx.Delete(&models.User{}, id).Error
	})
}
