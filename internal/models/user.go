package models

import "time"

type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleEmployee Role = "EMPLOYEE"
)

type User struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	Role         Role      `gorm:"type:varchar(20);not null;default:'EMPLOYEE'" json:"role"`
	Email        string    `gorm:"type:varchar(120);uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	EmployeeCode *int      `gorm:"uniqueIndex" json:"employee_code,omitempty"`
	FirstName    *string   `gorm:"type:varchar(80)" json:"first_name"`
	LastName     *string   `gorm:"type:varchar(80)" json:"last_name"`
	Address      *string   `gorm:"type:varchar(255)" json:"address"`
	Phone        *string   `gorm:"type:varchar(40)" json:"phone"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	CreatedTasks  []Task `gorm:"foreignKey:CreatedByUserID" json:"-"`
	AssignedTasks []Task `gorm:"foreignKey:AssignedToUserID" json:"-"`
}

// IsAdmin reports whether the user holds the ADMIN role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
