package models

import "time"

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusFollowUp   TaskStatus = "follow-up"
	TaskStatusReverted   TaskStatus = "reverted of client"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusInProgress TaskStatus = "in-progress"
)

type TaskService string

const (
	ServiceAccounting TaskService = "Accounting"
	ServiceITReturn   TaskService = "It-return"
	ServiceGST        TaskService = "GST"
	ServiceDataEntry  TaskService = "Data-entry"
)

// TaskStatuses lists every status value in contract order.
var TaskStatuses = []TaskStatus{
	TaskStatusPending,
	TaskStatusFollowUp,
	TaskStatusReverted,
	TaskStatusCompleted,
	TaskStatusInProgress,
}

// TaskServices lists every service value in contract order.
var TaskServices = []TaskService{
	ServiceAccounting,
	ServiceITReturn,
	ServiceGST,
	ServiceDataEntry,
}

// IsValidTaskStatus reports whether s is one of the five status values.
func IsValidTaskStatus(s TaskStatus) bool {
	for _, v := range TaskStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// IsValidTaskService reports whether s is one of the four service values.
func IsValidTaskService(s TaskService) bool {
	for _, v := range TaskServices {
		if v == s {
			return true
		}
	}
	return false
}

type Task struct {
	ID               uint64      `gorm:"primarykey" json:"id"`
	TaskName         string      `gorm:"type:varchar(200);not null" json:"task_name"`
	Service          TaskService `gorm:"type:varchar(20);not null" json:"service"`
	Status           TaskStatus  `gorm:"type:varchar(30);not null;default:'pending'" json:"status"`
	ClientID         uint64      `gorm:"not null;index" json:"client_id"`
	OrganizationID   uint64      `gorm:"not null;index" json:"organization_id"`
	CreatedByUserID  uint64      `gorm:"not null;index" json:"created_by_user_id"`
	AssignedToUserID *uint64     `gorm:"index" json:"assigned_to_user_id"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`

	// Relations
	Client       Client       `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	Organization Organization `gorm:"foreignKey:OrganizationID" json:"organization,omitempty"`
	CreatedBy    User         `gorm:"foreignKey:CreatedByUserID" json:"created_by,omitempty"`
	AssignedTo   *User        `gorm:"foreignKey:AssignedToUserID" json:"assigned_to,omitempty"`
}

// IsCreator reports whether the given user created the task.
func (t *Task) IsCreator(userID uint64) bool {
	return t.CreatedByUserID == userID
}

// IsAssignee reports whether the task is currently assigned to the given user.
func (t *Task) IsAssignee(userID uint64) bool {
	return t.AssignedToUserID != nil && *t.AssignedToUserID == userID
}
