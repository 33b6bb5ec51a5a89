package models

import "time"

type Organization struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"type:varchar(120);uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Tasks []Task `gorm:"foreignKey:OrganizationID" json:"-"`
}
