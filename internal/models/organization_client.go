package models

// OrganizationClient is the many-to-many link between an organization and a
// client. A pair is either linked or not; the row carries no metadata.
type OrganizationClient struct {
	OrganizationID uint64 `gorm:"primarykey" json:"organization_id"`
	ClientID       uint64 `gorm:"primarykey" json:"client_id"`

	// Relations
	Organization Organization `gorm:"foreignKey:OrganizationID" json:"organization,omitempty"`
	Client       Client       `gorm:"foreignKey:ClientID" json:"client,omitempty"`
}
