package models

import "time"

// Auditable is embedded by entities whose authorship is tracked. The fields
// are filled by the audit gorm plugin, never by domain code.
type Auditable struct {
	CreatedBy        string     `gorm:"size:64;not null;<-:create" json:"created_by"`
	CreationDate     time.Time  `gorm:"not null;<-:create"         json:"creation_date"`
	LastModifiedBy   *string    `gorm:"size:64"                    json:"last_modified_by,omitempty"`
	LastModifiedDate *time.Time `                                  json:"last_modified_date,omitempty"`
}
