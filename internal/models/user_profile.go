package models

import (
	"time"

	"gorm.io/gorm"
)

// UserProfile holds the portal-facing data for a principal. OrganizationID is
// nullable: an authenticated user without a profile organization is treated as
// unprovisioned.
type UserProfile struct {
	ID             uint64         `gorm:"primarykey" json:"id"`
	UserID         uint64         `gorm:"uniqueIndex;not null" json:"user_id"`
	OrganizationID *uint64        `gorm:"index" json:"organization_id"`
	FirstName      string         `gorm:"type:varchar(100)" json:"first_name"`
	LastName       string         `gorm:"type:varchar(100)" json:"last_name"`
	Email          string         `gorm:"type:varchar(255);not null" json:"email"`
	Phone          string         `gorm:"type:varchar(50)" json:"phone"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	User         User          `gorm:"foreignKey:UserID" json:"-"`
	Organization *Organization `gorm:"foreignKey:OrganizationID" json:"organization,omitempty"`
}
