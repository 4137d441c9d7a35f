package models

import (
	"time"

	"gorm.io/gorm"
)

// User is the authentication principal. Everything portal-facing about a
// person lives on UserProfile; this record only carries credentials.
type User struct {
	ID           uint64         `gorm:"primarykey" json:"id"`
	Email        string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"type:varchar(255);not null" json:"-"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Profile *UserProfile `gorm:"foreignKey:UserID" json:"profile,omitempty"`
	Roles   []UserRole   `gorm:"foreignKey:UserID" json:"-"`
}
