package models

import (
	"time"

	"gorm.io/gorm"
)

// Invitation is a single-use offer to join an organization with a given role.
// Valid for acceptance iff AcceptedAt is null and ExpiresAt is in the future;
// once accepted it is terminal.
type Invitation struct {
	ID             uint64         `gorm:"primarykey" json:"id"`
	Email          string         `gorm:"type:varchar(255);not null" json:"email"`
	OrganizationID uint64         `gorm:"index;not null" json:"organization_id"`
	Role           Role           `gorm:"type:varchar(20);not null" json:"role"`
	Token          string         `gorm:"type:varchar(64);uniqueIndex;not null" json:"-"`
	ExpiresAt      time.Time      `gorm:"not null" json:"expires_at"`
	AcceptedAt     *time.Time     `json:"accepted_at"`
	InvitedBy      *uint64        `json:"invited_by"`
	CreatedAt      time.Time      `json:"created_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Organization Organization `gorm:"foreignKey:OrganizationID" json:"organization,omitempty"`
}

// Acceptable reports whether the invitation can still be consumed.
func (i *Invitation) Acceptable(now time.Time) bool {
	return i.AcceptedAt == nil && i.ExpiresAt.After(now)
}
