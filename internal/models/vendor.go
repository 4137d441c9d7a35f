package models

import (
	"time"

	"gorm.io/gorm"
)

// Vendor is a billing counterparty scoped to one organization.
type Vendor struct {
	ID             uint64         `gorm:"primarykey" json:"id"`
	OrganizationID uint64         `gorm:"index;not null" json:"organization_id"`
	Name           string         `gorm:"type:varchar(255);not null" json:"name"`
	OrgNumber      string         `gorm:"type:varchar(20)" json:"org_number"`
	Address        string         `gorm:"type:varchar(255)" json:"address"`
	Bankgiro       string         `gorm:"type:varchar(20)" json:"bankgiro"`
	Plusgiro       string         `gorm:"type:varchar(20)" json:"plusgiro"`
	Email          string         `gorm:"type:varchar(255)" json:"email"`
	Phone          string         `gorm:"type:varchar(50)" json:"phone"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Organization Organization `gorm:"foreignKey:OrganizationID" json:"-"`
}
