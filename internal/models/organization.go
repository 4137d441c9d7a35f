package models

import (
	"time"

	"gorm.io/gorm"
)

type Organization struct {
	ID           uint64         `gorm:"primarykey" json:"id"`
	Name         string         `gorm:"type:varchar(255);not null" json:"name"`
	OrgNumber    string         `gorm:"type:varchar(20)" json:"org_number"`
	Address      string         `gorm:"type:varchar(255)" json:"address"`
	PostalCode   string         `gorm:"type:varchar(10)" json:"postal_code"`
	City         string         `gorm:"type:varchar(100)" json:"city"`
	ContactEmail string         `gorm:"type:varchar(255)" json:"contact_email"`
	ContactPhone string         `gorm:"type:varchar(50)" json:"contact_phone"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Profiles []UserProfile `gorm:"foreignKey:OrganizationID" json:"profiles,omitempty"`
	Vendors  []Vendor      `gorm:"foreignKey:OrganizationID" json:"vendors,omitempty"`
	Invoices []Invoice     `gorm:"foreignKey:OrganizationID" json:"invoices,omitempty"`
}
