package models

import (
	"time"

	"gorm.io/gorm"
)

type InvoiceStatus string

const (
	InvoiceStatusNew                InvoiceStatus = "new"
	InvoiceStatusPendingAttestation InvoiceStatus = "pending_attestation"
	InvoiceStatusAttested           InvoiceStatus = "attested"
	InvoiceStatusRejected           InvoiceStatus = "rejected"
	InvoiceStatusPaid               InvoiceStatus = "paid"
)

// Attestable reports whether an invoice in this status may be attested.
// Both new and pending_attestation are entry points for attestation.
func (s InvoiceStatus) Attestable() bool {
	return s == InvoiceStatusNew || s == InvoiceStatusPendingAttestation
}

// Invoice is the central entity. Status is a denormalized projection of the
// latest status-changing InvoiceEvent; both are written in one transaction.
type Invoice struct {
	ID             uint64         `gorm:"primarykey" json:"id"`
	OrganizationID uint64         `gorm:"index;not null" json:"organization_id"`
	VendorID       *uint64        `gorm:"index" json:"vendor_id"`
	InvoiceNumber  string         `gorm:"type:varchar(50);index" json:"invoice_number"`
	OCRNumber      string         `gorm:"type:varchar(50)" json:"ocr_number"`
	Amount         float64        `gorm:"not null" json:"amount"`
	VATAmount      float64        `json:"vat_amount"`
	Currency       string         `gorm:"type:varchar(3);not null;default:'SEK'" json:"currency"`
	InvoiceDate    time.Time      `gorm:"not null" json:"invoice_date"`
	DueDate        time.Time      `gorm:"not null;index" json:"due_date"`
	Description    string         `gorm:"type:text" json:"description"`
	Status         InvoiceStatus  `gorm:"type:varchar(30);not null;default:'new';index" json:"status"`
	CreatedBy      *uint64        `json:"created_by"`
	CreatedAt      time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Organization Organization        `gorm:"foreignKey:OrganizationID" json:"organization,omitempty"`
	Vendor       *Vendor             `gorm:"foreignKey:VendorID" json:"vendor,omitempty"`
	Lines        []InvoiceLine       `gorm:"foreignKey:InvoiceID" json:"lines,omitempty"`
	Events       []InvoiceEvent      `gorm:"foreignKey:InvoiceID" json:"events,omitempty"`
	Attachments  []InvoiceAttachment `gorm:"foreignKey:InvoiceID" json:"attachments,omitempty"`
}
