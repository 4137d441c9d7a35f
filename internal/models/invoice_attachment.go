package models

import (
	"time"

	"gorm.io/gorm"
)

// InvoiceAttachment references a stored file for one invoice. StorageKey is
// the blob store key; the row is immutable apart from deletion.
type InvoiceAttachment struct {
	ID         uint64         `gorm:"primarykey" json:"id"`
	InvoiceID  uint64         `gorm:"index;not null" json:"invoice_id"`
	FileName   string         `gorm:"type:varchar(255);not null" json:"file_name"`
	StorageKey string         `gorm:"type:varchar(64);uniqueIndex;not null" json:"-"`
	FileSize   int64          `json:"file_size"`
	FileType   string         `gorm:"type:varchar(100)" json:"file_type"`
	UploadedBy *uint64        `json:"uploaded_by"`
	CreatedAt  time.Time      `json:"created_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Invoice Invoice `gorm:"foreignKey:InvoiceID" json:"-"`
}
