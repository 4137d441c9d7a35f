package models

import "time"

type InvoiceEventType string

const (
	EventCreated  InvoiceEventType = "created"
	EventSent     InvoiceEventType = "sent"
	EventAttested InvoiceEventType = "attested"
	EventRejected InvoiceEventType = "rejected"
	EventPaid     InvoiceEventType = "paid"
	EventComment  InvoiceEventType = "comment"
	EventUpdated  InvoiceEventType = "updated"
)

// StatusEvent maps a status-changing event type to the status it produces.
// Returns false for pure annotations (comment, updated).
func (t InvoiceEventType) StatusEvent() (InvoiceStatus, bool) {
	switch t {
	case EventCreated:
		return InvoiceStatusNew, true
	case EventSent:
		return InvoiceStatusPendingAttestation, true
	case EventAttested:
		return InvoiceStatusAttested, true
	case EventRejected:
		return InvoiceStatusRejected, true
	case EventPaid:
		return InvoiceStatusPaid, true
	default:
		return "", false
	}
}

// InvoiceEvent is an append-only audit record. Rows are never updated or
// deleted; the timestamp-ordered sequence is the authoritative history of an
// invoice, of which Invoice.Status is a projection. No gorm.DeletedAt here.
type InvoiceEvent struct {
	ID        uint64           `gorm:"primarykey" json:"id"`
	InvoiceID uint64           `gorm:"index;not null" json:"invoice_id"`
	EventType InvoiceEventType `gorm:"type:varchar(20);not null" json:"event_type"`
	Comment   string           `gorm:"type:text" json:"comment"`
	Metadata  string           `gorm:"type:text" json:"metadata,omitempty"`
	UserID    *uint64          `json:"user_id"`
	CreatedAt time.Time        `gorm:"index" json:"created_at"`

	// Relations
	Invoice Invoice `gorm:"foreignKey:InvoiceID" json:"-"`
	User    *User   `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
