package models

import "time"

// InvoiceLine is the accounting annotation for an invoice. The portal keeps a
// single line per invoice, upserted in place; edits do not touch the event log
// or the invoice status.
type InvoiceLine struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	InvoiceID   uint64    `gorm:"index;not null" json:"invoice_id"`
	AccountCode string    `gorm:"type:varchar(20)" json:"account_code"`
	CostCenter  string    `gorm:"type:varchar(50)" json:"cost_center"`
	Project     string    `gorm:"type:varchar(100)" json:"project"`
	VATCode     string    `gorm:"type:varchar(20)" json:"vat_code"`
	Amount      float64   `gorm:"not null" json:"amount"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
