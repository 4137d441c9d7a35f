package dto

import (
	"time"

	"github.com/brfservice/brf-portal-api/internal/models"
)

// InvoiceEventDTO represents one audit log entry in API responses
type InvoiceEventDTO struct {
	ID        uint64                  `json:"id"`
	InvoiceID uint64                  `json:"invoice_id"`
	EventType models.InvoiceEventType `json:"event_type"`
	Comment   string                  `json:"comment,omitempty"`
	UserID    *uint64                 `json:"user_id"`
	User      *UserDTO                `json:"user,omitempty"`
	CreatedAt time.Time               `json:"created_at"`
}

// InvoiceLineDTO represents the accounting annotation of an invoice
type InvoiceLineDTO struct {
	ID          uint64  `json:"id"`
	InvoiceID   uint64  `json:"invoice_id"`
	AccountCode string  `json:"account_code"`
	CostCenter  string  `json:"cost_center"`
	Project     string  `json:"project"`
	VATCode     string  `json:"vat_code"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
}

// AttachmentDTO represents an invoice attachment in API responses
type AttachmentDTO struct {
	ID        uint64    `json:"id"`
	InvoiceID uint64    `json:"invoice_id"`
	FileName  string    `json:"file_name"`
	FileSize  int64     `json:"file_size"`
	FileType  string    `json:"file_type"`
	CreatedAt time.Time `json:"created_at"`
}

// InvoiceDTO represents an invoice with its relations in API responses
type InvoiceDTO struct {
	ID             uint64               `json:"id"`
	OrganizationID uint64               `json:"organization_id"`
	VendorID       *uint64              `json:"vendor_id"`
	InvoiceNumber  string               `json:"invoice_number"`
	OCRNumber      string               `json:"ocr_number"`
	Amount         float64              `json:"amount"`
	VATAmount      float64              `json:"vat_amount"`
	Currency       string               `json:"currency"`
	InvoiceDate    time.Time            `json:"invoice_date"`
	DueDate        time.Time            `json:"due_date"`
	Description    string               `json:"description"`
	Status         models.InvoiceStatus `json:"status"`
	CreatedAt      time.Time            `json:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at"`
	Vendor         *VendorDTO           `json:"vendor,omitempty"`
	Lines          []InvoiceLineDTO     `json:"lines,omitempty"`
	Events         []InvoiceEventDTO    `json:"events,omitempty"`
	Attachments    []AttachmentDTO      `json:"attachments,omitempty"`
}

// InvoiceListItemDTO represents an invoice in list responses (minimal data)
type InvoiceListItemDTO struct {
	ID            uint64               `json:"id"`
	InvoiceNumber string               `json:"invoice_number"`
	Amount        float64              `json:"amount"`
	Currency      string               `json:"currency"`
	DueDate       time.Time            `json:"due_date"`
	Status        models.InvoiceStatus `json:"status"`
	VendorName    string               `json:"vendor_name,omitempty"`
	CreatedAt     time.Time            `json:"created_at"`
}

// InvoiceListResponse represents a paginated list of invoices
type InvoiceListResponse struct {
	Invoices   []InvoiceListItemDTO `json:"invoices"`
	Page       int                  `json:"page"`
	PageSize   int                  `json:"page_size"`
	TotalCount int64                `json:"total_count"`
	TotalPages int                  `json:"total_pages"`
}

// StatsDTO represents the per-status invoice counts for the dashboard
type StatsDTO struct {
	Total              int64 `json:"total"`
	New                int64 `json:"new"`
	PendingAttestation int64 `json:"pending_attestation"`
	Attested           int64 `json:"attested"`
	Rejected           int64 `json:"rejected"`
	Paid               int64 `json:"paid"`
}

// ToInvoiceEventDTO converts an InvoiceEvent model to InvoiceEventDTO
func ToInvoiceEventDTO(event models.InvoiceEvent) InvoiceEventDTO {
	dto := InvoiceEventDTO{
		ID:        event.ID,
		InvoiceID: event.InvoiceID,
		EventType: event.EventType,
		Comment:   event.Comment,
		UserID:    event.UserID,
		CreatedAt: event.CreatedAt,
	}
	if event.User != nil && event.User.ID != 0 {
		user := ToUserDTO(*event.User)
		dto.User = &user
	}
	return dto
}

// ToInvoiceLineDTO converts an InvoiceLine model to InvoiceLineDTO
func ToInvoiceLineDTO(line models.InvoiceLine) InvoiceLineDTO {
	return InvoiceLineDTO{
		ID:          line.ID,
		InvoiceID:   line.InvoiceID,
		AccountCode: line.AccountCode,
		CostCenter:  line.CostCenter,
		Project:     line.Project,
		VATCode:     line.VATCode,
		Amount:      line.Amount,
		Description: line.Description,
	}
}

// ToAttachmentDTO converts an InvoiceAttachment model to AttachmentDTO
func ToAttachmentDTO(attachment models.InvoiceAttachment) AttachmentDTO {
	return AttachmentDTO{
		ID:        attachment.ID,
		InvoiceID: attachment.InvoiceID,
		FileName:  attachment.FileName,
		FileSize:  attachment.FileSize,
		FileType:  attachment.FileType,
		CreatedAt: attachment.CreatedAt,
	}
}

// ToInvoiceDTO converts an Invoice model to InvoiceDTO, including whichever
// relations were preloaded.
func ToInvoiceDTO(invoice models.Invoice) InvoiceDTO {
	dto := InvoiceDTO{
		ID:             invoice.ID,
		OrganizationID: invoice.OrganizationID,
		VendorID:       invoice.VendorID,
		InvoiceNumber:  invoice.InvoiceNumber,
		OCRNumber:      invoice.OCRNumber,
		Amount:         invoice.Amount,
		VATAmount:      invoice.VATAmount,
		Currency:       invoice.Currency,
		InvoiceDate:    invoice.InvoiceDate,
		DueDate:        invoice.DueDate,
		Description:    invoice.Description,
		Status:         invoice.Status,
		CreatedAt:      invoice.CreatedAt,
		UpdatedAt:      invoice.UpdatedAt,
	}

	if invoice.Vendor != nil && invoice.Vendor.ID != 0 {
		vendor := ToVendorDTO(*invoice.Vendor)
		dto.Vendor = &vendor
	}

	if len(invoice.Lines) > 0 {
		dto.Lines = make([]InvoiceLineDTO, len(invoice.Lines))
		for i, line := range invoice.Lines {
			dto.Lines[i] = ToInvoiceLineDTO(line)
		}
	}

	if len(invoice.Events) > 0 {
		dto.Events = make([]InvoiceEventDTO, len(invoice.Events))
		for i, event := range invoice.Events {
			dto.Events[i] = ToInvoiceEventDTO(event)
		}
	}

	if len(invoice.Attachments) > 0 {
		dto.Attachments = make([]AttachmentDTO, len(invoice.Attachments))
		for i, attachment := range invoice.Attachments {
			dto.Attachments[i] = ToAttachmentDTO(attachment)
		}
	}

	return dto
}

// ToInvoiceListItemDTO converts an Invoice model to InvoiceListItemDTO
func ToInvoiceListItemDTO(invoice models.Invoice) InvoiceListItemDTO {
	dto := InvoiceListItemDTO{
		ID:            invoice.ID,
		InvoiceNumber: invoice.InvoiceNumber,
		Amount:        invoice.Amount,
		Currency:      invoice.Currency,
		DueDate:       invoice.DueDate,
		Status:        invoice.Status,
		CreatedAt:     invoice.CreatedAt,
	}
	if invoice.Vendor != nil {
		dto.VendorName = invoice.Vendor.Name
	}
	return dto
}

// ToInvoiceListResponse converts a slice of invoices to InvoiceListResponse
func ToInvoiceListResponse(invoices []models.Invoice, page, pageSize int, totalCount int64) InvoiceListResponse {
	items := make([]InvoiceListItemDTO, len(invoices))
	for i, invoice := range invoices {
		items[i] = ToInvoiceListItemDTO(invoice)
	}

	totalPages := int(totalCount) / pageSize
	if int(totalCount)%pageSize > 0 {
		totalPages++
	}

	return InvoiceListResponse{
		Invoices:   items,
		Page:       page,
		PageSize:   pageSize,
		TotalCount: totalCount,
		TotalPages: totalPages,
	}
}
