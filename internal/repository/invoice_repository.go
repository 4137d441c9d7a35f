package repository

import (
	"errors"
	"fmt"
	"time"

	"github.com/brfservice/brf-portal-api/internal/database"
	"github.com/brfservice/brf-portal-api/internal/models"
	"github.com/brfservice/brf-portal-api/internal/utils"
	"gorm.io/gorm"
)

// GormInvoiceRepository is a GORM implementation of InvoiceRepository
type GormInvoiceRepository struct {
	db *gorm.DB
}

// ErrStatusConflict is returned when a transition's precondition on the
// stored status does not hold. Nothing was written.
var ErrStatusConflict = errors.New("invoice repository: stored status does not permit transition")

// NewInvoiceRepository creates a new InvoiceRepository
func NewInvoiceRepository(db *gorm.DB) InvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

// CreateWithEvent creates an invoice and its "created" event atomically
func (r *GormInvoiceRepository) CreateWithEvent(invoice *models.Invoice, event *models.InvoiceEvent) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(invoice).Error; err != nil {
			return fmt.Errorf("failed to create invoice: %w", err)
		}

		event.InvoiceID = invoice.ID
		if err := tx.Create(event).Error; err != nil {
			return fmt.Errorf("failed to create invoice event: %w", err)
		}

		return nil
	})
}

// FindByID finds an invoice by ID with optional preloading
func (r *GormInvoiceRepository) FindByID(id uint64, preload ...string) (*models.Invoice, error) {
	var invoice models.Invoice
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&invoice, id).Error; err != nil {
		return nil, err
	}

	return &invoice, nil
}

// List retrieves invoices with filtering and pagination, newest first
func (r *GormInvoiceRepository) List(filter InvoiceFilter) ([]models.Invoice, int64, error) {
	var invoices []models.Invoice

	query := r.db.Model(&models.Invoice{}).
		Where("invoices.organization_id = ?", filter.OrganizationID)

	if filter.Status != nil {
		query = query.Where("invoices.status = ?", *filter.Status)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		vendorSubQuery := r.db.Model(&models.Vendor{}).
			Select("1").
			Where("vendors.id = invoices.vendor_id").
			Where("vendors.name LIKE ?", pattern)
		query = query.Where(
			"invoices.invoice_number LIKE ? OR invoices.ocr_number LIKE ? OR invoices.description LIKE ? OR EXISTS (?)",
			pattern, pattern, pattern, vendorSubQuery,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("invoices.created_at DESC")
	if filter.Page > 0 && filter.PageSize > 0 {
		listQuery = listQuery.Scopes(database.Paginate(utils.PaginationParams{
			Page:   filter.Page,
			Limit:  filter.PageSize,
			Offset: (filter.Page - 1) * filter.PageSize,
		}))
	}

	if err := listQuery.Preload("Vendor").Find(&invoices).Error; err != nil {
		return nil, 0, err
	}

	return invoices, total, nil
}

// TransitionWithEvent updates the invoice status and appends the matching
// event atomically. The guarded update makes the status precondition part of
// the write itself: if the stored status is no longer in from, nothing is
// written and ErrStatusConflict is returned.
func (r *GormInvoiceRepository) TransitionWithEvent(invoiceID uint64, from []models.InvoiceStatus, to models.InvoiceStatus, event *models.InvoiceEvent) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Invoice{}).
			Where("id = ? AND status IN ?", invoiceID, from).
			Update("status", to)
		if res.Error != nil {
			return fmt.Errorf("failed to update invoice status: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrStatusConflict
		}

		event.InvoiceID = invoiceID
		if err := tx.Create(event).Error; err != nil {
			return fmt.Errorf("failed to create invoice event: %w", err)
		}

		return nil
	})
}

// AppendEvent appends an annotation event without touching status
func (r *GormInvoiceRepository) AppendEvent(event *models.InvoiceEvent) error {
	return r.db.Create(event).Error
}

// ListEvents lists an invoice's events newest first. Insertion order stays
// recoverable through created_at and id for history reconstruction.
func (r *GormInvoiceRepository) ListEvents(invoiceID uint64) ([]models.InvoiceEvent, error) {
	var events []models.InvoiceEvent
	if err := r.db.Where("invoice_id = ?", invoiceID).
		Order("created_at DESC, id DESC").
		Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

// UpsertLine creates or updates the invoice's single accounting line
func (r *GormInvoiceRepository) UpsertLine(line *models.InvoiceLine) error {
	var existing models.InvoiceLine
	err := r.db.Where("invoice_id = ?", line.InvoiceID).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.Create(line).Error
	}
	if err != nil {
		return err
	}

	line.ID = existing.ID
	line.CreatedAt = existing.CreatedAt
	return r.db.Save(line).Error
}

// Stats counts invoices per status for an organization
func (r *GormInvoiceRepository) Stats(organizationID uint64) (InvoiceStats, error) {
	var rows []struct {
		Status models.InvoiceStatus
		Count  int64
	}

	err := r.db.Model(&models.Invoice{}).
		Select("status, COUNT(*) as count").
		Where("organization_id = ?", organizationID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return InvoiceStats{}, err
	}

	var stats InvoiceStats
	for _, row := range rows {
		switch row.Status {
		case models.InvoiceStatusNew:
			stats.New = row.Count
		case models.InvoiceStatusPendingAttestation:
			stats.PendingAttestation = row.Count
		case models.InvoiceStatusAttested:
			stats.Attested = row.Count
		case models.InvoiceStatusRejected:
			stats.Rejected = row.Count
		case models.InvoiceStatusPaid:
			stats.Paid = row.Count
		}
	}

	return stats, nil
}

// ListDueWithin lists unpaid invoices due in the next days days, soonest first
func (r *GormInvoiceRepository) ListDueWithin(organizationID uint64, days, limit int) ([]models.Invoice, error) {
	now := time.Now()
	until := now.AddDate(0, 0, days)

	var invoices []models.Invoice
	if err := r.db.Preload("Vendor").
		Where("organization_id = ?", organizationID).
		Where("status <> ?", models.InvoiceStatusPaid).
		Where("due_date >= ? AND due_date <= ?", now, until).
		Order("due_date ASC").
		Limit(limit).
		Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

// CreateAttachment records attachment metadata
func (r *GormInvoiceRepository) CreateAttachment(attachment *models.InvoiceAttachment) error {
	return r.db.Create(attachment).Error
}

// FindAttachment finds attachment metadata by ID
func (r *GormInvoiceRepository) FindAttachment(id uint64) (*models.InvoiceAttachment, error) {
	var attachment models.InvoiceAttachment
	if err := r.db.First(&attachment, id).Error; err != nil {
		return nil, err
	}
	return &attachment, nil
}

// ListAttachments lists an invoice's attachments, oldest first
func (r *GormInvoiceRepository) ListAttachments(invoiceID uint64) ([]models.InvoiceAttachment, error) {
	var attachments []models.InvoiceAttachment
	if err := r.db.Where("invoice_id = ?", invoiceID).
		Order("created_at ASC, id ASC").
		Find(&attachments).Error; err != nil {
		return nil, err
	}
	return attachments, nil
}

// DeleteAttachment removes attachment metadata
func (r *GormInvoiceRepository) DeleteAttachment(id uint64) error {
	return r.db.Delete(&models.InvoiceAttachment{}, id).Error
}
