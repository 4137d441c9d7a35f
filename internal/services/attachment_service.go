package services

import (
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/brfservice/brf-portal-api/internal/access"
	"github.com/brfservice/brf-portal-api/internal/models"
	"github.com/brfservice/brf-portal-api/internal/repository"
	"github.com/brfservice/brf-portal-api/internal/storage"
	"github.com/brfservice/brf-portal-api/internal/utils"
	"gorm.io/gorm"
)

var ErrAttachmentNotFound = errors.New("attachment not found")

// AttachmentService pairs attachment metadata rows with blob contents. The
// metadata row is only created after the blob write succeeds, and the blob is
// removed if the row cannot be written.
type AttachmentService struct {
	invoiceRepo repository.InvoiceRepository
	store       storage.BlobStore
}

// NewAttachmentService creates a new AttachmentService
func NewAttachmentService(invoiceRepo repository.InvoiceRepository, store storage.BlobStore) *AttachmentService {
	return &AttachmentService{
		invoiceRepo: invoiceRepo,
		store:       store,
	}
}

// Upload stores the file contents and records the attachment on the invoice.
func (s *AttachmentService) Upload(invoiceID uint64, actor access.Identity, fileName, fileType string, r io.Reader) (*models.InvoiceAttachment, error) {
	invoice, err := s.scopedInvoice(invoiceID, actor)
	if err != nil {
		return nil, err
	}

	key := utils.NewStorageKey()
	size, err := s.store.Save(key, r)
	if err != nil {
		return nil, fmt.Errorf("failed to store attachment: %w", err)
	}

	actorID := actor.UserID
	attachment := &models.InvoiceAttachment{
		InvoiceID:  invoice.ID,
		FileName:   fileName,
		StorageKey: key,
		FileSize:   size,
		FileType:   fileType,
		UploadedBy: &actorID,
	}

	if err := s.invoiceRepo.CreateAttachment(attachment); err != nil {
		if cleanupErr := s.store.Delete(key); cleanupErr != nil {
			log.Printf("Failed to remove orphaned attachment blob %s: %v", key, cleanupErr)
		}
		return nil, fmt.Errorf("failed to record attachment: %w", err)
	}

	return attachment, nil
}

// List returns an invoice's attachments, oldest first.
func (s *AttachmentService) List(invoiceID uint64, actor access.Identity) ([]models.InvoiceAttachment, error) {
	invoice, err := s.scopedInvoice(invoiceID, actor)
	if err != nil {
		return nil, err
	}

	attachments, err := s.invoiceRepo.ListAttachments(invoice.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attachments: %w", err)
	}
	return attachments, nil
}

// Open returns the attachment metadata and a reader over its contents. The
// caller closes the reader.
func (s *AttachmentService) Open(attachmentID uint64, actor access.Identity) (*models.InvoiceAttachment, io.ReadCloser, error) {
	attachment, err := s.scopedAttachment(attachmentID, actor)
	if err != nil {
		return nil, nil, err
	}

	rc, err := s.store.Open(attachment.StorageKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open attachment: %w", err)
	}

	return attachment, rc, nil
}

// Delete removes the attachment row and its blob.
func (s *AttachmentService) Delete(attachmentID uint64, actor access.Identity) error {
	attachment, err := s.scopedAttachment(attachmentID, actor)
	if err != nil {
		return err
	}

	if err := s.invoiceRepo.DeleteAttachment(attachment.ID); err != nil {
		return fmt.Errorf("failed to delete attachment: %w", err)
	}
	if err := s.store.Delete(attachment.StorageKey); err != nil {
		return fmt.Errorf("failed to delete attachment blob: %w", err)
	}

	return nil
}

func (s *AttachmentService) scopedInvoice(invoiceID uint64, actor access.Identity) (*models.Invoice, error) {
	invoice, err := s.invoiceRepo.FindByID(invoiceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("failed to find invoice: %w", err)
	}

	if access.Can(actor.Roles, access.CapCrossOrganization) {
		return invoice, nil
	}
	if actor.OrganizationID == nil || invoice.OrganizationID != *actor.OrganizationID {
		return nil, ErrInvoiceNotFound
	}

	return invoice, nil
}

func (s *AttachmentService) scopedAttachment(attachmentID uint64, actor access.Identity) (*models.InvoiceAttachment, error) {
	attachment, err := s.invoiceRepo.FindAttachment(attachmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAttachmentNotFound
		}
		return nil, fmt.Errorf("failed to find attachment: %w", err)
	}

	if _, err := s.scopedInvoice(attachment.InvoiceID, actor); err != nil {
		return nil, ErrAttachmentNotFound
	}

	return attachment, nil
}
