package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/brfservice/brf-portal-api/internal/access"
	"github.com/brfservice/brf-portal-api/internal/constants"
	"github.com/brfservice/brf-portal-api/internal/models"
	"github.com/brfservice/brf-portal-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrInvoiceNotFound    = errors.New("invoice not found")
	ErrInvalidTransition  = errors.New("invoice status does not permit this operation")
	ErrAttestNotPermitted = errors.New("user may not attest this invoice")
	ErrNegativeAmount     = errors.New("amount and VAT amount must be non-negative")
	ErrCommentRequired    = errors.New("comment text is required")
	ErrVendorOrgMismatch  = errors.New("vendor belongs to another organization")
	ErrNoOrganization     = errors.New("user has no organization")
)

// InvoiceService owns the invoice lifecycle: legal transitions, the
// append-only event log and the status projection kept consistent with it.
type InvoiceService struct {
	invoiceRepo repository.InvoiceRepository
	vendorRepo  repository.VendorRepository
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(invoiceRepo repository.InvoiceRepository, vendorRepo repository.VendorRepository) *InvoiceService {
	return &InvoiceService{
		invoiceRepo: invoiceRepo,
		vendorRepo:  vendorRepo,
	}
}

// CreateInvoiceInput represents input for creating an invoice
type CreateInvoiceInput struct {
	OrganizationID uint64
	VendorID       *uint64
	InvoiceNumber  string
	OCRNumber      string
	Amount         float64
	VATAmount      float64
	Currency       string
	InvoiceDate    time.Time
	DueDate        time.Time
	Description    string
	CreatedBy      uint64
}

// AttestInput represents input for an attestation decision
type AttestInput struct {
	InvoiceID uint64
	Actor     access.Identity
	Approve   bool
	Comment   string
}

// AccountingInput represents the upsertable accounting fields
type AccountingInput struct {
	AccountCode string
	CostCenter  string
	Project     string
	VATCode     string
	Description string
}

// Create creates an invoice in status new together with its created event.
func (s *InvoiceService) Create(input CreateInvoiceInput) (*models.Invoice, error) {
	if input.Amount < 0 || input.VATAmount < 0 {
		return nil, ErrNegativeAmount
	}

	if input.VendorID != nil {
		vendor, err := s.vendorRepo.FindByID(*input.VendorID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrVendorOrgMismatch
			}
			return nil, fmt.Errorf("failed to verify vendor: %w", err)
		}
		if vendor.OrganizationID != input.OrganizationID {
			return nil, ErrVendorOrgMismatch
		}
	}

	currency := strings.ToUpper(strings.TrimSpace(input.Currency))
	if currency == "" {
		currency = constants.DefaultCurrency
	}

	creator := input.CreatedBy
	invoice := &models.Invoice{
		OrganizationID: input.OrganizationID,
		VendorID:       input.VendorID,
		InvoiceNumber:  strings.TrimSpace(input.InvoiceNumber),
		OCRNumber:      strings.TrimSpace(input.OCRNumber),
		Amount:         input.Amount,
		VATAmount:      input.VATAmount,
		Currency:       currency,
		InvoiceDate:    input.InvoiceDate,
		DueDate:        input.DueDate,
		Description:    input.Description,
		Status:         models.InvoiceStatusNew,
		CreatedBy:      &creator,
	}

	event := &models.InvoiceEvent{
		EventType: models.EventCreated,
		UserID:    &creator,
	}

	if err := s.invoiceRepo.CreateWithEvent(invoice, event); err != nil {
		return nil, fmt.Errorf("failed to create invoice: %w", err)
	}

	return invoice, nil
}

// Attest approves or rejects an invoice. Precondition: the actor holds the
// attest capability and the invoice is in an attestable state, checked against
// the same state the transition is guarded on, so a terminal invoice is
// rejected before, and instead of, any write.
func (s *InvoiceService) Attest(input AttestInput) (*models.Invoice, error) {
	invoice, err := s.getScoped(input.InvoiceID, input.Actor)
	if err != nil {
		return nil, err
	}

	if !access.Can(input.Actor.Roles, access.CapAttestInvoice) {
		return nil, ErrAttestNotPermitted
	}
	if !invoice.Status.Attestable() {
		return nil, ErrInvalidTransition
	}

	target := models.InvoiceStatusAttested
	eventType := models.EventAttested
	if !input.Approve {
		target = models.InvoiceStatusRejected
		eventType = models.EventRejected
	}

	actorID := input.Actor.UserID
	event := &models.InvoiceEvent{
		EventType: eventType,
		Comment:   input.Comment,
		UserID:    &actorID,
	}

	err = s.invoiceRepo.TransitionWithEvent(
		invoice.ID,
		[]models.InvoiceStatus{models.InvoiceStatusNew, models.InvoiceStatusPendingAttestation},
		target,
		event,
	)
	if err != nil {
		if errors.Is(err, repository.ErrStatusConflict) {
			return nil, ErrInvalidTransition
		}
		return nil, fmt.Errorf("failed to attest invoice: %w", err)
	}

	invoice.Status = target
	return invoice, nil
}

// SendForAttestation moves a new invoice to pending_attestation with a sent
// event. Attestability is unchanged: both states accept attest decisions.
func (s *InvoiceService) SendForAttestation(invoiceID uint64, actor access.Identity) (*models.Invoice, error) {
	invoice, err := s.getScoped(invoiceID, actor)
	if err != nil {
		return nil, err
	}

	if invoice.Status != models.InvoiceStatusNew {
		return nil, ErrInvalidTransition
	}

	actorID := actor.UserID
	event := &models.InvoiceEvent{
		EventType: models.EventSent,
		UserID:    &actorID,
	}

	err = s.invoiceRepo.TransitionWithEvent(
		invoice.ID,
		[]models.InvoiceStatus{models.InvoiceStatusNew},
		models.InvoiceStatusPendingAttestation,
		event,
	)
	if err != nil {
		if errors.Is(err, repository.ErrStatusConflict) {
			return nil, ErrInvalidTransition
		}
		return nil, fmt.Errorf("failed to send invoice for attestation: %w", err)
	}

	invoice.Status = models.InvoiceStatusPendingAttestation
	return invoice, nil
}

// MarkPaid moves an attested invoice to paid with a paid event. Paid is
// terminal; the engine exposes no transition out of it.
func (s *InvoiceService) MarkPaid(invoiceID uint64, actor access.Identity) (*models.Invoice, error) {
	invoice, err := s.getScoped(invoiceID, actor)
	if err != nil {
		return nil, err
	}

	if invoice.Status != models.InvoiceStatusAttested {
		return nil, ErrInvalidTransition
	}

	actorID := actor.UserID
	event := &models.InvoiceEvent{
		EventType: models.EventPaid,
		UserID:    &actorID,
	}

	err = s.invoiceRepo.TransitionWithEvent(
		invoice.ID,
		[]models.InvoiceStatus{models.InvoiceStatusAttested},
		models.InvoiceStatusPaid,
		event,
	)
	if err != nil {
		if errors.Is(err, repository.ErrStatusConflict) {
			return nil, ErrInvalidTransition
		}
		return nil, fmt.Errorf("failed to mark invoice paid: %w", err)
	}

	invoice.Status = models.InvoiceStatusPaid
	return invoice, nil
}

// AppendComment appends a comment event. Pure audit annotation: no status
// effect, allowed in any state.
func (s *InvoiceService) AppendComment(invoiceID uint64, actor access.Identity, text string) (*models.InvoiceEvent, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrCommentRequired
	}

	invoice, err := s.getScoped(invoiceID, actor)
	if err != nil {
		return nil, err
	}

	actorID := actor.UserID
	event := &models.InvoiceEvent{
		InvoiceID: invoice.ID,
		EventType: models.EventComment,
		Comment:   text,
		UserID:    &actorID,
	}

	if err := s.invoiceRepo.AppendEvent(event); err != nil {
		return nil, fmt.Errorf("failed to append comment: %w", err)
	}

	return event, nil
}

// RecordAccounting upserts the invoice's single accounting line. Deliberately
// appends no event and never touches status.
func (s *InvoiceService) RecordAccounting(invoiceID uint64, actor access.Identity, input AccountingInput) (*models.InvoiceLine, error) {
	invoice, err := s.getScoped(invoiceID, actor)
	if err != nil {
		return nil, err
	}

	line := &models.InvoiceLine{
		InvoiceID:   invoice.ID,
		AccountCode: strings.TrimSpace(input.AccountCode),
		CostCenter:  strings.TrimSpace(input.CostCenter),
		Project:     strings.TrimSpace(input.Project),
		VATCode:     strings.TrimSpace(input.VATCode),
		Amount:      invoice.Amount,
		Description: input.Description,
	}

	if err := s.invoiceRepo.UpsertLine(line); err != nil {
		return nil, fmt.Errorf("failed to save accounting line: %w", err)
	}

	return line, nil
}

// ListInvoicesInput represents filters for listing invoices
type ListInvoicesInput struct {
	Actor    access.Identity
	Status   *models.InvoiceStatus
	Search   string
	Page     int
	PageSize int
}

// List returns the actor's organization's invoices, newest first.
func (s *InvoiceService) List(input ListInvoicesInput) ([]models.Invoice, int64, error) {
	if input.Actor.OrganizationID == nil {
		return []models.Invoice{}, 0, nil
	}

	filter := repository.InvoiceFilter{
		OrganizationID: *input.Actor.OrganizationID,
		Status:         input.Status,
		Search:         strings.TrimSpace(input.Search),
		Page:           input.Page,
		PageSize:       input.PageSize,
	}

	invoices, total, err := s.invoiceRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list invoices: %w", err)
	}

	return invoices, total, nil
}

// Get returns an invoice with vendor, lines, events (newest first) and
// attachments, org-scope enforced.
func (s *InvoiceService) Get(invoiceID uint64, actor access.Identity) (*models.Invoice, error) {
	invoice, err := s.getScoped(invoiceID, actor, "Vendor", "Lines", "Attachments")
	if err != nil {
		return nil, err
	}

	events, err := s.invoiceRepo.ListEvents(invoice.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load invoice events: %w", err)
	}
	invoice.Events = events

	return invoice, nil
}

// Stats counts the organization's invoices per status.
func (s *InvoiceService) Stats(actor access.Identity) (repository.InvoiceStats, error) {
	if actor.OrganizationID == nil {
		return repository.InvoiceStats{}, ErrNoOrganization
	}

	stats, err := s.invoiceRepo.Stats(*actor.OrganizationID)
	if err != nil {
		return repository.InvoiceStats{}, fmt.Errorf("failed to load invoice stats: %w", err)
	}
	return stats, nil
}

// Upcoming lists unpaid invoices due within the dashboard window.
func (s *InvoiceService) Upcoming(actor access.Identity) ([]models.Invoice, error) {
	if actor.OrganizationID == nil {
		return nil, ErrNoOrganization
	}

	invoices, err := s.invoiceRepo.ListDueWithin(*actor.OrganizationID, constants.UpcomingDueWindowDays, constants.UpcomingDueLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load upcoming invoices: %w", err)
	}
	return invoices, nil
}

// getScoped loads an invoice and verifies it belongs to the actor's
// organization. Superadmins see across organizations; everyone else gets
// not-found for foreign invoices, matching the store-level isolation.
func (s *InvoiceService) getScoped(invoiceID uint64, actor access.Identity, preload ...string) (*models.Invoice, error) {
	invoice, err := s.invoiceRepo.FindByID(invoiceID, preload...)
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
