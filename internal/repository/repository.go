package repository

import (
	"github.com/brfservice/brf-portal-api/internal/models"
)

// UserRepository defines the interface for principal, profile, role and
// password-reset data access.
type UserRepository interface {
	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// UpdatePasswordHash replaces the stored password hash
	UpdatePasswordHash(userID uint64, hash string) error

	// FindProfileByUserID finds the profile for a principal
	FindProfileByUserID(userID uint64) (*models.UserProfile, error)

	// UpdateProfile updates a profile
	UpdateProfile(profile *models.UserProfile) error

	// ListRolesByUserID lists all role assignments for a principal
	ListRolesByUserID(userID uint64) ([]models.UserRole, error)

	// CreatePasswordReset stores a reset token
	CreatePasswordReset(reset *models.PasswordReset) error

	// FindPasswordResetByToken finds a reset token
	FindPasswordResetByToken(token string) (*models.PasswordReset, error)

	// ConsumePasswordReset marks the token used and replaces the user's
	// password hash within a single transaction.
	ConsumePasswordReset(reset *models.PasswordReset, hash string) error
}

// InvitationRepository defines the interface for invitation data access.
type InvitationRepository interface {
	// Create creates a new invitation
	Create(invitation *models.Invitation) error

	// FindByToken finds an invitation by token with its organization preloaded
	FindByToken(token string) (*models.Invitation, error)

	// ListByOrganization lists an organization's invitations, newest first
	ListByOrganization(organizationID uint64) ([]models.Invitation, error)

	// AcceptWithRegistration creates the user, profile and role assignment and
	// marks the invitation accepted within a single transaction. Returns
	// ErrInvitationConsumed if the invitation was accepted concurrently.
	AcceptWithRegistration(invitation *models.Invitation, user *models.User, profile *models.UserProfile, role *models.UserRole) error
}

// InvoiceFilter holds filtering options for listing invoices
type InvoiceFilter struct {
	OrganizationID uint64
	Status         *models.InvoiceStatus
	Search         string
	Page           int
	PageSize       int
}

// InvoiceStats holds per-status invoice counts for one organization.
type InvoiceStats struct {
	New                int64 `json:"new"`
	PendingAttestation int64 `json:"pending_attestation"`
	Attested           int64 `json:"attested"`
	Rejected           int64 `json:"rejected"`
	Paid               int64 `json:"paid"`
}

// InvoiceRepository defines the interface for invoice data access. Every write
// path that touches the status/event pair runs in one transaction: the event
// log is the audit source of truth and status is its projection, so the store
// must never commit one without the other.
type InvoiceRepository interface {
	// CreateWithEvent creates an invoice and its "created" event atomically
	CreateWithEvent(invoice *models.Invoice, event *models.InvoiceEvent) error

	// FindByID finds an invoice by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Invoice, error)

	// List retrieves invoices with filtering and pagination, newest first
	List(filter InvoiceFilter) ([]models.Invoice, int64, error)

	// TransitionWithEvent updates the invoice status and appends the matching
	// event atomically, but only while the stored status is in from. Returns
	// ErrStatusConflict otherwise, without writing anything.
	TransitionWithEvent(invoiceID uint64, from []models.InvoiceStatus, to models.InvoiceStatus, event *models.InvoiceEvent) error

	// AppendEvent appends an annotation event without touching status
	AppendEvent(event *models.InvoiceEvent) error

	// ListEvents lists an invoice's events newest first
	ListEvents(invoiceID uint64) ([]models.InvoiceEvent, error)

	// UpsertLine creates or updates the invoice's single accounting line
	UpsertLine(line *models.InvoiceLine) error

	// Stats counts invoices per status for an organization
	Stats(organizationID uint64) (InvoiceStats, error)

	// ListDueWithin lists unpaid invoices due in the next days days, soonest first
	ListDueWithin(organizationID uint64, days, limit int) ([]models.Invoice, error)

	// CreateAttachment records attachment metadata
	CreateAttachment(attachment *models.InvoiceAttachment) error

	// FindAttachment finds attachment metadata by ID
	FindAttachment(id uint64) (*models.InvoiceAttachment, error)

	// ListAttachments lists an invoice's attachments, oldest first
	ListAttachments(invoiceID uint64) ([]models.InvoiceAttachment, error)

	// DeleteAttachment removes attachment metadata
	DeleteAttachment(id uint64) error
}

// OrganizationRepository defines the interface for organization data access.
type OrganizationRepository interface {
	// Create creates a new organization
	Create(org *models.Organization) error

	// FindByID finds an organization by ID
	FindByID(id uint64) (*models.Organization, error)

	// Update updates an organization
	Update(org *models.Organization) error

	// ListAll lists every organization (cross-organization admin views)
	ListAll() ([]models.Organization, error)

	// ListProfiles lists the member profiles of an organization
	ListProfiles(organizationID uint64) ([]models.UserProfile, error)
}

// VendorRepository defines the interface for vendor data access.
type VendorRepository interface {
	// Create creates a new vendor
	Create(vendor *models.Vendor) error

	// FindByID finds a vendor by ID
	FindByID(id uint64) (*models.Vendor, error)

	// ListByOrganization lists an organization's vendors by name
	ListByOrganization(organizationID uint64) ([]models.Vendor, error)

	// Update updates a vendor
	Update(vendor *models.Vendor) error
}
