package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/brfservice/brf-portal-api/internal/models"
	"github.com/brfservice/brf-portal-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrVendorNotFound     = errors.New("vendor not found")
	ErrVendorNameRequired = errors.New("vendor name is required")
)

// VendorService handles organization-scoped vendor management.
type VendorService struct {
	vendorRepo repository.VendorRepository
}

// NewVendorService creates a new VendorService
func NewVendorService(vendorRepo repository.VendorRepository) *VendorService {
	return &VendorService{
		vendorRepo: vendorRepo,
	}
}

// VendorInput holds the vendor attributes for create and update.
type VendorInput struct {
	Name      string
	OrgNumber string
	Address   string
	Bankgiro  string
	Plusgiro  string
	Email     string
	Phone     string
}

// Create creates a vendor in the given organization.
func (s *VendorService) Create(organizationID uint64, input VendorInput) (*models.Vendor, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrVendorNameRequired
	}

	vendor := &models.Vendor{
		OrganizationID: organizationID,
		Name:           name,
		OrgNumber:      strings.TrimSpace(input.OrgNumber),
		Address:        strings.TrimSpace(input.Address),
		Bankgiro:       strings.TrimSpace(input.Bankgiro),
		Plusgiro:       strings.TrimSpace(input.Plusgiro),
		Email:          strings.TrimSpace(input.Email),
		Phone:          strings.TrimSpace(input.Phone),
	}

	if err := s.vendorRepo.Create(vendor); err != nil {
		return nil, fmt.Errorf("failed to create vendor: %w", err)
	}

	return vendor, nil
}

// Update replaces a vendor's attributes, org-scope enforced.
func (s *VendorService) Update(vendorID, organizationID uint64, input VendorInput) (*models.Vendor, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrVendorNameRequired
	}

	vendor, err := s.vendorRepo.FindByID(vendorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVendorNotFound
		}
		return nil, fmt.Errorf("failed to find vendor: %w", err)
	}
	if vendor.OrganizationID != organizationID {
		return nil, ErrVendorNotFound
	}

	vendor.Name = name
	vendor.OrgNumber = strings.TrimSpace(input.OrgNumber)
	vendor.Address = strings.TrimSpace(input.Address)
	vendor.Bankgiro = strings.TrimSpace(input.Bankgiro)
	vendor.Plusgiro = strings.TrimSpace(input.Plusgiro)
	vendor.Email = strings.TrimSpace(input.Email)
	vendor.Phone = strings.TrimSpace(input.Phone)

	if err := s.vendorRepo.Update(vendor); err != nil {
		return nil, fmt.Errorf("failed to update vendor: %w", err)
	}

	return vendor, nil
}

// List lists an organization's vendors.
func (s *VendorService) List(organizationID uint64) ([]models.Vendor, error) {
	vendors, err := s.vendorRepo.ListByOrganization(organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list vendors: %w", err)
	}
	return vendors, nil
}
