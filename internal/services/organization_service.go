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
	ErrOrganizationNotFound = errors.New("organization not found")
	ErrOrgNameRequired      = errors.New("organization name is required")
)

// OrganizationService handles organization settings and membership views.
type OrganizationService struct {
	orgRepo repository.OrganizationRepository
}

// NewOrganizationService creates a new OrganizationService
func NewOrganizationService(orgRepo repository.OrganizationRepository) *OrganizationService {
	return &OrganizationService{
		orgRepo: orgRepo,
	}
}

// Get returns an organization by ID.
func (s *OrganizationService) Get(id uint64) (*models.Organization, error) {
	org, err := s.orgRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("failed to find organization: %w", err)
	}
	return org, nil
}

// UpdateOrganizationInput holds the mutable organization settings.
type UpdateOrganizationInput struct {
	Name         string
	OrgNumber    string
	Address      string
	PostalCode   string
	City         string
	ContactEmail string
	ContactPhone string
}

// Create provisions a new organization. Reserved for cross-organization
// admins; members always join an existing organization via invitation.
func (s *OrganizationService) Create(input UpdateOrganizationInput) (*models.Organization, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrOrgNameRequired
	}

	org := &models.Organization{
		Name:         name,
		OrgNumber:    strings.TrimSpace(input.OrgNumber),
		Address:      strings.TrimSpace(input.Address),
		PostalCode:   strings.TrimSpace(input.PostalCode),
		City:         strings.TrimSpace(input.City),
		ContactEmail: strings.TrimSpace(input.ContactEmail),
		ContactPhone: strings.TrimSpace(input.ContactPhone),
	}

	if err := s.orgRepo.Create(org); err != nil {
		return nil, fmt.Errorf("failed to create organization: %w", err)
	}

	return org, nil
}

// Update replaces the organization's settings.
func (s *OrganizationService) Update(id uint64, input UpdateOrganizationInput) (*models.Organization, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrOrgNameRequired
	}

	org, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	org.Name = name
	org.OrgNumber = strings.TrimSpace(input.OrgNumber)
	org.Address = strings.TrimSpace(input.Address)
	org.PostalCode = strings.TrimSpace(input.PostalCode)
	org.City = strings.TrimSpace(input.City)
	org.ContactEmail = strings.TrimSpace(input.ContactEmail)
	org.ContactPhone = strings.TrimSpace(input.ContactPhone)

	if err := s.orgRepo.Update(org); err != nil {
		return nil, fmt.Errorf("failed to update organization: %w", err)
	}

	return org, nil
}

// ListMembers lists the member profiles of an organization.
func (s *OrganizationService) ListMembers(organizationID uint64) ([]models.UserProfile, error) {
	profiles, err := s.orgRepo.ListProfiles(organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	return profiles, nil
}

// ListAll lists every organization, for cross-organization admin views.
func (s *OrganizationService) ListAll() ([]models.Organization, error) {
	orgs, err := s.orgRepo.ListAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list organizations: %w", err)
	}
	return orgs, nil
}
