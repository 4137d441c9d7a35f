package dto

import "github.com/brfservice/brf-portal-api/internal/models"

// OrganizationDTO represents an organization in API responses
type OrganizationDTO struct {
	ID           uint64 `json:"id"`
	Name         string `json:"name"`
	OrgNumber    string `json:"org_number"`
	Address      string `json:"address"`
	PostalCode   string `json:"postal_code"`
	City         string `json:"city"`
	ContactEmail string `json:"contact_email"`
	ContactPhone string `json:"contact_phone"`
}

// MemberDTO represents a member of an organization
type MemberDTO struct {
	UserID    uint64 `json:"user_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// VendorDTO represents a vendor in API responses
type VendorDTO struct {
	ID             uint64 `json:"id"`
	OrganizationID uint64 `json:"organization_id"`
	Name           string `json:"name"`
	OrgNumber      string `json:"org_number"`
	Address        string `json:"address"`
	Bankgiro       string `json:"bankgiro"`
	Plusgiro       string `json:"plusgiro"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
}

// ToOrganizationDTO converts an Organization model to OrganizationDTO
func ToOrganizationDTO(org models.Organization) OrganizationDTO {
	return OrganizationDTO{
		ID:           org.ID,
		Name:         org.Name,
		OrgNumber:    org.OrgNumber,
		Address:      org.Address,
		PostalCode:   org.PostalCode,
		City:         org.City,
		ContactEmail: org.ContactEmail,
		ContactPhone: org.ContactPhone,
	}
}

// ToMemberDTO converts a UserProfile to MemberDTO
func ToMemberDTO(profile models.UserProfile) MemberDTO {
	return MemberDTO{
		UserID:    profile.UserID,
		FirstName: profile.FirstName,
		LastName:  profile.LastName,
		Email:     profile.Email,
		Phone:     profile.Phone,
	}
}

// ToMemberDTOs converts a slice of profiles to MemberDTOs
func ToMemberDTOs(profiles []models.UserProfile) []MemberDTO {
	members := make([]MemberDTO, len(profiles))
	for i, p := range profiles {
		members[i] = ToMemberDTO(p)
	}
	return members
}

// ToVendorDTO converts a Vendor model to VendorDTO
func ToVendorDTO(vendor models.Vendor) VendorDTO {
	return VendorDTO{
		ID:             vendor.ID,
		OrganizationID: vendor.OrganizationID,
		Name:           vendor.Name,
		OrgNumber:      vendor.OrgNumber,
		Address:        vendor.Address,
		Bankgiro:       vendor.Bankgiro,
		Plusgiro:       vendor.Plusgiro,
		Email:          vendor.Email,
		Phone:          vendor.Phone,
	}
}

// ToVendorDTOs converts a slice of vendors to VendorDTOs
func ToVendorDTOs(vendors []models.Vendor) []VendorDTO {
	dtos := make([]VendorDTO, len(vendors))
	for i, v := range vendors {
		dtos[i] = ToVendorDTO(v)
	}
	return dtos
}
