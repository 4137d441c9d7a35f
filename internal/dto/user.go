package dto

import (
	"github.com/brfservice/brf-portal-api/internal/access"
	"github.com/brfservice/brf-portal-api/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID    uint64 `json:"id"`
	Email string `json:"email"`
}

// ProfileDTO represents the portal-facing profile of a user
type ProfileDTO struct {
	ID             uint64  `json:"id"`
	UserID         uint64  `json:"user_id"`
	OrganizationID *uint64 `json:"organization_id"`
	FirstName      string  `json:"first_name"`
	LastName       string  `json:"last_name"`
	Email          string  `json:"email"`
	Phone          string  `json:"phone"`
}

// MeDTO is the session bootstrap payload: who the caller is, which
// organization they belong to and which roles they hold. Unprovisioned users
// get a null organization and an empty role list.
type MeDTO struct {
	User         UserDTO          `json:"user"`
	Profile      *ProfileDTO      `json:"profile"`
	Organization *OrganizationDTO `json:"organization,omitempty"`
	Roles        []models.Role    `json:"roles"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:    user.ID,
		Email: user.Email,
	}
}

// ToProfileDTO converts a UserProfile model to ProfileDTO
func ToProfileDTO(profile models.UserProfile) ProfileDTO {
	return ProfileDTO{
		ID:             profile.ID,
		UserID:         profile.UserID,
		OrganizationID: profile.OrganizationID,
		FirstName:      profile.FirstName,
		LastName:       profile.LastName,
		Email:          profile.Email,
		Phone:          profile.Phone,
	}
}

// ToMeDTO assembles the session bootstrap payload.
func ToMeDTO(user models.User, profile *models.UserProfile, org *models.Organization, identity access.Identity) MeDTO {
	me := MeDTO{
		User:  ToUserDTO(user),
		Roles: identity.Roles.Roles(),
	}
	if me.Roles == nil {
		me.Roles = []models.Role{}
	}
	if profile != nil {
		p := ToProfileDTO(*profile)
		me.Profile = &p
	}
	if org != nil {
		o := ToOrganizationDTO(*org)
		me.Organization = &o
	}
	return me
}
