package dto

import (
	"time"

	"github.com/brfservice/brf-portal-api/internal/models"
)

// InvitationDTO represents an invitation in admin API responses. The token is
// only included in the creation response, never in listings.
type InvitationDTO struct {
	ID             uint64      `json:"id"`
	Email          string      `json:"email"`
	OrganizationID uint64      `json:"organization_id"`
	Role           models.Role `json:"role"`
	Token          string      `json:"token,omitempty"`
	ExpiresAt      time.Time   `json:"expires_at"`
	AcceptedAt     *time.Time  `json:"accepted_at"`
	CreatedAt      time.Time   `json:"created_at"`
}

// InvitationPreviewDTO is the public view of an invitation shown on the
// acceptance page before registration.
type InvitationPreviewDTO struct {
	Email            string      `json:"email"`
	OrganizationName string      `json:"organization_name"`
	Role             models.Role `json:"role"`
	ExpiresAt        time.Time   `json:"expires_at"`
}

// ToInvitationDTO converts an Invitation model to InvitationDTO
func ToInvitationDTO(invitation models.Invitation, includeToken bool) InvitationDTO {
	dto := InvitationDTO{
		ID:             invitation.ID,
		Email:          invitation.Email,
		OrganizationID: invitation.OrganizationID,
		Role:           invitation.Role,
		ExpiresAt:      invitation.ExpiresAt,
		AcceptedAt:     invitation.AcceptedAt,
		CreatedAt:      invitation.CreatedAt,
	}
	if includeToken {
		dto.Token = invitation.Token
	}
	return dto
}

// ToInvitationDTOs converts a slice of invitations to InvitationDTOs
func ToInvitationDTOs(invitations []models.Invitation) []InvitationDTO {
	dtos := make([]InvitationDTO, len(invitations))
	for i, invitation := range invitations {
		dtos[i] = ToInvitationDTO(invitation, false)
	}
	return dtos
}

// ToInvitationPreviewDTO converts an invitation with preloaded organization
// to its public acceptance-page view.
func ToInvitationPreviewDTO(invitation models.Invitation) InvitationPreviewDTO {
	return InvitationPreviewDTO{
		Email:            invitation.Email,
		OrganizationName: invitation.Organization.Name,
		Role:             invitation.Role,
		ExpiresAt:        invitation.ExpiresAt,
	}
}
