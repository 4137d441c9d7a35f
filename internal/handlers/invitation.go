package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/brfservice/brf-portal-api/internal/constants"
	"github.com/brfservice/brf-portal-api/internal/dto"
	apierrors "github.com/brfservice/brf-portal-api/internal/errors"
	"github.com/brfservice/brf-portal-api/internal/middleware"
	"github.com/brfservice/brf-portal-api/internal/models"
	"github.com/brfservice/brf-portal-api/internal/services"
)

// InvitationHandler coordinates invitation-related HTTP handlers. Create and
// List are admin operations; Validate and Accept are public, keyed by the
// single-use token.
type InvitationHandler struct {
	invitationService *services.InvitationService
}

// NewInvitationHandler creates a new InvitationHandler.
func NewInvitationHandler(invitationService *services.InvitationService) *InvitationHandler {
	return &InvitationHandler{
		invitationService: invitationService,
	}
}

// Create issues an invitation to join the caller's organization.
func (h *InvitationHandler) Create(c *gin.Context) {
	identity, exists := middleware.GetIdentity(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}
	if identity.OrganizationID == nil {
		apierrors.Forbidden(c, "No organization assigned")
		return
	}

	type CreateInvitationRequest struct {
		Email string      `json:"email" binding:"required"`
		Role  models.Role `json:"role" binding:"required"`
	}

	var req CreateInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	invitation, err := h.invitationService.Create(services.CreateInvitationInput{
		Email:          req.Email,
		OrganizationID: *identity.OrganizationID,
		Role:           req.Role,
		InvitedBy:      identity.UserID,
	})
	if err != nil {
		respondInvitationError(c, err)
		return
	}

	// The token is returned once, here, so the admin can hand out the link.
	c.JSON(http.StatusCreated, dto.ToInvitationDTO(*invitation, true))
}

// List returns the caller's organization's invitations, tokens omitted.
func (h *InvitationHandler) List(c *gin.Context) {
	identity, exists := middleware.GetIdentity(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}
	if identity.OrganizationID == nil {
		apierrors.Forbidden(c, "No organization assigned")
		return
	}

	invitations, err := h.invitationService.ListForOrganization(*identity.OrganizationID)
	if err != nil {
		respondInvitationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"invitations": dto.ToInvitationDTOs(invitations),
	})
}

// Validate checks a token and returns the acceptance-page preview. Public.
func (h *InvitationHandler) Validate(c *gin.Context) {
	invitation, err := h.invitationService.Validate(c.Param("token"))
	if err != nil {
		respondInvitationError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToInvitationPreviewDTO(*invitation))
}

// Accept consumes a token, registers the account and logs the new user in.
// Public.
func (h *InvitationHandler) Accept(c *gin.Context) {
	type AcceptInvitationRequest struct {
		FirstName string `json:"first_name" binding:"required,max=100"`
		LastName  string `json:"last_name" binding:"required,max=100"`
		Password  string `json:"password" binding:"required"`
	}

	var req AcceptInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.invitationService.Accept(services.AcceptInvitationInput{
		Token:     c.Param("token"),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
	})
	if err != nil {
		respondInvitationError(c, err)
		return
	}

	session := sessions.Default(c)
	session.Set(constants.ContextKeyUserID, user.ID)
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to save session")
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserDTO(*user))
}

func respondInvitationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidInvitation):
		apierrors.InvalidInvitation(c)
	case errors.Is(err, services.ErrInvalidEmail),
		errors.Is(err, services.ErrInvalidRole),
		errors.Is(err, services.ErrNameRequired):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrPasswordTooShort):
		apierrors.BadRequest(c, fmt.Sprintf("Password must be at least %d characters", constants.MinPasswordLength))
	case errors.Is(err, services.ErrEmailTaken):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrFailedToCreateUser):
		apierrors.InternalError(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
