package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/brfservice/brf-portal-api/internal/access"
	"github.com/brfservice/brf-portal-api/internal/dto"
	apierrors "github.com/brfservice/brf-portal-api/internal/errors"
	"github.com/brfservice/brf-portal-api/internal/middleware"
	"github.com/brfservice/brf-portal-api/internal/services"
)

// OrganizationHandler coordinates organization-related HTTP handlers.
type OrganizationHandler struct {
	orgService *services.OrganizationService
}

// NewOrganizationHandler creates a new OrganizationHandler.
func NewOrganizationHandler(orgService *services.OrganizationService) *OrganizationHandler {
	return &OrganizationHandler{
		orgService: orgService,
	}
}

// Get returns the caller's organization.
func (h *OrganizationHandler) Get(c *gin.Context) {
	identity, exists := middleware.GetIdentity(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}
	if identity.OrganizationID == nil {
		apierrors.NotFound(c, "No organization assigned")
		return
	}

	org, err := h.orgService.Get(*identity.OrganizationID)
	if err != nil {
		respondOrganizationError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToOrganizationDTO(*org))
}

// Update modifies the caller's organization settings.
func (h *OrganizationHandler) Update(c *gin.Context) {
	identity, exists := middleware.GetIdentity(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}
	if identity.OrganizationID == nil {
		apierrors.NotFound(c, "No organization assigned")
		return
	}

	type UpdateOrganizationRequest struct {
		Name         string `json:"name" binding:"required,max=255"`
		OrgNumber    string `json:"org_number" binding:"max=20"`
		Address      string `json:"address" binding:"max=255"`
		PostalCode   string `json:"postal_code" binding:"max=10"`
		City         string `json:"city" binding:"max=100"`
		ContactEmail string `json:"contact_email" binding:"max=255"`
		ContactPhone string `json:"contact_phone" binding:"max=50"`
	}

	var req UpdateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	org, err := h.orgService.Update(*identity.OrganizationID, services.UpdateOrganizationInput{
		Name:         req.Name,
		OrgNumber:    req.OrgNumber,
		Address:      req.Address,
		PostalCode:   req.PostalCode,
		City:         req.City,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
	})
	if err != nil {
		respondOrganizationError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToOrganizationDTO(*org))
}

// ListMembers returns the member profiles of the caller's organization.
func (h *OrganizationHandler) ListMembers(c *gin.Context) {
	identity, exists := middleware.GetIdentity(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}
	if identity.OrganizationID == nil {
		apierrors.NotFound(c, "No organization assigned")
		return
	}

	profiles, err := h.orgService.ListMembers(*identity.OrganizationID)
	if err != nil {
		respondOrganizationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"members": dto.ToMemberDTOs(profiles),
	})
}

// Create provisions a new organization. Cross-organization admin view.
func (h *OrganizationHandler) Create(c *gin.Context) {
	type CreateOrganizationRequest struct {
		Name         string `json:"name" binding:"required,max=255"`
		OrgNumber    string `json:"org_number" binding:"max=20"`
		Address      string `json:"address" binding:"max=255"`
		PostalCode   string `json:"postal_code" binding:"max=10"`
		City         string `json:"city" binding:"max=100"`
		ContactEmail string `json:"contact_email" binding:"max=255"`
		ContactPhone string `json:"contact_phone" binding:"max=50"`
	}

	var req CreateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	org, err := h.orgService.Create(services.UpdateOrganizationInput{
		Name:         req.Name,
		OrgNumber:    req.OrgNumber,
		Address:      req.Address,
		PostalCode:   req.PostalCode,
		City:         req.City,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
	})
	if err != nil {
		respondOrganizationError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToOrganizationDTO(*org))
}

// ListAll returns every organization. Cross-organization admin view.
func (h *OrganizationHandler) ListAll(c *gin.Context) {
	orgs, err := h.orgService.ListAll()
	if err != nil {
		respondOrganizationError(c, err)
		return
	}

	orgDTOs := make([]dto.OrganizationDTO, len(orgs))
	for i, org := range orgs {
		orgDTOs[i] = dto.ToOrganizationDTO(org)
	}

	c.JSON(http.StatusOK, gin.H{
		"organizations": orgDTOs,
	})
}

// GetByID returns a specific organization. Cross-organization admin view.
func (h *OrganizationHandler) GetByID(c *gin.Context) {
	identity, exists := middleware.GetIdentity(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}
	if !access.Can(identity.Roles, access.CapCrossOrganization) {
		apierrors.Forbidden(c, "")
		return
	}

	orgID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid organization ID")
		return
	}

	org, err := h.orgService.Get(orgID)
	if err != nil {
		respondOrganizationError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToOrganizationDTO(*org))
}

func respondOrganizationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrOrganizationNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrOrgNameRequired):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
