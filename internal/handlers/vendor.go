package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/brfservice/brf-portal-api/internal/dto"
	apierrors "github.com/brfservice/brf-portal-api/internal/errors"
	"github.com/brfservice/brf-portal-api/internal/middleware"
	"github.com/brfservice/brf-portal-api/internal/services"
)

// VendorHandler coordinates vendor-related HTTP handlers.
type VendorHandler struct {
	vendorService *services.VendorService
}

// NewVendorHandler creates a new VendorHandler.
func NewVendorHandler(vendorService *services.VendorService) *VendorHandler {
	return &VendorHandler{
		vendorService: vendorService,
	}
}

type vendorRequest struct {
	Name      string `json:"name" binding:"required,max=255"`
	OrgNumber string `json:"org_number" binding:"max=20"`
	Address   string `json:"address" binding:"max=255"`
	Bankgiro  string `json:"bankgiro" binding:"max=20"`
	Plusgiro  string `json:"plusgiro" binding:"max=20"`
	Email     string `json:"email" binding:"max=255"`
	Phone     string `json:"phone" binding:"max=50"`
}

func (r vendorRequest) toInput() services.VendorInput {
	return services.VendorInput{
		Name:      r.Name,
		OrgNumber: r.OrgNumber,
		Address:   r.Address,
		Bankgiro:  r.Bankgiro,
		Plusgiro:  r.Plusgiro,
		Email:     r.Email,
		Phone:     r.Phone,
	}
}

// List returns the caller's organization's vendors.
func (h *VendorHandler) List(c *gin.Context) {
	identity, exists := middleware.GetIdentity(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}
	if identity.OrganizationID == nil {
		apierrors.Forbidden(c, "No organization assigned")
		return
	}

	vendors, err := h.vendorService.List(*identity.OrganizationID)
	if err != nil {
		respondVendorError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"vendors": dto.ToVendorDTOs(vendors),
	})
}

// Create registers a vendor in the caller's organization.
func (h *VendorHandler) Create(c *gin.Context) {
	identity, exists := middleware.GetIdentity(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}
	if identity.OrganizationID == nil {
		apierrors.Forbidden(c, "No organization assigned")
		return
	}

	var req vendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	vendor, err := h.vendorService.Create(*identity.OrganizationID, req.toInput())
	if err != nil {
		respondVendorError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToVendorDTO(*vendor))
}

// Update modifies a vendor in the caller's organization.
func (h *VendorHandler) Update(c *gin.Context) {
	identity, exists := middleware.GetIdentity(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}
	if identity.OrganizationID == nil {
		apierrors.Forbidden(c, "No organization assigned")
		return
	}

	vendorID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid vendor ID")
		return
	}

	var req vendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	vendor, err := h.vendorService.Update(vendorID, *identity.OrganizationID, req.toInput())
	if err != nil {
		respondVendorError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToVendorDTO(*vendor))
}

func respondVendorError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrVendorNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrVendorNameRequired):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
