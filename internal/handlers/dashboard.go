package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/brfservice/brf-portal-api/internal/dto"
	apierrors "github.com/brfservice/brf-portal-api/internal/errors"
	"github.com/brfservice/brf-portal-api/internal/middleware"
	"github.com/brfservice/brf-portal-api/internal/services"
)

// DashboardHandler serves the portal landing page data.
type DashboardHandler struct {
	invoiceService *services.InvoiceService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(invoiceService *services.InvoiceService) *DashboardHandler {
	return &DashboardHandler{
		invoiceService: invoiceService,
	}
}

// Stats returns per-status invoice counts for the caller's organization.
func (h *DashboardHandler) Stats(c *gin.Context) {
	identity, exists := middleware.GetIdentity(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	stats, err := h.invoiceService.Stats(identity)
	if err != nil {
		respondInvoiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.StatsDTO{
		Total:              stats.New + stats.PendingAttestation + stats.Attested + stats.Rejected + stats.Paid,
		New:                stats.New,
		PendingAttestation: stats.PendingAttestation,
		Attested:           stats.Attested,
		Rejected:           stats.Rejected,
		Paid:               stats.Paid,
	})
}

// Upcoming returns the next unpaid invoices by due date.
func (h *DashboardHandler) Upcoming(c *gin.Context) {
	identity, exists := middleware.GetIdentity(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	invoices, err := h.invoiceService.Upcoming(identity)
	if err != nil {
		respondInvoiceError(c, err)
		return
	}

	items := make([]dto.InvoiceListItemDTO, len(invoices))
	for i, invoice := range invoices {
		items[i] = dto.ToInvoiceListItemDTO(invoice)
	}

	c.JSON(http.StatusOK, gin.H{
		"invoices": items,
	})
}
