package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/brfservice/brf-portal-api/internal/access"
	"github.com/brfservice/brf-portal-api/internal/dto"
	apierrors "github.com/brfservice/brf-portal-api/internal/errors"
	"github.com/brfservice/brf-portal-api/internal/middleware"
	"github.com/brfservice/brf-portal-api/internal/models"
	"github.com/brfservice/brf-portal-api/internal/services"
	"github.com/brfservice/brf-portal-api/internal/utils"
)

const dateLayout = "2006-01-02"

// InvoiceHandler coordinates invoice-related HTTP handlers.
type InvoiceHandler struct {
	invoiceService    *services.InvoiceService
	attachmentService *services.AttachmentService
}

// NewInvoiceHandler creates a new InvoiceHandler.
func NewInvoiceHandler(invoiceService *services.InvoiceService, attachmentService *services.AttachmentService) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceService:    invoiceService,
		attachmentService: attachmentService,
	}
}

// List returns the caller's organization's invoices, filtered and paginated.
func (h *InvoiceHandler) List(c *gin.Context) {
	identity, exists := middleware.GetIdentity(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	pagination := utils.GetPaginationParams(c)

	var status *models.InvoiceStatus
	if s := c.Query("status"); s != "" {
		v := models.InvoiceStatus(s)
		switch v {
		case models.InvoiceStatusNew, models.InvoiceStatusPendingAttestation,
			models.InvoiceStatusAttested, models.InvoiceStatusRejected, models.InvoiceStatusPaid:
			status = &v
		default:
			apierrors.BadRequest(c, "Unknown invoice status")
			return
		}
	}

	invoices, total, err := h.invoiceService.List(services.ListInvoicesInput{
		Actor:    identity,
		Status:   status,
		Search:   c.Query("search"),
		Page:     pagination.Page,
		PageSize: pagination.Limit,
	})
	if err != nil {
		respondInvoiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToInvoiceListResponse(invoices, pagination.Page, pagination.Limit, total))
}

// Create registers a new invoice in the caller's organization.
func (h *InvoiceHandler) Create(c *gin.Context) {
	identity, exists := middleware.GetIdentity(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}
	if identity.OrganizationID == nil {
		apierrors.Forbidden(c, "No organization assigned")
		return
	}

	type CreateInvoiceRequest struct {
		VendorID      *uint64 `json:"vendor_id"`
		InvoiceNumber string  `json:"invoice_number" binding:"max=50"`
		OCRNumber     string  `json:"ocr_number" binding:"max=50"`
		Amount        float64 `json:"amount" binding:"gte=0"`
		VATAmount     float64 `json:"vat_amount"`
		Currency      string  `json:"currency" binding:"max=3"`
		InvoiceDate   string  `json:"invoice_date" binding:"required"`
		DueDate       string  `json:"due_date" binding:"required"`
		Description   string  `json:"description"`
	}

	var req CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	invoiceDate, err := time.Parse(dateLayout, req.InvoiceDate)
	if err != nil {
		apierrors.BadRequest(c, "Invalid invoice_date, expected YYYY-MM-DD")
		return
	}
	dueDate, err := time.Parse(dateLayout, req.DueDate)
	if err != nil {
		apierrors.BadRequest(c, "Invalid due_date, expected YYYY-MM-DD")
		return
	}

	invoice, err := h.invoiceService.Create(services.CreateInvoiceInput{
		OrganizationID: *identity.OrganizationID,
		VendorID:       req.VendorID,
		InvoiceNumber:  req.InvoiceNumber,
		OCRNumber:      req.OCRNumber,
		Amount:         req.Amount,
		VATAmount:      req.VATAmount,
		Currency:       req.Currency,
		InvoiceDate:    invoiceDate,
		DueDate:        dueDate,
		Description:    req.Description,
		CreatedBy:      identity.UserID,
	})
	if err != nil {
		respondInvoiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToInvoiceDTO(*invoice))
}

// Get returns one invoice with vendor, accounting line, event history and
// attachments.
func (h *InvoiceHandler) Get(c *gin.Context) {
	identity, invoiceID, ok := h.identityAndID(c)
	if !ok {
		return
	}

	invoice, err := h.invoiceService.Get(invoiceID, identity)
	if err != nil {
		respondInvoiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToInvoiceDTO(*invoice))
}

// Attest records an approval or rejection decision on an invoice.
func (h *InvoiceHandler) Attest(c *gin.Context) {
	identity, invoiceID, ok := h.identityAndID(c)
	if !ok {
		return
	}

	type AttestRequest struct {
		Approve bool   `json:"approve"`
		Comment string `json:"comment"`
	}

	var req AttestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	invoice, err := h.invoiceService.Attest(services.AttestInput{
		InvoiceID: invoiceID,
		Actor:     identity,
		Approve:   req.Approve,
		Comment:   req.Comment,
	})
	if err != nil {
		respondInvoiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToInvoiceDTO(*invoice))
}

// Send moves a new invoice into the attestation queue.
func (h *InvoiceHandler) Send(c *gin.Context) {
	identity, invoiceID, ok := h.identityAndID(c)
	if !ok {
		return
	}

	invoice, err := h.invoiceService.SendForAttestation(invoiceID, identity)
	if err != nil {
		respondInvoiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToInvoiceDTO(*invoice))
}

// MarkPaid records payment of an attested invoice.
func (h *InvoiceHandler) MarkPaid(c *gin.Context) {
	identity, invoiceID, ok := h.identityAndID(c)
	if !ok {
		return
	}

	invoice, err := h.invoiceService.MarkPaid(invoiceID, identity)
	if err != nil {
		respondInvoiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToInvoiceDTO(*invoice))
}

// AddComment appends a comment to the invoice's event log.
func (h *InvoiceHandler) AddComment(c *gin.Context) {
	identity, invoiceID, ok := h.identityAndID(c)
	if !ok {
		return
	}

	type CommentRequest struct {
		Text string `json:"text" binding:"required"`
	}

	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Comment text is required")
		return
	}

	event, err := h.invoiceService.AppendComment(invoiceID, identity, req.Text)
	if err != nil {
		respondInvoiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToInvoiceEventDTO(*event))
}

// SaveAccounting upserts the invoice's accounting line.
func (h *InvoiceHandler) SaveAccounting(c *gin.Context) {
	identity, invoiceID, ok := h.identityAndID(c)
	if !ok {
		return
	}

	type AccountingRequest struct {
		AccountCode string `json:"account_code" binding:"max=20"`
		CostCenter  string `json:"cost_center" binding:"max=50"`
		Project     string `json:"project" binding:"max=100"`
		VATCode     string `json:"vat_code" binding:"max=20"`
		Description string `json:"description"`
	}

	var req AccountingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	line, err := h.invoiceService.RecordAccounting(invoiceID, identity, services.AccountingInput{
		AccountCode: req.AccountCode,
		CostCenter:  req.CostCenter,
		Project:     req.Project,
		VATCode:     req.VATCode,
		Description: req.Description,
	})
	if err != nil {
		respondInvoiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToInvoiceLineDTO(*line))
}

// ListAttachments returns the invoice's attachment metadata.
func (h *InvoiceHandler) ListAttachments(c *gin.Context) {
	identity, invoiceID, ok := h.identityAndID(c)
	if !ok {
		return
	}

	attachments, err := h.attachmentService.List(invoiceID, identity)
	if err != nil {
		respondInvoiceError(c, err)
		return
	}

	attachmentDTOs := make([]dto.AttachmentDTO, len(attachments))
	for i, attachment := range attachments {
		attachmentDTOs[i] = dto.ToAttachmentDTO(attachment)
	}

	c.JSON(http.StatusOK, gin.H{
		"attachments": attachmentDTOs,
	})
}

// UploadAttachment stores a file for the invoice.
func (h *InvoiceHandler) UploadAttachment(c *gin.Context) {
	identity, invoiceID, ok := h.identityAndID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		apierrors.BadRequest(c, "A file upload is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		apierrors.InternalError(c, "Failed to read upload")
		return
	}
	defer file.Close()

	attachment, err := h.attachmentService.Upload(
		invoiceID,
		identity,
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		file,
	)
	if err != nil {
		respondInvoiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToAttachmentDTO(*attachment))
}

// DownloadAttachment streams an attachment's contents.
func (h *InvoiceHandler) DownloadAttachment(c *gin.Context) {
	identity, exists := middleware.GetIdentity(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	attachmentID, err := strconv.ParseUint(c.Param("attachmentId"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid attachment ID")
		return
	}

	attachment, rc, err := h.attachmentService.Open(attachmentID, identity)
	if err != nil {
		respondInvoiceError(c, err)
		return
	}
	defer rc.Close()

	c.Header("Content-Disposition", `attachment; filename="`+attachment.FileName+`"`)
	contentType := attachment.FileType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.DataFromReader(http.StatusOK, attachment.FileSize, contentType, rc, nil)
}

// DeleteAttachment removes an attachment and its stored file.
func (h *InvoiceHandler) DeleteAttachment(c *gin.Context) {
	identity, exists := middleware.GetIdentity(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	attachmentID, err := strconv.ParseUint(c.Param("attachmentId"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid attachment ID")
		return
	}

	if err := h.attachmentService.Delete(attachmentID, identity); err != nil {
		respondInvoiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Attachment deleted",
	})
}

func (h *InvoiceHandler) identityAndID(c *gin.Context) (access.Identity, uint64, bool) {
	identity, exists := middleware.GetIdentity(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return access.Identity{}, 0, false
	}

	invoiceID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid invoice ID")
		return access.Identity{}, 0, false
	}

	return identity, invoiceID, true
}

func respondInvoiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvoiceNotFound),
		errors.Is(err, services.ErrAttachmentNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrInvalidTransition):
		apierrors.InvalidTransition(c, err.Error())
	case errors.Is(err, services.ErrAttestNotPermitted),
		errors.Is(err, services.ErrNoOrganization):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrNegativeAmount),
		errors.Is(err, services.ErrCommentRequired),
		errors.Is(err, services.ErrVendorOrgMismatch):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
