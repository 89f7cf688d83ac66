package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"invoice-reconciler/internal/apperrors"
	"invoice-reconciler/internal/core/domain"
	portssvc "invoice-reconciler/internal/core/ports/services"
	"invoice-reconciler/internal/dto"
	"invoice-reconciler/internal/middleware"

	"github.com/gin-gonic/gin"
)

// invoiceHandler handles HTTP requests related to invoices.
type invoiceHandler struct {
	invoiceService portssvc.InvoiceSvcFacade
}

// newInvoiceHandler creates a new invoiceHandler.
func newInvoiceHandler(is portssvc.InvoiceSvcFacade) *invoiceHandler {
	return &invoiceHandler{
		invoiceService: is,
	}
}

// RegisterInvoiceRoutes registers routes related to invoices.
func RegisterInvoiceRoutes(rg *gin.RouterGroup, invoiceService portssvc.InvoiceSvcFacade, uploadLimiter gin.HandlerFunc) {
	h := newInvoiceHandler(invoiceService)

	invoices := rg.Group("/invoices")
	{
		invoices.POST("/upload", uploadLimiter, h.uploadInvoice)
		invoices.GET("", h.listInvoices)
		invoices.GET("/:id", h.getInvoice)
		invoices.PATCH("/:id/status", h.updateInvoiceStatus)
	}
}

// uploadInvoice godoc
// @Summary Upload an invoice image
// @Description Runs the uploaded image through OCR, extracts invoice fields and stores the record for review
// @Tags invoices
// @Accept  multipart/form-data
// @Produce  json
// @Param   invoice formData file true "Invoice image (JPEG/PNG, max 5 MiB)"
// @Success 200 {object} dto.IngestResult
// @Failure 400 {object} map[string]string "Missing or invalid file"
// @Failure 409 {object} map[string]string "Duplicate invoice number"
// @Failure 422 {object} map[string]string "OCR could not process the invoice"
// @Failure 500 {object} map[string]string "Error processing invoice"
// @Router /invoices/upload [post]
func (h *invoiceHandler) uploadInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	fileHeader, err := c.FormFile("invoice")
	if err != nil {
		logger.Warn("Upload request without invoice file", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}
	if fileHeader.Size > dto.MaxUploadBytes {
		logger.Warn("Upload exceeds size limit", slog.Int64("size", fileHeader.Size))
		c.JSON(http.StatusBadRequest, gin.H{"error": "File exceeds the 5 MiB limit"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error("Failed to open uploaded file", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error processing invoice"})
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		logger.Error("Failed to read uploaded file", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error processing invoice"})
		return
	}

	logger.Info("Processing uploaded invoice",
		slog.String("filename", fileHeader.Filename),
		slog.Int64("size", fileHeader.Size),
	)

	result, err := h.invoiceService.Ingest(c.Request.Context(), dto.InvoiceUpload{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Content:     content,
	})
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrInvalidUpload):
			logger.Warn("Rejected invalid upload", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Only image files up to 5 MiB are allowed"})
		case errors.Is(err, apperrors.ErrDuplicate):
			logger.Warn("Duplicate invoice number", slog.String("error", err.Error()))
			c.JSON(http.StatusConflict, gin.H{"error": "An invoice with this number already exists"})
		case errors.Is(err, apperrors.ErrExtractionFailed):
			logger.Warn("Invoice extraction failed", slog.String("error", err.Error()))
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"message": "Failed to process invoice",
				"error":   err.Error(),
			})
		default:
			logger.Error("Failed to ingest invoice", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error processing invoice"})
		}
		return
	}

	logger.Info("Invoice processed successfully",
		slog.String("invoice_id", result.Invoice.InvoiceID),
		slog.String("invoice_number", result.Invoice.InvoiceNumber),
	)
	c.JSON(http.StatusOK, gin.H{
		"message":       "Invoice processed successfully",
		"invoice":       dto.ToInvoiceResponse(&result.Invoice),
		"extractedData": result.Extracted,
		"rawText":       result.RawText,
	})
}

// listInvoices godoc
// @Summary List invoices
// @Description Retrieves all invoices, newest first
// @Tags invoices
// @Produce  json
// @Success 200 {array} dto.InvoiceResponse
// @Failure 500 {object} map[string]string "Error fetching invoices"
// @Router /invoices [get]
func (h *invoiceHandler) listInvoices(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	invoices, err := h.invoiceService.ListInvoices(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list invoices", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching invoices"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListInvoiceResponse(invoices))
}

// getInvoice godoc
// @Summary Get an invoice
// @Description Retrieves a single invoice by ID
// @Tags invoices
// @Produce  json
// @Param   id path string true "Invoice ID"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 404 {object} map[string]string "Invoice not found"
// @Failure 500 {object} map[string]string "Error fetching invoice"
// @Router /invoices/{id} [get]
func (h *invoiceHandler) getInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	invoiceID := c.Param("id")

	invoice, err := h.invoiceService.GetInvoiceByID(c.Request.Context(), invoiceID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
			return
		}
		logger.Error("Failed to fetch invoice", slog.String("invoice_id", invoiceID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching invoice"})
		return
	}

	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice))
}

// updateInvoiceStatus godoc
// @Summary Update invoice status
// @Description Transitions an invoice through the review workflow
// @Tags invoices
// @Accept  json
// @Produce  json
// @Param   id path string true "Invoice ID"
// @Param   status body dto.UpdateInvoiceStatusRequest true "New status"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 400 {object} map[string]string "Invalid status"
// @Failure 404 {object} map[string]string "Invoice not found"
// @Failure 500 {object} map[string]string "Failed to update invoice"
// @Router /invoices/{id}/status [patch]
func (h *invoiceHandler) updateInvoiceStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	invoiceID := c.Param("id")

	var req dto.UpdateInvoiceStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for status update", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	invoice, err := h.invoiceService.UpdateInvoiceStatus(c.Request.Context(), invoiceID, domain.InvoiceStatus(req.Status))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to update invoice status", slog.String("invoice_id", invoiceID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update invoice"})
		}
		return
	}

	logger.Info("Invoice status updated",
		slog.String("invoice_id", invoiceID),
		slog.String("status", req.Status),
	)
	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice))
}
