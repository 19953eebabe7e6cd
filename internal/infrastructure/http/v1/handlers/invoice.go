package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"factura/internal/core/apperror"
	"factura/internal/domain/catalogs/customer"
	"factura/internal/domain/invoice"
	"factura/internal/infrastructure/http/v1/dto"
	"factura/internal/infrastructure/pdf"
)

// InvoiceHandler serves the invoice lifecycle.
type InvoiceHandler struct {
	*BaseHandler
	svc       *invoice.Service
	customers *customer.Service
	renderer  *pdf.Renderer
}

// NewInvoiceHandler creates an invoice handler.
func NewInvoiceHandler(base *BaseHandler, svc *invoice.Service, customers *customer.Service, renderer *pdf.Renderer) *InvoiceHandler {
	return &InvoiceHandler{BaseHandler: base, svc: svc, customers: customers, renderer: renderer}
}

// Create handles POST /invoices.
func (h *InvoiceHandler) Create(c *gin.Context) {
	ownerID, ok := h.OwnerID(c)
	if !ok {
		return
	}

	var req dto.InvoiceRequest
	if !h.BindJSON(c, &req) {
		return
	}

	inv, err := h.svc.Build(c.Request.Context(), ownerID, req.CustomerID, req.LineInputs())
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, inv)
}

// Get handles GET /invoices/:id.
func (h *InvoiceHandler) Get(c *gin.Context) {
	ownerID, ok := h.OwnerID(c)
	if !ok {
		return
	}
	invoiceID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	inv, err := h.svc.GetByID(c.Request.Context(), ownerID, invoiceID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, inv)
}

// Update handles PUT /invoices/:id (revise).
func (h *InvoiceHandler) Update(c *gin.Context) {
	ownerID, ok := h.OwnerID(c)
	if !ok {
		return
	}
	invoiceID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.InvoiceRequest
	if !h.BindJSON(c, &req) {
		return
	}

	inv, err := h.svc.Revise(c.Request.Context(), ownerID, invoiceID, req.CustomerID, req.LineInputs())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, inv)
}

// List handles GET /invoices.
func (h *InvoiceHandler) List(c *gin.Context) {
	ownerID, ok := h.OwnerID(c)
	if !ok {
		return
	}

	filter := h.ListFilter(c)
	filter.OrderBy = "" // repo orders by invoice date
	result, err := h.svc.List(c.Request.Context(), ownerID, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, result)
}

// PDF handles GET /invoices/:id/pdf. Streams the rendered document as
// an attachment. A deleted customer renders with the placeholder.
func (h *InvoiceHandler) PDF(c *gin.Context) {
	ownerID, ok := h.OwnerID(c)
	if !ok {
		return
	}
	invoiceID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	inv, err := h.svc.GetByID(ctx, ownerID, invoiceID)
	if err != nil {
		h.Error(c, err)
		return
	}

	cust, err := h.customers.GetByID(ctx, ownerID, inv.CustomerID)
	if err != nil {
		if !apperror.IsNotFound(err) {
			h.Error(c, err)
			return
		}
		cust = nil
	}

	data, err := h.renderer.RenderInvoice(inv, cust)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.pdf", inv.Number))
	c.Data(http.StatusOK, "application/pdf", data)
}
