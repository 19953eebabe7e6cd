package handlers

import (
	"github.com/gin-gonic/gin"

	"factura/internal/domain/catalogs/customer"
	"factura/internal/infrastructure/http/v1/dto"
)

// CustomerHandler serves the customer catalog.
type CustomerHandler struct {
	*BaseHandler
	svc *customer.Service
}

// NewCustomerHandler creates a customer handler.
func NewCustomerHandler(base *BaseHandler, svc *customer.Service) *CustomerHandler {
	return &CustomerHandler{BaseHandler: base, svc: svc}
}

// Create handles POST /customers.
func (h *CustomerHandler) Create(c *gin.Context) {
	ownerID, ok := h.OwnerID(c)
	if !ok {
		return
	}

	var req dto.CustomerRequest
	if !h.BindJSON(c, &req) {
		return
	}

	cust := customer.New(ownerID, req.Name)
	cust.Email = req.Email
	cust.Phone = req.Phone
	cust.Address = req.Address
	cust.GSTIN = req.GSTIN

	if err := h.svc.Create(c.Request.Context(), cust); err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, cust.ID.String())
}

// Get handles GET /customers/:id.
func (h *CustomerHandler) Get(c *gin.Context) {
	ownerID, ok := h.OwnerID(c)
	if !ok {
		return
	}
	customerID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	cust, err := h.svc.GetByID(c.Request.Context(), ownerID, customerID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, cust)
}

// Update handles PUT /customers/:id.
func (h *CustomerHandler) Update(c *gin.Context) {
	ownerID, ok := h.OwnerID(c)
	if !ok {
		return
	}
	customerID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.CustomerRequest
	if !h.BindJSON(c, &req) {
		return
	}

	cust, err := h.svc.GetByID(c.Request.Context(), ownerID, customerID)
	if err != nil {
		h.Error(c, err)
		return
	}

	cust.Name = req.Name
	cust.Email = req.Email
	cust.Phone = req.Phone
	cust.Address = req.Address
	cust.GSTIN = req.GSTIN
	cust.Touch()

	if err := h.svc.Update(c.Request.Context(), ownerID, cust); err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, cust)
}

// Delete handles DELETE /customers/:id.
func (h *CustomerHandler) Delete(c *gin.Context) {
	ownerID, ok := h.OwnerID(c)
	if !ok {
		return
	}
	customerID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), ownerID, customerID); err != nil {
		h.Error(c, err)
		return
	}

	h.NoContent(c)
}

// List handles GET /customers.
func (h *CustomerHandler) List(c *gin.Context) {
	ownerID, ok := h.OwnerID(c)
	if !ok {
		return
	}

	result, err := h.svc.List(c.Request.Context(), ownerID, h.ListFilter(c))
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, result)
}
