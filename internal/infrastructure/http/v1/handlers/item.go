package handlers

import (
	"github.com/gin-gonic/gin"

	"factura/internal/domain/catalogs/item"
	"factura/internal/infrastructure/http/v1/dto"
)

// ItemHandler serves the item catalog.
type ItemHandler struct {
	*BaseHandler
	svc *item.Service
}

// NewItemHandler creates an item handler.
func NewItemHandler(base *BaseHandler, svc *item.Service) *ItemHandler {
	return &ItemHandler{BaseHandler: base, svc: svc}
}

// Create handles POST /items.
func (h *ItemHandler) Create(c *gin.Context) {
	ownerID, ok := h.OwnerID(c)
	if !ok {
		return
	}

	var req dto.ItemRequest
	if !h.BindJSON(c, &req) {
		return
	}

	it := item.New(ownerID, req.Name, req.Price, req.Stock)
	if req.Unit != "" {
		it.Unit = req.Unit
	}

	if err := h.svc.Create(c.Request.Context(), it); err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, it.ID.String())
}

// Get handles GET /items/:id.
func (h *ItemHandler) Get(c *gin.Context) {
	ownerID, ok := h.OwnerID(c)
	if !ok {
		return
	}
	itemID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	it, err := h.svc.GetByID(c.Request.Context(), ownerID, itemID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, it)
}

// Update handles PUT /items/:id. Stock is not updatable here; the
// request's stock field is ignored for existing items.
func (h *ItemHandler) Update(c *gin.Context) {
	ownerID, ok := h.OwnerID(c)
	if !ok {
		return
	}
	itemID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.ItemRequest
	if !h.BindJSON(c, &req) {
		return
	}

	it, err := h.svc.GetByID(c.Request.Context(), ownerID, itemID)
	if err != nil {
		h.Error(c, err)
		return
	}

	it.Name = req.Name
	if req.Unit != "" {
		it.Unit = req.Unit
	}
	it.Price = req.Price
	it.Touch()

	if err := h.svc.Update(c.Request.Context(), ownerID, it); err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, it)
}

// Delete handles DELETE /items/:id.
func (h *ItemHandler) Delete(c *gin.Context) {
	ownerID, ok := h.OwnerID(c)
	if !ok {
		return
	}
	itemID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), ownerID, itemID); err != nil {
		h.Error(c, err)
		return
	}

	h.NoContent(c)
}

// List handles GET /items.
func (h *ItemHandler) List(c *gin.Context) {
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
