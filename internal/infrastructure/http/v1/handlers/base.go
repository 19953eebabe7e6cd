// Package handlers implements the HTTP API endpoints.
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"factura/internal/core/apperror"
	"factura/internal/core/id"
	"factura/internal/domain"
	"factura/internal/infrastructure/http/v1/dto"
	"factura/internal/infrastructure/http/v1/middleware"
)

// BaseHandler provides common handler utilities.
type BaseHandler struct{}

// NewBaseHandler creates a new base handler.
func NewBaseHandler() *BaseHandler {
	return &BaseHandler{}
}

// BindJSON binds and validates JSON request body.
func (h *BaseHandler) BindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		h.Error(c, apperror.NewValidation("invalid request body").WithDetail("error", err.Error()))
		return false
	}
	return true
}

// Error registers error on Gin context and aborts request.
// Actual JSON response is produced by middleware.ErrorHandler.
func (h *BaseHandler) Error(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// OwnerID extracts the authenticated user's id set by the Auth
// middleware. Returns false (and aborts) when the route is reached
// without authentication.
func (h *BaseHandler) OwnerID(c *gin.Context) (id.ID, bool) {
	v, exists := c.Get(middleware.OwnerIDKey)
	if !exists {
		h.Error(c, apperror.NewUnauthorized("authentication required"))
		return id.Nil(), false
	}
	ownerID, ok := v.(id.ID)
	if !ok {
		h.Error(c, apperror.NewUnauthorized("authentication required"))
		return id.Nil(), false
	}
	return ownerID, true
}

// ParseIDParam parses a path parameter as an id. Returns false (and
// aborts) on a malformed value.
func (h *BaseHandler) ParseIDParam(c *gin.Context, name string) (id.ID, bool) {
	parsed, err := id.Parse(c.Param(name))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id").WithDetail("param", name))
		return id.Nil(), false
	}
	return parsed, true
}

// ParseIntQuery parses integer query parameter with default value.
func (h *BaseHandler) ParseIntQuery(c *gin.Context, key string, defaultVal int) int {
	val := c.Query(key)
	if val == "" {
		return defaultVal
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return parsed
}

// ListFilter builds a domain.ListFilter from common query parameters.
func (h *BaseHandler) ListFilter(c *gin.Context) domain.ListFilter {
	filter := domain.DefaultListFilter()
	filter.Search = c.Query("search")
	filter.Limit = h.ParseIntQuery(c, "limit", filter.Limit)
	filter.Offset = h.ParseIntQuery(c, "offset", 0)
	if orderBy := c.Query("orderBy"); orderBy != "" {
		filter.OrderBy = orderBy
	}
	return filter
}

// Created sends 201 response with ID.
func (h *BaseHandler) Created(c *gin.Context, entityID string) {
	c.JSON(http.StatusCreated, dto.IDResponse{ID: entityID})
}

// OK sends 200 response with data.
func (h *BaseHandler) OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

// NoContent sends 204 response.
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
