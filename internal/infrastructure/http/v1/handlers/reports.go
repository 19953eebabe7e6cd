package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"factura/internal/core/apperror"
	"factura/internal/domain/reports"
)

const dateLayout = "2006-01-02"

// ReportsHandler serves sales reports and the dashboard.
type ReportsHandler struct {
	*BaseHandler
	svc *reports.Service
}

// NewReportsHandler creates a reports handler.
func NewReportsHandler(base *BaseHandler, svc *reports.Service) *ReportsHandler {
	return &ReportsHandler{BaseHandler: base, svc: svc}
}

// Sales handles GET /reports/sales?from=YYYY-MM-DD&to=YYYY-MM-DD.
// Both bounds are inclusive; the 'to' day counts until its end.
func (h *ReportsHandler) Sales(c *gin.Context) {
	ownerID, ok := h.OwnerID(c)
	if !ok {
		return
	}

	from, ok := h.parseDate(c, "from")
	if !ok {
		return
	}
	to, ok := h.parseDate(c, "to")
	if !ok {
		return
	}

	// Extend 'to' to the end of the day so invoices dated anytime that
	// day fall inside the closed interval.
	toEnd := to.Add(24*time.Hour - time.Nanosecond)

	report, err := h.svc.SalesByDateRange(c.Request.Context(), ownerID, from, toEnd)
	if err != nil {
		h.Error(c, err)
		return
	}

	report.To = to
	h.OK(c, report)
}

// Customer handles GET /reports/customers/:id.
func (h *ReportsHandler) Customer(c *gin.Context) {
	ownerID, ok := h.OwnerID(c)
	if !ok {
		return
	}
	customerID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	report, err := h.svc.SalesByCustomer(c.Request.Context(), ownerID, customerID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, report)
}

// Dashboard handles GET /dashboard.
func (h *ReportsHandler) Dashboard(c *gin.Context) {
	ownerID, ok := h.OwnerID(c)
	if !ok {
		return
	}

	stats, err := h.svc.DashboardStats(c.Request.Context(), ownerID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, stats)
}

func (h *ReportsHandler) parseDate(c *gin.Context, key string) (time.Time, bool) {
	val := c.Query(key)
	if val == "" {
		h.Error(c, apperror.NewValidation(key+" date is required").
			WithDetail("param", key).
			WithDetail("format", dateLayout))
		return time.Time{}, false
	}

	t, err := time.Parse(dateLayout, val)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid "+key+" date").
			WithDetail("param", key).
			WithDetail("format", dateLayout))
		return time.Time{}, false
	}
	return t, true
}
