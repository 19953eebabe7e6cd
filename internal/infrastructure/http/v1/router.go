// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"factura/internal/domain/auth"
	"factura/internal/domain/catalogs/customer"
	"factura/internal/domain/catalogs/item"
	"factura/internal/domain/invoice"
	"factura/internal/domain/reports"
	"factura/internal/infrastructure/http/v1/handlers"
	"factura/internal/infrastructure/http/v1/middleware"
	"factura/internal/infrastructure/pdf"
	"factura/internal/infrastructure/storage/postgres"
	"factura/pkg/logger"
)

// RouterConfig holds everything the router wires together.
type RouterConfig struct {
	// Pool is the database connection (for health checks)
	Pool *postgres.Pool

	// Logger for request logging
	Logger *logger.Logger

	// TokenVerifier validates access tokens on protected routes
	TokenVerifier middleware.TokenVerifier

	// Services
	AuthService     *auth.Service
	CustomerService *customer.Service
	ItemService     *item.Service
	InvoiceService  *invoice.Service
	ReportsService  *reports.Service

	// PDFRenderer renders invoice documents
	PDFRenderer *pdf.Renderer
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	base := handlers.NewBaseHandler()

	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
	}

	v1 := router.Group("/api/v1")
	{
		authHandler := handlers.NewAuthHandler(base, cfg.AuthService)
		v1.POST("/auth/register", authHandler.Register)
		v1.POST("/auth/login", authHandler.Login)

		protected := v1.Group("")
		protected.Use(middleware.Auth(cfg.TokenVerifier))

		customerHandler := handlers.NewCustomerHandler(base, cfg.CustomerService)
		protected.GET("/customers", customerHandler.List)
		protected.POST("/customers", customerHandler.Create)
		protected.GET("/customers/:id", customerHandler.Get)
		protected.PUT("/customers/:id", customerHandler.Update)
		protected.DELETE("/customers/:id", customerHandler.Delete)

		itemHandler := handlers.NewItemHandler(base, cfg.ItemService)
		protected.GET("/items", itemHandler.List)
		protected.POST("/items", itemHandler.Create)
		protected.GET("/items/:id", itemHandler.Get)
		protected.PUT("/items/:id", itemHandler.Update)
		protected.DELETE("/items/:id", itemHandler.Delete)

		invoiceHandler := handlers.NewInvoiceHandler(base, cfg.InvoiceService, cfg.CustomerService, cfg.PDFRenderer)
		protected.GET("/invoices", invoiceHandler.List)
		protected.POST("/invoices", invoiceHandler.Create)
		protected.GET("/invoices/:id", invoiceHandler.Get)
		protected.PUT("/invoices/:id", invoiceHandler.Update)
		protected.GET("/invoices/:id/pdf", invoiceHandler.PDF)

		reportsHandler := handlers.NewReportsHandler(base, cfg.ReportsService)
		protected.GET("/reports/sales", reportsHandler.Sales)
		protected.GET("/reports/customers/:id", reportsHandler.Customer)
		protected.GET("/dashboard", reportsHandler.Dashboard)
	}

	return router
}
