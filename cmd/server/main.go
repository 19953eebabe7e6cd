// Package main is the entry point for the factura API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"factura/internal/domain/auth"
	"factura/internal/domain/catalogs/customer"
	"factura/internal/domain/catalogs/item"
	"factura/internal/domain/invoice"
	"factura/internal/domain/ledger"
	"factura/internal/domain/reports"
	v1 "factura/internal/infrastructure/http/v1"
	"factura/internal/infrastructure/pdf"
	"factura/internal/infrastructure/storage/postgres"
	"factura/internal/infrastructure/storage/postgres/auth_repo"
	"factura/internal/infrastructure/storage/postgres/catalog_repo"
	"factura/internal/infrastructure/storage/postgres/invoice_repo"
	"factura/internal/infrastructure/storage/postgres/ledger_repo"
	"factura/internal/infrastructure/storage/postgres/report_repo"
	"factura/pkg/logger"
	"factura/pkg/numerator"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	log, err := logger.New(logger.Config{
		Level:       getEnv("LOG_LEVEL", "info"),
		Development: getEnv("APP_ENV", "development") == "development",
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	log.Info("starting factura server")

	// --- Database ---
	dsn := mustEnv("DATABASE_URL")
	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(dsn))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()
	log.Info("database connection established")

	txm := postgres.NewTxManager(pool)

	// --- Repositories ---
	userRepo := auth_repo.NewUserRepo(txm)
	customerRepo := catalog_repo.NewCustomerRepo(txm)
	itemRepo := catalog_repo.NewItemRepo(txm)
	stockRepo := ledger_repo.NewStockRepo(txm)
	invoiceRepo := invoice_repo.NewInvoiceRepo(txm)
	reportRepo := report_repo.NewReportRepo(txm)

	// --- Services ---
	jwtSecret := getEnv("JWT_SECRET", "change-me-in-production")
	jwtTTL := getEnvDuration("JWT_TTL", 24*time.Hour)
	tokens := auth.NewTokenManager(jwtSecret, jwtTTL)
	authService := auth.NewService(userRepo, tokens)

	customerService := customer.NewService(customerRepo)
	itemService := item.NewService(itemRepo)
	ledgerService := ledger.NewService(stockRepo)

	// Number allocation joins the active transaction via the resolver.
	numbers := numerator.NewWithResolver(func(ctx context.Context) numerator.Querier {
		return txm.GetQuerier(ctx)
	})

	invoiceService := invoice.NewService(
		txm,
		invoiceRepo,
		customerService,
		itemService,
		ledgerService,
		numbers,
	)

	reportsService := reports.NewService(txm, reportRepo)

	renderer := pdf.NewRenderer(getEnv("COMPANY_NAME", "Factura"))

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Pool:            pool,
		Logger:          log,
		TokenVerifier:   tokens,
		AuthService:     authService,
		CustomerService: customerService,
		ItemService:     itemService,
		InvoiceService:  invoiceService,
		ReportsService:  reportsService,
		PDFRenderer:     renderer,
	})

	// --- HTTP Server ---
	port := getEnv("APP_PORT", "8080")
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting", "port", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func mustEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		fmt.Printf("required environment variable %s not set\n", key)
		os.Exit(1)
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
