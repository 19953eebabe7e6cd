// Package main provides a CLI tool for seeding the database with demo data.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"factura/internal/core/types"
	"factura/internal/domain/auth"
	"factura/internal/domain/catalogs/customer"
	"factura/internal/domain/catalogs/item"
	"factura/internal/infrastructure/storage/postgres"
	"factura/internal/infrastructure/storage/postgres/auth_repo"
	"factura/internal/infrastructure/storage/postgres/catalog_repo"
	"factura/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(dbURL))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	log.Info("connected to database")

	txm := postgres.NewTxManager(pool)

	tokens := auth.NewTokenManager("seed-only", 0)
	authService := auth.NewService(auth_repo.NewUserRepo(txm), tokens)

	email := envOr("SEED_EMAIL", "demo@factura.local")
	password := envOr("SEED_PASSWORD", "demo-password")

	user, _, err := authService.Register(ctx, "Demo User", email, password)
	if err != nil {
		log.Fatalw("failed to seed user", "error", err)
	}
	log.Infow("demo user created", "email", email, "id", user.ID)

	customerService := customer.NewService(catalog_repo.NewCustomerRepo(txm))
	itemService := item.NewService(catalog_repo.NewItemRepo(txm))

	customers := []*customer.Customer{
		customer.New(user.ID, "Acme Traders"),
		customer.New(user.ID, "Globex Retail"),
		customer.New(user.ID, "Initech Supplies"),
	}
	for _, c := range customers {
		if err := customerService.Create(ctx, c); err != nil {
			log.Fatalw("failed to seed customer", "name", c.Name, "error", err)
		}
	}

	items := []*item.Item{
		item.New(user.ID, "Notebook A5", types.MustMoney("120.00"), 100),
		item.New(user.ID, "Ballpoint Pen", types.MustMoney("15.50"), 500),
		item.New(user.ID, "Desk Lamp", types.MustMoney("899.00"), 25),
		item.New(user.ID, "Printer Paper (500)", types.MustMoney("349.00"), 60),
	}
	for _, it := range items {
		if err := itemService.Create(ctx, it); err != nil {
			log.Fatalw("failed to seed item", "name", it.Name, "error", err)
		}
	}

	log.Infow("seed complete",
		"customers", len(customers),
		"items", len(items),
	)
}

func envOr(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}
