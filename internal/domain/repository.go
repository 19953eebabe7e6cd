// Package domain provides shared business-logic interfaces and types.
package domain

import (
	"context"

	"factura/internal/core/id"
)

// --- Filter & Pagination ---

// ListFilter contains common filtering options for list operations.
// All list queries are additionally scoped by the owner identity passed
// to the repository method; the filter never carries ownership.
type ListFilter struct {
	// Search performs a substring match on searchable fields
	Search string

	// IDs filters by specific IDs
	IDs []id.ID

	// OrderBy specifies sorting (e.g. "name", "-created_at")
	OrderBy string

	// Pagination
	Limit  int
	Offset int
}

// DefaultListFilter returns sensible defaults.
func DefaultListFilter() ListFilter {
	return ListFilter{
		Limit:   50,
		OrderBy: "name",
	}
}

// ListResult contains paginated results.
type ListResult[T any] struct {
	Items      []T   `json:"items"`
	TotalCount int64 `json:"totalCount"`
	Limit      int   `json:"limit"`
	Offset     int   `json:"offset"`
}

// CatalogRepository defines owner-scoped CRUD operations for catalog
// entities (customers, items). A lookup with a foreign owner returns a
// NotFound error, indistinguishable from an absent record.
type CatalogRepository[T any] interface {
	// Create inserts a new entity
	Create(ctx context.Context, entity T) error

	// GetByID retrieves entity by ID within the owner's data
	GetByID(ctx context.Context, ownerID, entityID id.ID) (T, error)

	// Update modifies existing entity (with optimistic locking)
	Update(ctx context.Context, ownerID id.ID, entity T) error

	// Delete removes the entity
	Delete(ctx context.Context, ownerID, entityID id.ID) error

	// List retrieves the owner's entities with filtering and pagination
	List(ctx context.Context, ownerID id.ID, filter ListFilter) (ListResult[T], error)
}
