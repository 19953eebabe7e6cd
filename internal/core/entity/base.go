// Package entity provides base types shared by catalog and document entities.
package entity

import (
	"context"
	"time"

	"factura/internal/core/id"
)

// Validatable is implemented by entities that support self-validation.
// Validation checks internal invariants (without database access).
type Validatable interface {
	// Validate checks entity invariants.
	// Returns nil if valid, AppError with details otherwise.
	Validate(ctx context.Context) error
}

// BaseEntity contains common fields for all persisted entities.
type BaseEntity struct {
	// ID is the primary key (UUIDv7)
	ID id.ID `db:"id" json:"id"`

	// Version for optimistic locking (incremented on each update)
	Version int `db:"version" json:"version"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// NewBaseEntity creates a new BaseEntity with generated ID.
func NewBaseEntity() BaseEntity {
	now := time.Now().UTC()
	return BaseEntity{
		ID:        id.New(),
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Touch updates the UpdatedAt timestamp. The version counter belongs
// to the repository: the update statement increments it in SQL against
// the stored value and syncs it back on success.
func (b *BaseEntity) Touch() {
	b.UpdatedAt = time.Now().UTC()
}

// SetVersion syncs the version after a repository update.
func (b *BaseEntity) SetVersion(v int) {
	b.Version = v
}

// Owned is embedded by entities that belong to exactly one user.
// Every query over an owned entity is scoped by OwnerID; access with a
// foreign owner behaves as if the record does not exist.
type Owned struct {
	OwnerID id.ID `db:"owner_id" json:"ownerId"`
}
