// Package id issues entity identifiers. UUIDv7 keeps them sortable by
// creation time.
package id

import (
	"github.com/google/uuid"
)

// ID identifies any persisted entity.
type ID = uuid.UUID

// New returns a fresh UUIDv7, falling back to v4 if the clock source
// fails.
func New() ID {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New()
	}
	return id
}

// Parse validates and converts a string form.
func Parse(s string) (ID, error) {
	return uuid.Parse(s)
}

// MustParse panics on malformed input. Tests and constants only.
func MustParse(s string) ID {
	return uuid.MustParse(s)
}

// Nil is the zero id.
func Nil() ID {
	return uuid.Nil
}

// IsNil reports whether id is the zero value.
func IsNil(id ID) bool {
	return id == uuid.Nil
}
