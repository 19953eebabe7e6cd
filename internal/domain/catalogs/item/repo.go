package item

import (
	"factura/internal/domain"
)

// Repository defines the interface for Item persistence.
// Stock mutations go through the ledger repository, not here; Update
// writes catalog attributes only.
type Repository interface {
	domain.CatalogRepository[*Item]
}
