package customer

import (
	"factura/internal/domain"
)

// Repository defines the interface for Customer persistence.
type Repository interface {
	domain.CatalogRepository[*Customer]
}
