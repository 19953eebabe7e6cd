package catalog_repo

import (
	"factura/internal/domain/catalogs/customer"
	"factura/internal/infrastructure/storage/postgres"
)

// CustomerRepo implements customer.Repository.
type CustomerRepo struct {
	*BaseRepo[*customer.Customer]
}

// NewCustomerRepo creates a new customer repository.
func NewCustomerRepo(txm *postgres.TxManager) *CustomerRepo {
	return &CustomerRepo{
		BaseRepo: NewBaseRepo(
			txm,
			"customers",
			"customer",
			postgres.ExtractDBColumns[customer.Customer](),
			[]string{"name", "email"},
			func() *customer.Customer { return &customer.Customer{} },
		),
	}
}

var _ customer.Repository = (*CustomerRepo)(nil)
