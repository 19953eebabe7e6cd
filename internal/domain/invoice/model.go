// Package invoice implements the invoice lifecycle: building new
// invoices, revising existing ones and reading them back. Building and
// revising move stock through the ledger inside a single transaction.
package invoice

import (
	"time"

	"factura/internal/core/entity"
	"factura/internal/core/id"
	"factura/internal/core/types"
)

// Invoice is a posted sales document. Once created, its number never
// changes; revising replaces customer, lines and totals in place.
type Invoice struct {
	entity.BaseEntity
	entity.Owned

	// Number is the human-readable document number (e.g. INV-2026-00042),
	// assigned once at creation
	Number string `db:"number" json:"number"`

	// CustomerID references the billed customer. The customer record
	// may be deleted later; reports handle the dangling reference.
	CustomerID id.ID `db:"customer_id" json:"customerId"`

	// InvoiceDate is the business date of the document
	InvoiceDate time.Time `db:"invoice_date" json:"invoiceDate"`

	// SubTotal is the sum of line totals
	SubTotal types.Money `db:"sub_total" json:"subTotal"`

	// GrandTotal is the payable amount
	GrandTotal types.Money `db:"grand_total" json:"grandTotal"`

	// Lines are the document rows, ordered by LineNo
	Lines []*Line `db:"-" json:"lines"`
}

// Line is a single invoice row. ItemName and UnitPrice are snapshots
// taken at build time; later catalog edits do not change them.
type Line struct {
	ID        id.ID       `db:"id" json:"id"`
	InvoiceID id.ID       `db:"invoice_id" json:"invoiceId"`
	LineNo    int         `db:"line_no" json:"lineNo"`
	ItemID    id.ID       `db:"item_id" json:"itemId"`
	ItemName  string      `db:"item_name" json:"itemName"`
	UnitPrice types.Money `db:"unit_price" json:"unitPrice"`
	Quantity  int64       `db:"quantity" json:"quantity"`
	Total     types.Money `db:"total" json:"total"`
}

// LineInput is the caller's request for one invoice row.
type LineInput struct {
	ItemID   id.ID `json:"itemId"`
	Quantity int64 `json:"quantity"`
}
