// Package pdf renders persisted invoices as PDF documents.
// Rendering reads stored snapshots only; nothing is repriced here.
package pdf

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"factura/internal/core/apperror"
	"factura/internal/domain/catalogs/customer"
	"factura/internal/domain/invoice"
)

// Renderer produces invoice PDFs.
type Renderer struct {
	companyName string
}

// NewRenderer creates a renderer. companyName appears in the document
// header.
func NewRenderer(companyName string) *Renderer {
	return &Renderer{companyName: companyName}
}

// RenderInvoice renders the invoice with its line snapshots. cust may
// be nil when the customer was deleted; the bill-to block then shows
// the placeholder.
func (r *Renderer) RenderInvoice(inv *invoice.Invoice, cust *customer.Customer) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Invoice %s", inv.Number), false)
	pdf.AddPage()

	r.header(pdf, inv)
	r.billTo(pdf, cust)
	r.lineTable(pdf, inv)
	r.totals(pdf, inv)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("render pdf: %w", err))
	}
	return buf.Bytes(), nil
}

func (r *Renderer) header(pdf *gofpdf.Fpdf, inv *invoice.Invoice) {
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, r.companyName, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 6, fmt.Sprintf("Invoice %s", inv.Number), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Date: %s", inv.InvoiceDate.Format("2006-01-02")), "", 1, "L", false, 0, "")
	pdf.Ln(4)
}

func (r *Renderer) billTo(pdf *gofpdf.Fpdf, cust *customer.Customer) {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 6, "Bill To", "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	if cust == nil {
		pdf.CellFormat(0, 5, "Unknown Customer", "", 1, "L", false, 0, "")
		pdf.Ln(4)
		return
	}

	pdf.CellFormat(0, 5, cust.Name, "", 1, "L", false, 0, "")
	if cust.Address != nil && *cust.Address != "" {
		pdf.MultiCell(0, 5, *cust.Address, "", "L", false)
	}
	if cust.Email != nil && *cust.Email != "" {
		pdf.CellFormat(0, 5, *cust.Email, "", 1, "L", false, 0, "")
	}
	if cust.GSTIN != nil && *cust.GSTIN != "" {
		pdf.CellFormat(0, 5, fmt.Sprintf("GSTIN: %s", *cust.GSTIN), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)
}

func (r *Renderer) lineTable(pdf *gofpdf.Fpdf, inv *invoice.Invoice) {
	widths := []float64{10, 85, 25, 20, 30}
	headers := []string{"#", "Item", "Price", "Qty", "Total"}
	aligns := []string{"C", "L", "R", "R", "R"}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(235, 235, 235)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, aligns[i], true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for _, line := range inv.Lines {
		cells := []string{
			fmt.Sprintf("%d", line.LineNo),
			line.ItemName,
			line.UnitPrice.StringFixed(2),
			fmt.Sprintf("%d", line.Quantity),
			line.Total.StringFixed(2),
		}
		for i, c := range cells {
			pdf.CellFormat(widths[i], 6, c, "1", 0, aligns[i], false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(2)
}

func (r *Renderer) totals(pdf *gofpdf.Fpdf, inv *invoice.Invoice) {
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(140, 6, "", "", 0, "L", false, 0, "")
	pdf.CellFormat(30, 6, fmt.Sprintf("Subtotal: %s", inv.SubTotal.StringFixed(2)), "", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(140, 7, "", "", 0, "L", false, 0, "")
	pdf.CellFormat(30, 7, fmt.Sprintf("Total: %s", inv.GrandTotal.StringFixed(2)), "", 1, "R", false, 0, "")
}
