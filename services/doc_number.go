package services

import (
	"fmt"
	"time"

	"github.com/pocketbase/pocketbase"
)

// Document number prefixes. Numbers look like TRD-QT-2026-004.
const (
	docPrefixQuotation    = "QT"
	docPrefixInvoice      = "INV"
	docPrefixDeliveryNote = "DN"
)

func formatDocNumber(kind string, year int, sequence int) string {
	return fmt.Sprintf("TRD-%s-%d-%03d", kind, year, sequence)
}

// nextDocNumber counts the existing records of a collection whose
// number carries the current year's prefix and returns the next one in
// sequence.
func nextDocNumber(app *pocketbase.PocketBase, collection, kind string, now time.Time) string {
	year := now.Year()
	prefix := fmt.Sprintf("TRD-%s-%d-", kind, year)

	existing, err := app.FindRecordsByFilter(
		collection,
		"number ~ {:prefix}",
		"",
		0,
		0,
		map[string]any{"prefix": prefix + "%"},
	)
	if err != nil {
		existing = nil
	}

	return formatDocNumber(kind, year, len(existing)+1)
}

// GenerateQuotationNumber creates the next quotation number.
// The sequence restarts every calendar year.
func GenerateQuotationNumber(app *pocketbase.PocketBase, now time.Time) string {
	return nextDocNumber(app, "quotations", docPrefixQuotation, now)
}

// GenerateInvoiceNumber creates the next invoice number.
func GenerateInvoiceNumber(app *pocketbase.PocketBase, now time.Time) string {
	return nextDocNumber(app, "invoices", docPrefixInvoice, now)
}

// GenerateDeliveryNoteNumber creates the next delivery note number.
func GenerateDeliveryNoteNumber(app *pocketbase.PocketBase, now time.Time) string {
	return nextDocNumber(app, "delivery_notes", docPrefixDeliveryNote, now)
}
