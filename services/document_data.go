package services

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
)

// companyProfile reads the settings collection for the company block
// printed on documents. Missing settings fall back to blanks so a
// fresh install can still print.
func companyProfile(app *pocketbase.PocketBase, data *DocumentExportData) {
	records, err := app.FindRecordsByFilter("settings", "1=1", "", 1, 0, nil)
	if err != nil || len(records) == 0 {
		log.Printf("document_data: no company settings found, printing without letterhead")
		return
	}
	s := records[0]
	data.CompanyName = s.GetString("company_name")
	data.CompanyAddress = s.GetString("address")
	data.CompanyEmail = s.GetString("email")
	data.CompanyPhone = s.GetString("phone")
	if data.Currency == "" {
		data.Currency = s.GetString("currency")
	}
}

// BuildQuotationExportData assembles everything needed to print a
// quotation. Totals are recomputed from the stored line items and
// policy fields; no stored total is trusted.
func BuildQuotationExportData(app *pocketbase.PocketBase, quotationID string) (*DocumentExportData, error) {
	q, err := app.FindRecordById("quotations", quotationID)
	if err != nil {
		return nil, fmt.Errorf("quotation not found: %w", err)
	}

	data := &DocumentExportData{
		Number:    q.GetString("number"),
		IssueDate: q.GetDateTime("created").Time().Format("2006-01-02"),
		Status:    q.GetString("status"),
		Currency:  q.GetString("currency"),
		Notes:     q.GetString("notes"),
		Client: DocumentClient{
			Name:        q.GetString("client_name"),
			Address:     q.GetString("client_address"),
			ContactName: q.GetString("client_contact"),
			Phone:       q.GetString("client_phone"),
			Email:       q.GetString("client_email"),
			TaxID:       q.GetString("client_tax_id"),
		},
		Discount:     q.GetFloat("discount"),
		DiscountType: DiscountType(q.GetString("discount_type")),
		TaxRate:      q.GetFloat("tax_rate"),
	}
	if validUntil := q.GetDateTime("valid_until"); !validUntil.IsZero() {
		data.ValidUntil = validUntil.Time().Format("2006-01-02")
	}
	companyProfile(app, data)

	items, err := documentLineItems(app, "quotation_items", "quotation", quotationID)
	if err != nil {
		return nil, err
	}
	if err := finishDocumentData(data, items, q.GetFloat("transportation_cost")); err != nil {
		return nil, err
	}
	return data, nil
}

// BuildInvoiceExportData assembles everything needed to print an
// invoice, rerunning the same totals derivation used for quotations.
func BuildInvoiceExportData(app *pocketbase.PocketBase, invoiceID string) (*DocumentExportData, error) {
	inv, err := app.FindRecordById("invoices", invoiceID)
	if err != nil {
		return nil, fmt.Errorf("invoice not found: %w", err)
	}

	data := &DocumentExportData{
		Number:    inv.GetString("number"),
		IssueDate: inv.GetDateTime("created").Time().Format("2006-01-02"),
		Status:    inv.GetString("payment_status"),
		Currency:  inv.GetString("currency"),
		Notes:     inv.GetString("notes"),
		Client: DocumentClient{
			Name:        inv.GetString("client_name"),
			Address:     inv.GetString("client_address"),
			ContactName: inv.GetString("client_contact"),
			Phone:       inv.GetString("client_phone"),
			Email:       inv.GetString("client_email"),
			TaxID:       inv.GetString("client_tax_id"),
		},
		Discount:     inv.GetFloat("discount"),
		DiscountType: DiscountType(inv.GetString("discount_type")),
		TaxRate:      inv.GetFloat("tax_rate"),
	}
	if due := inv.GetDateTime("due_date"); !due.IsZero() {
		data.DueDate = due.Time().Format("2006-01-02")
	}
	if quotationID := inv.GetString("quotation"); quotationID != "" {
		if q, err := app.FindRecordById("quotations", quotationID); err == nil {
			data.QuotationRef = q.GetString("number")
		}
	}
	companyProfile(app, data)

	items, err := documentLineItems(app, "invoice_items", "invoice", invoiceID)
	if err != nil {
		return nil, err
	}
	if err := finishDocumentData(data, items, inv.GetFloat("transportation_cost")); err != nil {
		return nil, err
	}
	return data, nil
}

// documentLineItems loads the stored line items of a document in their
// display order.
func documentLineItems(app *pocketbase.PocketBase, collection, parentField, parentID string) ([]LineItem, error) {
	records, err := app.FindRecordsByFilter(
		collection,
		parentField+" = {:id}",
		"sort_order",
		0, 0,
		map[string]any{"id": parentID},
	)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", collection, err)
	}

	items := make([]LineItem, 0, len(records))
	for _, rec := range records {
		items = append(items, LineItem{
			ProductID:    rec.GetString("product"),
			Description:  rec.GetString("description"),
			Quantity:     rec.GetInt("quantity"),
			Unit:         rec.GetString("unit"),
			VendorCost:   rec.GetFloat("vendor_cost"),
			SellingPrice: rec.GetFloat("selling_price"),
		})
	}
	return items, nil
}

// finishDocumentData derives totals, table rows and the amount in
// words from the raw line items.
func finishDocumentData(data *DocumentExportData, items []LineItem, transportationCost float64) error {
	if data.DiscountType == "" {
		data.DiscountType = DiscountFixed
	}
	totals, err := CalculateQuotation(items, data.Discount, data.DiscountType, transportationCost, data.TaxRate)
	if err != nil {
		return fmt.Errorf("derive totals: %w", err)
	}
	data.Totals = totals
	data.AmountInWords = AmountToWords(totals.GrandTotal, data.Currency)

	data.LineItems = make([]DocumentLineItem, 0, len(items))
	for i, item := range items {
		data.LineItems = append(data.LineItems, DocumentLineItem{
			SINo:        i + 1,
			Description: item.Description,
			Quantity:    item.Quantity,
			Unit:        item.Unit,
			UnitPrice:   item.SellingPrice,
			LineTotal:   totals.Lines[i].LineTotal,
		})
	}
	return nil
}
