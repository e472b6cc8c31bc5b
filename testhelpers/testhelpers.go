// Package testhelpers provides utilities for testing PocketBase-based applications.
package testhelpers

import (
	"strings"
	"testing"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"tradeops/collections"
)

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app and runs collections.Setup to create all tables.
// The temporary directory is cleaned up automatically when the test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	collections.Setup(app)

	return app
}

// CreateTestVendor creates a vendor record with the given name and reliability.
func CreateTestVendor(t *testing.T, app *pocketbase.PocketBase, name string, reliability int) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("vendors")
	if err != nil {
		t.Fatalf("failed to find vendors collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("name", name)
	record.Set("city", "Dubai")
	record.Set("contact_name", "Test Contact")
	record.Set("phone", "+971 4 555 0000")
	record.Set("reliability", reliability)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test vendor: %v", err)
	}

	return record
}

// CreateTestProduct creates a product record with the given name and returns it.
func CreateTestProduct(t *testing.T, app *pocketbase.PocketBase, name string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("products")
	if err != nil {
		t.Fatalf("failed to find products collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("name", name)
	record.Set("category", "Electrical")
	record.Set("unit", "pcs")

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test product: %v", err)
	}

	return record
}

// CreateTestOffer creates a vendor offer for a product, valid for validDays
// from now and with a minimum quantity of 1.
func CreateTestOffer(t *testing.T, app *pocketbase.PocketBase, productID, vendorID string, price float64, validDays int) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("vendor_offers")
	if err != nil {
		t.Fatalf("failed to find vendor_offers collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("product", productID)
	record.Set("vendor", vendorID)
	record.Set("price", price)
	record.Set("currency", "USD")
	record.Set("valid_until", time.Now().AddDate(0, 0, validDays))
	record.Set("minimum_quantity", 1)
	record.Set("delivery_time", "2 weeks")
	record.Set("superseded", false)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test offer: %v", err)
	}

	return record
}

// CreateTestQuotation creates a quotation record in draft status.
func CreateTestQuotation(t *testing.T, app *pocketbase.PocketBase, number, clientName string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("quotations")
	if err != nil {
		t.Fatalf("failed to find quotations collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("number", number)
	record.Set("client_name", clientName)
	record.Set("client_address", "123 Test Street, Dubai")
	record.Set("status", "draft")
	record.Set("discount", 0)
	record.Set("discount_type", "fixed")
	record.Set("transportation_cost", 0)
	record.Set("tax_rate", 5)
	record.Set("currency", "USD")

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test quotation: %v", err)
	}

	return record
}

// CreateTestQuotationItem creates a line item under a quotation.
func CreateTestQuotationItem(t *testing.T, app *pocketbase.PocketBase, quotationID string, sortOrder int, description string, qty int, vendorCost, sellingPrice float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("quotation_items")
	if err != nil {
		t.Fatalf("failed to find quotation_items collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("quotation", quotationID)
	record.Set("sort_order", sortOrder)
	record.Set("description", description)
	record.Set("quantity", qty)
	record.Set("unit", "pcs")
	record.Set("vendor_cost", vendorCost)
	record.Set("selling_price", sellingPrice)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test quotation item: %v", err)
	}

	return record
}

// CreateTestInvoice creates an invoice record, optionally linked to a quotation.
func CreateTestInvoice(t *testing.T, app *pocketbase.PocketBase, number, clientName, quotationID string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("invoices")
	if err != nil {
		t.Fatalf("failed to find invoices collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("number", number)
	record.Set("client_name", clientName)
	record.Set("payment_status", "unpaid")
	record.Set("discount", 0)
	record.Set("discount_type", "fixed")
	record.Set("transportation_cost", 0)
	record.Set("tax_rate", 5)
	record.Set("currency", "USD")
	if quotationID != "" {
		record.Set("quotation", quotationID)
	}

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test invoice: %v", err)
	}

	return record
}

// CreateTestInvoiceItem creates a line item under an invoice.
func CreateTestInvoiceItem(t *testing.T, app *pocketbase.PocketBase, invoiceID string, sortOrder int, description string, qty int, vendorCost, sellingPrice float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("invoice_items")
	if err != nil {
		t.Fatalf("failed to find invoice_items collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("invoice", invoiceID)
	record.Set("sort_order", sortOrder)
	record.Set("description", description)
	record.Set("quantity", qty)
	record.Set("unit", "pcs")
	record.Set("vendor_cost", vendorCost)
	record.Set("selling_price", sellingPrice)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test invoice item: %v", err)
	}

	return record
}

// CreateTestSettings creates the company settings record used by exports.
func CreateTestSettings(t *testing.T, app *pocketbase.PocketBase, companyName string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("settings")
	if err != nil {
		t.Fatalf("failed to find settings collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("company_name", companyName)
	record.Set("address", "Jebel Ali Free Zone, Dubai")
	record.Set("email", "sales@test.example")
	record.Set("phone", "+971 4 555 0100")
	record.Set("currency", "USD")

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test settings: %v", err)
	}

	return record
}

// AssertJSONContains checks that body contains all specified fragments.
func AssertJSONContains(t *testing.T, body string, fragments ...string) {
	t.Helper()

	for _, frag := range fragments {
		if !strings.Contains(body, frag) {
			t.Errorf("expected JSON to contain %q, but it was not found\nbody (first 500 chars): %s",
				frag, truncate(body, 500))
		}
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
