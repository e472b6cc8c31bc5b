package collections_test

import (
	"testing"

	"tradeops/collections"
	"tradeops/testhelpers"

	"github.com/pocketbase/pocketbase/core"
)

// expectedCollections is the full list of collections that Setup() must create.
var expectedCollections = []string{
	"vendors",
	"products",
	"vendor_offers",
	"quotations",
	"quotation_items",
	"invoices",
	"invoice_items",
	"delivery_notes",
	"delivery_note_items",
	"settings",
}

func TestSetup_AllCollectionsExist(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	for _, name := range expectedCollections {
		col, err := app.FindCollectionByNameOrId(name)
		if err != nil {
			t.Errorf("collection %q not found after Setup(): %v", name, err)
			continue
		}
		if col.Name != name {
			t.Errorf("expected collection name %q, got %q", name, col.Name)
		}
	}
}

func TestSetup_Idempotent(t *testing.T) {
	app := testhelpers.NewTestApp(t) // Setup() already called once via NewTestApp

	// Collect IDs from first run
	ids := make(map[string]string)
	for _, name := range expectedCollections {
		col, _ := app.FindCollectionByNameOrId(name)
		ids[name] = col.Id
	}

	// Run Setup() again
	collections.Setup(app)

	// IDs should not change
	for _, name := range expectedCollections {
		col, err := app.FindCollectionByNameOrId(name)
		if err != nil {
			t.Errorf("collection %q missing after second Setup(): %v", name, err)
			continue
		}
		if col.Id != ids[name] {
			t.Errorf("collection %q id changed after second Setup(): %s -> %s", name, ids[name], col.Id)
		}
	}
}

func TestSetup_VendorsFields(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	col, _ := app.FindCollectionByNameOrId("vendors")

	fields := []string{
		"name", "contact_name", "phone", "email", "city", "tax_id",
		"reliability", "notes", "created", "updated",
	}
	for _, f := range fields {
		if col.Fields.GetByName(f) == nil {
			t.Errorf("vendors: missing field %q", f)
		}
	}
}

func TestSetup_VendorOffersFields(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	col, _ := app.FindCollectionByNameOrId("vendor_offers")

	fields := []string{
		"product", "vendor", "price", "currency", "valid_until",
		"minimum_quantity", "delivery_time", "superseded", "created", "updated",
	}
	for _, f := range fields {
		if col.Fields.GetByName(f) == nil {
			t.Errorf("vendor_offers: missing field %q", f)
		}
	}

	// Both relations should cascade delete
	for _, relName := range []string{"product", "vendor"} {
		field := col.Fields.GetByName(relName)
		if rf, ok := field.(*core.RelationField); ok {
			if !rf.CascadeDelete {
				t.Errorf("vendor_offers.%s: expected CascadeDelete=true", relName)
			}
		} else {
			t.Errorf("vendor_offers.%s is not a RelationField", relName)
		}
	}
}

func TestSetup_QuotationsFields(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	col, _ := app.FindCollectionByNameOrId("quotations")

	fields := []string{
		"number", "client_name", "client_address", "client_contact",
		"client_phone", "client_email", "client_tax_id",
		"status", "discount", "discount_type", "transportation_cost",
		"tax_rate", "currency", "valid_until", "notes", "created_by",
		"created", "updated",
	}
	for _, f := range fields {
		if col.Fields.GetByName(f) == nil {
			t.Errorf("quotations: missing field %q", f)
		}
	}

	// Verify status is a select field with expected values
	statusField := col.Fields.GetByName("status")
	if sf, ok := statusField.(*core.SelectField); ok {
		expected := map[string]bool{"draft": true, "sent": true, "accepted": true, "rejected": true}
		for _, v := range sf.Values {
			if !expected[v] {
				t.Errorf("unexpected status value: %q", v)
			}
			delete(expected, v)
		}
		for v := range expected {
			t.Errorf("missing status value: %q", v)
		}
	} else {
		t.Errorf("status field is not a SelectField")
	}

	// discount_type select field
	dtField := col.Fields.GetByName("discount_type")
	if sf, ok := dtField.(*core.SelectField); ok {
		if len(sf.Values) != 2 {
			t.Errorf("quotations.discount_type: expected 2 values, got %d", len(sf.Values))
		}
	} else {
		t.Errorf("discount_type field is not a SelectField")
	}
}

func TestSetup_QuotationItemsFields(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	col, _ := app.FindCollectionByNameOrId("quotation_items")

	fields := []string{
		"quotation", "product", "vendor", "sort_order", "description",
		"quantity", "unit", "vendor_cost", "selling_price",
	}
	for _, f := range fields {
		if col.Fields.GetByName(f) == nil {
			t.Errorf("quotation_items: missing field %q", f)
		}
	}

	// quotation relation with cascade delete
	qField := col.Fields.GetByName("quotation")
	if rf, ok := qField.(*core.RelationField); ok {
		if !rf.CascadeDelete {
			t.Error("quotation_items.quotation: expected CascadeDelete=true")
		}
	}
}

func TestSetup_InvoicesFields(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	col, _ := app.FindCollectionByNameOrId("invoices")

	fields := []string{
		"number", "quotation", "client_name", "payment_status",
		"discount", "discount_type", "transportation_cost", "tax_rate",
		"currency", "due_date", "notes", "created_by", "created", "updated",
	}
	for _, f := range fields {
		if col.Fields.GetByName(f) == nil {
			t.Errorf("invoices: missing field %q", f)
		}
	}

	// payment_status select field
	psField := col.Fields.GetByName("payment_status")
	if sf, ok := psField.(*core.SelectField); ok {
		expected := []string{"unpaid", "partial", "paid"}
		if len(sf.Values) != len(expected) {
			t.Errorf("invoices.payment_status: expected %d values, got %d", len(expected), len(sf.Values))
		}
	}
}

func TestSetup_DeliveryNotesFields(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	col, _ := app.FindCollectionByNameOrId("delivery_notes")

	fields := []string{
		"number", "invoice", "client_name", "delivery_address",
		"vehicle", "received_by", "status", "created_by", "created", "updated",
	}
	for _, f := range fields {
		if col.Fields.GetByName(f) == nil {
			t.Errorf("delivery_notes: missing field %q", f)
		}
	}

	// Line items carry no prices
	itemsCol, _ := app.FindCollectionByNameOrId("delivery_note_items")
	for _, f := range []string{"selling_price", "vendor_cost"} {
		if itemsCol.Fields.GetByName(f) != nil {
			t.Errorf("delivery_note_items: unexpected price field %q", f)
		}
	}
}

func TestSetup_SettingsFields(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	col, _ := app.FindCollectionByNameOrId("settings")

	fields := []string{"company_name", "address", "email", "phone", "currency"}
	for _, f := range fields {
		if col.Fields.GetByName(f) == nil {
			t.Errorf("settings: missing field %q", f)
		}
	}
}

func TestSetup_OfferCascadeDeleteOnProduct(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	vendor := testhelpers.CreateTestVendor(t, app, "Cascade Vendor", 4)
	product := testhelpers.CreateTestProduct(t, app, "Cascade Product")
	offer := testhelpers.CreateTestOffer(t, app, product.Id, vendor.Id, 100, 30)

	if err := app.Delete(product); err != nil {
		t.Fatalf("failed to delete product: %v", err)
	}

	_, err := app.FindRecordById("vendor_offers", offer.Id)
	if err == nil {
		t.Error("offer should have been cascade-deleted with product")
	}
}

func TestSetup_ItemCascadeDeleteOnQuotation(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	q := testhelpers.CreateTestQuotation(t, app, "TRD-QT-2026-001", "Cascade Client")
	item := testhelpers.CreateTestQuotationItem(t, app, q.Id, 1, "Item 1", 10, 80, 100)

	if err := app.Delete(q); err != nil {
		t.Fatalf("failed to delete quotation: %v", err)
	}

	_, err := app.FindRecordById("quotation_items", item.Id)
	if err == nil {
		t.Error("quotation_item should have been cascade-deleted with quotation")
	}
}
