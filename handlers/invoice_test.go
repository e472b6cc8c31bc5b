package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"tradeops/testhelpers"
)

func TestHandleQuotationToInvoice(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleQuotationToInvoice(app)

	quotation := testhelpers.CreateTestQuotation(t, app, "TRD-QT-2026-001", "Acme LLC")
	testhelpers.CreateTestQuotationItem(t, app, quotation.Id, 1, "Cable supply", 10, 5, 8)
	testhelpers.CreateTestQuotationItem(t, app, quotation.Id, 2, "Breaker supply", 2, 100, 130)

	req := newJSONRequest(http.MethodPost, "/api/quotations/"+quotation.Id+"/invoice",
		`{"due_date":"2026-10-15"}`)
	req.SetPathValue("id", quotation.Id)
	req = req.WithContext(context.WithValue(req.Context(), ActorKey, "omar"))
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	wantNumber := fmt.Sprintf("TRD-INV-%d-001", time.Now().Year())
	// Subtotal 340, 5% tax, no discount or transport.
	testhelpers.AssertJSONContains(t, rec.Body.String(),
		fmt.Sprintf(`"number":%q`, wantNumber),
		`"client_name":"Acme LLC"`,
		`"payment_status":"unpaid"`,
		`"created_by":"omar"`,
		`"subtotal":340`,
		`"grand_total":357`,
	)

	invoices, err := app.FindRecordsByFilter("invoices", "quotation = {:q}", "", 10, 0,
		map[string]any{"q": quotation.Id})
	if err != nil {
		t.Fatalf("failed to query invoices: %v", err)
	}
	if len(invoices) != 1 {
		t.Fatalf("expected 1 invoice, got %d", len(invoices))
	}

	items, err := app.FindRecordsByFilter("invoice_items", "invoice = {:i}", "sort_order", 0, 0,
		map[string]any{"i": invoices[0].Id})
	if err != nil {
		t.Fatalf("failed to query invoice items: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 copied items, got %d", len(items))
	}
	if got := items[0].GetFloat("selling_price"); got != 8 {
		t.Errorf("expected copied selling price 8, got %v", got)
	}

	reloaded, err := app.FindRecordById("quotations", quotation.Id)
	if err != nil {
		t.Fatalf("failed to reload quotation: %v", err)
	}
	if got := reloaded.GetString("status"); got != "accepted" {
		t.Errorf("expected quotation status accepted, got %q", got)
	}
}

func TestHandleQuotationToInvoiceWithoutItems(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleQuotationToInvoice(app)

	quotation := testhelpers.CreateTestQuotation(t, app, "TRD-QT-2026-002", "Empty Client")

	req := newJSONRequest(http.MethodPost, "/api/quotations/"+quotation.Id+"/invoice", `{}`)
	req.SetPathValue("id", quotation.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestHandleInvoicePaymentUpdate(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleInvoicePaymentUpdate(app)

	invoice := testhelpers.CreateTestInvoice(t, app, "TRD-INV-2026-001", "Acme LLC", "")

	req := newJSONRequest(http.MethodPatch, "/api/invoices/"+invoice.Id+"/payment",
		`{"payment_status":"paid","notes":"Settled by bank transfer"}`)
	req.SetPathValue("id", invoice.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	testhelpers.AssertJSONContains(t, rec.Body.String(), `"payment_status":"paid"`)

	reloaded, err := app.FindRecordById("invoices", invoice.Id)
	if err != nil {
		t.Fatalf("failed to reload invoice: %v", err)
	}
	if got := reloaded.GetString("payment_status"); got != "paid" {
		t.Errorf("expected payment_status paid, got %q", got)
	}
}

func TestHandleInvoicePaymentUpdateValidation(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleInvoicePaymentUpdate(app)

	invoice := testhelpers.CreateTestInvoice(t, app, "TRD-INV-2026-002", "Acme LLC", "")

	tests := []struct {
		name string
		body string
	}{
		{"unknown status", `{"payment_status":"overdue"}`},
		{"missing status", `{"notes":"x"}`},
		{"bad due date", `{"payment_status":"partial","due_date":"next week"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := newJSONRequest(http.MethodPatch, "/api/invoices/"+invoice.Id+"/payment", tt.body)
			req.SetPathValue("id", invoice.Id)
			rec := httptest.NewRecorder()
			e := newTestRequestEvent(app, req, rec)

			if err := handler(e); err != nil {
				t.Fatalf("handler returned error: %v", err)
			}
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected status 400, got %d: %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestHandleInvoiceToDeliveryNote(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleInvoiceToDeliveryNote(app)

	invoice := testhelpers.CreateTestInvoice(t, app, "TRD-INV-2026-003", "Acme LLC", "")
	invoice.Set("client_address", "Plot 14, Industrial Area 3")
	if err := app.Save(invoice); err != nil {
		t.Fatalf("failed to update invoice: %v", err)
	}
	testhelpers.CreateTestInvoiceItem(t, app, invoice.Id, 1, "Cable supply", 10, 5, 8)

	req := newJSONRequest(http.MethodPost, "/api/invoices/"+invoice.Id+"/delivery-note",
		`{"vehicle":"DXB A 12345"}`)
	req.SetPathValue("id", invoice.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	wantNumber := fmt.Sprintf("TRD-DN-%d-001", time.Now().Year())
	// The delivery address falls back to the invoice client address.
	testhelpers.AssertJSONContains(t, rec.Body.String(),
		fmt.Sprintf(`"number":%q`, wantNumber),
		`"status":"pending"`,
		`"delivery_address":"Plot 14, Industrial Area 3"`,
		`"vehicle":"DXB A 12345"`,
	)
	if strings.Contains(rec.Body.String(), "selling_price") {
		t.Error("expected delivery note response to carry no prices")
	}

	notes, err := app.FindRecordsByFilter("delivery_notes", "invoice = {:i}", "", 10, 0,
		map[string]any{"i": invoice.Id})
	if err != nil {
		t.Fatalf("failed to query delivery notes: %v", err)
	}
	if len(notes) != 1 {
		t.Fatalf("expected 1 delivery note, got %d", len(notes))
	}

	items, err := app.FindRecordsByFilter("delivery_note_items", "delivery_note = {:n}", "", 0, 0,
		map[string]any{"n": notes[0].Id})
	if err != nil {
		t.Fatalf("failed to query delivery note items: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 copied item, got %d", len(items))
	}
	if got := items[0].GetInt("quantity"); got != 10 {
		t.Errorf("expected quantity 10, got %d", got)
	}
}

func TestHandleInvoiceToDeliveryNoteWithoutItems(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleInvoiceToDeliveryNote(app)

	invoice := testhelpers.CreateTestInvoice(t, app, "TRD-INV-2026-004", "Empty Client", "")

	req := newJSONRequest(http.MethodPost, "/api/invoices/"+invoice.Id+"/delivery-note", `{}`)
	req.SetPathValue("id", invoice.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestHandleDeliveryNoteStatus(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	noteHandler := HandleInvoiceToDeliveryNote(app)
	statusHandler := HandleDeliveryNoteStatus(app)

	invoice := testhelpers.CreateTestInvoice(t, app, "TRD-INV-2026-005", "Acme LLC", "")
	testhelpers.CreateTestInvoiceItem(t, app, invoice.Id, 1, "Cable supply", 5, 5, 8)

	req := newJSONRequest(http.MethodPost, "/api/invoices/"+invoice.Id+"/delivery-note", `{}`)
	req.SetPathValue("id", invoice.Id)
	rec := httptest.NewRecorder()
	if err := noteHandler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("failed to create delivery note: %v", err)
	}
	notes, err := app.FindRecordsByFilter("delivery_notes", "invoice = {:i}", "", 1, 0,
		map[string]any{"i": invoice.Id})
	if err != nil || len(notes) != 1 {
		t.Fatalf("failed to load delivery note: %v", err)
	}
	note := notes[0]

	// Delivered without a receiver name is rejected.
	req = newJSONRequest(http.MethodPatch, "/api/delivery-notes/"+note.Id+"/status",
		`{"status":"delivered"}`)
	req.SetPathValue("id", note.Id)
	rec = httptest.NewRecorder()
	if err := statusHandler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d: %s", rec.Code, rec.Body.String())
	}

	req = newJSONRequest(http.MethodPatch, "/api/delivery-notes/"+note.Id+"/status",
		`{"status":"delivered","received_by":"K. Mathew"}`)
	req.SetPathValue("id", note.Id)
	rec = httptest.NewRecorder()
	if err := statusHandler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	testhelpers.AssertJSONContains(t, rec.Body.String(), `"status":"delivered"`, `"received_by":"K. Mathew"`)
}
