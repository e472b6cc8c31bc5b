package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"tradeops/testhelpers"
)

func TestHandleQuotationExportPDF(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleQuotationExportPDF(app)

	testhelpers.CreateTestSettings(t, app, "TradeOps General Trading LLC")
	quotation := testhelpers.CreateTestQuotation(t, app, "TRD-QT-2026-001", "Acme LLC")
	testhelpers.CreateTestQuotationItem(t, app, quotation.Id, 1, "Cable supply", 10, 5, 8)

	req := httptest.NewRequest(http.MethodGet, "/api/quotations/"+quotation.Id+"/pdf", nil)
	req.SetPathValue("id", quotation.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Content-Type"); got != "application/pdf" {
		t.Errorf("expected Content-Type application/pdf, got %q", got)
	}
	if got := rec.Header().Get("Content-Disposition"); !strings.Contains(got, "TRD-QT-2026-001.pdf") {
		t.Errorf("unexpected Content-Disposition: %q", got)
	}
	if !strings.HasPrefix(rec.Body.String(), "%PDF-") {
		t.Error("expected response body to be a PDF document")
	}
}

func TestHandleQuotationExportPDFNotFound(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleQuotationExportPDF(app)

	req := httptest.NewRequest(http.MethodGet, "/api/quotations/missing/pdf", nil)
	req.SetPathValue("id", "missing")
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
}

func TestHandleInvoiceExportPDF(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleInvoiceExportPDF(app)

	testhelpers.CreateTestSettings(t, app, "TradeOps General Trading LLC")
	invoice := testhelpers.CreateTestInvoice(t, app, "TRD-INV-2026-001", "Acme LLC", "")
	testhelpers.CreateTestInvoiceItem(t, app, invoice.Id, 1, "Cable supply", 10, 5, 8)

	req := httptest.NewRequest(http.MethodGet, "/api/invoices/"+invoice.Id+"/pdf", nil)
	req.SetPathValue("id", invoice.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.HasPrefix(rec.Body.String(), "%PDF-") {
		t.Error("expected response body to be a PDF document")
	}
	if got := rec.Header().Get("Content-Disposition"); !strings.Contains(got, "TRD-INV-2026-001.pdf") {
		t.Errorf("unexpected Content-Disposition: %q", got)
	}
}

func TestHandleAnalyticsPricesExcel(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleAnalyticsPricesExcel(app)

	testhelpers.CreateTestSettings(t, app, "TradeOps General Trading LLC")
	v1 := testhelpers.CreateTestVendor(t, app, "Vendor One", 4)
	v2 := testhelpers.CreateTestVendor(t, app, "Vendor Two", 3)
	product := testhelpers.CreateTestProduct(t, app, "Armoured Power Cable 4x16mm")
	testhelpers.CreateTestOffer(t, app, product.Id, v1.Id, 40, 30)
	testhelpers.CreateTestOffer(t, app, product.Id, v2.Id, 50, 30)

	req := httptest.NewRequest(http.MethodGet, "/api/analytics/prices/excel", nil)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Content-Type"); got != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Errorf("unexpected Content-Type: %q", got)
	}
	if got := rec.Header().Get("Content-Disposition"); !strings.Contains(got, "Price_Comparison_") {
		t.Errorf("unexpected Content-Disposition: %q", got)
	}
	// xlsx files are zip archives.
	if body := rec.Body.Bytes(); len(body) < 4 || body[0] != 'P' || body[1] != 'K' {
		t.Error("expected response body to be an xlsx archive")
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"TRD-QT-2026-001", "TRD-QT-2026-001"},
		{"draft copy", "draft-copy"},
		{`a/b\c:d`, "a-b-c-d"},
	}
	for _, tt := range tests {
		if got := sanitizeFilename(tt.in); got != tt.want {
			t.Errorf("sanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
