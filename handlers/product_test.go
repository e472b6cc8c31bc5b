package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"tradeops/testhelpers"
)

func TestHandleProductCreate(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleProductCreate(app)

	body := `{"name":"Armoured Power Cable 4x16mm","sku":"CBL-4X16","category":"Cables","unit":"m",
		"specifications":{"cores":4,"material":"copper"}}`
	req := newJSONRequest(http.MethodPost, "/api/products", body)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}
	testhelpers.AssertJSONContains(t, rec.Body.String(),
		`"name":"Armoured Power Cable 4x16mm"`,
		`"sku":"CBL-4X16"`,
		`"material":"copper"`,
	)
}

func TestHandleProductCreateRequiresName(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleProductCreate(app)

	req := newJSONRequest(http.MethodPost, "/api/products", `{"sku":"X-1"}`)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestHandleProductListFiltersByCategory(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleProductList(app)

	cable := testhelpers.CreateTestProduct(t, app, "Armoured Power Cable 4x16mm")
	cable.Set("category", "Cables")
	if err := app.Save(cable); err != nil {
		t.Fatalf("failed to update product: %v", err)
	}
	breaker := testhelpers.CreateTestProduct(t, app, "Industrial Circuit Breaker 250A")
	breaker.Set("category", "Protection")
	if err := app.Save(breaker); err != nil {
		t.Fatalf("failed to update product: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/products?category=Cables", nil)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	testhelpers.AssertJSONContains(t, body, `"name":"Armoured Power Cable 4x16mm"`)
	if strings.Contains(body, "Circuit Breaker") {
		t.Error("expected products outside the category to be excluded")
	}
}

func TestHandleOfferListHidesSupersededByDefault(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleOfferList(app)

	vendor := testhelpers.CreateTestVendor(t, app, "Asia Pacific Trading Co", 5)
	product := testhelpers.CreateTestProduct(t, app, "Armoured Power Cable 4x16mm")

	old := testhelpers.CreateTestOffer(t, app, product.Id, vendor.Id, 50, 30)
	old.Set("superseded", true)
	if err := app.Save(old); err != nil {
		t.Fatalf("failed to supersede offer: %v", err)
	}
	testhelpers.CreateTestOffer(t, app, product.Id, vendor.Id, 45, 30)

	req := httptest.NewRequest(http.MethodGet, "/api/products/"+product.Id+"/offers", nil)
	req.SetPathValue("productId", product.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	testhelpers.AssertJSONContains(t, body, `"price":45`)
	if strings.Contains(body, `"price":50`) {
		t.Error("expected superseded offer to be hidden")
	}

	// With history, both revisions show.
	req = httptest.NewRequest(http.MethodGet, "/api/products/"+product.Id+"/offers?history=true", nil)
	req.SetPathValue("productId", product.Id)
	rec = httptest.NewRecorder()
	e = newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	testhelpers.AssertJSONContains(t, rec.Body.String(), `"price":45`, `"price":50`)
}

func TestGetActor(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := GetActor(req); got != "" {
		t.Errorf("expected empty actor without context, got %q", got)
	}

	req = req.WithContext(context.WithValue(req.Context(), ActorKey, "sara"))
	if got := GetActor(req); got != "sara" {
		t.Errorf("expected actor sara, got %q", got)
	}
}
