package services

import (
	"testing"
)

func TestSummarizePrices_SingleProduct(t *testing.T) {
	products := []ProductOffers{
		{
			ProductID:   "p1",
			ProductName: "Steel Rod",
			Offers: []VendorOffer{
				offerAt("A", 100, 30),
				offerAt("B", 150, 30),
				offerAt("C", 125, 30),
			},
		},
	}

	got := SummarizePrices(products, evalTime)

	if got.ProductCount != 1 {
		t.Errorf("ProductCount = %d, want 1", got.ProductCount)
	}
	if got.VendorCount != 3 {
		t.Errorf("VendorCount = %d, want 3", got.VendorCount)
	}
	if got.OfferCount != 3 {
		t.Errorf("OfferCount = %d, want 3", got.OfferCount)
	}
	if !floatClose(got.AveragePrice, 125) {
		t.Errorf("AveragePrice = %v, want 125", got.AveragePrice)
	}
	if !floatClose(got.MinPrice, 100) || !floatClose(got.MaxPrice, 150) {
		t.Errorf("Min/Max = %v/%v, want 100/150", got.MinPrice, got.MaxPrice)
	}
}

func TestSummarizePrices_VendorTableSortedByAverage(t *testing.T) {
	products := []ProductOffers{
		{ProductID: "p1", Offers: []VendorOffer{offerAt("X", 200, 30), offerAt("Y", 80, 30)}},
		{ProductID: "p2", Offers: []VendorOffer{offerAt("X", 100, 30), offerAt("Z", 120, 30)}},
	}

	got := SummarizePrices(products, evalTime)

	if len(got.Vendors) != 3 {
		t.Fatalf("expected 3 vendors, got %d", len(got.Vendors))
	}
	// Y avg 80, Z avg 120, X avg 150 — cheapest average first.
	wantOrder := []string{"Y", "Z", "X"}
	for i, want := range wantOrder {
		if got.Vendors[i].VendorID != want {
			t.Errorf("Vendors[%d] = %s, want %s", i, got.Vendors[i].VendorID, want)
		}
	}
	if got.Vendors[2].OfferCount != 2 {
		t.Errorf("vendor X OfferCount = %d, want 2", got.Vendors[2].OfferCount)
	}
	if !floatClose(got.Vendors[2].AveragePrice, 150) {
		t.Errorf("vendor X AveragePrice = %v, want 150", got.Vendors[2].AveragePrice)
	}
}

func TestSummarizePrices_OrderIndependent(t *testing.T) {
	forward := []ProductOffers{
		{ProductID: "p1", Offers: []VendorOffer{offerAt("A", 10, 30), offerAt("B", 30, 30), offerAt("C", 20, 30)}},
	}
	shuffled := []ProductOffers{
		{ProductID: "p1", Offers: []VendorOffer{offerAt("C", 20, 30), offerAt("A", 10, 30), offerAt("B", 30, 30)}},
	}

	a := SummarizePrices(forward, evalTime)
	b := SummarizePrices(shuffled, evalTime)

	if a.AveragePrice != b.AveragePrice || a.MinPrice != b.MinPrice || a.MaxPrice != b.MaxPrice {
		t.Errorf("summary statistics changed with input order: %+v vs %+v", a, b)
	}
	for i := range a.Vendors {
		if a.Vendors[i] != b.Vendors[i] {
			t.Errorf("vendor table changed with input order at %d: %+v vs %+v", i, a.Vendors[i], b.Vendors[i])
		}
	}
}

func TestSummarizePrices_ExcludesExpiredOffers(t *testing.T) {
	products := []ProductOffers{
		{ProductID: "p1", Offers: []VendorOffer{
			offerAt("A", 50, -1), // expired, and the cheapest
			offerAt("B", 100, 30),
		}},
	}

	got := SummarizePrices(products, evalTime)

	if got.OfferCount != 1 {
		t.Fatalf("OfferCount = %d, want 1", got.OfferCount)
	}
	if !floatClose(got.MinPrice, 100) {
		t.Errorf("MinPrice = %v, want 100 (expired offer must not leak in)", got.MinPrice)
	}
	for _, v := range got.Vendors {
		if v.VendorID == "A" {
			t.Error("expired vendor A should not appear in the comparison table")
		}
	}
}

func TestSummarizePrices_EmptyInput(t *testing.T) {
	got := SummarizePrices(nil, evalTime)
	if got.ProductCount != 0 || got.VendorCount != 0 || got.OfferCount != 0 {
		t.Errorf("expected zero counts, got %+v", got)
	}
	if len(got.Vendors) != 0 {
		t.Errorf("expected empty vendor table, got %d entries", len(got.Vendors))
	}
	if got.AveragePrice != 0 || got.MinPrice != 0 || got.MaxPrice != 0 {
		t.Errorf("expected zero statistics, got %+v", got)
	}
}
