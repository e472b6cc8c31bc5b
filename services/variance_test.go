package services

import (
	"testing"
)

func TestPriceVariance_TwoOffers(t *testing.T) {
	p := ProductOffers{
		ProductID:   "p1",
		ProductName: "Copper Wire",
		Offers:      []VendorOffer{offerAt("A", 100, 30), offerAt("B", 150, 30)},
	}

	got, ok := PriceVariance(p, evalTime)
	if !ok {
		t.Fatal("expected variance result")
	}
	if !floatClose(got.VariancePct, 50) {
		t.Errorf("VariancePct = %v, want 50", got.VariancePct)
	}
	if !floatClose(got.PotentialSavings, 50) {
		t.Errorf("PotentialSavings = %v, want 50", got.PotentialSavings)
	}
	if got.CheapestVendor != "Vendor A" || got.PriciestVendor != "Vendor B" {
		t.Errorf("vendors = %s / %s", got.CheapestVendor, got.PriciestVendor)
	}
}

func TestPriceVariance_NotComparable(t *testing.T) {
	tests := []struct {
		name   string
		offers []VendorOffer
	}{
		{"no_offers", nil},
		{"single_offer", []VendorOffer{offerAt("A", 100, 30)}},
		{"second_offer_expired", []VendorOffer{offerAt("A", 100, 30), offerAt("B", 150, -1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := PriceVariance(ProductOffers{ProductID: "p1", Offers: tt.offers}, evalTime)
			if ok {
				t.Error("expected product to be excluded from variance analysis")
			}
		})
	}
}

func TestAnalyzePortfolio_ThresholdAndOrder(t *testing.T) {
	products := []ProductOffers{
		{ProductID: "low", Offers: []VendorOffer{offerAt("A", 100, 30), offerAt("B", 150, 30)}},   // 50%
		{ProductID: "high", Offers: []VendorOffer{offerAt("A", 50, 30), offerAt("B", 100, 30)}},   // 100%
		{ProductID: "mid", Offers: []VendorOffer{offerAt("A", 100, 30), offerAt("B", 170, 30)}},   // 70%
		{ProductID: "single", Offers: []VendorOffer{offerAt("A", 10, 30)}},                        // skipped
	}

	got := AnalyzePortfolio(products, 60, evalTime)

	if len(got.Products) != 2 {
		t.Fatalf("expected 2 qualifying products, got %d", len(got.Products))
	}
	if got.Products[0].ProductID != "high" || got.Products[1].ProductID != "mid" {
		t.Errorf("expected descending variance order, got %s, %s",
			got.Products[0].ProductID, got.Products[1].ProductID)
	}
	if !floatClose(got.AverageVariancePct, 85) {
		t.Errorf("AverageVariancePct = %v, want 85", got.AverageVariancePct)
	}
	if !floatClose(got.TotalPotentialSavings, 120) {
		t.Errorf("TotalPotentialSavings = %v, want 120", got.TotalPotentialSavings)
	}
}

func TestAnalyzePortfolio_ThresholdExcludesFiftyPercentAtSixty(t *testing.T) {
	products := []ProductOffers{
		{ProductID: "p1", Offers: []VendorOffer{offerAt("A", 100, 30), offerAt("B", 150, 30)}},
	}

	got := AnalyzePortfolio(products, 60, evalTime)
	if len(got.Products) != 0 {
		t.Errorf("50%% variance must be excluded at a 60%% threshold, got %+v", got.Products)
	}
}

func TestAnalyzePortfolio_Empty(t *testing.T) {
	got := AnalyzePortfolio(nil, 0, evalTime)
	if len(got.Products) != 0 || got.AverageVariancePct != 0 || got.TotalPotentialSavings != 0 {
		t.Errorf("expected zeroed report, got %+v", got)
	}
}
