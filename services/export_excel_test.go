package services

import (
	"testing"

	"github.com/xuri/excelize/v2"
)

func comparisonFixture() ComparisonExportData {
	return ComparisonExportData{
		Title:       "Vendor Comparison",
		Scope:       "Category: Electrical",
		GeneratedAt: "2026-03-01",
		Currency:    "USD",
		Summary: PriceSummary{
			ProductCount: 2,
			VendorCount:  2,
			OfferCount:   4,
			AveragePrice: 112.5,
			MinPrice:     80,
			MaxPrice:     150,
			Vendors: []VendorPriceStats{
				{VendorID: "v1", VendorName: "Acme Traders", OfferCount: 2, AveragePrice: 90, MinPrice: 80, MaxPrice: 100},
				{VendorID: "v2", VendorName: "Global Supply", OfferCount: 2, AveragePrice: 135, MinPrice: 120, MaxPrice: 150},
			},
		},
		Variance: PortfolioVariance{
			Products: []VarianceResult{
				{ProductID: "p1", ProductName: "Cable Drum", OfferCount: 2, VariancePct: 50, CheapestVendor: "Acme Traders", PotentialSavings: 40},
			},
			AverageVariancePct:    50,
			TotalPotentialSavings: 40,
		},
	}
}

func TestGeneratePriceComparisonExcel(t *testing.T) {
	result, err := GeneratePriceComparisonExcel(comparisonFixture())
	if err != nil {
		t.Fatalf("GeneratePriceComparisonExcel() error = %v", err)
	}
	if len(result) == 0 {
		t.Fatal("GeneratePriceComparisonExcel() returned empty bytes")
	}

	f, err := excelize.OpenReader(bytesReader(result))
	if err != nil {
		t.Fatalf("result is not valid Excel: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 || sheets[0] != "Vendor Comparison" {
		t.Errorf("expected sheet name 'Vendor Comparison', got %v", sheets)
	}

	title, _ := f.GetCellValue(sheets[0], "A1")
	if title != "Vendor Comparison" {
		t.Errorf("expected title in A1, got %q", title)
	}

	// Cheapest vendor leads the comparison table (row 12 after the
	// 6-line summary block and the header row).
	vendor, _ := f.GetCellValue(sheets[0], "A12")
	if vendor != "Acme Traders" {
		t.Errorf("expected 'Acme Traders' first in the vendor table, got %q", vendor)
	}
}

func TestGeneratePriceComparisonExcel_EmptySummary(t *testing.T) {
	data := ComparisonExportData{
		Title:       "Nothing To Compare",
		GeneratedAt: "2026-03-01",
		Currency:    "USD",
	}

	result, err := GeneratePriceComparisonExcel(data)
	if err != nil {
		t.Fatalf("GeneratePriceComparisonExcel() error = %v", err)
	}
	if len(result) == 0 {
		t.Fatal("expected a workbook even with no data")
	}
}

func TestGeneratePriceComparisonExcel_LongTitleTruncated(t *testing.T) {
	data := comparisonFixture()
	data.Title = "This is a very long workbook title that exceeds the sheet limit"

	result, err := GeneratePriceComparisonExcel(data)
	if err != nil {
		t.Fatalf("GeneratePriceComparisonExcel() error = %v", err)
	}

	f, err := excelize.OpenReader(bytesReader(result))
	if err != nil {
		t.Fatalf("result is not valid Excel: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets[0]) > 31 {
		t.Errorf("sheet name exceeds 31 chars: %d", len(sheets[0]))
	}
}

func TestGeneratePriceComparisonExcel_DefaultSheetName(t *testing.T) {
	data := comparisonFixture()
	data.Title = ""

	result, err := GeneratePriceComparisonExcel(data)
	if err != nil {
		t.Fatalf("GeneratePriceComparisonExcel() error = %v", err)
	}

	f, err := excelize.OpenReader(bytesReader(result))
	if err != nil {
		t.Fatalf("result is not valid Excel: %v", err)
	}
	defer f.Close()

	if got := f.GetSheetList()[0]; got != "Price Comparison" {
		t.Errorf("expected default sheet name 'Price Comparison', got %q", got)
	}
}

func TestSanitizeExcelCell(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{"plain", "Acme Traders", "Acme Traders"},
		{"formula", "=SUM(A1:A9)", "'=SUM(A1:A9)"},
		{"plus", "+1234", "'+1234"},
		{"at_sign", "@vendor", "'@vendor"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sanitizeExcelCell(tt.input); got != tt.expect {
				t.Errorf("sanitizeExcelCell(%q) = %q, want %q", tt.input, got, tt.expect)
			}
		})
	}
}
