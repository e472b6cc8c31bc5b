package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"tradeops/services"
)

// sanitizeFilename removes characters that are unsafe for filenames.
func sanitizeFilename(s string) string {
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "/", "-")
	s = strings.ReplaceAll(s, "\\", "-")
	s = strings.ReplaceAll(s, ":", "-")
	return s
}

// HandleAnalyticsPricesExcel downloads the vendor price comparison workbook.
func HandleAnalyticsPricesExcel(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		query := e.Request.URL.Query()
		productID := query.Get("product")
		vendorID := query.Get("vendor")
		category := query.Get("category")

		products, err := loadAllProductOffers(app, productID, vendorID, category)
		if err != nil {
			log.Printf("analytics_export: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong")
		}

		now := time.Now()
		scope := "All products"
		if category != "" {
			scope = fmt.Sprintf("Category: %s", category)
		}
		if productID != "" && len(products) == 1 {
			scope = fmt.Sprintf("Product: %s", products[0].ProductName)
		}

		currency := "USD"
		if settings, err := app.FindRecordsByFilter("settings", "id != ''", "", 1, 0, nil); err == nil && len(settings) > 0 {
			if c := settings[0].GetString("currency"); c != "" {
				currency = c
			}
		}

		data := services.ComparisonExportData{
			Title:       "Vendor Price Comparison",
			Scope:       scope,
			GeneratedAt: now.Format("02 Jan 2006 15:04"),
			Currency:    currency,
			Summary:     services.SummarizePrices(products, now),
			Variance:    services.AnalyzePortfolio(products, 0, now),
		}

		xlsxBytes, err := services.GeneratePriceComparisonExcel(data)
		if err != nil {
			log.Printf("analytics_export: failed to generate: %v", err)
			return apiError(e, http.StatusInternalServerError, "Failed to generate Excel file")
		}

		filename := fmt.Sprintf("Price_Comparison_%s.xlsx", now.Format("2006-01-02"))

		e.Response.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(xlsxBytes)
		return nil
	}
}
