package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"tradeops/cache"
	"tradeops/services"
)

func analyticsPricesCacheKey(productID, vendorID, category string) string {
	return fmt.Sprintf("analytics:prices:%s:%s:%s", productID, vendorID, category)
}

func priceSummaryJSON(summary services.PriceSummary) map[string]any {
	vendors := make([]map[string]any, 0, len(summary.Vendors))
	for _, v := range summary.Vendors {
		vendors = append(vendors, map[string]any{
			"vendor_id":     v.VendorID,
			"vendor_name":   v.VendorName,
			"offer_count":   v.OfferCount,
			"average_price": v.AveragePrice,
			"min_price":     v.MinPrice,
			"max_price":     v.MaxPrice,
		})
	}
	return map[string]any{
		"product_count": summary.ProductCount,
		"vendor_count":  summary.VendorCount,
		"offer_count":   summary.OfferCount,
		"average_price": summary.AveragePrice,
		"min_price":     summary.MinPrice,
		"max_price":     summary.MaxPrice,
		"vendors":       vendors,
	}
}

// HandleAnalyticsPrices aggregates current offer prices across the catalog,
// optionally narrowed by product, vendor or category. Responses are cached
// for a few minutes; offer mutations invalidate the unfiltered entry.
func HandleAnalyticsPrices(app *pocketbase.PocketBase, pc cache.PriceCache) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		query := e.Request.URL.Query()
		productID := query.Get("product")
		vendorID := query.Get("vendor")
		category := query.Get("category")

		key := analyticsPricesCacheKey(productID, vendorID, category)
		if pc != nil {
			if cached, ok := pc.Get(key); ok {
				e.Response.Header().Set("Content-Type", "application/json")
				e.Response.WriteHeader(http.StatusOK)
				_, err := e.Response.Write([]byte(cached))
				return err
			}
		}

		products, err := loadAllProductOffers(app, productID, vendorID, category)
		if err != nil {
			log.Printf("analytics_prices: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong")
		}

		summary := services.SummarizePrices(products, time.Now())
		resp := priceSummaryJSON(summary)

		if pc != nil {
			if data, err := json.Marshal(resp); err == nil {
				if err := pc.Set(key, string(data), cache.DefaultTTL); err != nil {
					log.Printf("analytics_prices: cache set failed: %v", err)
				}
			}
		}

		return e.JSON(http.StatusOK, resp)
	}
}
