package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"tradeops/services"
)

// HandleProductOfferAnalysis reports the price spread across the current
// offers for one product.
func HandleProductOfferAnalysis(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		productID := e.Request.PathValue("id")
		if productID == "" {
			return apiError(e, http.StatusBadRequest, "Missing product ID")
		}

		product, err := app.FindRecordById("products", productID)
		if err != nil {
			return apiError(e, http.StatusNotFound, "Product not found")
		}

		offers, err := loadProductOffers(app, productID)
		if err != nil {
			log.Printf("offer_analysis: failed to load offers for %s: %v", productID, err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong")
		}

		now := time.Now()
		p := services.ProductOffers{
			ProductID:   productID,
			ProductName: product.GetString("name"),
			Category:    product.GetString("category"),
			Offers:      offers,
		}

		resp := map[string]any{
			"product_id":   productID,
			"product_name": p.ProductName,
			"comparable":   false,
		}
		if v, ok := services.PriceVariance(p, now); ok {
			resp["comparable"] = true
			resp["offer_count"] = v.OfferCount
			resp["min_price"] = v.MinPrice
			resp["max_price"] = v.MaxPrice
			resp["variance_pct"] = v.VariancePct
			resp["potential_savings"] = v.PotentialSavings
		}

		return e.JSON(http.StatusOK, resp)
	}
}
