package handlers

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"tradeops/services"
)

func offerJSON(o services.VendorOffer) map[string]any {
	return map[string]any{
		"vendor_id":        o.VendorID,
		"vendor_name":      o.VendorName,
		"reliability":      o.Reliability,
		"price":            o.Price,
		"currency":         o.Currency,
		"valid_until":      o.ValidUntil.Format(time.RFC3339),
		"minimum_quantity": o.EffectiveMinimumQuantity(),
		"delivery_time":    o.DeliveryTime,
	}
}

// HandleProductRecommendations evaluates the current offers for a product
// and returns ranked vendor recommendations. An optional ?quantity= adds
// the cheapest offer whose minimum order quantity fits.
func HandleProductRecommendations(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
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
			log.Printf("recommend: failed to load offers for %s: %v", productID, err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong")
		}

		now := time.Now()
		opts := services.RecommendOptions{
			StructuredDelivery: e.Request.URL.Query().Get("structured_delivery") == "true",
		}
		set := services.RecommendVendorsWithOptions(offers, now, opts)

		recs := make([]map[string]any, 0, len(set.Recommendations))
		for _, r := range set.Recommendations {
			rec := map[string]any{
				"type":   r.Type,
				"offer":  offerJSON(r.Offer),
				"score":  r.Score,
				"reason": r.Reason,
			}
			if r.Type == services.RecommendBestPrice {
				rec["savings"] = r.Savings
				rec["savings_pct"] = r.SavingsPct
			}
			recs = append(recs, rec)
		}

		resp := map[string]any{
			"product_id":      productID,
			"product_name":    product.GetString("name"),
			"recommendations": recs,
			"summary": map[string]any{
				"lowest_price":  set.LowestPrice,
				"highest_price": set.HighestPrice,
				"average_price": set.AveragePrice,
				"price_range":   set.PriceRange,
				"vendor_count":  set.VendorCount,
			},
		}

		if qStr := e.Request.URL.Query().Get("quantity"); qStr != "" {
			quantity, err := strconv.Atoi(qStr)
			if err != nil || quantity < 1 {
				return apiError(e, http.StatusBadRequest, "Invalid quantity")
			}
			if best, ok := services.BestPriceForQuantity(offers, quantity, now); ok {
				resp["best_for_quantity"] = offerJSON(best)
			}
		}

		return e.JSON(http.StatusOK, resp)
	}
}
