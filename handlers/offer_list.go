package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// HandleOfferList returns the offers for a product. By default only current
// (non-superseded) offers are returned; ?history=true includes revisions.
func HandleOfferList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		productID := e.Request.PathValue("productId")
		if productID == "" {
			return apiError(e, http.StatusBadRequest, "Missing product ID")
		}

		if _, err := app.FindRecordById("products", productID); err != nil {
			return apiError(e, http.StatusNotFound, "Product not found")
		}

		filter := "product = {:productId}"
		if e.Request.URL.Query().Get("history") != "true" {
			filter += " && superseded = false"
		}

		records, err := app.FindRecordsByFilter(
			"vendor_offers",
			filter,
			"-updated", 0, 0,
			map[string]any{"productId": productID},
		)
		if err != nil {
			log.Printf("offer_list: query failed for product %s: %v", productID, err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong")
		}

		offers := make([]map[string]any, 0, len(records))
		for _, rec := range records {
			offers = append(offers, offerResponse(rec))
		}

		return e.JSON(http.StatusOK, map[string]any{"offers": offers})
	}
}
