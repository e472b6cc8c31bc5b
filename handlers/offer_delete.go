package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"tradeops/cache"
)

func HandleOfferDelete(app *pocketbase.PocketBase, pc cache.PriceCache) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		offerID := e.Request.PathValue("id")
		if offerID == "" {
			return apiError(e, http.StatusBadRequest, "Missing offer ID")
		}

		record, err := app.FindRecordById("vendor_offers", offerID)
		if err != nil {
			return apiError(e, http.StatusNotFound, "Offer not found")
		}

		if err := app.Delete(record); err != nil {
			log.Printf("offer_delete: failed to delete offer %s: %v", offerID, err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong")
		}

		invalidateAnalyticsCache(pc)

		return e.JSON(http.StatusOK, map[string]string{"id": offerID})
	}
}
