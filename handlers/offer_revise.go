package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"tradeops/cache"
	"tradeops/services"
)

// HandleOfferRevise supersedes an existing offer with a new revision. The
// old record is kept for history; the new record becomes the vendor's
// current offer for the product.
func HandleOfferRevise(app *pocketbase.PocketBase, pc cache.PriceCache) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		offerID := e.Request.PathValue("id")
		if offerID == "" {
			return apiError(e, http.StatusBadRequest, "Missing offer ID")
		}

		old, err := app.FindRecordById("vendor_offers", offerID)
		if err != nil {
			return apiError(e, http.StatusNotFound, "Offer not found")
		}
		if old.GetBool("superseded") {
			return apiError(e, http.StatusConflict, "Offer has already been superseded")
		}

		var req offerRequest
		if err := e.BindBody(&req); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid request body")
		}

		// A revision keeps the vendor; only the terms change.
		vendor, err := app.FindRecordById("vendors", old.GetString("vendor"))
		if err != nil {
			log.Printf("offer_revise: vendor %s not found: %v", old.GetString("vendor"), err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong")
		}

		validUntil, err := parseOfferDate(req.ValidUntil)
		if err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid valid_until date")
		}

		offer := services.VendorOffer{
			VendorID:        vendor.Id,
			VendorName:      vendor.GetString("name"),
			Reliability:     vendor.GetInt("reliability"),
			Price:           req.Price,
			Currency:        req.Currency,
			ValidUntil:      validUntil,
			MinimumQuantity: req.MinimumQuantity,
			DeliveryTime:    req.DeliveryTime,
		}
		if err := services.ValidateOffer(offer); err != nil {
			return apiError(e, http.StatusBadRequest, err.Error())
		}

		offersCol, err := app.FindCollectionByNameOrId("vendor_offers")
		if err != nil {
			log.Printf("offer_revise: could not find vendor_offers collection: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong")
		}

		revision := core.NewRecord(offersCol)
		revision.Set("product", old.GetString("product"))
		revision.Set("vendor", vendor.Id)
		revision.Set("price", req.Price)
		currency := req.Currency
		if currency == "" {
			currency = old.GetString("currency")
		}
		revision.Set("currency", currency)
		revision.Set("valid_until", validUntil)
		revision.Set("minimum_quantity", offer.EffectiveMinimumQuantity())
		revision.Set("delivery_time", req.DeliveryTime)
		revision.Set("superseded", false)

		if err := app.Save(revision); err != nil {
			log.Printf("offer_revise: could not save revision: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong")
		}

		old.Set("superseded", true)
		if err := app.Save(old); err != nil {
			log.Printf("offer_revise: could not supersede offer %s: %v", offerID, err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong")
		}

		invalidateAnalyticsCache(pc)

		return e.JSON(http.StatusCreated, offerResponse(revision))
	}
}
