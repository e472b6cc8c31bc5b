package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"tradeops/cache"
	"tradeops/services"
)

type offerRequest struct {
	Vendor          string  `json:"vendor"`
	Price           float64 `json:"price"`
	Currency        string  `json:"currency"`
	ValidUntil      string  `json:"valid_until"`
	MinimumQuantity int     `json:"minimum_quantity"`
	DeliveryTime    string  `json:"delivery_time"`
}

// parseOfferDate accepts RFC3339 or a plain date.
func parseOfferDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

func offerResponse(record *core.Record) map[string]any {
	return map[string]any{
		"id":               record.Id,
		"product":          record.GetString("product"),
		"vendor":           record.GetString("vendor"),
		"price":            record.GetFloat("price"),
		"currency":         record.GetString("currency"),
		"valid_until":      record.GetDateTime("valid_until").Time().Format(time.RFC3339),
		"minimum_quantity": record.GetInt("minimum_quantity"),
		"delivery_time":    record.GetString("delivery_time"),
		"superseded":       record.GetBool("superseded"),
	}
}

// invalidateAnalyticsCache drops the cached unfiltered analytics responses
// after an offer mutation. Filtered variants age out via the TTL.
func invalidateAnalyticsCache(pc cache.PriceCache) {
	if pc == nil {
		return
	}
	if err := pc.Delete(analyticsPricesCacheKey("", "", "")); err != nil {
		log.Printf("offer: failed to invalidate prices cache: %v", err)
	}
	if err := pc.Delete(analyticsVarianceCacheKey(defaultMinVariancePct)); err != nil {
		log.Printf("offer: failed to invalidate variance cache: %v", err)
	}
}

func HandleOfferCreate(app *pocketbase.PocketBase, pc cache.PriceCache) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		productID := e.Request.PathValue("productId")
		if productID == "" {
			return apiError(e, http.StatusBadRequest, "Missing product ID")
		}

		if _, err := app.FindRecordById("products", productID); err != nil {
			return apiError(e, http.StatusNotFound, "Product not found")
		}

		var req offerRequest
		if err := e.BindBody(&req); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid request body")
		}

		vendor, err := app.FindRecordById("vendors", req.Vendor)
		if err != nil {
			return apiError(e, http.StatusNotFound, "Vendor not found")
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
			log.Printf("offer_create: could not find vendor_offers collection: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong")
		}

		record := core.NewRecord(offersCol)
		record.Set("product", productID)
		record.Set("vendor", vendor.Id)
		record.Set("price", req.Price)
		record.Set("currency", req.Currency)
		record.Set("valid_until", validUntil)
		record.Set("minimum_quantity", offer.EffectiveMinimumQuantity())
		record.Set("delivery_time", req.DeliveryTime)
		record.Set("superseded", false)

		if err := app.Save(record); err != nil {
			log.Printf("offer_create: could not save offer: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong")
		}

		invalidateAnalyticsCache(pc)

		return e.JSON(http.StatusCreated, offerResponse(record))
	}
}
