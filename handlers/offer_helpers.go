package handlers

import (
	"fmt"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"tradeops/services"
)

// recordToOffer maps a vendor_offers record plus its vendor record into the
// services representation used by the pricing engine.
func recordToOffer(offer *core.Record, vendor *core.Record) services.VendorOffer {
	o := services.VendorOffer{
		VendorID:        offer.GetString("vendor"),
		Price:           offer.GetFloat("price"),
		Currency:        offer.GetString("currency"),
		ValidUntil:      offer.GetDateTime("valid_until").Time(),
		MinimumQuantity: offer.GetInt("minimum_quantity"),
		DeliveryTime:    offer.GetString("delivery_time"),
		LastUpdated:     offer.GetDateTime("updated").Time(),
	}
	if vendor != nil {
		o.VendorName = vendor.GetString("name")
		o.Reliability = vendor.GetInt("reliability")
	}
	return o
}

// loadProductOffers fetches the current (non-superseded) offers for a product
// and dedupes them to the latest per vendor.
func loadProductOffers(app *pocketbase.PocketBase, productID string) ([]services.VendorOffer, error) {
	records, err := app.FindRecordsByFilter(
		"vendor_offers",
		"product = {:productId} && superseded = false",
		"-updated", 0, 0,
		map[string]any{"productId": productID},
	)
	if err != nil {
		return nil, fmt.Errorf("load offers for product %s: %w", productID, err)
	}

	vendors := make(map[string]*core.Record)
	offers := make([]services.VendorOffer, 0, len(records))
	for _, rec := range records {
		vendorID := rec.GetString("vendor")
		vendor, ok := vendors[vendorID]
		if !ok {
			vendor, err = app.FindRecordById("vendors", vendorID)
			if err != nil {
				return nil, fmt.Errorf("load vendor %s: %w", vendorID, err)
			}
			vendors[vendorID] = vendor
		}
		offers = append(offers, recordToOffer(rec, vendor))
	}

	return services.LatestPerVendor(offers), nil
}

// loadAllProductOffers builds the portfolio view used by the analytics
// endpoints. The optional filters narrow by product id, vendor id or product
// category; empty strings mean no filter.
func loadAllProductOffers(app *pocketbase.PocketBase, productID, vendorID, category string) ([]services.ProductOffers, error) {
	filter := "id != ''"
	params := map[string]any{}
	if productID != "" {
		filter += " && id = {:productId}"
		params["productId"] = productID
	}
	if category != "" {
		filter += " && category = {:category}"
		params["category"] = category
	}

	products, err := app.FindRecordsByFilter("products", filter, "name", 0, 0, params)
	if err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}

	result := make([]services.ProductOffers, 0, len(products))
	for _, p := range products {
		offers, err := loadProductOffers(app, p.Id)
		if err != nil {
			return nil, err
		}
		if vendorID != "" {
			filtered := offers[:0]
			for _, o := range offers {
				if o.VendorID == vendorID {
					filtered = append(filtered, o)
				}
			}
			offers = filtered
		}
		result = append(result, services.ProductOffers{
			ProductID:   p.Id,
			ProductName: p.GetString("name"),
			Category:    p.GetString("category"),
			Offers:      offers,
		})
	}
	return result, nil
}
