package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"tradeops/services"
)

// HandleQuotationOptimize checks every product-linked line of a quotation
// against the current offers for that product and suggests cheaper vendors.
func HandleQuotationOptimize(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quotationID := e.Request.PathValue("id")
		if quotationID == "" {
			return apiError(e, http.StatusBadRequest, "Missing quotation ID")
		}

		if _, err := app.FindRecordById("quotations", quotationID); err != nil {
			return apiError(e, http.StatusNotFound, "Quotation not found")
		}

		itemRecords, err := app.FindRecordsByFilter(
			"quotation_items",
			"quotation = {:quotationId}",
			"sort_order", 0, 0,
			map[string]any{"quotationId": quotationID},
		)
		if err != nil {
			log.Printf("quotation_optimize: failed to load items for %s: %v", quotationID, err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong")
		}

		var lines []services.LineSelection
		for _, rec := range itemRecords {
			productID := rec.GetString("product")
			if productID == "" {
				continue // free-text line, nothing to compare against
			}

			product, err := app.FindRecordById("products", productID)
			if err != nil {
				continue
			}

			alternatives, err := loadProductOffers(app, productID)
			if err != nil {
				log.Printf("quotation_optimize: failed to load offers for %s: %v", productID, err)
				return apiError(e, http.StatusInternalServerError, "Something went wrong")
			}

			// The line's booked cost stands in as the current offer; when
			// the line's vendor still has a live offer, use that instead.
			current := services.VendorOffer{
				VendorID: rec.GetString("vendor"),
				Price:    rec.GetFloat("vendor_cost"),
			}
			for _, o := range alternatives {
				if o.VendorID == current.VendorID {
					current = o
					break
				}
			}

			lines = append(lines, services.LineSelection{
				LineID:       rec.Id,
				ProductID:    productID,
				ProductName:  product.GetString("name"),
				Quantity:     rec.GetInt("quantity"),
				Current:      current,
				Alternatives: alternatives,
			})
		}

		suggestions := services.OptimizeSelections(lines, time.Now())

		out := make([]map[string]any, 0, len(suggestions))
		var totalSavings float64
		for _, s := range suggestions {
			out = append(out, map[string]any{
				"line_id":      s.LineID,
				"product_id":   s.ProductID,
				"product_name": s.ProductName,
				"quantity":     s.Quantity,
				"current":      offerJSON(s.Current),
				"recommended":  offerJSON(s.Recommended),
				"savings":      s.Savings,
				"savings_pct":  s.SavingsPct,
			})
			totalSavings += s.Savings
		}

		return e.JSON(http.StatusOK, map[string]any{
			"suggestions":   out,
			"total_savings": totalSavings,
		})
	}
}
