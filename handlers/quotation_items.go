package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"tradeops/services"
)

type lineItemRequest struct {
	Product      string  `json:"product"`
	Vendor       string  `json:"vendor"`
	Description  string  `json:"description"`
	Quantity     int     `json:"quantity"`
	Unit         string  `json:"unit"`
	VendorCost   float64 `json:"vendor_cost"`
	SellingPrice float64 `json:"selling_price"`
}

type lineItemsRequest struct {
	Items []lineItemRequest `json:"items"`
}

// HandleQuotationItemsReplace replaces the full line item set of a
// quotation. The items are validated through the calculator before any
// record is touched, so a bad payload leaves the quotation unchanged.
func HandleQuotationItemsReplace(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quotationID := e.Request.PathValue("id")
		if quotationID == "" {
			return apiError(e, http.StatusBadRequest, "Missing quotation ID")
		}

		quotation, err := app.FindRecordById("quotations", quotationID)
		if err != nil {
			return apiError(e, http.StatusNotFound, "Quotation not found")
		}

		var req lineItemsRequest
		if err := e.BindBody(&req); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid request body")
		}

		items := make([]services.LineItem, 0, len(req.Items))
		for _, it := range req.Items {
			if strings.TrimSpace(it.Description) == "" {
				return apiError(e, http.StatusBadRequest, "Every line item needs a description")
			}
			items = append(items, services.LineItem{
				ProductID:    it.Product,
				Description:  strings.TrimSpace(it.Description),
				Quantity:     it.Quantity,
				Unit:         strings.TrimSpace(it.Unit),
				VendorCost:   it.VendorCost,
				SellingPrice: it.SellingPrice,
			})
		}

		totals, err := services.CalculateQuotation(
			items,
			quotation.GetFloat("discount"),
			documentDiscountType(quotation),
			quotation.GetFloat("transportation_cost"),
			quotation.GetFloat("tax_rate"),
		)
		if err != nil {
			return apiError(e, http.StatusBadRequest, err.Error())
		}

		itemsCol, err := app.FindCollectionByNameOrId("quotation_items")
		if err != nil {
			log.Printf("quotation_items: could not find quotation_items collection: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong")
		}

		existing, err := app.FindRecordsByFilter(
			itemsCol,
			"quotation = {:quotationId}",
			"", 0, 0,
			map[string]any{"quotationId": quotationID},
		)
		if err == nil {
			for _, rec := range existing {
				if err := app.Delete(rec); err != nil {
					log.Printf("quotation_items: failed to delete item %s: %v", rec.Id, err)
					return apiError(e, http.StatusInternalServerError, "Something went wrong")
				}
			}
		}

		saved := make([]*core.Record, 0, len(req.Items))
		for i, it := range req.Items {
			rec := core.NewRecord(itemsCol)
			rec.Set("quotation", quotationID)
			rec.Set("sort_order", i+1)
			rec.Set("description", strings.TrimSpace(it.Description))
			rec.Set("quantity", it.Quantity)
			rec.Set("unit", strings.TrimSpace(it.Unit))
			rec.Set("vendor_cost", it.VendorCost)
			rec.Set("selling_price", it.SellingPrice)
			if it.Product != "" {
				rec.Set("product", it.Product)
			}
			if it.Vendor != "" {
				rec.Set("vendor", it.Vendor)
			}
			if err := app.Save(rec); err != nil {
				log.Printf("quotation_items: failed to save item %d: %v", i+1, err)
				return apiError(e, http.StatusInternalServerError, "Something went wrong")
			}
			saved = append(saved, rec)
		}

		lines := make([]map[string]any, 0, len(saved))
		for i, rec := range saved {
			lines = append(lines, lineItemJSON(rec, totals.Lines[i]))
		}

		return e.JSON(http.StatusOK, map[string]any{
			"items":  lines,
			"totals": quotationTotalsJSON(totals),
		})
	}
}
