package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"tradeops/services"
)

// loadLineItems reads the line items of a quotation or invoice into the
// calculator's representation, ordered by sort_order.
func loadLineItems(app *pocketbase.PocketBase, collection, parentField, parentID string) ([]services.LineItem, []*core.Record, error) {
	records, err := app.FindRecordsByFilter(
		collection,
		parentField+" = {:parentId}",
		"sort_order", 0, 0,
		map[string]any{"parentId": parentID},
	)
	if err != nil {
		return nil, nil, err
	}

	items := make([]services.LineItem, 0, len(records))
	for _, rec := range records {
		items = append(items, services.LineItem{
			ProductID:    rec.GetString("product"),
			Description:  rec.GetString("description"),
			Quantity:     rec.GetInt("quantity"),
			Unit:         rec.GetString("unit"),
			VendorCost:   rec.GetFloat("vendor_cost"),
			SellingPrice: rec.GetFloat("selling_price"),
		})
	}
	return items, records, nil
}

func quotationTotalsJSON(totals services.QuotationTotals) map[string]any {
	return map[string]any{
		"subtotal":            totals.Subtotal,
		"discount_amount":     totals.DiscountAmount,
		"after_discount":      totals.AfterDiscount,
		"tax_amount":          totals.TaxAmount,
		"transportation_cost": totals.TransportationCost,
		"grand_total":         totals.GrandTotal,
		"total_cost":          totals.TotalCost,
		"total_profit":        totals.TotalProfit,
		"profit_pct":          totals.ProfitPct,
	}
}

func lineItemJSON(rec *core.Record, line services.LineTotals) map[string]any {
	return map[string]any{
		"id":            rec.Id,
		"product":       rec.GetString("product"),
		"vendor":        rec.GetString("vendor"),
		"sort_order":    rec.GetInt("sort_order"),
		"description":   rec.GetString("description"),
		"quantity":      rec.GetInt("quantity"),
		"unit":          rec.GetString("unit"),
		"vendor_cost":   rec.GetFloat("vendor_cost"),
		"selling_price": rec.GetFloat("selling_price"),
		"line_total":    line.LineTotal,
		"line_cost":     line.LineCost,
		"line_profit":   line.LineProfit,
		"margin_pct":    line.MarginPct,
	}
}

// documentDiscountType normalizes a stored discount_type value; records
// predating the field read as a fixed amount.
func documentDiscountType(record *core.Record) services.DiscountType {
	dt := services.DiscountType(record.GetString("discount_type"))
	if dt == "" {
		dt = services.DiscountFixed
	}
	return dt
}

func HandleQuotationList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		filter := "id != ''"
		params := map[string]any{}
		if status := e.Request.URL.Query().Get("status"); status != "" {
			filter += " && status = {:status}"
			params["status"] = status
		}

		records, err := app.FindRecordsByFilter("quotations", filter, "-created", 0, 0, params)
		if err != nil {
			log.Printf("quotation_list: query failed: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong")
		}

		quotations := make([]map[string]any, 0, len(records))
		for _, rec := range records {
			quotations = append(quotations, quotationResponse(rec))
		}

		return e.JSON(http.StatusOK, map[string]any{"quotations": quotations})
	}
}

// HandleQuotationView returns one quotation with its line items and the
// totals recomputed from them.
func HandleQuotationView(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quotationID := e.Request.PathValue("id")
		if quotationID == "" {
			return apiError(e, http.StatusBadRequest, "Missing quotation ID")
		}

		record, err := app.FindRecordById("quotations", quotationID)
		if err != nil {
			return apiError(e, http.StatusNotFound, "Quotation not found")
		}

		items, itemRecords, err := loadLineItems(app, "quotation_items", "quotation", quotationID)
		if err != nil {
			log.Printf("quotation_view: failed to load items for %s: %v", quotationID, err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong")
		}

		totals, err := services.CalculateQuotation(
			items,
			record.GetFloat("discount"),
			documentDiscountType(record),
			record.GetFloat("transportation_cost"),
			record.GetFloat("tax_rate"),
		)
		if err != nil {
			log.Printf("quotation_view: totals failed for %s: %v", quotationID, err)
			return apiError(e, http.StatusInternalServerError, "Stored quotation data is invalid")
		}

		lines := make([]map[string]any, 0, len(itemRecords))
		for i, rec := range itemRecords {
			lines = append(lines, lineItemJSON(rec, totals.Lines[i]))
		}

		resp := quotationResponse(record)
		resp["items"] = lines
		resp["totals"] = quotationTotalsJSON(totals)

		return e.JSON(http.StatusOK, resp)
	}
}
