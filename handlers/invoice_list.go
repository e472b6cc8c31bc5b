package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"tradeops/services"
)

func invoiceResponse(record *core.Record) map[string]any {
	resp := map[string]any{
		"id":                  record.Id,
		"number":              record.GetString("number"),
		"quotation":           record.GetString("quotation"),
		"client_name":         record.GetString("client_name"),
		"client_address":      record.GetString("client_address"),
		"client_contact":      record.GetString("client_contact"),
		"client_phone":        record.GetString("client_phone"),
		"client_email":        record.GetString("client_email"),
		"client_tax_id":       record.GetString("client_tax_id"),
		"payment_status":      record.GetString("payment_status"),
		"discount":            record.GetFloat("discount"),
		"discount_type":       record.GetString("discount_type"),
		"transportation_cost": record.GetFloat("transportation_cost"),
		"tax_rate":            record.GetFloat("tax_rate"),
		"currency":            record.GetString("currency"),
		"notes":               record.GetString("notes"),
		"created_by":          record.GetString("created_by"),
	}
	if due := record.GetDateTime("due_date"); !due.IsZero() {
		resp["due_date"] = due.Time().Format(time.RFC3339)
	}
	return resp
}

func HandleInvoiceList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		filter := "id != ''"
		params := map[string]any{}
		if status := e.Request.URL.Query().Get("payment_status"); status != "" {
			filter += " && payment_status = {:status}"
			params["status"] = status
		}

		records, err := app.FindRecordsByFilter("invoices", filter, "-created", 0, 0, params)
		if err != nil {
			log.Printf("invoice_list: query failed: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong")
		}

		invoices := make([]map[string]any, 0, len(records))
		for _, rec := range records {
			invoices = append(invoices, invoiceResponse(rec))
		}

		return e.JSON(http.StatusOK, map[string]any{"invoices": invoices})
	}
}

// HandleInvoiceView returns one invoice with line items and totals
// recomputed from them.
func HandleInvoiceView(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		invoiceID := e.Request.PathValue("id")
		if invoiceID == "" {
			return apiError(e, http.StatusBadRequest, "Missing invoice ID")
		}

		record, err := app.FindRecordById("invoices", invoiceID)
		if err != nil {
			return apiError(e, http.StatusNotFound, "Invoice not found")
		}

		items, itemRecords, err := loadLineItems(app, "invoice_items", "invoice", invoiceID)
		if err != nil {
			log.Printf("invoice_view: failed to load items for %s: %v", invoiceID, err)
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
			log.Printf("invoice_view: totals failed for %s: %v", invoiceID, err)
			return apiError(e, http.StatusInternalServerError, "Stored invoice data is invalid")
		}

		lines := make([]map[string]any, 0, len(itemRecords))
		for i, rec := range itemRecords {
			lines = append(lines, lineItemJSON(rec, totals.Lines[i]))
		}

		resp := invoiceResponse(record)
		resp["items"] = lines
		resp["totals"] = quotationTotalsJSON(totals)

		return e.JSON(http.StatusOK, resp)
	}
}
