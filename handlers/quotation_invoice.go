package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"tradeops/services"
)

type invoiceFromQuotationRequest struct {
	DueDate string `json:"due_date"`
}

// HandleQuotationToInvoice materializes an invoice from a quotation. The
// client block, pricing policy and line items are copied onto the invoice
// so its totals stay reproducible independently of the quotation; totals
// are recomputed from the copies, never carried over as figures.
func HandleQuotationToInvoice(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quotationID := e.Request.PathValue("id")
		if quotationID == "" {
			return apiError(e, http.StatusBadRequest, "Missing quotation ID")
		}

		quotation, err := app.FindRecordById("quotations", quotationID)
		if err != nil {
			return apiError(e, http.StatusNotFound, "Quotation not found")
		}

		var req invoiceFromQuotationRequest
		if err := e.BindBody(&req); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid request body")
		}

		items, itemRecords, err := loadLineItems(app, "quotation_items", "quotation", quotationID)
		if err != nil {
			log.Printf("quotation_invoice: failed to load items for %s: %v", quotationID, err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong")
		}
		if len(items) == 0 {
			return apiError(e, http.StatusBadRequest, "Quotation has no line items")
		}

		totals, err := services.CalculateQuotation(
			items,
			quotation.GetFloat("discount"),
			documentDiscountType(quotation),
			quotation.GetFloat("transportation_cost"),
			quotation.GetFloat("tax_rate"),
		)
		if err != nil {
			log.Printf("quotation_invoice: totals failed for %s: %v", quotationID, err)
			return apiError(e, http.StatusInternalServerError, "Stored quotation data is invalid")
		}

		invoicesCol, err := app.FindCollectionByNameOrId("invoices")
		if err != nil {
			log.Printf("quotation_invoice: could not find invoices collection: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong")
		}
		invoiceItemsCol, err := app.FindCollectionByNameOrId("invoice_items")
		if err != nil {
			log.Printf("quotation_invoice: could not find invoice_items collection: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong")
		}

		now := time.Now()
		invoice := core.NewRecord(invoicesCol)
		invoice.Set("number", services.GenerateInvoiceNumber(app, now))
		invoice.Set("quotation", quotationID)
		invoice.Set("client_name", quotation.GetString("client_name"))
		invoice.Set("client_address", quotation.GetString("client_address"))
		invoice.Set("client_contact", quotation.GetString("client_contact"))
		invoice.Set("client_phone", quotation.GetString("client_phone"))
		invoice.Set("client_email", quotation.GetString("client_email"))
		invoice.Set("client_tax_id", quotation.GetString("client_tax_id"))
		invoice.Set("payment_status", "unpaid")
		invoice.Set("discount", quotation.GetFloat("discount"))
		invoice.Set("discount_type", string(documentDiscountType(quotation)))
		invoice.Set("transportation_cost", quotation.GetFloat("transportation_cost"))
		invoice.Set("tax_rate", quotation.GetFloat("tax_rate"))
		invoice.Set("currency", quotation.GetString("currency"))
		invoice.Set("notes", quotation.GetString("notes"))
		invoice.Set("created_by", GetActor(e.Request))
		if req.DueDate != "" {
			if t, err := parseOfferDate(req.DueDate); err == nil {
				invoice.Set("due_date", t)
			}
		}

		if err := app.Save(invoice); err != nil {
			log.Printf("quotation_invoice: could not save invoice: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong")
		}

		for i, rec := range itemRecords {
			item := core.NewRecord(invoiceItemsCol)
			item.Set("invoice", invoice.Id)
			item.Set("sort_order", i+1)
			item.Set("description", rec.GetString("description"))
			item.Set("quantity", rec.GetInt("quantity"))
			item.Set("unit", rec.GetString("unit"))
			item.Set("vendor_cost", rec.GetFloat("vendor_cost"))
			item.Set("selling_price", rec.GetFloat("selling_price"))
			if p := rec.GetString("product"); p != "" {
				item.Set("product", p)
			}
			if v := rec.GetString("vendor"); v != "" {
				item.Set("vendor", v)
			}
			if err := app.Save(item); err != nil {
				log.Printf("quotation_invoice: could not copy item %d: %v", i+1, err)
				return apiError(e, http.StatusInternalServerError, "Something went wrong")
			}
		}

		// Mark the source quotation accepted if it was still open.
		if status := quotation.GetString("status"); status == "draft" || status == "sent" {
			quotation.Set("status", "accepted")
			if err := app.Save(quotation); err != nil {
				log.Printf("quotation_invoice: could not update quotation status: %v", err)
			}
		}

		resp := invoiceResponse(invoice)
		resp["totals"] = quotationTotalsJSON(totals)

		return e.JSON(http.StatusCreated, resp)
	}
}
