package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"tradeops/services"
)

type deliveryNoteRequest struct {
	DeliveryAddress string `json:"delivery_address"`
	Vehicle         string `json:"vehicle"`
}

func deliveryNoteResponse(record *core.Record) map[string]any {
	return map[string]any{
		"id":               record.Id,
		"number":           record.GetString("number"),
		"invoice":          record.GetString("invoice"),
		"client_name":      record.GetString("client_name"),
		"delivery_address": record.GetString("delivery_address"),
		"vehicle":          record.GetString("vehicle"),
		"received_by":      record.GetString("received_by"),
		"status":           record.GetString("status"),
		"created_by":       record.GetString("created_by"),
	}
}

// HandleInvoiceToDeliveryNote issues a delivery note for an invoice. Line
// items are copied with product and quantity only; a delivery note never
// shows prices.
func HandleInvoiceToDeliveryNote(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		invoiceID := e.Request.PathValue("id")
		if invoiceID == "" {
			return apiError(e, http.StatusBadRequest, "Missing invoice ID")
		}

		invoice, err := app.FindRecordById("invoices", invoiceID)
		if err != nil {
			return apiError(e, http.StatusNotFound, "Invoice not found")
		}

		var req deliveryNoteRequest
		if err := e.BindBody(&req); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid request body")
		}

		itemRecords, err := app.FindRecordsByFilter(
			"invoice_items",
			"invoice = {:invoiceId}",
			"sort_order", 0, 0,
			map[string]any{"invoiceId": invoiceID},
		)
		if err != nil {
			log.Printf("delivery_note: failed to load items for %s: %v", invoiceID, err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong")
		}
		if len(itemRecords) == 0 {
			return apiError(e, http.StatusBadRequest, "Invoice has no line items")
		}

		notesCol, err := app.FindCollectionByNameOrId("delivery_notes")
		if err != nil {
			log.Printf("delivery_note: could not find delivery_notes collection: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong")
		}
		noteItemsCol, err := app.FindCollectionByNameOrId("delivery_note_items")
		if err != nil {
			log.Printf("delivery_note: could not find delivery_note_items collection: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong")
		}

		address := req.DeliveryAddress
		if address == "" {
			address = invoice.GetString("client_address")
		}

		note := core.NewRecord(notesCol)
		note.Set("number", services.GenerateDeliveryNoteNumber(app, time.Now()))
		note.Set("invoice", invoiceID)
		note.Set("client_name", invoice.GetString("client_name"))
		note.Set("delivery_address", address)
		note.Set("vehicle", req.Vehicle)
		note.Set("status", "pending")
		note.Set("created_by", GetActor(e.Request))

		if err := app.Save(note); err != nil {
			log.Printf("delivery_note: could not save delivery note: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong")
		}

		for i, rec := range itemRecords {
			item := core.NewRecord(noteItemsCol)
			item.Set("delivery_note", note.Id)
			item.Set("sort_order", i+1)
			item.Set("description", rec.GetString("description"))
			item.Set("quantity", rec.GetInt("quantity"))
			item.Set("unit", rec.GetString("unit"))
			if p := rec.GetString("product"); p != "" {
				item.Set("product", p)
			}
			if err := app.Save(item); err != nil {
				log.Printf("delivery_note: could not copy item %d: %v", i+1, err)
				return apiError(e, http.StatusInternalServerError, "Something went wrong")
			}
		}

		return e.JSON(http.StatusCreated, deliveryNoteResponse(note))
	}
}
