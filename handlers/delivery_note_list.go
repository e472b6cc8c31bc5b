package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

func HandleDeliveryNoteList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		records, err := app.FindRecordsByFilter("delivery_notes", "id != ''", "-created", 0, 0, nil)
		if err != nil {
			log.Printf("delivery_note_list: query failed: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong")
		}

		notes := make([]map[string]any, 0, len(records))
		for _, rec := range records {
			notes = append(notes, deliveryNoteResponse(rec))
		}

		return e.JSON(http.StatusOK, map[string]any{"delivery_notes": notes})
	}
}

func HandleDeliveryNoteView(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		noteID := e.Request.PathValue("id")
		if noteID == "" {
			return apiError(e, http.StatusBadRequest, "Missing delivery note ID")
		}

		record, err := app.FindRecordById("delivery_notes", noteID)
		if err != nil {
			return apiError(e, http.StatusNotFound, "Delivery note not found")
		}

		itemRecords, err := app.FindRecordsByFilter(
			"delivery_note_items",
			"delivery_note = {:noteId}",
			"sort_order", 0, 0,
			map[string]any{"noteId": noteID},
		)
		if err != nil {
			log.Printf("delivery_note_view: failed to load items for %s: %v", noteID, err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong")
		}

		items := make([]map[string]any, 0, len(itemRecords))
		for _, rec := range itemRecords {
			items = append(items, map[string]any{
				"id":          rec.Id,
				"product":     rec.GetString("product"),
				"sort_order":  rec.GetInt("sort_order"),
				"description": rec.GetString("description"),
				"quantity":    rec.GetInt("quantity"),
				"unit":        rec.GetString("unit"),
			})
		}

		resp := deliveryNoteResponse(record)
		resp["items"] = items

		return e.JSON(http.StatusOK, resp)
	}
}
