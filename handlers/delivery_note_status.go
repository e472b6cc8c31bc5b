package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

type deliveryStatusRequest struct {
	Status     string `json:"status"`
	ReceivedBy string `json:"received_by"`
}

// HandleDeliveryNoteStatus marks a delivery note delivered (or back to
// pending). Marking delivered requires the receiver's name.
func HandleDeliveryNoteStatus(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		noteID := e.Request.PathValue("id")
		if noteID == "" {
			return apiError(e, http.StatusBadRequest, "Missing delivery note ID")
		}

		record, err := app.FindRecordById("delivery_notes", noteID)
		if err != nil {
			return apiError(e, http.StatusNotFound, "Delivery note not found")
		}

		var req deliveryStatusRequest
		if err := e.BindBody(&req); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid request body")
		}

		switch req.Status {
		case "pending", "delivered":
		default:
			return apiError(e, http.StatusBadRequest, "Status must be pending or delivered")
		}

		if req.Status == "delivered" && strings.TrimSpace(req.ReceivedBy) == "" {
			return apiError(e, http.StatusBadRequest, "received_by is required when marking delivered")
		}

		record.Set("status", req.Status)
		record.Set("received_by", strings.TrimSpace(req.ReceivedBy))

		if err := app.Save(record); err != nil {
			log.Printf("delivery_note_status: could not save note %s: %v", noteID, err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong")
		}

		return e.JSON(http.StatusOK, deliveryNoteResponse(record))
	}
}
