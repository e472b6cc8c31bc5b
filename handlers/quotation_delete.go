package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

func HandleQuotationDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quotationID := e.Request.PathValue("id")
		if quotationID == "" {
			return apiError(e, http.StatusBadRequest, "Missing quotation ID")
		}

		record, err := app.FindRecordById("quotations", quotationID)
		if err != nil {
			return apiError(e, http.StatusNotFound, "Quotation not found")
		}

		// A quotation with an issued invoice must stay on record.
		invoices, err := app.FindRecordsByFilter(
			"invoices",
			"quotation = {:quotationId}",
			"", 1, 0,
			map[string]any{"quotationId": quotationID},
		)
		if err == nil && len(invoices) > 0 {
			return apiError(e, http.StatusConflict, "Cannot delete quotation: an invoice was issued from it")
		}

		if err := app.Delete(record); err != nil {
			log.Printf("quotation_delete: failed to delete quotation %s: %v", quotationID, err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong")
		}

		return e.JSON(http.StatusOK, map[string]string{"id": quotationID})
	}
}
