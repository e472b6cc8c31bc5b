package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

func HandleVendorDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		vendorID := e.Request.PathValue("id")
		if vendorID == "" {
			return apiError(e, http.StatusBadRequest, "Missing vendor ID")
		}

		record, err := app.FindRecordById("vendors", vendorID)
		if err != nil {
			return apiError(e, http.StatusNotFound, "Vendor not found")
		}

		// Deleting a vendor cascades into its offers; block the delete while
		// quotation line items still reference it.
		items, err := app.FindRecordsByFilter(
			"quotation_items",
			"vendor = {:vendorId}",
			"", 1, 0,
			map[string]any{"vendorId": vendorID},
		)
		if err == nil && len(items) > 0 {
			return apiError(e, http.StatusConflict, "Cannot delete vendor: it is referenced by quotation items")
		}

		if err := app.Delete(record); err != nil {
			log.Printf("vendor_delete: failed to delete vendor %s: %v", vendorID, err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong")
		}

		return e.JSON(http.StatusOK, map[string]string{"id": vendorID})
	}
}
