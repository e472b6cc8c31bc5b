package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

func HandleVendorList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		vendorsCol, err := app.FindCollectionByNameOrId("vendors")
		if err != nil {
			log.Printf("vendor_list: could not find vendors collection: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong")
		}

		records, err := app.FindRecordsByFilter(vendorsCol, "id != ''", "name", 0, 0, nil)
		if err != nil {
			log.Printf("vendor_list: query failed: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong")
		}

		vendors := make([]map[string]any, 0, len(records))
		for _, rec := range records {
			vendors = append(vendors, vendorResponse(rec))
		}

		return e.JSON(http.StatusOK, map[string]any{"vendors": vendors})
	}
}

func HandleVendorView(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		vendorID := e.Request.PathValue("id")
		if vendorID == "" {
			return apiError(e, http.StatusBadRequest, "Missing vendor ID")
		}

		record, err := app.FindRecordById("vendors", vendorID)
		if err != nil {
			return apiError(e, http.StatusNotFound, "Vendor not found")
		}

		return e.JSON(http.StatusOK, vendorResponse(record))
	}
}
