package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

func HandleProductUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		productID := e.Request.PathValue("id")
		if productID == "" {
			return apiError(e, http.StatusBadRequest, "Missing product ID")
		}

		record, err := app.FindRecordById("products", productID)
		if err != nil {
			return apiError(e, http.StatusNotFound, "Product not found")
		}

		var req productRequest
		if err := e.BindBody(&req); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid request body")
		}

		if errs := req.validate(); len(errs) > 0 {
			return e.JSON(http.StatusBadRequest, map[string]any{"errors": errs})
		}

		setProductFields(record, req)

		if err := app.Save(record); err != nil {
			log.Printf("product_edit: could not save product %s: %v", productID, err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong")
		}

		return e.JSON(http.StatusOK, productResponse(record))
	}
}
