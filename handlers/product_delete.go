package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

func HandleProductDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		productID := e.Request.PathValue("id")
		if productID == "" {
			return apiError(e, http.StatusBadRequest, "Missing product ID")
		}

		record, err := app.FindRecordById("products", productID)
		if err != nil {
			return apiError(e, http.StatusNotFound, "Product not found")
		}

		// Offers cascade away with the product; quotation items keep their
		// copied description and prices, so no reference check is needed.
		if err := app.Delete(record); err != nil {
			log.Printf("product_delete: failed to delete product %s: %v", productID, err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong")
		}

		return e.JSON(http.StatusOK, map[string]string{"id": productID})
	}
}
