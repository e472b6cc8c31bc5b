package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

func HandleProductList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		filter := "id != ''"
		params := map[string]any{}
		if category := e.Request.URL.Query().Get("category"); category != "" {
			filter += " && category = {:category}"
			params["category"] = category
		}

		records, err := app.FindRecordsByFilter("products", filter, "name", 0, 0, params)
		if err != nil {
			log.Printf("product_list: query failed: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong")
		}

		products := make([]map[string]any, 0, len(records))
		for _, rec := range records {
			products = append(products, productResponse(rec))
		}

		return e.JSON(http.StatusOK, map[string]any{"products": products})
	}
}

func HandleProductView(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		productID := e.Request.PathValue("id")
		if productID == "" {
			return apiError(e, http.StatusBadRequest, "Missing product ID")
		}

		record, err := app.FindRecordById("products", productID)
		if err != nil {
			return apiError(e, http.StatusNotFound, "Product not found")
		}

		return e.JSON(http.StatusOK, productResponse(record))
	}
}
