package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

type productRequest struct {
	Name           string         `json:"name"`
	SKU            string         `json:"sku"`
	Category       string         `json:"category"`
	Unit           string         `json:"unit"`
	Description    string         `json:"description"`
	Specifications map[string]any `json:"specifications"`
}

func (r *productRequest) validate() map[string]string {
	errs := make(map[string]string)
	if strings.TrimSpace(r.Name) == "" {
		errs["name"] = "Name is required"
	}
	return errs
}

func setProductFields(record *core.Record, req productRequest) {
	record.Set("name", strings.TrimSpace(req.Name))
	record.Set("sku", strings.TrimSpace(req.SKU))
	record.Set("category", strings.TrimSpace(req.Category))
	record.Set("unit", strings.TrimSpace(req.Unit))
	record.Set("description", strings.TrimSpace(req.Description))
	if req.Specifications != nil {
		record.Set("specifications", req.Specifications)
	}
}

func productResponse(record *core.Record) map[string]any {
	resp := map[string]any{
		"id":          record.Id,
		"name":        record.GetString("name"),
		"sku":         record.GetString("sku"),
		"category":    record.GetString("category"),
		"unit":        record.GetString("unit"),
		"description": record.GetString("description"),
	}
	var specs map[string]any
	if err := record.UnmarshalJSONField("specifications", &specs); err == nil && specs != nil {
		resp["specifications"] = specs
	}
	return resp
}

func HandleProductCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var req productRequest
		if err := e.BindBody(&req); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid request body")
		}

		if errs := req.validate(); len(errs) > 0 {
			return e.JSON(http.StatusBadRequest, map[string]any{"errors": errs})
		}

		productsCol, err := app.FindCollectionByNameOrId("products")
		if err != nil {
			log.Printf("product_create: could not find products collection: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong")
		}

		record := core.NewRecord(productsCol)
		setProductFields(record, req)

		if err := app.Save(record); err != nil {
			log.Printf("product_create: could not save product: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong")
		}

		return e.JSON(http.StatusCreated, productResponse(record))
	}
}
