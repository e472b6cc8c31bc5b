package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

type vendorRequest struct {
	Name        string `json:"name"`
	ContactName string `json:"contact_name"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	City        string `json:"city"`
	TaxID       string `json:"tax_id"`
	Reliability int    `json:"reliability"`
	Notes       string `json:"notes"`
}

func (r *vendorRequest) validate() map[string]string {
	errs := make(map[string]string)
	if strings.TrimSpace(r.Name) == "" {
		errs["name"] = "Name is required"
	}
	if r.Reliability < 1 || r.Reliability > 5 {
		errs["reliability"] = "Reliability must be between 1 and 5"
	}
	return errs
}

func setVendorFields(record *core.Record, req vendorRequest) {
	record.Set("name", strings.TrimSpace(req.Name))
	record.Set("contact_name", strings.TrimSpace(req.ContactName))
	record.Set("phone", strings.TrimSpace(req.Phone))
	record.Set("email", strings.TrimSpace(req.Email))
	record.Set("city", strings.TrimSpace(req.City))
	record.Set("tax_id", strings.TrimSpace(req.TaxID))
	record.Set("reliability", req.Reliability)
	record.Set("notes", strings.TrimSpace(req.Notes))
}

func vendorResponse(record *core.Record) map[string]any {
	return map[string]any{
		"id":           record.Id,
		"name":         record.GetString("name"),
		"contact_name": record.GetString("contact_name"),
		"phone":        record.GetString("phone"),
		"email":        record.GetString("email"),
		"city":         record.GetString("city"),
		"tax_id":       record.GetString("tax_id"),
		"reliability":  record.GetInt("reliability"),
		"notes":        record.GetString("notes"),
	}
}

func HandleVendorCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var req vendorRequest
		if err := e.BindBody(&req); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid request body")
		}

		if errs := req.validate(); len(errs) > 0 {
			return e.JSON(http.StatusBadRequest, map[string]any{"errors": errs})
		}

		vendorsCol, err := app.FindCollectionByNameOrId("vendors")
		if err != nil {
			log.Printf("vendor_create: could not find vendors collection: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong")
		}

		record := core.NewRecord(vendorsCol)
		setVendorFields(record, req)

		if err := app.Save(record); err != nil {
			log.Printf("vendor_create: could not save vendor: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong")
		}

		return e.JSON(http.StatusCreated, vendorResponse(record))
	}
}
