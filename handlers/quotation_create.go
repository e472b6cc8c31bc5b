package handlers

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"tradeops/services"
)

type quotationRequest struct {
	ClientName         string  `json:"client_name"`
	ClientAddress      string  `json:"client_address"`
	ClientContact      string  `json:"client_contact"`
	ClientPhone        string  `json:"client_phone"`
	ClientEmail        string  `json:"client_email"`
	ClientTaxID        string  `json:"client_tax_id"`
	Status             string  `json:"status"`
	Discount           float64 `json:"discount"`
	DiscountType       string  `json:"discount_type"`
	TransportationCost float64 `json:"transportation_cost"`
	TaxRate            float64 `json:"tax_rate"`
	Currency           string  `json:"currency"`
	ValidUntil         string  `json:"valid_until"`
	Notes              string  `json:"notes"`
}

func (r *quotationRequest) validate() map[string]string {
	errs := make(map[string]string)
	if strings.TrimSpace(r.ClientName) == "" {
		errs["client_name"] = "Client name is required"
	}
	if r.Discount < 0 {
		errs["discount"] = "Discount must not be negative"
	}
	if r.DiscountType != "" && r.DiscountType != string(services.DiscountPercentage) && r.DiscountType != string(services.DiscountFixed) {
		errs["discount_type"] = "Discount type must be percentage or fixed"
	}
	if r.TransportationCost < 0 {
		errs["transportation_cost"] = "Transportation cost must not be negative"
	}
	if r.TaxRate < 0 {
		errs["tax_rate"] = "Tax rate must not be negative"
	}
	if r.Status != "" {
		switch r.Status {
		case "draft", "sent", "accepted", "rejected":
		default:
			errs["status"] = "Unknown status"
		}
	}
	return errs
}

func setQuotationFields(record *core.Record, req quotationRequest) {
	record.Set("client_name", strings.TrimSpace(req.ClientName))
	record.Set("client_address", strings.TrimSpace(req.ClientAddress))
	record.Set("client_contact", strings.TrimSpace(req.ClientContact))
	record.Set("client_phone", strings.TrimSpace(req.ClientPhone))
	record.Set("client_email", strings.TrimSpace(req.ClientEmail))
	record.Set("client_tax_id", strings.TrimSpace(req.ClientTaxID))
	record.Set("discount", req.Discount)
	discountType := req.DiscountType
	if discountType == "" {
		discountType = string(services.DiscountFixed)
	}
	record.Set("discount_type", discountType)
	record.Set("transportation_cost", req.TransportationCost)
	record.Set("tax_rate", req.TaxRate)
	record.Set("currency", strings.TrimSpace(req.Currency))
	record.Set("notes", strings.TrimSpace(req.Notes))
	if req.ValidUntil != "" {
		if t, err := parseOfferDate(req.ValidUntil); err == nil {
			record.Set("valid_until", t)
		}
	}
	status := req.Status
	if status == "" {
		status = "draft"
	}
	record.Set("status", status)
}

func quotationResponse(record *core.Record) map[string]any {
	return map[string]any{
		"id":                  record.Id,
		"number":              record.GetString("number"),
		"client_name":         record.GetString("client_name"),
		"client_address":      record.GetString("client_address"),
		"client_contact":      record.GetString("client_contact"),
		"client_phone":        record.GetString("client_phone"),
		"client_email":        record.GetString("client_email"),
		"client_tax_id":       record.GetString("client_tax_id"),
		"status":              record.GetString("status"),
		"discount":            record.GetFloat("discount"),
		"discount_type":       record.GetString("discount_type"),
		"transportation_cost": record.GetFloat("transportation_cost"),
		"tax_rate":            record.GetFloat("tax_rate"),
		"currency":            record.GetString("currency"),
		"notes":               record.GetString("notes"),
		"created_by":          record.GetString("created_by"),
	}
}

func HandleQuotationCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var req quotationRequest
		if err := e.BindBody(&req); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid request body")
		}

		if errs := req.validate(); len(errs) > 0 {
			return e.JSON(http.StatusBadRequest, map[string]any{"errors": errs})
		}

		col, err := app.FindCollectionByNameOrId("quotations")
		if err != nil {
			log.Printf("quotation_create: could not find quotations collection: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong")
		}

		record := core.NewRecord(col)
		record.Set("number", services.GenerateQuotationNumber(app, time.Now()))
		record.Set("created_by", GetActor(e.Request))
		setQuotationFields(record, req)

		if err := app.Save(record); err != nil {
			log.Printf("quotation_create: could not save quotation: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong")
		}

		return e.JSON(http.StatusCreated, quotationResponse(record))
	}
}
