package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

type paymentStatusRequest struct {
	PaymentStatus string `json:"payment_status"`
	DueDate       string `json:"due_date"`
	Notes         string `json:"notes"`
}

// HandleInvoicePaymentUpdate updates the payment state of an invoice.
// Financial fields are immutable once the invoice is issued.
func HandleInvoicePaymentUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		invoiceID := e.Request.PathValue("id")
		if invoiceID == "" {
			return apiError(e, http.StatusBadRequest, "Missing invoice ID")
		}

		record, err := app.FindRecordById("invoices", invoiceID)
		if err != nil {
			return apiError(e, http.StatusNotFound, "Invoice not found")
		}

		var req paymentStatusRequest
		if err := e.BindBody(&req); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid request body")
		}

		switch req.PaymentStatus {
		case "unpaid", "partial", "paid":
		default:
			return apiError(e, http.StatusBadRequest, "Payment status must be unpaid, partial or paid")
		}

		record.Set("payment_status", req.PaymentStatus)
		if req.DueDate != "" {
			t, err := parseOfferDate(req.DueDate)
			if err != nil {
				return apiError(e, http.StatusBadRequest, "Invalid due_date")
			}
			record.Set("due_date", t)
		}
		if req.Notes != "" {
			record.Set("notes", req.Notes)
		}

		if err := app.Save(record); err != nil {
			log.Printf("invoice_payment: could not save invoice %s: %v", invoiceID, err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong")
		}

		return e.JSON(http.StatusOK, invoiceResponse(record))
	}
}
