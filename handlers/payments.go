package handlers

import (
	"net/http"

	"github.com/satheeshds/gstbill/models"
)

// ListPayments lists payments received against an invoice
// @Summary      List payments
// @Tags         payments
// @Produce      json
// @Param        X-Company-ID  header    int  true  "Company"
// @Param        id            path      int  true  "Invoice ID"
// @Success      200           {object}  Response{data=[]models.Payment}
// @Failure      404           {object}  Response{error=string}
// @Router       /invoices/{id}/payments [get]
// @Security     BasicAuth
func ListPayments(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	payments, err := Service.ListPayments(r.Context(), companyID(r), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, payments)
}

// RecordPayment records a payment against a finalized invoice
// @Summary      Record payment
// @Description  Record money received. The amount may not exceed the invoice's pending balance.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        X-Company-ID  header    int                  true  "Company"
// @Param        id            path      int                  true  "Invoice ID"
// @Param        payment       body      models.PaymentInput  true  "Payment"
// @Success      201           {object}  Response{data=models.Payment}
// @Failure      400           {object}  Response{error=string}
// @Failure      409           {object}  Response{error=string}
// @Router       /invoices/{id}/payments [post]
// @Security     BasicAuth
func RecordPayment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var input models.PaymentInput
	if !decode(w, r, &input) {
		return
	}
	p, err := Service.RecordPayment(r.Context(), companyID(r), id, input)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}
