package handlers

import (
	"net/http"

	"github.com/satheeshds/gstbill/billing"
	"github.com/satheeshds/gstbill/models"
)

// ListInvoiceCreditNotes lists the credit notes raised against an invoice
// @Summary      List credit notes of an invoice
// @Tags         credit-notes
// @Produce      json
// @Param        X-Company-ID  header    int  true  "Company"
// @Param        id            path      int  true  "Invoice ID"
// @Success      200           {object}  Response{data=[]models.CreditNote}
// @Failure      404           {object}  Response{error=string}
// @Router       /invoices/{id}/credit-notes [get]
// @Security     BasicAuth
func ListInvoiceCreditNotes(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	notes, err := Service.ListCreditNotes(r.Context(), billing.CreditNoteFilter{CompanyID: companyID(r), InvoiceID: id})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, notes)
}

// IssueCreditNote issues a credit note against an invoice
// @Summary      Issue credit note
// @Description  Reverse part of an invoice. Tax is split using the state codes frozen on the invoice, and the next CN number is allocated.
// @Tags         credit-notes
// @Accept       json
// @Produce      json
// @Param        X-Company-ID  header    int                     true  "Company"
// @Param        id            path      int                     true  "Invoice ID"
// @Param        note          body      models.CreditNoteInput  true  "Reversal lines"
// @Success      201           {object}  Response{data=models.CreditNote}
// @Failure      400           {object}  Response{error=string}
// @Failure      403           {object}  Response{error=string}
// @Router       /invoices/{id}/credit-notes [post]
// @Security     BasicAuth
func IssueCreditNote(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var input models.CreditNoteInput
	if !decode(w, r, &input) {
		return
	}
	cn, err := Service.IssueCreditNote(r.Context(), companyID(r), id, input)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, cn)
}

// GetCreditNote retrieves a single credit note
// @Summary      Get credit note
// @Tags         credit-notes
// @Produce      json
// @Param        X-Company-ID  header    int  true  "Company"
// @Param        id            path      int  true  "Credit note ID"
// @Success      200           {object}  Response{data=models.CreditNote}
// @Failure      404           {object}  Response{error=string}
// @Router       /credit-notes/{id} [get]
// @Security     BasicAuth
func GetCreditNote(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	cn, err := Service.GetCreditNote(r.Context(), companyID(r), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cn)
}
