package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/satheeshds/gstbill/billing"
	"github.com/satheeshds/gstbill/models"
)

// ListInvoices lists the caller's invoices
// @Summary      List invoices
// @Description  Get the company's invoices, newest first. Deleted drafts are never returned.
// @Tags         invoices
// @Produce      json
// @Param        X-Company-ID  header    int     true   "Company"
// @Param        status        query     string  false  "Comma separated statuses (draft, finalized, cancelled)"
// @Param        customer_id   query     int     false  "Filter by customer"
// @Param        from          query     string  false  "Invoice date from (YYYY-MM-DD)"
// @Param        to            query     string  false  "Invoice date to (YYYY-MM-DD)"
// @Success      200           {object}  Response{data=[]models.Invoice}
// @Failure      400           {object}  Response{error=string}
// @Router       /invoices [get]
// @Security     BasicAuth
func ListInvoices(w http.ResponseWriter, r *http.Request) {
	f := billing.InvoiceFilter{CompanyID: companyID(r)}

	if s := r.URL.Query().Get("status"); s != "" {
		for _, st := range strings.Split(s, ",") {
			f.Statuses = append(f.Statuses, models.InvoiceStatus(strings.TrimSpace(st)))
		}
	}
	if cid := r.URL.Query().Get("customer_id"); cid != "" {
		id, err := strconv.ParseInt(cid, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid customer_id")
			return
		}
		f.CustomerID = id
	}
	rng, ok := dateRange(w, r, false)
	if !ok {
		return
	}
	f.Range = rng

	invoices, err := Service.ListInvoices(r.Context(), f)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, invoices)
}

// GetInvoice retrieves a single invoice by ID
// @Summary      Get invoice
// @Description  Get an invoice with its line items and frozen party snapshots.
// @Tags         invoices
// @Produce      json
// @Param        X-Company-ID  header    int  true  "Company"
// @Param        id            path      int  true  "Invoice ID"
// @Success      200           {object}  Response{data=models.Invoice}
// @Failure      403           {object}  Response{error=string}
// @Failure      404           {object}  Response{error=string}
// @Router       /invoices/{id} [get]
// @Security     BasicAuth
func GetInvoice(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	inv, err := Service.GetInvoice(r.Context(), companyID(r), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, inv)
}

// CreateInvoice creates a new draft invoice
// @Summary      Create invoice
// @Description  Create a draft invoice. Tax is split into CGST/SGST or IGST from the company and customer states, and the next INV number is allocated.
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        X-Company-ID  header    int                  true  "Company"
// @Param        invoice       body      models.InvoiceInput  true  "Invoice contents"
// @Success      201           {object}  Response{data=models.Invoice}
// @Failure      400           {object}  Response{error=string}
// @Failure      404           {object}  Response{error=string}
// @Router       /invoices [post]
// @Security     BasicAuth
func CreateInvoice(w http.ResponseWriter, r *http.Request) {
	var input models.InvoiceInput
	if !decode(w, r, &input) {
		return
	}
	inv, err := Service.CreateInvoice(r.Context(), companyID(r), input)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, inv)
}

// FinalizeInvoice moves a draft invoice to finalized
// @Summary      Finalize invoice
// @Tags         invoices
// @Produce      json
// @Param        X-Company-ID  header    int  true  "Company"
// @Param        id            path      int  true  "Invoice ID"
// @Success      200           {object}  Response{data=models.Invoice}
// @Failure      409           {object}  Response{error=string}
// @Router       /invoices/{id}/finalize [post]
// @Security     BasicAuth
func FinalizeInvoice(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	inv, err := Service.FinalizeInvoice(r.Context(), companyID(r), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, inv)
}

// CancelInvoice cancels a draft or finalized invoice
// @Summary      Cancel invoice
// @Description  Cancel an invoice with a reason of at least five characters. Cancelled is terminal.
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        X-Company-ID  header    int                 true  "Company"
// @Param        id            path      int                 true  "Invoice ID"
// @Param        cancel        body      models.CancelInput  true  "Cancellation reason"
// @Success      200           {object}  Response{data=models.Invoice}
// @Failure      400           {object}  Response{error=string}
// @Failure      409           {object}  Response{error=string}
// @Router       /invoices/{id}/cancel [post]
// @Security     BasicAuth
func CancelInvoice(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var input models.CancelInput
	if !decode(w, r, &input) {
		return
	}
	inv, err := Service.CancelInvoice(r.Context(), companyID(r), id, input.Reason)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, inv)
}

// DeleteInvoice soft-deletes a draft invoice
// @Summary      Delete invoice
// @Description  Soft-delete a draft invoice. Finalized invoices must be cancelled instead.
// @Tags         invoices
// @Produce      json
// @Param        X-Company-ID  header    int  true  "Company"
// @Param        id            path      int  true  "Invoice ID"
// @Success      200           {object}  Response{data=map[string]string}
// @Failure      409           {object}  Response{error=string}
// @Router       /invoices/{id} [delete]
// @Security     BasicAuth
func DeleteInvoice(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := Service.DeleteInvoice(r.Context(), companyID(r), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "deleted"})
}
