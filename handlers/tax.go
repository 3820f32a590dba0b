package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/satheeshds/gstbill/gst"
	"github.com/satheeshds/gstbill/models"
)

// TaxPreviewInput describes lines to be taxed without creating a document.
type TaxPreviewInput struct {
	IssuerState       string                 `json:"issuer_state"`
	CounterpartyState string                 `json:"counterparty_state"`
	Items             []models.LineItemInput `json:"items"`
}

// PreviewTax computes the GST split for a set of lines
// @Summary      Preview tax
// @Description  Compute per-line and total CGST/SGST/IGST for the given lines. Nothing is stored.
// @Tags         tax
// @Accept       json
// @Produce      json
// @Param        preview  body      TaxPreviewInput  true  "Lines and states"
// @Success      200      {object}  Response{data=gst.Totals}
// @Failure      400      {object}  Response{error=string}
// @Router       /tax/preview [post]
// @Security     BasicAuth
func PreviewTax(w http.ResponseWriter, r *http.Request) {
	var input TaxPreviewInput
	if !decode(w, r, &input) {
		return
	}
	if strings.TrimSpace(input.IssuerState) == "" || strings.TrimSpace(input.CounterpartyState) == "" {
		writeError(w, http.StatusBadRequest, "issuer_state and counterparty_state are required")
		return
	}
	lines := make([]gst.Line, len(input.Items))
	for n := range input.Items {
		it := &input.Items[n]
		if msg := it.Validate(); msg != "" {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("item %d: %s", n+1, msg))
			return
		}
		lines[n] = gst.Line{Quantity: it.Quantity, UnitPrice: it.UnitPrice, TaxRate: it.TaxRate}
	}
	writeJSON(w, http.StatusOK, gst.ComputeInvoiceTotals(lines, input.IssuerState, input.CounterpartyState))
}
