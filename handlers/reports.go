package handlers

import (
	"net/http"

	"github.com/satheeshds/gstbill/billing"
)

type outstandingReport struct {
	Rows    []billing.AgingRow   `json:"rows"`
	Summary billing.AgingSummary `json:"summary"`
}

// GetOutstanding reports receivables aging
// @Summary      Outstanding receivables
// @Description  Finalized invoices with more than one rupee pending, ordered by due date, with totals per aging bucket (0-30, 31-60, 60+ days since invoice date).
// @Tags         reports
// @Produce      json
// @Param        X-Company-ID  header    int  true  "Company"
// @Success      200           {object}  Response{data=outstandingReport}
// @Router       /reports/outstanding [get]
// @Security     BasicAuth
func GetOutstanding(w http.ResponseWriter, r *http.Request) {
	rows, err := Service.ComputeOutstanding(r.Context(), companyID(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, outstandingReport{Rows: rows, Summary: billing.SummarizeAging(rows)})
}

// GetProfitAndLoss reports revenue against expenses
// @Summary      Profit and loss
// @Tags         reports
// @Produce      json
// @Param        X-Company-ID  header    int     true  "Company"
// @Param        from          query     string  true  "From (YYYY-MM-DD)"
// @Param        to            query     string  true  "To (YYYY-MM-DD)"
// @Success      200           {object}  Response{data=billing.ProfitAndLoss}
// @Failure      400           {object}  Response{error=string}
// @Router       /reports/pnl [get]
// @Security     BasicAuth
func GetProfitAndLoss(w http.ResponseWriter, r *http.Request) {
	rng, ok := dateRange(w, r, true)
	if !ok {
		return
	}
	pl, err := Service.ProfitAndLoss(r.Context(), companyID(r), *rng)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, pl)
}

// GetSalesRegister lists invoices with their tax breakdown
// @Summary      Sales register
// @Tags         reports
// @Produce      json
// @Param        X-Company-ID  header    int     true  "Company"
// @Param        from          query     string  true  "From (YYYY-MM-DD)"
// @Param        to            query     string  true  "To (YYYY-MM-DD)"
// @Success      200           {object}  Response{data=[]billing.SalesRegisterRow}
// @Failure      400           {object}  Response{error=string}
// @Router       /reports/sales-register [get]
// @Security     BasicAuth
func GetSalesRegister(w http.ResponseWriter, r *http.Request) {
	rng, ok := dateRange(w, r, true)
	if !ok {
		return
	}
	rows, err := Service.SalesRegister(r.Context(), companyID(r), *rng)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

// GetGSTSummary reports output tax, input tax and net payable
// @Summary      GST summary
// @Tags         reports
// @Produce      json
// @Param        X-Company-ID  header    int     true  "Company"
// @Param        from          query     string  true  "From (YYYY-MM-DD)"
// @Param        to            query     string  true  "To (YYYY-MM-DD)"
// @Success      200           {object}  Response{data=billing.GSTSummary}
// @Failure      400           {object}  Response{error=string}
// @Router       /reports/gst-summary [get]
// @Security     BasicAuth
func GetGSTSummary(w http.ResponseWriter, r *http.Request) {
	rng, ok := dateRange(w, r, true)
	if !ok {
		return
	}
	sum, err := Service.GSTSummary(r.Context(), companyID(r), *rng)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sum)
}
