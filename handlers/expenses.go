package handlers

import (
	"net/http"

	"github.com/satheeshds/gstbill/billing"
	"github.com/satheeshds/gstbill/models"
)

// ListExpenses lists the caller's expenses
// @Summary      List expenses
// @Tags         expenses
// @Produce      json
// @Param        X-Company-ID  header    int     true   "Company"
// @Param        from          query     string  false  "Expense date from (YYYY-MM-DD)"
// @Param        to            query     string  false  "Expense date to (YYYY-MM-DD)"
// @Success      200           {object}  Response{data=[]models.Expense}
// @Router       /expenses [get]
// @Security     BasicAuth
func ListExpenses(w http.ResponseWriter, r *http.Request) {
	rng, ok := dateRange(w, r, false)
	if !ok {
		return
	}
	expenses, err := Service.ListExpenses(r.Context(), billing.ExpenseFilter{CompanyID: companyID(r), Range: rng})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, expenses)
}

// CreateExpense records an expense
// @Summary      Record expense
// @Description  Record a purchase. gst_amount is the input tax included in amount.
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Param        X-Company-ID  header    int                  true  "Company"
// @Param        expense       body      models.ExpenseInput  true  "Expense"
// @Success      201           {object}  Response{data=models.Expense}
// @Failure      400           {object}  Response{error=string}
// @Router       /expenses [post]
// @Security     BasicAuth
func CreateExpense(w http.ResponseWriter, r *http.Request) {
	var input models.ExpenseInput
	if !decode(w, r, &input) {
		return
	}
	e, err := Service.RecordExpense(r.Context(), companyID(r), input)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, e)
}

// DeleteExpense soft-deletes an expense
// @Summary      Delete expense
// @Tags         expenses
// @Produce      json
// @Param        X-Company-ID  header    int  true  "Company"
// @Param        id            path      int  true  "Expense ID"
// @Success      200           {object}  Response{data=map[string]string}
// @Failure      404           {object}  Response{error=string}
// @Router       /expenses/{id} [delete]
// @Security     BasicAuth
func DeleteExpense(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := Service.DeleteExpense(r.Context(), companyID(r), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "deleted"})
}
