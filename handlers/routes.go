package handlers

import (
	"github.com/go-chi/chi/v5"
)

// Routes registers the API endpoints on r.
func Routes(r chi.Router) {
	// Tax preview does not touch company data
	r.Post("/tax/preview", PreviewTax)

	r.Group(func(r chi.Router) {
		r.Use(CompanyScope)

		// Invoices
		r.Get("/invoices", ListInvoices)
		r.Post("/invoices", CreateInvoice)
		r.Get("/invoices/{id}", GetInvoice)
		r.Delete("/invoices/{id}", DeleteInvoice)
		r.Post("/invoices/{id}/finalize", FinalizeInvoice)
		r.Post("/invoices/{id}/cancel", CancelInvoice)

		// Payments
		r.Get("/invoices/{id}/payments", ListPayments)
		r.Post("/invoices/{id}/payments", RecordPayment)

		// Credit notes
		r.Get("/invoices/{id}/credit-notes", ListInvoiceCreditNotes)
		r.Post("/invoices/{id}/credit-notes", IssueCreditNote)
		r.Get("/credit-notes/{id}", GetCreditNote)

		// Expenses
		r.Get("/expenses", ListExpenses)
		r.Post("/expenses", CreateExpense)
		r.Delete("/expenses/{id}", DeleteExpense)

		// Reports
		r.Get("/reports/outstanding", GetOutstanding)
		r.Get("/reports/pnl", GetProfitAndLoss)
		r.Get("/reports/sales-register", GetSalesRegister)
		r.Get("/reports/gst-summary", GetGSTSummary)
	})
}
