package routers

import (
	"net/http"

	"expense_share/internal/api/handlers/expenses"
)

func expensesRouter(mux *http.ServeMux, h *expenses.Handler) {
	mux.HandleFunc("POST /expenses", h.CreateExpenseHandler)
	mux.HandleFunc("GET /expenses", h.ListExpensesHandler)
	mux.HandleFunc("GET /expenses/{expense_id}", h.GetExpenseHandler)
}
