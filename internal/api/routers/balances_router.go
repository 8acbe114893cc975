package routers

import (
	"net/http"

	"expense_share/internal/api/handlers/ledger"
)

func balancesRouter(mux *http.ServeMux, h *ledger.Handler) {
	mux.HandleFunc("GET /balances", h.GetBalancesHandler)
	mux.HandleFunc("GET /balances/u/{user_id}", h.GetUserBalancesHandler)
	mux.HandleFunc("GET /balance-sheet/download/u/{user_id}", h.DownloadBalanceSheetHandler)
	mux.HandleFunc("POST /balance-sheet/email/u/{user_id}", h.EmailBalanceSheetHandler)
}
