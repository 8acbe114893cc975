package routers

import (
	"net/http"

	"expense_share/internal/api/handlers"
	"expense_share/internal/api/handlers/expenses"
	"expense_share/internal/api/handlers/ledger"
	"expense_share/internal/api/handlers/users"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Handlers struct {
	Users    *users.Handler
	Expenses *expenses.Handler
	Ledger   *ledger.Handler
	DB       handlers.Pinger
}

func MainRouter(h Handlers) *http.ServeMux {
	mux := http.NewServeMux()

	usersRouter(mux, h.Users)
	expensesRouter(mux, h.Expenses)
	balancesRouter(mux, h.Ledger)

	mux.HandleFunc("GET /health-check", handlers.HealthCheckHandler(h.DB))
	mux.Handle("GET /metrics", promhttp.Handler())

	return mux
}
