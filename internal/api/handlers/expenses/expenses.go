package expenses

import (
	"context"
	"net/http"
	"time"

	"expense_share/internal/api/handlers"
	"expense_share/internal/balances"
	"expense_share/internal/models"
	"expense_share/pkg/utils"
)

type ExpenseService interface {
	Create(ctx context.Context, req models.NewExpense) (models.ExpenseWithSplits, error)
	Get(ctx context.Context, id string) (models.ExpenseWithSplits, error)
	Overall(ctx context.Context) (balances.OverallExpenses, error)
}

type Handler struct {
	expenses ExpenseService
	timeout  time.Duration
}

func NewHandler(expenses ExpenseService, timeout time.Duration) *Handler {
	return &Handler{expenses: expenses, timeout: timeout}
}

// FUNC TO CREATE AN EXPENSE WITH ITS SPLITS
func (h *Handler) CreateExpenseHandler(w http.ResponseWriter, r *http.Request) {
	var req models.NewExpense
	if err := handlers.DecodeJSON(w, r, &req); err != nil {
		utils.WriteAppError(w, err)
		return
	}

	ctx, cancel := handlers.RequestContext(r, h.timeout)
	defer cancel()

	expense, err := h.expenses.Create(ctx, req)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusCreated, "expense created", expense)
}

// FUNC TO GET ALL EXPENSES
func (h *Handler) ListExpensesHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := handlers.RequestContext(r, h.timeout)
	defer cancel()

	overall, err := h.expenses.Overall(ctx)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, "", overall)
}

// FUNC TO GET ONE EXPENSE BY ID
func (h *Handler) GetExpenseHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := handlers.RequestContext(r, h.timeout)
	defer cancel()

	expense, err := h.expenses.Get(ctx, r.PathValue("expense_id"))
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, "", expense)
}
