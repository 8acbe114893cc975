// Package ledger serves balances and balance sheets.
package ledger

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"expense_share/internal/api/handlers"
	"expense_share/internal/balances"
	"expense_share/internal/models"
	"expense_share/internal/reports"
	"expense_share/pkg/utils"

	"github.com/sirupsen/logrus"
)

type BalanceService interface {
	Pairwise(ctx context.Context, userID string) ([]balances.PairBalance, error)
	UserBalances(ctx context.Context, userID string) (balances.UserBalanceReport, error)
	BalanceSheet(ctx context.Context, userID string) (balances.BalanceSheet, models.User, error)
}

type Handler struct {
	balances BalanceService
	mailer   utils.Mailer
	currency string
	timeout  time.Duration
	now      func() time.Time
}

// NewHandler builds the ledger handler. A nil mailer disables emailing
// balance sheets.
func NewHandler(svc BalanceService, mailer utils.Mailer, currency string, timeout time.Duration) *Handler {
	return &Handler{
		balances: svc,
		mailer:   mailer,
		currency: currency,
		timeout:  timeout,
		now:      time.Now,
	}
}

// FUNC TO GET PAIRWISE BALANCES, OPTIONALLY FOR ONE USER
func (h *Handler) GetBalancesHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := handlers.RequestContext(r, h.timeout)
	defer cancel()

	pairs, err := h.balances.Pairwise(ctx, r.URL.Query().Get("user_id"))
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, "", pairs)
}

// FUNC TO GET ONE USER'S BALANCE REPORT
func (h *Handler) GetUserBalancesHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := handlers.RequestContext(r, h.timeout)
	defer cancel()

	report, err := h.balances.UserBalances(ctx, r.PathValue("user_id"))
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, "", report)
}

func (h *Handler) renderSheet(r *http.Request) (utils.Attachment, models.User, time.Time, error) {
	ctx, cancel := handlers.RequestContext(r, h.timeout)
	defer cancel()

	sheet, user, err := h.balances.BalanceSheet(ctx, r.PathValue("user_id"))
	if err != nil {
		return utils.Attachment{}, models.User{}, time.Time{}, err
	}

	generatedAt := h.now()
	var buf bytes.Buffer
	if err := reports.RenderBalanceSheet(&buf, sheet, generatedAt, h.currency); err != nil {
		return utils.Attachment{}, models.User{}, time.Time{}, utils.ErrorHandler(err, "failed to render balance sheet",
			logrus.Fields{"user_id": user.ID})
	}

	return utils.Attachment{
		Name:    reports.FileName(user.Name, generatedAt),
		Content: buf.Bytes(),
	}, user, generatedAt, nil
}

// FUNC TO DOWNLOAD A USER'S BALANCE SHEET AS PDF
func (h *Handler) DownloadBalanceSheetHandler(w http.ResponseWriter, r *http.Request) {
	pdf, _, _, err := h.renderSheet(r)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", pdf.Name))
	w.Header().Set("Content-Length", fmt.Sprint(len(pdf.Content)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(pdf.Content); err != nil {
		utils.Logger.WithError(err).Warn("failed to write balance sheet response")
	}
}

// FUNC TO EMAIL A USER THEIR BALANCE SHEET
func (h *Handler) EmailBalanceSheetHandler(w http.ResponseWriter, r *http.Request) {
	if h.mailer == nil {
		utils.WriteError(w, "email delivery is not configured", http.StatusServiceUnavailable)
		return
	}

	pdf, user, generatedAt, err := h.renderSheet(r)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	if err := utils.SendBalanceSheetEmail(h.mailer, user.Email, user.Name, generatedAt, pdf); err != nil {
		utils.Logger.WithFields(logrus.Fields{"user_id": user.ID, "error": err.Error()}).Error("balance sheet email failed")
		utils.WriteError(w, "failed to send balance sheet email", http.StatusBadGateway)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, "balance sheet sent to "+user.Email, map[string]string{"file": pdf.Name})
}
