package utils

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"
)

type errorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func WriteError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(errorResponse{
		Status:  "error",
		Message: message,
	})
}

// WriteAppError translates the typed errors of this module into a status code.
// Store failures are logged and hidden behind a generic message.
func WriteAppError(w http.ResponseWriter, err error) {
	var (
		validation *ValidationError
		notFound   *NotFoundError
		gap        *IntegrityGapError
		persist    *PersistenceError
	)

	switch {
	case errors.As(err, &validation):
		WriteError(w, validation.Error(), http.StatusBadRequest)
	case errors.As(err, &notFound):
		WriteError(w, notFound.Error(), http.StatusNotFound)
	case errors.Is(err, ErrDuplicate):
		WriteError(w, err.Error(), http.StatusConflict)
	case errors.As(err, &gap):
		Logger.WithFields(logrus.Fields{
			"expense_id": gap.ExpenseID,
			"error":      gap.Err,
			"rollback":   gap.RollbackErr,
		}).Error("partial expense write")
		WriteError(w, "expense stored without splits, contact support", http.StatusInternalServerError)
	case errors.As(err, &persist):
		Logger.WithError(persist.Err).Errorf("store failure during %s", persist.Op)
		WriteError(w, "internal server error", http.StatusInternalServerError)
	default:
		Logger.WithError(err).Error("unhandled error")
		WriteError(w, "internal server error", http.StatusInternalServerError)
	}
}
