package utils

import (
	"encoding/json"
	"net/http"
)

type successResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func WriteJSON(w http.ResponseWriter, data any) {
	WriteJSONStatus(w, http.StatusOK, data)
}

func WriteJSONStatus(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		Logger.WithError(err).Error("failed to encode JSON response")
	}
}

// WriteSuccess wraps data in the {"status":"success","data":...} envelope.
func WriteSuccess(w http.ResponseWriter, statusCode int, message string, data any) {
	WriteJSONStatus(w, statusCode, successResponse{
		Status:  "success",
		Message: message,
		Data:    data,
	})
}
