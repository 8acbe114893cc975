package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"expense_share/pkg/utils"
)

const maxBodyBytes = 1 << 20

// DecodeJSON reads a single JSON object from the request body into v.
// Unknown fields and trailing data are rejected.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer r.Body.Close()

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return utils.NewValidationError("", "request body is empty")
		}
		return utils.NewValidationError("", "invalid request body: %v", err)
	}
	if decoder.More() {
		return utils.NewValidationError("", "request body must contain a single JSON object")
	}
	return nil
}

// RequestContext bounds store work for one request.
func RequestContext(r *http.Request, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return context.WithTimeout(r.Context(), timeout)
}

type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthCheckHandler reports 503 when db does not answer a ping. A nil db
// only checks that the process is serving.
func HealthCheckHandler(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			ctx, cancel := RequestContext(r, 2*time.Second)
			defer cancel()

			if err := db.Ping(ctx); err != nil {
				utils.Logger.WithError(err).Error("health check: database unreachable")
				utils.WriteJSONStatus(w, http.StatusServiceUnavailable, map[string]string{"status": "unhealthy"})
				return
			}
		}
		utils.WriteJSON(w, map[string]string{"status": "healthy"})
	}
}
