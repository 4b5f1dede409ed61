package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/iho/agencyledger/internal/adapter/http/dto"
	"github.com/iho/agencyledger/internal/adapter/http/middleware"
	"github.com/iho/agencyledger/internal/domain"
	"github.com/iho/agencyledger/internal/infrastructure/logger"
)

// Retrier re-runs an operation on transient store conflicts.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

type noRetry struct{}

func (noRetry) Retry(_ context.Context, operation func() error) error {
	return operation()
}

func retrierOrDefault(r Retrier) Retrier {
	if r == nil {
		return noRetry{}
	}
	return r
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	writeJSON(w, status, dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// writeDomainError renders err with the status its code maps to. The
// message of a typed error is passed through verbatim.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	appErr := domain.AsError(err)
	status := appErr.StatusCode()

	if status >= http.StatusInternalServerError {
		l := logger.FromContext(r.Context(), log.Logger)
		l.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
	}

	message := appErr.Message
	if message == "" {
		message = string(appErr.Code)
	}

	writeError(w, status, string(appErr.Code), message)
}

// decodeRequest reads a JSON body into dst and validates it.
func decodeRequest(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return domain.NewValidation("invalid request body: %v", err)
	}
	return dto.Validate(dst)
}

func tenantFrom(r *http.Request) domain.TenantID {
	return middleware.CompanyID(r.Context())
}

func idParam(r *http.Request) string {
	return chi.URLParam(r, "id")
}
