package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/iho/agencyledger/internal/domain"
)

// CompanyIDHeader carries the tenant of every API request.
const CompanyIDHeader = "X-Company-ID"

type companyKey struct{}

// WithCompanyID stores the tenant in ctx.
func WithCompanyID(ctx context.Context, tenant domain.TenantID) context.Context {
	return context.WithValue(ctx, companyKey{}, tenant)
}

// CompanyID returns the tenant stored by RequireCompany, or "".
func CompanyID(ctx context.Context) domain.TenantID {
	tenant, _ := ctx.Value(companyKey{}).(domain.TenantID)
	return tenant
}

// RequireCompany rejects requests without X-Company-ID.
func RequireCompany(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tenant := domain.TenantID(strings.TrimSpace(r.Header.Get(CompanyIDHeader)))
		if err := tenant.Validate(); err != nil {
			writeJSONError(w, http.StatusBadRequest, "missing company", domain.AsError(err).Message)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithCompanyID(r.Context(), tenant)))
	})
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func writeJSONError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorBody{Error: message, Message: details})
}
