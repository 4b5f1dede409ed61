package handler

import (
	"context"
	"net/http"

	"github.com/iho/agencyledger/internal/adapter/http/dto"
	"github.com/iho/agencyledger/internal/domain"
	"github.com/iho/agencyledger/internal/usecase"
)

// ReconciliationService is the use case behind ReconciliationHandler.
type ReconciliationService interface {
	Report(ctx context.Context, tenant domain.TenantID) (*usecase.ReconciliationReport, error)
	Reconcile(ctx context.Context, tenant domain.TenantID) (*usecase.ReconciliationSummary, error)
}

// ReconciliationHandler exposes the due-amount checker.
type ReconciliationHandler struct {
	service ReconciliationService
}

// NewReconciliationHandler creates a new ReconciliationHandler.
func NewReconciliationHandler(service ReconciliationService) *ReconciliationHandler {
	return &ReconciliationHandler{service: service}
}

// Report handles GET /reconciliation?action=report.
func (h *ReconciliationHandler) Report(w http.ResponseWriter, r *http.Request) {
	if action := r.URL.Query().Get("action"); action != "report" {
		writeError(w, http.StatusBadRequest, string(domain.CodeValidation), "unknown action "+quoteAction(action))
		return
	}

	report, err := h.service.Report(r.Context(), tenantFrom(r))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, report)
}

// Reconcile handles POST /reconciliation {"action":"reconcile"}.
func (h *ReconciliationHandler) Reconcile(w http.ResponseWriter, r *http.Request) {
	var req dto.ReconcileRequest
	if err := decodeRequest(r, &req); err != nil {
		writeDomainError(w, r, err)
		return
	}

	summary, err := h.service.Reconcile(r.Context(), tenantFrom(r))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

func quoteAction(action string) string {
	if action == "" {
		return "(none)"
	}
	return `"` + action + `"`
}
