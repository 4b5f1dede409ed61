package handler

import (
	"context"
	"net/http"

	"github.com/iho/agencyledger/internal/adapter/http/dto"
	"github.com/iho/agencyledger/internal/domain"
	"github.com/iho/agencyledger/internal/usecase"
)

// ClientPaymentService is the use case behind ClientPaymentHandler.
type ClientPaymentService interface {
	Create(ctx context.Context, tenant domain.TenantID, input usecase.CreateClientPaymentInput) (*domain.ClientPayment, error)
	Update(ctx context.Context, tenant domain.TenantID, id string, input usecase.UpdateClientPaymentInput) (*domain.ClientPayment, error)
	Delete(ctx context.Context, tenant domain.TenantID, id string) (*usecase.DeleteResult, error)
	Get(ctx context.Context, tenant domain.TenantID, id string) (*domain.ClientPayment, error)
	AuditTrail(ctx context.Context, tenant domain.TenantID, clientID string) ([]*domain.AuditEntry, error)
}

// ClientPaymentHandler handles client payment HTTP requests and serves the
// due-amount audit trail they produce.
type ClientPaymentHandler struct {
	service ClientPaymentService
	retrier Retrier
}

// NewClientPaymentHandler creates a new ClientPaymentHandler. retrier may be nil.
func NewClientPaymentHandler(service ClientPaymentService, retrier Retrier) *ClientPaymentHandler {
	return &ClientPaymentHandler{service: service, retrier: retrierOrDefault(retrier)}
}

// Create records a new client payment.
func (h *ClientPaymentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateClientPaymentRequest
	if err := decodeRequest(r, &req); err != nil {
		writeDomainError(w, r, err)
		return
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	var rec *domain.ClientPayment
	err = h.retrier.Retry(r.Context(), func() error {
		var err error
		rec, err = h.service.Create(r.Context(), tenantFrom(r), input)
		return err
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.ClientPaymentFromDomain(rec))
}

// Get returns a client payment by ID.
func (h *ClientPaymentHandler) Get(w http.ResponseWriter, r *http.Request) {
	rec, err := h.service.Get(r.Context(), tenantFrom(r), idParam(r))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ClientPaymentFromDomain(rec))
}

// Update edits a client payment in place, keeping its voucher.
func (h *ClientPaymentHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateClientPaymentRequest
	if err := decodeRequest(r, &req); err != nil {
		writeDomainError(w, r, err)
		return
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	var rec *domain.ClientPayment
	err = h.retrier.Retry(r.Context(), func() error {
		var err error
		rec, err = h.service.Update(r.Context(), tenantFrom(r), idParam(r), input)
		return err
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ClientPaymentFromDomain(rec))
}

// Delete reverses and removes a client payment.
func (h *ClientPaymentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var res *usecase.DeleteResult
	err := h.retrier.Retry(r.Context(), func() error {
		var err error
		res, err = h.service.Delete(r.Context(), tenantFrom(r), idParam(r))
		return err
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.DeleteFromResult(res))
}

// AuditTrail lists the due-amount changes recorded for a client.
func (h *ClientPaymentHandler) AuditTrail(w http.ResponseWriter, r *http.Request) {
	entries, err := h.service.AuditTrail(r.Context(), tenantFrom(r), idParam(r))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.AuditEntriesFromDomain(entries))
}
