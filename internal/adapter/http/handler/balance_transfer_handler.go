package handler

import (
	"context"
	"net/http"

	"github.com/iho/agencyledger/internal/adapter/http/dto"
	"github.com/iho/agencyledger/internal/domain"
	"github.com/iho/agencyledger/internal/usecase"
)

// BalanceTransferService is the use case behind BalanceTransferHandler.
type BalanceTransferService interface {
	Create(ctx context.Context, tenant domain.TenantID, input usecase.CreateBalanceTransferInput) (*domain.BalanceTransfer, error)
	Update(ctx context.Context, tenant domain.TenantID, id string, input usecase.UpdateBalanceTransferInput) (*domain.BalanceTransfer, error)
	Delete(ctx context.Context, tenant domain.TenantID, id string) (*usecase.DeleteResult, error)
	Get(ctx context.Context, tenant domain.TenantID, id string) (*domain.BalanceTransfer, error)
}

// BalanceTransferHandler handles balance transfer HTTP requests.
type BalanceTransferHandler struct {
	service BalanceTransferService
	retrier Retrier
}

// NewBalanceTransferHandler creates a new BalanceTransferHandler. retrier may be nil.
func NewBalanceTransferHandler(service BalanceTransferService, retrier Retrier) *BalanceTransferHandler {
	return &BalanceTransferHandler{service: service, retrier: retrierOrDefault(retrier)}
}

// Create records a new balance transfer. The charge defaults to zero.
func (h *BalanceTransferHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateBalanceTransferRequest
	if err := decodeRequest(r, &req); err != nil {
		writeDomainError(w, r, err)
		return
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	var rec *domain.BalanceTransfer
	err = h.retrier.Retry(r.Context(), func() error {
		var err error
		rec, err = h.service.Create(r.Context(), tenantFrom(r), input)
		return err
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.BalanceTransferFromDomain(rec))
}

// Get returns a balance transfer by ID.
func (h *BalanceTransferHandler) Get(w http.ResponseWriter, r *http.Request) {
	rec, err := h.service.Get(r.Context(), tenantFrom(r), idParam(r))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.BalanceTransferFromDomain(rec))
}

// Update edits a balance transfer in place, keeping its voucher.
func (h *BalanceTransferHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateBalanceTransferRequest
	if err := decodeRequest(r, &req); err != nil {
		writeDomainError(w, r, err)
		return
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	var rec *domain.BalanceTransfer
	err = h.retrier.Retry(r.Context(), func() error {
		var err error
		rec, err = h.service.Update(r.Context(), tenantFrom(r), idParam(r), input)
		return err
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.BalanceTransferFromDomain(rec))
}

// Delete reverses and removes a balance transfer.
func (h *BalanceTransferHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
