package handler

import (
	"context"
	"net/http"

	"github.com/iho/agencyledger/internal/adapter/http/dto"
	"github.com/iho/agencyledger/internal/domain"
	"github.com/iho/agencyledger/internal/usecase"
)

// AdvanceReturnService is the use case behind AdvanceReturnHandler.
type AdvanceReturnService interface {
	Create(ctx context.Context, tenant domain.TenantID, input usecase.CreateAdvanceReturnInput) (*domain.AdvanceReturn, error)
	Update(ctx context.Context, tenant domain.TenantID, id string, input usecase.UpdateAdvanceReturnInput) (*domain.AdvanceReturn, error)
	Delete(ctx context.Context, tenant domain.TenantID, id string) (*usecase.DeleteResult, error)
	Get(ctx context.Context, tenant domain.TenantID, id string) (*domain.AdvanceReturn, error)
}

// AdvanceReturnHandler handles advance return HTTP requests.
type AdvanceReturnHandler struct {
	service AdvanceReturnService
	retrier Retrier
}

// NewAdvanceReturnHandler creates a new AdvanceReturnHandler. retrier may be nil.
func NewAdvanceReturnHandler(service AdvanceReturnService, retrier Retrier) *AdvanceReturnHandler {
	return &AdvanceReturnHandler{service: service, retrier: retrierOrDefault(retrier)}
}

// Create records a new advance return.
func (h *AdvanceReturnHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAdvanceReturnRequest
	if err := decodeRequest(r, &req); err != nil {
		writeDomainError(w, r, err)
		return
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	var rec *domain.AdvanceReturn
	err = h.retrier.Retry(r.Context(), func() error {
		var err error
		rec, err = h.service.Create(r.Context(), tenantFrom(r), input)
		return err
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.AdvanceReturnFromDomain(rec))
}

// Get returns an advance return by ID.
func (h *AdvanceReturnHandler) Get(w http.ResponseWriter, r *http.Request) {
	rec, err := h.service.Get(r.Context(), tenantFrom(r), idParam(r))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.AdvanceReturnFromDomain(rec))
}

// Update edits an advance return in place, keeping its voucher.
func (h *AdvanceReturnHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateAdvanceReturnRequest
	if err := decodeRequest(r, &req); err != nil {
		writeDomainError(w, r, err)
		return
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	var rec *domain.AdvanceReturn
	err = h.retrier.Retry(r.Context(), func() error {
		var err error
		rec, err = h.service.Update(r.Context(), tenantFrom(r), idParam(r), input)
		return err
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.AdvanceReturnFromDomain(rec))
}

// Delete reverses and removes an advance return.
func (h *AdvanceReturnHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
