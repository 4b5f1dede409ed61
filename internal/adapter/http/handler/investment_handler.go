package handler

import (
	"context"
	"net/http"

	"github.com/iho/agencyledger/internal/adapter/http/dto"
	"github.com/iho/agencyledger/internal/domain"
	"github.com/iho/agencyledger/internal/usecase"
)

// InvestmentService is the use case behind InvestmentHandler.
type InvestmentService interface {
	Create(ctx context.Context, tenant domain.TenantID, input usecase.CreateInvestmentInput) (*domain.Investment, error)
	Update(ctx context.Context, tenant domain.TenantID, id string, input usecase.UpdateInvestmentInput) (*domain.Investment, error)
	Delete(ctx context.Context, tenant domain.TenantID, id string) (*usecase.DeleteResult, error)
	Get(ctx context.Context, tenant domain.TenantID, id string) (*domain.Investment, error)
}

// InvestmentHandler handles investment HTTP requests.
type InvestmentHandler struct {
	service InvestmentService
	retrier Retrier
}

// NewInvestmentHandler creates a new InvestmentHandler. retrier may be nil.
func NewInvestmentHandler(service InvestmentService, retrier Retrier) *InvestmentHandler {
	return &InvestmentHandler{service: service, retrier: retrierOrDefault(retrier)}
}

// Create records a new investment.
func (h *InvestmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateInvestmentRequest
	if err := decodeRequest(r, &req); err != nil {
		writeDomainError(w, r, err)
		return
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	var rec *domain.Investment
	err = h.retrier.Retry(r.Context(), func() error {
		var err error
		rec, err = h.service.Create(r.Context(), tenantFrom(r), input)
		return err
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.InvestmentFromDomain(rec))
}

func (h *InvestmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	rec, err := h.service.Get(r.Context(), tenantFrom(r), idParam(r))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.InvestmentFromDomain(rec))
}

// Update edits an investment in place, keeping its voucher.
func (h *InvestmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateInvestmentRequest
	if err := decodeRequest(r, &req); err != nil {
		writeDomainError(w, r, err)
		return
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	var rec *domain.Investment
	err = h.retrier.Retry(r.Context(), func() error {
		var err error
		rec, err = h.service.Update(r.Context(), tenantFrom(r), idParam(r), input)
		return err
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.InvestmentFromDomain(rec))
}

// Delete reverses and removes an investment.
func (h *InvestmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
