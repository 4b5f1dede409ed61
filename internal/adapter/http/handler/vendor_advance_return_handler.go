package handler

import (
	"context"
	"net/http"

	"github.com/iho/agencyledger/internal/adapter/http/dto"
	"github.com/iho/agencyledger/internal/domain"
	"github.com/iho/agencyledger/internal/usecase"
)

// VendorAdvanceReturnService is the use case behind VendorAdvanceReturnHandler.
type VendorAdvanceReturnService interface {
	Create(ctx context.Context, tenant domain.TenantID, input usecase.CreateVendorAdvanceReturnInput) (*domain.VendorAdvanceReturn, error)
	Update(ctx context.Context, tenant domain.TenantID, id string, input usecase.UpdateVendorAdvanceReturnInput) (*domain.VendorAdvanceReturn, error)
	Delete(ctx context.Context, tenant domain.TenantID, id string) (*usecase.DeleteResult, error)
	Get(ctx context.Context, tenant domain.TenantID, id string) (*domain.VendorAdvanceReturn, error)
}

// VendorAdvanceReturnHandler handles vendor advance return HTTP requests.
type VendorAdvanceReturnHandler struct {
	service VendorAdvanceReturnService
	retrier Retrier
}

// NewVendorAdvanceReturnHandler creates a new VendorAdvanceReturnHandler. retrier may be nil.
func NewVendorAdvanceReturnHandler(service VendorAdvanceReturnService, retrier Retrier) *VendorAdvanceReturnHandler {
	return &VendorAdvanceReturnHandler{service: service, retrier: retrierOrDefault(retrier)}
}

// Create records a new vendor advance return.
func (h *VendorAdvanceReturnHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateVendorAdvanceReturnRequest
	if err := decodeRequest(r, &req); err != nil {
		writeDomainError(w, r, err)
		return
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	var rec *domain.VendorAdvanceReturn
	err = h.retrier.Retry(r.Context(), func() error {
		var err error
		rec, err = h.service.Create(r.Context(), tenantFrom(r), input)
		return err
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.VendorAdvanceReturnFromDomain(rec))
}

// Get returns a vendor advance return by ID.
func (h *VendorAdvanceReturnHandler) Get(w http.ResponseWriter, r *http.Request) {
	rec, err := h.service.Get(r.Context(), tenantFrom(r), idParam(r))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.VendorAdvanceReturnFromDomain(rec))
}

// Update edits a vendor advance return in place.
func (h *VendorAdvanceReturnHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateVendorAdvanceReturnRequest
	if err := decodeRequest(r, &req); err != nil {
		writeDomainError(w, r, err)
		return
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	var rec *domain.VendorAdvanceReturn
	err = h.retrier.Retry(r.Context(), func() error {
		var err error
		rec, err = h.service.Update(r.Context(), tenantFrom(r), idParam(r), input)
		return err
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.VendorAdvanceReturnFromDomain(rec))
}

// Delete reverses and removes a vendor advance return.
func (h *VendorAdvanceReturnHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
