package handler

import (
	"context"
	"net/http"

	"github.com/iho/agencyledger/internal/adapter/http/dto"
	"github.com/iho/agencyledger/internal/domain"
	"github.com/iho/agencyledger/internal/usecase"
)

// ExpenseService is the use case behind ExpenseHandler.
type ExpenseService interface {
	Create(ctx context.Context, tenant domain.TenantID, input usecase.CreateExpenseInput) (*domain.Expense, error)
	Update(ctx context.Context, tenant domain.TenantID, id string, input usecase.UpdateExpenseInput) (*domain.Expense, error)
	Delete(ctx context.Context, tenant domain.TenantID, id string) (*usecase.DeleteResult, error)
	Get(ctx context.Context, tenant domain.TenantID, id string) (*domain.Expense, error)
}

// ExpenseHandler handles expense HTTP requests.
type ExpenseHandler struct {
	service ExpenseService
	retrier Retrier
}

// NewExpenseHandler creates a new ExpenseHandler. retrier may be nil.
func NewExpenseHandler(service ExpenseService, retrier Retrier) *ExpenseHandler {
	return &ExpenseHandler{service: service, retrier: retrierOrDefault(retrier)}
}

// Create records a new expense.
func (h *ExpenseHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateExpenseRequest
	if err := decodeRequest(r, &req); err != nil {
		writeDomainError(w, r, err)
		return
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	var rec *domain.Expense
	err = h.retrier.Retry(r.Context(), func() error {
		var err error
		rec, err = h.service.Create(r.Context(), tenantFrom(r), input)
		return err
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.ExpenseFromDomain(rec))
}

// Get returns an expense by ID.
func (h *ExpenseHandler) Get(w http.ResponseWriter, r *http.Request) {
	rec, err := h.service.Get(r.Context(), tenantFrom(r), idParam(r))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ExpenseFromDomain(rec))
}

// Update edits an expense in place, keeping its voucher.
func (h *ExpenseHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateExpenseRequest
	if err := decodeRequest(r, &req); err != nil {
		writeDomainError(w, r, err)
		return
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	var rec *domain.Expense
	err = h.retrier.Retry(r.Context(), func() error {
		var err error
		rec, err = h.service.Update(r.Context(), tenantFrom(r), idParam(r), input)
		return err
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ExpenseFromDomain(rec))
}

// Delete reverses and removes an expense.
func (h *ExpenseHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
